package mongostore

import (
	"context"
	"fmt"
	"time"

	"clubhub/internal/domain"
	"clubhub/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type contactDoc struct {
	Email string `bson:"email,omitempty"`
	Phone string `bson:"phone,omitempty"`
}

type eventDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Title            string             `bson:"title"`
	Description      string             `bson:"description"`
	Category         domain.Category    `bson:"category"`
	Club             primitive.ObjectID `bson:"club"`
	Organizer        primitive.ObjectID `bson:"organizer"`
	DateTime         time.Time          `bson:"dateTime"`
	Venue            string             `bson:"venue"`
	Poster           string             `bson:"poster,omitempty"`
	RegistrationLink string             `bson:"registrationLink,omitempty"`
	Tags             []string           `bson:"tags"`
	MaxParticipants  *int               `bson:"maxParticipants,omitempty"`
	Requirements     []string           `bson:"requirements,omitempty"`
	ContactInfo      *contactDoc        `bson:"contactInfo,omitempty"`
	Status           domain.EventStatus `bson:"status"`
	IsApproved       bool               `bson:"isApproved"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func (d *eventDoc) event() *domain.Event {
	e := &domain.Event{
		ID:               d.ID.Hex(),
		Title:            d.Title,
		Description:      d.Description,
		Category:         d.Category,
		ClubID:           d.Club.Hex(),
		OrganizerID:      d.Organizer.Hex(),
		DateTime:         d.DateTime,
		Venue:            d.Venue,
		Poster:           d.Poster,
		RegistrationLink: d.RegistrationLink,
		Tags:             d.Tags,
		MaxParticipants:  d.MaxParticipants,
		Requirements:     d.Requirements,
		Status:           d.Status,
		IsApproved:       d.IsApproved,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if d.ContactInfo != nil {
		e.ContactInfo = domain.ContactInfo{Email: d.ContactInfo.Email, Phone: d.ContactInfo.Phone}
	}
	if e.Status == "" {
		e.Status = domain.StatusDraft
	}
	return e
}

type EventStore struct {
	col *mongo.Collection
}

func (s *EventStore) Create(ctx context.Context, e *domain.Event) error {
	club, err := primitive.ObjectIDFromHex(e.ClubID)
	if err != nil {
		return fmt.Errorf("insert event: club id: %w", err)
	}
	organizer, err := primitive.ObjectIDFromHex(e.OrganizerID)
	if err != nil {
		return fmt.Errorf("insert event: organizer id: %w", err)
	}

	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = e.CreatedAt

	doc := eventDoc{
		Title:            e.Title,
		Description:      e.Description,
		Category:         e.Category,
		Club:             club,
		Organizer:        organizer,
		DateTime:         e.DateTime.UTC(),
		Venue:            e.Venue,
		Poster:           e.Poster,
		RegistrationLink: e.RegistrationLink,
		Tags:             e.Tags,
		MaxParticipants:  e.MaxParticipants,
		Requirements:     e.Requirements,
		Status:           e.Status,
		IsApproved:       e.IsApproved,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	if e.ContactInfo != (domain.ContactInfo{}) {
		doc.ContactInfo = &contactDoc{Email: e.ContactInfo.Email, Phone: e.ContactInfo.Phone}
	}

	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("insert event: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert event: unexpected id type %T", res.InsertedID)
	}
	e.ID = oid.Hex()
	return nil
}

func (s *EventStore) List(ctx context.Context) ([]*domain.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateTime", Value: -1}})
	cur, err := s.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Event
	for cur.Next(ctx) {
		var doc eventDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		out = append(out, doc.event())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list events cursor: %w", err)
	}
	return out, nil
}
