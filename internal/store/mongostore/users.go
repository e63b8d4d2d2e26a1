package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubhub/internal/domain"
	"clubhub/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Type      domain.UserType    `bson:"type"`
	Username  string             `bson:"username,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	ClubName  string             `bson:"clubName,omitempty"`
	Name      string             `bson:"name,omitempty"`
	StudentID string             `bson:"studentId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *userDoc) account() (domain.Account, error) {
	creds := domain.Credentials{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
	switch d.Type {
	case domain.UserTypeClub:
		return &domain.Club{Credentials: creds, Username: d.Username, ClubName: d.ClubName}, nil
	case domain.UserTypeStudent:
		return &domain.Student{Credentials: creds, Name: d.Name, StudentID: d.StudentID}, nil
	default:
		return nil, fmt.Errorf("user %s: unknown type %q", d.ID.Hex(), d.Type)
	}
}

type UserStore struct {
	col *mongo.Collection
}

func (u *UserStore) CreateClub(ctx context.Context, c *domain.Club) error {
	doc := userDoc{
		Type:      domain.UserTypeClub,
		Username:  c.Username,
		Email:     c.Email,
		Password:  c.PasswordHash,
		ClubName:  c.ClubName,
		CreatedAt: createdAt(c.CreatedAt),
	}
	id, err := u.insert(ctx, &doc)
	if err != nil {
		return err
	}
	c.ID = id
	c.CreatedAt = doc.CreatedAt
	return nil
}

func (u *UserStore) CreateStudent(ctx context.Context, s *domain.Student) error {
	doc := userDoc{
		Type:      domain.UserTypeStudent,
		Email:     s.Email,
		Password:  s.PasswordHash,
		Name:      s.Name,
		StudentID: s.StudentID,
		CreatedAt: createdAt(s.CreatedAt),
	}
	id, err := u.insert(ctx, &doc)
	if err != nil {
		return err
	}
	s.ID = id
	s.CreatedAt = doc.CreatedAt
	return nil
}

func (u *UserStore) insert(ctx context.Context, doc *userDoc) (string, error) {
	res, err := u.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", store.ErrDuplicate
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (u *UserStore) ClubByUsername(ctx context.Context, username string) (*domain.Club, error) {
	acc, err := u.findOne(ctx, bson.M{"username": username, "type": domain.UserTypeClub})
	if err != nil {
		return nil, err
	}
	return acc.(*domain.Club), nil
}

func (u *UserStore) StudentByEmail(ctx context.Context, email string) (*domain.Student, error) {
	acc, err := u.findOne(ctx, bson.M{"email": email, "type": domain.UserTypeStudent})
	if err != nil {
		return nil, err
	}
	return acc.(*domain.Student), nil
}

func (u *UserStore) ByID(ctx context.Context, id string) (domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	return u.findOne(ctx, bson.M{"_id": oid})
}

func (u *UserStore) findOne(ctx context.Context, filter bson.M) (domain.Account, error) {
	var doc userDoc
	if err := u.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.account()
}

func (u *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return u.exists(ctx, bson.M{"email": email})
}

func (u *UserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	return u.exists(ctx, bson.M{"username": username})
}

func (u *UserStore) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := u.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

func (u *UserStore) List(ctx context.Context) ([]domain.Account, error) {
	cur, err := u.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Account
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		acc, err := doc.account()
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users cursor: %w", err)
	}
	return out, nil
}

func createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
