package sqlstore

import (
	"fmt"
	"time"

	"clubhub/internal/domain"
)

type userRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Type      string    `gorm:"column:type;not null"`
	Email     string    `gorm:"column:email;not null"`
	Password  string    `gorm:"column:password;not null"`
	Username  *string   `gorm:"column:username"`
	ClubName  *string   `gorm:"column:club_name"`
	Name      *string   `gorm:"column:name"`
	StudentID *string   `gorm:"column:student_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (userRow) TableName() string { return "users" }

func (r *userRow) account() (domain.Account, error) {
	creds := domain.Credentials{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.Password,
		CreatedAt:    r.CreatedAt,
	}
	switch domain.UserType(r.Type) {
	case domain.UserTypeClub:
		return &domain.Club{Credentials: creds, Username: deref(r.Username), ClubName: deref(r.ClubName)}, nil
	case domain.UserTypeStudent:
		return &domain.Student{Credentials: creds, Name: deref(r.Name), StudentID: deref(r.StudentID)}, nil
	default:
		return nil, fmt.Errorf("user %s: unknown type %q", r.ID, r.Type)
	}
}

type eventRow struct {
	ID               string    `gorm:"column:id;primaryKey"`
	Title            string    `gorm:"column:title"`
	Description      string    `gorm:"column:description"`
	Category         string    `gorm:"column:category"`
	ClubID           string    `gorm:"column:club_id"`
	OrganizerID      string    `gorm:"column:organizer_id"`
	DateTime         time.Time `gorm:"column:date_time"`
	Venue            string    `gorm:"column:venue"`
	Poster           *string   `gorm:"column:poster"`
	RegistrationLink *string   `gorm:"column:registration_link"`
	Tags             []string  `gorm:"column:tags;serializer:json"`
	MaxParticipants  *int      `gorm:"column:max_participants"`
	Requirements     []string  `gorm:"column:requirements;serializer:json"`
	ContactEmail     *string   `gorm:"column:contact_email"`
	ContactPhone     *string   `gorm:"column:contact_phone"`
	Status           string    `gorm:"column:status"`
	IsApproved       bool      `gorm:"column:is_approved"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (eventRow) TableName() string { return "events" }

func newEventRow(e *domain.Event) *eventRow {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	reqs := e.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return &eventRow{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Category:         string(e.Category),
		ClubID:           e.ClubID,
		OrganizerID:      e.OrganizerID,
		DateTime:         e.DateTime.UTC(),
		Venue:            e.Venue,
		Poster:           ptr(e.Poster),
		RegistrationLink: ptr(e.RegistrationLink),
		Tags:             tags,
		MaxParticipants:  e.MaxParticipants,
		Requirements:     reqs,
		ContactEmail:     ptr(e.ContactInfo.Email),
		ContactPhone:     ptr(e.ContactInfo.Phone),
		Status:           string(e.Status),
		IsApproved:       e.IsApproved,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func (r *eventRow) event() *domain.Event {
	e := &domain.Event{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		Category:         domain.Category(r.Category),
		ClubID:           r.ClubID,
		OrganizerID:      r.OrganizerID,
		DateTime:         r.DateTime.UTC(),
		Venue:            r.Venue,
		Poster:           deref(r.Poster),
		RegistrationLink: deref(r.RegistrationLink),
		Tags:             r.Tags,
		MaxParticipants:  r.MaxParticipants,
		Requirements:     r.Requirements,
		ContactInfo:      domain.ContactInfo{Email: deref(r.ContactEmail), Phone: deref(r.ContactPhone)},
		Status:           domain.EventStatus(r.Status),
		IsApproved:       r.IsApproved,
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}
	if len(e.Requirements) == 0 {
		e.Requirements = nil
	}
	return e
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
