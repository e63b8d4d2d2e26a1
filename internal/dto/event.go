package dto

import (
	"time"

	"clubhub/internal/domain"
)

// CreateEventRequest holds the raw form values of an event submission.
// Validation and parsing happen in the event service.
type CreateEventRequest struct {
	Title            string
	Category         string
	Description      string
	DateTime         string
	Location         string
	RegistrationLink string
	Tags             string
	MaxParticipants  string
	Requirements     string
	ContactEmail     string
	ContactPhone     string
}

type ContactInfoView struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type EventView struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Category         domain.Category    `json:"category"`
	Club             string             `json:"club"`
	Organizer        string             `json:"organizer"`
	DateTime         time.Time          `json:"dateTime"`
	Venue            string             `json:"venue"`
	Poster           *string            `json:"poster"`
	RegistrationLink string             `json:"registrationLink,omitempty"`
	Tags             []string           `json:"tags"`
	MaxParticipants  *int               `json:"maxParticipants,omitempty"`
	Requirements     []string           `json:"requirements,omitempty"`
	ContactInfo      *ContactInfoView   `json:"contactInfo,omitempty"`
	Status           domain.EventStatus `json:"status"`
	IsApproved       bool               `json:"isApproved"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// NewEventView projects e; poster must already be a retrievable location.
func NewEventView(e *domain.Event, poster string) EventView {
	v := EventView{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Category:         e.Category,
		Club:             e.ClubID,
		Organizer:        e.OrganizerID,
		DateTime:         e.DateTime,
		Venue:            e.Venue,
		RegistrationLink: e.RegistrationLink,
		Tags:             e.Tags,
		MaxParticipants:  e.MaxParticipants,
		Requirements:     e.Requirements,
		Status:           e.Status,
		IsApproved:       e.IsApproved,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if poster != "" {
		v.Poster = &poster
	}
	if e.ContactInfo.Email != "" || e.ContactInfo.Phone != "" {
		v.ContactInfo = &ContactInfoView{Email: e.ContactInfo.Email, Phone: e.ContactInfo.Phone}
	}
	return v
}

type CreateEventResponse struct {
	Message string    `json:"message"`
	Event   EventView `json:"event"`
}

type ListEventsResponse struct {
	Events []EventView `json:"events"`
}
