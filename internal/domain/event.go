package domain

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryWorkshop    Category = "Workshop"
	CategorySeminar     Category = "Seminar"
	CategoryCompetition Category = "Competition"
	CategoryCultural    Category = "Cultural"
	CategorySports      Category = "Sports"
	CategorySocial      Category = "Social"
	CategoryOther       Category = "Other"
)

// Categories lists the accepted categories in display order.
var Categories = []Category{
	CategoryWorkshop,
	CategorySeminar,
	CategoryCompetition,
	CategoryCultural,
	CategorySports,
	CategorySocial,
	CategoryOther,
}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func CategoryNames() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// EventStatus is stored on every event but no workflow moves it off
// StatusDraft yet; see DESIGN.md.
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusCancelled EventStatus = "cancelled"
	StatusCompleted EventStatus = "completed"
)

type ContactInfo struct {
	Email string
	Phone string
}

type Event struct {
	ID               string
	Title            string
	Description      string
	Category         Category
	ClubID           string
	OrganizerID      string
	DateTime         time.Time
	Venue            string
	Poster           string // storage reference, resolved to a URL on the way out
	RegistrationLink string
	Tags             []string
	MaxParticipants  *int
	Requirements     []string
	ContactInfo      ContactInfo
	Status           EventStatus
	IsApproved       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
