package impl

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"clubhub/internal/domain"
	"clubhub/internal/dto"
	"clubhub/internal/observability/metrics"
	"clubhub/internal/observability/middleware"
	"clubhub/internal/posters"
	"clubhub/internal/service"
	"clubhub/internal/store"
)

const (
	minTitleLen         = 3
	maxDescriptionWords = 1000
)

// Accepted dateTime layouts. The zone-less ones are what an HTML
// datetime-local input submits.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type EventServiceImpl struct {
	Users   store.UserStore
	Events  store.EventStore
	Posters posters.Store

	now func() time.Time
	loc *time.Location
}

var _ service.EventService = (*EventServiceImpl)(nil)

func NewEventServiceImpl(users store.UserStore, events store.EventStore, ps posters.Store) *EventServiceImpl {
	return &EventServiceImpl{
		Users:   users,
		Events:  events,
		Posters: ps,
		now:     time.Now,
		loc:     time.Local,
	}
}

func (s *EventServiceImpl) CreateEvent(ctx context.Context, actor domain.Principal, r dto.CreateEventRequest, poster *service.PosterUpload, baseURL string) (_ *dto.EventView, err error) {
	defer func() {
		metrics.EventsCreatedTotal.WithLabelValues(metrics.Result(err)).Inc()
	}()
	log := middleware.Logger(ctx)

	if !actor.IsClub() {
		return nil, forbidden(msgClubOnly)
	}

	now := s.now()
	e, err := s.parseEvent(r, now)
	if err != nil {
		return nil, err
	}
	if poster != nil && !posters.Allowed(poster.Filename) {
		return nil, domain.Invalid("poster", "Only .jpg, .jpeg, .png files are allowed!")
	}

	acc, err := s.Users.ByID(ctx, actor.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, forbidden(msgClubOnly)
	}
	if err != nil {
		return nil, fmt.Errorf("load club: %w", err)
	}
	club, ok := acc.(*domain.Club)
	if !ok {
		return nil, forbidden(msgClubOnly)
	}

	if poster != nil {
		if s.Posters == nil {
			return nil, ErrPosterRequired
		}
		ct := poster.ContentType
		if ct == "" || ct == "application/octet-stream" {
			ct = posters.ContentType(poster.Filename)
		}
		ref, err := s.Posters.Save(ctx, posters.NewName(poster.Filename, now), poster.Body, ct)
		if err != nil {
			return nil, fmt.Errorf("save poster: %w", err)
		}
		e.Poster = ref
	}

	e.ClubID = club.ID
	e.OrganizerID = club.ID
	if len(e.Tags) == 0 {
		e.Tags = []string{club.ClubName}
	}
	e.Status = domain.StatusDraft
	e.CreatedAt = now.UTC()
	e.UpdatedAt = e.CreatedAt

	if err := s.Events.Create(ctx, e); err != nil {
		if e.Poster != "" {
			log.Warn("event not stored, poster left behind", "poster", e.Poster, "error", err)
		}
		return nil, fmt.Errorf("store event: %w", err)
	}

	log.Info("event created", "event_id", e.ID, "club_id", club.ID, "category", e.Category)
	view := dto.NewEventView(e, s.posterURL(ctx, e.Poster, baseURL))
	return &view, nil
}

// parseEvent applies the field rules in order and stops at the first failure.
func (s *EventServiceImpl) parseEvent(r dto.CreateEventRequest, now time.Time) (*domain.Event, error) {
	title := strings.TrimSpace(r.Title)
	if utf8.RuneCountInString(title) < minTitleLen {
		return nil, domain.Invalid("title", "Title is required and must be at least 3 characters.")
	}

	rawCategory := strings.TrimSpace(r.Category)
	if rawCategory == "" {
		return nil, domain.Invalid("category", "Category is required.")
	}
	category, ok := domain.ParseCategory(rawCategory)
	if !ok {
		return nil, domain.Invalid("category", "Category must be one of: "+domain.CategoryNames()+".")
	}

	description := strings.TrimSpace(r.Description)
	if description == "" || len(strings.Fields(description)) > maxDescriptionWords {
		return nil, domain.Invalid("description", "Description is required and must be at most 1000 words.")
	}

	rawDate := strings.TrimSpace(r.DateTime)
	if rawDate == "" {
		return nil, domain.Invalid("dateTime", "Date and time are required.")
	}
	when, err := s.parseDateTime(rawDate)
	if err != nil {
		return nil, domain.Invalid("dateTime", "Invalid date/time format.")
	}
	if !when.After(now) {
		return nil, domain.Invalid("dateTime", "Event date/time must be in the future.")
	}

	venue := strings.TrimSpace(r.Location)
	if venue == "" {
		return nil, domain.Invalid("location", "Location is required.")
	}

	e := &domain.Event{
		Title:       title,
		Description: description,
		Category:    category,
		DateTime:    when.UTC(),
		Venue:       venue,
		Tags:        splitList(r.Tags),
		ContactInfo: domain.ContactInfo{
			Email: strings.TrimSpace(r.ContactEmail),
			Phone: strings.TrimSpace(r.ContactPhone),
		},
		Requirements: splitList(r.Requirements),
	}

	if link := strings.TrimSpace(r.RegistrationLink); link != "" {
		u, err := url.Parse(link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, domain.Invalid("registrationLink", "Registration link must be an http(s) URL.")
		}
		e.RegistrationLink = link
	}
	if raw := strings.TrimSpace(r.MaxParticipants); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, domain.Invalid("maxParticipants", "Max participants must be a positive number.")
		}
		e.MaxParticipants = &n
	}
	if e.ContactInfo.Email != "" {
		if err := validEmail("contactEmail", e.ContactInfo.Email); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (s *EventServiceImpl) parseDateTime(v string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, v, s.loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *EventServiceImpl) ListEvents(ctx context.Context, baseURL string) ([]dto.EventView, error) {
	events, err := s.Events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	slices.SortStableFunc(events, func(a, b *domain.Event) int {
		return cmp.Compare(b.DateTime.UnixNano(), a.DateTime.UnixNano())
	})

	out := make([]dto.EventView, 0, len(events))
	for _, e := range events {
		out = append(out, dto.NewEventView(e, s.posterURL(ctx, e.Poster, baseURL)))
	}
	return out, nil
}

// posterURL resolves ref to an absolute URL. An unresolvable poster is
// dropped from the response rather than failing the whole feed.
func (s *EventServiceImpl) posterURL(ctx context.Context, ref, baseURL string) string {
	if ref == "" || s.Posters == nil {
		return ""
	}
	u, err := s.Posters.Resolve(ctx, ref, baseURL)
	if err != nil {
		middleware.Logger(ctx).Warn("poster not resolvable", "poster", ref, "error", err)
		return ""
	}
	return u
}
