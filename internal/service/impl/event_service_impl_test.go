package impl

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"clubhub/internal/domain"
	"clubhub/internal/dto"
	"clubhub/internal/posters"
	"clubhub/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

type eventFixture struct {
	svc     *EventServiceImpl
	ms      *memoryStore
	dir     string
	club    *domain.Club
	student *domain.Student
}

func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()
	ctx := context.Background()
	ms := newMemoryStore()
	dir := t.TempDir()
	local, err := posters.NewLocal(dir)
	require.NoError(t, err)

	club := &domain.Club{Credentials: domain.Credentials{Email: "photography@ouce.in", PasswordHash: "h"}, Username: "photography", ClubName: "Photography"}
	require.NoError(t, ms.CreateClub(ctx, club))
	student := &domain.Student{Credentials: domain.Credentials{Email: "asha@ouce.in", PasswordHash: "h"}, Name: "Asha", StudentID: "S1"}
	require.NoError(t, ms.CreateStudent(ctx, student))

	svc := NewEventServiceImpl(ms, eventStore{ms}, local)
	svc.now = func() time.Time { return fixedNow }
	svc.loc = time.UTC
	return &eventFixture{svc: svc, ms: ms, dir: dir, club: club, student: student}
}

func (f *eventFixture) clubActor() domain.Principal {
	return domain.Principal{UserID: f.club.ID, Type: domain.UserTypeClub, Username: f.club.Username}
}

func validEvent() dto.CreateEventRequest {
	return dto.CreateEventRequest{
		Title:       "Photo Walk",
		Category:    "Workshop",
		Description: "Bring a camera and meet at the gate.",
		DateTime:    "2026-07-01T09:30",
		Location:    "Main Gate",
	}
}

func TestCreateEvent_Success(t *testing.T) {
	f := newEventFixture(t)

	view, err := f.svc.CreateEvent(context.Background(), f.clubActor(), validEvent(), nil, "http://localhost:5000")
	require.NoError(t, err)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Photo Walk", view.Title)
	assert.Equal(t, domain.CategoryWorkshop, view.Category)
	assert.Equal(t, "Main Gate", view.Venue)
	assert.Equal(t, time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC), view.DateTime)
	assert.Equal(t, []string{"Photography"}, view.Tags)
	assert.Equal(t, f.club.ID, view.Club)
	assert.Equal(t, f.club.ID, view.Organizer)
	assert.Equal(t, domain.StatusDraft, view.Status)
	assert.False(t, view.IsApproved)
	assert.Nil(t, view.Poster)
	assert.Equal(t, fixedNow, view.CreatedAt)
}

func TestCreateEvent_StudentForbidden(t *testing.T) {
	f := newEventFixture(t)
	actor := domain.Principal{UserID: f.student.ID, Type: domain.UserTypeStudent, Email: f.student.Email}

	_, err := f.svc.CreateEvent(context.Background(), actor, validEvent(), nil, "")
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.ms.events)
}

func TestCreateEvent_ClubClaimWithoutClubRecord(t *testing.T) {
	f := newEventFixture(t)

	forged := domain.Principal{UserID: f.student.ID, Type: domain.UserTypeClub}
	_, err := f.svc.CreateEvent(context.Background(), forged, validEvent(), nil, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	gone := domain.Principal{UserID: "missing", Type: domain.UserTypeClub}
	_, err = f.svc.CreateEvent(context.Background(), gone, validEvent(), nil, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateEvent_ValidationOrder(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(r *dto.CreateEventRequest)
		field   string
		message string
	}{
		{"short title", func(r *dto.CreateEventRequest) { r.Title = "Hi" }, "title", "Title is required and must be at least 3 characters."},
		{"title wins over category", func(r *dto.CreateEventRequest) { r.Title = ""; r.Category = "Banquet" }, "title", "Title is required and must be at least 3 characters."},
		{"missing category", func(r *dto.CreateEventRequest) { r.Category = "" }, "category", "Category is required."},
		{"unknown category", func(r *dto.CreateEventRequest) { r.Category = "Banquet" }, "category", "Category must be one of: Workshop, Seminar, Competition, Cultural, Sports, Social, Other."},
		{"long description", func(r *dto.CreateEventRequest) { r.Description = strings.Repeat("word ", 1001) }, "description", "Description is required and must be at most 1000 words."},
		{"missing date", func(r *dto.CreateEventRequest) { r.DateTime = "" }, "dateTime", "Date and time are required."},
		{"bad date", func(r *dto.CreateEventRequest) { r.DateTime = "next friday" }, "dateTime", "Invalid date/time format."},
		{"past date", func(r *dto.CreateEventRequest) { r.DateTime = "2025-01-01T10:00" }, "dateTime", "Event date/time must be in the future."},
		{"now is not future", func(r *dto.CreateEventRequest) { r.DateTime = fixedNow.Format(time.RFC3339) }, "dateTime", "Event date/time must be in the future."},
		{"missing venue", func(r *dto.CreateEventRequest) { r.Location = "  " }, "location", "Location is required."},
		{"date wins over venue", func(r *dto.CreateEventRequest) { r.DateTime = "2020-01-01T00:00"; r.Location = "" }, "dateTime", "Event date/time must be in the future."},
		{"bad max participants", func(r *dto.CreateEventRequest) { r.MaxParticipants = "-3" }, "maxParticipants", "Max participants must be a positive number."},
		{"bad registration link", func(r *dto.CreateEventRequest) { r.RegistrationLink = "ftp://x" }, "registrationLink", "Registration link must be an http(s) URL."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newEventFixture(t)
			req := validEvent()
			tc.mutate(&req)

			_, err := f.svc.CreateEvent(context.Background(), f.clubActor(), req, nil, "")
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
			assert.Equal(t, tc.message, ve.Message)
			assert.Empty(t, f.ms.events)
		})
	}
}

func TestCreateEvent_ExactlyThousandWords(t *testing.T) {
	f := newEventFixture(t)
	req := validEvent()
	req.Description = strings.TrimSpace(strings.Repeat("word\n", 1000))

	_, err := f.svc.CreateEvent(context.Background(), f.clubActor(), req, nil, "")
	assert.NoError(t, err)
}

func TestCreateEvent_PosterExtension(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()

	gif := &service.PosterUpload{Filename: "poster.gif", Body: strings.NewReader("GIF89a")}
	_, err := f.svc.CreateEvent(ctx, f.clubActor(), validEvent(), gif, "http://localhost:5000")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Only .jpg, .jpeg, .png files are allowed!", err.Error())
	entries, _ := os.ReadDir(f.dir)
	assert.Empty(t, entries, "nothing written for a rejected poster")
	assert.Empty(t, f.ms.events)

	png := &service.PosterUpload{Filename: "poster.png", Body: strings.NewReader("\x89PNG")}
	view, err := f.svc.CreateEvent(ctx, f.clubActor(), validEvent(), png, "http://localhost:5000")
	require.NoError(t, err)
	require.NotNil(t, view.Poster)
	assert.True(t, strings.HasPrefix(*view.Poster, "http://localhost:5000/uploads/"), *view.Poster)
	assert.True(t, strings.HasSuffix(*view.Poster, "-poster.png"), *view.Poster)

	entries, _ = os.ReadDir(f.dir)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "1780308000000-"), entries[0].Name())
}

func TestCreateEvent_OptionalFields(t *testing.T) {
	f := newEventFixture(t)
	req := validEvent()
	req.Tags = "photo, outdoor ,"
	req.MaxParticipants = "25"
	req.Requirements = "camera, water"
	req.RegistrationLink = "https://forms.example.com/walk"
	req.ContactEmail = "photography@ouce.in"
	req.ContactPhone = "+91 90000 00000"
	req.DateTime = "2026-07-01T09:30:00+05:30"

	view, err := f.svc.CreateEvent(context.Background(), f.clubActor(), req, nil, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"photo", "outdoor"}, view.Tags)
	require.NotNil(t, view.MaxParticipants)
	assert.Equal(t, 25, *view.MaxParticipants)
	assert.Equal(t, []string{"camera", "water"}, view.Requirements)
	assert.Equal(t, "https://forms.example.com/walk", view.RegistrationLink)
	require.NotNil(t, view.ContactInfo)
	assert.Equal(t, "+91 90000 00000", view.ContactInfo.Phone)
	assert.Equal(t, time.Date(2026, 7, 1, 4, 0, 0, 0, time.UTC), view.DateTime)
}

func TestListEvents_SortedByDateDescWithAbsolutePosters(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()
	events := eventStore{f.ms}

	for _, e := range []*domain.Event{
		{Title: "near", DateTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Poster: `uploads\legacy.jpg`},
		{Title: "far", DateTime: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), Poster: "uploads/new.png"},
		{Title: "mid", DateTime: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), Poster: "https://cdn.example.com/p.png"},
		{Title: "bare", DateTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	} {
		require.NoError(t, events.Create(ctx, e))
	}

	list, err := f.svc.ListEvents(ctx, "http://clubs.test")
	require.NoError(t, err)
	require.Len(t, list, 4)

	var titles []string
	for _, v := range list {
		titles = append(titles, v.Title)
	}
	assert.Equal(t, []string{"far", "mid", "bare", "near"}, titles)

	assert.Equal(t, "http://clubs.test/uploads/new.png", *list[0].Poster)
	assert.Equal(t, "https://cdn.example.com/p.png", *list[1].Poster)
	assert.Nil(t, list[2].Poster)
	assert.Equal(t, "http://clubs.test/uploads/legacy.jpg", *list[3].Poster)
	assert.NotNil(t, list[2].Tags)
}

func TestListEvents_StoreFailure(t *testing.T) {
	f := newEventFixture(t)
	f.ms.failList = errors.New("connection reset")
	_, err := f.svc.ListEvents(context.Background(), "")
	assert.Error(t, err)
}

func TestRoundTrip_RegisterLoginCreateList(t *testing.T) {
	ctx := context.Background()
	ms := newMemoryStore()
	tokens, err := NewTokenServiceHS256(TokenConfig{Issuer: "clubhub", SigningKey: []byte("k")})
	require.NoError(t, err)
	auth := NewAuthServiceImpl(ms, fastPasswords(), tokens)
	events := NewEventServiceImpl(ms, eventStore{ms}, nil)
	events.now = func() time.Time { return fixedNow }

	require.NoError(t, auth.RegisterClub(ctx, dto.RegisterClubRequest{Username: "saeouce", Password: "saeouce", ClubName: "SAE", Email: "sae@ouce.in"}))
	res, err := auth.LoginClub(ctx, dto.ClubLoginRequest{Username: "saeouce", Password: "saeouce"})
	require.NoError(t, err)

	actor, err := auth.Verify(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, actor.UserID)

	req := validEvent()
	req.Title = "Baja Briefing"
	req.Category = "Seminar"
	_, err = events.CreateEvent(ctx, actor, req, nil, "")
	require.NoError(t, err)

	list, err := events.ListEvents(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Baja Briefing", list[0].Title)
	assert.Equal(t, domain.CategorySeminar, list[0].Category)
	assert.Equal(t, []string{"SAE"}, list[0].Tags)
}
