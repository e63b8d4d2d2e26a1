package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"clubhub/internal/domain"
	"clubhub/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(context.Background(), Config{
		Driver: DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle"})
	require.Error(t, err)
}

func TestUserStore_Uniqueness(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	club := &domain.Club{
		Credentials: domain.Credentials{Email: "cisc@ouce.in", PasswordHash: "h"},
		Username:    "CISC",
		ClubName:    "CISC",
	}
	require.NoError(t, s.Users().CreateClub(ctx, club))
	assert.NotEmpty(t, club.ID)
	assert.False(t, club.CreatedAt.IsZero())

	err := s.Users().CreateStudent(ctx, &domain.Student{
		Credentials: domain.Credentials{Email: "cisc@ouce.in", PasswordHash: "h"},
		Name:        "Ravi",
		StudentID:   "S9",
	})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	err = s.Users().CreateClub(ctx, &domain.Club{
		Credentials: domain.Credentials{Email: "x@ouce.in", PasswordHash: "h"},
		Username:    "CISC",
		ClubName:    "Another",
	})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	// NULL usernames do not collide
	for _, email := range []string{"a@ouce.in", "b@ouce.in"} {
		require.NoError(t, s.Users().CreateStudent(ctx, &domain.Student{
			Credentials: domain.Credentials{Email: email, PasswordHash: "h"},
			Name:        "n",
			StudentID:   email,
		}))
	}

	ok, err := s.Users().EmailExists(ctx, "a@ouce.in")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Users().UsernameExists(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := s.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUserStore_Lookups(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st := &domain.Student{
		Credentials: domain.Credentials{Email: "asha@ouce.in", PasswordHash: "h"},
		Name:        "Asha",
		StudentID:   "21CS001",
	}
	require.NoError(t, s.Users().CreateStudent(ctx, st))

	got, err := s.Users().StudentByEmail(ctx, "asha@ouce.in")
	require.NoError(t, err)
	assert.Equal(t, "21CS001", got.StudentID)
	assert.Equal(t, "h", got.PasswordHash)

	// a student's email never resolves a club login
	_, err = s.Users().ClubByUsername(ctx, "asha@ouce.in")
	assert.ErrorIs(t, err, store.ErrNotFound)

	acc, err := s.Users().ByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserTypeStudent, acc.Kind())

	_, err = s.Users().ByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEventStore_RoundTripAndOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	club := &domain.Club{Credentials: domain.Credentials{Email: "ncc@ouce.in", PasswordHash: "h"}, Username: "NCC", ClubName: "NCC"}
	require.NoError(t, s.Users().CreateClub(ctx, club))

	limit := 40
	for _, year := range []int{2025, 2030, 2027} {
		e := &domain.Event{
			Title:           fmt.Sprintf("Parade %d", year),
			Description:     "March past",
			Category:        domain.CategorySports,
			ClubID:          club.ID,
			OrganizerID:     club.ID,
			DateTime:        time.Date(year, 3, 1, 9, 30, 0, 0, time.UTC),
			Venue:           "Ground",
			Poster:          "/uploads/p.png",
			Tags:            []string{"NCC", "drill"},
			MaxParticipants: &limit,
			ContactInfo:     domain.ContactInfo{Email: "ncc@ouce.in"},
			Status:          domain.StatusDraft,
		}
		require.NoError(t, s.Events().Create(ctx, e))
		assert.NotEmpty(t, e.ID)
	}

	events, err := s.Events().List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, 2030, events[0].DateTime.Year())
	assert.Equal(t, 2027, events[1].DateTime.Year())
	assert.Equal(t, 2025, events[2].DateTime.Year())

	e := events[0]
	assert.Equal(t, []string{"NCC", "drill"}, e.Tags)
	require.NotNil(t, e.MaxParticipants)
	assert.Equal(t, 40, *e.MaxParticipants)
	assert.Equal(t, "/uploads/p.png", e.Poster)
	assert.Equal(t, "ncc@ouce.in", e.ContactInfo.Email)
	assert.Equal(t, domain.StatusDraft, e.Status)
	assert.False(t, e.IsApproved)
	assert.Empty(t, e.RegistrationLink)
}
