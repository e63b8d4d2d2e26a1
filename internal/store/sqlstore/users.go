package sqlstore

import (
	"context"
	"errors"
	"time"

	"clubhub/internal/domain"
	"clubhub/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStore struct{ db *gorm.DB }

func (u *UserStore) CreateClub(ctx context.Context, c *domain.Club) error {
	row := &userRow{
		Type:     string(domain.UserTypeClub),
		Email:    c.Email,
		Password: c.PasswordHash,
		Username: ptr(c.Username),
		ClubName: ptr(c.ClubName),
	}
	if err := u.insert(ctx, row, &c.Credentials); err != nil {
		return err
	}
	return nil
}

func (u *UserStore) CreateStudent(ctx context.Context, s *domain.Student) error {
	row := &userRow{
		Type:      string(domain.UserTypeStudent),
		Email:     s.Email,
		Password:  s.PasswordHash,
		Name:      ptr(s.Name),
		StudentID: ptr(s.StudentID),
	}
	return u.insert(ctx, row, &s.Credentials)
}

func (u *UserStore) insert(ctx context.Context, row *userRow, creds *domain.Credentials) error {
	row.ID = creds.ID
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	row.CreatedAt = creds.CreatedAt.UTC()
	if creds.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if err := u.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err)
	}
	creds.ID = row.ID
	creds.CreatedAt = row.CreatedAt
	return nil
}

func (u *UserStore) ClubByUsername(ctx context.Context, username string) (*domain.Club, error) {
	acc, err := u.first(ctx, "username = ? AND type = ?", username, string(domain.UserTypeClub))
	if err != nil {
		return nil, err
	}
	return acc.(*domain.Club), nil
}

func (u *UserStore) StudentByEmail(ctx context.Context, email string) (*domain.Student, error) {
	acc, err := u.first(ctx, "email = ? AND type = ?", email, string(domain.UserTypeStudent))
	if err != nil {
		return nil, err
	}
	return acc.(*domain.Student), nil
}

func (u *UserStore) ByID(ctx context.Context, id string) (domain.Account, error) {
	return u.first(ctx, "id = ?", id)
}

func (u *UserStore) first(ctx context.Context, query string, args ...any) (domain.Account, error) {
	var row userRow
	if err := u.db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	return row.account()
}

func (u *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return u.exists(ctx, "email = ?", email)
}

func (u *UserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	return u.exists(ctx, "username = ?", username)
}

func (u *UserStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var n int64
	if err := u.db.WithContext(ctx).Model(&userRow{}).Where(query, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (u *UserStore) List(ctx context.Context) ([]domain.Account, error) {
	var rows []userRow
	if err := u.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Account, 0, len(rows))
	for i := range rows {
		acc, err := rows[i].account()
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicate
	default:
		return err
	}
}
