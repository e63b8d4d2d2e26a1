package dto

import (
	"time"

	"clubhub/internal/domain"
)

// UserView is the public projection of an account. It never carries the
// password hash.
type UserView struct {
	ID        string          `json:"id"`
	Type      domain.UserType `json:"type"`
	Email     string          `json:"email"`
	Username  string          `json:"username,omitempty"`
	ClubName  string          `json:"clubName,omitempty"`
	Name      string          `json:"name,omitempty"`
	StudentID string          `json:"studentId,omitempty"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
}

func NewUserView(a domain.Account) UserView {
	base := a.Base()
	v := UserView{ID: base.ID, Type: a.Kind(), Email: base.Email}
	if !base.CreatedAt.IsZero() {
		created := base.CreatedAt
		v.CreatedAt = &created
	}
	switch u := a.(type) {
	case *domain.Club:
		v.Username = u.Username
		v.ClubName = u.ClubName
	case *domain.Student:
		v.Name = u.Name
		v.StudentID = u.StudentID
	}
	return v
}

// ProfileClaims mirrors the verified token claims returned by /api/profile.
type ProfileClaims struct {
	UserID   string          `json:"userId"`
	Type     domain.UserType `json:"type"`
	Username string          `json:"username,omitempty"`
	Email    string          `json:"email,omitempty"`
}

type ProfileResponse struct {
	User ProfileClaims `json:"user"`
}
