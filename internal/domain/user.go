package domain

import "time"

// Credentials are the fields every account carries regardless of its variant.
type Credentials struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Account is either a *Club or a *Student. The set of implementations is closed.
type Account interface {
	Kind() UserType
	Base() *Credentials
	account()
}

// Club is a club administrator account, the only kind allowed to post events.
type Club struct {
	Credentials
	Username string
	ClubName string
}

func (c *Club) Kind() UserType     { return UserTypeClub }
func (c *Club) Base() *Credentials { return &c.Credentials }
func (*Club) account()             {}

// Student is a read-only account.
type Student struct {
	Credentials
	Name      string
	StudentID string
}

func (s *Student) Kind() UserType     { return UserTypeStudent }
func (s *Student) Base() *Credentials { return &s.Credentials }
func (*Student) account()             {}

// Principal is the identity proven by a bearer token.
type Principal struct {
	UserID   string
	Type     UserType
	Username string // clubs only
	Email    string // students only
}

func (p Principal) IsClub() bool { return p.Type == UserTypeClub }
