package domain

// UserType is the discriminant stored with every account.
type UserType string

const (
	UserTypeClub    UserType = "club"
	UserTypeStudent UserType = "student"
)

func (t UserType) Valid() bool {
	return t == UserTypeClub || t == UserTypeStudent
}
