package models

// MembershipStatus is the access level a user has unlocked.
type MembershipStatus string

const (
	MembershipGuest  MembershipStatus = "guest"
	MembershipMember MembershipStatus = "member"
)

type User struct {
	ID               string           `json:"id"`
	Username         string           `json:"username"`
	PasswordHash     string           `json:"-"`
	MembershipStatus MembershipStatus `json:"membership_status"`
	Admin            bool             `json:"admin"`
}

// IsMember reports whether the user has unlocked member status.
func (u *User) IsMember() bool {
	return u != nil && u.MembershipStatus == MembershipMember
}
