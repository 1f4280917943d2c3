package valueobjects

import "fmt"

// UserStatus is derived from the user's active ban sanctions.
type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusBanned UserStatus = "banned"
)

func (s UserStatus) String() string {
	return string(s)
}

func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusBanned
}

func (s UserStatus) IsBanned() bool {
	return s == UserStatusBanned
}

func NewUserStatus(s string) (UserStatus, error) {
	st := UserStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid user status: %s", s)
	}
	return st, nil
}
