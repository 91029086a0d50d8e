package user

import "fmt"

// User represents a user in the system
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName returns the user's full display name
func (u *User) DisplayName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}
