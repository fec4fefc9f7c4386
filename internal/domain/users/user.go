package users

import "errors"

var ErrNotFound = errors.New("user not found")

// User mirrors the identity provider's record; it is written only by the
// identity-sync handlers.
type User struct {
	ID        string `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	Name      string `json:"name" db:"name"`
	AvatarURL string `json:"avatar_url" db:"avatar_url"`
}

// FromIdentityPayload projects an identity-lifecycle payload onto a User.
// The first email address in the list wins.
func FromIdentityPayload(id, firstName, lastName string, emails []string, imageURL string) User {
	email := ""
	if len(emails) > 0 {
		email = emails[0]
	}

	name := firstName
	if lastName != "" {
		name = firstName + " " + lastName
	}

	return User{
		ID:        id,
		Email:     email,
		Name:      name,
		AvatarURL: imageURL,
	}
}
