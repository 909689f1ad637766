package user

import "time"

type PrivacyLevel string

const (
	PrivacyPublic  PrivacyLevel = "public"
	PrivacyFriends PrivacyLevel = "friends"
	PrivacyPrivate PrivacyLevel = "private"
)

// AllPrivacyLevels returns the accepted privacy levels
func AllPrivacyLevels() []string {
	return []string{string(PrivacyPublic), string(PrivacyFriends), string(PrivacyPrivate)}
}

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Gender       *string
	BirthDate    *time.Time
	Phone        *string
	Avatar       *string
	Bio          *string
	PrivacyLevel PrivacyLevel
	IsActive     bool
	CreatedAt    time.Time
	LastSeen     time.Time
}

// FullName returns the display name used in notification titles
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Summary is the compact identity shape embedded in posts, comments and
// pushed notification events. Avatar is an explicit optional field.
type Summary struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Avatar    *string `json:"avatar"`
}

// Summary converts a full user to its compact identity shape
func (u *User) Summary() Summary {
	return Summary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}
