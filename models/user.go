package models

// User roles
const (
	RoleOrganizer = "organizer"
	RoleAttendee  = "attendee"
)

type User struct {
	ID     string `bson:"_id,omitempty" json:"id"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email"`
	Role   string `bson:"role" json:"role"` // organizer | attendee
	Avatar string `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// StoredUser is the user directory record, password hash included.
// Never serialized to API responses.
type StoredUser struct {
	User         `bson:",inline"`
	PasswordHash string `bson:"password_hash" json:"-"`
}
