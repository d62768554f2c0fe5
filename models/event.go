package models

import "time"

// EventCategories are the accepted event categories.
var EventCategories = []string{
	"Charity",
	"Meetup",
	"Cultural",
	"Sports",
	"Education",
	"Health",
	"Environmental",
	"Technology",
	"Other",
}

func ValidCategory(c string) bool {
	for _, cat := range EventCategories {
		if cat == c {
			return true
		}
	}
	return false
}

type EventLocation struct {
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Zip     string `bson:"zip" json:"zip"`
}

type VolunteerRole struct {
	ID          string `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	SpotsTotal  int    `bson:"spots_total" json:"spotsTotal"`
	SpotsFilled int    `bson:"spots_filled" json:"spotsFilled"`
}

type Event struct {
	ID             string              `bson:"_id,omitempty" json:"id"`
	Title          string              `bson:"title" json:"title"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	Image          string              `bson:"image,omitempty" json:"image,omitempty"`
	Date           string              `bson:"date" json:"date"`            // YYYY-MM-DD
	StartTime      string              `bson:"start_time" json:"startTime"` // HH:MM
	EndTime        string              `bson:"end_time" json:"endTime"`     // HH:MM
	Location       EventLocation       `bson:"location" json:"location"`
	OrganizerID    string              `bson:"organizer_id" json:"organizerId"`
	OrganizerName  string              `bson:"organizer_name" json:"organizerName"` // snapshot at creation
	Category       string              `bson:"category" json:"category"`
	VolunteerRoles []VolunteerRole     `bson:"volunteer_roles" json:"volunteerRoles"`
	Attendees      []string            `bson:"attendees" json:"attendees"`
	Volunteers     map[string][]string `bson:"volunteers" json:"volunteers"` // role id -> user ids
	Comments       []Comment           `bson:"comments" json:"comments"`
	IsFree         bool                `bson:"is_free" json:"isFree"`
	TicketPrice    float64             `bson:"ticket_price,omitempty" json:"ticketPrice,omitempty"`
	TotalSpots     int                 `bson:"total_spots,omitempty" json:"totalSpots,omitempty"`
	SpotsRemaining int                 `bson:"spots_remaining,omitempty" json:"spotsRemaining,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updated_at"`
}

// Attending reports whether the user id is in the attendee list.
func (e *Event) Attending(userID string) bool {
	for _, id := range e.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}

// Role looks up a volunteer role by id.
func (e *Event) Role(roleID string) (*VolunteerRole, bool) {
	for i := range e.VolunteerRoles {
		if e.VolunteerRoles[i].ID == roleID {
			return &e.VolunteerRoles[i], true
		}
	}
	return nil, false
}
