package group

import (
	"encoding/json"
	"time"
)

// Group is a traveler unit attached to one trip. Attendance holds the raw
// per-tour entries exactly as stored; two historical shapes coexist there
// (a bare name list and a structured object), so readers go through
// attendance.Normalize instead of decoding the values directly.
type Group struct {
	ID              string                     `json:"id"`
	TripID          string                     `json:"trip_id"`
	Name            string                     `json:"name"`
	MemberCount     int                        `json:"member_count"`
	Members         []string                   `json:"members"`
	LeaderName      string                     `json:"leader_name"`
	LeaderEmail     string                     `json:"leader_email"`
	LeaderPhone     string                     `json:"leader_phone"`
	LeaderPassword  string                     `json:"-"`
	PasswordChanged bool                       `json:"password_changed"`
	Attendance      map[string]json.RawMessage `json:"attendance,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
}
