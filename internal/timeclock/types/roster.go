package types

// AttendanceEvent is the wire form of one clock-in/out fact.
type AttendanceEvent struct {
	Direction string `json:"direction"`
	Channel   string `json:"channel"`
	Timestamp int64  `json:"timestamp"`
}

// RosterUser is one scheduled person annotated with their presence state
// for the active half-shift.
type RosterUser struct {
	UID     string            `json:"uid"`
	Name    string            `json:"name"`
	Present bool              `json:"present"`
	Events  []AttendanceEvent `json:"events"`
}

// RosterResponse answers "who should be here right now, and are they?".
type RosterResponse struct {
	Users     []RosterUser `json:"users"`
	Timestamp int64        `json:"timestamp"`
}
