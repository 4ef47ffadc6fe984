package models

import "time"

// Client protocol event names. JOIN_ROOM and MESSAGE arrive from clients;
// ROOM_JOINED, USER_CHANGE, MESSAGE and ERROR go out.
const (
	EventJoinRoom   = "JOIN_ROOM"
	EventRoomJoined = "ROOM_JOINED"
	EventUserChange = "USER_CHANGE"
	EventMessage    = "MESSAGE"
	EventError      = "ERROR"
)

// Presence actions carried by USER_CHANGE events.
const (
	ActionJoined = "JOINED"
	ActionLeft   = "LEFT"
)

// WSFrame is the envelope for every frame on the wire.
type WSFrame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

func ErrorFrame(msg string) WSFrame { return WSFrame{Type: EventError, Data: msg} }

// User is a directory record keyed by the caller-supplied user id.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// Sheet is a persisted snapshot. Data is an opaque blob owned by the client.
type Sheet struct {
	ID        string    `json:"id"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
}

// JoinRequest is the payload of a JOIN_ROOM frame.
type JoinRequest struct {
	UserID  string `json:"user_id"`
	SheetID string `json:"sheet_id"`
}

// UserChange is the payload of a USER_CHANGE presence broadcast. SheetData
// carries the sheet snapshot current at the time of the membership change.
type UserChange struct {
	User      User   `json:"user"`
	Action    string `json:"action"`
	SheetData string `json:"sheet_data"`
}

// RoomStatus is the response of the presence read endpoint.
type RoomStatus struct {
	SheetID string `json:"sheet_id"`
	Members []User `json:"members"`
}
