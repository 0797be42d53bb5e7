package models

// EventReminderFired is published to an employee's room when a reminder is dispatched.
const EventReminderFired = "reminderFired"

// RealtimeEvent is one message on a realtime channel.
type RealtimeEvent struct {
	Name    string `json:"name"`
	Payload any    `json:"payload"`
}
