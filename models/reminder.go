package models

import "time"

// ReminderTimeLayout is the wire format of Reminder.Time: minute precision,
// no zone designator. Fixed width, so string order matches time order.
const ReminderTimeLayout = "2006-01-02T15:04"

// Owner types a reminder can be attached to.
const (
	ReminderTypeLead     = "lead"
	ReminderTypeBusiness = "business"
)

// Reminder is a scheduled notification for the employee assigned to a lead
// or business lead. Notified=false is Pending, Notified=true is Sent.
type Reminder struct {
	ID         string     `bson:"id" json:"id"`
	Time       string     `bson:"time" json:"time"`
	Message    string     `bson:"message" json:"message"`
	Notified   bool       `bson:"notified" json:"notified"`
	NotifiedAt *time.Time `bson:"notifiedAt,omitempty" json:"notifiedAt,omitempty"`
	Type       string     `bson:"type" json:"type"`
	TargetID   string     `bson:"targetId" json:"targetId"`
	EmployeeID string     `bson:"employeeId" json:"employeeId"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// CreateReminderRequest is the body of POST /api/reminders.
type CreateReminderRequest struct {
	Type       string `json:"type" binding:"required,oneof=lead business"`
	TargetID   string `json:"targetId" binding:"required"`
	EmployeeID string `json:"employeeId" binding:"required"`
	Message    string `json:"message" binding:"required,max=1000"`
	Time       string `json:"time" binding:"required"`
}

// ReminderFilter narrows reminder listings. Zero values are ignored.
type ReminderFilter struct {
	EmployeeID string `form:"employeeId"`
	Type       string `form:"type"`
	TargetID   string `form:"targetId"`
	Notified   *bool  `form:"notified"`
	Limit      int64  `form:"limit"`
}

// ReminderPayload is the asynq task body for a queued SMS.
type ReminderPayload struct {
	ReminderID string `json:"reminderId"`
	Phone      string `json:"phone"`
	Body       string `json:"body"`
}
