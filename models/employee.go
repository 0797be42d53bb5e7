package models

import "time"

// Employee is a counsellor or staff member that reminders get assigned to.
type Employee struct {
	ID        string          `bson:"id" json:"id"`
	Name      string          `bson:"name" json:"name"`
	Email     string          `bson:"email" json:"email"`
	Contact   EmployeeContact `bson:"contact" json:"contact"`
	FCMToken  string          `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	CreatedAt time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time       `bson:"updatedAt" json:"updatedAt"`
}

type EmployeeContact struct {
	Phone string `bson:"phone" json:"phone"`
}

// Contact is what the dispatcher needs to reach an employee.
type Contact struct {
	EmployeeID string `json:"employeeId"`
	Phone      string `json:"phone"`
	FCMToken   string `json:"fcmToken,omitempty"`
}

type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,e164"`
	FCMToken string `json:"fcmToken"`
}

type UpdateContactRequest struct {
	Phone    *string `json:"phone" binding:"omitempty,e164"`
	FCMToken *string `json:"fcmToken"`
}
