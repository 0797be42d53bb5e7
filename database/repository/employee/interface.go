package employeeRepo

import (
	"context"
	"errors"

	"admitdesk/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrEmployeeNotFound is returned when no employee matches the given id.
var ErrEmployeeNotFound = errors.New("employee not found")

// ErrEmailTaken is returned by Create when the email is already registered.
var ErrEmailTaken = errors.New("employee email already registered")

// EmployeeRepository defines methods for employee data access.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	// UpdateSetDocument applies a $set of updateDoc to the employee with id.
	UpdateSetDocument(ctx context.Context, id string, updateDoc bson.M) error
}
