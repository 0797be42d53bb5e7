package employeeRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"admitdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEmployeeRepo implements EmployeeRepository using MongoDB.
type MongoEmployeeRepo struct {
	coll *mongo.Collection
}

// NewMongoEmployeeRepo creates an employee repository backed by the "employees" collection of db.
func NewMongoEmployeeRepo(db *mongo.Database) (*MongoEmployeeRepo, error) {
	repo := &MongoEmployeeRepo{coll: db.Collection("employees")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoEmployeeRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create employee indexes: %w", err)
	}
	return nil
}

// Create inserts a new employee document.
func (r *MongoEmployeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	if employee.ID == "" {
		employee.ID = uuid.New().String()
	}
	now := time.Now()
	employee.CreatedAt = now
	employee.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, employee); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

// GetByID retrieves an employee by id.
func (r *MongoEmployeeRepo) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&employee); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to fetch employee with id %s: %w", id, err)
	}
	return &employee, nil
}

func (r *MongoEmployeeRepo) UpdateSetDocument(ctx context.Context, id string, updateDoc bson.M) error {
	updateDoc["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update employee with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}
