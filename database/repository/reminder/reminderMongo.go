package reminderRepo

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

const defaultListLimit = 200

// MongoReminderRepo implements ReminderRepository using MongoDB.
type MongoReminderRepo struct {
	coll *mongo.Collection
}

// NewMongoReminderRepo creates a reminder repository backed by the "reminders" collection of db.
func NewMongoReminderRepo(db *mongo.Database) (*MongoReminderRepo, error) {
	repo := &MongoReminderRepo{coll: db.Collection("reminders")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

// Create inserts a new reminder document.
func (r *MongoReminderRepo) Create(ctx context.Context, reminder *models.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	now := time.Now()
	reminder.CreatedAt = now
	reminder.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, reminder); err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// GetByID retrieves a reminder by its id.
func (r *MongoReminderRepo) GetByID(ctx context.Context, id string) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&reminder); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to fetch reminder with id %s: %w", id, err)
	}
	return &reminder, nil
}

// List returns reminders matching filter, earliest first.
func (r *MongoReminderRepo) List(ctx context.Context, filter models.ReminderFilter) ([]models.Reminder, error) {
	limit := filter.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "time", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, ListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer cursor.Close(ctx)

	reminders := []models.Reminder{}
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %w", err)
	}
	return reminders, nil
}

// Delete removes a reminder document by its id.
func (r *MongoReminderRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reminder with id %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrReminderNotFound
	}
	return nil
}

// DeleteByTarget removes all reminders of one lead or business record.
func (r *MongoReminderRepo) DeleteByTarget(ctx context.Context, ownerType, targetID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"type": ownerType, "targetId": targetID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reminders of %s %s: %w", ownerType, targetID, err)
	}
	return res.DeletedCount, nil
}

// FindDue returns a single snapshot of the pending reminders that are due at now.
func (r *MongoReminderRepo) FindDue(ctx context.Context, now, notBefore string, limit int64) ([]models.Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, DueFilter(now, notBefore), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var due []models.Reminder
	if err := cursor.All(ctx, &due); err != nil {
		return nil, fmt.Errorf("failed to decode due reminders: %w", err)
	}
	return due, nil
}

// MarkSent conditionally sets notified=true and notifiedAt.
func (r *MongoReminderRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) (bool, error) {
	update := bson.M{"$set": bson.M{
		"notified":   true,
		"notifiedAt": sentAt,
		"updatedAt":  sentAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "notified": false}, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder %s sent: %w", id, err)
	}
	return res.ModifiedCount == 1, nil
}

// DueFilter matches pending reminders whose time is at or before now. The
// layout is fixed width so a lexicographic range equals a chronological one.
func DueFilter(now, notBefore string) bson.M {
	timeRange := bson.M{"$lte": now}
	if notBefore != "" {
		timeRange["$gte"] = notBefore
	}
	return bson.M{
		"notified": false,
		"time":     timeRange,
	}
}

// ListFilter converts a listing filter into a query document.
func ListFilter(f models.ReminderFilter) bson.M {
	filter := bson.M{}
	if f.EmployeeID != "" {
		filter["employeeId"] = f.EmployeeID
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.TargetID != "" {
		filter["targetId"] = f.TargetID
	}
	if f.Notified != nil {
		filter["notified"] = *f.Notified
	}
	return filter
}
