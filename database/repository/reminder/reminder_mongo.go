// File: database/repository/reminder/reminder_mongo.go
package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"remindify/database"
	"remindify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReminderRepo implements ReminderRepository using MongoDB.
type MongoReminderRepo struct {
	coll *mongo.Collection
}

// NewMongoReminderRepo creates a new instance of ReminderRepository using MongoDB.
func NewMongoReminderRepo() ReminderRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("reminders")
	repo := &MongoReminderRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create reminder indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the lookup index and the unique fence. The unique
// index on (bookingId, kind, elapsedMinutes) is what serializes overlapping
// dispatch runs racing on the same booking and threshold.
func (r *MongoReminderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "bookingId", Value: 1},
				{Key: "kind", Value: 1},
				{Key: "elapsedMinutes", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "elapsedMinutes", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// FindExisting returns the booking ids among bookingIDs that already have a
// record of this kind at elapsedMinutes >= minElapsed. The asymmetric
// comparison is deliberate: a 2880-minute record suppresses the 1440 and 180
// passes, but a 180-minute record does not suppress the 1440 pass.
func (r *MongoReminderRepo) FindExisting(ctx context.Context, kind models.ReminderKind, bookingIDs []string, minElapsed int) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	if len(bookingIDs) == 0 {
		return existing, nil
	}

	qctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"kind":           kind,
		"bookingId":      bson.M{"$in": bookingIDs},
		"elapsedMinutes": bson.M{"$gte": minElapsed},
	}

	ids, err := r.coll.Distinct(qctx, "bookingId", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing %s reminders: %w", kind, err)
	}
	for _, id := range ids {
		if s, ok := id.(string); ok {
			existing[s] = struct{}{}
		}
	}
	return existing, nil
}

// Create inserts an immutable ledger record. Losing the unique-index race to
// a concurrent run means the fence is already in place, which is success.
func (r *MongoReminderRepo) Create(ctx context.Context, record models.ReminderRecord) error {
	qctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(qctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to record reminder for booking %s: %w", record.BookingID, err)
	}
	return nil
}
