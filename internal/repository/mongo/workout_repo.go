// internal/repository/mongo/workout_repo.go
package mongo

import (
	"alcyxob/fitness-assistant/internal/domain"
	"alcyxob/fitness-assistant/internal/repository"
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// storeOrder keeps results in insertion order, matching the in-memory repository.
var storeOrder = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout record.
func (r *mongoWorkoutRepository) Create(ctx context.Context, record *domain.WorkoutRecord) (*domain.WorkoutRecord, error) {
	if record == nil || record.UserID == "" {
		return nil, errors.New("workout requires a userId")
	}
	stored := *record
	stored.ID = uuid.NewString()
	stored.Exercises = append([]domain.ExerciseSpec{}, record.Exercises...)
	for i := range stored.Exercises {
		if stored.Exercises[i].ID == "" {
			stored.Exercises[i].ID = uuid.NewString()
		}
	}
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// GetByExactDate finds the first non-canceled workout on the calendar day of date.
func (r *mongoWorkoutRepository) GetByExactDate(ctx context.Context, userID string, date time.Time) (*domain.WorkoutRecord, error) {
	start := domain.StartOfDay(date)
	filter := bson.M{
		"userId":   userID,
		"canceled": false,
		"date":     bson.M{"$gte": start, "$lt": start.AddDate(0, 0, 1)},
	}
	var record domain.WorkoutRecord
	err := r.collection.FindOne(ctx, filter, options.FindOne().SetSort(storeOrder)).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetInRange retrieves the user's non-canceled workouts dated within [from, to].
func (r *mongoWorkoutRepository) GetInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.WorkoutRecord, error) {
	filter := bson.M{
		"userId":   userID,
		"canceled": false,
		"date":     bson.M{"$gte": from, "$lte": to},
	}
	return r.find(ctx, filter)
}

// List retrieves all of the user's workouts.
func (r *mongoWorkoutRepository) List(ctx context.Context, userID string) ([]domain.WorkoutRecord, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *mongoWorkoutRepository) find(ctx context.Context, filter bson.M) ([]domain.WorkoutRecord, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(storeOrder))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.WorkoutRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Cancel sets canceled=true. MatchedCount (not ModifiedCount) decides the
// result, so canceling twice still reports true.
func (r *mongoWorkoutRepository) Cancel(ctx context.Context, userID, id string) (bool, error) {
	return r.update(ctx, userID, id, bson.M{"canceled": true})
}

// Reschedule moves the workout to newDate and clears canceled.
func (r *mongoWorkoutRepository) Reschedule(ctx context.Context, userID, id string, newDate time.Time) (bool, error) {
	return r.update(ctx, userID, id, bson.M{"date": newDate, "canceled": false})
}

// Complete sets completed=true.
func (r *mongoWorkoutRepository) Complete(ctx context.Context, userID, id string) (bool, error) {
	return r.update(ctx, userID, id, bson.M{"completed": true})
}

func (r *mongoWorkoutRepository) update(ctx context.Context, userID, id string, set bson.M) (bool, error) {
	set["updatedAt"] = time.Now().UTC()
	filter := bson.M{"_id": id, "userId": userID}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Date lookups and upcoming-window scans per user
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
