package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
	"github.com/ArowuTest/bridgetunes-raffle/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// participantDocument adds the import position, which fixes pool order.
type participantDocument struct {
	Seq                int `bson:"seq"`
	models.Participant `bson:",inline"`
}

// ParticipantRepository implements the repositories.ParticipantRepository interface
type ParticipantRepository struct {
	collection *mongo.Collection
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *mongo.Database) repositories.ParticipantRepository {
	return &ParticipantRepository{
		collection: db.Collection("participants"),
	}
}

// ReplaceAll deletes the current set and inserts participants in order.
// The two steps are not atomic: a failed insert leaves the collection
// empty or partial.
func (r *ParticipantRepository) ReplaceAll(ctx context.Context, participants []models.Participant) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if len(participants) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(participants))
	for i, p := range participants {
		if p.ImportedAt.IsZero() {
			p.ImportedAt = now
		}
		docs[i] = participantDocument{Seq: i, Participant: p}
	}
	if _, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("failed to insert participants: %w", err)
	}
	return nil
}

// FindAll returns participants in import order.
func (r *ParticipantRepository) FindAll(ctx context.Context) ([]models.Participant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []participantDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode participants: %w", err)
	}
	participants := make([]models.Participant, len(docs))
	for i, d := range docs {
		participants[i] = d.Participant
	}
	return participants, nil
}

// Count returns the number of stored participants.
func (r *ParticipantRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
