package mongodb

import (
	"context"
	"time"

	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
	"github.com/ArowuTest/bridgetunes-raffle/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TemplateRepository implements the repositories.TemplateRepository interface
type TemplateRepository struct {
	collection *mongo.Collection
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *mongo.Database) repositories.TemplateRepository {
	return &TemplateRepository{
		collection: db.Collection("templates"),
	}
}

// Upsert creates or replaces a template by name
func (r *TemplateRepository) Upsert(ctx context.Context, template *models.Template) error {
	now := time.Now()
	template.UpdatedAt = now
	update := bson.M{
		"$set": bson.M{
			"content":   template.Content,
			"createdBy": template.CreatedBy,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	return r.collection.FindOneAndUpdate(ctx, bson.M{"name": template.Name}, update, opts).Decode(template)
}

// FindByName finds a template by name
func (r *TemplateRepository) FindByName(ctx context.Context, name string) (*models.Template, error) {
	var template models.Template
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&template)
	if err != nil {
		return nil, notFound(err)
	}
	return &template, nil
}

// FindAll finds all templates sorted by name
func (r *TemplateRepository) FindAll(ctx context.Context) ([]*models.Template, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []*models.Template
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []*models.Template{}
	}
	return templates, nil
}
