package repositories

import (
	"context"
	"errors"

	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// ParticipantRepository stores the current participant set in input order.
type ParticipantRepository interface {
	// ReplaceAll swaps the stored set for participants, keeping their order.
	// It is not atomic; on error the stored set may be partial.
	ReplaceAll(ctx context.Context, participants []models.Participant) error
	// FindAll returns participants in the order they were imported.
	FindAll(ctx context.Context) ([]models.Participant, error)
	Count(ctx context.Context) (int64, error)
}

// DrawRepository defines the interface for draw data operations
type DrawRepository interface {
	Create(ctx context.Context, draw *models.Draw) error
	Update(ctx context.Context, draw *models.Draw) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error)
	// FindRecent returns up to limit draws, newest first.
	FindRecent(ctx context.Context, limit int) ([]*models.Draw, error)
}

// WinnerRepository defines the interface for winner data operations
type WinnerRepository interface {
	CreateMany(ctx context.Context, winners []*models.Winner) error
	// FindByDrawID returns a draw's winners in the order they were created.
	FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Winner, error)
}

// TemplateRepository defines the interface for report template operations
type TemplateRepository interface {
	// Upsert creates the template or replaces the content of the one with
	// the same name.
	Upsert(ctx context.Context, template *models.Template) error
	FindByName(ctx context.Context, name string) (*models.Template, error)
	FindAll(ctx context.Context) ([]*models.Template, error)
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}
