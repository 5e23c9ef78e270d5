package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
	"github.com/ArowuTest/bridgetunes-raffle/internal/raffle"
	"github.com/ArowuTest/bridgetunes-raffle/internal/report"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNoParticipants is returned when a draw is requested before any import.
	ErrNoParticipants = errors.New("no participants imported")
	// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDrawNotCompleted is returned when verifying a draw that never finished.
	ErrDrawNotCompleted = errors.New("draw is not completed")
)

// DrawSettings are the fixed inputs of every draw the service runs.
type DrawSettings struct {
	Tiers            raffle.Tiers
	Layout           report.Layout
	DefaultAlgorithm string
	DefaultTemplate  string
}

// ExecuteDrawRequest asks for one draw. Algorithm and TemplateName are optional.
type ExecuteDrawRequest struct {
	Seed         string `json:"seed" binding:"required"`
	Algorithm    string `json:"algorithm"`
	TemplateName string `json:"templateName"`
	ExecutedBy   string `json:"-"`
}

// VerifyResult reports whether a stored draw is reproduced by its seed and
// the current participant set.
type VerifyResult struct {
	DrawID            primitive.ObjectID `json:"drawId"`
	Verified          bool               `json:"verified"`
	ParticipantDigest string             `json:"participantDigest"`
	Mismatches        []string           `json:"mismatches,omitempty"`
}

// ImportSummary describes a completed participant import.
type ImportSummary struct {
	Participants int    `json:"participants"`
	TotalTickets int    `json:"totalTickets"`
	Digest       string `json:"participantDigest"`
}

// LoginResponse carries an issued admin token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DrawService defines the interface for draw-related operations
type DrawService interface {
	// ExecuteDraw runs a draw over the stored participants and persists it
	ExecuteDraw(ctx context.Context, req ExecuteDrawRequest) (*models.Draw, error)

	// VerifyDraw re-runs a stored draw and compares the winners
	VerifyDraw(ctx context.Context, drawID primitive.ObjectID) (*VerifyResult, error)

	// GetDrawByID retrieves a draw by its ID
	GetDrawByID(ctx context.Context, drawID primitive.ObjectID) (*models.Draw, error)

	// GetWinnersByDrawID retrieves the winners for a specific draw
	GetWinnersByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Winner, error)

	// GetDraws retrieves the most recent draws
	GetDraws(ctx context.Context, limit int) ([]*models.Draw, error)
}

// ParticipantService defines the interface for participant operations
type ParticipantService interface {
	// Import replaces the stored participants with the rows of a CSV
	Import(ctx context.Context, r io.Reader) (*ImportSummary, error)
	List(ctx context.Context) ([]models.Participant, error)
	Count(ctx context.Context) (int64, error)
}

// TemplateService defines the interface for report template operations
type TemplateService interface {
	// Save stores a template and returns warnings for slot counts that do
	// not match the prize table
	Save(ctx context.Context, template *models.Template) ([]string, error)
	Get(ctx context.Context, name string) (*models.Template, error)
	List(ctx context.Context) ([]*models.Template, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*LoginResponse, error)
	// EnsureAdmin creates the configured admin account if it does not exist
	EnsureAdmin(ctx context.Context, email, passwordHash string) error
}
