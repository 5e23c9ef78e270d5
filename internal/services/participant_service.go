package services

import (
	"context"
	"fmt"
	"io"

	"github.com/ArowuTest/bridgetunes-raffle/internal/metrics"
	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
	"github.com/ArowuTest/bridgetunes-raffle/internal/raffle"
	"github.com/ArowuTest/bridgetunes-raffle/internal/repositories"
	"github.com/ArowuTest/bridgetunes-raffle/internal/utils"
	"golang.org/x/exp/slog"
)

// ParticipantServiceImpl imports and lists raffle participants
type ParticipantServiceImpl struct {
	participantRepo repositories.ParticipantRepository
	importer        *utils.ParticipantCSVImporter
	metrics         *metrics.Metrics
}

// NewParticipantService creates a new ParticipantServiceImpl
func NewParticipantService(participantRepo repositories.ParticipantRepository, m *metrics.Metrics) *ParticipantServiceImpl {
	return &ParticipantServiceImpl{
		participantRepo: participantRepo,
		importer:        utils.NewParticipantCSVImporter(),
		metrics:         m,
	}
}

// Import parses the whole CSV before touching storage, so a bad row leaves
// the current participant set in place. A storage failure during the
// replace is returned as is and may leave the stored set partial; the
// import must then be repeated.
func (s *ParticipantServiceImpl) Import(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	res, err := s.importer.Import(r)
	if err != nil {
		return nil, err
	}
	if err := s.participantRepo.ReplaceAll(ctx, res.Participants); err != nil {
		slog.Error("Failed to store participants", "error", err)
		return nil, fmt.Errorf("failed to store participants: %w", err)
	}
	s.metrics.SetParticipants(len(res.Participants))

	summary := &ImportSummary{
		Participants: len(res.Participants),
		TotalTickets: res.TotalTickets,
		Digest:       raffle.ParticipantDigest(res.Participants),
	}
	slog.Info("Participants imported", "participants", summary.Participants, "tickets", summary.TotalTickets, "digest", summary.Digest)
	return summary, nil
}

// List returns participants in import order
func (s *ParticipantServiceImpl) List(ctx context.Context) ([]models.Participant, error) {
	return s.participantRepo.FindAll(ctx)
}

// Count returns the number of stored participants
func (s *ParticipantServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.participantRepo.Count(ctx)
}
