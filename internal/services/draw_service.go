package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/bridgetunes-raffle/internal/metrics"
	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
	"github.com/ArowuTest/bridgetunes-raffle/internal/prng"
	"github.com/ArowuTest/bridgetunes-raffle/internal/raffle"
	"github.com/ArowuTest/bridgetunes-raffle/internal/report"
	"github.com/ArowuTest/bridgetunes-raffle/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DrawServiceImpl runs raffle draws over the stored participants
type DrawServiceImpl struct {
	drawRepo        repositories.DrawRepository
	winnerRepo      repositories.WinnerRepository
	participantRepo repositories.ParticipantRepository
	templateRepo    repositories.TemplateRepository
	settings        DrawSettings
	metrics         *metrics.Metrics
	now             func() time.Time
}

// NewDrawService creates a new DrawServiceImpl
func NewDrawService(
	drawRepo repositories.DrawRepository,
	winnerRepo repositories.WinnerRepository,
	participantRepo repositories.ParticipantRepository,
	templateRepo repositories.TemplateRepository,
	settings DrawSettings,
	m *metrics.Metrics,
) *DrawServiceImpl {
	return &DrawServiceImpl{
		drawRepo:        drawRepo,
		winnerRepo:      winnerRepo,
		participantRepo: participantRepo,
		templateRepo:    templateRepo,
		settings:        settings,
		metrics:         m,
		now:             time.Now,
	}
}

func (s *DrawServiceImpl) logf(draw *models.Draw, format string, args ...interface{}) {
	draw.ExecutionLog = append(draw.ExecutionLog, fmt.Sprintf("%s: %s", s.now().Format(time.RFC3339), fmt.Sprintf(format, args...)))
}

// ExecuteDraw validates the request, runs the raffle and persists the draw
// with its winners. Input errors are returned before anything is stored;
// once the draw record exists, failures are recorded on it as FAILED.
func (s *DrawServiceImpl) ExecuteDraw(ctx context.Context, req ExecuteDrawRequest) (draw *models.Draw, err error) {
	start := s.now()

	// 1. Parse inputs
	seed, err := raffle.ParseSeed(req.Seed)
	if err != nil {
		return nil, err
	}
	algName := req.Algorithm
	if algName == "" {
		algName = s.settings.DefaultAlgorithm
	}
	alg, err := prng.ParseAlgorithm(algName)
	if err != nil {
		return nil, err
	}

	// 2. Resolve the template
	content := s.settings.DefaultTemplate
	if req.TemplateName != "" {
		tmpl, err := s.templateRepo.FindByName(ctx, req.TemplateName)
		if err != nil {
			return nil, fmt.Errorf("failed to load template %q: %w", req.TemplateName, err)
		}
		content = tmpl.Content
	}

	// 3. Load participants
	participants, err := s.participantRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	// 4. Record the draw as EXECUTING
	draw = &models.Draw{
		Seed:               raffle.FormatSeed(seed),
		Algorithm:          string(alg),
		ParticipantDigest:  raffle.ParticipantDigest(participants),
		TemplateName:       req.TemplateName,
		Template:           content,
		Status:             models.DrawStatusExecuting,
		ExecutedBy:         req.ExecutedBy,
		ExecutionStartTime: start,
	}
	s.logf(draw, "Starting execution with seed %s (%s) over %d participants", draw.Seed, draw.Algorithm, len(participants))
	if err = s.drawRepo.Create(ctx, draw); err != nil {
		slog.Error("ExecuteDraw: Failed to create draw record", "error", err)
		return nil, fmt.Errorf("failed to save draw: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic during execution: %v", raffle.ErrInvariantViolation, r)
		}
		if err != nil {
			draw.Status = models.DrawStatusFailed
			draw.ErrorMessage = err.Error()
			s.logf(draw, "ERROR: %s", err.Error())
		} else {
			draw.Status = models.DrawStatusCompleted
			s.logf(draw, "Execution completed successfully")
		}
		draw.ExecutionEndTime = s.now()
		if updateErr := s.drawRepo.Update(ctx, draw); updateErr != nil {
			slog.Error("ExecuteDraw: CRITICAL: Failed to update final draw status", "error", updateErr, "drawId", draw.ID, "finalStatusAttempt", draw.Status)
		}
		s.metrics.ObserveDraw(string(draw.Status), start, draw.Stats.TicketsBurned, draw.Stats.TicketsSkipped)
	}()

	// 5. Run the raffle
	res, err := raffle.Run(participants, raffle.Options{Seed: seed, Algorithm: alg, Tiers: s.settings.Tiers})
	if err != nil {
		slog.Error("ExecuteDraw: Draw failed", "error", err, "drawId", draw.ID, "seed", draw.Seed)
		return draw, err
	}
	applyResult(draw, res)
	s.logf(draw, "Drew %d tickets (%d burned, %d skipped) of %d", res.Stats.Drawn, res.Stats.Burned, res.Stats.Skipped, res.Stats.TotalTickets)

	// 6. Fill the report
	for _, warning := range report.Count(content, s.settings.Tiers, s.settings.Layout).Mismatches(s.settings.Tiers) {
		s.logf(draw, "WARNING: %s", warning)
	}
	draw.Report = report.Fill(content, res, s.settings.Layout)

	// 7. Persist winners
	if err = s.winnerRepo.CreateMany(ctx, winnerRows(draw.ID, res)); err != nil {
		slog.Error("ExecuteDraw: Failed to save winners", "error", err, "drawId", draw.ID)
		return draw, fmt.Errorf("failed to save winners: %w", err)
	}

	slog.Info("Draw executed", "drawId", draw.ID, "seed", draw.Seed, "algorithm", draw.Algorithm, "winners", len(res.Winners()))
	return draw, nil
}

func applyResult(draw *models.Draw, res *raffle.Result) {
	draw.GrandPrizeWinners = res.GrandPrize
	draw.ConsolationWinners = res.Consolation
	draw.VoucherGroups = make([]models.VoucherGroup, len(res.Vouchers))
	for i, g := range res.Vouchers {
		draw.VoucherGroups[i] = models.VoucherGroup{Name: g.Name, Winners: g.Winners}
	}
	draw.Stats = models.DrawStats{
		Participants:   res.Stats.Participants,
		TotalTickets:   res.Stats.TotalTickets,
		TicketsDrawn:   res.Stats.Drawn,
		TicketsBurned:  res.Stats.Burned,
		TicketsSkipped: res.Stats.Skipped,
	}
}

// winnerRows flattens a result into one row per winner, positions 1-based
// within each category or voucher group.
func winnerRows(drawID primitive.ObjectID, res *raffle.Result) []*models.Winner {
	rows := make([]*models.Winner, 0, len(res.Winners()))
	add := func(category, group string, ids []uint32) {
		for i, id := range ids {
			rows = append(rows, &models.Winner{
				DrawID:        drawID,
				ParticipantID: id,
				PrizeCategory: category,
				VoucherGroup:  group,
				Position:      i + 1,
			})
		}
	}
	add(models.PrizeCategoryGrand, "", res.GrandPrize)
	add(models.PrizeCategoryConsolation, "", res.Consolation)
	for _, g := range res.Vouchers {
		add(models.PrizeCategoryVoucher, g.Name, g.Winners)
	}
	return rows
}

// manifestFromDraw rebuilds the audit manifest of a stored draw.
func manifestFromDraw(draw *models.Draw) *raffle.Manifest {
	m := &raffle.Manifest{
		Seed:              draw.Seed,
		Algorithm:         draw.Algorithm,
		ParticipantDigest: draw.ParticipantDigest,
		GrandPrize:        draw.GrandPrizeWinners,
		Consolation:       draw.ConsolationWinners,
	}
	for _, g := range draw.VoucherGroups {
		m.Vouchers = append(m.Vouchers, raffle.ManifestGroup{Name: g.Name, Winners: g.Winners})
	}
	return m
}

// VerifyDraw re-runs a completed draw from its stored seed and algorithm
// with the tier sizes it was drawn with, then refills the stored template
// and compares it with the published report.
func (s *DrawServiceImpl) VerifyDraw(ctx context.Context, drawID primitive.ObjectID) (*VerifyResult, error) {
	draw, err := s.drawRepo.FindByID(ctx, drawID)
	if err != nil {
		return nil, fmt.Errorf("draw not found: %w", err)
	}
	if draw.Status != models.DrawStatusCompleted {
		return nil, fmt.Errorf("%w (current: %s)", ErrDrawNotCompleted, draw.Status)
	}

	seed, err := raffle.ParseSeed(draw.Seed)
	if err != nil {
		return nil, err
	}
	alg, err := prng.ParseAlgorithm(draw.Algorithm)
	if err != nil {
		return nil, err
	}
	participants, err := s.participantRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}

	tiers := raffle.Tiers{GrandPrizes: len(draw.GrandPrizeWinners), Consolation: len(draw.ConsolationWinners)}
	for _, g := range draw.VoucherGroups {
		tiers.VoucherGroups = append(tiers.VoucherGroups, raffle.VoucherGroupSpec{Name: g.Name, Count: len(g.Winners)})
	}

	digest := raffle.ParticipantDigest(participants)
	result := &VerifyResult{DrawID: draw.ID, ParticipantDigest: digest}

	res, err := raffle.Run(participants, raffle.Options{Seed: seed, Algorithm: alg, Tiers: tiers})
	if err != nil {
		if errors.Is(err, raffle.ErrPoolExhausted) {
			result.Mismatches = []string{err.Error()}
			return result, nil
		}
		return nil, err
	}

	result.Mismatches = manifestFromDraw(draw).Mismatches(digest, res)
	if report.Fill(draw.Template, res, s.settings.Layout) != draw.Report {
		result.Mismatches = append(result.Mismatches, "report differs from the re-drawn winners")
	}
	result.Verified = len(result.Mismatches) == 0
	slog.Info("Draw verified", "drawId", draw.ID, "verified", result.Verified, "mismatches", len(result.Mismatches))
	return result, nil
}

// GetDrawByID retrieves a draw by its ID
func (s *DrawServiceImpl) GetDrawByID(ctx context.Context, drawID primitive.ObjectID) (*models.Draw, error) {
	return s.drawRepo.FindByID(ctx, drawID)
}

// GetWinnersByDrawID retrieves the winners for a specific draw
func (s *DrawServiceImpl) GetWinnersByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Winner, error) {
	if _, err := s.drawRepo.FindByID(ctx, drawID); err != nil {
		return nil, err
	}
	return s.winnerRepo.FindByDrawID(ctx, drawID)
}

// GetDraws retrieves the most recent draws
func (s *DrawServiceImpl) GetDraws(ctx context.Context, limit int) ([]*models.Draw, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.drawRepo.FindRecent(ctx, limit)
}
