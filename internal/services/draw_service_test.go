package services

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/bridgetunes-raffle/internal/metrics"
	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
	"github.com/ArowuTest/bridgetunes-raffle/internal/prng"
	"github.com/ArowuTest/bridgetunes-raffle/internal/raffle"
	"github.com/ArowuTest/bridgetunes-raffle/internal/report"
	"github.com/ArowuTest/bridgetunes-raffle/internal/repositories"
)

const smallTemplate = "G={{ANY}} C={{NPW}} A={{A}} B={{B}}"

func smallSettings() DrawSettings {
	return DrawSettings{
		Tiers: raffle.Tiers{
			GrandPrizes:   1,
			Consolation:   1,
			VoucherGroups: []raffle.VoucherGroupSpec{{Name: "A", Count: 1}, {Name: "B", Count: 2}},
		},
		Layout:           report.DefaultLayout(),
		DefaultAlgorithm: string(prng.DefaultAlgorithm),
		DefaultTemplate:  smallTemplate,
	}
}

func heavyHitter() []models.Participant {
	return []models.Participant{
		{ID: 1, Tickets: 1, Submitted: true},
		{ID: 2, Tickets: 1, Submitted: true},
		{ID: 3, Tickets: 1, Submitted: true},
		{ID: 4, Tickets: 1, Submitted: true},
		{ID: 5, Tickets: 1000, Submitted: true},
	}
}

type DrawServiceSuite struct {
	suite.Suite
	ctx          context.Context
	participants *memParticipants
	draws        *memDraws
	winners      *memWinners
	templates    *memTemplates
	metrics      *metrics.Metrics
	svc          *DrawServiceImpl
}

func (s *DrawServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.participants = &memParticipants{rows: heavyHitter()}
	s.draws = newMemDraws()
	s.winners = &memWinners{}
	s.templates = newMemTemplates()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.svc = NewDrawService(s.draws, s.winners, s.participants, s.templates, smallSettings(), s.metrics)
}

func TestDrawServiceSuite(t *testing.T) {
	suite.Run(t, new(DrawServiceSuite))
}

func (s *DrawServiceSuite) TestExecuteDraw() {
	draw, err := s.svc.ExecuteDraw(s.ctx, ExecuteDrawRequest{Seed: "0x1", ExecutedBy: "ops@example.com"})
	s.Require().NoError(err)

	s.Equal(models.DrawStatusCompleted, draw.Status)
	s.Equal("0x1", draw.Seed)
	s.Equal("chacha12", draw.Algorithm)
	s.Equal(raffle.ParticipantDigest(heavyHitter()), draw.ParticipantDigest)
	s.Equal([]uint32{5}, draw.GrandPrizeWinners)
	s.Equal([]uint32{3}, draw.ConsolationWinners)
	s.Equal([]models.VoucherGroup{
		{Name: "A", Winners: []uint32{1}},
		{Name: "B", Winners: []uint32{4, 2}},
	}, draw.VoucherGroups)
	s.Equal("G=#5 C=#3 A=1 B=4 2", draw.Report)
	s.Equal(5, draw.Stats.Participants)
	s.Equal(1004, draw.Stats.TotalTickets)
	s.False(draw.ExecutionEndTime.IsZero())

	stored, err := s.draws.FindByID(s.ctx, draw.ID)
	s.Require().NoError(err)
	s.Equal(models.DrawStatusCompleted, stored.Status)
	s.Equal(draw.Report, stored.Report)

	rows, err := s.svc.GetWinnersByDrawID(s.ctx, draw.ID)
	s.Require().NoError(err)
	s.Require().Len(rows, 5)
	s.Equal(models.PrizeCategoryGrand, rows[0].PrizeCategory)
	s.Equal(uint32(5), rows[0].ParticipantID)
	s.Equal(models.PrizeCategoryVoucher, rows[4].PrizeCategory)
	s.Equal("B", rows[4].VoucherGroup)
	s.Equal(2, rows[4].Position)
	s.Equal(uint32(2), rows[4].ParticipantID)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.DrawsTotal.WithLabelValues("COMPLETED")))
}

func (s *DrawServiceSuite) TestExecuteDrawIsReproducible() {
	a, err := s.svc.ExecuteDraw(s.ctx, ExecuteDrawRequest{Seed: "c0ffee", Algorithm: "chacha20"})
	s.Require().NoError(err)
	b, err := s.svc.ExecuteDraw(s.ctx, ExecuteDrawRequest{Seed: "0xC0FFEE", Algorithm: "ChaCha20"})
	s.Require().NoError(err)

	s.NotEqual(a.ID, b.ID)
	s.Equal(a.Report, b.Report)
	s.Equal(a.Seed, b.Seed)
}

func (s *DrawServiceSuite) TestExecuteDrawWithStoredTemplate() {
	s.Require().NoError(s.templates.Upsert(s.ctx, &models.Template{Name: "short", Content: "winner {{ANY}}"}))

	draw, err := s.svc.ExecuteDraw(s.ctx, ExecuteDrawRequest{Seed: "1", TemplateName: "short"})
	s.Require().NoError(err)

	s.Equal("winner #5", draw.Report)
	s.Equal("short", draw.TemplateName)
	s.True(containsLine(draw.ExecutionLog, "WARNING: template has 0 consolation slots"))
}

func (s *DrawServiceSuite) TestExecuteDrawRejectsBadInput() {
	tests := []struct {
		name string
		req  ExecuteDrawRequest
		err  error
	}{
		{"bad seed", ExecuteDrawRequest{Seed: "zz"}, raffle.ErrInvalidSeed},
		{"bad algorithm", ExecuteDrawRequest{Seed: "1", Algorithm: "mt"}, prng.ErrUnknownAlgorithm},
		{"missing template", ExecuteDrawRequest{Seed: "1", TemplateName: "nope"}, repositories.ErrNotFound},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.ExecuteDraw(s.ctx, tt.req)
			s.ErrorIs(err, tt.err)
		})
	}
	s.Empty(s.draws.order, "input errors must not create draw records")
}

func (s *DrawServiceSuite) TestExecuteDrawWithoutParticipants() {
	s.participants.rows = nil

	_, err := s.svc.ExecuteDraw(s.ctx, ExecuteDrawRequest{Seed: "1"})
	s.ErrorIs(err, ErrNoParticipants)
}

func (s *DrawServiceSuite) TestExecuteDrawPoolExhaustedIsRecorded() {
	for i := range s.participants.rows {
		s.participants.rows[i].Submitted = false
	}

	draw, err := s.svc.ExecuteDraw(s.ctx, ExecuteDrawRequest{Seed: "1"})
	s.Require().ErrorIs(err, raffle.ErrPoolExhausted)
	s.Require().NotNil(draw)

	stored, findErr := s.draws.FindByID(s.ctx, draw.ID)
	s.Require().NoError(findErr)
	s.Equal(models.DrawStatusFailed, stored.Status)
	s.Contains(stored.ErrorMessage, "consolation")
	s.Empty(s.winners.rows)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.DrawsTotal.WithLabelValues("FAILED")))
}

func (s *DrawServiceSuite) TestExecuteDrawWinnerStorageFailure() {
	s.winners.err = errStorage

	draw, err := s.svc.ExecuteDraw(s.ctx, ExecuteDrawRequest{Seed: "1"})
	s.Require().ErrorIs(err, errStorage)

	stored, findErr := s.draws.FindByID(s.ctx, draw.ID)
	s.Require().NoError(findErr)
	s.Equal(models.DrawStatusFailed, stored.Status)
}

func (s *DrawServiceSuite) TestVerifyDraw() {
	draw, err := s.svc.ExecuteDraw(s.ctx, ExecuteDrawRequest{Seed: "0xdeadbeef"})
	s.Require().NoError(err)

	res, err := s.svc.VerifyDraw(s.ctx, draw.ID)
	s.Require().NoError(err)
	s.True(res.Verified)
	s.Empty(res.Mismatches)

	// a changed participant set no longer reproduces the draw
	s.participants.rows[4].Tickets = 1
	res, err = s.svc.VerifyDraw(s.ctx, draw.ID)
	s.Require().NoError(err)
	s.False(res.Verified)
	s.NotEmpty(res.Mismatches)
}

func (s *DrawServiceSuite) TestVerifyDrawDetectsEditedReport() {
	draw, err := s.svc.ExecuteDraw(s.ctx, ExecuteDrawRequest{Seed: "0x1"})
	s.Require().NoError(err)
	s.Equal(smallTemplate, draw.Template)

	stored := s.draws.draws[draw.ID]
	stored.Report = "G=#999 C=#998 A=1 B=4 2"
	s.draws.draws[draw.ID] = stored

	res, err := s.svc.VerifyDraw(s.ctx, draw.ID)
	s.Require().NoError(err)
	s.False(res.Verified)
	s.Equal([]string{"report differs from the re-drawn winners"}, res.Mismatches)
}

func (s *DrawServiceSuite) TestVerifyDrawErrors() {
	_, err := s.svc.VerifyDraw(s.ctx, primitive.NewObjectID())
	s.ErrorIs(err, repositories.ErrNotFound)

	for i := range s.participants.rows {
		s.participants.rows[i].Submitted = false
	}
	failed, _ := s.svc.ExecuteDraw(s.ctx, ExecuteDrawRequest{Seed: "1"})
	s.Require().NotNil(failed)

	_, err = s.svc.VerifyDraw(s.ctx, failed.ID)
	s.ErrorIs(err, ErrDrawNotCompleted)
}

func (s *DrawServiceSuite) TestGetDraws() {
	for _, seed := range []string{"1", "2", "3"} {
		_, err := s.svc.ExecuteDraw(s.ctx, ExecuteDrawRequest{Seed: seed})
		s.Require().NoError(err)
	}

	draws, err := s.svc.GetDraws(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(draws, 2)
	s.Equal("0x3", draws[0].Seed)

	draws, err = s.svc.GetDraws(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(draws, 3)

	_, err = s.svc.GetWinnersByDrawID(s.ctx, primitive.NewObjectID())
	s.ErrorIs(err, repositories.ErrNotFound)
}

func containsLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestWinnerRowsPositions(t *testing.T) {
	res := &raffle.Result{
		GrandPrize:  []uint32{9, 8},
		Consolation: []uint32{7},
		Vouchers:    []raffle.VoucherGroup{{Name: "GF10", Winners: []uint32{6, 5}}},
	}
	id := primitive.NewObjectID()

	rows := winnerRows(id, res)

	require.Len(t, rows, 5)
	assert.Equal(t, 2, rows[1].Position)
	assert.Equal(t, 1, rows[2].Position)
	assert.Equal(t, models.PrizeCategoryConsolation, rows[2].PrizeCategory)
	assert.Equal(t, "GF10", rows[3].VoucherGroup)
	for _, r := range rows {
		assert.Equal(t, id, r.DrawID)
	}
}
