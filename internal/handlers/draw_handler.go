package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ArowuTest/bridgetunes-raffle/internal/middleware"
	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
	"github.com/ArowuTest/bridgetunes-raffle/internal/raffle"
	"github.com/ArowuTest/bridgetunes-raffle/internal/services"
	"github.com/gin-gonic/gin"
)

// DrawHandler handles draw-related HTTP requests
type DrawHandler struct {
	drawService services.DrawService
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{drawService: drawService}
}

// ExecuteDraw handles POST /draws
func (h *DrawHandler) ExecuteDraw(c *gin.Context) {
	var req services.ExecuteDrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ExecutedBy = c.GetString(middleware.ContextUserEmail)

	draw, err := h.drawService.ExecuteDraw(c.Request.Context(), req)
	if err != nil {
		// a failed draw record carries the execution log
		if draw != nil {
			_ = c.Error(err)
			c.JSON(statusFor(err), gin.H{"error": err.Error(), "draw_details": draw})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draw)
}

// GetDraws handles GET /draws?limit=N
func (h *DrawHandler) GetDraws(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}
	draws, err := h.drawService.GetDraws(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draws)
}

// GetDrawByID handles GET /draws/:id
func (h *DrawHandler) GetDrawByID(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		return
	}
	draw, err := h.drawService.GetDrawByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draw)
}

// GetDrawReport handles GET /draws/:id/report and returns the filled
// template verbatim
func (h *DrawHandler) GetDrawReport(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		return
	}
	draw, err := h.drawService.GetDrawByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if draw.Status != models.DrawStatusCompleted {
		respondError(c, services.ErrDrawNotCompleted)
		return
	}
	c.String(http.StatusOK, draw.Report)
}

// GetWinners handles GET /draws/:id/winners
func (h *DrawHandler) GetWinners(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		return
	}
	winners, err := h.drawService.GetWinnersByDrawID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, winners)
}

// GetManifest handles GET /draws/:id/manifest and returns the YAML audit record
func (h *DrawHandler) GetManifest(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		return
	}
	draw, err := h.drawService.GetDrawByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if draw.Status != models.DrawStatusCompleted {
		respondError(c, services.ErrDrawNotCompleted)
		return
	}
	seed, err := raffle.ParseSeed(draw.Seed)
	if err != nil {
		respondError(c, errors.Join(raffle.ErrInvariantViolation, err))
		return
	}

	res := &raffle.Result{
		GrandPrize:  draw.GrandPrizeWinners,
		Consolation: draw.ConsolationWinners,
		Stats: raffle.Stats{
			Participants: draw.Stats.Participants,
			TotalTickets: draw.Stats.TotalTickets,
			Drawn:        draw.Stats.TicketsDrawn,
			Burned:       draw.Stats.TicketsBurned,
			Skipped:      draw.Stats.TicketsSkipped,
		},
	}
	for _, g := range draw.VoucherGroups {
		res.Vouchers = append(res.Vouchers, raffle.VoucherGroup{Name: g.Name, Winners: g.Winners})
	}

	c.Header("Content-Type", "application/yaml")
	c.Status(http.StatusOK)
	if err := raffle.NewManifest(seed, draw.Algorithm, draw.ParticipantDigest, res).WriteYAML(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// VerifyDraw handles POST /draws/:id/verify
func (h *DrawHandler) VerifyDraw(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		return
	}
	result, err := h.drawService.VerifyDraw(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
