package handlers

import (
	"errors"
	"net/http"

	"github.com/ArowuTest/bridgetunes-raffle/internal/prng"
	"github.com/ArowuTest/bridgetunes-raffle/internal/raffle"
	"github.com/ArowuTest/bridgetunes-raffle/internal/repositories"
	"github.com/ArowuTest/bridgetunes-raffle/internal/services"
	"github.com/ArowuTest/bridgetunes-raffle/internal/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, raffle.ErrInvalidSeed),
		errors.Is(err, prng.ErrUnknownAlgorithm),
		errors.Is(err, utils.ErrMissingColumn),
		errors.Is(err, utils.ErrMalformedRow),
		errors.Is(err, utils.ErrInvalidBool),
		errors.Is(err, utils.ErrDuplicateParticipant):
		return http.StatusBadRequest
	case errors.Is(err, raffle.ErrPoolExhausted),
		errors.Is(err, services.ErrNoParticipants),
		errors.Is(err, services.ErrDrawNotCompleted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func objectIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return primitive.NilObjectID, false
	}
	return id, true
}
