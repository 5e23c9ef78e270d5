package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawStatus represents the status of a draw
type DrawStatus string

const (
	DrawStatusExecuting DrawStatus = "EXECUTING"
	DrawStatusCompleted DrawStatus = "COMPLETED"
	DrawStatusFailed    DrawStatus = "FAILED"
)

// VoucherGroup is one named slice of the voucher tier.
type VoucherGroup struct {
	Name    string   `bson:"name" json:"name"`
	Winners []uint32 `bson:"winners" json:"winners"`
}

// DrawStats summarises how the ticket pool was consumed.
type DrawStats struct {
	Participants   int `bson:"participants" json:"participants"`
	TotalTickets   int `bson:"totalTickets" json:"totalTickets"`
	TicketsDrawn   int `bson:"ticketsDrawn" json:"ticketsDrawn"`
	TicketsBurned  int `bson:"ticketsBurned" json:"ticketsBurned"`
	TicketsSkipped int `bson:"ticketsSkipped" json:"ticketsSkipped"`
}

// Draw is the persisted record of one raffle execution. Seed, Algorithm and
// ParticipantDigest are enough to re-derive every winner.
type Draw struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Seed               string             `bson:"seed" json:"seed"`
	Algorithm          string             `bson:"algorithm" json:"algorithm"`
	ParticipantDigest  string             `bson:"participantDigest" json:"participantDigest"`
	TemplateName       string             `bson:"templateName,omitempty" json:"templateName,omitempty"`
	Template           string             `bson:"template" json:"template,omitempty"` // content the report was filled from
	Status             DrawStatus         `bson:"status" json:"status"`
	GrandPrizeWinners  []uint32           `bson:"grandPrizeWinners" json:"grandPrizeWinners"`
	ConsolationWinners []uint32           `bson:"consolationWinners" json:"consolationWinners"`
	VoucherGroups      []VoucherGroup     `bson:"voucherGroups" json:"voucherGroups"`
	Stats              DrawStats          `bson:"stats" json:"stats"`
	Report             string             `bson:"report,omitempty" json:"report,omitempty"`
	ExecutedBy         string             `bson:"executedBy,omitempty" json:"executedBy,omitempty"`
	ExecutionLog       []string           `bson:"executionLog,omitempty" json:"executionLog,omitempty"`
	ErrorMessage       string             `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	ExecutionStartTime time.Time          `bson:"executionStartTime,omitempty" json:"executionStartTime,omitempty"`
	ExecutionEndTime   time.Time          `bson:"executionEndTime,omitempty" json:"executionEndTime,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
