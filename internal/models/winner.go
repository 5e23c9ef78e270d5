package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize categories, one per draw tier.
const (
	PrizeCategoryGrand       = "GRAND_PRIZE"
	PrizeCategoryConsolation = "CONSOLATION"
	PrizeCategoryVoucher     = "VOUCHER"
)

// Winner represents a winner in a draw
type Winner struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DrawID        primitive.ObjectID `bson:"drawId" json:"drawId"`
	ParticipantID uint32             `bson:"participantId" json:"participantId"`
	PrizeCategory string             `bson:"prizeCategory" json:"prizeCategory"`
	VoucherGroup  string             `bson:"voucherGroup,omitempty" json:"voucherGroup,omitempty"`
	Position      int                `bson:"position" json:"position"` // 1-based draw order within the category or group
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
