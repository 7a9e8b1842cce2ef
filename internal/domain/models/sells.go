package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SellsEntry is one recorded sales event inside an open-sells log.
type SellsEntry struct {
	Frequency int       `bson:"frequency" json:"frequency"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// SellsRecord tracks a sales period for a single menu item between an
// explicit open and close action. UnitsSold is append-only; TotalFreq is a
// cached projection of it and is recomputed on every append.
type SellsRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemID    primitive.ObjectID `bson:"itemId" json:"itemId"`
	UnitsSold []SellsEntry       `bson:"unitsSold" json:"unitsSold"`
	TotalFreq int                `bson:"totalFreq" json:"totalFreq"`
	IsClosed  bool               `bson:"isClosed" json:"isClosed"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TotalFrequency sums frequency across every entry in the log. Callers must
// use this, never increment the cached field, so replaying the log always
// reproduces the stored total.
func (s *SellsRecord) TotalFrequency() int {
	var sum int
	for _, entry := range s.UnitsSold {
		sum += entry.Frequency
	}
	return sum
}

// OpenSellsView is a SellsRecord with the referenced menu item resolved at
// read time for display. The join is never stored.
type OpenSellsView struct {
	SellsRecord `bson:",inline"`
	Item        *MenuItem `bson:"item,omitempty" json:"item,omitempty"`
}
