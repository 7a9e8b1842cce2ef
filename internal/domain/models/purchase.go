package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Purchase is an expense record for supplies bought by the café. A purchase
// stays open while it is still being edited and is closed once finalized;
// only closed purchases count toward expense reports.
type Purchase struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	UnitPrice   float64            `bson:"unitPrice" json:"unitPrice"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	IsClosed    bool               `bson:"isClosed" json:"isClosed"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Amount is the total cost of the purchase.
func (p *Purchase) Amount() float64 {
	return p.UnitPrice * float64(p.Quantity)
}

// PurchaseUpdate carries the optional fields of a partial purchase update.
type PurchaseUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	UnitPrice   *float64 `json:"unitPrice,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
}

// Empty reports whether the update would change nothing.
func (u PurchaseUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.UnitPrice == nil && u.Quantity == nil
}
