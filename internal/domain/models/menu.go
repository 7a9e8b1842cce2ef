package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Menu item categories shown on the dashboard.
const (
	CategoryColdDrink = "Cold Drink"
	CategoryHotDrink  = "Hot Drink"
	CategoryFood      = "Food"
)

// ValidCategory reports whether the supplied category is one of the known
// menu categories.
func ValidCategory(category string) bool {
	switch category {
	case CategoryColdDrink, CategoryHotDrink, CategoryFood:
		return true
	}
	return false
}

// MenuItem is a sellable catalog entry.
type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MenuItemUpdate carries the optional fields of a partial menu update.
// Nil means "leave unchanged".
type MenuItemUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

// Empty reports whether the update would change nothing.
func (u MenuItemUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Category == nil && u.Price == nil && u.ImageURL == nil
}
