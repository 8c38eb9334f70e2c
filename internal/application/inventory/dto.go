package inventory

import (
	"github.com/chefcode/backend/internal/domain/inventory"
	"github.com/chefcode/backend/internal/domain/shared"
)

// CreateRequest carries a validated inventory add. ExpiryDate is the wire
// YYYY-MM-DD form; the boundary has already rejected past dates.
type CreateRequest struct {
	Name       string  `json:"name" binding:"required"`
	Unit       string  `json:"unit"`
	Quantity   float64 `json:"quantity" binding:"gte=0"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	LotNumber  *string `json:"lot_number"`
	ExpiryDate *string `json:"expiry_date"`
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name       *string  `json:"name"`
	Unit       *string  `json:"unit"`
	Quantity   *float64 `json:"quantity"`
	Category   *string  `json:"category"`
	Price      *float64 `json:"price"`
	LotNumber  *string  `json:"lot_number"`
	ExpiryDate *string  `json:"expiry_date"`
}

// ItemResponse is the client-facing shape of an inventory row.
type ItemResponse struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Quantity   float64 `json:"quantity"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	LotNumber  *string `json:"lot_number"`
	ExpiryDate *string `json:"expiry_date"`
}

// AddResult reports what an add actually did: Created means a new row exists,
// Merged means an existing row's quantity was incremented instead.
type AddResult struct {
	Item    ItemResponse `json:"item"`
	Created bool         `json:"created"`
	Merged  bool         `json:"merged"`
	Message string       `json:"message"`
}

// ToItemResponse converts a domain item to its response shape.
func ToItemResponse(item *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:         item.ID,
		Name:       item.Name,
		Unit:       item.Unit,
		Quantity:   item.Quantity,
		Category:   item.Category,
		Price:      item.Price,
		LotNumber:  item.LotNumber,
		ExpiryDate: shared.FormatDate(item.ExpiryDate),
	}
}
