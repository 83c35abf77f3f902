// Package stock holds the low-stock classification rule and the in-memory
// item filter used by the list and report endpoints.
package stock

import "inventory-service/internal/model"

// Status is the stock classification of an item.
type Status string

const (
	StatusLow Status = "Low Stock"
	StatusIn  Status = "In Stock"
)

// Classify decides the stock status from a quantity on hand and a minimum
// stock level. The boundary is inclusive: a quantity exactly equal to the
// minimum is low stock.
func Classify(quantity, minimum int) Status {
	if quantity <= minimum {
		return StatusLow
	}
	return StatusIn
}

// ClassifyItem applies Classify to an item's own fields.
func ClassifyItem(item model.Item) Status {
	return Classify(item.QuantityInStock, item.MinimumStockLevel)
}
