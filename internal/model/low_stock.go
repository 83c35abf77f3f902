package model

import "time"

// LowStockItem is the denormalized row served by the low-stock report. It is
// recomputed from Item and its associations on every request and never
// persisted. Reference names are nil when the item's foreign key is unset or
// points at a deleted row.
type LowStockItem struct {
	ID                string     `json:"id"`
	ItemName          string     `json:"item_name"`
	CategoryName      *string    `json:"category_name"`
	BrandName         *string    `json:"brand_name"`
	QuantityInStock   int        `json:"quantity_in_stock"`
	MinimumStockLevel int        `json:"minimum_stock_level"`
	ReorderQuantity   int        `json:"reorder_quantity"`
	SupplierName      *string    `json:"supplier_name"`
	StorageLocation   *string    `json:"storage_location"`
	ExpiryDate        *time.Time `json:"expiry_date"`
}
