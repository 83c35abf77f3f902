package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item represents one stocked inventory item. All foreign keys are nullable
// and are not backed by database constraints: deleting a referenced category,
// brand, supplier or storage location leaves the key dangling and the
// association resolves to nil on reads.
type Item struct {
	ID                string     `json:"id" gorm:"type:uuid;primaryKey"`
	ItemName          string     `json:"item_name" gorm:"type:varchar(255);not null"`
	CategoryID        *string    `json:"category_id" gorm:"type:uuid"`
	BrandID           *string    `json:"brand_id" gorm:"type:uuid"`
	TypeDescription   *string    `json:"type_description" gorm:"type:text"`
	QuantityInStock   int        `json:"quantity_in_stock" gorm:"default:0"`
	Unit              string     `json:"unit" gorm:"type:varchar(50);not null"`
	MinimumStockLevel int        `json:"minimum_stock_level" gorm:"default:0"`
	ReorderQuantity   int        `json:"reorder_quantity" gorm:"default:0"`
	SupplierID        *string    `json:"supplier_id" gorm:"type:uuid"`
	StorageLocationID *string    `json:"storage_location_id" gorm:"type:uuid"`
	PurchaseDate      *time.Time `json:"purchase_date" gorm:"type:date"`
	ExpiryDate        *time.Time `json:"expiry_date" gorm:"type:date"`
	Notes             *string    `json:"notes" gorm:"type:text"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Category        *Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Brand           *Brand           `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Supplier        *Supplier        `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	StorageLocation *StorageLocation `json:"storage_location,omitempty" gorm:"foreignKey:StorageLocationID"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// ResolvedCategoryID returns the canonical category identifier for an item:
// the direct foreign key when set, otherwise the preloaded association's ID,
// otherwise the empty string.
func (i *Item) ResolvedCategoryID() string {
	if i.CategoryID != nil && *i.CategoryID != "" {
		return *i.CategoryID
	}
	if i.Category != nil {
		return i.Category.ID
	}
	return ""
}

// ResolvedStorageLocationID is the storage-location counterpart of
// ResolvedCategoryID.
func (i *Item) ResolvedStorageLocationID() string {
	if i.StorageLocationID != nil && *i.StorageLocationID != "" {
		return *i.StorageLocationID
	}
	if i.StorageLocation != nil {
		return i.StorageLocation.ID
	}
	return ""
}
