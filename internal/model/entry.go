package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// CatalogSnapshot is a point-in-time value copy of a CatalogRow attached to
// an Entry at match time. It is never a live reference: removing the row
// from a later catalog does not clear the snapshot.
type CatalogSnapshot struct {
	Barcode          string `json:"barcode"`
	ProductID        string `json:"product_id"`
	ProductName      string `json:"product_name"`
	SizeID           string `json:"size_id"`
	ColorID          string `json:"color_id"`
	VendorName       string `json:"vendor_name"`
	PurchasePrice    string `json:"purchase_price"`
	UOM              string `json:"uom"`
	Hir3             string `json:"hir3"`
	Hir5             string `json:"hir5"`
	CVGroup          string `json:"cv_group"`
	LastPurchaseYear string `json:"last_purchase_year"`
	ClosingStock     string `json:"closing_stock"`
	QtyReserve       string `json:"qty_reserve"`
}

// SnapshotOf copies the descriptive fields of a catalog row by value.
func SnapshotOf(row *CatalogRow) *CatalogSnapshot {
	if row == nil {
		return nil
	}
	return &CatalogSnapshot{
		Barcode:          row.Barcode,
		ProductID:        row.ProductID,
		ProductName:      row.ProductName,
		SizeID:           row.SizeID,
		ColorID:          row.ColorID,
		VendorName:       row.VendorName,
		PurchasePrice:    row.PurchasePrice,
		UOM:              row.UOM,
		Hir3:             row.Hir3,
		Hir5:             row.Hir5,
		CVGroup:          row.CVGroup,
		LastPurchaseYear: row.LastPurchaseYear,
		ClosingStock:     row.ClosingStock,
		QtyReserve:       row.QtyReserve,
	}
}

// Equal compares two snapshots by value. Two nils are equal.
func (s *CatalogSnapshot) Equal(other *CatalogSnapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	return *s == *other
}

// Values returns every snapshot field value, used by the substring search.
func (s *CatalogSnapshot) Values() []string {
	if s == nil {
		return nil
	}
	return []string{
		s.Barcode, s.ProductID, s.ProductName, s.SizeID, s.ColorID,
		s.VendorName, s.PurchasePrice, s.UOM, s.Hir3, s.Hir5,
		s.CVGroup, s.LastPurchaseYear, s.ClosingStock, s.QtyReserve,
	}
}

// Value serializes the snapshot to JSONB for storage.
func (s *CatalogSnapshot) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan deserializes a stored snapshot. A corrupt value degrades to an
// absent snapshot rather than failing the whole load.
func (s *CatalogSnapshot) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported snapshot column type")
	}
	if err := json.Unmarshal(data, s); err != nil {
		*s = CatalogSnapshot{}
		return nil
	}
	return nil
}

// EntryImage is one opaque encoded-image payload belonging to an Entry.
type EntryImage struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EntryID    uuid.UUID `gorm:"type:uuid;not null;index" json:"entry_id"`
	Payload    string    `gorm:"type:text;not null" json:"payload"`
	CapturedAt time.Time `gorm:"not null" json:"captured_at"`
}

// Entry is a finalized archive record: an operator-entered code, an
// attribution name, one or more images, and an optional catalog snapshot.
// Code, UserName, and Images are immutable after creation; only Lookup may
// be rewritten, and only by the reconcile pass.
type Entry struct {
	BaseModel
	Code     string           `gorm:"type:varchar(100);not null;index" json:"code" validate:"required"`
	UserName string           `gorm:"type:varchar(255);not null" json:"user_name"`
	Images   []EntryImage     `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"images"`
	Lookup   *CatalogSnapshot `gorm:"type:jsonb" json:"lookup_data,omitempty"`
}
