package model

import "strings"

// CatalogRow is one record of the imported master data. Every attribute is
// a free-form string taken verbatim from the source sheet; nothing is
// parsed or validated beyond the barcode emptiness check at import time.
//
// Position preserves the sheet's row order. Barcode uniqueness is NOT
// enforced; on duplicates the first inserted row wins every lookup.
type CatalogRow struct {
	BaseModel
	Position         int    `gorm:"not null;index" json:"position"`
	Barcode          string `gorm:"type:varchar(100);not null;index" json:"barcode"`
	ProductID        string `gorm:"type:varchar(100)" json:"product_id"`
	ProductName      string `gorm:"type:varchar(255)" json:"product_name"`
	SizeID           string `gorm:"type:varchar(50)" json:"size_id"`
	ColorID          string `gorm:"type:varchar(50)" json:"color_id"`
	VendorName       string `gorm:"type:varchar(255)" json:"vendor_name"`
	PurchasePrice    string `gorm:"type:varchar(50)" json:"purchase_price"`
	UOM              string `gorm:"type:varchar(50)" json:"uom"`
	Hir3             string `gorm:"type:varchar(50)" json:"hir3"`
	Hir5             string `gorm:"type:varchar(50)" json:"hir5"`
	CVGroup          string `gorm:"type:varchar(50)" json:"cv_group"`
	LastPurchaseYear string `gorm:"type:varchar(20)" json:"last_purchase_year"`
	ClosingStock     string `gorm:"type:varchar(50)" json:"closing_stock"`
	QtyReserve       string `gorm:"type:varchar(50)" json:"qty_reserve"`
}

// NormalizeBarcode folds a barcode or operator code into its comparison
// form: whitespace-trimmed and lowercased.
func NormalizeBarcode(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CatalogIndex maps normalized barcodes to rows for O(1) lookup while
// keeping the original first-inserted-wins tie-break.
type CatalogIndex map[string]*CatalogRow

// BuildCatalogIndex indexes rows by normalized barcode. Rows must be in
// insertion (position) order; later duplicates never displace an earlier row.
func BuildCatalogIndex(rows []CatalogRow) CatalogIndex {
	idx := make(CatalogIndex, len(rows))
	for i := range rows {
		key := NormalizeBarcode(rows[i].Barcode)
		if key == "" {
			continue
		}
		if _, ok := idx[key]; !ok {
			idx[key] = &rows[i]
		}
	}
	return idx
}

// Lookup returns the first-inserted row matching the given operator code,
// or nil when the catalog holds no match.
func (idx CatalogIndex) Lookup(code string) *CatalogRow {
	key := NormalizeBarcode(code)
	if key == "" {
		return nil
	}
	return idx[key]
}
