package model

// PendingEntry is a bulk-uploaded image awaiting an operator-entered code.
// It is never edited in place: the only transitions are promotion to an
// Entry (consuming the payload) or discard.
//
// Position preserves file-selection order within an upload batch.
type PendingEntry struct {
	BaseModel
	Position int    `gorm:"not null;index" json:"position"`
	Payload  string `gorm:"type:text;not null" json:"payload"`
}
