package service

import (
	"bytes"
	"testing"
	"time"

	"go-barcode-archive/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newExportFixture(t *testing.T) (ExportService, []model.Entry) {
	t.Helper()
	entryRepo := &fakeEntryRepo{}

	older := &model.Entry{
		BaseModel: model.BaseModel{ID: uuid.New(), CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)},
		Code:      "123",
		UserName:  "alice",
		Lookup:    &model.CatalogSnapshot{ProductName: "Widget", VendorName: "Acme", ClosingStock: "42"},
	}
	newer := &model.Entry{
		BaseModel: model.BaseModel{ID: uuid.New(), CreatedAt: time.Date(2026, 1, 3, 10, 0, 0, 0, time.UTC)},
		Code:      "456",
		UserName:  "bob",
		// no snapshot: exported columns stay empty
	}
	require.NoError(t, entryRepo.Create(older))
	require.NoError(t, entryRepo.Create(newer))

	return NewExportService(entryRepo), []model.Entry{*older, *newer}
}

func TestGenerateWorkbookAllEntries(t *testing.T) {
	svc, _ := newExportFixture(t)

	data, err := svc.GenerateWorkbook(nil)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 entries

	assert.Equal(t, exportColumns, rows[0][:6])

	// Newest first
	assert.Equal(t, "456", rows[1][0])
	assert.Equal(t, "bob", rows[1][4])

	assert.Equal(t, "123", rows[2][0])
	assert.Equal(t, "Widget", rows[2][1])
	assert.Equal(t, "Acme", rows[2][2])
	assert.Equal(t, "42", rows[2][3])
	assert.Equal(t, "alice", rows[2][4])
}

func TestGenerateWorkbookSelection(t *testing.T) {
	svc, entries := newExportFixture(t)

	data, err := svc.GenerateWorkbook([]uuid.UUID{entries[0].ID})
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "123", rows[1][0])
}

func TestGeneratePDF(t *testing.T) {
	svc, _ := newExportFixture(t)

	data, err := svc.GeneratePDF(nil)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
