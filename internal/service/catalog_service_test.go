package service

import (
	"bytes"
	"testing"

	"go-barcode-archive/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newCatalogFixture() (*catalogService, *fakeCatalogRepo, *fakeEntryRepo) {
	catalogRepo := &fakeCatalogRepo{}
	entryRepo := &fakeEntryRepo{}
	svc := NewCatalogService(catalogRepo, entryRepo, nil).(*catalogService)
	return svc, catalogRepo, entryRepo
}

func sheetRow(cells ...string) []string { return cells }

func TestImportRowsMapsColumnsPositionally(t *testing.T) {
	svc, catalogRepo, _ := newCatalogFixture()

	imported, _, err := svc.ImportRows([][]string{
		sheetRow("Barcode", "Product ID", "Product Name"), // header, discarded
		sheetRow("123", "P-1", "Widget", "M", "Blue", "Acme", "9.50", "pcs", "H3", "H5", "G1", "2023", "12", "3"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	require.Len(t, catalogRepo.rows, 1)

	row := catalogRepo.rows[0]
	assert.Equal(t, "123", row.Barcode)
	assert.Equal(t, "P-1", row.ProductID)
	assert.Equal(t, "Widget", row.ProductName)
	assert.Equal(t, "Acme", row.VendorName)
	assert.Equal(t, "12", row.ClosingStock)
	assert.Equal(t, "3", row.QtyReserve)
}

func TestImportRowsDefaultsAndDrops(t *testing.T) {
	svc, catalogRepo, _ := newCatalogFixture()

	imported, _, err := svc.ImportRows([][]string{
		sheetRow("header"),
		sheetRow("123", "P-1", "Widget"), // short row: missing cells coerce
		sheetRow("", "P-2", "Ghost"),     // empty barcode: dropped
	})

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	require.Len(t, catalogRepo.rows, 1)

	row := catalogRepo.rows[0]
	assert.Equal(t, "", row.SizeID)
	assert.Equal(t, "0", row.ClosingStock)
	assert.Equal(t, "0", row.QtyReserve)
}

func TestImportZeroValidRowsLeavesCatalogUntouched(t *testing.T) {
	svc, catalogRepo, entryRepo := newCatalogFixture()

	// Seed a prior catalog and an entry with its snapshot
	require.NoError(t, catalogRepo.ReplaceAll([]model.CatalogRow{{Barcode: "old", ProductName: "Old"}}))
	entry := &model.Entry{Code: "old", Lookup: &model.CatalogSnapshot{Barcode: "old", ProductName: "Old"}}
	require.NoError(t, entryRepo.Create(entry))

	_, _, err := svc.ImportRows([][]string{
		sheetRow("header"),
		sheetRow("", "only-empty-barcodes"),
	})

	assert.ErrorIs(t, err, ErrNoValidRows)
	require.Len(t, catalogRepo.rows, 1)
	assert.Equal(t, "old", catalogRepo.rows[0].Barcode)
	assert.Equal(t, "Old", entryRepo.entries[0].Lookup.ProductName)
}

func TestImportTriggersReconcile(t *testing.T) {
	svc, _, entryRepo := newCatalogFixture()

	require.NoError(t, entryRepo.Create(&model.Entry{Code: " 123 "}))

	imported, reconciled, err := svc.ImportRows([][]string{
		sheetRow("header"),
		sheetRow("123", "P-1", "Widget"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 1, reconciled)
	require.NotNil(t, entryRepo.entries[0].Lookup)
	assert.Equal(t, "Widget", entryRepo.entries[0].Lookup.ProductName)
}

func TestReconcileFirstMatchWins(t *testing.T) {
	svc, catalogRepo, entryRepo := newCatalogFixture()

	require.NoError(t, catalogRepo.ReplaceAll([]model.CatalogRow{
		{Barcode: "123", ProductName: "First"},
		{Barcode: " 123 ", ProductName: "Second"},
	}))
	require.NoError(t, entryRepo.Create(&model.Entry{Code: "123"}))

	updated, err := svc.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, "First", entryRepo.entries[0].Lookup.ProductName)
}

func TestReconcileIdempotent(t *testing.T) {
	svc, catalogRepo, entryRepo := newCatalogFixture()

	require.NoError(t, catalogRepo.ReplaceAll([]model.CatalogRow{{Barcode: "123", ProductName: "Widget"}}))
	require.NoError(t, entryRepo.Create(&model.Entry{Code: "123"}))

	first, err := svc.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := svc.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, 0, second)
	assert.Equal(t, "Widget", entryRepo.entries[0].Lookup.ProductName)
}

func TestReconcileRetainsStaleSnapshot(t *testing.T) {
	svc, catalogRepo, entryRepo := newCatalogFixture()

	require.NoError(t, entryRepo.Create(&model.Entry{
		Code:   "123",
		Lookup: &model.CatalogSnapshot{Barcode: "123", ProductName: "Vanished"},
	}))
	// The replacement catalog no longer carries barcode 123
	require.NoError(t, catalogRepo.ReplaceAll([]model.CatalogRow{{Barcode: "999", ProductName: "Other"}}))

	updated, err := svc.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
	require.NotNil(t, entryRepo.entries[0].Lookup)
	assert.Equal(t, "Vanished", entryRepo.entries[0].Lookup.ProductName)
}

func TestReconcileSkipsWhenNoEntries(t *testing.T) {
	svc, catalogRepo, _ := newCatalogFixture()
	require.NoError(t, catalogRepo.ReplaceAll([]model.CatalogRow{{Barcode: "123"}}))

	updated, err := svc.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}

func TestImportWorkbookReadsFirstSheet(t *testing.T) {
	svc, catalogRepo, _ := newCatalogFixture()

	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	require.NoError(t, wb.SetSheetRow(sheet, "A1", &[]string{"Barcode", "Product ID", "Product Name"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A2", &[]string{"123", "P-1", "Widget"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A3", &[]string{"456", "P-2", "Gadget"}))

	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	require.NoError(t, wb.Close())

	imported, _, err := svc.ImportWorkbook(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.Equal(t, "Gadget", catalogRepo.rows[1].ProductName)
}

func TestImportWorkbookRejectsGarbage(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	_, _, err := svc.ImportWorkbook(bytes.NewReader([]byte("not a spreadsheet")))
	assert.ErrorIs(t, err, ErrUnreadableWorkbook)
}
