package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go-barcode-archive/internal/model"
	"go-barcode-archive/internal/repository"
	"go-barcode-archive/internal/ws"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnreadableWorkbook = errors.New("could not read spreadsheet file")
	ErrEmptyWorkbook      = errors.New("spreadsheet contains no sheets")
	ErrNoValidRows        = errors.New("no valid rows found: every row is missing a barcode")
)

// catalogColumnCount is the positional column contract of the import sheet:
// barcode, productId, productName, sizeId, colorId, vendorName,
// purchasePrice, uom, hir3, hir5, cvGroup, lastPurchaseYear, closingStock,
// qtyReserve. Column order is a silent contract with the source file; no
// header names are validated.
const catalogColumnCount = 14

type CatalogService interface {
	// ImportWorkbook reads the first sheet of an .xlsx upload and replaces
	// the catalog with its rows. Returns the number of imported rows and
	// the number of existing entries whose snapshot was refreshed.
	ImportWorkbook(file io.Reader) (imported int, reconciled int, err error)
	// ImportRows replaces the catalog from an already-decoded table. The
	// first row is treated as a header and discarded.
	ImportRows(rows [][]string) (imported int, reconciled int, err error)
	// Reconcile re-derives every entry's catalog snapshot against the
	// current catalog. Returns the number of rewritten snapshots.
	Reconcile() (int, error)
	GetCatalog() ([]model.CatalogRow, error)
	Clear() error
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
	entryRepo   repository.EntryRepository
	wsHub       *ws.Hub
}

func NewCatalogService(catalogRepo repository.CatalogRepository, entryRepo repository.EntryRepository, hub *ws.Hub) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		entryRepo:   entryRepo,
		wsHub:       hub,
	}
}

func (s *catalogService) ImportWorkbook(file io.Reader) (int, int, error) {
	wb, err := excelize.OpenReader(file)
	if err != nil {
		return 0, 0, ErrUnreadableWorkbook
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return 0, 0, ErrEmptyWorkbook
	}

	// First sheet only; the rest of the workbook is ignored.
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return 0, 0, ErrUnreadableWorkbook
	}

	return s.ImportRows(rows)
}

func (s *catalogService) ImportRows(rows [][]string) (int, int, error) {
	parsed := parseCatalogRows(rows)
	if len(parsed) == 0 {
		// Zero valid rows: the prior catalog stays untouched and no entry
		// is updated.
		return 0, 0, ErrNoValidRows
	}

	if err := s.catalogRepo.ReplaceAll(parsed); err != nil {
		return 0, 0, fmt.Errorf("failed to replace catalog: %w", err)
	}

	reconciled, err := s.Reconcile()
	if err != nil {
		return len(parsed), 0, err
	}

	s.broadcast("catalog_replaced", len(parsed), reconciled)
	return len(parsed), reconciled, nil
}

// parseCatalogRows maps sheet rows positionally into catalog rows. The
// header row is dropped, missing cells coerce to "" (closing stock and
// reserved quantity default to "0"), and rows whose barcode is empty after
// trimming are dropped.
func parseCatalogRows(rows [][]string) []model.CatalogRow {
	var parsed []model.CatalogRow
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		cells := make([]string, catalogColumnCount)
		copy(cells, row)
		if strings.TrimSpace(cells[0]) == "" {
			continue
		}
		if cells[12] == "" {
			cells[12] = "0"
		}
		if cells[13] == "" {
			cells[13] = "0"
		}
		parsed = append(parsed, model.CatalogRow{
			Barcode:          cells[0],
			ProductID:        cells[1],
			ProductName:      cells[2],
			SizeID:           cells[3],
			ColorID:          cells[4],
			VendorName:       cells[5],
			PurchasePrice:    cells[6],
			UOM:              cells[7],
			Hir3:             cells[8],
			Hir5:             cells[9],
			CVGroup:          cells[10],
			LastPurchaseYear: cells[11],
			ClosingStock:     cells[12],
			QtyReserve:       cells[13],
		})
	}
	return parsed
}

func (s *catalogService) Reconcile() (int, error) {
	entryCount, err := s.entryRepo.Count()
	if err != nil {
		return 0, err
	}
	if entryCount == 0 {
		return 0, nil
	}

	catalog, err := s.catalogRepo.FindAll()
	if err != nil {
		return 0, err
	}
	index := model.BuildCatalogIndex(catalog)

	entries, err := s.entryRepo.FindAll()
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range entries {
		row := index.Lookup(entries[i].Code)
		if row == nil {
			// No match: the existing snapshot is retained, even when it
			// points at a row the new catalog no longer carries.
			continue
		}
		snapshot := model.SnapshotOf(row)
		if snapshot.Equal(entries[i].Lookup) {
			continue
		}
		if err := s.entryRepo.UpdateSnapshot(entries[i].ID, snapshot); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func (s *catalogService) GetCatalog() ([]model.CatalogRow, error) {
	return s.catalogRepo.FindAll()
}

func (s *catalogService) Clear() error {
	if err := s.catalogRepo.Clear(); err != nil {
		return err
	}
	s.broadcast("catalog_cleared", 0, 0)
	return nil
}

func (s *catalogService) broadcast(action string, rowCount, reconciled int) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":       "catalog_update",
			"action":     action,
			"row_count":  rowCount,
			"reconciled": reconciled,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
