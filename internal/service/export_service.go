package service

import (
	"bytes"
	"fmt"
	"time"

	"go-barcode-archive/internal/model"
	"go-barcode-archive/internal/repository"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf/v2"
	"github.com/xuri/excelize/v2"
)

// exportColumns is the fixed column set of the spreadsheet and PDF exports.
var exportColumns = []string{"Barcode", "Product", "Vendor", "Closing Stock", "Operator", "Timestamp"}

const exportSheetName = "Archive Export"

type ExportService interface {
	// GenerateWorkbook builds an .xlsx of the selected entries; an empty id
	// list selects every entry.
	GenerateWorkbook(ids []uuid.UUID) ([]byte, error)
	// GeneratePDF builds the printable report over the same record set.
	GeneratePDF(ids []uuid.UUID) ([]byte, error)
}

type exportService struct {
	entryRepo repository.EntryRepository
}

func NewExportService(entryRepo repository.EntryRepository) ExportService {
	return &exportService{entryRepo: entryRepo}
}

// resolveEntries scopes the export to the selected ids, or all entries when
// no selection is given. Order follows the archive listing (newest first).
func (s *exportService) resolveEntries(ids []uuid.UUID) ([]model.Entry, error) {
	if len(ids) == 0 {
		return s.entryRepo.FindAll()
	}
	return s.entryRepo.FindByIDs(ids)
}

func exportRow(e *model.Entry) []string {
	product, vendor, stock := "", "", ""
	if e.Lookup != nil {
		product = e.Lookup.ProductName
		vendor = e.Lookup.VendorName
		stock = e.Lookup.ClosingStock
	}
	return []string{
		e.Code,
		product,
		vendor,
		stock,
		e.UserName,
		e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (s *exportService) GenerateWorkbook(ids []uuid.UUID) ([]byte, error) {
	entries, err := s.resolveEntries(ids)
	if err != nil {
		return nil, err
	}

	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	if err := wb.SetSheetName(sheet, exportSheetName); err != nil {
		return nil, err
	}

	for col, title := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := wb.SetCellValue(exportSheetName, cell, title); err != nil {
			return nil, err
		}
	}

	for i := range entries {
		for col, value := range exportRow(&entries[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := wb.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *exportService) GeneratePDF(ids []uuid.UUID) ([]byte, error) {
	entries, err := s.resolveEntries(ids)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "") // Landscape for more columns
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, "Barcode Archive - Export Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s  |  Records: %d", time.Now().Format("02-Jan-2006 15:04"), len(entries)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{50, 70, 55, 30, 40, 32}

	// Table header
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	for i, title := range exportColumns {
		pdf.CellFormat(widths[i], 7, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// Table rows
	pdf.SetFont("Arial", "", 9)
	for i := range entries {
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(245, 245, 245)
		}
		for col, value := range exportRow(&entries[i]) {
			if len(value) > 38 {
				value = value[:35] + "..."
			}
			pdf.CellFormat(widths[col], 6, value, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
