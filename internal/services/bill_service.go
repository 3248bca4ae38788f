package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"aptbillmanager/internal/models"
	"aptbillmanager/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ErrNoValidRecords means the sheet produced zero usable bill rows.
var ErrNoValidRecords = errors.New("no valid bill records found in the file")

type BillService interface {
	// ProcessFile parses the spreadsheet at path into bill records, joining
	// each row against the flat_owners table. Rows that fail to parse or
	// match are dropped.
	ProcessFile(ctx context.Context, path string) ([]models.BillRecord, error)
	CostPerUnit() decimal.Decimal
}

type billService struct {
	flats       repositories.FlatRepository
	costPerUnit decimal.Decimal
}

func NewBillService(flats repositories.FlatRepository, costPerUnit decimal.Decimal) BillService {
	return &billService{flats: flats, costPerUnit: costPerUnit}
}

func (s *billService) CostPerUnit() decimal.Decimal {
	return s.costPerUnit
}

// findColumns locates the flat-number and units columns from the header row.
// Sheets without a recognizable header fall back to the first two columns.
func findColumns(header []string) (flatCol, unitsCol int, hasHeader bool) {
	flatCol, unitsCol = -1, -1
	for i, cell := range header {
		h := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case flatCol < 0 && strings.Contains(h, "flat"):
			flatCol = i
		case unitsCol < 0 && (strings.Contains(h, "unit") || strings.Contains(h, "consum")):
			unitsCol = i
		}
	}
	if flatCol >= 0 && unitsCol >= 0 {
		return flatCol, unitsCol, true
	}
	return 0, 1, false
}

func (s *billService) ProcessFile(ctx context.Context, path string) ([]models.BillRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoValidRecords
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrNoValidRecords
	}

	flatCol, unitsCol, hasHeader := findColumns(rows[0])
	data := rows
	if hasHeader {
		data = rows[1:]
	}

	var records []models.BillRecord
	for i, row := range data {
		if len(row) <= flatCol || len(row) <= unitsCol {
			continue
		}
		flatNo := strings.ToUpper(strings.TrimSpace(row[flatCol]))
		if flatNo == "" {
			continue
		}
		units, err := decimal.NewFromString(strings.TrimSpace(row[unitsCol]))
		if err != nil || units.IsNegative() {
			log.Printf("[bill] row %d: bad units value %q, skipping", i+1, row[unitsCol])
			continue
		}

		flat, err := s.flats.GetByFlatNo(ctx, flatNo)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				log.Printf("[bill] row %d: flat %q not in master list, skipping", i+1, flatNo)
				continue
			}
			return nil, fmt.Errorf("lookup flat %q: %w", flatNo, err)
		}

		name := "Resident"
		if flat.Name != nil && *flat.Name != "" {
			name = *flat.Name
		}
		record := models.BillRecord{
			FlatNo:        flat.FlatNo,
			Name:          name,
			UnitsConsumed: units,
			AmountDue:     units.Mul(s.costPerUnit).Round(2),
		}
		if flat.TelegramChatID != nil {
			record.TelegramChatID = *flat.TelegramChatID
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, ErrNoValidRecords
	}
	return records, nil
}
