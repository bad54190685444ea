package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/pricing"
)

var requestExportHeaders = []string{
	"Request Number", "Status", "Division", "PIC", "Date Request", "Needed Date",
	"Item Name", "Brand", "Specification", "Qty", "Unit", "Price", "Amount",
	"User PIC", "Location", "Notes",
}

// ExportRegister renders the full purchase request register as a
// spreadsheet, one row per request line.
func (s *RequestService) ExportRegister(ctx context.Context) (*excelize.File, string, error) {
	requests, _, err := s.repo.FindAll(ctx, 1, 10000, nil)
	if err != nil {
		return nil, "", fmt.Errorf("list requests: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Purchase Requests"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range requestExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	row := 2
	var grandTotal float64
	for _, pr := range requests {
		if len(pr.Items) == 0 {
			writeRequestCells(f, sheet, row, pr.Number, pr.Status, pr.Division, pr.PIC, pr.DateRequest, pr.NeededDate)
			row++
			continue
		}
		for _, item := range pr.Items {
			writeRequestCells(f, sheet, row, pr.Number, pr.Status, pr.Division, pr.PIC, pr.DateRequest, pr.NeededDate)
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.Name)
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.Brand)
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), item.Specification)
			f.SetCellValue(sheet, fmt.Sprintf("J%d", row), item.Quantity)
			f.SetCellValue(sheet, fmt.Sprintf("K%d", row), item.Unit)
			f.SetCellValue(sheet, fmt.Sprintf("L%d", row), pricing.FormatIDR(item.Price))
			f.SetCellValue(sheet, fmt.Sprintf("M%d", row), pricing.FormatIDR(item.Amount))
			f.SetCellValue(sheet, fmt.Sprintf("N%d", row), item.UserPIC)
			f.SetCellValue(sheet, fmt.Sprintf("O%d", row), item.Location)
			f.SetCellValue(sheet, fmt.Sprintf("P%d", row), item.Notes)
			row++
		}
		grandTotal += pr.Total
	}

	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("%d requests", len(requests)))
	f.SetCellValue(sheet, fmt.Sprintf("M%d", row), pricing.FormatIDR(grandTotal))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("P%d", row), summaryStyle)

	colWidths := []float64{18, 10, 16, 14, 12, 12, 24, 14, 20, 6, 6, 14, 14, 14, 18, 20}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("PurchaseRequests_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}

func writeRequestCells(f *excelize.File, sheet string, row int, number, status, division, pic, dateRequest, neededDate string) {
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), number)
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), status)
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), division)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), pic)
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), dateRequest)
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), neededDate)
}
