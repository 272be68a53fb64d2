package services

import (
	"bytes"
	"context"
	"fmt"

	"airnav/groundcheck/internal/groundcheck"
	gormModels "airnav/groundcheck/internal/models/gorm"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Ground Check"

// Row layout of the exported sheet.
const (
	exportGroupHeaderRow  = 8
	exportColumnHeaderRow = 9
	exportFirstDataRow    = 10
)

var exportReadingHeaders = []string{"DDM %", "DDM µA", "SUM", "MOD 90", "MOD 150", "RF"}

// GroundCheckReader loads a full sheet.
type GroundCheckReader interface {
	Get(ctx context.Context, id uint) (*gormModels.GroundCheck, error)
}

// GroundCheckExportService renders a stored sheet as an XLSX workbook laid
// out like the paper form.
type GroundCheckExportService struct {
	reader GroundCheckReader
}

func NewGroundCheckExportService(reader GroundCheckReader) *GroundCheckExportService {
	return &GroundCheckExportService{reader: reader}
}

// Export returns the workbook for id and a download file name.
func (svc *GroundCheckExportService) Export(ctx context.Context, id uint) (*bytes.Buffer, string, error) {
	gc, err := svc.reader.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	buf, err := BuildGroundCheckWorkbook(gc)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ground_check_%d_%s.xlsx", gc.ID, gc.Date.Format("20060102"))
	return buf, filename, nil
}

// BuildGroundCheckWorkbook writes gc into a new workbook. Absent readings
// are left as empty cells.
func BuildGroundCheckWorkbook(gc *gormModels.GroundCheck) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}

	lastCol := cellName(3+2*len(exportReadingHeaders), 1)

	// Title
	f.SetCellValue(exportSheetName, "A1", "LLZ Ground Check")
	f.MergeCell(exportSheetName, "A1", lastCol)
	f.SetCellStyle(exportSheetName, "A1", lastCol, titleStyle)

	// Header block
	headerBlock := [][2]string{
		{"Lokasi", gc.Location},
		{"Tanggal", gc.Date.Format("2006-01-02")},
		{"Teknisi", gc.Technicians},
		{"Paraf", gc.SignOffs},
		{"Catatan", gc.Notes},
	}
	for i, kv := range headerBlock {
		row := 2 + i
		f.SetCellValue(exportSheetName, cellName(1, row), kv[0])
		f.SetCellValue(exportSheetName, cellName(2, row), kv[1])
	}

	// Table headers
	f.SetCellValue(exportSheetName, cellName(1, exportGroupHeaderRow), "Freq")
	f.SetCellValue(exportSheetName, cellName(2, exportGroupHeaderRow), "Distance")
	f.SetCellValue(exportSheetName, cellName(3, exportGroupHeaderRow), "Angle")
	for tx := 0; tx < 2; tx++ {
		first := 4 + tx*len(exportReadingHeaders)
		last := first + len(exportReadingHeaders) - 1
		f.SetCellValue(exportSheetName, cellName(first, exportGroupHeaderRow), fmt.Sprintf("TX%d", tx+1))
		f.MergeCell(exportSheetName, cellName(first, exportGroupHeaderRow), cellName(last, exportGroupHeaderRow))
		for i, h := range exportReadingHeaders {
			f.SetCellValue(exportSheetName, cellName(first+i, exportColumnHeaderRow), h)
		}
	}
	for col := 1; col <= 3; col++ {
		f.MergeCell(exportSheetName, cellName(col, exportGroupHeaderRow), cellName(col, exportColumnHeaderRow))
	}
	f.SetCellStyle(exportSheetName,
		cellName(1, exportGroupHeaderRow),
		cellName(3+2*len(exportReadingHeaders), exportColumnHeaderRow),
		headerStyle,
	)

	// Measurement rows
	sheet := gc.Sheet()
	for _, pos := range groundcheck.Positions() {
		row := exportFirstDataRow + pos.Index
		f.SetCellValue(exportSheetName, cellName(1, row), string(pos.Band))
		f.SetCellValue(exportSheetName, cellName(2, row), pos.Distance)
		f.SetCellValue(exportSheetName, cellName(3, row), pos.Angle)

		for col, v := range sheet[pos.Index].Values() {
			if v == nil {
				continue
			}
			f.SetCellValue(exportSheetName, cellName(4+col, row), *v)
		}
	}

	f.SetColWidth(exportSheetName, "A", "A", 10)
	f.SetColWidth(exportSheetName, "B", "C", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf, nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
