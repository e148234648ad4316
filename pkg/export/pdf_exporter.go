package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// GridDataset describes a weekly timetable laid out as times by days.
// Cells maps day then time to the lines printed in that cell.
type GridDataset struct {
	Days   []string
	Times  []string
	Cells  map[string]map[string][]string
	Legend []string
}

// PDFExporter renders timetable content into PDF documents.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a portrait PDF with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			value := row[header]
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderGrid creates a landscape weekly grid PDF with one column per day
// and one row per teaching hour, followed by an optional legend.
func (e *PDFExporter) RenderGrid(data GridDataset, title string) ([]byte, error) {
	if len(data.Days) == 0 || len(data.Times) == 0 {
		return nil, fmt.Errorf("pdf grid requires days and times")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	const timeColWidth = 25.0
	dayColWidth := (277.0 - timeColWidth) / float64(len(data.Days))

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(timeColWidth, 8, "Time", "1", 0, "C", false, 0, "")
	for _, day := range data.Days {
		pdf.CellFormat(dayColWidth, 8, day, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	const lineHeight = 4.0
	for _, slot := range data.Times {
		rowLines := 1
		for _, day := range data.Days {
			if n := len(data.Cells[day][slot]); n > rowLines {
				rowLines = n
			}
		}
		rowHeight := lineHeight*float64(rowLines) + 2

		x, y := pdf.GetXY()
		pdf.SetFont("Arial", "B", 8)
		pdf.CellFormat(timeColWidth, rowHeight, slot, "1", 0, "C", false, 0, "")

		pdf.SetFont("Arial", "", 8)
		for i, day := range data.Days {
			cellX := x + timeColWidth + float64(i)*dayColWidth
			pdf.Rect(cellX, y, dayColWidth, rowHeight, "D")
			for j, line := range data.Cells[day][slot] {
				pdf.SetXY(cellX+1, y+1+float64(j)*lineHeight)
				pdf.CellFormat(dayColWidth-2, lineHeight, line, "", 0, "L", false, 0, "")
			}
		}
		pdf.SetXY(x, y+rowHeight)
	}

	if len(data.Legend) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(0, 6, "Legend", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		for _, line := range data.Legend {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf grid: %w", err)
	}
	return buf.Bytes(), nil
}
