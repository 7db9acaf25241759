package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
)

// BuildAttendancePDF renders the attendance report as a landscape PDF
// table with a header row, one page per ~20 rows (gofpdf handles the page
// breaks).
func BuildAttendancePDF(rows []AttendanceRow, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Attendance Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Generated: "+generatedAt.Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{60, 35, 28, 32, 26, 26, 32, 18}
	headers := attendanceHeaders

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(37, 99, 235)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		late := "NO"
		if row.Late {
			late = "YES"
		}

		cells := []string{
			row.FullName,
			row.NationalID,
			row.WorkDay,
			row.Shift,
			row.ComeTime,
			row.LeaveTime,
			row.WorkedDuration,
			late,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}

	return buf.Bytes(), nil
}
