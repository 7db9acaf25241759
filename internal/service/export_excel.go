package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// AttendanceRow is one line of the attendance report export.
type AttendanceRow struct {
	FullName       string
	NationalID     string
	WorkDay        string
	Shift          string
	ComeTime       string
	LeaveTime      string
	WorkedDuration string
	Late           bool
}

var attendanceHeaders = []string{"Full Name", "National ID", "Date", "Shift", "Arrival", "Departure", "Worked Hours", "Late"}

// BuildAttendanceExcel renders the attendance report into a workbook.
func BuildAttendanceExcel(rows []AttendanceRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range attendanceHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for i, row := range rows {
		rowNum := i + 2
		late := "NO"
		if row.Late {
			late = "YES"
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), row.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), row.NationalID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), row.WorkDay)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), row.Shift)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), row.ComeTime)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), row.LeaveTime)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), row.WorkedDuration)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", rowNum), late)
	}

	return f, nil
}

// EmployeeRow is one line of the roster export.
type EmployeeRow struct {
	FullName   string
	NationalID string
	Phone      string
	Active     bool
}

// BuildEmployeeExcel renders the employee roster into a workbook.
func BuildEmployeeExcel(rows []EmployeeRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Employees"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Full Name", "National ID", "Phone", "Active"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for i, row := range rows {
		rowNum := i + 2
		active := "NO"
		if row.Active {
			active = "YES"
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), row.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), row.NationalID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), row.Phone)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), active)
	}

	return f, nil
}
