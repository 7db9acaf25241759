package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAttendanceExcel(t *testing.T) {
	rows := []AttendanceRow{
		{
			FullName:       "Maria Lopez",
			NationalID:     "AAA010101",
			WorkDay:        "2026-03-02",
			Shift:          "Day",
			ComeTime:       "09:12:00",
			LeaveTime:      "16:02:10",
			WorkedDuration: "6:50:10",
			Late:           true,
		},
		{
			FullName:   "Juan Perez",
			NationalID: "BBB020202",
			WorkDay:    "2026-03-02",
			Shift:      "Night",
			ComeTime:   "16:05:00",
		},
	}

	f, err := BuildAttendanceExcel(rows)
	require.NoError(t, err)

	header, err := f.GetCellValue("Attendance", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Full Name", header)

	name, err := f.GetCellValue("Attendance", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Maria Lopez", name)

	late, err := f.GetCellValue("Attendance", "H2")
	require.NoError(t, err)
	assert.Equal(t, "YES", late)

	late, err = f.GetCellValue("Attendance", "H3")
	require.NoError(t, err)
	assert.Equal(t, "NO", late)

	// An open shift exports with an empty departure column.
	leave, err := f.GetCellValue("Attendance", "F3")
	require.NoError(t, err)
	assert.Empty(t, leave)
}

func TestBuildEmployeeExcel(t *testing.T) {
	f, err := BuildEmployeeExcel([]EmployeeRow{
		{FullName: "Maria Lopez", NationalID: "AAA010101", Phone: "555-0101", Active: true},
	})
	require.NoError(t, err)

	id, err := f.GetCellValue("Employees", "B2")
	require.NoError(t, err)
	assert.Equal(t, "AAA010101", id)

	active, err := f.GetCellValue("Employees", "D2")
	require.NoError(t, err)
	assert.Equal(t, "YES", active)
}
