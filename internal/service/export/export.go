// Package export renders roster data for download: a full JSON backup
// document and a per-week timesheet workbook.
package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shriajj/roster-backend-go/internal/domain/directory"
	"github.com/shriajj/roster-backend-go/internal/domain/hours"
	"github.com/shriajj/roster-backend-go/internal/domain/roster"
	"github.com/shriajj/roster-backend-go/internal/pkg/week"
)

// Document is the full-backup payload. Field names are the on-disk format of
// exported backups, so older exports stay importable.
type Document struct {
	Employees      []string                   `json:"employees"`
	Locations      []string                   `json:"locations"`
	AllRosterData  map[string]roster.WeekGrid `json:"allRosterData"`
	PublicHolidays map[string]bool            `json:"publicHolidays"`
	ExportDate     string                     `json:"exportDate"`
	WeekRange      string                     `json:"weekRange"`
}

type Service struct {
	store roster.Store
	dir   directory.Service
}

func NewService(store roster.Store, dir directory.Service) *Service {
	return &Service{store: store, dir: dir}
}

// BuildDocument assembles the backup document for the session, ensuring the
// given week is loaded so an export taken right after startup still carries
// the week on screen.
func (s *Service) BuildDocument(ctx context.Context, weekKey string) (Document, error) {
	if _, err := s.store.Week(ctx, weekKey); err != nil {
		return Document{}, err
	}

	start, err := week.ParseKey(weekKey)
	if err != nil {
		return Document{}, roster.ErrInvalidWeekKey
	}

	return Document{
		Employees:      s.dir.Employees(),
		Locations:      s.dir.Locations(),
		AllRosterData:  s.store.Snapshot(),
		PublicHolidays: s.store.PublicHolidays(),
		ExportDate:     time.Now().Format(time.RFC3339),
		WeekRange:      week.Range(start),
	}, nil
}

// bucketColumns follow the per-day block, in sheet order.
var bucketColumns = []string{
	"Total", "Regular", "Overtime", "Public Holiday",
	"Annual Leave", "Sick Leave", "PH Leave",
}

// BuildTimesheet renders one week as an xlsx workbook: a row per employee,
// a column per day holding that day's total hours across all locations, then
// the week's bucket totals.
func (s *Service) BuildTimesheet(ctx context.Context, weekKey string) (*bytes.Buffer, error) {
	grid, err := s.store.Week(ctx, weekKey)
	if err != nil {
		return nil, err
	}
	start, err := week.ParseKey(weekKey)
	if err != nil {
		return nil, roster.ErrInvalidWeekKey
	}
	days := week.DayLabels(start)
	holidays := s.store.PublicHolidays()

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Timesheet"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	if err := setCell(f, sheet, 1, 1, fmt.Sprintf("Week %s", week.Range(start))); err != nil {
		return nil, err
	}

	headerRow := 2
	if err := setCell(f, sheet, 1, headerRow, "Employee"); err != nil {
		return nil, err
	}
	for i, day := range days {
		if err := setCell(f, sheet, 2+i, headerRow, day); err != nil {
			return nil, err
		}
	}
	for i, col := range bucketColumns {
		if err := setCell(f, sheet, 2+len(days)+i, headerRow, col); err != nil {
			return nil, err
		}
	}

	row := headerRow + 1
	for _, employee := range s.dir.Employees() {
		if err := setCell(f, sheet, 1, row, employee); err != nil {
			return nil, err
		}

		var weekTotal hours.Breakdown
		for i, day := range days {
			var dayTotal float64
			for _, shift := range grid.ShiftsFor(employee, day) {
				b := hours.Compute(hours.Input{
					ScheduledStart:  shift.ScheduledStart,
					ScheduledEnd:    shift.ScheduledEnd,
					ActualStart:     shift.ActualStart,
					ActualEnd:       shift.ActualEnd,
					DayLabel:        day,
					LeaveType:       shift.LeaveType,
					LeaveHours:      shift.LeaveHours,
					IsPublicHoliday: holidays[day],
				})
				dayTotal += b.Total + b.AnnualLeave + b.SickLeave + b.PublicHolidayLeave
				accumulate(&weekTotal, b)
			}
			if err := setCell(f, sheet, 2+i, row, dayTotal); err != nil {
				return nil, err
			}
		}

		buckets := []float64{
			weekTotal.Total, weekTotal.Regular, weekTotal.Overtime, weekTotal.PublicHoliday,
			weekTotal.AnnualLeave, weekTotal.SickLeave, weekTotal.PublicHolidayLeave,
		}
		for i, v := range buckets {
			if err := setCell(f, sheet, 2+len(days)+i, row, v); err != nil {
				return nil, err
			}
		}
		row++
	}

	return f.WriteToBuffer()
}

func accumulate(total *hours.Breakdown, b hours.Breakdown) {
	total.Total += b.Total
	total.Regular += b.Regular
	total.Overtime += b.Overtime
	total.PublicHoliday += b.PublicHoliday
	total.AnnualLeave += b.AnnualLeave
	total.SickLeave += b.SickLeave
	total.PublicHolidayLeave += b.PublicHolidayLeave
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, v)
}
