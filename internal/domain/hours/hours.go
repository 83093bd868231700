// Package hours computes the worked/overtime/leave hour buckets for a single
// shift. The computation is pure: it never touches storage or the clock.
package hours

import (
	"strings"
	"time"
)

// Leave types recognised on a shift.
const (
	LeaveNone   = ""
	LeaveAnnual = "annual"
	LeaveSick   = "sick"
	LeavePublic = "public"
)

// DefaultLeaveHours is credited on a pure leave day when no explicit
// leave hours were entered.
const DefaultLeaveHours = 8

// overtimeStartMinutes is 18:00 on the anchor day. Overtime only accrues on
// Thursdays and Fridays past this point.
const overtimeStartMinutes = 18 * 60

// Input carries everything needed to bucket one shift's hours.
type Input struct {
	ScheduledStart string
	ScheduledEnd   string
	ActualStart    string
	ActualEnd      string
	DayLabel       string
	LeaveType      string
	LeaveHours     float64
	IsPublicHoliday bool
}

// Breakdown is the bucketed result. All values are non-negative hours.
type Breakdown struct {
	Total              float64 `json:"total"`
	Regular            float64 `json:"regular"`
	Overtime           float64 `json:"overtime"`
	PublicHoliday      float64 `json:"publicHoliday"`
	AnnualLeave        float64 `json:"annualLeave"`
	SickLeave          float64 `json:"sickLeave"`
	PublicHolidayLeave float64 `json:"publicHolidayLeave"`
}

// Compute buckets the hours of one shift.
//
// A pure leave day (leave type set, no actual times) credits only the matching
// leave bucket, defaulting to DefaultLeaveHours. Otherwise the effective start
// and end are the actual times when present, the scheduled ones when not; a
// missing or unparseable time, or a non-positive duration (shifts never span
// midnight), yields all-zero buckets. Shifts longer than four hours lose a
// half-hour unpaid break. Work on a public holiday routes entirely into the
// PublicHoliday bucket. Thursday and Friday work past 18:00 counts as
// overtime; the overtime figure is taken from the raw duration while Regular
// comes out of the break-deducted working hours, which reproduces the payroll
// sheet this service replaced.
func Compute(in Input) Breakdown {
	if in.LeaveType != LeaveNone && in.ActualStart == "" && in.ActualEnd == "" {
		credit := in.LeaveHours
		if credit == 0 {
			credit = DefaultLeaveHours
		}
		var b Breakdown
		switch in.LeaveType {
		case LeaveAnnual:
			b.AnnualLeave = credit
		case LeaveSick:
			b.SickLeave = credit
		case LeavePublic:
			b.PublicHolidayLeave = credit
		}
		return b
	}

	start := in.ActualStart
	if start == "" {
		start = in.ScheduledStart
	}
	end := in.ActualEnd
	if end == "" {
		end = in.ScheduledEnd
	}
	if start == "" || end == "" {
		return Breakdown{}
	}

	startMin, ok := parseClock(start)
	if !ok {
		return Breakdown{}
	}
	endMin, ok := parseClock(end)
	if !ok {
		return Breakdown{}
	}

	totalHours := float64(endMin-startMin) / 60
	if totalHours <= 0 {
		return Breakdown{}
	}

	workingHours := totalHours
	if totalHours > 4 {
		workingHours = totalHours - 0.5
	}

	var b Breakdown
	if in.LeaveType != LeaveNone && in.LeaveHours > 0 {
		switch in.LeaveType {
		case LeaveAnnual:
			b.AnnualLeave = in.LeaveHours
		case LeaveSick:
			b.SickLeave = in.LeaveHours
		case LeavePublic:
			b.PublicHolidayLeave = in.LeaveHours
		}
	}

	if in.IsPublicHoliday && workingHours > 0 {
		b.Total = workingHours
		b.PublicHoliday = workingHours
		return b
	}

	regular := workingHours
	overtime := 0.0
	isThuOrFri := strings.Contains(in.DayLabel, "Thu") || strings.Contains(in.DayLabel, "Fri")
	if isThuOrFri && endMin > overtimeStartMinutes {
		overtimeFrom := max(startMin, overtimeStartMinutes)
		if overtimeFrom < endMin {
			overtime = float64(endMin-overtimeFrom) / 60
			regular = workingHours - overtime
		}
	}

	b.Total = workingHours
	b.Regular = max(0, regular)
	b.Overtime = max(0, overtime)
	return b
}

// parseClock parses a wall-clock "HH:MM" time into minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
