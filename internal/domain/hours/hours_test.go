package hours

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_PureLeaveDay(t *testing.T) {
	cases := []struct {
		name       string
		leaveType  string
		leaveHours float64
		check      func(t *testing.T, b Breakdown)
	}{
		{
			name:      "annual leave defaults to eight hours",
			leaveType: LeaveAnnual,
			check: func(t *testing.T, b Breakdown) {
				assert.Equal(t, 8.0, b.AnnualLeave)
			},
		},
		{
			name:       "sick leave keeps explicit hours",
			leaveType:  LeaveSick,
			leaveHours: 4,
			check: func(t *testing.T, b Breakdown) {
				assert.Equal(t, 4.0, b.SickLeave)
			},
		},
		{
			name:      "public holiday leave defaults to eight hours",
			leaveType: LeavePublic,
			check: func(t *testing.T, b Breakdown) {
				assert.Equal(t, 8.0, b.PublicHolidayLeave)
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := Compute(Input{
				ScheduledStart: "09:00",
				ScheduledEnd:   "17:00",
				DayLabel:       "Mon 4-Aug",
				LeaveType:      c.leaveType,
				LeaveHours:     c.leaveHours,
			})
			assert.Zero(t, b.Total)
			assert.Zero(t, b.Regular)
			assert.Zero(t, b.Overtime)
			assert.Zero(t, b.PublicHoliday)
			c.check(t, b)
		})
	}
}

func TestCompute_MissingTimesYieldZero(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"no times at all", Input{DayLabel: "Mon 4-Aug"}},
		{"only a start", Input{ScheduledStart: "09:00", DayLabel: "Mon 4-Aug"}},
		{"only an end", Input{ScheduledEnd: "17:00", DayLabel: "Mon 4-Aug"}},
		{"unparseable start", Input{ScheduledStart: "9am", ScheduledEnd: "17:00", DayLabel: "Mon 4-Aug"}},
		{"unparseable end", Input{ScheduledStart: "09:00", ScheduledEnd: "late", DayLabel: "Mon 4-Aug"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, Breakdown{}, Compute(c.in))
		})
	}
}

func TestCompute_NonPositiveDurationYieldsZero(t *testing.T) {
	// End before start means a cross-midnight shift, which is out of scope.
	b := Compute(Input{ScheduledStart: "22:00", ScheduledEnd: "06:00", DayLabel: "Mon 4-Aug"})
	assert.Equal(t, Breakdown{}, b)

	b = Compute(Input{ScheduledStart: "09:00", ScheduledEnd: "09:00", DayLabel: "Mon 4-Aug"})
	assert.Equal(t, Breakdown{}, b)
}

func TestCompute_BreakDeduction(t *testing.T) {
	// Five scheduled hours on a Monday: half-hour unpaid break comes off.
	b := Compute(Input{ScheduledStart: "09:00", ScheduledEnd: "14:00", DayLabel: "Mon 4-Aug"})
	assert.Equal(t, 4.5, b.Total)
	assert.Equal(t, 4.5, b.Regular)
	assert.Zero(t, b.Overtime)

	// Exactly four hours keeps the full duration.
	b = Compute(Input{ScheduledStart: "09:00", ScheduledEnd: "13:00", DayLabel: "Mon 4-Aug"})
	assert.Equal(t, 4.0, b.Total)
	assert.Equal(t, 4.0, b.Regular)
}

func TestCompute_ActualTimesOverrideScheduled(t *testing.T) {
	b := Compute(Input{
		ScheduledStart: "09:00",
		ScheduledEnd:   "17:00",
		ActualStart:    "10:00",
		ActualEnd:      "13:00",
		DayLabel:       "Tue 5-Aug",
	})
	assert.Equal(t, 3.0, b.Total)
	assert.Equal(t, 3.0, b.Regular)
}

func TestCompute_ThursdayOvertime(t *testing.T) {
	// Raw duration 4h, working 3.5h after break; the hour past 18:00 is
	// overtime and regular is derived from the deducted working hours.
	b := Compute(Input{ScheduledStart: "15:00", ScheduledEnd: "19:00", DayLabel: "Thu 7-Aug"})
	assert.Equal(t, 3.5, b.Total)
	assert.Equal(t, 1.0, b.Overtime)
	assert.Equal(t, 2.5, b.Regular)
}

func TestCompute_FridayShiftEntirelyAfterSix(t *testing.T) {
	// Shift starting after 18:00: the whole raw duration is overtime and the
	// break deduction pushes regular below zero, which clamps.
	b := Compute(Input{ScheduledStart: "18:30", ScheduledEnd: "23:30", DayLabel: "Fri 8-Aug"})
	assert.Equal(t, 4.5, b.Total)
	assert.Equal(t, 5.0, b.Overtime)
	assert.Equal(t, 0.0, b.Regular)
}

func TestCompute_NoOvertimeOutsideThuFri(t *testing.T) {
	b := Compute(Input{ScheduledStart: "15:00", ScheduledEnd: "19:00", DayLabel: "Mon 4-Aug"})
	assert.Equal(t, 3.5, b.Total)
	assert.Equal(t, 3.5, b.Regular)
	assert.Zero(t, b.Overtime)
}

func TestCompute_PublicHolidayRoutesAllWork(t *testing.T) {
	b := Compute(Input{
		ScheduledStart:  "09:00",
		ScheduledEnd:    "17:00",
		DayLabel:        "Mon 4-Aug",
		IsPublicHoliday: true,
	})
	assert.Equal(t, 7.5, b.PublicHoliday)
	assert.Equal(t, 7.5, b.Total)
	assert.Zero(t, b.Regular)
	assert.Zero(t, b.Overtime)
}

func TestCompute_PublicHolidayShortCircuitsOvertime(t *testing.T) {
	b := Compute(Input{
		ScheduledStart:  "15:00",
		ScheduledEnd:    "19:00",
		DayLabel:        "Thu 7-Aug",
		IsPublicHoliday: true,
	})
	assert.Equal(t, 3.5, b.PublicHoliday)
	assert.Zero(t, b.Overtime)
	assert.Zero(t, b.Regular)
}

func TestCompute_MixedWorkAndLeave(t *testing.T) {
	b := Compute(Input{
		ScheduledStart: "09:00",
		ScheduledEnd:   "13:00",
		ActualStart:    "09:00",
		ActualEnd:      "13:00",
		DayLabel:       "Wed 6-Aug",
		LeaveType:      LeaveAnnual,
		LeaveHours:     4,
	})
	assert.Equal(t, 4.0, b.Total)
	assert.Equal(t, 4.0, b.Regular)
	assert.Equal(t, 4.0, b.AnnualLeave)
}

func TestCompute_MixedLeaveNeverDefaults(t *testing.T) {
	// The eight-hour default applies only on pure leave days; a worked shift
	// with zero leave hours credits nothing.
	b := Compute(Input{
		ScheduledStart: "09:00",
		ScheduledEnd:   "13:00",
		ActualStart:    "09:00",
		ActualEnd:      "13:00",
		DayLabel:       "Wed 6-Aug",
		LeaveType:      LeaveSick,
		LeaveHours:     0,
	})
	assert.Equal(t, 4.0, b.Total)
	assert.Zero(t, b.SickLeave)
}

func TestCompute_PublicHolidayKeepsLeaveOverlay(t *testing.T) {
	b := Compute(Input{
		ScheduledStart:  "09:00",
		ScheduledEnd:    "13:00",
		ActualStart:     "09:00",
		ActualEnd:       "13:00",
		DayLabel:        "Mon 4-Aug",
		LeaveType:       LeaveAnnual,
		LeaveHours:      2,
		IsPublicHoliday: true,
	})
	assert.Equal(t, 4.0, b.PublicHoliday)
	assert.Equal(t, 2.0, b.AnnualLeave)
}
