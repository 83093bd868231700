package roster

import (
	"strings"

	"github.com/shriajj/roster-backend-go/internal/domain/hours"
	"github.com/shriajj/roster-backend-go/internal/pkg/validator"
)

// LeaveTypeValues are the accepted leave types on a shift; empty means none.
var LeaveTypeValues = []string{hours.LeaveAnnual, hours.LeaveSick, hours.LeavePublic}

type UpsertShiftRequest struct {
	Location string `json:"location"`
	Day      string `json:"day"`
	Shift    Shift  `json:"shift"`
}

func (r *UpsertShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Location) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}
	if validator.IsEmpty(r.Day) {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day is required",
		})
	}
	if validator.IsEmpty(r.Shift.Employee) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift.employee",
			Message: "employee is required",
		})
	}
	if !validator.IsValidClock(r.Shift.ScheduledStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift.scheduledStart",
			Message: "scheduledStart must be a HH:MM time",
		})
	}
	if !validator.IsValidClock(r.Shift.ScheduledEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift.scheduledEnd",
			Message: "scheduledEnd must be a HH:MM time",
		})
	}
	if r.Shift.ActualStart != "" && !validator.IsValidClock(r.Shift.ActualStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift.actualStart",
			Message: "actualStart must be a HH:MM time",
		})
	}
	if r.Shift.ActualEnd != "" && !validator.IsValidClock(r.Shift.ActualEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift.actualEnd",
			Message: "actualEnd must be a HH:MM time",
		})
	}
	if r.Shift.LeaveType != "" && !validator.IsInSlice(r.Shift.LeaveType, LeaveTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift.leaveType",
			Message: "leaveType must be one of: " + strings.Join(LeaveTypeValues, ", "),
		})
	}
	if r.Shift.LeaveHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "shift.leaveHours",
			Message: "leaveHours must be a non-negative number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeleteShiftRequest struct {
	Location string `json:"location"`
	Day      string `json:"day"`
	Employee string `json:"employee"`
}

func (r *DeleteShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Location) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}
	if validator.IsEmpty(r.Day) {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day is required",
		})
	}
	if validator.IsEmpty(r.Employee) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "employee is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetHolidayRequest struct {
	Day     string `json:"day"`
	Holiday bool   `json:"holiday"`
}

func (r *SetHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Day) {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// WeekResponse is the wire shape of one loaded week.
type WeekResponse struct {
	WeekKey string   `json:"week_key"`
	Days    []string `json:"days"`
	Grid    WeekGrid `json:"grid"`
	Synced  bool     `json:"synced"`
}
