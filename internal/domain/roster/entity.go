package roster

// Shift is one scheduled/actual work or leave record for one employee on one
// day at one location. Times are wall-clock "HH:MM" strings; actual times may
// be empty until the shift has been worked. The JSON field names are the wire
// and storage format of the roster documents.
type Shift struct {
	Employee       string  `json:"employee"`
	ScheduledStart string  `json:"scheduledStart"`
	ScheduledEnd   string  `json:"scheduledEnd"`
	ActualStart    string  `json:"actualStart"`
	ActualEnd      string  `json:"actualEnd"`
	LeaveType      string  `json:"leaveType"`
	LeaveHours     float64 `json:"leaveHours"`
	Notes          string  `json:"notes"`
}

// DefaultShift is the editor's starting point for a new entry.
func DefaultShift(employee string) Shift {
	return Shift{
		Employee:       employee,
		ScheduledStart: "09:00",
		ScheduledEnd:   "17:00",
	}
}

// WeekGrid is the full location × day × shift-list structure for one week.
// Grids are keyed externally by WeekKey.
type WeekGrid map[string]map[string][]Shift

// NewWeekGrid materializes an empty grid: every location/day pair present and
// initialized to an empty shift list, so loaded weeks never have sparse cells.
func NewWeekGrid(locations, days []string) WeekGrid {
	grid := make(WeekGrid, len(locations))
	for _, loc := range locations {
		cells := make(map[string][]Shift, len(days))
		for _, day := range days {
			cells[day] = []Shift{}
		}
		grid[loc] = cells
	}
	return grid
}

// Clone returns a deep copy of the grid. Empty cells stay non-nil so the
// copy serializes the same way the original does.
func (g WeekGrid) Clone() WeekGrid {
	out := make(WeekGrid, len(g))
	for loc, cells := range g {
		copied := make(map[string][]Shift, len(cells))
		for day, shifts := range cells {
			cell := make([]Shift, len(shifts))
			copy(cell, shifts)
			copied[day] = cell
		}
		out[loc] = copied
	}
	return out
}

// UpsertShift adds s to the given cell, replacing any existing shift for the
// same employee. At most one shift per (employee, day, location) survives.
func (g WeekGrid) UpsertShift(location, day string, s Shift) {
	if g[location] == nil {
		g[location] = make(map[string][]Shift)
	}
	cell := g[location][day]
	for i := range cell {
		if cell[i].Employee == s.Employee {
			cell[i] = s
			return
		}
	}
	g[location][day] = append(cell, s)
}

// DeleteShift removes the employee's shift from the given cell. Deleting a
// shift that does not exist is a no-op.
func (g WeekGrid) DeleteShift(location, day, employee string) {
	cell := g[location][day]
	kept := cell[:0]
	for _, s := range cell {
		if s.Employee != employee {
			kept = append(kept, s)
		}
	}
	g[location][day] = kept
}

// ShiftsFor returns the employee's shifts on the given day across all
// locations, paired with the location each one belongs to.
func (g WeekGrid) ShiftsFor(employee, day string) map[string]Shift {
	found := make(map[string]Shift)
	for loc, cells := range g {
		for _, s := range cells[day] {
			if s.Employee == employee {
				found[loc] = s
			}
		}
	}
	return found
}

// ChangeKind discriminates change descriptors broadcast by the store.
type ChangeKind string

const (
	ChangeRosterUpdated    ChangeKind = "roster-updated"
	ChangeEmployeesUpdated ChangeKind = "employees-updated"
)

// Change describes one mutation, local or remote-origin, for subscribers.
type Change struct {
	Kind       ChangeKind `json:"kind"`
	LocationID string     `json:"location_id,omitempty"`
	WeekKey    string     `json:"week_key,omitempty"`
	Employees  []string   `json:"employees,omitempty"`
}

// Listener receives change descriptors. Listeners are invoked synchronously
// and may unsubscribe from within their own callback.
type Listener func(Change)
