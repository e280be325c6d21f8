package tracker

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"tst/internal/dates"
	"tst/internal/models"
	"tst/internal/store"
)

// Sprint targets. A sprint is exactly ten working days with an eight-hour
// goal per day; weekends never count.
const (
	WorkingDaysPerSprint = 10
	HoursPerDay          = 8.0
	HoursPerSprint       = HoursPerDay * WorkingDaysPerSprint
)

// Validation failures. Each one is raised strictly before any mutation, so a
// rejected operation leaves both memory and the store untouched. Lookup
// misses (unknown sprint or entry id) are boolean results, not errors.
var (
	ErrMissingField       = errors.New("all fields are required")
	ErrInvalidTime        = errors.New("time spent must be a positive number of hours")
	ErrNoCurrentSprint    = errors.New("no sprint is selected")
	ErrNotWorkingDay      = errors.New("date must be a working day (Mon-Fri)")
	ErrOutsideSprint      = errors.New("date is outside the sprint period")
	ErrStartNotWorkingDay = errors.New("sprint start date must be a working day (Mon-Fri)")
)

// Tracker owns the in-memory sprint and entry collections and is the only
// writer to them. Every mutation is persisted synchronously through the
// store before the call returns; the store is never read again after
// construction.
type Tracker struct {
	store *store.Store
	now   func() time.Time

	sprints []models.Sprint
	entries []models.Entry
	current *models.Sprint
	lastID  int64
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock. Sprint-over and days-remaining are
// derived from "today" on every call, so tests inject a fixed clock here.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// New loads all persisted state into memory and returns a ready Tracker.
func New(s *store.Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store: s,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	var err error
	if t.sprints, err = s.LoadSprints(); err != nil {
		return nil, err
	}
	if t.entries, err = s.LoadEntries(); err != nil {
		return nil, err
	}
	if t.current, err = s.LoadCurrentSprint(); err != nil {
		return nil, err
	}

	for _, sp := range t.sprints {
		if sp.ID > t.lastID {
			t.lastID = sp.ID
		}
	}
	for _, e := range t.entries {
		if e.ID > t.lastID {
			t.lastID = e.ID
		}
	}

	return t, nil
}

// nextID returns a fresh record id. Ids are creation timestamps in
// milliseconds, bumped past the last issued id so that two records created
// within the same millisecond stay unique.
func (t *Tracker) nextID() int64 {
	id := t.now().UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	t.lastID = id
	return id
}

func (t *Tracker) today() string {
	return dates.Format(t.now())
}

// --- Sprint lifecycle ---

// CreateSprint constructs a sprint, makes it the current selection, and
// persists both. When endDate is empty the canonical end date is computed
// from startDate, which then must fall on a working day; a supplied endDate
// is stored as-is beyond date normalization.
func (t *Tracker) CreateSprint(name, startDate, endDate string) (*models.Sprint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: sprint name", ErrMissingField)
	}

	start, err := dates.Normalize(startDate)
	if err != nil {
		return nil, err
	}

	if endDate == "" {
		if endDate, err = t.CalculateSprintEndDate(start); err != nil {
			return nil, err
		}
	} else {
		if endDate, err = dates.Normalize(endDate); err != nil {
			return nil, err
		}
	}

	id := t.nextID()
	sp := models.Sprint{
		ID:        id,
		Name:      name,
		StartDate: start,
		EndDate:   endDate,
		CreatedAt: id,
	}

	t.sprints = append(t.sprints, sp)
	if err := t.store.SaveSprints(t.sprints); err != nil {
		return nil, err
	}

	t.current = &sp
	if err := t.store.SaveCurrentSprint(t.current); err != nil {
		return nil, err
	}

	return &sp, nil
}

// SetCurrentSprint selects the sprint with the given id as the active
// context. Selecting an unknown id reports false and changes nothing.
func (t *Tracker) SetCurrentSprint(id int64) (bool, error) {
	for i := range t.sprints {
		if t.sprints[i].ID == id {
			sp := t.sprints[i]
			t.current = &sp
			if err := t.store.SaveCurrentSprint(t.current); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// CalculateSprintEndDate returns the canonical end date for a sprint
// starting on startDate: the date reached after counting exactly ten
// working days, the start day included as day one.
func (t *Tracker) CalculateSprintEndDate(startDate string) (string, error) {
	start, err := dates.Parse(startDate)
	if err != nil {
		return "", err
	}
	if !dates.IsWorkingDay(start) {
		return "", fmt.Errorf("%w: %s is a %s", ErrStartNotWorkingDay, dates.Format(start), start.Weekday())
	}
	return dates.Format(dates.SprintEnd(start, WorkingDaysPerSprint)), nil
}

// RecalculateAllSprintEndDates recomputes the canonical end date of every
// stored sprint and overwrites it where it differs, returning the number of
// corrected records. The pass is idempotent and safe to run on every load;
// it exists to repair sprints created under an earlier, shorter length
// calculation. Sprints whose start date is not a working day are left
// untouched, since no canonical end date is defined for them.
func (t *Tracker) RecalculateAllSprintEndDates() (int, error) {
	corrected := 0
	for i := range t.sprints {
		end, err := t.CalculateSprintEndDate(t.sprints[i].StartDate)
		if err != nil {
			continue
		}
		if t.sprints[i].EndDate == end {
			continue
		}
		t.sprints[i].EndDate = end
		corrected++

		if t.current != nil && t.current.ID == t.sprints[i].ID {
			sp := t.sprints[i]
			t.current = &sp
		}
	}

	if corrected == 0 {
		return 0, nil
	}
	if err := t.store.SaveSprints(t.sprints); err != nil {
		return 0, err
	}
	if err := t.store.SaveCurrentSprint(t.current); err != nil {
		return 0, err
	}
	return corrected, nil
}

// Sprints returns a copy of the sprint list, oldest first.
func (t *Tracker) Sprints() []models.Sprint {
	out := make([]models.Sprint, len(t.sprints))
	copy(out, t.sprints)
	return out
}

// CurrentSprint returns a copy of the selected sprint, or nil.
func (t *Tracker) CurrentSprint() *models.Sprint {
	if t.current == nil {
		return nil
	}
	sp := *t.current
	return &sp
}

// --- Entry management ---

// AddEntry validates and appends a time entry for the current sprint.
// Validation order: field presence, positive time, a selected sprint, a
// working-day date, and the date inside the current sprint's window. The
// allowPast flag is the caller's acknowledgement that the sprint is over;
// the date is still validated against the current sprint's period, never
// against other sprints.
func (t *Tracker) AddEntry(date, jiraID string, timeSpent float64, workDone string, allowPast bool) (*models.Entry, error) {
	jiraID = strings.TrimSpace(jiraID)
	workDone = strings.TrimSpace(workDone)
	if date == "" || jiraID == "" || workDone == "" || timeSpent == 0 {
		return nil, ErrMissingField
	}
	if math.IsNaN(timeSpent) || timeSpent <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTime, timeSpent)
	}
	if t.current == nil {
		return nil, fmt.Errorf("%w: create or select a sprint first", ErrNoCurrentSprint)
	}

	day, err := dates.Parse(date)
	if err != nil {
		return nil, err
	}
	if !dates.IsWorkingDay(day) {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotWorkingDay, dates.Format(day), day.Weekday())
	}

	inSprint := false
	if allowPast {
		inSprint = t.IsDateInSprintPeriod(date, *t.current)
	} else {
		inSprint = t.IsDateInCurrentSprint(date)
	}
	if !inSprint {
		return nil, fmt.Errorf("%w: sprint %q runs %s to %s", ErrOutsideSprint,
			t.current.Name, t.current.StartDate, t.current.EndDate)
	}

	id := t.nextID()
	entry := models.Entry{
		ID:        id,
		Date:      dates.Format(day),
		JiraID:    jiraID,
		TimeSpent: timeSpent,
		WorkDone:  workDone,
		SprintID:  t.current.ID,
		Timestamp: id,
	}

	t.entries = append(t.entries, entry)
	if err := t.store.SaveEntries(t.entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes the entry with the given id, reporting whether a
// removal occurred. Absence is a benign no-op.
func (t *Tracker) DeleteEntry(id int64) (bool, error) {
	for i := range t.entries {
		if t.entries[i].ID == id {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			if err := t.store.SaveEntries(t.entries); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// ClearAllEntries removes every entry.
func (t *Tracker) ClearAllEntries() error {
	t.entries = []models.Entry{}
	return t.store.SaveEntries(t.entries)
}

// ClearAllData removes every entry and sprint and drops the selection.
func (t *Tracker) ClearAllData() error {
	if err := t.ClearAllEntries(); err != nil {
		return err
	}
	t.sprints = []models.Sprint{}
	if err := t.store.SaveSprints(t.sprints); err != nil {
		return err
	}
	t.current = nil
	return t.store.SaveCurrentSprint(nil)
}

// Entries returns a copy of all entries, oldest first.
func (t *Tracker) Entries() []models.Entry {
	out := make([]models.Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// EntriesForDate returns the entries logged on an exact date.
func (t *Tracker) EntriesForDate(date string) []models.Entry {
	var out []models.Entry
	for _, e := range t.entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// EntriesForSprint returns the entries owned by the given sprint.
func (t *Tracker) EntriesForSprint(sprintID int64) []models.Entry {
	var out []models.Entry
	for _, e := range t.entries {
		if e.SprintID == sprintID {
			out = append(out, e)
		}
	}
	return out
}

// --- Working-day and sprint-period predicates ---

// IsDateInCurrentSprint reports whether date is a working day inside the
// current sprint's inclusive window. False when no sprint is selected.
func (t *Tracker) IsDateInCurrentSprint(date string) bool {
	if t.current == nil {
		return false
	}
	return t.IsDateInSprintPeriod(date, *t.current)
}

// IsDateInSprintPeriod reports whether date is a working day inside the
// given sprint's inclusive [start, end] window.
func (t *Tracker) IsDateInSprintPeriod(date string, sp models.Sprint) bool {
	day, err := dates.Parse(date)
	if err != nil {
		return false
	}
	if !dates.IsWorkingDay(day) {
		return false
	}
	// YYYY-MM-DD orders lexicographically, so the range check is a string
	// comparison.
	d := dates.Format(day)
	return d >= sp.StartDate && d <= sp.EndDate
}

// IsCurrentSprintOver reports whether today is strictly past the current
// sprint's end date. False when no sprint is selected.
func (t *Tracker) IsCurrentSprintOver() bool {
	if t.current == nil {
		return false
	}
	return t.today() > t.current.EndDate
}

// CurrentSprintDaysRemaining counts the working days from today through the
// current sprint's end date inclusive. Zero when the sprint is over or none
// is selected.
func (t *Tracker) CurrentSprintDaysRemaining() int {
	if t.current == nil {
		return 0
	}
	end, err := dates.Parse(t.current.EndDate)
	if err != nil {
		return 0
	}
	today, _ := dates.Parse(t.today())
	if today.After(end) {
		return 0
	}
	return dates.CountWorkingDays(today, end)
}
