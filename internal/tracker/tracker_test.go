package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tst/internal/models"
	"tst/internal/store"
)

// clockAt builds a fixed clock for the given date at mid-morning.
func clockAt(t *testing.T, date string) func() time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	at := d.Add(10 * time.Hour)
	return func() time.Time { return at }
}

// newTestTracker builds a tracker over an in-memory store with today fixed
// at the given date. The store is returned so tests can inspect persisted
// state or rebuild a tracker over it.
func newTestTracker(t *testing.T, today string) (*Tracker, *store.Store) {
	t.Helper()
	s := store.New(store.NewMemKV())
	tr, err := New(s, WithClock(clockAt(t, today)))
	require.NoError(t, err)
	return tr, s
}

// withSprint creates sprint S1 (2025-01-06 .. auto) and returns the tracker.
func withSprint(t *testing.T, today string) (*Tracker, *store.Store) {
	t.Helper()
	tr, s := newTestTracker(t, today)
	_, err := tr.CreateSprint("S1", "2025-01-06", "")
	require.NoError(t, err)
	return tr, s
}

// --- Sprint lifecycle ---

func TestCreateSprint_AutoEndDate(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-06")

	sp, err := tr.CreateSprint("  S1  ", "2025-01-06", "")
	require.NoError(t, err)

	assert.Equal(t, "S1", sp.Name, "name should be trimmed")
	assert.Equal(t, "2025-01-06", sp.StartDate)
	assert.Equal(t, "2025-01-17", sp.EndDate, "10 working days spanning two weekends")
	assert.NotZero(t, sp.ID)
	assert.Equal(t, sp.ID, sp.CreatedAt)
}

func TestCreateSprint_BecomesCurrent(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-06")

	sp, err := tr.CreateSprint("S1", "2025-01-06", "")
	require.NoError(t, err)

	current := tr.CurrentSprint()
	require.NotNil(t, current)
	assert.Equal(t, sp.ID, current.ID)
}

func TestCreateSprint_ManualEndDate(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-06")

	// A manually supplied end date is stored as-is, even if non-canonical.
	sp, err := tr.CreateSprint("S1", "2025-01-06", "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10", sp.EndDate)
}

func TestCreateSprint_EmptyName(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-06")

	_, err := tr.CreateSprint("   ", "2025-01-06", "")
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Empty(t, tr.Sprints())
}

func TestCreateSprint_WeekendStartAutoEnd(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-06")

	_, err := tr.CreateSprint("S1", "2025-01-11", "")
	assert.ErrorIs(t, err, ErrStartNotWorkingDay)
}

func TestCreateSprint_BadDate(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-06")

	_, err := tr.CreateSprint("S1", "06/01/2025", "")
	assert.Error(t, err)
}

func TestCalculateSprintEndDate(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-06")

	end, err := tr.CalculateSprintEndDate("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-17", end)

	// Saturday and Sunday starts fail fast.
	_, err = tr.CalculateSprintEndDate("2025-01-11")
	assert.ErrorIs(t, err, ErrStartNotWorkingDay)
	_, err = tr.CalculateSprintEndDate("2025-01-12")
	assert.ErrorIs(t, err, ErrStartNotWorkingDay)
}

func TestSetCurrentSprint(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-06")

	s1, err := tr.CreateSprint("S1", "2025-01-06", "")
	require.NoError(t, err)
	s2, err := tr.CreateSprint("S2", "2025-01-20", "")
	require.NoError(t, err)
	require.Equal(t, s2.ID, tr.CurrentSprint().ID)

	ok, err := tr.SetCurrentSprint(s1.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, s1.ID, tr.CurrentSprint().ID)
}

func TestSetCurrentSprint_UnknownIDIsNoOp(t *testing.T) {
	tr, _ := withSprint(t, "2025-01-06")
	before := tr.CurrentSprint()

	ok, err := tr.SetCurrentSprint(12345)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before.ID, tr.CurrentSprint().ID, "selection unchanged")
}

func TestRecalculateAllSprintEndDates(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-06")

	// Simulate a sprint created under the old, short length calculation.
	_, err := tr.CreateSprint("S1", "2025-01-06", "2025-01-10")
	require.NoError(t, err)

	corrected, err := tr.RecalculateAllSprintEndDates()
	require.NoError(t, err)
	assert.Equal(t, 1, corrected)

	sprints := tr.Sprints()
	assert.Equal(t, "2025-01-17", sprints[0].EndDate)

	// The current-sprint reference was refreshed too.
	assert.Equal(t, "2025-01-17", tr.CurrentSprint().EndDate)
}

func TestRecalculateAllSprintEndDates_Idempotent(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-06")
	_, err := tr.CreateSprint("S1", "2025-01-06", "2025-01-10")
	require.NoError(t, err)

	corrected, err := tr.RecalculateAllSprintEndDates()
	require.NoError(t, err)
	require.Equal(t, 1, corrected)

	corrected, err = tr.RecalculateAllSprintEndDates()
	require.NoError(t, err)
	assert.Equal(t, 0, corrected, "second pass finds nothing to repair")
}

// --- Entry management ---

func TestAddEntry_Accepted(t *testing.T) {
	tr, _ := withSprint(t, "2025-01-07")

	entry, err := tr.AddEntry("2025-01-07", "PROJ-1", 4, "tested X", false)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-07", entry.Date)
	assert.Equal(t, "PROJ-1", entry.JiraID)
	assert.Equal(t, 4.0, entry.TimeSpent)
	assert.Equal(t, "tested X", entry.WorkDone)
	assert.Equal(t, tr.CurrentSprint().ID, entry.SprintID)
	assert.Equal(t, 4.0, tr.CurrentSprintTotalTime())
}

func TestAddEntry_TrimsFields(t *testing.T) {
	tr, _ := withSprint(t, "2025-01-07")

	entry, err := tr.AddEntry("2025-01-07", "  PROJ-1  ", 1, "  tested X  ", false)
	require.NoError(t, err)
	assert.Equal(t, "PROJ-1", entry.JiraID)
	assert.Equal(t, "tested X", entry.WorkDone)
}

func TestAddEntry_MissingFields(t *testing.T) {
	tr, _ := withSprint(t, "2025-01-07")

	tests := []struct {
		name             string
		date, jira, work string
		timeSpent        float64
	}{
		{"no date", "", "PROJ-1", "tested X", 4},
		{"no jira", "2025-01-07", "", "tested X", 4},
		{"blank jira", "2025-01-07", "   ", "tested X", 4},
		{"no work", "2025-01-07", "PROJ-1", "", 4},
		{"no time", "2025-01-07", "PROJ-1", "tested X", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.AddEntry(tt.date, tt.jira, tt.timeSpent, tt.work, false)
			assert.ErrorIs(t, err, ErrMissingField)
		})
	}
	assert.Empty(t, tr.Entries(), "no partial entries created")
}

func TestAddEntry_NonPositiveTime(t *testing.T) {
	tr, _ := withSprint(t, "2025-01-07")

	_, err := tr.AddEntry("2025-01-07", "PROJ-1", -2, "tested X", false)
	assert.ErrorIs(t, err, ErrInvalidTime)
	assert.Empty(t, tr.Entries())
}

func TestAddEntry_NoCurrentSprint(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-07")

	_, err := tr.AddEntry("2025-01-07", "PROJ-1", 4, "tested X", false)
	assert.ErrorIs(t, err, ErrNoCurrentSprint)
}

func TestAddEntry_WeekendRejected(t *testing.T) {
	tr, _ := withSprint(t, "2025-01-07")

	// 2025-01-11 is a Saturday inside the sprint window.
	_, err := tr.AddEntry("2025-01-11", "PROJ-1", 4, "tested X", false)
	assert.ErrorIs(t, err, ErrNotWorkingDay)
	assert.Empty(t, tr.Entries(), "entry count unchanged")
}

func TestAddEntry_OutsideSprintRejected(t *testing.T) {
	tr, _ := withSprint(t, "2025-01-07")

	// 2025-01-20 is a Monday after the sprint's 2025-01-17 end.
	_, err := tr.AddEntry("2025-01-20", "PROJ-1", 4, "tested X", false)
	assert.ErrorIs(t, err, ErrOutsideSprint)
	assert.Empty(t, tr.Entries())
}

func TestAddEntry_PastSprintWithAcknowledgement(t *testing.T) {
	// Today is past the sprint's end date.
	tr, _ := withSprint(t, "2025-01-20")
	require.True(t, tr.IsCurrentSprintOver())

	// The last sprint day is still accepted with the allowPast flag.
	entry, err := tr.AddEntry("2025-01-17", "PROJ-1", 4, "tested X", true)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-17", entry.Date)
}

func TestAddEntry_AllowPastStillBoundToCurrentSprint(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-02-10")

	// An older sprint exists, but a newer one is current.
	_, err := tr.CreateSprint("S1", "2025-01-06", "")
	require.NoError(t, err)
	_, err = tr.CreateSprint("S2", "2025-01-20", "")
	require.NoError(t, err)

	// A date inside S1 but outside the current S2 is rejected even with
	// allowPast: validation always targets the current sprint's window.
	_, err = tr.AddEntry("2025-01-07", "PROJ-1", 4, "tested X", true)
	assert.ErrorIs(t, err, ErrOutsideSprint)
}

func TestAddEntry_UniqueIDsWithinSameMillisecond(t *testing.T) {
	tr, _ := withSprint(t, "2025-01-07")

	a, err := tr.AddEntry("2025-01-07", "PROJ-1", 1, "a", false)
	require.NoError(t, err)
	b, err := tr.AddEntry("2025-01-07", "PROJ-2", 1, "b", false)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID, "fixed clock must still yield unique ids")
}

func TestDeleteEntry(t *testing.T) {
	tr, _ := withSprint(t, "2025-01-07")

	entry, err := tr.AddEntry("2025-01-07", "PROJ-1", 4, "tested X", false)
	require.NoError(t, err)

	removed, err := tr.DeleteEntry(entry.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, tr.Entries())

	// Absence is a benign no-op.
	removed, err = tr.DeleteEntry(entry.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestClearAllEntries(t *testing.T) {
	tr, _ := withSprint(t, "2025-01-07")
	_, err := tr.AddEntry("2025-01-07", "PROJ-1", 4, "tested X", false)
	require.NoError(t, err)

	require.NoError(t, tr.ClearAllEntries())
	assert.Empty(t, tr.Entries())
	assert.NotNil(t, tr.CurrentSprint(), "sprints untouched")
}

func TestClearAllData(t *testing.T) {
	tr, s := withSprint(t, "2025-01-07")
	_, err := tr.AddEntry("2025-01-07", "PROJ-1", 4, "tested X", false)
	require.NoError(t, err)

	require.NoError(t, tr.ClearAllData())
	assert.Empty(t, tr.Entries())
	assert.Empty(t, tr.Sprints())
	assert.Nil(t, tr.CurrentSprint())

	// The wipe is persisted too.
	fresh, err := New(s, WithClock(clockAt(t, "2025-01-07")))
	require.NoError(t, err)
	assert.Empty(t, fresh.Sprints())
	assert.Nil(t, fresh.CurrentSprint())
}

// --- Persistence ---

func TestStateSurvivesReload(t *testing.T) {
	tr, s := withSprint(t, "2025-01-07")
	entry, err := tr.AddEntry("2025-01-07", "PROJ-1", 4, "tested X", false)
	require.NoError(t, err)

	fresh, err := New(s, WithClock(clockAt(t, "2025-01-07")))
	require.NoError(t, err)

	require.Len(t, fresh.Sprints(), 1)
	require.Len(t, fresh.Entries(), 1)
	assert.Equal(t, entry.ID, fresh.Entries()[0].ID)
	require.NotNil(t, fresh.CurrentSprint())
	assert.Equal(t, "S1", fresh.CurrentSprint().Name)
	assert.Equal(t, 4.0, fresh.CurrentSprintTotalTime())
}

func TestFailedValidationLeavesStoreUntouched(t *testing.T) {
	tr, s := withSprint(t, "2025-01-07")

	_, err := tr.AddEntry("2025-01-11", "PROJ-1", 4, "tested X", false)
	require.Error(t, err)

	entries, err := s.LoadEntries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// --- Predicates ---

func TestIsDateInCurrentSprint(t *testing.T) {
	tr, _ := withSprint(t, "2025-01-07")

	assert.True(t, tr.IsDateInCurrentSprint("2025-01-06"))  // first day
	assert.True(t, tr.IsDateInCurrentSprint("2025-01-17"))  // last day
	assert.False(t, tr.IsDateInCurrentSprint("2025-01-11")) // Saturday inside window
	assert.False(t, tr.IsDateInCurrentSprint("2025-01-03")) // before window
	assert.False(t, tr.IsDateInCurrentSprint("2025-01-20")) // after window
	assert.False(t, tr.IsDateInCurrentSprint("garbage"))
}

func TestIsDateInCurrentSprint_NoSprint(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-07")
	assert.False(t, tr.IsDateInCurrentSprint("2025-01-07"))
}

func TestIsDateInSprintPeriod(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-07")
	sp := models.Sprint{StartDate: "2025-01-06", EndDate: "2025-01-17"}

	assert.True(t, tr.IsDateInSprintPeriod("2025-01-10", sp))
	assert.False(t, tr.IsDateInSprintPeriod("2025-01-12", sp)) // Sunday
	assert.False(t, tr.IsDateInSprintPeriod("2025-01-31", sp))
}

func TestIsCurrentSprintOver(t *testing.T) {
	tr, _ := withSprint(t, "2025-01-17")
	assert.False(t, tr.IsCurrentSprintOver(), "last day is not over")

	tr2, _ := withSprint(t, "2025-01-18")
	assert.True(t, tr2.IsCurrentSprintOver())

	tr3, _ := newTestTracker(t, "2025-01-18")
	assert.False(t, tr3.IsCurrentSprintOver(), "no sprint selected")
}

func TestCurrentSprintDaysRemaining(t *testing.T) {
	tests := []struct {
		today string
		want  int
	}{
		{"2025-01-06", 10}, // first day
		{"2025-01-08", 8},
		{"2025-01-11", 5},  // Saturday: the second week remains
		{"2025-01-17", 1},  // last day
		{"2025-01-18", 0},  // past the end
	}
	for _, tt := range tests {
		tr, _ := withSprint(t, tt.today)
		assert.Equal(t, tt.want, tr.CurrentSprintDaysRemaining(), "today=%s", tt.today)
	}
}

func TestCurrentSprintDaysRemaining_NoSprint(t *testing.T) {
	tr, _ := newTestTracker(t, "2025-01-08")
	assert.Equal(t, 0, tr.CurrentSprintDaysRemaining())
}
