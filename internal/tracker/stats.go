package tracker

import (
	"math"

	"tst/internal/dates"
)

// NoSprintName is reported in summaries when no sprint is selected.
const NoSprintName = "no sprint selected"

// SprintSummary aggregates the current sprint's entries.
type SprintSummary struct {
	SprintName        string  `json:"sprintName"`
	EntryCount        int     `json:"entryCount"`
	TotalTime         float64 `json:"totalTime"`
	ActiveDays        int     `json:"activeDays"`
	AverageTimePerDay float64 `json:"averageTimePerDay"`
	DaysRemaining     int     `json:"daysRemaining"`
	Progress          float64 `json:"progress"`
}

// Summary aggregates all entries regardless of sprint.
type Summary struct {
	EntryCount        int     `json:"entryCount"`
	TotalTime         float64 `json:"totalTime"`
	ActiveDays        int     `json:"activeDays"`
	AverageTimePerDay float64 `json:"averageTimePerDay"`
	SprintCount       int     `json:"sprintCount"`
}

// TotalTimeForDate sums the hours logged on an exact date.
func (t *Tracker) TotalTimeForDate(date string) float64 {
	total := 0.0
	for _, e := range t.entries {
		if e.Date == date {
			total += e.TimeSpent
		}
	}
	return total
}

// CurrentSprintTotalTime sums the hours of entries owned by the current
// sprint. Zero when no sprint is selected.
func (t *Tracker) CurrentSprintTotalTime() float64 {
	if t.current == nil {
		return 0
	}
	total := 0.0
	for _, e := range t.entries {
		if e.SprintID == t.current.ID {
			total += e.TimeSpent
		}
	}
	return total
}

// RemainingTimeForDate returns the hours left toward the daily target,
// never negative.
func (t *Tracker) RemainingTimeForDate(date string) float64 {
	return math.Max(0, HoursPerDay-t.TotalTimeForDate(date))
}

// CurrentSprintRemainingTime returns the hours left toward the sprint
// target, never negative.
func (t *Tracker) CurrentSprintRemainingTime() float64 {
	return math.Max(0, HoursPerSprint-t.CurrentSprintTotalTime())
}

// ProgressForDate returns the day's progress percentage, clamped to 100.
func (t *Tracker) ProgressForDate(date string) float64 {
	return math.Min(100, t.TotalTimeForDate(date)/HoursPerDay*100)
}

// CurrentSprintProgress returns the sprint's progress percentage, clamped
// to 100 even when more than the 80-hour target is logged.
func (t *Tracker) CurrentSprintProgress() float64 {
	return math.Min(100, t.CurrentSprintTotalTime()/HoursPerSprint*100)
}

// CurrentSprintSummary derives the dashboard numbers for the current
// sprint. Active days count distinct working-day dates with at least one
// entry; a weekend date that slipped into the data is excluded from the
// count.
func (t *Tracker) CurrentSprintSummary() SprintSummary {
	s := SprintSummary{SprintName: NoSprintName}
	if t.current == nil {
		return s
	}

	s.SprintName = t.current.Name
	entries := t.EntriesForSprint(t.current.ID)
	s.EntryCount = len(entries)

	total := 0.0
	days := map[string]bool{}
	for _, e := range entries {
		total += e.TimeSpent
		if isWorkingDate(e.Date) {
			days[e.Date] = true
		}
	}

	s.TotalTime = round2(total)
	s.ActiveDays = len(days)
	if s.ActiveDays > 0 {
		s.AverageTimePerDay = round2(total / float64(s.ActiveDays))
	}
	s.DaysRemaining = t.CurrentSprintDaysRemaining()
	s.Progress = round1(t.CurrentSprintProgress())
	return s
}

// OverallSummary derives the same totals across all entries regardless of
// sprint, plus the sprint count.
func (t *Tracker) OverallSummary() Summary {
	s := Summary{
		EntryCount:  len(t.entries),
		SprintCount: len(t.sprints),
	}

	total := 0.0
	days := map[string]bool{}
	for _, e := range t.entries {
		total += e.TimeSpent
		if isWorkingDate(e.Date) {
			days[e.Date] = true
		}
	}

	s.TotalTime = round2(total)
	s.ActiveDays = len(days)
	if s.ActiveDays > 0 {
		s.AverageTimePerDay = round2(total / float64(s.ActiveDays))
	}
	return s
}

func isWorkingDate(date string) bool {
	d, err := dates.Parse(date)
	if err != nil {
		return false
	}
	return dates.IsWorkingDay(d)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Today returns the tracker's notion of today's date.
func (t *Tracker) Today() string {
	return t.today()
}
