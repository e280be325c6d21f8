package models

// Entry records hours spent on a task on a specific working day.
// Entries reference their sprint by ID; a sprint never embeds its entries.
type Entry struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	JiraID    string  `json:"jiraId"`
	TimeSpent float64 `json:"timeSpent"`
	WorkDone  string  `json:"workDone"`
	SprintID  int64   `json:"sprintId"`
	Timestamp int64   `json:"timestamp"`
}
