package models

// Sprint is a fixed tracking period of ten working days with an 80-hour goal.
// Dates are calendar days stored as YYYY-MM-DD; weekends never count toward
// the sprint length.
type Sprint struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	CreatedAt int64  `json:"createdAt"`
}
