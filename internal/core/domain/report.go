package domain

// DailyCompletion is one day of a monthly report. Date is an ISO
// calendar date string (YYYY-MM-DD).
type DailyCompletion struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// ProgressReport is the derived monthly view of a single habit. It is
// computed on demand and never persisted.
type ProgressReport struct {
	HabitID        string            `json:"habitId"`
	Month          string            `json:"month"`
	TotalDays      int               `json:"totalDays"`
	CompletedDays  int               `json:"completedDays"`
	CompletionRate float64           `json:"completionRate"`
	DailyData      []DailyCompletion `json:"dailyData"`
}

// DashboardSummary is the derived cross-habit view. Stats is a sparse
// category -> habit count mapping; categories with no habits are
// omitted.
type DashboardSummary struct {
	TotalHabits     int            `json:"totalHabits"`
	CompletedToday  int            `json:"completedToday"`
	WeeklyAverage   float64        `json:"weeklyAverage"`
	MonthlyProgress float64        `json:"monthlyProgress"`
	Stats           map[string]int `json:"stats"`
}
