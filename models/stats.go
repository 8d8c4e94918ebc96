package models

// WarningLevel classifies budget utilization; the zero value means no warning.
type WarningLevel string

const (
	WarningNone    WarningLevel = ""
	WarningWarning WarningLevel = "warning"
	WarningDanger  WarningLevel = "danger"
)

// ProjectStats holds the values derived from a project's budget and reports.
// It is computed on every request and never persisted.
type ProjectStats struct {
	TotalSpent          float64      `json:"totalSpent"`
	TotalPeopleImpacted int64        `json:"totalPeopleImpacted"`
	TotalReports        int          `json:"totalReports"`
	BudgetRemaining     float64      `json:"budgetRemaining"`
	BudgetUtilization   float64      `json:"budgetUtilization"`
	IsOverBudget        bool         `json:"isOverBudget"`
	WarningLevel        WarningLevel `json:"warningLevel,omitempty"`
}

// ProjectWithStats merges a project's own fields with its statistics in one JSON object.
type ProjectWithStats struct {
	Project
	ProjectStats
}

// StatsQuery is the parsed form of the statistics listing query string.
type StatsQuery struct {
	Page         int
	Limit        int
	SDGGoal      string
	Status       string
	Organization string
}

func (q StatsQuery) Filter() ProjectFilter {
	return ProjectFilter{
		SDGGoal:      q.SDGGoal,
		Status:       q.Status,
		Organization: q.Organization,
	}
}

// ProjectStatsPage is the paginated statistics envelope.
type ProjectStatsPage struct {
	Success       bool               `json:"success"`
	Page          int                `json:"page"`
	Limit         int                `json:"limit"`
	TotalProjects int64              `json:"totalProjects"`
	TotalPages    int                `json:"totalPages"`
	Count         int                `json:"count"`
	Data          []ProjectWithStats `json:"data"`
}
