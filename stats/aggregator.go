// Package stats derives budget and impact statistics for projects from their reports.
package stats

import "partnersync/models"

const (
	warningThreshold = 80.0
	dangerThreshold  = 100.0
)

// Compute derives a project's statistics from its budget and the full set of its reports.
//
// A nil budget is treated as zero. Only financial reports contribute to TotalSpent and
// only people_helped reports contribute to TotalPeopleImpacted; missing amounts count as
// zero. Utilization is not capped, so it can exceed 100, and BudgetRemaining can go
// negative. With a zero budget utilization is 0 and the project is never over budget.
//
// Compute is pure: identical inputs always yield identical output.
func Compute(budget *float64, reports []models.Report) models.ProjectStats {
	var b float64
	if budget != nil {
		b = *budget
	}

	s := models.ProjectStats{TotalReports: len(reports)}

	for _, r := range reports {
		switch r.ReportType {
		case models.ReportTypeFinancial:
			if r.AmountLKR != nil {
				s.TotalSpent += *r.AmountLKR
			}
		case models.ReportTypePeopleHelped:
			if r.PeopleImpacted != nil {
				s.TotalPeopleImpacted += int64(*r.PeopleImpacted)
			}
		}
	}

	s.BudgetRemaining = b - s.TotalSpent

	if b > 0 {
		s.BudgetUtilization = s.TotalSpent / b * 100
		s.IsOverBudget = s.TotalSpent > b
	}

	s.WarningLevel = ClassifyUtilization(s.BudgetUtilization)
	return s
}

// ClassifyUtilization maps a utilization percentage to a warning level:
// danger at 100 and above, warning from 80, none below.
func ClassifyUtilization(utilization float64) models.WarningLevel {
	switch {
	case utilization >= dangerThreshold:
		return models.WarningDanger
	case utilization >= warningThreshold:
		return models.WarningWarning
	default:
		return models.WarningNone
	}
}

// Enrich pairs a project with the statistics of its reports.
func Enrich(project models.Project, reports []models.Report) models.ProjectWithStats {
	return models.ProjectWithStats{
		Project:      project,
		ProjectStats: Compute(project.Budget, reports),
	}
}
