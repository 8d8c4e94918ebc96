package database

import (
	"fmt"
	"strings"
	"time"
)

const (
	columnID           = "id"
	columnSDGGoal      = "sdg_goal"
	columnStatus       = "status"
	columnOrganization = "organization"
	columnCreatedAt    = "created_at"
	columnProjectID    = "project_id"
	columnReportDate   = "report_date"
)

// QueryBuilder helps build WHERE clauses safely
type QueryBuilder struct {
	conditions []string
	args       []interface{}
	argCount   int
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		conditions: []string{},
		args:       []interface{}{},
		argCount:   1,
	}
}

func (qb *QueryBuilder) AddCondition(column string, value interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = $%d", column, qb.argCount))
	qb.args = append(qb.args, value)
	qb.argCount++
}

// AddOptionalCondition skips empty filter values.
func (qb *QueryBuilder) AddOptionalCondition(column, value string) {
	if value != "" {
		qb.AddCondition(column, value)
	}
}

// AddAnyCondition matches column against every element of values (column = ANY($n)).
func (qb *QueryBuilder) AddAnyCondition(column string, values interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = ANY($%d)", column, qb.argCount))
	qb.args = append(qb.args, values)
	qb.argCount++
}

func (qb *QueryBuilder) AddTimeRange(column, start, end string) error {
	if start != "" {
		startTime, err := parseRFC3339(start)
		if err != nil {
			return fmt.Errorf("invalid start time: %w", err)
		}
		qb.conditions = append(qb.conditions, fmt.Sprintf("%s >= $%d", column, qb.argCount))
		qb.args = append(qb.args, startTime)
		qb.argCount++
	}

	if end != "" {
		endTime, err := parseRFC3339(end)
		if err != nil {
			return fmt.Errorf("invalid end time: %w", err)
		}
		qb.conditions = append(qb.conditions, fmt.Sprintf("%s <= $%d", column, qb.argCount))
		qb.args = append(qb.args, endTime)
		qb.argCount++
	}

	return nil
}

func (qb *QueryBuilder) WhereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}

func (qb *QueryBuilder) NextArgNum() int {
	return qb.argCount
}

// Helper functions

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
