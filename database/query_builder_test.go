package database

import (
	"partnersync/models"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryBuilder_AddCondition(t *testing.T) {
	qb := NewQueryBuilder()

	qb.AddCondition("status", "In Progress")

	assert.Equal(t, "WHERE status = $1", qb.WhereClause())
	assert.Equal(t, []interface{}{"In Progress"}, qb.Args())
	assert.Equal(t, 2, qb.NextArgNum())
}

func TestQueryBuilder_MultipleConditions(t *testing.T) {
	qb := NewQueryBuilder()

	qb.AddCondition("sdg_goal", "Clean Water")
	qb.AddCondition("status", "Proposed")
	qb.AddCondition("organization", "WaterAid")

	assert.Equal(t, "WHERE sdg_goal = $1 AND status = $2 AND organization = $3", qb.WhereClause())
	assert.Equal(t, []interface{}{"Clean Water", "Proposed", "WaterAid"}, qb.Args())
	assert.Equal(t, 4, qb.NextArgNum())
}

func TestQueryBuilder_AddOptionalCondition(t *testing.T) {
	qb := NewQueryBuilder()

	qb.AddOptionalCondition("sdg_goal", "")
	qb.AddOptionalCondition("status", "Completed")
	qb.AddOptionalCondition("organization", "")

	assert.Equal(t, "WHERE status = $1", qb.WhereClause())
	assert.Equal(t, []interface{}{"Completed"}, qb.Args())
}

func TestQueryBuilder_AddAnyCondition(t *testing.T) {
	qb := NewQueryBuilder()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	qb.AddAnyCondition("project_id", ids)

	assert.Equal(t, "WHERE project_id = ANY($1)", qb.WhereClause())
	assert.Equal(t, []interface{}{ids}, qb.Args())
}

func TestQueryBuilder_AddTimeRange(t *testing.T) {
	tests := []struct {
		name           string
		startTime      string
		endTime        string
		wantConditions int
		wantErr        bool
	}{
		{
			name:           "both start and end",
			startTime:      "2024-11-01T00:00:00Z",
			endTime:        "2024-11-22T23:59:59Z",
			wantConditions: 2,
		},
		{
			name:           "only start",
			startTime:      "2024-11-01T00:00:00Z",
			wantConditions: 1,
		},
		{
			name:           "only end",
			endTime:        "2024-11-22T23:59:59Z",
			wantConditions: 1,
		},
		{
			name:           "neither",
			wantConditions: 0,
		},
		{
			name:      "invalid start time",
			startTime: "not-a-date",
			wantErr:   true,
		},
		{
			name:    "invalid end time",
			endTime: "not-a-date",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := NewQueryBuilder()
			err := qb.AddTimeRange("report_date", tt.startTime, tt.endTime)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, qb.Args(), tt.wantConditions)
			}
		})
	}
}

func TestQueryBuilder_WhereClause_Empty(t *testing.T) {
	qb := NewQueryBuilder()

	assert.Equal(t, "", qb.WhereClause())
	assert.Empty(t, qb.Args())
}

func TestQueryBuilder_ReportTimelineQuery(t *testing.T) {
	qb := NewQueryBuilder()

	qb.AddCondition("project_id", "abc-123")
	err := qb.AddTimeRange("report_date", "2024-11-01T00:00:00Z", "2024-11-22T23:59:59Z")
	require.NoError(t, err)

	whereClause := qb.WhereClause()

	assert.Contains(t, whereClause, "project_id = $1")
	assert.Contains(t, whereClause, "report_date >= $2")
	assert.Contains(t, whereClause, "report_date <= $3")
	assert.Len(t, qb.Args(), 3)
}

func TestProjectFilterQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    models.ProjectFilter
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "no filters",
			filter:    models.ProjectFilter{},
			wantWhere: "",
			wantArgs:  []interface{}{},
		},
		{
			name:      "goal only",
			filter:    models.ProjectFilter{SDGGoal: "Zero Hunger"},
			wantWhere: "WHERE sdg_goal = $1",
			wantArgs:  []interface{}{"Zero Hunger"},
		},
		{
			name: "all filters",
			filter: models.ProjectFilter{
				SDGGoal:      "Climate Action",
				Status:       "In Progress",
				Organization: "GreenLanka",
			},
			wantWhere: "WHERE sdg_goal = $1 AND status = $2 AND organization = $3",
			wantArgs:  []interface{}{"Climate Action", "In Progress", "GreenLanka"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := projectFilterQuery(tt.filter)
			assert.Equal(t, tt.wantWhere, qb.WhereClause())
			assert.Equal(t, tt.wantArgs, qb.Args())
		})
	}
}
