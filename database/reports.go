package database

import (
	"context"
	"errors"
	"fmt"
	"partnersync/models"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const reportColumns = `id, project_id, reported_by, report_type, amount_lkr, amount_usd, exchange_rate,
		people_impacted, description, report_date, created_at, updated_at`

func (db *DB) CreateReport(ctx context.Context, r models.Report) (*models.Report, error) {
	defer db.observe("CreateReport", "reports", time.Now())

	query := `
		INSERT INTO reports (project_id, reported_by, report_type, amount_lkr, amount_usd, exchange_rate,
			people_impacted, description, report_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + reportColumns

	report, err := scanReport(db.Pool.QueryRow(ctx, query,
		r.ProjectID, r.ReportedBy, r.ReportType, r.AmountLKR, r.AmountUSD, r.ExchangeRate,
		r.PeopleImpacted, r.Description, r.ReportDate))
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	db.log.Info("Created report",
		zap.Stringer("id", report.ID),
		zap.Stringer("project", report.ProjectID),
		zap.String("type", report.ReportType))
	return report, nil
}

func (db *DB) GetReport(ctx context.Context, reportID uuid.UUID) (*models.Report, error) {
	defer db.observe("GetReport", "reports", time.Now())

	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

	report, err := scanReport(db.Pool.QueryRow(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report %s: %w", reportID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return report, nil
}

func (db *DB) UpdateReport(ctx context.Context, r models.Report) (*models.Report, error) {
	defer db.observe("UpdateReport", "reports", time.Now())

	query := `
		UPDATE reports
		SET report_type = $2, amount_lkr = $3, amount_usd = $4, exchange_rate = $5,
			people_impacted = $6, description = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reportColumns

	report, err := scanReport(db.Pool.QueryRow(ctx, query, r.ID,
		r.ReportType, r.AmountLKR, r.AmountUSD, r.ExchangeRate, r.PeopleImpacted, r.Description))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report %s: %w", r.ID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return report, nil
}

func (db *DB) DeleteReport(ctx context.Context, reportID uuid.UUID) error {
	defer db.observe("DeleteReport", "reports", time.Now())

	result, err := db.Pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, reportID)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("report %s: %w", reportID, ErrNotFound)
	}

	db.log.Info("Deleted report", zap.Stringer("id", reportID))
	return nil
}

// ListReportsByProject returns a project's reports, most recent report date first.
// params.From and params.To bound report_date inclusively (RFC3339).
func (db *DB) ListReportsByProject(ctx context.Context, projectID uuid.UUID, params models.ReportQuery) ([]models.Report, error) {
	defer db.observe("ListReportsByProject", "reports", time.Now(),
		zap.Stringer("project", projectID), zap.String("from", params.From), zap.String("to", params.To))

	qb := NewQueryBuilder()
	qb.AddCondition(columnProjectID, projectID)
	if err := qb.AddTimeRange(columnReportDate, params.From, params.To); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM reports
		%s
		ORDER BY %s DESC, %s DESC
	`, reportColumns, qb.WhereClause(), columnReportDate, columnCreatedAt)

	rows, err := db.Pool.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	return scanReports(rows)
}

// ReportsForProjects loads the reports of every given project in one round-trip,
// grouped by project. Projects without reports are absent from the map.
func (db *DB) ReportsForProjects(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID][]models.Report, error) {
	grouped := make(map[uuid.UUID][]models.Report, len(projectIDs))
	if len(projectIDs) == 0 {
		return grouped, nil
	}

	defer db.observe("ReportsForProjects", "reports", time.Now(), zap.Int("projects", len(projectIDs)))

	qb := NewQueryBuilder()
	qb.AddAnyCondition(columnProjectID, projectIDs)

	query := fmt.Sprintf(`
		SELECT %s
		FROM reports
		%s
		ORDER BY %s ASC
	`, reportColumns, qb.WhereClause(), columnCreatedAt)

	rows, err := db.Pool.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to load project reports: %w", err)
	}
	defer rows.Close()

	reports, err := scanReports(rows)
	if err != nil {
		return nil, err
	}

	for _, r := range reports {
		grouped[r.ProjectID] = append(grouped[r.ProjectID], r)
	}
	return grouped, nil
}

// SummarizeReports aggregates impact totals across every stored report.
// The four aggregates are sent as a single pgx batch.
func (db *DB) SummarizeReports(ctx context.Context) (*models.ReportSummary, error) {
	defer db.observe("SummarizeReports", "reports", time.Now())

	batch := &pgx.Batch{}
	batch.Queue(`
		SELECT COALESCE(SUM(amount_lkr), 0), COALESCE(SUM(amount_usd), 0), COUNT(*)
		FROM reports WHERE report_type = $1`, models.ReportTypeFinancial)
	batch.Queue(`
		SELECT COALESCE(SUM(people_impacted), 0), COUNT(*)
		FROM reports WHERE report_type = $1`, models.ReportTypePeopleHelped)
	batch.Queue(`SELECT report_type, COUNT(*) FROM reports GROUP BY report_type ORDER BY report_type`)
	batch.Queue(`SELECT COUNT(DISTINCT project_id), COUNT(*) FROM reports`)

	results := db.Pool.SendBatch(ctx, batch)
	defer func() {
		_ = results.Close()
	}()

	summary := &models.ReportSummary{ReportsByType: []models.TypeCount{}}

	err := results.QueryRow().Scan(
		&summary.Financial.TotalLKR, &summary.Financial.TotalUSD, &summary.Financial.ReportCount)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize financial reports: %w", err)
	}

	err = results.QueryRow().Scan(&summary.People.TotalPeople, &summary.People.ReportCount)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize people reports: %w", err)
	}

	rows, err := results.Query()
	if err != nil {
		return nil, fmt.Errorf("failed to count reports by type: %w", err)
	}
	for rows.Next() {
		var tc models.TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan report type count: %w", err)
		}
		summary.ReportsByType = append(summary.ReportsByType, tc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report types: %w", err)
	}

	err = results.QueryRow().Scan(&summary.ProjectsReported, &summary.TotalReports)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	return summary, nil
}

// Helper functions

func scanReport(row rowScanner) (*models.Report, error) {
	var r models.Report
	err := row.Scan(
		&r.ID, &r.ProjectID, &r.ReportedBy, &r.ReportType,
		&r.AmountLKR, &r.AmountUSD, &r.ExchangeRate, &r.PeopleImpacted,
		&r.Description, &r.ReportDate, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanReports(rows rowsScanner) ([]models.Report, error) {
	reports := []models.Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}
