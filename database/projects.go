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

const projectColumns = `id, title, description, sdg_goal, status, organization, budget,
		start_date, end_date, created_at, updated_at`

func (db *DB) CreateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	defer db.observe("CreateProject", "projects", time.Now())

	query := `
		INSERT INTO projects (title, description, sdg_goal, status, organization, budget, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + projectColumns

	project, err := scanProject(db.Pool.QueryRow(ctx, query,
		p.Title, p.Description, p.SDGGoal, p.Status, p.Organization, p.Budget, p.StartDate, p.EndDate))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	db.log.Info("Created project", zap.String("title", project.Title), zap.Stringer("id", project.ID))
	return project, nil
}

func (db *DB) ListProjects(ctx context.Context) ([]models.Project, error) {
	defer db.observe("ListProjects", "projects", time.Now())

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		ORDER BY created_at ASC, id ASC
	`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects, _, err := scanProjects(rows, false)
	return projects, err
}

// QueryProjects returns one page of projects matching filter in creation order,
// plus the number of matching projects before pagination.
// Uses COUNT(*) OVER() so the total comes back with the page; when the page is past
// the end no row carries the total and a separate count is issued.
func (db *DB) QueryProjects(ctx context.Context, filter models.ProjectFilter, limit, offset int) ([]models.Project, int64, error) {
	defer db.observe("QueryProjects", "projects", time.Now(),
		zap.String("sdgGoal", filter.SDGGoal),
		zap.String("status", filter.Status),
		zap.String("organization", filter.Organization),
		zap.Int("limit", limit),
		zap.Int("offset", offset))

	qb := projectFilterQuery(filter)

	// SAFETY: All user input is parameterized via $N placeholders.
	query := fmt.Sprintf(`
		SELECT %s,
			COUNT(*) OVER() as total_count
		FROM projects
		%s
		ORDER BY %s ASC, %s ASC
		LIMIT $%d OFFSET $%d
	`, projectColumns, qb.WhereClause(), columnCreatedAt, columnID, qb.NextArgNum(), qb.NextArgNum()+1)

	args := append(qb.Args(), limit, offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects, total, err := scanProjects(rows, true)
	if err != nil {
		return nil, 0, err
	}

	if len(projects) == 0 && offset > 0 {
		total, err = db.CountProjects(ctx, filter)
		if err != nil {
			return nil, 0, err
		}
	}

	return projects, total, nil
}

func (db *DB) CountProjects(ctx context.Context, filter models.ProjectFilter) (int64, error) {
	defer db.observe("CountProjects", "projects", time.Now())

	qb := projectFilterQuery(filter)
	query := "SELECT COUNT(*) FROM projects " + qb.WhereClause()

	var total int64
	if err := db.Pool.QueryRow(ctx, query, qb.Args()...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return total, nil
}

func (db *DB) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	defer db.observe("GetProject", "projects", time.Now())

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE id = $1
	`

	project, err := scanProject(db.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// UpdateProject overwrites every mutable column of p and bumps updated_at.
func (db *DB) UpdateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	defer db.observe("UpdateProject", "projects", time.Now())

	query := `
		UPDATE projects
		SET title = $2, description = $3, sdg_goal = $4, status = $5, organization = $6,
			budget = $7, start_date = $8, end_date = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + projectColumns

	project, err := scanProject(db.Pool.QueryRow(ctx, query, p.ID,
		p.Title, p.Description, p.SDGGoal, p.Status, p.Organization, p.Budget, p.StartDate, p.EndDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

func (db *DB) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	defer db.observe("DeleteProject", "projects", time.Now())

	query := `DELETE FROM projects WHERE id = $1`

	result, err := db.Pool.Exec(ctx, query, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}

	db.log.Info("Deleted project", zap.Stringer("id", projectID))
	return nil
}

// Helper functions

func projectFilterQuery(filter models.ProjectFilter) *QueryBuilder {
	qb := NewQueryBuilder()
	qb.AddOptionalCondition(columnSDGGoal, filter.SDGGoal)
	qb.AddOptionalCondition(columnStatus, filter.Status)
	qb.AddOptionalCondition(columnOrganization, filter.Organization)
	return qb
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner, extra ...interface{}) (*models.Project, error) {
	var project models.Project
	dest := []interface{}{
		&project.ID,
		&project.Title,
		&project.Description,
		&project.SDGGoal,
		&project.Status,
		&project.Organization,
		&project.Budget,
		&project.StartDate,
		&project.EndDate,
		&project.CreatedAt,
		&project.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &project, nil
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanProjects(rows rowsScanner, withTotal bool) ([]models.Project, int64, error) {
	projects := []models.Project{}
	var total int64

	for rows.Next() {
		var extra []interface{}
		if withTotal {
			extra = append(extra, &total)
		}
		project, err := scanProject(rows, extra...)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, total, nil
}
