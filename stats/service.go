package stats

import (
	"context"
	"errors"
	"fmt"
	"partnersync/database"
	"partnersync/metrics"
	"partnersync/models"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalidID indicates the project identifier is not a well-formed key.
	ErrInvalidID = errors.New("invalid project ID")
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
)

// Store is the read side the statistics need from persistence.
type Store interface {
	QueryProjects(ctx context.Context, filter models.ProjectFilter, limit, offset int) ([]models.Project, int64, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ReportsForProjects(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]models.Report, error)
}

type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// ListProjectStats filters projects, slices the requested page and computes the
// statistics of every project on it. Store failures are returned wrapped.
func (s *Service) ListProjectStats(ctx context.Context, q models.StatsQuery) (*models.ProjectStatsPage, error) {
	start := time.Now()
	page, limit, offset := Paginate(q.Page, q.Limit)

	projects, total, err := s.store.QueryProjects(ctx, q.Filter(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}

	ids := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	reports, err := s.store.ReportsForProjects(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}

	data := make([]models.ProjectWithStats, 0, len(projects))
	for _, p := range projects {
		enriched := Enrich(p, reports[p.ID])
		metrics.IncrementProjectStats(string(enriched.WarningLevel))
		data = append(data, enriched)
	}

	s.log.Info("ListProjectStats",
		zap.Duration("duration", time.Since(start)),
		zap.Int("page", page),
		zap.Int("limit", limit),
		zap.Int64("total", total),
		zap.String("sdgGoal", q.SDGGoal),
		zap.String("status", q.Status),
		zap.String("organization", q.Organization))

	return &models.ProjectStatsPage{
		Success:       true,
		Page:          page,
		Limit:         limit,
		TotalProjects: total,
		TotalPages:    TotalPages(total, limit),
		Count:         len(data),
		Data:          data,
	}, nil
}

// GetProjectStats computes the statistics of one project.
// Returns ErrInvalidID for a malformed id and ErrProjectNotFound when it doesn't exist.
func (s *Service) GetProjectStats(ctx context.Context, rawID string) (*models.ProjectWithStats, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, rawID)
	}

	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	reports, err := s.store.ReportsForProjects(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}

	enriched := Enrich(*project, reports[id])
	metrics.IncrementProjectStats(string(enriched.WarningLevel))
	return &enriched, nil
}
