package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"partnersync/models"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "handler-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type mockProjectStore struct {
	mock.Mock
}

func (m *mockProjectStore) CreateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	args := m.Called(ctx, p)
	if created, ok := args.Get(0).(*models.Project); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjectStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]models.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjectStore) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*models.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjectStore) UpdateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	args := m.Called(ctx, p)
	if updated, ok := args.Get(0).(*models.Project); ok {
		return updated, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjectStore) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockStatsService struct {
	mock.Mock
}

func (m *mockStatsService) ListProjectStats(ctx context.Context, q models.StatsQuery) (*models.ProjectStatsPage, error) {
	args := m.Called(ctx, q)
	if page, ok := args.Get(0).(*models.ProjectStatsPage); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStatsService) GetProjectStats(ctx context.Context, rawID string) (*models.ProjectWithStats, error) {
	args := m.Called(ctx, rawID)
	if p, ok := args.Get(0).(*models.ProjectWithStats); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) Submit(ctx context.Context, caller models.Caller, req models.SubmitReportRequest) (*models.Report, *string, error) {
	args := m.Called(ctx, caller, req)
	r, _ := args.Get(0).(*models.Report)
	w, _ := args.Get(1).(*string)
	return r, w, args.Error(2)
}

func (m *mockReportService) ListByProject(ctx context.Context, projectID uuid.UUID, q models.ReportQuery) ([]models.Report, error) {
	args := m.Called(ctx, projectID, q)
	list, _ := args.Get(0).([]models.Report)
	return list, args.Error(1)
}

func (m *mockReportService) Update(ctx context.Context, caller models.Caller, reportID uuid.UUID, req models.UpdateReportRequest) (*models.Report, error) {
	args := m.Called(ctx, caller, reportID, req)
	r, _ := args.Get(0).(*models.Report)
	return r, args.Error(1)
}

func (m *mockReportService) Delete(ctx context.Context, caller models.Caller, reportID uuid.UUID) error {
	return m.Called(ctx, caller, reportID).Error(0)
}

func (m *mockReportService) Summary(ctx context.Context) (*models.ReportSummary, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*models.ReportSummary)
	return s, args.Error(1)
}

type testServer struct {
	router   *gin.Engine
	projects *mockProjectStore
	stats    *mockStatsService
	reports  *mockReportService
}

func newTestServer() *testServer {
	ts := &testServer{
		projects: new(mockProjectStore),
		stats:    new(mockStatsService),
		reports:  new(mockReportService),
	}
	ts.router = NewRouter(ts.projects, ts.stats, ts.reports, testSecret, zap.NewNop())
	return ts
}

func tokenFor(t *testing.T, caller models.Caller) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": caller.UserID.String(),
		"role":    caller.Role,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// do sends a request; a zero caller sends no Authorization header.
func (ts *testServer) do(t *testing.T, method, path string, body interface{}, caller models.Caller) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if caller.Role != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, caller))
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

var noCaller = models.Caller{}

func callerWithRole(role string) models.Caller {
	return models.Caller{UserID: uuid.New(), Role: role}
}
