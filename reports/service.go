// Package reports handles submission and maintenance of project progress reports.
package reports

import (
	"context"
	"errors"
	"fmt"
	"partnersync/database"
	"partnersync/exchange"
	"partnersync/models"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const conversionWarning = "USD conversion unavailable - exchange rate service is temporarily down"

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrProjectNotActive = errors.New(`reports can only be submitted for projects marked "In Progress"`)
	ErrForbidden        = errors.New("not authorized to modify this report")
)

type Store interface {
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	CreateReport(ctx context.Context, r models.Report) (*models.Report, error)
	GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	UpdateReport(ctx context.Context, r models.Report) (*models.Report, error)
	DeleteReport(ctx context.Context, id uuid.UUID) error
	ListReportsByProject(ctx context.Context, projectID uuid.UUID, q models.ReportQuery) ([]models.Report, error)
	SummarizeReports(ctx context.Context) (*models.ReportSummary, error)
}

// RateProvider supplies the LKR to USD conversion rate.
type RateProvider interface {
	LKRToUSD(ctx context.Context) (float64, error)
}

type Service struct {
	store Store
	rates RateProvider
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store Store, rates RateProvider, log *zap.Logger) *Service {
	return &Service{store: store, rates: rates, log: log, now: time.Now}
}

// Submit validates and stores a new report for an in-progress project.
// Financial reports get a USD snapshot; when the rate service is down the report is
// still stored and the returned warning explains the missing conversion.
func (s *Service) Submit(ctx context.Context, caller models.Caller, req models.SubmitReportRequest) (*models.Report, *string, error) {
	v := &models.ValidationError{}

	var projectID uuid.UUID
	if strings.TrimSpace(req.Project) == "" {
		v.Add("project", "Please select a project")
	} else if id, err := uuid.Parse(req.Project); err != nil {
		v.Add("project", "Invalid project ID")
	} else {
		projectID = id
	}

	// An invalid count becomes nil and is rejected below for people_helped reports.
	people, _ := models.ValidatePeopleImpacted(req.PeopleImpacted)

	report := models.Report{
		ProjectID:      projectID,
		ReportedBy:     caller.UserID,
		ReportType:     req.ReportType,
		AmountLKR:      req.AmountLKR,
		PeopleImpacted: people,
		Description:    req.Description,
		ReportDate:     s.now(),
	}
	if req.ReportDate != nil {
		report.ReportDate = *req.ReportDate
	}

	report.ValidateInto(v)
	if err := v.Err(); err != nil {
		return nil, nil, err
	}

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project.Status != models.StatusInProgress {
		return nil, nil, ErrProjectNotActive
	}

	var warning *string
	if report.ReportType == models.ReportTypeFinancial {
		if err := s.convert(ctx, &report); err != nil {
			w := conversionWarning
			warning = &w
		}
	}

	created, err := s.store.CreateReport(ctx, report)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("Report submitted",
		zap.Stringer("report", created.ID),
		zap.Stringer("project", created.ProjectID),
		zap.Stringer("by", caller.UserID),
		zap.Bool("converted", created.AmountUSD != nil))
	return created, warning, nil
}

// ListByProject returns a project's report timeline, newest first.
func (s *Service) ListByProject(ctx context.Context, projectID uuid.UUID, q models.ReportQuery) ([]models.Report, error) {
	return s.store.ListReportsByProject(ctx, projectID, q)
}

// Update applies a partial update on behalf of the report's owner or an admin.
// A changed LKR amount on a financial report refreshes the USD snapshot; if the rate
// service is down the previous snapshot is kept.
func (s *Service) Update(ctx context.Context, caller models.Caller, reportID uuid.UUID, req models.UpdateReportRequest) (*models.Report, error) {
	report, err := s.getOwned(ctx, caller, reportID)
	if err != nil {
		return nil, err
	}

	amountChanged := req.AmountLKR != nil && (report.AmountLKR == nil || *req.AmountLKR != *report.AmountLKR)

	if req.ReportType != nil {
		report.ReportType = *req.ReportType
	}
	if req.AmountLKR != nil {
		report.AmountLKR = req.AmountLKR
	}
	if req.Description != nil {
		report.Description = *req.Description
	}
	if req.PeopleImpacted != nil {
		people, ok := models.ValidatePeopleImpacted(req.PeopleImpacted)
		if !ok {
			v := &models.ValidationError{}
			v.Add("peopleImpacted", "People helped reports require a positive whole number")
			return nil, v
		}
		report.PeopleImpacted = people
	}

	if err := report.Validate(); err != nil {
		return nil, err
	}

	if report.ReportType == models.ReportTypeFinancial && amountChanged {
		if err := s.convert(ctx, report); err != nil {
			s.log.Warn("Keeping previous USD amount", zap.Stringer("report", report.ID))
		}
	}

	updated, err := s.store.UpdateReport(ctx, *report)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a report on behalf of its owner or an admin.
func (s *Service) Delete(ctx context.Context, caller models.Caller, reportID uuid.UUID) error {
	if _, err := s.getOwned(ctx, caller, reportID); err != nil {
		return err
	}

	if err := s.store.DeleteReport(ctx, reportID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrReportNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Summary(ctx context.Context) (*models.ReportSummary, error) {
	return s.store.SummarizeReports(ctx)
}

func (s *Service) getOwned(ctx context.Context, caller models.Caller, reportID uuid.UUID) (*models.Report, error) {
	report, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if !caller.CanModify(report.ReportedBy) {
		return nil, ErrForbidden
	}
	return report, nil
}

// convert sets the USD snapshot of a financial report; r is unchanged on error.
func (s *Service) convert(ctx context.Context, r *models.Report) error {
	if r.AmountLKR == nil {
		return nil
	}

	rate, err := s.rates.LKRToUSD(ctx)
	if err != nil {
		return err
	}

	usd := exchange.ConvertLKR(*r.AmountLKR, rate)
	r.AmountUSD = &usd
	r.ExchangeRate = &rate
	return nil
}
