package models

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ReportTypeFinancial    = "financial"
	ReportTypePeopleHelped = "people_helped"
	ReportTypeMilestone    = "milestone"
	ReportTypeOther        = "other"
)

const maxReportDescription = 500

var reportTypes = []string{ReportTypeFinancial, ReportTypePeopleHelped, ReportTypeMilestone, ReportTypeOther}

// Report is a progress, financial or impact entry submitted against one project.
// AmountUSD and ExchangeRate are snapshots taken when the LKR amount was recorded
// and stay nil when the rate service was unavailable.
type Report struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ProjectID      uuid.UUID `json:"projectId" db:"project_id"`
	ReportedBy     uuid.UUID `json:"reportedBy" db:"reported_by"`
	ReportType     string    `json:"reportType" db:"report_type"`
	AmountLKR      *float64  `json:"amountLKR,omitempty" db:"amount_lkr"`
	AmountUSD      *float64  `json:"amountUSD,omitempty" db:"amount_usd"`
	ExchangeRate   *float64  `json:"exchangeRate,omitempty" db:"exchange_rate"`
	PeopleImpacted *int      `json:"peopleImpacted,omitempty" db:"people_impacted"`
	Description    string    `json:"description" db:"description"`
	ReportDate     time.Time `json:"reportDate" db:"report_date"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// SubmitReportRequest is the payload for a new report. PeopleImpacted is decoded
// as a float so that fractional values fail validation instead of JSON binding.
type SubmitReportRequest struct {
	Project        string     `json:"project"`
	ReportType     string     `json:"reportType"`
	AmountLKR      *float64   `json:"amountLKR"`
	PeopleImpacted *float64   `json:"peopleImpacted"`
	Description    string     `json:"description"`
	ReportDate     *time.Time `json:"reportDate"`
}

// UpdateReportRequest carries a partial update; nil fields are left untouched.
type UpdateReportRequest struct {
	ReportType     *string  `json:"reportType"`
	AmountLKR      *float64 `json:"amountLKR"`
	PeopleImpacted *float64 `json:"peopleImpacted"`
	Description    *string  `json:"description"`
}

// ReportQuery narrows a project's report timeline by report date (RFC3339, inclusive).
type ReportQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// ValidatePeopleImpacted converts a decoded people count into a positive whole number.
// A nil input is valid and yields nil; a fractional or non-positive count is invalid.
func ValidatePeopleImpacted(v *float64) (*int, bool) {
	if v == nil {
		return nil, true
	}
	if *v < 1 || *v != math.Trunc(*v) || *v > math.MaxInt32 {
		return nil, false
	}
	n := int(*v)
	return &n, true
}

// Validate enforces the per-type requirements of a report.
func (r *Report) Validate() error {
	v := &ValidationError{}
	r.ValidateInto(v)
	return v.Err()
}

// ValidateInto records the report's rule violations into v.
func (r *Report) ValidateInto(v *ValidationError) {
	if r.ReportType == "" {
		v.Add("reportType", "Please specify a report type")
	} else if !contains(reportTypes, r.ReportType) {
		v.Add("reportType", "Report type must be financial, people_helped, milestone, or other")
	}

	if strings.TrimSpace(r.Description) == "" {
		v.Add("description", "Please provide a description")
	} else if len([]rune(r.Description)) > maxReportDescription {
		v.Add("description", "Description cannot exceed 500 characters")
	}

	if r.ReportType == ReportTypeFinancial && (r.AmountLKR == nil || *r.AmountLKR <= 0) {
		v.Add("amountLKR", "Financial reports require a positive amount in LKR")
	}

	if r.ReportType == ReportTypePeopleHelped && (r.PeopleImpacted == nil || *r.PeopleImpacted < 1) {
		v.Add("peopleImpacted", "People helped reports require a positive whole number")
	}
}

// ReportResponse is the submit envelope; Warning is null unless the USD conversion was skipped.
type ReportResponse struct {
	Success bool    `json:"success"`
	Data    Report  `json:"data"`
	Message string  `json:"message,omitempty"`
	Warning *string `json:"warning"`
}

type ReportsResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Data    []Report `json:"data"`
}

// FinancialSummary totals financial reports across all projects.
type FinancialSummary struct {
	TotalLKR    float64 `json:"totalLKR"`
	TotalUSD    float64 `json:"totalUSD"`
	ReportCount int64   `json:"reportCount"`
}

type PeopleSummary struct {
	TotalPeople int64 `json:"totalPeople"`
	ReportCount int64 `json:"reportCount"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// ReportSummary is the platform-wide impact summary.
type ReportSummary struct {
	Financial        FinancialSummary `json:"financial"`
	People           PeopleSummary    `json:"people"`
	ReportsByType    []TypeCount      `json:"reportsByType"`
	ProjectsReported int64            `json:"projectsReported"`
	TotalReports     int64            `json:"totalReports"`
}
