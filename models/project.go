package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusProposed   = "Proposed"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// SDGGoals lists the UN Sustainable Development Goals a project may be tagged with.
var SDGGoals = []string{
	"No Poverty", "Zero Hunger", "Good Health", "Quality Education",
	"Gender Equality", "Clean Water", "Clean Energy", "Decent Work",
	"Industry", "Reduced Inequalities", "Sustainable Cities",
	"Responsible Consumption", "Climate Action", "Life Below Water",
	"Life on Land", "Peace & Justice", "Partnerships",
}

var projectStatuses = []string{StatusProposed, StatusInProgress, StatusCompleted, StatusCancelled}

// Project is a development project registered by a partner organization.
// Budget is optional; a nil budget is treated as zero by the statistics.
type Project struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	SDGGoal      string     `json:"sdgGoal" db:"sdg_goal"`
	Status       string     `json:"status" db:"status"`
	Organization string     `json:"organization" db:"organization"`
	Budget       *float64   `json:"budget,omitempty" db:"budget"`
	StartDate    time.Time  `json:"startDate" db:"start_date"`
	EndDate      *time.Time `json:"endDate,omitempty" db:"end_date"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// CreateProjectRequest is the payload for registering a project.
// Field rules are enforced by Project.Validate after conversion.
type CreateProjectRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	SDGGoal      string     `json:"sdgGoal"`
	Status       string     `json:"status"`
	Organization string     `json:"organization"`
	Budget       *float64   `json:"budget"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
}

// ToProject fills defaults (status Proposed, start date now) and trims the title.
func (r CreateProjectRequest) ToProject(now time.Time) Project {
	p := Project{
		Title:        strings.TrimSpace(r.Title),
		Description:  r.Description,
		SDGGoal:      r.SDGGoal,
		Status:       r.Status,
		Organization: strings.TrimSpace(r.Organization),
		Budget:       r.Budget,
		StartDate:    now,
		EndDate:      r.EndDate,
	}
	if p.Status == "" {
		p.Status = StatusProposed
	}
	if r.StartDate != nil {
		p.StartDate = *r.StartDate
	}
	return p
}

// UpdateProjectRequest carries a partial update; nil fields are left untouched.
// Budget and EndDate are nullable, so an explicit null clears them.
type UpdateProjectRequest struct {
	Title        *string             `json:"title"`
	Description  *string             `json:"description"`
	SDGGoal      *string             `json:"sdgGoal"`
	Status       *string             `json:"status"`
	Organization *string             `json:"organization"`
	Budget       Optional[float64]   `json:"budget"`
	StartDate    *time.Time          `json:"startDate"`
	EndDate      Optional[time.Time] `json:"endDate"`
}

func (r UpdateProjectRequest) Apply(p *Project) {
	if r.Title != nil {
		p.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.SDGGoal != nil {
		p.SDGGoal = *r.SDGGoal
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
	if r.Organization != nil {
		p.Organization = strings.TrimSpace(*r.Organization)
	}
	if r.Budget.Set {
		p.Budget = r.Budget.Value
	}
	if r.StartDate != nil {
		p.StartDate = *r.StartDate
	}
	if r.EndDate.Set {
		p.EndDate = r.EndDate.Value
	}
}

// Validate checks the stored-field rules of a project and returns a *ValidationError
// listing every violated rule, or nil.
func (p *Project) Validate() error {
	v := &ValidationError{}

	if p.Title == "" {
		v.Add("title", "A project title is mandatory for registry")
	} else if len([]rune(p.Title)) > 100 {
		v.Add("title", "Title cannot be more than 100 characters")
	}

	if strings.TrimSpace(p.Description) == "" {
		v.Add("description", "Please provide a detailed description of the project impact")
	} else if len([]rune(p.Description)) > 500 {
		v.Add("description", "Description cannot exceed 500 characters")
	}

	if p.SDGGoal == "" {
		v.Add("sdgGoal", "You must link this project to a specific UN SDG goal")
	} else if !IsValidSDGGoal(p.SDGGoal) {
		v.Add("sdgGoal", "Please select a valid SDG goal from the approved list")
	}

	if !IsValidProjectStatus(p.Status) {
		v.Add("status", "Status must be Proposed, In Progress, Completed, or Cancelled")
	}

	if p.Organization == "" {
		v.Add("organization", "An owning organization must be assigned to this project")
	}

	if p.Budget != nil && *p.Budget < 0 {
		v.Add("budget", "Project budget cannot be a negative value")
	}

	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		v.Add("endDate", "Project end date cannot be earlier than the start date")
	}

	return v.Err()
}

func IsValidSDGGoal(goal string) bool {
	return contains(SDGGoals, goal)
}

func IsValidProjectStatus(status string) bool {
	return contains(projectStatuses, status)
}

// ProjectFilter holds the optional equality filters applied to project listings.
type ProjectFilter struct {
	SDGGoal      string
	Status       string
	Organization string
}

// ProjectsResponse is the envelope for the plain project listing.
type ProjectsResponse struct {
	Success bool      `json:"success"`
	Count   int       `json:"count"`
	Data    []Project `json:"data"`
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
