package domain

import (
	"errors"
	"fmt"
	"time"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "pending"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool {
	switch ProjectStatus(s) {
	case ProjectPending, ProjectInProgress, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// Project categories offered on the marketplace.
const (
	CategoryConstruction   = "construction"
	CategoryInteriorDesign = "interior-design"
	CategoryRenovation     = "renovation"
	CategoryMaintenance    = "maintenance"
)

// ValidCategory reports whether c is a known project category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryConstruction, CategoryInteriorDesign, CategoryRenovation, CategoryMaintenance:
		return true
	}
	return false
}

// Milestone statuses.
const (
	MilestonePending   = "pending"
	MilestoneCompleted = "completed"
)

var ErrProjectNotFound = errors.New("project not found")
var ErrInvalidProjectStatus = errors.New("invalid project status")
var ErrInvalidProjectCategory = errors.New("invalid project category")

// UnknownFieldError rejects a project update carrying a field outside the
// updatable allow-list.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// Milestone is a dated checkpoint within a project.
type Milestone struct {
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	DueDate     time.Time `json:"due_date" bson:"due_date"`
	Status      string    `json:"status" bson:"status"`
}

// Review is a client rating left on a project.
type Review struct {
	Rating  int       `json:"rating" bson:"rating"`
	Comment string    `json:"comment,omitempty" bson:"comment,omitempty"`
	Client  string    `json:"client" bson:"client"`
	Date    time.Time `json:"date" bson:"date"`
}

// Project is a unit of work owned by exactly one ServiceProvider and
// associated with exactly one client User. ServiceProvider and Client are
// immutable after creation.
type Project struct {
	ID              string        `json:"id" bson:"_id,omitempty"`
	Title           string        `json:"title" bson:"title"`
	Description     string        `json:"description" bson:"description"`
	ServiceProvider string        `json:"service_provider" bson:"service_provider"`
	Client          string        `json:"client" bson:"client"`
	Status          ProjectStatus `json:"status" bson:"status"`
	Category        string        `json:"category" bson:"category"`
	Budget          float64       `json:"budget,omitempty" bson:"budget,omitempty"`
	Location        string        `json:"location,omitempty" bson:"location,omitempty"`
	StartDate       time.Time     `json:"start_date" bson:"start_date"`
	EndDate         *time.Time    `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Images          []string      `json:"images,omitempty" bson:"images,omitempty"`
	Documents       []string      `json:"documents,omitempty" bson:"documents,omitempty"`
	Milestones      []Milestone   `json:"milestones,omitempty" bson:"milestones,omitempty"`
	Reviews         []Review      `json:"reviews,omitempty" bson:"reviews,omitempty"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at"`
}

// ClientSummary is the client projection embedded in project listings.
type ClientSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
