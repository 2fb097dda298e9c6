package domain

import "time"

// ProjectStatus matches the backend status vocabulary.
type ProjectStatus string

const (
	ProjectPlanned   ProjectStatus = "PLANNED"
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectPaused    ProjectStatus = "PAUSED"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectCancelled ProjectStatus = "CANCELLED"
)

// ParseProjectStatus normalizes a backend status string, defaulting to
// PLANNED for anything unrecognized.
func ParseProjectStatus(s string) ProjectStatus {
	switch ProjectStatus(s) {
	case ProjectPlanned, ProjectActive, ProjectPaused, ProjectCompleted, ProjectCancelled:
		return ProjectStatus(s)
	default:
		return ProjectPlanned
	}
}

// Project groups servers under a named effort.
type Project struct {
	ID        string
	Name      string
	Status    ProjectStatus
	ServerIDs []string
	Duration  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectInput carries create/update fields for a project.
type ProjectInput struct {
	Name      string
	Status    ProjectStatus
	ServerIDs []string
	Duration  string
}
