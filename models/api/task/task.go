package taskapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"pmfin-backend/models"
	apimodels "pmfin-backend/models/api"
	dbmodels "pmfin-backend/models/db"
)

type TaskData struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Priority     models.TaskPriority `json:"priority"`
	AssignedToID string              `json:"assigned_to_id"`
	Deadline     *time.Time          `json:"deadline"`
}

func (t TaskData) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}
	if t.Priority != "" && !t.Priority.IsValid() {
		return errors.Errorf("unknown priority: %v", t.Priority)
	}
	return nil
}

type TaskCreateData struct {
	TaskData
	ProjectID string `json:"project_id"`
}

func (t TaskCreateData) Validate() error {
	if t.ProjectID == "" {
		return errors.New("project_id is required")
	}
	return t.TaskData.Validate()
}

type ChangeStatusData struct {
	Status models.TaskStatus `json:"status"`
}

func (c ChangeStatusData) Validate() error {
	if !c.Status.IsValid() {
		return errors.Errorf("unknown task status: %v", c.Status)
	}
	return nil
}

type TaskFilter struct {
	apimodels.Pagination
	ProjectID    string              `json:"project_id" query:"project_id"`
	AssignedToID string              `json:"assigned_to_id" query:"assigned_to_id"`
	Status       models.TaskStatus   `json:"status" query:"status"`
	Priority     models.TaskPriority `json:"priority" query:"priority"`
	Search       string              `json:"search" query:"search"`
}

type TaskView struct {
	ID             string              `json:"id"`
	ProjectID      string              `json:"project_id"`
	ProjectName    string              `json:"project_name,omitempty"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Status         models.TaskStatus   `json:"status"`
	Priority       models.TaskPriority `json:"priority"`
	AssignedToID   string              `json:"assigned_to_id,omitempty"`
	AssignedToName string              `json:"assigned_to_name,omitempty"`
	CreatedByID    string              `json:"created_by_id"`
	Deadline       *time.Time          `json:"deadline,omitempty"`
	SubmittedAt    *time.Time          `json:"submitted_at,omitempty"`
	CompletedAt    *time.Time          `json:"completed_at,omitempty"`
	NextStatuses   []models.TaskStatus `json:"next_statuses"`
	Actions        []models.TaskStatus `json:"actions"` // statuses the caller may move the task to
	CreatedAt      time.Time           `json:"created_at"`
}

func TaskConvert(rec dbmodels.Task) TaskView {
	view := TaskView{
		ID:           rec.ID,
		ProjectID:    rec.ProjectID,
		Title:        rec.Title,
		Description:  rec.Description,
		Status:       rec.Status,
		Priority:     rec.Priority,
		CreatedByID:  rec.CreatedByID,
		Deadline:     rec.Deadline,
		SubmittedAt:  rec.SubmittedAt,
		CompletedAt:  rec.CompletedAt,
		NextStatuses: rec.Status.NextStatuses(),
		Actions:      []models.TaskStatus{},
		CreatedAt:    rec.CreatedAt,
	}
	if rec.Project != nil {
		view.ProjectName = rec.Project.Name
	}
	if rec.AssignedToID != nil {
		view.AssignedToID = *rec.AssignedToID
	}
	if rec.AssignedTo != nil {
		view.AssignedToName = rec.AssignedTo.Name
	}
	return view
}

type BoardColumn struct {
	Status models.TaskStatus `json:"status"`
	Title  string            `json:"title"`
	Tasks  []TaskView        `json:"tasks"`
}

type MoveResult struct {
	Changed bool     `json:"changed"`
	Task    TaskView `json:"task"`
}
