package projectapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	apimodels "pmfin-backend/models/api"
	dbmodels "pmfin-backend/models/db"
)

type ProjectData struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ManagerID   string          `json:"manager_id"`
	TeamID      string          `json:"team_id"`
	Budget      decimal.Decimal `json:"budget"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	Location    string          `json:"location"`
	Tags        []string        `json:"tags"`
}

func (p ProjectData) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("project name is required")
	}
	if p.Budget.IsNegative() {
		return errors.New("budget cannot be negative")
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return errors.New("end date cannot be before start date")
	}
	return nil
}

type ProjectFilter struct {
	apimodels.Pagination
	Search    string `json:"search" query:"search"`
	ManagerID string `json:"manager_id" query:"manager_id"`
}

type ProjectView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ManagerID   string          `json:"manager_id,omitempty"`
	ManagerName string          `json:"manager_name,omitempty"`
	TeamID      string          `json:"team_id,omitempty"`
	TeamName    string          `json:"team_name,omitempty"`
	Budget      decimal.Decimal `json:"budget"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Location    string          `json:"location,omitempty"`
	Tags        []string        `json:"tags"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ProjectConvert(rec dbmodels.Project) ProjectView {
	view := ProjectView{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Budget:      rec.Budget,
		StartDate:   rec.StartDate,
		EndDate:     rec.EndDate,
		Location:    rec.Location,
		Tags:        []string(rec.Tags),
		CreatedAt:   rec.CreatedAt,
	}
	if view.Tags == nil {
		view.Tags = []string{}
	}
	if rec.ManagerID != nil {
		view.ManagerID = *rec.ManagerID
	}
	if rec.Manager != nil {
		view.ManagerName = rec.Manager.Name
	}
	if rec.TeamID != nil {
		view.TeamID = *rec.TeamID
	}
	if rec.Team != nil {
		view.TeamName = rec.Team.Name
	}
	return view
}

type TeamData struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"member_ids"`
}

func (t TeamData) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("team name is required")
	}
	return nil
}

type TeamMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TeamView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Members     []TeamMember `json:"members"`
}

func TeamConvert(rec dbmodels.Team) TeamView {
	view := TeamView{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Members:     make([]TeamMember, 0, len(rec.Members)),
	}
	for _, member := range rec.Members {
		view.Members = append(view.Members, TeamMember{ID: member.ID, Name: member.Name})
	}
	return view
}
