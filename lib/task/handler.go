package taskhandler

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"pmfin-backend/lib/events"
	notificationhandler "pmfin-backend/lib/notification"
	taskstore "pmfin-backend/lib/task/store"
	initchecker "pmfin-backend/lib/utils/init-checker"
	"pmfin-backend/lib/utils/lock"
	"pmfin-backend/models"
	taskapimodels "pmfin-backend/models/api/task"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(actor models.Actor, data taskapimodels.TaskCreateData) (id string, hMsg string, err error)
	Update(actor models.Actor, id string, data taskapimodels.TaskData) error
	Delete(actor models.Actor, id string) error
	GetByID(actor models.Actor, id string) (taskapimodels.TaskView, error)
	List(actor models.Actor, filter taskapimodels.TaskFilter) (list []taskapimodels.TaskView, rowCount int64, err error)
	Board(actor models.Actor, projectID string) ([]taskapimodels.BoardColumn, error)
	ChangeStatus(actor models.Actor, id string, status models.TaskStatus) (view taskapimodels.TaskView, hMsg string, err error)
	// Move is ChangeStatus for the kanban. Dropping a card on its own column changes nothing.
	Move(actor models.Actor, id string, status models.TaskStatus) (result taskapimodels.MoveResult, hMsg string, err error)
	CountByStatus() (map[models.TaskStatus]int64, error)
}

// Notifier delivers user notifications.
type Notifier interface {
	Send(userID string, code models.NotificationCode, args ...any)
}

var Instance Provider

const statusLockWait = 5 * time.Second

func NewHandler(tx *gorm.DB) {
	instance := impl{
		store:    taskstore.NewInstance(tx),
		notifier: notificationhandler.Instance,
		events:   events.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"notifier", instance.notifier,
		"events", instance.events,
	)
	Instance = instance
}

type impl struct {
	store    taskstore.Provider
	notifier Notifier
	events   events.Provider
}

func (i impl) Create(actor models.Actor, data taskapimodels.TaskCreateData) (id string, hMsg string, err error) {
	project, err := i.store.GetProject(data.ProjectID)
	if err != nil {
		return "", "", err
	}
	if project == nil {
		return "", "project not found", nil
	}
	rec := dbmodels.Task{
		ProjectID:   data.ProjectID,
		Title:       data.Title,
		Description: data.Description,
		Status:      models.TaskStatusTodo,
		Priority:    data.Priority,
		CreatedByID: actor.ID,
		Deadline:    data.Deadline,
	}
	if rec.Priority == "" {
		rec.Priority = models.TaskPriorityMedium
	}
	if data.AssignedToID != "" {
		rec.AssignedToID = &data.AssignedToID
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", "", err
	}
	log.WithField("task_id", id).
		WithField("project_id", rec.ProjectID).
		WithField("user_id", actor.ID).
		Info("task created")
	if data.AssignedToID != "" && data.AssignedToID != actor.ID {
		i.notifier.Send(data.AssignedToID, models.NotifyTaskAssigned, rec.Title)
	}
	return id, "", nil
}

func (i impl) Update(actor models.Actor, id string, data taskapimodels.TaskData) error {
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"title":       data.Title,
		"description": data.Description,
		"deadline":    data.Deadline,
	}
	if data.Priority != "" {
		updMap["priority"] = data.Priority
	}
	if data.AssignedToID == "" {
		updMap["assigned_to_id"] = nil
	} else {
		updMap["assigned_to_id"] = data.AssignedToID
	}
	if err = i.store.Update(id, updMap); err != nil {
		return err
	}
	log.WithField("task_id", id).WithField("user_id", actor.ID).Info("task updated")
	if data.AssignedToID != "" && data.AssignedToID != actor.ID && data.AssignedToID != ptrValue(rec.AssignedToID) {
		i.notifier.Send(data.AssignedToID, models.NotifyTaskAssigned, data.Title)
	}
	return nil
}

func (i impl) Delete(actor models.Actor, id string) error {
	if _, err := i.getRec(id); err != nil {
		return err
	}
	if err := i.store.Delete(id); err != nil {
		return err
	}
	log.WithField("task_id", id).WithField("user_id", actor.ID).Info("task deleted")
	return nil
}

func (i impl) GetByID(actor models.Actor, id string) (taskapimodels.TaskView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return taskapimodels.TaskView{}, err
	}
	return convert(actor, *rec), nil
}

func (i impl) List(actor models.Actor, filter taskapimodels.TaskFilter) (list []taskapimodels.TaskView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]taskapimodels.TaskView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, convert(actor, rec))
	}
	return list, rowCount, nil
}

func (i impl) Board(actor models.Actor, projectID string) ([]taskapimodels.BoardColumn, error) {
	recList, err := i.store.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	columns := make([]taskapimodels.BoardColumn, 0, len(models.TaskBoardColumns))
	index := map[models.TaskStatus]int{}
	for n, status := range models.TaskBoardColumns {
		index[status] = n
		columns = append(columns, taskapimodels.BoardColumn{
			Status: status,
			Title:  status.ToHuman(),
			Tasks:  []taskapimodels.TaskView{},
		})
	}
	for _, rec := range recList {
		n, ok := index[rec.Status]
		if !ok {
			continue
		}
		columns[n].Tasks = append(columns[n].Tasks, convert(actor, rec))
	}
	return columns, nil
}

func (i impl) ChangeStatus(actor models.Actor, id string, status models.TaskStatus) (view taskapimodels.TaskView, hMsg string, err error) {
	logger := log.
		WithField("task_id", id).
		WithField("user_id", actor.ID).
		WithField("new_status", status)
	if !status.IsValid() {
		return view, fmt.Sprintf("unknown task status: %v", status), nil
	}
	var rec *dbmodels.Task
	var from models.TaskStatus
	locked, err := lock.WithDelay(context.Background(), lockKey(id), statusLockWait, func() error {
		var lockErr error
		rec, lockErr = i.getRec(id)
		if lockErr != nil {
			return lockErr
		}
		from = rec.Status
		if !from.IsAllowChange(status) {
			hMsg = fmt.Sprintf("status change from %v to %v is not allowed", from, status)
			return nil
		}
		if !models.TaskTransitionAllowed(actor.Role, isAssignee(actor, *rec), from, status) {
			return errors.Wrapf(models.ErrForbidden, "role %v can not move task from %v to %v", actor.Role, from, status)
		}
		updMap := map[string]interface{}{
			"status": status,
		}
		now := time.Now()
		switch status {
		case models.TaskStatusSubmitted:
			updMap["submitted_at"] = now
		case models.TaskStatusDone:
			updMap["completed_at"] = now
		case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusRevision:
		}
		updated, lockErr := i.store.UpdateStatus(id, from, updMap)
		if lockErr != nil {
			return lockErr
		}
		if !updated {
			return errors.Wrap(models.ErrConflict, "task status was changed by another request")
		}
		return nil
	})
	if err != nil {
		return view, "", err
	}
	if !locked {
		return view, "", errors.Wrap(models.ErrConflict, "task is being changed by another request")
	}
	if hMsg != "" {
		return view, hMsg, nil
	}
	logger.WithField("old_status", from).Info("task status changed")

	i.afterStatusChange(actor, *rec, from, status)

	updated, err := i.getRec(id)
	if err != nil {
		return view, "", err
	}
	return convert(actor, *updated), "", nil
}

func (i impl) Move(actor models.Actor, id string, status models.TaskStatus) (result taskapimodels.MoveResult, hMsg string, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return result, "", err
	}
	if rec.Status == status {
		return taskapimodels.MoveResult{Changed: false, Task: convert(actor, *rec)}, "", nil
	}
	view, hMsg, err := i.ChangeStatus(actor, id, status)
	if err != nil || hMsg != "" {
		return result, hMsg, err
	}
	return taskapimodels.MoveResult{Changed: true, Task: view}, "", nil
}

func (i impl) CountByStatus() (map[models.TaskStatus]int64, error) {
	return i.store.CountByStatus()
}

func (i impl) afterStatusChange(actor models.Actor, rec dbmodels.Task, from, to models.TaskStatus) {
	i.events.Publish(context.Background(), events.Event{
		Type:     events.TaskStatusChanged,
		EntityID: rec.ID,
		ActorID:  actor.ID,
		From:     string(from),
		To:       string(to),
		Attrs:    map[string]string{"project_id": rec.ProjectID},
	})
	assignee := ptrValue(rec.AssignedToID)
	switch to {
	case models.TaskStatusSubmitted:
		if rec.Project != nil && rec.Project.ManagerID != nil && *rec.Project.ManagerID != actor.ID {
			i.notifier.Send(*rec.Project.ManagerID, models.NotifyTaskSubmitted, rec.Title, actor.Name)
		}
	case models.TaskStatusDone:
		if assignee != "" && assignee != actor.ID {
			i.notifier.Send(assignee, models.NotifyTaskApproved, rec.Title, actor.Name)
		}
	case models.TaskStatusRevision:
		if assignee != "" && assignee != actor.ID {
			i.notifier.Send(assignee, models.NotifyTaskRevision, rec.Title, actor.Name)
		}
	case models.TaskStatusTodo, models.TaskStatusInProgress:
	}
}

func (i impl) getRec(id string) (*dbmodels.Task, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "task not found")
	}
	return rec, nil
}

func convert(actor models.Actor, rec dbmodels.Task) taskapimodels.TaskView {
	view := taskapimodels.TaskConvert(rec)
	view.Actions = models.TaskActions(actor.Role, isAssignee(actor, rec), rec.Status)
	return view
}

func isAssignee(actor models.Actor, rec dbmodels.Task) bool {
	return rec.AssignedToID != nil && *rec.AssignedToID == actor.ID
}

func lockKey(id string) string {
	return "task:" + id
}

func ptrValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
