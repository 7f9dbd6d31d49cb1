package dashclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"pmfin-backend/models"
	taskapimodels "pmfin-backend/models/api/task"
	userapimodels "pmfin-backend/models/api/user"
)

// TaskActions returns the statuses the user may move the task to. Only these actions are offered.
func TaskActions(task taskapimodels.TaskView, user userapimodels.Session) []models.TaskStatus {
	return models.TaskActions(user.Role, task.AssignedToID != "" && task.AssignedToID == user.UserID, task.Status)
}

func (c *Client) GetTask(ctx context.Context, id string) (taskapimodels.TaskView, error) {
	return query[taskapimodels.TaskView](ctx, c, taskKey(id), http.MethodGet, "task/"+id, nil)
}

func (c *Client) ListTasks(ctx context.Context, filter taskapimodels.TaskFilter) ([]taskapimodels.TaskView, error) {
	key, _ := json.Marshal(filter)
	return query[[]taskapimodels.TaskView](ctx, c, taskKeyPrefix+"/list:"+string(key), http.MethodPost, "task/list", filter)
}

func (c *Client) Board(ctx context.Context, projectID string) ([]taskapimodels.BoardColumn, error) {
	return query[[]taskapimodels.BoardColumn](ctx, c, boardKey(projectID), http.MethodGet, "task/board?"+url.Values{"project_id": {projectID}}.Encode(), nil)
}

// ChangeTaskStatus sends a workflow transition. Targets outside the adjacency of the current
// status are rejected without a request.
func (c *Client) ChangeTaskStatus(ctx context.Context, task taskapimodels.TaskView, to models.TaskStatus) (taskapimodels.TaskView, error) {
	if err := checkTaskTarget(task, to); err != nil {
		return task, err
	}
	var resp taskapimodels.TaskView
	err := c.mutate(ctx, http.MethodPut, "task/"+task.ID+"/status", taskapimodels.ChangeStatusData{Status: to}, &resp,
		taskKeyPrefix, analyticsKeyPrefix, notificationKeyPrefix)
	if err != nil {
		return task, err
	}
	c.toaster.Success(fmt.Sprintf("Task moved to %v", to.ToHuman()))
	return resp, nil
}

// MoveTask handles a board drop. Dropping a card into its own column sends nothing.
func (c *Client) MoveTask(ctx context.Context, task taskapimodels.TaskView, column models.TaskStatus) (view taskapimodels.TaskView, changed bool, err error) {
	if column == task.Status {
		return task, false, nil
	}
	if err = checkTaskTarget(task, column); err != nil {
		return task, false, err
	}
	var resp taskapimodels.MoveResult
	err = c.mutate(ctx, http.MethodPut, "task/"+task.ID+"/move", taskapimodels.ChangeStatusData{Status: column}, &resp,
		taskKeyPrefix, analyticsKeyPrefix, notificationKeyPrefix)
	if err != nil {
		return task, false, err
	}
	if resp.Changed {
		c.toaster.Success(fmt.Sprintf("Task moved to %v", column.ToHuman()))
	}
	return resp.Task, resp.Changed, nil
}

func checkTaskTarget(task taskapimodels.TaskView, to models.TaskStatus) error {
	if !to.IsValid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", to)}
	}
	if !task.Status.IsAllowChange(to) {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("task can not move from %v to %v", task.Status, to)}
	}
	return nil
}
