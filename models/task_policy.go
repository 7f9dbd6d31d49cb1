package models

// TaskTransitionAllowed reports whether role may move a task from one status to another.
// Reviewers (admin, project manager) may perform every workflow transition.
// Employees may only start and submit tasks assigned to them.
// The role split is a local decision: the dashboard contract does not define which
// roles may perform which transition.
func TaskTransitionAllowed(role UserRole, isAssignee bool, from, to TaskStatus) bool {
	if !from.IsAllowChange(to) {
		return false
	}
	switch role {
	case AdminRole, ProjectManagerRole:
		return true
	case EmployeeRole:
		return isAssignee && to.isWorkerTarget()
	case FinanceRole:
		return false
	}
	return false
}

// TaskActions returns the statuses role may move a task to, in workflow order.
func TaskActions(role UserRole, isAssignee bool, from TaskStatus) []TaskStatus {
	result := []TaskStatus{}
	for _, to := range from.NextStatuses() {
		if TaskTransitionAllowed(role, isAssignee, from, to) {
			result = append(result, to)
		}
	}
	return result
}

func (s TaskStatus) isWorkerTarget() bool {
	switch s {
	case TaskStatusInProgress, TaskStatusSubmitted:
		return true
	case TaskStatusTodo, TaskStatusRevision, TaskStatusDone:
		return false
	}
	return false
}
