package models

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusSubmitted  TaskStatus = "SUBMITTED"
	TaskStatusRevision   TaskStatus = "REVISION"
	TaskStatusDone       TaskStatus = "DONE"
)

// TaskBoardColumns is the kanban column order.
var TaskBoardColumns = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusSubmitted,
	TaskStatusRevision,
	TaskStatusDone,
}

var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusTodo:       {TaskStatusInProgress},
	TaskStatusInProgress: {TaskStatusSubmitted},
	TaskStatusSubmitted:  {TaskStatusDone, TaskStatusRevision},
	TaskStatusRevision:   {TaskStatusSubmitted},
	TaskStatusDone:       {},
}

var taskStatusHumanName = map[TaskStatus]string{
	TaskStatusTodo:       "To do",
	TaskStatusInProgress: "In progress",
	TaskStatusSubmitted:  "Submitted",
	TaskStatusRevision:   "Revision",
	TaskStatusDone:       "Done",
}

func (s TaskStatus) IsValid() bool {
	_, ok := taskTransitions[s]
	return ok
}

// NextStatuses returns a copy of the statuses reachable from s.
func (s TaskStatus) NextStatuses() []TaskStatus {
	next := taskTransitions[s]
	result := make([]TaskStatus, len(next))
	copy(result, next)
	return result
}

func (s TaskStatus) IsAllowChange(to TaskStatus) bool {
	for _, next := range taskTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s TaskStatus) IsTerminal() bool {
	return s.IsValid() && len(taskTransitions[s]) == 0
}

func (s TaskStatus) ToHuman() string {
	if human, exist := taskStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}
