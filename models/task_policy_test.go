package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskTransitions(t *testing.T) {
	t.Run("adjacency", func(t *testing.T) {
		require.Equal(t, []TaskStatus{TaskStatusInProgress}, TaskStatusTodo.NextStatuses())
		require.Equal(t, []TaskStatus{TaskStatusDone, TaskStatusRevision}, TaskStatusSubmitted.NextStatuses())
		require.Empty(t, TaskStatusDone.NextStatuses())
		require.True(t, TaskStatusRevision.IsAllowChange(TaskStatusSubmitted))
		require.False(t, TaskStatusRevision.IsAllowChange(TaskStatusTodo))
		require.False(t, TaskStatusTodo.IsAllowChange(TaskStatusDone))
		require.False(t, TaskStatusTodo.IsAllowChange(TaskStatusTodo))
	})
	t.Run("next statuses is a copy", func(t *testing.T) {
		next := TaskStatusSubmitted.NextStatuses()
		next[0] = TaskStatusTodo
		require.Equal(t, TaskStatusDone, TaskStatusSubmitted.NextStatuses()[0])
	})
	t.Run("employee works only on own tasks", func(t *testing.T) {
		require.True(t, TaskTransitionAllowed(EmployeeRole, true, TaskStatusTodo, TaskStatusInProgress))
		require.True(t, TaskTransitionAllowed(EmployeeRole, true, TaskStatusRevision, TaskStatusSubmitted))
		require.False(t, TaskTransitionAllowed(EmployeeRole, false, TaskStatusTodo, TaskStatusInProgress))
		require.False(t, TaskTransitionAllowed(EmployeeRole, true, TaskStatusSubmitted, TaskStatusDone))
	})
	t.Run("reviewers", func(t *testing.T) {
		require.Equal(t, []TaskStatus{TaskStatusDone, TaskStatusRevision}, TaskActions(ProjectManagerRole, false, TaskStatusSubmitted))
		require.Equal(t, []TaskStatus{TaskStatusDone, TaskStatusRevision}, TaskActions(AdminRole, false, TaskStatusSubmitted))
		require.Empty(t, TaskActions(EmployeeRole, true, TaskStatusSubmitted))
		require.Empty(t, TaskActions(FinanceRole, true, TaskStatusTodo))
		require.Empty(t, TaskActions(AdminRole, false, TaskStatusDone))
	})
}

func TestReimbursementTransitions(t *testing.T) {
	require.True(t, ReimbursementPending.IsAllowChange(ReimbursementApproved))
	require.True(t, ReimbursementPending.IsAllowChange(ReimbursementRejected))
	require.True(t, ReimbursementApproved.IsAllowChange(ReimbursementPaid))
	require.False(t, ReimbursementPending.IsAllowChange(ReimbursementPaid))
	require.False(t, ReimbursementRejected.IsAllowChange(ReimbursementApproved))
	require.True(t, ReimbursementPaid.IsTerminal())
	require.True(t, ReimbursementRejected.IsTerminal())
}

func TestInvoiceTransitions(t *testing.T) {
	require.True(t, InvoiceStatusDraft.IsAllowChange(InvoiceStatusSent))
	require.True(t, InvoiceStatusSent.IsAllowChange(InvoiceStatusPaid))
	require.True(t, InvoiceStatusOverdue.IsAllowChange(InvoiceStatusPaid))
	require.False(t, InvoiceStatusDraft.IsAllowChange(InvoiceStatusPaid))
	for _, from := range []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusOverdue} {
		require.True(t, from.IsAllowChange(InvoiceStatusCancelled), from)
	}
	require.False(t, InvoiceStatusPaid.IsAllowChange(InvoiceStatusCancelled))
	require.True(t, InvoiceStatusPaid.IsTerminal())
	require.True(t, InvoiceStatusCancelled.IsTerminal())
	require.True(t, PaymentStatusDebt.IsValid())
	require.False(t, PaymentStatus("SENT").IsValid())
}

func TestUserRole(t *testing.T) {
	role, err := ParseUserRole("FINANCE")
	require.NoError(t, err)
	require.Equal(t, FinanceRole, role)
	_, err = ParseUserRole("finance")
	require.Error(t, err)
	require.True(t, AdminRole.IsFinance())
	require.False(t, EmployeeRole.IsManager())
}
