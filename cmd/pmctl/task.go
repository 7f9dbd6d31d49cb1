package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"pmfin-backend/lib/dashclient"
	"pmfin-backend/models"
)

func (a *app) taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Task workflow",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a task to a board column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := models.TaskStatus(strings.ToUpper(args[1]))
			task, err := a.client.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			view, changed, err := a.client.MoveTask(cmd.Context(), task, status)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "task %v is already %v\n", view.ID, view.Status)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "task %v moved to %v\n", view.ID, view.Status)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "actions <id>",
		Short: "List the statuses the signed-in user may move a task to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.client.GetSession(cmd.Context())
			if err != nil {
				return err
			}
			task, err := a.client.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			actions := dashclient.TaskActions(task, user)
			if len(actions) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "task %v (%v): no actions\n", task.ID, task.Status)
				return nil
			}
			names := make([]string, 0, len(actions))
			for _, action := range actions {
				names = append(names, string(action))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "task %v (%v): %v\n", task.ID, task.Status, strings.Join(names, ", "))
			return nil
		},
	})
	return cmd
}
