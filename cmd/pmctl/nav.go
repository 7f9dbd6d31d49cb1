package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"pmfin-backend/lib/dashclient"
	"pmfin-backend/lib/navigation"
	"pmfin-backend/models"
	userapimodels "pmfin-backend/models/api/user"
)

func (a *app) navCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Navigation gate",
	}
	var role string
	check := &cobra.Command{
		Use:   "check <path>",
		Short: "Show whether a dashboard path is rendered for a role",
		Long:  "Without --role the role of the signed-in user is used.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := dashclient.NewSession(navigation.DefaultTree())
			if role != "" {
				parsed, err := models.ParseUserRole(strings.ToUpper(role))
				if err != nil {
					return err
				}
				session.Set(userapimodels.Session{Role: parsed})
			} else if err := session.Load(cmd.Context(), a.client); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v %v\n", navigation.NormalizePath(args[0]), session.CanAccess(args[0]))
			return nil
		},
	}
	check.Flags().StringVar(&role, "role", "", "role to check (ADMIN, PROJECTMANAGER, FINANCE, EMPLOYEES)")
	cmd.AddCommand(check)
	return cmd
}
