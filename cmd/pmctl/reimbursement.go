package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"pmfin-backend/models"
)

func (a *app) reimbursementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reimbursement",
		Aliases: []string{"reimb"},
		Short:   "Reimbursement workflow",
	}

	var reason string
	reject := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending reimbursement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.RejectReimbursement(cmd.Context(), args[0], reason); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reimbursement %v rejected\n", args[0])
			return nil
		},
	}
	reject.Flags().StringVar(&reason, "reason", "", "rejection reason")
	cmd.AddCommand(reject)

	var proof string
	pay := &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark an approved reimbursement paid, optionally uploading the payment proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if proof == "" {
				if err := a.client.MarkReimbursementPaid(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reimbursement %v paid\n", id)
				return nil
			}
			file, err := os.Open(proof)
			if err != nil {
				return errors.Wrap(err, "failed to open proof")
			}
			defer file.Close()
			err = a.client.PayReimbursementWithProof(cmd.Context(), id, filepath.Base(proof), file)
			var partial *models.PartialFailureError
			if errors.As(err, &partial) {
				fmt.Fprintf(cmd.OutOrStdout(), "reimbursement %v paid, payment proof missing: upload it with --proof again\n", id)
				return err
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reimbursement %v paid with proof\n", id)
			return nil
		},
	}
	pay.Flags().StringVar(&proof, "proof", "", "payment proof file")
	cmd.AddCommand(pay)
	return cmd
}
