package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
)

func (c *cli) assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <employee-id> <shift-id>",
		Short: "Assign an employee to a shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := c.app.Assignments.AssignShift(cmd.Context(), assignment.AssignShiftInput{
				EmployeeID: args[0],
				ShiftID:    args[1],
			})
			if err != nil {
				return err
			}
			if outcome != assignment.OutcomeSuccess {
				return fmt.Errorf("%s: %w", outcome.Message(), outcome.Err())
			}
			fmt.Fprintln(c.out, "Shift Recorded")
			return nil
		},
	}
}
