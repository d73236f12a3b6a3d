package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
)

func (c *cli) policyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Show or change the maximum daily hours",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the maximum daily hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy, err := c.app.Assignments.GetPolicy(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "maxDailyHours: %s\n", strconv.FormatFloat(policy.MaxDailyHours, 'f', -1, 64))
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <hours>",
		Short: "Change the maximum daily hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("hours %q: %w", args[0], err)
			}
			policy, err := c.app.Assignments.SetPolicy(cmd.Context(), assignment.SetPolicyInput{MaxDailyHours: hours})
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "maxDailyHours: %s\n", strconv.FormatFloat(policy.MaxDailyHours, 'f', -1, 64))
			return nil
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}
