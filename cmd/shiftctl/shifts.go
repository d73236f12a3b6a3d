package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

func (c *cli) shiftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shifts",
		Short: "List or add shifts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show all shifts in date order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shifts, err := c.app.Shifts.ListShifts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Shift ID  Date        Start  End    Hours")
			fmt.Fprintln(c.out, "--------  ----------  -----  -----  -----")
			for _, s := range shifts {
				hours, err := s.Hours()
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%-10s%-12s%-7s%-7s%.2f\n", s.ID, s.Date, s.StartTime, s.EndTime, hours)
			}
			return nil
		},
	}

	var date, start, end string
	add := &cobra.Command{
		Use:   "add <shift-id>",
		Short: "Add a shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := c.app.Shifts.CreateShift(cmd.Context(), shift.CreateShiftInput{
				ID:        args[0],
				Date:      date,
				StartTime: start,
				EndTime:   end,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Shift added: %s %s %s-%s\n", created.ID, created.Date, created.StartTime, created.EndTime)
			return nil
		},
	}
	add.Flags().StringVar(&date, "date", "", "shift date (YYYY-MM-DD)")
	add.Flags().StringVar(&start, "start", "", "start time (HH:MM)")
	add.Flags().StringVar(&end, "end", "", "end time (HH:MM)")
	_ = add.MarkFlagRequired("date")
	_ = add.MarkFlagRequired("start")
	_ = add.MarkFlagRequired("end")

	cmd.AddCommand(list, add)
	return cmd
}
