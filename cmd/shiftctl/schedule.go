package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
)

func (c *cli) scheduleCmd() *cobra.Command {
	var withTotals bool
	cmd := &cobra.Command{
		Use:   "schedule <employee-id>",
		Short: "Print an employee's schedule as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := c.app.Assignments.GetEmployeeSchedule(cmd.Context(), assignment.GetEmployeeScheduleInput{EmployeeID: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, "date,start,end")
			for _, entry := range schedule.Entries {
				fmt.Fprintf(c.out, "%s,%s,%s\n", entry.Shift.Date, entry.Shift.StartTime, entry.Shift.EndTime)
			}
			if !withTotals {
				return nil
			}

			totals := schedule.HoursByDate()
			dates := make([]string, 0, len(totals))
			for d := range totals {
				dates = append(dates, d)
			}
			sort.Strings(dates)
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "date,hours")
			for _, d := range dates {
				fmt.Fprintf(c.out, "%s,%s\n", d, strconv.FormatFloat(totals[d], 'f', -1, 64))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withTotals, "totals", false, "also print the total hours per date")
	return cmd
}
