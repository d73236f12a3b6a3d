package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
)

func (c *cli) employeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "List, add or update employees",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show all employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			employees, err := c.app.Employees.ListEmployees(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Employee ID  Name                Phone")
			fmt.Fprintln(c.out, "-----------  ------------------- ---------")
			for _, e := range employees {
				fmt.Fprintf(c.out, "%-13s%-20s%s\n", e.ID, e.Name, e.Phone)
			}
			return nil
		},
	}

	var name, phone string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a new employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := c.app.Employees.CreateEmployee(cmd.Context(), employee.CreateEmployeeInput{Name: name, Phone: phone})
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Employee added: %s\n", created.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "employee name")
	add.Flags().StringVar(&phone, "phone", "", "phone number (dddd-dddd)")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("phone")

	var newName, newPhone string
	update := &cobra.Command{
		Use:   "update <employee-id>",
		Short: "Change an employee's name or phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := employee.UpdateEmployeeInput{ID: args[0]}
			if cmd.Flags().Changed("name") {
				in.Name = &newName
			}
			if cmd.Flags().Changed("phone") {
				in.Phone = &newPhone
			}
			if in.Name == nil && in.Phone == nil {
				return fmt.Errorf("nothing to update: pass --name or --phone")
			}
			updated, err := c.app.Employees.UpdateEmployee(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Employee updated: %s %s %s\n", updated.ID, updated.Name, updated.Phone)
			return nil
		},
	}
	update.Flags().StringVar(&newName, "name", "", "new name")
	update.Flags().StringVar(&newPhone, "phone", "", "new phone number (dddd-dddd)")

	cmd.AddCommand(list, add, update)
	return cmd
}
