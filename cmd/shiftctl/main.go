// shiftctl は社員・シフト・割り当てをストレージに対して直接操作する CLI です。
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ogurasousui/shift-scheduler/internal/bootstrap"
	"github.com/ogurasousui/shift-scheduler/internal/platform/config"
	"github.com/ogurasousui/shift-scheduler/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// cli はサブコマンド間で共有する状態です。
type cli struct {
	out        io.Writer
	configPath string
	dataDir    string

	logger *zap.Logger
	app    *bootstrap.App
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:   "shiftctl",
		Short: "Manage employees, shifts and shift assignments",
		Long: `shiftctl operates on the configured storage directly.

Subcommands:
  employees  - list, add or update employees
  shifts     - list or add shifts
  assign     - assign an employee to a shift
  schedule   - print an employee's schedule as CSV
  policy     - show or change the maximum daily hours`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  c.open,
		PersistentPostRunE: c.close,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "use the JSON file store in this directory instead of the configured storage")

	root.AddCommand(
		c.employeesCmd(),
		c.shiftsCmd(),
		c.assignCmd(),
		c.scheduleCmd(),
		c.policyCmd(),
	)
	return root
}

func (c *cli) open(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.EffectivePath(c.configPath))
	if err != nil {
		return err
	}
	if c.dataDir != "" {
		cfg.Storage.Driver = config.DriverFile
		cfg.Storage.FileDir = c.dataDir
	}

	c.logger, err = logging.New(cfg.Log)
	if err != nil {
		return err
	}

	c.app, err = bootstrap.New(cmd.Context(), cfg, c.logger)
	return err
}

func (c *cli) close(*cobra.Command, []string) error {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}
