package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/smart-budget/internal/cli"
	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/config"
)

var version = "dev"

// rootOptions is the state shared by every command of one invocation.
type rootOptions struct {
	v         *viper.Viper
	cfgFile   string
	cfg       config.Config
	ephemeral bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}
	config.SetDefaults(opts.v)

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "💰 Personal budget with smart categorization",
		Long: `smart-budget: plan your monthly income, track spending and savings goals,
and let a keyword model categorize your transactions as it learns.`,
		PersistentPreRunE: opts.initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default: $HOME/.config/budget/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("backend", "", "storage backend (sqlite, bolt, memory)")
	flags.String("db", "", "path of the budget database")
	flags.String("bank", "", "bank provider (mock, plaid, ofx)")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep everything in memory for this run")

	// Bind flags to viper
	_ = opts.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = opts.v.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = opts.v.BindPFlag("storage.backend", flags.Lookup("backend"))
	_ = opts.v.BindPFlag("storage.path", flags.Lookup("db"))
	_ = opts.v.BindPFlag("bank.provider", flags.Lookup("bank"))

	cmd.AddCommand(incomeCmd(opts))
	cmd.AddCommand(txCmd(opts))
	cmd.AddCommand(categoriesCmd(opts))
	cmd.AddCommand(goalsCmd(opts))
	cmd.AddCommand(bankCmd(opts))
	cmd.AddCommand(aiCmd(opts))
	cmd.AddCommand(summaryCmd(opts))
	cmd.AddCommand(dashboardCmd(opts))
	cmd.AddCommand(versionCmd())

	return cmd
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx, cancel := interrupts.HandleInterrupts(context.Background())

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func (o *rootOptions) initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		o.v.AddConfigPath(fmt.Sprintf("%s/.config/budget", home))
		o.v.AddConfigPath(".")
		o.v.SetConfigName("config")
		o.v.SetConfigType("yaml")
	}

	// Environment variables
	o.v.SetEnvPrefix("BUDGET")
	o.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	o.v.AutomaticEnv()

	// Read config file
	if err := o.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if o.ephemeral {
		o.v.Set("storage.backend", config.BackendMemory)
	}

	cfg, err := config.Load(o.v)
	if err != nil {
		return common.NewUserError("Invalid configuration", err)
	}
	o.cfg = cfg

	if err := common.SetupLogger(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "budget %s\n", version)
		},
	}
}
