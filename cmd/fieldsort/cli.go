package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/arthur-debert/fieldsort/fieldsort/dataset"
	"github.com/arthur-debert/fieldsort/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CLI wires the cobra commands to a viper configuration
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper
	logger    *slog.Logger
	closeLog  func() error
	out       io.Writer
	errOut    io.Writer
}

// NewCLI creates the command tree writing reports to out and diagnostics to
// errOut
func NewCLI(out, errOut io.Writer) *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		out:       out,
		errOut:    errOut,
	}

	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()

	return cli
}

// Execute runs the command line set on the root command
func (cli *CLI) Execute() error {
	err := cli.rootCmd.Execute()
	if cli.closeLog != nil {
		_ = cli.closeLog()
		cli.closeLog = nil
	}
	return err
}

// SetArgs overrides os.Args for the next Execute
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

// setupViperConfig configures Viper with environment variables and config files
func (cli *CLI) setupViperConfig() {
	// FIELDSORT_CONFIG points at a config file outside the search path
	if configFile := os.Getenv("FIELDSORT_CONFIG"); configFile != "" {
		cli.viperInst.SetConfigFile(configFile)
	} else {
		cli.viperInst.SetConfigName("fieldsort")
		cli.viperInst.SetConfigType("yaml")
		cli.viperInst.AddConfigPath(".")
		cli.viperInst.AddConfigPath("$HOME/.fieldsort")
	}

	cli.viperInst.AutomaticEnv()
	cli.viperInst.SetEnvPrefix("FIELDSORT")

	// Replace dash with underscore in env vars (e.g., --log-level -> FIELDSORT_LOG_LEVEL)
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	cli.viperInst.SetDefault("log-level", "warn")
	cli.viperInst.SetDefault("lock-timeout", dataset.DefaultLockTimeout)

	// Read config file if it exists (ignore errors)
	_ = cli.viperInst.ReadInConfig()
}

// createRootCommand creates the root Cobra command with Viper integration
func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "fieldsort",
		Short: "Sort record files by attributes named at runtime",
		Long: `fieldsort sorts a YAML or JSON list of records by a precedence list of
attribute names and prints, for each record, the values that tell it apart
from its neighbours.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (FIELDSORT_*)
3. Configuration file (FIELDSORT_CONFIG, ./fieldsort.yaml or ~/.fieldsort/fieldsort.yaml)

Examples:
  fieldsort sort people.yaml --by -age,name
  fieldsort sort people.yaml --by -age --by name --write
  fieldsort check people.json --by name
  FIELDSORT_BY=-age,name fieldsort sort people.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var mirror io.Writer
			if cli.viperInst.GetBool("log-stderr") {
				mirror = cli.errOut
			}
			logger, closeLog, err := initLogging(cli.viperInst.GetString("log-level"), mirror)
			if err != nil {
				return &CLIError{
					Operation:   "start",
					Cause:       "cannot open the log file",
					Details:     err.Error(),
					Suggestions: []string{CommonSuggestions.CheckPerms},
					Underlying:  err,
				}
			}
			cli.logger = logger
			cli.closeLog = closeLog
			cli.logger.Debug("command started", "command", cmd.Name(), "args", args)
			return nil
		},
	}

	cli.rootCmd.SetOut(cli.out)
	cli.rootCmd.SetErr(cli.errOut)
	cli.addGlobalFlags()
}

// addGlobalFlags adds persistent flags that apply to all commands
func (cli *CLI) addGlobalFlags() {
	flags := cli.rootCmd.PersistentFlags()

	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")
	flags.Bool("log-stderr", false, "Mirror log records to stderr")
	flags.Duration("lock-timeout", dataset.DefaultLockTimeout, "How long to wait for a record file's lock")

	for _, flag := range []string{"log-level", "log-stderr", "lock-timeout"} {
		_ = cli.viperInst.BindPFlag(flag, flags.Lookup(flag))
	}
}

// addCommands adds the record commands
func (cli *CLI) addCommands() {
	cli.addSortCommand()
	cli.addCheckCommand()
	cli.addFieldsCommand()
}

// addByFlag registers the repeatable --by flag
func addByFlag(flags *pflag.FlagSet) {
	flags.StringArrayP("by", "b", nil,
		"Attributes to sort by, comma-separated or repeated; prefix '-' for descending")
}

// precedenceTokens reads --by, falling back to the 'by' config key
func (cli *CLI) precedenceTokens(flags *pflag.FlagSet) []string {
	lists, _ := flags.GetStringArray("by")
	if len(lists) == 0 {
		lists = cli.viperInst.GetStringSlice("by")
	}
	if len(lists) == 0 {
		return nil
	}
	return types.SplitTokens(lists...)
}

func (cli *CLI) lockTimeout() time.Duration {
	if d := cli.viperInst.GetDuration("lock-timeout"); d > 0 {
		return d
	}
	return dataset.DefaultLockTimeout
}

func (cli *CLI) store() *dataset.Store {
	return dataset.NewStore(dataset.WithLockTimeout(cli.lockTimeout()))
}
