// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/bank-insights/internal/config"
	"fjacquet/bank-insights/internal/container"
	"fjacquet/bank-insights/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	Format     string
	Variant    string
	ConfigFile string
	LogLevel   string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "bank-insights",
		Short: "A CLI tool to turn extracted bank statement text into structured data.",
		Long: `bank-insights parses the plain text extracted from a bank statement PDF into
an account header and an ordered list of transactions, and writes them as
JSON, YAML or CSV. It can also summarise and reconcile a statement and
process whole directories of statements.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			GetLogger().Info("Welcome to bank-insights!")
			GetLogger().Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initContainer(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			c := GetContainer()
			if c == nil {
				return nil
			}
			return c.Close()
		},
	}

	// SharedFlags holds the values of the persistent flags.
	SharedFlags = CommonFlags{}

	mu           sync.RWMutex
	appContainer *container.Container
	initOnce     sync.Once
)

// Init initializes the root command and all flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory (- for stdin)")
		flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory (- for stdout)")
		flags.StringVarP(&SharedFlags.Format, "format", "f", "", "Output format: json, yaml or csv")
		flags.StringVar(&SharedFlags.Variant, "variant", "", "Table grammar: auto, commaless or comma")
		flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default config.yaml in $HOME/.bank-insights, .bank-insights or .)")
		flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	})
}

// initContainer loads configuration, applies flag overrides and wires the container.
func initContainer(cmd *cobra.Command) error {
	cfg, err := config.Load(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = SharedFlags.Format
	}
	if flags.Changed("variant") {
		cfg.Parser.Variant = SharedFlags.Variant
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	SetContainer(c)
	logging.SetDefault(c.GetLogger())
	return nil
}

// SetContainer replaces the application container.
func SetContainer(c *container.Container) {
	mu.Lock()
	defer mu.Unlock()
	appContainer = c
}

// GetContainer returns the application container, or nil before the root
// command has run.
func GetContainer() *container.Container {
	mu.RLock()
	defer mu.RUnlock()
	return appContainer
}

// GetLogger returns the container logger, or the default logger when no
// container exists yet.
func GetLogger() logging.Logger {
	if c := GetContainer(); c != nil {
		return c.GetLogger()
	}
	return logging.GetLogger()
}
