package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/bank-insights/cmd/batch"
	"fjacquet/bank-insights/cmd/parse"
	"fjacquet/bank-insights/cmd/root"
	"fjacquet/bank-insights/cmd/summary"
	"fjacquet/bank-insights/internal/config"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load .env silently first (no logging yet)
	_ = config.LoadEnv()

	// 2. Configure the global logrus level before any logger exists
	configureLogLevelDirectly()

	// 3. Amounts are numbers in JSON output
	decimal.MarshalJSONWithoutQuotes = true

	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

// configureLogLevelDirectly sets the global log level for all logrus instances
func configureLogLevelDirectly() {
	logLevelStr := os.Getenv(config.EnvPrefix + "_LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
