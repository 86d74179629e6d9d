// Package cli wires the bockqsc command tree: program execution, pulse
// compilation, the characterization experiments and the dashboard.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

// NewRootCmd builds the bockqsc command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bockqsc",
		Short: "BockQSC1090 10-qubit quantum processor simulator",
		Long: `bockqsc simulates the BockQSC1090 10-qubit processor: it executes
.algo gate programs on a statevector register, compiles them to pulse
schedules, and runs the characterization experiments (Rabi/Ramsey
calibration, state tomography, randomized benchmarking).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default bockqsc.yaml in the working directory)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.Int64("seed", 1, "random seed for reproducible runs")
	pf.Int("workers", 0, "worker goroutines for experiment trials (0 = NumCPU)")
	viper.BindPFlag("seed", pf.Lookup("seed"))
	viper.BindPFlag("workers", pf.Lookup("workers"))

	root.AddCommand(
		newRunCmd(),
		newCompileCmd(),
		newCalibrateCmd(),
		newTomoCmd(),
		newRBCmd(),
		newBenchCmd(),
		newDashboardCmd(),
	)
	return root
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bockqsc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("BOCKQSC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	return nil
}

// writeJSON renders a record to stdout as indented JSON.
func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readProgram loads program text from the file argument, or stdin for "-".
func readProgram(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading program from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading program: %w", err)
	}
	return string(data), nil
}
