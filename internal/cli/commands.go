package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	bockqsc "github.com/BOCK-AI/BockQSC1090"
	"github.com/BOCK-AI/BockQSC1090/calib"
	"github.com/BOCK-AI/BockQSC1090/internal/tui"
	"github.com/BOCK-AI/BockQSC1090/rb"
	"github.com/BOCK-AI/BockQSC1090/tomo"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <program.algo>",
		Short: "Execute an .algo program and print the measured bitstring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readProgram(args[0])
			if err != nil {
				return err
			}
			res, err := bockqsc.RunProgram(text, viper.GetInt64("seed"))
			if err != nil {
				return err
			}
			return writeJSON(res)
		},
	}
}

func newCompileCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "compile <program.algo>",
		Short: "Compile an .algo program to a pulse schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readProgram(args[0])
			if err != nil {
				return err
			}
			sched, err := bockqsc.CompileProgram(text)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(sched)
			}
			fmt.Print(sched.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the schedule as JSON")
	return cmd
}

func newCalibrateCmd() *cobra.Command {
	var (
		qubit    int
		kind     string
		noiseStd float64
		averages int
	)
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Run a Rabi or Ramsey calibration sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := calib.Config{
				NoiseStd: noiseStd,
				Averages: averages,
				Workers:  viper.GetInt("workers"),
			}
			rec, err := bockqsc.RunCalibration(cmd.Context(), qubit, calib.Kind(kind), cfg,
				viper.GetInt64("seed"), logger)
			if err != nil {
				return err
			}
			return writeJSON(rec)
		},
	}
	cmd.Flags().IntVarP(&qubit, "qubit", "q", 0, "qubit to calibrate")
	cmd.Flags().StringVar(&kind, "kind", string(calib.Rabi), "sweep kind: rabi or ramsey")
	cmd.Flags().Float64Var(&noiseStd, "noise", 0.02, "per-point Gaussian noise std")
	cmd.Flags().IntVar(&averages, "averages", 10, "independent sweeps to average")
	return cmd
}

func newTomoCmd() *cobra.Command {
	var (
		qubit   int
		shots   int
		program string
	)
	cmd := &cobra.Command{
		Use:   "tomo",
		Short: "Reconstruct a qubit's density matrix by state tomography",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := tomo.Config{Workers: viper.GetInt("workers")}
			if program != "" {
				text, err := readProgram(program)
				if err != nil {
					return err
				}
				prog, err := bockqsc.ParseProgram(text)
				if err != nil {
					return err
				}
				cfg.Prep = prog.Ops
			}
			rec, err := bockqsc.RunTomography(cmd.Context(), qubit, shots, cfg,
				viper.GetInt64("seed"), logger)
			if err != nil {
				return err
			}
			return writeJSON(rec)
		},
	}
	cmd.Flags().IntVarP(&qubit, "qubit", "q", 0, "qubit to reconstruct")
	cmd.Flags().IntVar(&shots, "shots", 2000, "shots per measurement basis")
	cmd.Flags().StringVar(&program, "prep", "", ".algo program preparing the state (default |0>)")
	return cmd
}

func newRBCmd() *cobra.Command {
	var (
		qubit int
		noise float64
		rands int
	)
	cmd := &cobra.Command{
		Use:   "rb",
		Short: "Estimate average gate fidelity by randomized benchmarking",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rb.Config{
				NoiseProb:      noise,
				Randomizations: rands,
				Workers:        viper.GetInt("workers"),
			}
			rec, err := bockqsc.RunRandomizedBenchmarking(cmd.Context(), qubit, cfg,
				viper.GetInt64("seed"), logger)
			if err != nil {
				return err
			}
			return writeJSON(rec)
		},
	}
	cmd.Flags().IntVarP(&qubit, "qubit", "q", 0, "qubit to benchmark")
	cmd.Flags().Float64Var(&noise, "noise", 0.01, "depolarizing probability per Clifford")
	cmd.Flags().IntVar(&rands, "randomizations", 30, "random sequences per length")
	return cmd
}

func newBenchCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "bench",
		Aliases: []string{"simulate"},
		Short:   "Produce the synthetic device benchmark report",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := bockqsc.DeviceBenchmarks(viper.GetInt64("seed"))
			if asJSON {
				return writeJSON(b)
			}
			fmt.Print(b.Summary())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the report as JSON")
	return cmd
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := tui.New(viper.GetInt64("seed"), logger)
			p := tea.NewProgram(m, tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}
