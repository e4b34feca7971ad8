package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/pipesim/asm"
	"github.com/sarchlab/pipesim/isa"
	"github.com/sarchlab/pipesim/pipeline"
)

var (
	fromStdin  bool
	strict     bool
	configPath string
	verbose    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file.asm]",
	Short: "Parse and simulate a program",
	Long: `run reads a program written in the pipesim assembly grammar,
either from a file or from standard input, simulates it to completion
or to the MAX_CYCLES safety cap, and prints the resulting Result as
JSON on stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().BoolVar(&fromStdin, "stdin", false, "read the program from standard input")
	runCmd.Flags().BoolVar(&strict, "strict", false, "fail on the first malformed line instead of skipping it")
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a JSON latency/capacity override file")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log program size and an end-of-run summary")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	source, err := openSource(args)
	if err != nil {
		log.WithError(err).Error("failed to open program")
		return err
	}
	defer source.Close()

	instructions, err := parseSource(source)
	if err != nil {
		log.WithError(err).Error("failed to parse program")
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		log.WithError(err).Error("failed to load config")
		return err
	}

	if verbose {
		log.WithFields(logrus.Fields{
			"instructions": len(instructions),
		}).Debug("program loaded")
	}

	engine := pipeline.NewEngine(cfg)
	result, err := engine.Run(instructions)
	if err != nil {
		log.WithError(err).Error("simulation failed")
		return err
	}

	if verbose {
		log.WithFields(logrus.Fields{
			"cycles":    result.Stats.TotalCycles,
			"completed": result.Stats.InstructionsCompleted,
			"stalls":    result.Stats.TotalStalls,
		}).Debug("simulation complete")
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("pipesim: encode result: %w", err)
	}

	return nil
}

func openSource(args []string) (io.ReadCloser, error) {
	if fromStdin {
		return io.NopCloser(os.Stdin), nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("pipesim: a program file is required unless --stdin is set")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("pipesim: open program file: %w", err)
	}
	return f, nil
}

func parseSource(source io.Reader) ([]isa.Instruction, error) {
	if strict {
		return asm.ParseStrict(source)
	}
	return asm.Parse(source)
}

func loadConfig() (*isa.Config, error) {
	if configPath == "" {
		return isa.DefaultConfig(), nil
	}

	cfg, err := isa.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipesim: invalid config: %w", err)
	}
	return cfg, nil
}
