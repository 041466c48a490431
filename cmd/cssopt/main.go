// Command cssopt parses a CSS document, optimises it, and prints the
// normalised result.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cssopt/cssopt/internal/cssconfig"
	"github.com/cssopt/cssopt/internal/cssdecode"
	"github.com/cssopt/cssopt/internal/cssoptimizer"
	"github.com/cssopt/cssopt/internal/cssprint"
)

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("unknown log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// optimizeOnce runs the full pipeline over source once with the given
// configuration and returns the optimised text.
func optimizeOnce(cfg *cssconfig.Config, log *zap.Logger, source []byte) (string, error) {
	options, err := cfg.OptimiserOptions()
	if err != nil {
		return "", err
	}
	tpl, ok := cssprint.TemplateByName(cfg.Output.Template)
	if !ok {
		return "", fmt.Errorf("unknown output template %q", cfg.Output.Template)
	}

	sheet, derr := cssdecode.New(log).Decode(source)
	if derr != nil {
		log.Warn("recovered from parse problems", zap.Error(derr))
	}

	optimiser := cssoptimizer.New(options, log)
	for _, block := range sheet.Blocks {
		optimiser.Postparse(block)
	}

	out := cssprint.New(tpl, log).Print(sheet)

	ratio := 0.0
	if len(source) > 0 {
		ratio = float64(len(out)) / float64(len(source))
	}
	log.Info("optimised stylesheet",
		zap.Int("bytes_in", len(source)),
		zap.Int("bytes_out", len(out)),
		zap.Float64("ratio", ratio),
	)
	return out, nil
}

func readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeResult(path, text string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

func runOptimize(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("expected exactly one SOURCE argument, got %d", cmd.NArg())
	}
	sourcePath := cmd.Args().First()

	loader := cssconfig.NewLoader(nil)
	cfg, err := loader.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if s := cmd.String("level"); s != "" {
		cfg.OptimiseShorthands = strings.ToUpper(s)
	}
	if cmd.IsSet("template") {
		cfg.Output.Template = cmd.String("template")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	source, err := readSource(sourcePath)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", sourcePath, err)
	}

	run := func(c *cssconfig.Config) error {
		out, err := optimizeOnce(c, log, source)
		if err != nil {
			return err
		}
		return writeResult(cmd.String("output"), out)
	}

	if err := run(cfg); err != nil {
		return err
	}

	if !cmd.Bool("watch") {
		return nil
	}

	// Watch mode: re-run the pipeline whenever the configuration file
	// changes, until interrupted.
	loader.Watch(func(fresh *cssconfig.Config) {
		if s := cmd.String("level"); s != "" {
			fresh.OptimiseShorthands = strings.ToUpper(s)
		}
		if err := run(fresh); err != nil {
			log.Error("re-optimisation failed", zap.Error(err))
		}
	})
	log.Info("watching configuration for changes")
	<-ctx.Done()
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "cssopt",
		Usage:           "CSS parser and optimiser",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
		},
		Commands: []*cli.Command{
			{
				Name:      "optimize",
				Usage:     "Optimise a CSS file and print the result",
				Action:    runOptimize,
				ArgsUsage: "SOURCE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "level", Aliases: []string{"l"},
						Usage: "optimisation `LEVEL` (NONE, COMMON, FONT, BACKGROUND, ALL); overrides configuration"},
					&cli.StringFlag{Name: "template", Aliases: []string{"t"},
						Usage: "output `TEMPLATE` (pretty, compact); overrides configuration"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"},
						Usage: "write result to `FILE` instead of stdout"},
					&cli.BoolFlag{Name: "watch", Aliases: []string{"w"},
						Usage: "keep running and re-optimise when the configuration file changes"},
				},
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cssopt: %v\n", err)
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
