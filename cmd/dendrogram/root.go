package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KyungWonPark/corrdendro/internal/build"
	"github.com/KyungWonPark/corrdendro/internal/cluster"
	"github.com/KyungWonPark/corrdendro/internal/config"
)

// ErrUsage is returned for bad arguments; the usage text is printed with it.
var ErrUsage = errors.New("usage")

// versionCheck guards a run against linked library versions.
var versionCheck = build.Check

type options struct {
	configFile string
	variants   []string
	verbose    bool
	quiet      bool
	noRender   bool
}

func newRootCmd(stdout io.Writer, stderr io.Writer) *cobra.Command {
	cfg := config.Default()
	var opts options

	cmd := &cobra.Command{
		Use:   "dendrogram [flags] correlation_matrix_file label_file output_stub method",
		Short: "Hierarchical clustering of a correlation matrix",
		Long: `Clusters a correlation matrix hierarchically and cuts the tree at a
distance threshold. For every variant (by default "dissimilarity", 1-|c|,
and "correlation", c as-is) it writes

  <output_stub>_<variant>_all.pdf      dendrogram and heatmap
  <output_stub>_<variant>_dendro.pdf   dendrogram colored by group
  <output_stub>_<variant>_dendro.dat   leaves per group

The matrix file holds whitespace separated rows (.csv and .npy are read
too); the label file holds one label per row, separated by '@'.

Methods: ` + strings.Join(cluster.Methods(), ", "),
		Version:       build.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 4 {
				return fmt.Errorf("%w: want 4 arguments, got %d", ErrUsage, len(args))
			}
			if _, err := cluster.ParseMethod(args[3]); err != nil {
				return fmt.Errorf("%w: %v", ErrUsage, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := versionCheck(); err != nil {
				return err
			}

			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

			run, err := resolve(cmd, cfg, opts, args)
			if err != nil {
				return err
			}

			var summary io.Writer = stderr
			if opts.quiet {
				summary = io.Discard
			}
			return execPipeline(run, logger, summary)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.Float64Var(&cfg.Scaling, "scaling", cfg.Scaling, "figure size multiplier")
	flags.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "distance at which the tree is cut into groups")
	flags.StringVar(&opts.configFile, "config", "", "YAML file with run parameters")
	flags.StringArrayVar(&opts.variants, "variant", nil, "variant as name=transform (absolute, signed, identity); repeatable, replaces the defaults")
	flags.StringSliceVar(&cfg.Palette, "palette", cfg.Palette, "group token cycle")
	flags.StringVar(&cfg.AboveToken, "above", cfg.AboveToken, "token of leaves above the threshold")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "matrix workers (0: one per CPU)")
	flags.BoolVar(&cfg.Series, "series", cfg.Series, "matrix file holds one series per row; correlate rows first")
	flags.BoolVar(&cfg.SaveMatrix, "save-matrix", cfg.SaveMatrix, "also write the transformed matrix")
	flags.BoolVar(&cfg.SaveLinkage, "save-linkage", cfg.SaveLinkage, "also write the linkage matrix")
	flags.BoolVar(&cfg.CSV, "csv", cfg.CSV, "write saved matrices as CSV instead of .npy")
	flags.BoolVar(&opts.noRender, "no-render", false, "skip the PDF figures")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the group summary")

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})
	cmd.AddCommand(newConvertCmd())

	return cmd
}

// runSpec is everything one invocation needs.
type runSpec struct {
	cfg        config.Config
	matrixPath string
	labelPath  string
	stub       string
}

// resolve builds the final configuration: defaults, then the YAML file,
// then flags the user set explicitly.
func resolve(cmd *cobra.Command, flagged config.Config, opts options, args []string) (runSpec, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.LoadFile(opts.configFile, cfg); err != nil {
			return runSpec{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("scaling") {
		cfg.Scaling = flagged.Scaling
	}
	if flags.Changed("threshold") {
		cfg.Threshold = flagged.Threshold
	}
	if flags.Changed("palette") {
		cfg.Palette = flagged.Palette
	}
	if flags.Changed("above") {
		cfg.AboveToken = flagged.AboveToken
	}
	if flags.Changed("workers") {
		cfg.Workers = flagged.Workers
	}
	if flags.Changed("series") {
		cfg.Series = flagged.Series
	}
	if flags.Changed("save-matrix") {
		cfg.SaveMatrix = flagged.SaveMatrix
	}
	if flags.Changed("save-linkage") {
		cfg.SaveLinkage = flagged.SaveLinkage
	}
	if flags.Changed("csv") {
		cfg.CSV = flagged.CSV
	}
	if opts.noRender {
		cfg.Render = false
	}
	if len(opts.variants) > 0 {
		variants, err := parseVariants(opts.variants)
		if err != nil {
			return runSpec{}, err
		}
		cfg.Variants = variants
	}

	cfg.Method = args[3]
	if err := cfg.Validate(); err != nil {
		return runSpec{}, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	return runSpec{
		cfg:        cfg,
		matrixPath: args[0],
		labelPath:  args[1],
		stub:       args[2],
	}, nil
}

// parseVariants reads "name=transform" pairs; a bare name is also its
// transform.
func parseVariants(specs []string) ([]config.Variant, error) {
	variants := make([]config.Variant, 0, len(specs))
	for _, s := range specs {
		name, transform, found := strings.Cut(s, "=")
		if !found {
			transform = name
		}
		if name == "" || transform == "" {
			return nil, fmt.Errorf("%w: bad variant %q", ErrUsage, s)
		}
		variants = append(variants, config.Variant{Name: name, Transform: transform})
	}
	return variants, nil
}
