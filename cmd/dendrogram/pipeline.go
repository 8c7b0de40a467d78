package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gonum/matrix/mat64"

	"github.com/KyungWonPark/corrdendro/internal/calc"
	"github.com/KyungWonPark/corrdendro/internal/cluster"
	"github.com/KyungWonPark/corrdendro/internal/config"
	cio "github.com/KyungWonPark/corrdendro/internal/io"
	"github.com/KyungWonPark/corrdendro/internal/render"
	"github.com/KyungWonPark/corrdendro/internal/report"
)

// result is one variant carried through the pipeline.
type result struct {
	variant config.Variant
	matrix  *mat64.Dense
	tree    *cluster.Tree
	cut     *cluster.Partition
}

func execPipeline(run runSpec, logger *slog.Logger, summary io.Writer) error {
	cfg := run.cfg
	pl := calc.Init(cfg.Workers)

	var (
		corr   *mat64.Dense
		labels []string
		err    error
	)
	if cfg.Series {
		var series *mat64.Dense
		if series, labels, err = cio.LoadSeries(run.matrixPath, run.labelPath); err != nil {
			return err
		}
		if corr, err = pl.Correlate(series); err != nil {
			return err
		}
		cio.Sanitize(corr)
	} else if corr, labels, err = cio.Load(run.matrixPath, run.labelPath); err != nil {
		return err
	}

	rows, cols := corr.Dims()
	logger.Debug("loaded input", "matrix", run.matrixPath, "rows", rows, "cols", cols, "labels", len(labels))

	results, err := compute(cfg, pl, corr, labels, logger)
	if err != nil {
		return err
	}

	palette, err := render.NewPalette(cfg.Colors)
	if err != nil {
		return err
	}

	for _, r := range results {
		if err := write(fmt.Sprintf("%s_%s", run.stub, r.variant.Name), cfg, labels, r, palette, logger); err != nil {
			return err
		}
		fmt.Fprint(summary, report.Summary(r.variant.Name, r.tree, r.cut, palette))
	}

	return nil
}

// compute runs every variant before anything is written, so a failure
// leaves no output behind.
func compute(cfg config.Config, pl *calc.PipeLine, corr *mat64.Dense, labels []string, logger *slog.Logger) ([]result, error) {
	method, err := cfg.LinkageMethod()
	if err != nil {
		return nil, err
	}

	results := make([]result, 0, len(cfg.Variants))
	for _, v := range cfg.Variants {
		transform, err := calc.ParseTransform(v.Transform)
		if err != nil {
			return nil, err
		}

		matrix, err := pl.Apply(corr, transform)
		if err != nil {
			return nil, err
		}

		condensed, err := cluster.Condense(matrix, transform.Dissimilarity())
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}

		tree, err := cluster.Linkage(condensed, method)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}

		if inv := tree.Inversions(); len(inv) > 0 {
			logger.Warn("merge distances are not monotonic",
				"variant", v.Name, "method", method, "inversions", len(inv),
				"euclidean_method", method.Euclidean())
		}

		cut, err := cluster.Cut(tree, labels, cfg.CutOptions())
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}

		logger.Debug("clustered",
			"variant", v.Name, "transform", transform, "method", method,
			"max_distance", tree.MaxDistance(), "groups", len(cut.Groups),
			"unclustered", len(cut.Unclustered()))

		results = append(results, result{variant: v, matrix: matrix, tree: tree, cut: cut})
	}

	return results, nil
}

func write(stub string, cfg config.Config, labels []string, r result, palette render.Palette, logger *slog.Logger) error {
	dat := stub + "_dendro.dat"
	if err := cio.WriteGroups(dat, r.cut); err != nil {
		return err
	}
	logger.Info("wrote groups", "path", dat)

	if cfg.SaveMatrix {
		if err := saveMatrix(stub+"_matrix", r.matrix, cfg.CSV, logger); err != nil {
			return err
		}
	}
	if cfg.SaveLinkage {
		if err := saveMatrix(stub+"_linkage", r.tree.Matrix(), cfg.CSV, logger); err != nil {
			return err
		}
	}

	if !cfg.Render {
		return nil
	}

	fig := render.Figure{
		Title:   fmt.Sprintf("%s (%s)", r.variant.Name, r.tree.Method),
		Labels:  labels,
		Tree:    r.tree,
		Cut:     r.cut,
		Palette: palette,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Scaling: cfg.Scaling,
	}

	all := stub + "_all.pdf"
	if err := render.SaveAll(all, fig, r.matrix); err != nil {
		return err
	}
	logger.Info("wrote figure", "path", all)

	dendro := stub + "_dendro.pdf"
	if err := render.SaveDendrogram(dendro, fig); err != nil {
		return err
	}
	logger.Info("wrote figure", "path", dendro)

	return nil
}

func saveMatrix(base string, m *mat64.Dense, csv bool, logger *slog.Logger) error {
	path := base + ".npy"
	save := cio.Mat64toNpy
	if csv {
		path = base + ".csv"
		save = cio.Mat64toCSV
	}

	if err := save(path, m); err != nil {
		return err
	}
	logger.Debug("wrote matrix", "path", path)
	return nil
}
