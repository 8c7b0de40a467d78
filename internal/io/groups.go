package io

import (
	"bufio"
	"fmt"
	goio "io"
	"os"

	"github.com/KyungWonPark/corrdendro/internal/cluster"
)

// CounterMarker prefixes the line that follows every unclustered member.
const CounterMarker = "#Counter"

// WriteGroups writes the partition to path, replacing any existing file.
func WriteGroups(path string, p *cluster.Partition) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	w := bufio.NewWriter(f)
	if err := FormatGroups(w, p); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}

// FormatGroups writes one "#token" header per group, in token order, each
// followed by its member labels in leaf order. Unclustered members are
// each followed by a "#Counter N" line.
func FormatGroups(w goio.Writer, p *cluster.Partition) error {
	for _, g := range p.Groups {
		if _, err := fmt.Fprintf(w, "#%s\n", g.Token); err != nil {
			return err
		}

		for _, m := range g.Members {
			if _, err := fmt.Fprintln(w, m.Label); err != nil {
				return err
			}
			if m.Counter == cluster.NoCounter {
				continue
			}
			if _, err := fmt.Fprintf(w, "%s %d\n", CounterMarker, m.Counter); err != nil {
				return err
			}
		}
	}
	return nil
}
