package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	cio "github.com/KyungWonPark/corrdendro/internal/io"
)

// newConvertCmd converts matrix files between text, .csv and .npy.
func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert input output",
		Short: "Convert a matrix file between text, .csv and .npy",
		Long: `Reads a matrix in any supported input format and writes it as .npy or
.csv, following the output file extension. NaN and infinite entries are
written as zero.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("%w: convert wants 2 arguments, got %d", ErrUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			matrix, err := cio.LoadTable(args[0])
			if err != nil {
				return err
			}

			switch ext := strings.ToLower(filepath.Ext(args[1])); ext {
			case ".npy":
				err = cio.Mat64toNpy(args[1], matrix)
			case ".csv":
				err = cio.Mat64toCSV(args[1], matrix)
			default:
				return fmt.Errorf("%w: cannot write %q files", ErrUsage, ext)
			}
			if err != nil {
				return err
			}

			rows, cols := matrix.Dims()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d by %d\n", args[1], rows, cols)
			return nil
		},
	}
}
