// Command dendrogram clusters a correlation matrix hierarchically, renders
// the dendrogram next to a heatmap and writes the leaf groups to a .dat file.
//
//	dendrogram [flags] correlation_matrix_file label_file output_stub method
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KyungWonPark/corrdendro/internal/build"
	"github.com/KyungWonPark/corrdendro/internal/cluster"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command and maps its error to an exit status.
func execute(args []string, stdout io.Writer, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, build.ErrVersionTooOld):
		fmt.Fprintf(stderr, "Skipping: %v\n", err)
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		fmt.Fprintf(stderr, "\nValid methods: %s\n", strings.Join(cluster.Methods(), ", "))
		return 2
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}
