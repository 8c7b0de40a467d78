package io

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gonum/matrix/mat64"
)

// LabelSeparator separates entries of a label file.
const LabelSeparator = "@"

// Load reads the correlation matrix and its labels and checks that they
// describe the same entities.
func Load(matrixPath string, labelPath string) (*mat64.Dense, []string, error) {
	return load(matrixPath, labelPath, LoadMatrix)
}

// LoadSeries reads one observation series per row, with one label per row.
func LoadSeries(seriesPath string, labelPath string) (*mat64.Dense, []string, error) {
	return load(seriesPath, labelPath, LoadTable)
}

func load(matrixPath string, labelPath string, read func(string) (*mat64.Dense, error)) (*mat64.Dense, []string, error) {
	matrix, err := read(matrixPath)
	if err != nil {
		return nil, nil, err
	}

	labels, err := LoadLabels(labelPath)
	if err != nil {
		return nil, nil, err
	}

	rows, _ := matrix.Dims()
	if rows != len(labels) {
		return nil, nil, fmt.Errorf("%w: %d labels in %s for %d rows in %s", ErrLabelCount, len(labels), labelPath, rows, matrixPath)
	}

	return matrix, labels, nil
}

// LoadMatrix reads a square matrix. NaN and infinite entries are replaced
// with zero.
func LoadMatrix(path string) (*mat64.Dense, error) {
	matrix, err := LoadTable(path)
	if err != nil {
		return nil, err
	}

	rows, cols := matrix.Dims()
	if rows != cols {
		return nil, fmt.Errorf("%w: %s is %d by %d", ErrShape, path, rows, cols)
	}

	return matrix, nil
}

// LoadTable reads a rectangular table of numbers. The format follows the
// file extension: .npy and .csv are recognized, anything else is whitespace
// separated text. NaN and infinite entries are replaced with zero.
func LoadTable(path string) (*mat64.Dense, error) {
	var (
		matrix *mat64.Dense
		err    error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".npy":
		matrix, err = NpytoMat64(path)
	case ".csv":
		matrix, err = CSVtoMat64(path)
	default:
		matrix, err = TexttoMat64(path)
	}
	if err != nil {
		return nil, err
	}

	Sanitize(matrix)
	return matrix, nil
}

// Sanitize replaces every NaN or infinite entry with zero, in place.
func Sanitize(matrix *mat64.Dense) {
	rows, _ := matrix.Dims()
	for i := 0; i < rows; i++ {
		row := matrix.RawRowView(i)
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				row[j] = 0
			}
		}
	}
}

// TexttoMat64 reads whitespace separated numbers, one matrix row per line.
// Blank lines and lines starting with '#' are skipped.
func TexttoMat64(path string) (*mat64.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	defer f.Close()

	var (
		data []float64
		rows int
		cols = -1
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if cols == -1 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, fmt.Errorf("%w: %s line %d has %d columns, want %d", ErrShape, path, line, len(fields), cols)
		}

		for _, field := range fields {
			value, err := parseEntry(field)
			if err != nil {
				return nil, fmt.Errorf("%w: %s line %d: %q", ErrParse, path, line, field)
			}
			data = append(data, value)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInput, path, err)
	}

	if rows == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	return mat64.NewDense(rows, cols, data), nil
}

// parseEntry accepts everything strconv does, which includes nan and inf
// spelled in any case.
func parseEntry(field string) (float64, error) {
	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return value, nil
		}
		return 0, err
	}
	return value, nil
}

// LoadLabels reads labels separated by '@'. Line breaks also separate
// entries; surrounding whitespace is trimmed and empty entries dropped.
func LoadLabels(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}

	var labels []string
	for _, line := range strings.Split(string(raw), "\n") {
		for _, entry := range strings.Split(line, LabelSeparator) {
			entry = strings.TrimSpace(entry)
			if entry != "" {
				labels = append(labels, entry)
			}
		}
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	return labels, nil
}
