package io

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/gonum/matrix/mat64"
)

// Mat64toCSV saves Mat64 as a csv file
func Mat64toCSV(path string, matrix *mat64.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	rows, _ := matrix.Dims()

	stride := runtime.NumCPU()
	parsed := make([]string, stride)

	for row := 0; row < rows; row += stride {
		var wg sync.WaitGroup
		jobMark := stride

		if row+stride >= rows {
			jobMark = rows - row
		}

		wg.Add(jobMark)
		for offset := 0; offset < jobMark; offset++ {
			go formatLine(matrix, parsed, offset, row, &wg)
		}
		wg.Wait()

		for i := 0; i < jobMark; i++ {
			if _, err := fmt.Fprintf(w, "%s\n", parsed[i]); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}

func formatLine(matrix *mat64.Dense, parsed []string, offset int, row int, wg *sync.WaitGroup) {
	defer wg.Done()

	values := matrix.RawRowView(row + offset)
	fields := make([]string, len(values))
	for i, v := range values {
		fields[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	parsed[offset] = strings.Join(fields, ", ")
}

// CSVtoMat64 converts csv file to mat64
func CSVtoMat64(path string) (*mat64.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	defer f.Close()

	csvReader := csv.NewReader(f)
	csvReader.FieldsPerRecord = 0
	csvReader.Comment = '#'
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrShape, path, err)
	}

	rows := len(records)
	if rows == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	cols := len(records[0])

	matrix := mat64.NewDense(rows, cols, nil)
	failed := make([]error, rows)

	workers := runtime.NumCPU()
	order := make(chan int, workers)
	var wg sync.WaitGroup

	wg.Add(rows)

	for i := 0; i < workers; i++ {
		go parseLine(records, matrix, failed, order, &wg)
	}

	for i := 0; i < rows; i++ {
		order <- i
	}

	wg.Wait()
	close(order)

	for row, err := range failed {
		if err != nil {
			return nil, fmt.Errorf("%w: %s record %d: %v", ErrParse, path, row+1, err)
		}
	}

	return matrix, nil
}

func parseLine(records [][]string, matrix *mat64.Dense, failed []error, order <-chan int, wg *sync.WaitGroup) {
	_, cols := matrix.Dims()

	for index := range order {
		for i := 0; i < cols; i++ {
			value, err := parseEntry(strings.TrimSpace(records[index][i]))
			if err != nil {
				failed[index] = err
				break
			}

			matrix.Set(index, i, value)
		}

		wg.Done()
	}
}
