package io

import (
	"fmt"
	"os"

	"github.com/gonum/matrix/mat64"
	"github.com/kshedden/gonpy"
)

// Mat64toNpy writes mat64 matrix to Python numpy npy binary file
func Mat64toNpy(path string, matrix *mat64.Dense) error {
	rows, cols := matrix.Dims()
	rawMat := matrix.RawMatrix()

	data := rawMat.Data
	if rawMat.Stride != cols {
		data = mat64.DenseCopyOf(matrix).RawMatrix().Data
	}

	w, err := gonpy.NewFileWriter(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	w.Shape = []int{rows, cols}
	w.Version = 2
	if err := w.WriteFloat64(data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}

	return nil
}

// NpytoMat64 reads Python numpy npy binary file as mat64 matrix
func NpytoMat64(path string) (*mat64.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	defer f.Close()

	r, err := gonpy.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInput, path, err)
	}
	if r.ColumnMajor {
		return nil, fmt.Errorf("%w: %s is stored in column-major order", ErrShape, path)
	}

	if len(r.Shape) != 2 {
		return nil, fmt.Errorf("%w: %s has %d dimensions", ErrShape, path, len(r.Shape))
	}

	rows := r.Shape[0]
	cols := r.Shape[1]
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	data, err := r.GetFloat64()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	return mat64.NewDense(rows, cols, data), nil
}
