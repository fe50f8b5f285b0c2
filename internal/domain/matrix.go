// Package domain defines the core value types shared by every indicator
// engine: point matrices, multi-run datasets, objective orientation, and the
// typed error kinds used to report precondition violations.
//
// All types are immutable after construction with one documented exception,
// Normalise, which rescales a caller-owned buffer in place. Nothing in this
// package performs I/O or retains state across calls.
package domain

import (
	"fmt"
	"math"
)

// Matrix is a read-only view of an npoints x nobj objective matrix stored
// row-major in a flat float64 buffer. Each row is one point in objective
// space; every row shares the same number of objectives.
//
// A Matrix does not own its buffer. Constructors validate shape only; the
// caller must not modify the underlying buffer while the Matrix is in use.
type Matrix struct {
	data []float64
	rows int
	cols int
}

// NewMatrix wraps a flat row-major buffer as a Matrix with the given number
// of columns. It returns a DomainError if cols is not positive, the buffer
// length is not a multiple of cols, or any value is NaN.
func NewMatrix(data []float64, cols int) (Matrix, error) {
	if cols <= 0 {
		return Matrix{}, NewDomainError("matrix must have at least one objective",
			fmt.Errorf("got %d columns", cols))
	}
	if len(data)%cols != 0 {
		return Matrix{}, NewDomainError("matrix buffer must be a whole number of rows",
			fmt.Errorf("buffer length %d is not a multiple of %d columns", len(data), cols))
	}
	for i, v := range data {
		if math.IsNaN(v) {
			return Matrix{}, NewDomainError("matrix values must not be NaN",
				fmt.Errorf("NaN at row %d, column %d", i/cols, i%cols))
		}
	}
	return Matrix{data: data, rows: len(data) / cols, cols: cols}, nil
}

// MustMatrix is NewMatrix for statically known-good inputs, such as test
// fixtures and literals. It panics on invalid shape.
func MustMatrix(data []float64, cols int) Matrix {
	m, err := NewMatrix(data, cols)
	if err != nil {
		panic(err)
	}
	return m
}

// Rows returns the number of points.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of objectives per point.
func (m Matrix) Cols() int { return m.cols }

// IsEmpty reports whether the matrix contains no points.
func (m Matrix) IsEmpty() bool { return m.rows == 0 }

// Row returns the i-th point as a slice sharing the underlying buffer.
// Callers must treat the returned slice as read-only.
func (m Matrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols]
}

// At returns the value of objective j for point i.
func (m Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Slice returns a view of rows [start, end). The view shares the underlying
// buffer with m.
func (m Matrix) Slice(start, end int) Matrix {
	return Matrix{data: m.data[start*m.cols : end*m.cols], rows: end - start, cols: m.cols}
}

// Clone returns a Matrix backed by a fresh copy of the buffer.
func (m Matrix) Clone() Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return Matrix{data: data, rows: m.rows, cols: m.cols}
}

// Select returns a Matrix containing only the rows for which keep is true.
// Row order is preserved. The result owns a fresh buffer.
func (m Matrix) Select(keep []bool) Matrix {
	data := make([]float64, 0, len(m.data))
	for i := 0; i < m.rows; i++ {
		if keep[i] {
			data = append(data, m.Row(i)...)
		}
	}
	return Matrix{data: data, rows: len(data) / m.cols, cols: m.cols}
}

// Append returns a new Matrix holding the rows of m followed by the rows of
// other. Both inputs are left untouched.
func (m Matrix) Append(other Matrix) (Matrix, error) {
	if m.cols != other.cols {
		return Matrix{}, NewDomainError("matrices must share dimensionality",
			fmt.Errorf("%d objectives vs %d", m.cols, other.cols))
	}
	data := make([]float64, 0, len(m.data)+len(other.data))
	data = append(data, m.data...)
	data = append(data, other.data...)
	return Matrix{data: data, rows: m.rows + other.rows, cols: m.cols}, nil
}

// Values returns the underlying flat row-major buffer. Callers must treat it
// as read-only.
func (m Matrix) Values() []float64 { return m.data }
