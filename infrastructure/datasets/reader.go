// Package datasets parses objective-value files into the matrix plus
// run-boundary shape the core engines consume.
//
// The format is the conventional one for multi-objective benchmark
// output: one point per line as whitespace-separated numbers, '#' starting
// a comment that runs to the end of the line, and one or more blank lines
// separating consecutive runs.
package datasets

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/auto-optimization/mootools/internal/domain"
	"github.com/auto-optimization/mootools/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.DatasetReader = (*FileReader)(nil)

// FileReader reads datasets from the local filesystem.
type FileReader struct{}

// NewFileReader creates a filesystem-backed dataset reader.
func NewFileReader() *FileReader { return &FileReader{} }

// ReadFile parses the file at path into a dataset.
func (fr *FileReader) ReadFile(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Read parses a dataset from r. Every point must have the same number of
// objectives; a run with no points is skipped rather than recorded as an
// empty run.
func Read(r io.Reader) (*domain.Dataset, error) {
	var (
		flat     []float64
		cumsizes []int
		nobj     int
		points   int
		inRun    bool
	)
	endRun := func() {
		if inRun {
			cumsizes = append(cumsizes, points)
			inRun = false
		}
	}

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			endRun()
			continue
		}
		if nobj == 0 {
			nobj = len(fields)
			if nobj < 2 {
				return nil, domain.NewDomainError("points must have at least two objectives",
					fmt.Errorf("line %d has %d column(s)", lineno, nobj))
			}
		} else if len(fields) != nobj {
			return nil, domain.NewDomainError("every point must have the same number of objectives",
				fmt.Errorf("line %d has %d columns, expected %d", lineno, len(fields), nobj))
		}
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, domain.NewConfigError("dataset values must be numeric",
					fmt.Errorf("line %d: %w", lineno, err))
			}
			flat = append(flat, v)
		}
		points++
		inRun = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	endRun()

	if points == 0 {
		return nil, domain.NewRangeError("dataset contains no points", domain.ErrEmptyFront)
	}
	m, err := domain.NewMatrix(flat, nobj)
	if err != nil {
		return nil, err
	}
	return domain.NewDataset(m, cumsizes)
}
