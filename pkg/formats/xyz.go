// Package formats reads and writes the point lists and meshes a scatter
// build consumes and produces.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scattermesh/pkg/math"
)

// XYZ point list errors.
var (
	ErrInvalidPointLine = errors.New("invalid XYZ point line")
	ErrNoPoints         = errors.New("XYZ data contains no points")
)

// ParseXYZ parses a whitespace or comma separated point list, one "x y z"
// triple per line. Blank lines and lines starting with '#' are skipped.
func ParseXYZ(data []byte) ([]math.Vec3, error) {
	var points []math.Vec3

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == ';'
		})
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d has %d values", ErrInvalidPointLine, lineNo, len(fields))
		}

		var v [3]float32
		for i, f := range fields {
			n, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrInvalidPointLine, lineNo, f)
			}
			v[i] = float32(n)
			if math32.IsNaN(v[i]) || math32.IsInf(v[i], 0) {
				return nil, fmt.Errorf("%w: line %d: non-finite value %q", ErrInvalidPointLine, lineNo, f)
			}
		}
		points = append(points, math.FromArray(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	return points, nil
}

// LoadXYZ reads and parses an XYZ file from disk.
func LoadXYZ(path string) ([]math.Vec3, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading XYZ file: %w", err)
	}
	return ParseXYZ(data)
}

// WriteXYZ writes one "x y z" line per point.
func WriteXYZ(w io.Writer, points []math.Vec3) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		if _, err := fmt.Fprintf(bw, "%g %g %g\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	return bw.Flush()
}
