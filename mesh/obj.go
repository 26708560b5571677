package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// LoadOBJFile reads a Wavefront OBJ file from disk.
func LoadOBJFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %q: %w", path, err)
	}
	defer f.Close()
	return LoadOBJ(f)
}

// LoadOBJ parses vertex ("v x y z") and face ("f a b c ...") records.
// Faces with more than three corners are fan-triangulated; texture/normal
// references ("1/2/3") and negative (relative) indices are accepted. Every
// other record type is ignored.
func LoadOBJ(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrBadOBJ, line, err)
			}
			m.Vertices = append(m.Vertices, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: face needs 3 corners, got %d", ErrBadOBJ, line, len(fields)-1)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := parseFaceRef(ref, len(m.Vertices))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrBadOBJ, line, err)
				}
				corners = append(corners, idx)
			}
			for j := 1; j+1 < len(corners); j++ {
				m.Indices = append(m.Indices, corners[0], corners[j], corners[j+1])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mesh: read OBJ: %w", err)
	}
	return m, nil
}

func parseVertex(fields []string) (mgl64.Vec3, error) {
	if len(fields) < 3 {
		return mgl64.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var v mgl64.Vec3
	for k := 0; k < 3; k++ {
		f, err := strconv.ParseFloat(fields[k], 64)
		if err != nil {
			return mgl64.Vec3{}, err
		}
		v[k] = f
	}
	if !Finite(v) {
		return mgl64.Vec3{}, fmt.Errorf("%w: %v", ErrNonFiniteVertex, v)
	}
	return v, nil
}

// parseFaceRef resolves the position part of a face corner to a 0-based index.
func parseFaceRef(ref string, nVerts int) (int, error) {
	pos, _, _ := strings.Cut(ref, "/")
	i, err := strconv.Atoi(pos)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += nVerts
	default:
		return 0, fmt.Errorf("face index 0")
	}
	if i < 0 || i >= nVerts {
		return 0, fmt.Errorf("face index %s out of range (%d vertices)", pos, nVerts)
	}
	return i, nil
}
