package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Jailior/3dgraphicproject/pkg/math3d"
)

var (
	// ErrMalformed is returned for OBJ content that cannot be parsed or
	// references vertices that do not exist.
	ErrMalformed = errors.New("malformed obj")

	// ErrNoTexCoords is returned when a textured load finds a face corner
	// without a texture index.
	ErrNoTexCoords = errors.New("obj face has no texture coordinates")
)

// Record is one parsed OBJ statement: RecordVertex, RecordTexCoord or
// RecordFace.
type Record interface {
	record()
}

// RecordVertex is a "v x y z" statement.
type RecordVertex struct {
	Line int
	P    math3d.Vec3
}

// RecordTexCoord is a "vt u v" statement, stored as read.
type RecordTexCoord struct {
	Line int
	UV   math3d.Vec2
}

// RecordFace is an "f" statement with three or more corners.
type RecordFace struct {
	Line    int
	Corners []FaceIndex
}

// FaceIndex holds the raw OBJ indices of one face corner. Positive values
// are 1-based, negative values count back from the latest element, and a
// zero T means the corner has no texture index.
type FaceIndex struct {
	V, T int
}

func (RecordVertex) record()   {}
func (RecordTexCoord) record() {}
func (RecordFace) record()     {}

// OBJReader tokenizes Wavefront OBJ text into records. Statements other
// than v, vt and f are skipped.
type OBJReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewOBJReader creates a reader over r.
func NewOBJReader(r io.Reader) *OBJReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &OBJReader{scanner: s}
}

// Next returns the next record, or io.EOF when the input is exhausted.
func (r *OBJReader) Next() (Record, error) {
	for r.scanner.Scan() {
		r.line++
		text := r.scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			return r.parseVertex(fields[1:])
		case "vt":
			return r.parseTexCoord(fields[1:])
		case "f":
			return r.parseFace(fields[1:])
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	return nil, io.EOF
}

func (r *OBJReader) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, r.line, fmt.Sprintf(format, args...))
}

func (r *OBJReader) parseVertex(args []string) (Record, error) {
	if len(args) < 3 {
		return nil, r.errorf("vertex needs 3 coordinates, got %d", len(args))
	}
	var xyz [3]float64
	for i := range 3 {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, r.errorf("vertex coordinate %q", args[i])
		}
		xyz[i] = f
	}
	return RecordVertex{Line: r.line, P: math3d.V3(xyz[0], xyz[1], xyz[2])}, nil
}

func (r *OBJReader) parseTexCoord(args []string) (Record, error) {
	if len(args) < 1 {
		return nil, r.errorf("texture coordinate needs at least u")
	}
	var uv [2]float64
	for i := range min(len(args), 2) {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, r.errorf("texture coordinate %q", args[i])
		}
		uv[i] = f
	}
	return RecordTexCoord{Line: r.line, UV: math3d.V2(uv[0], uv[1])}, nil
}

func (r *OBJReader) parseFace(args []string) (Record, error) {
	if len(args) < 3 {
		return nil, r.errorf("face needs at least 3 corners, got %d", len(args))
	}

	corners := make([]FaceIndex, len(args))
	for i, arg := range args {
		// i, i/t, i/t/n or i//n
		parts := strings.Split(arg, "/")
		if len(parts) > 3 {
			return nil, r.errorf("face corner %q", arg)
		}

		v, err := strconv.Atoi(parts[0])
		if err != nil || v == 0 {
			return nil, r.errorf("face vertex index %q", arg)
		}
		corners[i].V = v

		if len(parts) > 1 && parts[1] != "" {
			t, err := strconv.Atoi(parts[1])
			if err != nil || t == 0 {
				return nil, r.errorf("face texture index %q", arg)
			}
			corners[i].T = t
		}
	}
	return RecordFace{Line: r.line, Corners: corners}, nil
}

// resolveIndex converts a raw OBJ index into a 0-based slice index.
func resolveIndex(idx, n int) (int, bool) {
	if idx < 0 {
		idx += n
	} else {
		idx--
	}
	return idx, idx >= 0 && idx < n
}

// ReadOBJ builds a mesh from OBJ text. With hasTexCoords every face corner
// must carry a texture index; texture coordinates are flipped to (1-u, 1-v).
// Without it texture indices are ignored and UVs stay zero. Polygons are
// fan triangulated.
func ReadOBJ(r io.Reader, hasTexCoords bool) (*Mesh, error) {
	var (
		reader = NewOBJReader(r)
		verts  []math3d.Vec3
		texs   []math3d.Vec2
		mesh   = NewMesh("")
	)
	mesh.HasTexCoords = hasTexCoords

	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch rec := rec.(type) {
		case RecordVertex:
			verts = append(verts, rec.P)
		case RecordTexCoord:
			texs = append(texs, math3d.V2(1-rec.UV.X, 1-rec.UV.Y))
		case RecordFace:
			var pos [3]math3d.Vec3
			var uv [3]math3d.Vec2

			for i, c := range rec.Corners {
				vi, ok := resolveIndex(c.V, len(verts))
				if !ok {
					return nil, fmt.Errorf("%w: line %d: vertex index %d out of range", ErrMalformed, rec.Line, c.V)
				}
				var ti int
				if hasTexCoords {
					if c.T == 0 {
						return nil, fmt.Errorf("%w: line %d", ErrNoTexCoords, rec.Line)
					}
					if ti, ok = resolveIndex(c.T, len(texs)); !ok {
						return nil, fmt.Errorf("%w: line %d: texture index %d out of range", ErrMalformed, rec.Line, c.T)
					}
				}

				// Fan around corner 0: slot 2 shifts into slot 1 for each new corner.
				if i > 2 {
					pos[1], uv[1] = pos[2], uv[2]
				}
				k := min(i, 2)
				pos[k] = verts[vi]
				if hasTexCoords {
					uv[k] = texs[ti]
				}
				if i >= 2 {
					mesh.AddTriangle(Triangle{P: pos, UV: uv})
				}
			}
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string, hasTexCoords bool) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ReadOBJ(f, hasTexCoords)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}
