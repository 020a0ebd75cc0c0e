package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Jailior/3dgraphicproject/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// FlipV maps V to 1-V for textures authored with a bottom-left origin.
	// glTF already uses a top-left origin, matching Texture.Sample.
	FlipV bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := l.FromDocument(doc)
	if err != nil {
		return nil, err
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// FromDocument flattens every triangle primitive in doc into one mesh.
// The mesh has texture coordinates only if every primitive provides them.
func (l *GLTFLoader) FromDocument(doc *gltf.Document) (*Mesh, error) {
	mesh := NewMesh("")
	mesh.HasTexCoords = true

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Triangles) == 0 {
		mesh.HasTexCoords = false
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// primitive is the vertex data of one triangle-list primitive.
type primitive struct {
	positions [][3]float32
	uvs       [][2]float32 // nil unless there is one per position
	indices   []uint32
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*primitive, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	var (
		p   primitive
		err error
	)
	if p.positions, err = modeler.ReadPosition(doc, doc.Accessors[posIdx], nil); err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if p.uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil); err != nil {
			return nil, fmt.Errorf("read texture coordinates: %w", err)
		}
	}
	if len(p.uvs) < len(p.positions) {
		p.uvs = nil
	}

	if prim.Indices == nil {
		// Unindexed: every three positions form a triangle.
		p.indices = make([]uint32, len(p.positions))
		for i := range p.indices {
			p.indices[i] = uint32(i)
		}
		return &p, nil
	}
	if p.indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
		return nil, fmt.Errorf("read indices: %w", err)
	}
	return &p, nil
}

// processMesh appends the triangles of every triangle-list primitive in m.
// Points, lines and strips are skipped.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		p, err := readPrimitive(doc, prim)
		if err != nil {
			return err
		}
		if p == nil {
			continue
		}
		if p.uvs == nil {
			mesh.HasTexCoords = false
		}

		for i := 0; i+2 < len(p.indices); i += 3 {
			var tri Triangle
			for k, idx := range p.indices[i : i+3] {
				if int(idx) >= len(p.positions) {
					return fmt.Errorf("index %d out of range (%d vertices)", idx, len(p.positions))
				}
				pos := p.positions[idx]
				tri.P[k] = math3d.V3(float64(pos[0]), float64(pos[1]), float64(pos[2]))
				if p.uvs != nil {
					tri.UV[k] = l.texCoord(p.uvs[idx])
				}
			}
			mesh.AddTriangle(tri)
		}
	}
	return nil
}

func (l *GLTFLoader) texCoord(uv [2]float32) math3d.Vec2 {
	u, v := float64(uv[0]), float64(uv[1])
	if l.FlipV {
		v = 1 - v
	}
	return math3d.V2(u, v)
}

// LoadGLTFWithTextures loads a glTF or GLB file plus the encoded bytes of
// its images, keyed by image index. Images that are neither embedded nor
// readable next to the file are left out.
func LoadGLTFWithTextures(path string) (*Mesh, map[int][]byte, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := NewGLTFLoader().FromDocument(doc)
	if err != nil {
		return nil, nil, err
	}
	mesh.Name = filepath.Base(path)

	textures := make(map[int][]byte, len(doc.Images))
	for i, img := range doc.Images {
		if data := imageData(doc, img, filepath.Dir(path)); len(data) > 0 {
			textures[i] = data
		}
	}
	return mesh, textures, nil
}

// imageData returns the encoded bytes of img from its buffer view or from
// a file relative to dir.
func imageData(doc *gltf.Document, img *gltf.Image, dir string) []byte {
	if img.BufferView != nil {
		bv := doc.BufferViews[*img.BufferView]
		data := doc.Buffers[bv.Buffer].Data
		if end := bv.ByteOffset + bv.ByteLength; data != nil && end <= len(data) {
			return data[bv.ByteOffset:end]
		}
		return nil
	}
	if img.URI == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(dir, img.URI))
	if err != nil {
		return nil
	}
	return data
}

// LoadGLBWithTexture loads a glTF or GLB file and decodes its first usable
// image. The image is nil when the file carries none.
func LoadGLBWithTexture(path string) (*Mesh, image.Image, error) {
	mesh, textures, err := LoadGLTFWithTextures(path)
	if err != nil {
		return nil, nil, err
	}

	// Lowest image index first, so the choice is stable.
	for _, i := range slices.Sorted(maps.Keys(textures)) {
		if img, _, err := image.Decode(bytes.NewReader(textures[i])); err == nil {
			return mesh, img, nil
		}
	}
	return mesh, nil, nil
}
