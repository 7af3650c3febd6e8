package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/tesseract/pkg/math3d"
)

// SaveGLB writes m as a binary glTF file with one mesh node. Triangles and
// lines are grouped into one primitive per material; all primitives share a
// single position accessor.
func SaveGLB(m *Mesh, path string) error {
	doc := gltf.NewDocument()

	for _, mat := range m.Materials {
		color := mat.BaseColor
		gm := &gltf.Material{
			Name:        mat.Name,
			DoubleSided: mat.Blend,
			AlphaMode:   gltf.AlphaOpaque,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &color,
				MetallicFactor:  gltf.Float(0),
				RoughnessFactor: gltf.Float(1),
			},
		}
		if mat.Blend {
			gm.AlphaMode = gltf.AlphaBlend
		}
		doc.Materials = append(doc.Materials, gm)
	}

	positions := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	posIdx := modeler.WritePosition(doc, positions)

	tris := make([][]uint32, len(m.Materials))
	for _, f := range m.Faces {
		if m.GetMaterial(f.Material) == nil {
			return fmt.Errorf("face references material %d of %d", f.Material, len(m.Materials))
		}
		tris[f.Material] = append(tris[f.Material], uint32(f.V[0]), uint32(f.V[1]), uint32(f.V[2]))
	}
	lines := make([][]uint32, len(m.Materials))
	for _, l := range m.Lines {
		if m.GetMaterial(l.Material) == nil {
			return fmt.Errorf("line references material %d of %d", l.Material, len(m.Materials))
		}
		lines[l.Material] = append(lines[l.Material], uint32(l.V[0]), uint32(l.V[1]))
	}

	primitive := func(mode gltf.PrimitiveMode, mat int, indices []uint32) *gltf.Primitive {
		return &gltf.Primitive{
			Mode:       mode,
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: posIdx},
			Material:   gltf.Index(mat),
		}
	}

	mesh := &gltf.Mesh{Name: m.Name}
	for mat := range m.Materials {
		if len(tris[mat]) > 0 {
			mesh.Primitives = append(mesh.Primitives, primitive(gltf.PrimitiveTriangles, mat, tris[mat]))
		}
		if len(lines[mat]) > 0 {
			mesh.Primitives = append(mesh.Primitives, primitive(gltf.PrimitiveLines, mat, lines[mat]))
		}
	}
	if len(mesh.Primitives) == 0 {
		return fmt.Errorf("mesh %q has no geometry", m.Name)
	}

	doc.Meshes = []*gltf.Mesh{mesh}
	doc.Nodes = []*gltf.Node{{Name: m.Name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

// LoadGLB loads the triangles and lines of every mesh in a glTF or GLB file.
// Primitives sharing a position accessor share vertices.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for i, gm := range doc.Materials {
		mat := Material{Name: gm.Name, BaseColor: [4]float64{1, 1, 1, 1}, Blend: gm.AlphaMode == gltf.AlphaBlend}
		if gm.Name == "" {
			mat.Name = fmt.Sprintf("material %d", i)
		}
		if pbr := gm.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			mat.BaseColor = *pbr.BaseColorFactor
		}
		mesh.AddMaterial(mat)
	}

	bases := make(map[int]int)
	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if err := loadPrimitive(doc, prim, mesh, bases); err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func loadPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh, bases map[int]int) error {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != gltf.PrimitiveLines {
		return nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}

	base, seen := bases[posIdx]
	if !seen {
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}
		base = len(mesh.Vertices)
		for _, p := range positions {
			mesh.AddVertex(math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
		}
		bases[posIdx] = base
	}

	var indices []uint32
	if prim.Indices != nil {
		var err error
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		count := doc.Accessors[posIdx].Count
		indices = make([]uint32, count)
		for i := range count {
			indices[i] = uint32(i)
		}
	}

	mat := -1
	if prim.Material != nil {
		mat = *prim.Material
	}

	if prim.Mode == gltf.PrimitiveLines {
		for i := 0; i+1 < len(indices); i += 2 {
			mesh.Lines = append(mesh.Lines, Line{
				V:        [2]int{base + int(indices[i]), base + int(indices[i+1])},
				Material: mat,
			})
		}
		return nil
	}
	for i := 0; i+2 < len(indices); i += 3 {
		mesh.Faces = append(mesh.Faces, Face{
			V:        [3]int{base + int(indices[i]), base + int(indices[i+1]), base + int(indices[i+2])},
			Material: mat,
		})
	}
	return nil
}
