package models

import (
	"fmt"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ExportGLB writes the mesh's object-space geometry as a glTF file so a
// plot can be taken into external 3D tooling. A .glb extension selects
// the binary container, anything else the JSON form.
func ExportGLB(m *Mesh, path string) error {
	if len(m.Verts) == 0 || len(m.Index) == 0 {
		return fmt.Errorf("mesh has no triangles to export")
	}

	positions := make([][3]float32, len(m.Verts))
	for i, v := range m.Verts {
		positions[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	indices := make([]uint32, len(m.Index))
	for i, idx := range m.Index {
		indices[i] = uint32(idx)
	}

	doc := gltf.NewDocument()
	attrs := map[string]int{
		gltf.POSITION: modeler.WritePosition(doc, positions),
	}
	if len(m.Normals) == len(m.Verts) {
		normals := make([][3]float32, len(m.Normals))
		for i, n := range m.Normals {
			normals[i] = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
		}
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, normals)
	}
	idxAccessor := modeler.WriteIndices(doc, indices)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "surface",
		Primitives: []*gltf.Primitive{{
			Indices:    &idxAccessor,
			Attributes: attrs,
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: "surface",
		Mesh: gltf.Index(len(doc.Meshes) - 1),
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)

	if strings.HasSuffix(strings.ToLower(path), ".glb") {
		return gltf.SaveBinary(doc, path)
	}
	return gltf.Save(doc, path)
}
