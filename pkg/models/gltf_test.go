package models

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestExportGLBRoundTrip(t *testing.T) {
	surf := NewSurface(func(x, y float64) float64 { return x * y }, 4)
	path := filepath.Join(t.TempDir(), "surface.glb")

	if err := ExportGLB(surf.Mesh, path); err != nil {
		t.Fatalf("ExportGLB: %v", err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("reopening exported file: %v", err)
	}

	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatalf("document has %d meshes, want 1 with 1 primitive", len(doc.Meshes))
	}
	prim := doc.Meshes[0].Primitives[0]

	pos, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		t.Fatal("primitive has no position attribute")
	}
	if got, want := doc.Accessors[pos].Count, surf.VertexCount(); got != want {
		t.Errorf("position count = %d, want %d", got, want)
	}
	norm, ok := prim.Attributes[gltf.NORMAL]
	if !ok {
		t.Fatal("primitive has no normal attribute")
	}
	if got, want := doc.Accessors[norm].Count, surf.VertexCount(); got != want {
		t.Errorf("normal count = %d, want %d", got, want)
	}
	if prim.Indices == nil {
		t.Fatal("primitive has no index accessor")
	}
	if got, want := doc.Accessors[*prim.Indices].Count, len(surf.Index); got != want {
		t.Errorf("index count = %d, want %d", got, want)
	}
	if len(doc.Scenes) == 0 || len(doc.Scenes[0].Nodes) == 0 {
		t.Error("exported mesh is not reachable from the default scene")
	}
}

func TestExportGLBEmptyMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.glb")
	if err := ExportGLB(NewMesh(), path); err == nil {
		t.Error("exported an empty mesh without error")
	}
}
