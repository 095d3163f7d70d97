package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/objstat/internal/config"
	"github.com/Faultbox/objstat/pkg/obj"
)

type report struct {
	Positions   int           `yaml:"positions"`
	Normals     int           `yaml:"normals"`
	Texcoords   int           `yaml:"texcoords"`
	Triangles   int           `yaml:"triangles"`
	Objects     []string      `yaml:"objects,omitempty"`
	Groups      []string      `yaml:"groups,omitempty"`
	Bounds      *boundsReport `yaml:"bounds,omitempty"`
	SurfaceArea *float32      `yaml:"surface_area,omitempty"`
}

type boundsReport struct {
	Min [3]float32 `yaml:"min,flow"`
	Max [3]float32 `yaml:"max,flow"`
}

func newReport(m *obj.Mesh, withBounds bool) report {
	r := report{
		Positions: len(m.Positions),
		Normals:   len(m.Normals),
		Texcoords: len(m.Texcoords),
		Triangles: len(m.Triangles),
		Objects:   m.Objects,
		Groups:    m.Groups,
	}
	if withBounds {
		if b := m.Bounds(); !b.IsEmpty() {
			r.Bounds = &boundsReport{Min: b.Min, Max: b.Max}
		}
		area := m.SurfaceArea()
		r.SurfaceArea = &area
	}
	return r
}

// writeReport prints mesh statistics in the configured format.
func writeReport(w io.Writer, m *obj.Mesh, out config.OutputConfig) error {
	r := newReport(m, out.Bounds)

	if out.Format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}

	if _, err := fmt.Fprintf(w, "%d positions, %d normals, %d texcoords, %d triangles\n",
		r.Positions, r.Normals, r.Texcoords, r.Triangles); err != nil {
		return err
	}
	if r.Bounds != nil {
		if _, err := fmt.Fprintf(w, "bounds: min %v max %v\n", r.Bounds.Min, r.Bounds.Max); err != nil {
			return err
		}
	}
	if r.SurfaceArea != nil {
		if _, err := fmt.Fprintf(w, "surface area: %g\n", *r.SurfaceArea); err != nil {
			return err
		}
	}
	return nil
}
