// Package layout computes panel geometry for tiled video walls.
//
// A wall of rows × columns panels is laid out in physical units, with a
// bezel gap between neighbouring panels (tiled LCD) or none (direct-view
// LED). Every rectangle is also returned scaled to a normalised drawing
// width so a renderer can draw the wall without knowing its real size.
package layout

import (
	"fmt"
	"math"

	"github.com/avforge/configurator/pkg/models"
)

// OutletKind is the service an outlet marker provides.
type OutletKind string

const (
	OutletPower OutletKind = "power"
	OutletData  OutletKind = "data"
)

// Outlet is a power or data point at absolute wall coordinates.
type Outlet struct {
	Kind  OutletKind `json:"kind"`
	Label string     `json:"label,omitempty"`
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
}

// Wall is the input to Compute.
type Wall struct {
	Width       float64                `json:"width"`
	Height      float64                `json:"height"`
	Rows        int                    `json:"rows"`
	Columns     int                    `json:"columns"`
	Bezel       float64                `json:"bezel"`
	Technology  models.PanelTechnology `json:"technology,omitempty"`
	TargetWidth float64                `json:"target_width"`
	Outlets     []Outlet               `json:"outlets,omitempty"`
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) scale(s float64) Rect {
	return Rect{X: r.X * s, Y: r.Y * s, Width: r.Width * s, Height: r.Height * s}
}

// Panel is one cell of the grid.
type Panel struct {
	Row      int  `json:"row"`
	Column   int  `json:"column"`
	Physical Rect `json:"physical"`
	Drawn    Rect `json:"drawn"`
}

// Marker is an outlet placed on the drawing.
type Marker struct {
	Outlet
	DrawnX float64 `json:"drawn_x"`
	DrawnY float64 `json:"drawn_y"`
}

// Geometry is the computed layout. Panels are in row-major order.
type Geometry struct {
	Scale       float64  `json:"scale"`
	PanelWidth  float64  `json:"panel_width"`
	PanelHeight float64  `json:"panel_height"`
	Panels      []Panel  `json:"panels"`
	Markers     []Marker `json:"markers"`
}

// Compute lays out w. Degenerate input is rejected with models.ErrPrecondition.
func Compute(w Wall) (Geometry, error) {
	if err := w.validate(); err != nil {
		return Geometry{}, err
	}

	scale := w.TargetWidth / w.Width
	pw := (w.Width - float64(w.Columns-1)*w.Bezel) / float64(w.Columns)
	ph := (w.Height - float64(w.Rows-1)*w.Bezel) / float64(w.Rows)

	g := Geometry{
		Scale:       scale,
		PanelWidth:  pw,
		PanelHeight: ph,
		Panels:      make([]Panel, 0, w.Rows*w.Columns),
		Markers:     make([]Marker, 0, len(w.Outlets)),
	}
	for r := 0; r < w.Rows; r++ {
		for c := 0; c < w.Columns; c++ {
			phys := Rect{
				X:      float64(c) * (pw + w.Bezel),
				Y:      float64(r) * (ph + w.Bezel),
				Width:  pw,
				Height: ph,
			}
			g.Panels = append(g.Panels, Panel{Row: r, Column: c, Physical: phys, Drawn: phys.scale(scale)})
		}
	}
	for _, o := range w.Outlets {
		g.Markers = append(g.Markers, Marker{Outlet: o, DrawnX: o.X * scale, DrawnY: o.Y * scale})
	}
	return g, nil
}

// maxPanels bounds the grid size Compute will lay out.
const maxPanels = 10000

func (w Wall) validate() error {
	switch {
	case w.Rows < 1 || w.Columns < 1:
		return fmt.Errorf("%w: grid %dx%d needs at least one row and column", models.ErrPrecondition, w.Rows, w.Columns)
	case w.Rows > maxPanels/w.Columns:
		return fmt.Errorf("%w: grid %dx%d exceeds %d panels", models.ErrPrecondition, w.Rows, w.Columns, maxPanels)
	case !positive(w.Width) || !positive(w.Height):
		return fmt.Errorf("%w: wall %.3gx%.3g must have positive dimensions", models.ErrPrecondition, w.Width, w.Height)
	case !positive(w.TargetWidth):
		return fmt.Errorf("%w: target width %.3g must be positive", models.ErrPrecondition, w.TargetWidth)
	case w.Bezel < 0 || math.IsNaN(w.Bezel) || math.IsInf(w.Bezel, 0):
		return fmt.Errorf("%w: invalid bezel %.3g", models.ErrPrecondition, w.Bezel)
	case w.Technology == models.PanelDVLED && w.Bezel > 0:
		return fmt.Errorf("%w: direct-view LED walls are seamless, got bezel %.3g", models.ErrPrecondition, w.Bezel)
	case w.Technology != "" && !w.Technology.Valid():
		return fmt.Errorf("%w: unknown panel technology %q", models.ErrPrecondition, w.Technology)
	}
	if float64(w.Columns-1)*w.Bezel >= w.Width || float64(w.Rows-1)*w.Bezel >= w.Height {
		return fmt.Errorf("%w: bezels consume the whole wall", models.ErrPrecondition)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// FromVideoWall builds a Wall from a room's video-wall sub-specification.
func FromVideoWall(spec models.VideoWallSpec, targetWidth float64, outlets []Outlet) Wall {
	return Wall{
		Width:       spec.Width,
		Height:      spec.Height,
		Rows:        spec.Rows,
		Columns:     spec.Columns,
		Bezel:       spec.BezelWidth,
		Technology:  spec.PanelTechnology,
		TargetWidth: targetWidth,
		Outlets:     append([]Outlet(nil), outlets...),
	}
}
