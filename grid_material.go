package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Shaders the line materials are drawn with. Both render their mesh as a
// line list.
const (
	SimpleLineShader  = "debug_grid/simple_line"
	ClippedLineShader = "debug_grid/clipped_line"
)

// SimpleLineMaterial draws lines in one flat colour.
type SimpleLineMaterial struct {
	Color     LinearRgba
	AlphaMode AlphaMode
}

func NewSimpleLineMaterial(color Color, alphaMode AlphaMode) SimpleLineMaterial {
	return SimpleLineMaterial{
		Color:     color.Linear(),
		AlphaMode: alphaMode,
	}
}

// SetColor sets the colour from an sRGB value.
func (m *SimpleLineMaterial) SetColor(color Color) {
	m.Color = color.Linear()
}

func (m SimpleLineMaterial) Asset() MaterialAsset {
	return NewMaterialAsset(SimpleLineShader, m)
}

// ClippedLineMaterial fades lines out beyond Radius from the tracked point,
// which is what lets a finite grid pass for an infinite one. Lines lying on
// an axis are drawn in that axis' colour.
type ClippedLineMaterial struct {
	Color      Color
	AlphaMode  AlphaMode
	Alignment  GridAlignment
	Radius     float32
	Offset     float32
	XAxisColor Color
	YAxisColor Color
	ZAxisColor Color
}

// NewClippedLineMaterial takes the axis colours from axis where set and
// falls back to color otherwise. axis may be nil.
func NewClippedLineMaterial(color Color, alphaMode AlphaMode, alignment GridAlignment, radius, offset float32, axis *GridAxis) ClippedLineMaterial {
	m := ClippedLineMaterial{
		Color:      color,
		AlphaMode:  alphaMode,
		Alignment:  alignment,
		Radius:     radius,
		Offset:     offset,
		XAxisColor: color,
		YAxisColor: color,
		ZAxisColor: color,
	}
	if axis != nil {
		if c, ok := axis.ColorFor(AlignX); ok {
			m.XAxisColor = c
		}
		if c, ok := axis.ColorFor(AlignY); ok {
			m.YAxisColor = c
		}
		if c, ok := axis.ColorFor(AlignZ); ok {
			m.ZAxisColor = c
		}
	}
	return m
}

func (m ClippedLineMaterial) Asset() MaterialAsset {
	return NewMaterialAsset(ClippedLineShader, m)
}

// ClippedLineUniform is the GPU layout of a ClippedLineMaterial. Alignment
// carries the in-plane mask, not the normal.
type ClippedLineUniform struct {
	Color      LinearRgba
	Alignment  mgl32.Vec3
	Radius     float32
	Offset     float32
	XAxisColor LinearRgba
	YAxisColor LinearRgba
	ZAxisColor LinearRgba
}

func (m ClippedLineMaterial) Uniform() ClippedLineUniform {
	return ClippedLineUniform{
		Color:      m.Color.Linear(),
		Alignment:  m.Alignment.InvertedAxisVec3(),
		Radius:     m.Radius,
		Offset:     m.Offset,
		XAxisColor: m.XAxisColor.Linear(),
		YAxisColor: m.YAxisColor.Linear(),
		ZAxisColor: m.ZAxisColor.Linear(),
	}
}
