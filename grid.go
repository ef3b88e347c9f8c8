package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultGridAlpha is the alpha used by the default grid colours.
const DefaultGridAlpha = 0.5

// SubGridVerticalOffset pushes sub-grid lines slightly below the main grid
// along its normal so coplanar lines do not z-fight. The sub-grid child's
// transform undoes it, keeping the child's own bounds centred.
const SubGridVerticalOffset float32 = -0.001

// AlphaMode selects how a line material blends with what is behind it.
type AlphaMode uint8

const (
	AlphaOpaque AlphaMode = iota
	AlphaBlend
	AlphaPremultiplied
	AlphaAdd
	AlphaMultiply
)

func (m AlphaMode) String() string {
	switch m {
	case AlphaOpaque:
		return "opaque"
	case AlphaBlend:
		return "blend"
	case AlphaPremultiplied:
		return "premultiplied"
	case AlphaAdd:
		return "add"
	case AlphaMultiply:
		return "multiply"
	}
	return "unknown"
}

// Grid is a square of evenly spaced lines on a plane. Count lines are drawn
// on each side of the origin along both in-plane directions.
type Grid struct {
	Spacing   float32
	Count     int
	Color     Color
	AlphaMode AlphaMode
}

func DefaultGrid() Grid {
	return Grid{
		Spacing:   0.25,
		Count:     8,
		Color:     ColorSilver.WithAlpha(DefaultGridAlpha),
		AlphaMode: AlphaBlend,
	}
}

// HalfSize is the distance from the grid's centre to its outermost line.
func (g Grid) HalfSize() float32 {
	return float32(g.Count) * g.Spacing
}

// SubGrid adds finer lines between a Grid's lines. It only has an effect on
// an entity that also has a Grid.
type SubGrid struct {
	Count int
	Color Color
}

func DefaultSubGrid() SubGrid {
	return SubGrid{
		Count: 4,
		Color: ColorGray.WithAlpha(DefaultGridAlpha),
	}
}

// GridAlignment names the axis a grid's plane is normal to. The zero value
// is Y, a floor.
type GridAlignment uint8

const (
	AlignY GridAlignment = iota
	AlignX
	AlignZ
)

func (a GridAlignment) String() string {
	switch a {
	case AlignX:
		return "x"
	case AlignY:
		return "y"
	case AlignZ:
		return "z"
	}
	return "unknown"
}

// AxisVec3 is the unit normal of the alignment.
func (a GridAlignment) AxisVec3() mgl32.Vec3 {
	switch a {
	case AlignX:
		return mgl32.Vec3{1, 0, 0}
	case AlignZ:
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{0, 1, 0}
}

// InvertedAxisVec3 is one minus the normal: it zeroes the normal coordinate
// of a vector it is multiplied with.
func (a GridAlignment) InvertedAxisVec3() mgl32.Vec3 {
	return mgl32.Vec3{1, 1, 1}.Sub(a.AxisVec3())
}

// Shift rotates the coordinates of a Y-aligned vertex into the alignment's
// plane. Y is the identity.
func (a GridAlignment) Shift(v mgl32.Vec3) mgl32.Vec3 {
	switch a {
	case AlignX:
		return mgl32.Vec3{v.Y(), v.Z(), v.X()}
	case AlignZ:
		return mgl32.Vec3{v.Z(), v.X(), v.Y()}
	}
	return v
}

// GridAxis overrides the colour of individual axis lines. A nil axis keeps
// the default look.
type GridAxis struct {
	X *Color
	Y *Color
	Z *Color
}

// AxisColor pairs an alignment with the colour its axis line is drawn in.
type AxisColor struct {
	Alignment GridAlignment
	Color     Color
}

// NewEmptyGridAxis overrides nothing. Useful as a target for later mutation.
func NewEmptyGridAxis() GridAxis {
	return GridAxis{}
}

// NewRGBGridAxis colours X red, Y green and Z blue.
func NewRGBGridAxis() GridAxis {
	red, green, blue := ColorRed, ColorGreen, ColorBlue
	return GridAxis{X: &red, Y: &green, Z: &blue}
}

// DefaultAxes are drawn in the grid's colour when not overridden. Y is
// left out so floor grids do not grow a vertical post.
func DefaultAxes() []GridAlignment {
	return []GridAlignment{AlignX, AlignZ}
}

// CreateAxis splits the axes into those with an explicit colour and the
// default axes without one. Y never appears in unused.
func (a GridAxis) CreateAxis() (used []AxisColor, unused []GridAlignment) {
	if a.X != nil {
		used = append(used, AxisColor{Alignment: AlignX, Color: *a.X})
	} else {
		unused = append(unused, AlignX)
	}
	if a.Y != nil {
		used = append(used, AxisColor{Alignment: AlignY, Color: *a.Y})
	}
	if a.Z != nil {
		used = append(used, AxisColor{Alignment: AlignZ, Color: *a.Z})
	} else {
		unused = append(unused, AlignZ)
	}
	return used, unused
}

// ColorFor returns the override for an alignment, if one is set.
func (a GridAxis) ColorFor(alignment GridAlignment) (Color, bool) {
	var c *Color
	switch alignment {
	case AlignX:
		c = a.X
	case AlignY:
		c = a.Y
	case AlignZ:
		c = a.Z
	}
	if c == nil {
		return Color{}, false
	}
	return *c, true
}

// SetColor sets or clears (nil) the override for one axis.
func (a *GridAxis) SetColor(alignment GridAlignment, c *Color) {
	if c != nil {
		copied := *c
		c = &copied
	}
	switch alignment {
	case AlignX:
		a.X = c
	case AlignY:
		a.Y = c
	case AlignZ:
		a.Z = c
	}
}

// TrackedGrid makes a grid follow a tracked entity, snapping to whole cells.
type TrackedGrid struct {
	// Alignment is the grid's normal; the tracked position's coordinate on
	// this axis is dropped.
	Alignment GridAlignment
	// Offset is added along the normal after snapping.
	Offset float32
	// TrackingOverride follows this entity instead of the module's tracked
	// marker.
	TrackingOverride *EntityId
}

// TrackEntity returns a copy of the tracked grid following the given entity.
func (t TrackedGrid) TrackEntity(entity EntityId) TrackedGrid {
	t.TrackingOverride = &entity
	return t
}

// Markers on the entities the grid systems generate.
type GridChild struct{}
type SubGridChild struct{}
type GridAxisChild struct{}
