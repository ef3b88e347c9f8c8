package gekko

import (
	"math/bits"

	"github.com/go-gl/mathgl/mgl32"
)

// TransformComponent is the world-space transform. For entities without a
// Parent it is authoritative; for children it is derived by the hierarchy.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// LocalTransformComponent is relative to the Parent's world transform.
type LocalTransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

type Parent struct {
	Entity EntityId
}

func NewTransform(position mgl32.Vec3) TransformComponent {
	return TransformComponent{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func NewLocalTransform(position mgl32.Vec3) LocalTransformComponent {
	return LocalTransformComponent{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

type VisibilityComponent struct {
	Visible bool
}

// NotShadowCaster keeps an entity out of shadow passes.
type NotShadowCaster struct{}

// CameraComponent marks a viewpoint.
type CameraComponent struct {
	Fov  float32
	Near float32
	Far  float32
}

func NewCamera() CameraComponent {
	return CameraComponent{Fov: 60, Near: 0.1, Far: 1000}
}

// RenderLayers is a bit mask of the layers an entity is drawn on. Renderers
// draw an entity for a view when the masks intersect.
type RenderLayers struct {
	Mask uint32
}

const DefaultRenderLayer = 0

func LayerMask(layers ...int) RenderLayers {
	var mask uint32
	for _, layer := range layers {
		mask |= 1 << uint(layer)
	}
	return RenderLayers{Mask: mask}
}

func (r RenderLayers) With(layer int) RenderLayers {
	r.Mask |= 1 << uint(layer)
	return r
}

func (r RenderLayers) Intersects(other RenderLayers) bool {
	return r.Mask&other.Mask != 0
}

func (r RenderLayers) Count() int {
	return bits.OnesCount32(r.Mask)
}

// Layers lists the set layers in ascending order.
func (r RenderLayers) Layers() []int {
	var layers []int
	for mask := r.Mask; mask != 0; mask &= mask - 1 {
		layers = append(layers, bits.TrailingZeros32(mask))
	}
	return layers
}
