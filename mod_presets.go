package gekko

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// GridName labels a grid so presets can refer to it.
type GridName struct {
	Name string
}

// GridPreset is a set of grids as stored in a YAML file.
type GridPreset struct {
	Grids []GridPresetEntry `yaml:"grids"`
}

type GridPresetEntry struct {
	Name         string          `yaml:"name,omitempty"`
	Parent       string          `yaml:"parent,omitempty"`
	Spacing      float32         `yaml:"spacing"`
	Count        int             `yaml:"count"`
	Color        *Color          `yaml:"color,omitempty"`
	AlphaMode    *AlphaMode      `yaml:"alpha_mode,omitempty"`
	Position     mgl32.Vec3      `yaml:"position,flow,omitempty"`
	RenderLayers []int           `yaml:"render_layers,flow,omitempty"`
	SubGrid      *SubGridPreset  `yaml:"sub_grid,omitempty"`
	Axis         *AxisPreset     `yaml:"axis,omitempty"`
	Tracking     *TrackingPreset `yaml:"tracking,omitempty"`
}

type SubGridPreset struct {
	Count int    `yaml:"count"`
	Color *Color `yaml:"color,omitempty"`
}

type AxisPreset struct {
	X *Color `yaml:"x,omitempty"`
	Y *Color `yaml:"y,omitempty"`
	Z *Color `yaml:"z,omitempty"`
}

type TrackingPreset struct {
	Alignment GridAlignment `yaml:"alignment"`
	Offset    float32       `yaml:"offset,omitempty"`
}

// LoadGridPreset reads and validates a preset file.
func LoadGridPreset(path string) (*GridPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grid preset: %w", err)
	}
	preset, err := ParseGridPreset(data)
	if err != nil {
		return nil, fmt.Errorf("loading grid preset from %s: %w", path, err)
	}
	return preset, nil
}

func ParseGridPreset(data []byte) (*GridPreset, error) {
	var preset GridPreset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("decoding grid preset: %w", err)
	}
	if err := preset.Validate(); err != nil {
		return nil, err
	}
	return &preset, nil
}

// SaveGridPreset writes the preset, creating the parent directory if needed.
func SaveGridPreset(path string, preset *GridPreset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(preset)
	if err != nil {
		return fmt.Errorf("encoding grid preset: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects entries the mesher cannot draw and parents that do not
// name another entry, including parent chains that loop back on themselves.
func (p *GridPreset) Validate() error {
	names := make(map[string]int)
	for i, entry := range p.Grids {
		if entry.Name == "" {
			continue
		}
		if prev, ok := names[entry.Name]; ok {
			return fmt.Errorf("grid %d: name %q already used by grid %d", i, entry.Name, prev)
		}
		names[entry.Name] = i
	}

	for i, entry := range p.Grids {
		if entry.Spacing <= 0 {
			return fmt.Errorf("grid %d: spacing must be positive, got %g", i, entry.Spacing)
		}
		if entry.Count < 0 {
			return fmt.Errorf("grid %d: negative count %d", i, entry.Count)
		}
		if entry.SubGrid != nil && entry.SubGrid.Count < 0 {
			return fmt.Errorf("grid %d: negative sub-grid count %d", i, entry.SubGrid.Count)
		}
		for _, layer := range entry.RenderLayers {
			if layer < 0 || layer > 31 {
				return fmt.Errorf("grid %d: render layer %d out of range", i, layer)
			}
		}
		if entry.Parent != "" {
			parent, ok := names[entry.Parent]
			if !ok {
				return fmt.Errorf("grid %d: unknown parent %q", i, entry.Parent)
			}
			if parent == i {
				return fmt.Errorf("grid %d: parented to itself", i)
			}
		}
	}

	for i := range p.Grids {
		visited := map[int]bool{i: true}
		for at := i; p.Grids[at].Parent != ""; {
			at = names[p.Grids[at].Parent]
			if visited[at] {
				return fmt.Errorf("grid %d: parent cycle through %q", i, p.Grids[at].Name)
			}
			visited[at] = true
		}
	}
	return nil
}

// Components returns what an entity spawned from the entry carries, minus
// its Parent.
func (e GridPresetEntry) Components() []any {
	grid := DefaultGrid()
	grid.Spacing = e.Spacing
	grid.Count = e.Count
	if e.Color != nil {
		grid.Color = *e.Color
	}
	if e.AlphaMode != nil {
		grid.AlphaMode = *e.AlphaMode
	}

	components := []any{
		grid,
		NewTransform(e.Position),
		NewLocalTransform(e.Position),
		VisibilityComponent{Visible: true},
	}
	if e.Name != "" {
		components = append(components, GridName{Name: e.Name})
	}
	if len(e.RenderLayers) > 0 {
		components = append(components, LayerMask(e.RenderLayers...))
	}
	if e.SubGrid != nil {
		sub := DefaultSubGrid()
		sub.Count = e.SubGrid.Count
		if e.SubGrid.Color != nil {
			sub.Color = *e.SubGrid.Color
		}
		components = append(components, sub)
	}
	if e.Axis != nil {
		axis := NewEmptyGridAxis()
		axis.SetColor(AlignX, e.Axis.X)
		axis.SetColor(AlignY, e.Axis.Y)
		axis.SetColor(AlignZ, e.Axis.Z)
		components = append(components, axis)
	}
	if e.Tracking != nil {
		components = append(components, TrackedGrid{
			Alignment: e.Tracking.Alignment,
			Offset:    e.Tracking.Offset,
		})
	}
	return components
}

// SpawnGridPreset queues one entity per entry, in order, and parents them
// by name. The preset is expected to be valid.
func SpawnGridPreset(cmd *Commands, preset *GridPreset) []EntityId {
	byName := make(map[string]EntityId)
	spawned := make([]EntityId, 0, len(preset.Grids))

	for _, entry := range preset.Grids {
		eid := cmd.AddEntity(entry.Components()...)
		if entry.Name != "" {
			byName[entry.Name] = eid
		}
		spawned = append(spawned, eid)
	}

	// Second pass: restore hierarchy
	for i, entry := range preset.Grids {
		if entry.Parent == "" {
			continue
		}
		if parent, ok := byName[entry.Parent]; ok {
			cmd.AddComponents(spawned[i], Parent{Entity: parent})
		}
	}

	cmd.Logger().Infof("spawned %d grids from preset", len(spawned))
	return spawned
}

// CaptureGridPreset describes every grid in the world, ordered by entity id.
// Tracking overrides refer to live entities and are not captured.
func CaptureGridPreset(cmd *Commands) *GridPreset {
	var grids []EntityId
	MakeQuery1[Grid](cmd).Map(func(eid EntityId, grid *Grid) bool {
		grids = append(grids, eid)
		return true
	})
	slices.Sort(grids)

	preset := &GridPreset{}
	for _, eid := range grids {
		grid, _ := GetComponent[Grid](cmd, eid)
		color, alphaMode := grid.Color, grid.AlphaMode

		entry := GridPresetEntry{
			Spacing:   grid.Spacing,
			Count:     grid.Count,
			Color:     &color,
			AlphaMode: &alphaMode,
		}
		if name, ok := GetComponent[GridName](cmd, eid); ok {
			entry.Name = name.Name
		}
		if parent, ok := GetComponent[Parent](cmd, eid); ok {
			if name, ok := GetComponent[GridName](cmd, parent.Entity); ok {
				entry.Parent = name.Name
			}
		}
		if local, ok := GetComponent[LocalTransformComponent](cmd, eid); ok {
			entry.Position = local.Position
		} else if world, ok := GetComponent[TransformComponent](cmd, eid); ok {
			entry.Position = world.Position
		}
		if layers, ok := GetComponent[RenderLayers](cmd, eid); ok {
			entry.RenderLayers = layers.Layers()
		}
		if sub, ok := GetComponent[SubGrid](cmd, eid); ok {
			subColor := sub.Color
			entry.SubGrid = &SubGridPreset{Count: sub.Count, Color: &subColor}
		}
		if axis, ok := GetComponent[GridAxis](cmd, eid); ok {
			entry.Axis = &AxisPreset{}
			if c, ok := axis.ColorFor(AlignX); ok {
				entry.Axis.X = &c
			}
			if c, ok := axis.ColorFor(AlignY); ok {
				entry.Axis.Y = &c
			}
			if c, ok := axis.ColorFor(AlignZ); ok {
				entry.Axis.Z = &c
			}
		}
		if tracked, ok := GetComponent[TrackedGrid](cmd, eid); ok {
			entry.Tracking = &TrackingPreset{Alignment: tracked.Alignment, Offset: tracked.Offset}
		}

		preset.Grids = append(preset.Grids, entry)
	}
	return preset
}

func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ColorHex(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

func (m AlphaMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m *AlphaMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	for candidate := AlphaOpaque; candidate <= AlphaMultiply; candidate++ {
		if candidate.String() == s {
			*m = candidate
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown alpha mode %q", value.Line, s)
}

func (a GridAlignment) MarshalYAML() (any, error) {
	return a.String(), nil
}

func (a *GridAlignment) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	for _, candidate := range []GridAlignment{AlignX, AlignY, AlignZ} {
		if candidate.String() == s {
			*a = candidate
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown grid alignment %q", value.Line, s)
}
