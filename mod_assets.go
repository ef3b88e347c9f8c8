package gekko

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type AssetId string

type PrimitiveTopology uint32

const (
	TopologyLineList PrimitiveTopology = iota
)

func (t PrimitiveTopology) String() string {
	switch t {
	case TopologyLineList:
		return "line-list"
	}
	return "unknown"
}

// AssetServer is an append-only pool of meshes and materials. Entries are
// never mutated or reclaimed once added.
type AssetServer struct {
	meshes    map[AssetId]MeshAsset
	materials map[AssetId]MaterialAsset
}

type AssetServerModule struct{}

type Mesh struct {
	assetId AssetId
}

func (m Mesh) Id() AssetId { return m.assetId }

type Material struct {
	assetId AssetId
}

func (m Material) Id() AssetId { return m.assetId }

// MeshComponent and MaterialComponent attach assets to a renderable entity.
type MeshComponent struct {
	Mesh Mesh
}

type MaterialComponent struct {
	Material Material
}

type MeshAsset struct {
	topology  PrimitiveTopology
	positions []mgl32.Vec3
}

func NewLineListMesh(positions []mgl32.Vec3) MeshAsset {
	return MeshAsset{
		topology:  TopologyLineList,
		positions: positions,
	}
}

func (m MeshAsset) Topology() PrimitiveTopology { return m.topology }
func (m MeshAsset) Positions() []mgl32.Vec3     { return m.positions }

// MaterialAsset pairs a shader with the parameters it is drawn with. Params
// holds one of the material structs, e.g. SimpleLineMaterial.
type MaterialAsset struct {
	shaderName string
	params     any
}

func NewMaterialAsset(shaderName string, params any) MaterialAsset {
	return MaterialAsset{
		shaderName: shaderName,
		params:     params,
	}
}

func (m MaterialAsset) ShaderName() string { return m.shaderName }
func (m MaterialAsset) Params() any        { return m.params }

func NewAssetServer() *AssetServer {
	return &AssetServer{
		meshes:    make(map[AssetId]MeshAsset),
		materials: make(map[AssetId]MaterialAsset),
	}
}

// AddMesh stores a copy of the vertex data and returns its handle.
func (server *AssetServer) AddMesh(mesh MeshAsset) Mesh {
	id := makeAssetId()

	mesh.positions = slices.Clone(mesh.positions)
	server.meshes[id] = mesh

	return Mesh{
		assetId: id,
	}
}

func (server *AssetServer) AddMaterial(material MaterialAsset) Material {
	id := makeAssetId()

	server.materials[id] = material

	return Material{
		assetId: id,
	}
}

func (server *AssetServer) MeshAsset(handle Mesh) (MeshAsset, bool) {
	mesh, ok := server.meshes[handle.assetId]
	return mesh, ok
}

func (server *AssetServer) MaterialAsset(handle Material) (MaterialAsset, bool) {
	material, ok := server.materials[handle.assetId]
	return material, ok
}

func (server *AssetServer) MeshCount() int {
	return len(server.meshes)
}

func (server *AssetServer) MaterialCount() int {
	return len(server.materials)
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(NewAssetServer())
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
