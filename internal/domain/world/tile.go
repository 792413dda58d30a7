package world

type TileType string

const (
	TileDeepWater    TileType = "deep_water"
	TileShallowWater TileType = "shallow_water"
	TileSand         TileType = "sand"
	TileGrass        TileType = "grass"
	TileStreet       TileType = "street"
	TileHill         TileType = "hill"
	TileMountain     TileType = "mountain"
	TileSnow         TileType = "snow"
	TileLava         TileType = "lava"
	TileWall         TileType = "wall"
)

// TileProps are the static properties of a tile type.
// Overlay types can sit on top of a base type and be destroyed back to it.
type TileProps struct {
	Walkable bool
	Overlay  bool
	Glyph    byte
}

var tileProps = map[TileType]TileProps{
	TileDeepWater:    {Walkable: false, Glyph: 'W'},
	TileShallowWater: {Walkable: true, Glyph: 'w'},
	TileSand:         {Walkable: true, Glyph: 's'},
	TileGrass:        {Walkable: true, Glyph: '.'},
	TileStreet:       {Walkable: true, Overlay: true, Glyph: '='},
	TileHill:         {Walkable: true, Overlay: true, Glyph: 'h'},
	TileMountain:     {Walkable: true, Overlay: true, Glyph: 'M'},
	TileSnow:         {Walkable: true, Overlay: true, Glyph: '*'},
	TileLava:         {Walkable: false, Glyph: 'L'},
	TileWall:         {Walkable: false, Overlay: true, Glyph: '#'},
}

func AllTileTypes() []TileType {
	return []TileType{
		TileDeepWater,
		TileShallowWater,
		TileSand,
		TileGrass,
		TileStreet,
		TileHill,
		TileMountain,
		TileSnow,
		TileLava,
		TileWall,
	}
}

func (t TileType) Valid() bool {
	_, ok := tileProps[t]
	return ok
}

func (t TileType) Props() TileProps {
	return tileProps[t]
}

func TileTypeForGlyph(g byte) (TileType, bool) {
	for _, t := range AllTileTypes() {
		if tileProps[t].Glyph == g {
			return t, true
		}
	}
	return "", false
}

// Tile is one grid cell. Base is the type underneath an overlay and is empty
// when the cell has nothing on top of its terrain.
type Tile struct {
	Type     TileType `json:"type"`
	Base     TileType `json:"base,omitempty"`
	OnFire   bool     `json:"on_fire,omitempty"`
	HasWater bool     `json:"has_water,omitempty"`
}

func Plain(t TileType) Tile {
	return Tile{Type: t}
}

func Over(top, base TileType) Tile {
	return Tile{Type: top, Base: base}
}

func (t Tile) Walkable() bool {
	return t.Type.Props().Walkable
}

func (t Tile) Destructible() bool {
	return t.Type.Props().Overlay && t.Base != "" && t.Base != t.Type
}

// Reverted returns the tile with its overlay removed.
func (t Tile) Reverted() Tile {
	if !t.Destructible() {
		return t
	}
	return Tile{Type: t.Base, HasWater: t.HasWater}
}
