// Package snapshot implements C5: loading all data files for one resolved
// Version and building the typed, indexed IndexedData snapshot, backed by a
// process-wide cache keyed by canonical version.
package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/blockdata-go/mcdata/features"
	"github.com/blockdata-go/mcdata/version"
)

// AABB is an axis-aligned bounding box: [x1,y1,z1,x2,y2,z2].
type AABB [6]float64

// DropItem is the {id, metadata} shape a block drop's inner drop may take.
type DropItem struct {
	ID       int `json:"id"`
	Metadata int `json:"metadata"`
}

// DropType is a block drop's inner "drop" field: either a bare item id, or
// a structured {id, metadata} item reference.
type DropType struct {
	ID   *int
	Item *DropItem
}

func (d *DropType) UnmarshalJSON(data []byte) error {
	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		d.ID = &id
		return nil
	}
	var item DropItem
	if err := json.Unmarshal(data, &item); err != nil {
		return fmt.Errorf("drop type is neither an id nor an {id,metadata} object: %w", err)
	}
	d.Item = &item
	return nil
}

// DropElement is the structured form of a block drop: an inner DropType
// plus a count range.
type DropElement struct {
	Drop     DropType `json:"drop"`
	MinCount float64  `json:"minCount"`
	MaxCount float64  `json:"maxCount"`
}

// BlockDrop is a block's drop table entry: either a bare item id, or a
// structured DropElement.
type BlockDrop struct {
	ID      *int
	Element *DropElement
}

func (d *BlockDrop) UnmarshalJSON(data []byte) error {
	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		d.ID = &id
		return nil
	}
	var el DropElement
	if err := json.Unmarshal(data, &el); err != nil {
		return fmt.Errorf("block drop is neither an id nor a drop element: %w", err)
	}
	d.Element = &el
	return nil
}

// Block is one entry of blocks.json.
type Block struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	DisplayName string      `json:"displayName"`
	Hardness    *float64    `json:"hardness"`
	StackSize   int         `json:"stackSize"`
	Diggable    bool        `json:"diggable"`
	Material    string      `json:"material"`
	Transparent bool        `json:"transparent"`
	MinStateID  int         `json:"minStateId"`
	MaxStateID  int         `json:"maxStateId"`
	DefaultState int        `json:"defaultState"`
	Drops       []BlockDrop `json:"drops"`
}

// Item is one entry of items.json.
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	StackSize   int    `json:"stackSize"`
}

// Biome is one entry of biomes.json.
type Biome struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Effect is one entry of effects.json.
type Effect struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Entity is one entry of entities.json.
type Entity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Sound is one entry of sounds.json.
type Sound struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Particle is one entry of particles.json.
type Particle struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Attribute is one entry of attributes.json.
type Attribute struct {
	Name     string `json:"name"`
	Resource string `json:"resource"`
}

// Instrument is one entry of instruments.json.
type Instrument struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Food is one entry of foods.json.
type Food struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	FoodPoints float64 `json:"foodPoints"`
}

// Enchantment is one entry of enchantments.json.
type Enchantment struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MapIcon is one entry of mapIcons.json.
type MapIcon struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Window is one entry of windows.json. Its id is a string, possibly
// namespaced, unlike the other entity tables' integer ids.
type Window struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BlockLoot is one entry of blockLoot.json.
type BlockLoot struct {
	Block string `json:"block"`
}

// EntityLoot is one entry of entityLoot.json.
type EntityLoot struct {
	Entity string `json:"entity"`
}

// shapeRef is a collision-shapes document's per-block shape reference:
// either a single shape index shared by every state, or one index per
// state offset from the block's minStateId.
type shapeRef struct {
	Single   *int
	Multiple []int
}

func (s *shapeRef) UnmarshalJSON(data []byte) error {
	var single int
	if err := json.Unmarshal(data, &single); err == nil {
		s.Single = &single
		return nil
	}
	var multiple []int
	if err := json.Unmarshal(data, &multiple); err != nil {
		return fmt.Errorf("shape reference is neither an int nor a list of ints: %w", err)
	}
	s.Multiple = multiple
	return nil
}

// rawBlockShapes is the on-disk blockCollisionShapes.json document.
type rawBlockShapes struct {
	Blocks map[string]shapeRef  `json:"blocks"`
	Shapes map[string][]AABB    `json:"shapes"`
}

// IndexedData is the immutable, fully-indexed snapshot for one resolved
// Version. It is built once and shared by reference across every caller
// that resolves to the same canonical version.
type IndexedData struct {
	Version version.Version

	// registry and featureEngine back the comparison and feature-support
	// methods below; they are set once at construction and never mutated.
	registry      *version.Registry
	featureEngine *features.Engine

	Blocks        []Block
	BlocksByID    map[int]Block
	BlocksByName  map[string]Block
	BlocksByStateID map[int]Block

	Items       []Item
	ItemsByID   map[int]Item
	ItemsByName map[string]Item

	Biomes       []Biome
	BiomesByID   map[int]Biome
	BiomesByName map[string]Biome

	Effects       []Effect
	EffectsByID   map[int]Effect
	EffectsByName map[string]Effect

	Entities       []Entity
	EntitiesByID   map[int]Entity
	EntitiesByName map[string]Entity
	MobsByID       map[int]Entity
	ObjectsByID    map[int]Entity

	Sounds       []Sound
	SoundsByID   map[int]Sound
	SoundsByName map[string]Sound

	Particles       []Particle
	ParticlesByID   map[int]Particle
	ParticlesByName map[string]Particle

	Attributes         []Attribute
	AttributesByName   map[string]Attribute
	AttributesByResource map[string]Attribute

	Instruments       []Instrument
	InstrumentsByID   map[int]Instrument
	InstrumentsByName map[string]Instrument

	Foods       []Food
	FoodsByID   map[int]Food
	FoodsByName map[string]Food

	Enchantments       []Enchantment
	EnchantmentsByID   map[int]Enchantment
	EnchantmentsByName map[string]Enchantment

	MapIcons       []MapIcon
	MapIconsByID   map[int]MapIcon
	MapIconsByName map[string]MapIcon

	Windows       []Window
	WindowsByID   map[string]Window
	WindowsByName map[string]Window

	BlockLootByName  map[string]BlockLoot
	EntityLootByName map[string]EntityLoot

	BlockShapesByStateID map[int][]AABB
	BlockShapesByName    map[string][]AABB

	Tints    json.RawMessage
	Language map[string]string
	Legacy   json.RawMessage

	Recipes          json.RawMessage
	Materials        json.RawMessage
	Commands         json.RawMessage
	Protocol         json.RawMessage
	ProtocolComments json.RawMessage
	LoginPacket      json.RawMessage
}
