package snapshot

import "strconv"

// indexBlocks builds byId/byName/byStateId, synthesizing state id ranges
// for entries that predate explicit state ids (id != 0 but both state
// bounds are zero): a 16-state-per-id convention, minStateId = id << 4.
func indexBlocks(d *IndexedData) {
	d.BlocksByID = make(map[int]Block, len(d.Blocks))
	d.BlocksByName = make(map[string]Block, len(d.Blocks))
	d.BlocksByStateID = make(map[int]Block)

	for i := range d.Blocks {
		b := d.Blocks[i]
		if b.ID != 0 && b.MinStateID == 0 && b.MaxStateID == 0 {
			b.MinStateID = b.ID << 4
			b.MaxStateID = b.MinStateID + 15
			b.DefaultState = b.MinStateID
			d.Blocks[i] = b
		}

		d.BlocksByID[b.ID] = b
		d.BlocksByName[b.Name] = b
		for s := b.MinStateID; s <= b.MaxStateID; s++ {
			d.BlocksByStateID[s] = b
		}
	}
}

func indexItems(d *IndexedData) {
	d.ItemsByID = make(map[int]Item, len(d.Items))
	d.ItemsByName = make(map[string]Item, len(d.Items))
	for _, it := range d.Items {
		d.ItemsByID[it.ID] = it
		d.ItemsByName[it.Name] = it
	}
}

func indexBiomes(d *IndexedData, biomes []Biome) {
	d.Biomes = biomes
	d.BiomesByID = make(map[int]Biome, len(biomes))
	d.BiomesByName = make(map[string]Biome, len(biomes))
	for _, b := range biomes {
		d.BiomesByID[b.ID] = b
		d.BiomesByName[b.Name] = b
	}
}

func indexEffects(d *IndexedData, effects []Effect) {
	d.Effects = effects
	d.EffectsByID = make(map[int]Effect, len(effects))
	d.EffectsByName = make(map[string]Effect, len(effects))
	for _, e := range effects {
		d.EffectsByID[e.ID] = e
		d.EffectsByName[e.Name] = e
	}
}

// indexEntities builds byId/byName plus the mob/object sub-indexes
// filtered by the entity's type field.
func indexEntities(d *IndexedData, entities []Entity) {
	d.Entities = entities
	d.EntitiesByID = make(map[int]Entity, len(entities))
	d.EntitiesByName = make(map[string]Entity, len(entities))
	d.MobsByID = make(map[int]Entity)
	d.ObjectsByID = make(map[int]Entity)
	for _, e := range entities {
		d.EntitiesByID[e.ID] = e
		d.EntitiesByName[e.Name] = e
		switch e.Type {
		case "mob":
			d.MobsByID[e.ID] = e
		case "object":
			d.ObjectsByID[e.ID] = e
		}
	}
}

func indexSounds(d *IndexedData, sounds []Sound) {
	d.Sounds = sounds
	d.SoundsByID = make(map[int]Sound, len(sounds))
	d.SoundsByName = make(map[string]Sound, len(sounds))
	for _, s := range sounds {
		d.SoundsByID[s.ID] = s
		d.SoundsByName[s.Name] = s
	}
}

func indexParticles(d *IndexedData, particles []Particle) {
	d.Particles = particles
	d.ParticlesByID = make(map[int]Particle, len(particles))
	d.ParticlesByName = make(map[string]Particle, len(particles))
	for _, p := range particles {
		d.ParticlesByID[p.ID] = p
		d.ParticlesByName[p.Name] = p
	}
}

func indexAttributes(d *IndexedData, attrs []Attribute) {
	d.Attributes = attrs
	d.AttributesByName = make(map[string]Attribute, len(attrs))
	d.AttributesByResource = make(map[string]Attribute, len(attrs))
	for _, a := range attrs {
		d.AttributesByName[a.Name] = a
		d.AttributesByResource[a.Resource] = a
	}
}

func indexInstruments(d *IndexedData, instruments []Instrument) {
	d.Instruments = instruments
	d.InstrumentsByID = make(map[int]Instrument, len(instruments))
	d.InstrumentsByName = make(map[string]Instrument, len(instruments))
	for _, i := range instruments {
		d.InstrumentsByID[i.ID] = i
		d.InstrumentsByName[i.Name] = i
	}
}

func indexFoods(d *IndexedData, foods []Food) {
	d.Foods = foods
	d.FoodsByID = make(map[int]Food, len(foods))
	d.FoodsByName = make(map[string]Food, len(foods))
	for _, f := range foods {
		d.FoodsByID[f.ID] = f
		d.FoodsByName[f.Name] = f
	}
}

func indexEnchantments(d *IndexedData, ench []Enchantment) {
	d.Enchantments = ench
	d.EnchantmentsByID = make(map[int]Enchantment, len(ench))
	d.EnchantmentsByName = make(map[string]Enchantment, len(ench))
	for _, e := range ench {
		d.EnchantmentsByID[e.ID] = e
		d.EnchantmentsByName[e.Name] = e
	}
}

func indexMapIcons(d *IndexedData, icons []MapIcon) {
	d.MapIcons = icons
	d.MapIconsByID = make(map[int]MapIcon, len(icons))
	d.MapIconsByName = make(map[string]MapIcon, len(icons))
	for _, m := range icons {
		d.MapIconsByID[m.ID] = m
		d.MapIconsByName[m.Name] = m
	}
}

func indexWindows(d *IndexedData, windows []Window) {
	d.Windows = windows
	d.WindowsByID = make(map[string]Window, len(windows))
	d.WindowsByName = make(map[string]Window, len(windows))
	for _, w := range windows {
		d.WindowsByID[w.ID] = w
		d.WindowsByName[w.Name] = w
	}
}

func indexBlockLoot(d *IndexedData, loot []BlockLoot) {
	d.BlockLootByName = make(map[string]BlockLoot, len(loot))
	for _, l := range loot {
		d.BlockLootByName[l.Block] = l
	}
}

func indexEntityLoot(d *IndexedData, loot []EntityLoot) {
	d.EntityLootByName = make(map[string]EntityLoot, len(loot))
	for _, l := range loot {
		d.EntityLootByName[l.Entity] = l
	}
}

// indexShapes derives shapesByStateId and shapesByName from the raw
// collision-shapes document. A shape index of 0 conventionally means "no
// collision" and is omitted from both maps rather than stored as an empty
// entry. An out-of-range per-state offset into a Multiple shape reference
// is skipped rather than treated as fatal.
func indexShapes(d *IndexedData, doc rawBlockShapes) {
	d.BlockShapesByStateID = make(map[int][]AABB)
	d.BlockShapesByName = make(map[string][]AABB)

	for name, ref := range doc.Blocks {
		b, ok := d.BlocksByName[name]
		if !ok {
			continue
		}

		for s := b.MinStateID; s <= b.MaxStateID; s++ {
			idx, ok := shapeIndexFor(ref, s-b.MinStateID)
			if !ok || idx == 0 {
				continue
			}
			shape, ok := doc.Shapes[strconv.Itoa(idx)]
			if !ok {
				continue
			}
			d.BlockShapesByStateID[s] = shape
		}

		if shape, ok := d.BlockShapesByStateID[b.DefaultState]; ok {
			d.BlockShapesByName[name] = shape
		}
	}
}

func shapeIndexFor(ref shapeRef, offset int) (int, bool) {
	if ref.Single != nil {
		return *ref.Single, true
	}
	if offset < 0 || offset >= len(ref.Multiple) {
		return 0, false
	}
	return ref.Multiple[offset], true
}
