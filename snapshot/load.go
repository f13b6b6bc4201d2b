package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/blockdata-go/mcdata/edition"
	"github.com/blockdata-go/mcdata/events"
	"github.com/blockdata-go/mcdata/features"
	"github.com/blockdata-go/mcdata/mcerr"
	"github.com/blockdata-go/mcdata/mcpaths"
	"github.com/blockdata-go/mcdata/version"
)

// Load builds the IndexedData snapshot for v: required files load and fail
// loudly, optional files load concurrently via an errgroup and quietly
// substitute an empty value when simply absent for this version. registry
// and featureEngine back the returned snapshot's isNewerOrEqualTo,
// isOlderThan, and supportFeature methods.
func Load(loader *mcpaths.Loader, registry *version.Registry, featureEngine *features.Engine, v version.Version, emitter *events.Emitter) (*IndexedData, error) {
	ed := v.Edition
	major := v.MajorVersion

	emitter.Emit("loading", v.MinecraftVersion)

	var blocks []Block
	var items []Item
	if err := loader.ResolveAndLoad(ed, major, "blocks", &blocks); err != nil {
		return nil, err
	}
	if err := loader.ResolveAndLoad(ed, major, "items", &items); err != nil {
		return nil, err
	}

	var (
		biomes      []Biome
		effects     []Effect
		entities    []Entity
		sounds      []Sound
		particles   []Particle
		attributes  []Attribute
		instruments []Instrument
		foods       []Food
		ench        []Enchantment
		mapIcons    []MapIcon
		windows     []Window
		blockLoot   []BlockLoot
		entityLoot  []EntityLoot
		shapesDoc   rawBlockShapes
		tints       json.RawMessage
		language    map[string]string

		recipes          json.RawMessage
		materials        json.RawMessage
		commands         json.RawMessage
		protocol         json.RawMessage
		protocolComments json.RawMessage
		loginPacket      json.RawMessage
	)

	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error { return loadOptional(loader, ed, major, "biomes", &biomes) })
	g.Go(func() error { return loadOptional(loader, ed, major, "effects", &effects) })
	g.Go(func() error { return loadOptional(loader, ed, major, "entities", &entities) })
	g.Go(func() error { return loadOptional(loader, ed, major, "sounds", &sounds) })
	g.Go(func() error { return loadOptional(loader, ed, major, "particles", &particles) })
	g.Go(func() error { return loadOptional(loader, ed, major, "attributes", &attributes) })
	g.Go(func() error { return loadOptional(loader, ed, major, "instruments", &instruments) })
	g.Go(func() error { return loadOptional(loader, ed, major, "foods", &foods) })
	g.Go(func() error { return loadOptional(loader, ed, major, "enchantments", &ench) })
	g.Go(func() error { return loadOptional(loader, ed, major, "mapIcons", &mapIcons) })
	g.Go(func() error { return loadOptional(loader, ed, major, "windows", &windows) })
	g.Go(func() error { return loadOptional(loader, ed, major, "blockLoot", &blockLoot) })
	g.Go(func() error { return loadOptional(loader, ed, major, "entityLoot", &entityLoot) })
	g.Go(func() error { return loadOptional(loader, ed, major, "blockCollisionShapes", &shapesDoc) })
	g.Go(func() error { return loadOptional(loader, ed, major, "tints", &tints) })
	g.Go(func() error { return loadOptional(loader, ed, major, "language", &language) })
	g.Go(func() error { return loadOptional(loader, ed, major, "recipes", &recipes) })
	g.Go(func() error { return loadOptional(loader, ed, major, "materials", &materials) })
	g.Go(func() error { return loadOptional(loader, ed, major, "commands", &commands) })
	g.Go(func() error { return loadOptional(loader, ed, major, "protocol", &protocol) })
	g.Go(func() error { return loadOptional(loader, ed, major, "protocolComments", &protocolComments) })
	g.Go(func() error { return loadOptional(loader, ed, major, "loginPacket", &loginPacket) })

	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := &IndexedData{Version: v, registry: registry, featureEngine: featureEngine}
	data.Blocks = blocks
	indexBlocks(data)
	data.Items = items
	indexItems(data)
	indexBiomes(data, biomes)
	indexEffects(data, effects)
	indexEntities(data, entities)
	indexSounds(data, sounds)
	indexParticles(data, particles)
	indexAttributes(data, attributes)
	indexInstruments(data, instruments)
	indexFoods(data, foods)
	indexEnchantments(data, ench)
	indexMapIcons(data, mapIcons)
	indexWindows(data, windows)
	indexBlockLoot(data, blockLoot)
	indexEntityLoot(data, entityLoot)
	indexShapes(data, shapesDoc)

	data.Tints = tints
	data.Language = language
	data.Recipes = recipes
	data.Materials = materials
	data.Commands = commands
	data.Protocol = protocol
	data.ProtocolComments = protocolComments
	data.LoginPacket = loginPacket
	data.Legacy = loadLegacy(loader, ed)

	return data, nil
}

// loadOptional treats DataPathNotFound and DataFileNotFound as "not present
// for this version" (target keeps its zero value); every other error
// propagates.
func loadOptional(loader *mcpaths.Loader, ed edition.Edition, major, key string, target any) error {
	err := loader.ResolveAndLoad(ed, major, key, target)
	if err == nil {
		return nil
	}
	var pathErr *mcerr.DataPathNotFound
	var fileErr *mcerr.DataFileNotFound
	if errors.As(err, &pathErr) || errors.As(err, &fileErr) {
		return nil
	}
	return err
}

// loadLegacy loads common/legacy.json directly (it is not keyed through
// dataPaths.json). Any failure, not merely "not found", is non-fatal here:
// legacy id mapping is a best-effort auxiliary table.
func loadLegacy(loader *mcpaths.Loader, ed edition.Edition) json.RawMessage {
	root, err := loader.DataRoot()
	if err != nil {
		return nil
	}
	path := filepath.Join(root, "common", "legacy.json")
	var raw json.RawMessage
	if err := mcpaths.LoadInto(path, &raw); err != nil {
		return nil
	}
	return raw
}
