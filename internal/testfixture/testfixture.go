// Package testfixture builds a small, self-consistent minecraft-data-style
// tree on disk so package tests can point a datasource.Root at it with
// WithCacheDir and never touch the network. It is imported only from
// _test.go files across the module.
package testfixture

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Write materializes the fixture tree under root (root/data/...) and
// returns root, already containing the dataPaths.json sentinel so
// datasource.Root treats it as already-fetched.
func Write(t *testing.T, root string) string {
	t.Helper()

	dataDir := filepath.Join(root, "data")

	writeJSON(t, filepath.Join(dataDir, "dataPaths.json"), dataPaths)
	writeJSON(t, filepath.Join(dataDir, "common", "protocolVersions.json"), protocolVersions)
	writeJSON(t, filepath.Join(dataDir, "common", "features.json"), features)
	writeJSON(t, filepath.Join(dataDir, "common", "legacy.json"), legacy)

	writeJSON(t, filepath.Join(dataDir, "pc", "1.18", "blocks.json"), blocks118)
	writeJSON(t, filepath.Join(dataDir, "pc", "1.18", "items.json"), items118)
	writeJSON(t, filepath.Join(dataDir, "pc", "1.18", "foods.json"), foods118)
	writeJSON(t, filepath.Join(dataDir, "pc", "1.18", "blockCollisionShapes.json"), shapes118)
	writeJSON(t, filepath.Join(dataDir, "pc", "1.18", "entities.json"), entities118)

	writeJSON(t, filepath.Join(dataDir, "pc", "1.19", "blocks.json"), blocks119)
	writeJSON(t, filepath.Join(dataDir, "pc", "1.19", "items.json"), items118)
	writeJSON(t, filepath.Join(dataDir, "pc", "1.19", "entities.json"), entities119)

	writeJSON(t, filepath.Join(dataDir, "pc", "1.8", "blocks.json"), blocks18)
	writeJSON(t, filepath.Join(dataDir, "pc", "1.8", "items.json"), items118)

	writeJSON(t, filepath.Join(dataDir, "pc", "1.15", "blocks.json"), blocks118)
	writeJSON(t, filepath.Join(dataDir, "pc", "1.15", "items.json"), items118)

	return root
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

var dataPaths = map[string]map[string]map[string]string{
	"pc": {
		"common": {
			"protocolVersions": "common",
			"features":         "common",
		},
		"1.18": {
			"blocks":               "pc/1.18",
			"items":                "pc/1.18",
			"foods":                "pc/1.18",
			"blockCollisionShapes": "pc/1.18",
			"entities":             "pc/1.18",
			"missing_stem":         "pc/1.18",
		},
		"1.19": {
			"blocks":   "pc/1.19",
			"items":    "pc/1.19",
			"entities": "pc/1.19",
		},
		"1.8": {
			"blocks": "pc/1.8",
			"items":  "pc/1.8",
		},
		"1.15": {
			"blocks": "pc/1.15",
			"items":  "pc/1.15",
		},
	},
}

// protocolVersions mirrors common/protocolVersions.json: newest protocol
// first is not required, the loader sorts it. 1.8.8 has no dataVersion and
// gets one synthesized.
var protocolVersions = []map[string]any{
	{"minecraftVersion": "1.19", "majorVersion": "1.19", "version": 759, "dataVersion": 3105, "releaseType": "release"},
	{"minecraftVersion": "1.18.2", "majorVersion": "1.18", "version": 758, "dataVersion": 2975, "releaseType": "release"},
	{"minecraftVersion": "1.18.1", "majorVersion": "1.18", "version": 757, "dataVersion": 2957, "releaseType": "release"},
	{"minecraftVersion": "1.15.2", "majorVersion": "1.15", "version": 578, "dataVersion": 2230, "releaseType": "release"},
	{"minecraftVersion": "1.8.9", "majorVersion": "1.8", "version": 47, "releaseType": "release"},
	{"minecraftVersion": "1.8.8", "majorVersion": "1.8", "version": 47, "releaseType": "release"},
}

var features = []map[string]any{
	{
		"name": "dimensionIsAnInt",
		"versions": []string{"1.8.8", "1.15.2"},
	},
	{
		"name": "metadataIxOfItem",
		"values": []map[string]any{
			{"value": float64(7), "versions": []string{"1.8.8", "1.15.2"}},
			{"value": float64(8), "versions": []string{"1.18.1", "latest"}},
		},
	},
}

var legacy = map[string]any{
	"blocks": map[string]int{},
	"items":  map[string]int{},
}

var blocks118 = []map[string]any{
	{"id": 1, "name": "stone", "displayName": "Stone", "stackSize": 64, "minStateId": 0, "maxStateId": 0, "defaultState": 0},
	{
		"id": 2, "name": "oak_slab", "displayName": "Oak Slab", "stackSize": 64,
		"minStateId": 100, "maxStateId": 101, "defaultState": 100,
	},
	{"id": 3, "name": "air", "displayName": "Air", "stackSize": 64, "minStateId": 200, "maxStateId": 200, "defaultState": 200},
}

var entities118 = []map[string]any{
	{"id": 1, "name": "zombie", "type": "mob"},
}

var entities119 = []map[string]any{
	{"id": 1, "name": "zombie", "type": "mob"},
	{"id": 2, "name": "warden", "type": "mob"},
}

var items118 = []map[string]any{
	{"id": 1, "name": "stick", "displayName": "Stick", "stackSize": 64},
}

var foods118 = []map[string]any{
	{"id": 1, "name": "apple", "foodPoints": 4.0},
}

var shapes118 = map[string]any{
	"blocks": map[string]any{
		"stone":    3,
		"oak_slab": []int{1, 2},
	},
	"shapes": map[string]any{
		"1": [][]float64{{0, 0, 0, 1, 0.5, 1}},
		"2": [][]float64{{0, 0.5, 0, 1, 1, 1}},
		"3": [][]float64{{0, 0, 0, 1, 1, 1}},
	},
}

var blocks119 = []map[string]any{
	{"id": 1, "name": "stone", "displayName": "Stone", "stackSize": 64, "minStateId": 0, "maxStateId": 0, "defaultState": 0},
	{"id": 4, "name": "mangrove_log", "displayName": "Mangrove Log", "stackSize": 64, "minStateId": 300, "maxStateId": 301, "defaultState": 300},
}

// blocks18 has no explicit state ids for stone (id=1): the indexer must
// synthesize minStateId=16, maxStateId=31. Its drops table exercises the
// BlockDrop sum type's structured-element form (an {drop,minCount,maxCount}
// object) whose inner drop is itself a bare item id.
var blocks18 = []map[string]any{
	{
		"id": 1, "name": "stone", "displayName": "Stone", "stackSize": 64,
		"drops": []map[string]any{
			{"drop": 4, "minCount": 1, "maxCount": 1},
		},
	},
}
