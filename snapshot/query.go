package snapshot

import "github.com/blockdata-go/mcdata/features"

// IsNewerOrEqualTo resolves otherVersionString through the version
// registry and reports whether this snapshot's version sorts at or after
// it. It errors if the resolved version belongs to a different edition.
func (d *IndexedData) IsNewerOrEqualTo(otherVersionString string) (bool, error) {
	other, err := d.registry.Resolve(otherVersionString)
	if err != nil {
		return false, err
	}
	return d.Version.IsNewerOrEqualTo(other)
}

// IsOlderThan is the symmetric counterpart to IsNewerOrEqualTo.
func (d *IndexedData) IsOlderThan(otherVersionString string) (bool, error) {
	other, err := d.registry.Resolve(otherVersionString)
	if err != nil {
		return false, err
	}
	return d.Version.IsOlderThan(other)
}

// SupportFeature evaluates name against this snapshot's version.
func (d *IndexedData) SupportFeature(name string) (features.Value, error) {
	return d.featureEngine.Supports(d.Version, name)
}
