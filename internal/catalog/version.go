package catalog

import (
	"github.com/Masterminds/semver/v3"
)

// LatestVersion returns the version with the highest semantic version name.
//
// Names that do not parse as semver are skipped. When no name parses, the last
// entry is returned since the API lists versions oldest first. Returns nil when
// the record has no versions.
func (r ServiceRecord) LatestVersion() *VersionRecord {
	if len(r.Versions) == 0 {
		return nil
	}

	var (
		best    *VersionRecord
		bestVer *semver.Version
	)
	for i := range r.Versions {
		v, err := semver.NewVersion(r.Versions[i].Name)
		if err != nil {
			continue
		}
		if bestVer == nil || v.GreaterThan(bestVer) {
			best = &r.Versions[i]
			bestVer = v
		}
	}

	if best == nil {
		return &r.Versions[len(r.Versions)-1]
	}
	return best
}
