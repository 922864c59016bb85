package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyCatalog = "catalog"
	keyLogging = "logging"
	keyOutput  = "output"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Within a section present in the overlay, fields present in
// the overlay replace the target's; absent fields and absent sections are left
// unchanged. Unknown top-level keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	// Discover which top-level keys are present in the overlay.
	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, node := range overlay {
		if err = mergeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// mergeSection decodes node onto the field of target named by key. Decoding onto
// the existing value keeps fields the overlay omits.
func mergeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyCatalog:
		return node.Decode(&target.Catalog)
	case keyLogging:
		return node.Decode(&target.Logging)
	case keyOutput:
		return node.Decode(&target.Output)
	default:
		return nil
	}
}
