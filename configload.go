package strata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseScene decodes a YAML scene document. Numeric laxity (missing optional
// fields, out-of-range RPM, non-finite values) is normalized later at
// processor init; the only parse-time errors are malformed YAML and
// duplicate layer ids.
func ParseScene(data []byte) (SceneConfig, error) {
	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SceneConfig{}, fmt.Errorf("parsing scene config: %w", err)
	}
	seen := make(map[string]struct{}, len(cfg.Layers))
	for _, layer := range cfg.Layers {
		if layer.ID == "" {
			return SceneConfig{}, fmt.Errorf("scene config: layer with empty id")
		}
		if _, dup := seen[layer.ID]; dup {
			return SceneConfig{}, fmt.Errorf("scene config: duplicate layer id %q", layer.ID)
		}
		seen[layer.ID] = struct{}{}
	}
	return cfg, nil
}

// LoadSceneFile reads and parses a YAML scene file.
func LoadSceneFile(path string) (SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("reading scene config %s: %w", path, err)
	}
	cfg, err := ParseScene(data)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
