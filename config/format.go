package config

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// decode parses a config file into a flat key/value map. The format is
// picked by extension: .toml for TOML, anything else is YAML.
func decode(path string, data []byte) (map[string]interface{}, error) {
	var parsed map[string]interface{}
	if isTOML(path) {
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return nil, err
		}
		return parsed, nil
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func encode(path string, values map[string]interface{}) ([]byte, error) {
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(values); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(values)
}
