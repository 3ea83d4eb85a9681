package immutable

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coudenysj/json-immutable-objects/i18n"
)

// metadataFile is the on-disk registry supplement: per-type example values
// and default overrides.
type metadataFile struct {
	Types map[string]typeMetadata `yaml:"types"`
}

type typeMetadata struct {
	Examples map[string]any `yaml:"examples"`
	// Defaults is decoded loosely so that a malformed node (for example a
	// sequence instead of a mapping) can be rejected with a clear error.
	Defaults any `yaml:"defaults"`
}

// LoadMetadata reads a YAML metadata file into the registry. Example values
// and default overrides take effect for descriptors built after the call.
func (r *Registry) LoadMetadata(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf(`failed to read metadata file "%s": %w`, path, err)
	}
	return r.LoadMetadataBytes(data)
}

// LoadMetadataBytes is LoadMetadata for in-memory YAML content.
func (r *Registry) LoadMetadataBytes(data []byte) error {
	var file metadataFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	for typeName, tm := range file.Types {
		if len(tm.Examples) > 0 {
			r.RegisterExamples(typeName, tm.Examples)
		}
		if tm.Defaults == nil {
			continue
		}
		defaults, ok := tm.Defaults.(map[string]any)
		if !ok {
			return Issues{{
				Path:    "/" + typeName,
				Code:    CodeInvalidDefault,
				Message: i18n.T(CodeInvalidDefault, nil),
				Hint:    "defaults must be a mapping of property name to value",
			}}
		}
		r.mu.Lock()
		m := r.fileDefaults[typeName]
		if m == nil {
			m = map[string]any{}
			r.fileDefaults[typeName] = m
		}
		for k, v := range defaults {
			m[k] = v
		}
		r.mu.Unlock()
	}
	return nil
}

// LoadMetadata reads a YAML metadata file into the default registry.
func LoadMetadata(path string) error { return defaultRegistry.LoadMetadata(path) }
