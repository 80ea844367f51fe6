package batch

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"nwbridge/core/convert"
	"nwbridge/core/metadata"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var rawSchema string

var specSchema = jsonschema.MustCompileString("specification.schema.json", rawSchema)

// Session describes one conversion within an experiment. SourceData and
// ConversionOptions are keyed by interface name.
type Session struct {
	// NWBFileName is the explicit output file name. When empty a
	// placeholder is used and resolved after the batch completes.
	NWBFileName       string                        `yaml:"nwbfile_name"`
	Metadata          metadata.Tree                 `yaml:"metadata"`
	DataInterfaces    map[string]string             `yaml:"data_interfaces"`
	SourceData        map[string]convert.SourceData `yaml:"source_data"`
	ConversionOptions map[string]convert.Options    `yaml:"conversion_options"`
}

// Experiment groups sessions that share metadata and interfaces.
type Experiment struct {
	Metadata       metadata.Tree     `yaml:"metadata"`
	DataInterfaces map[string]string `yaml:"data_interfaces"`
	Sessions       []Session         `yaml:"sessions"`
}

// Specification is the top level of a batch conversion file. Metadata
// and interface declarations cascade: global values apply to every
// experiment, experiment values to every session, and deeper levels
// override shallower ones key by key.
type Specification struct {
	Metadata       metadata.Tree         `yaml:"metadata"`
	DataInterfaces map[string]string     `yaml:"data_interfaces"`
	Experiments    map[string]Experiment `yaml:"experiments"`
}

// Load reads, validates and decodes a batch specification file.
func Load(path string) (*Specification, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read specification: %w", err)
	}
	if err := Validate(raw); err != nil {
		return nil, err
	}

	var spec Specification
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, &convert.ConfigurationError{Reason: "specification is not valid YAML", Err: err}
	}
	return &spec, nil
}

// Validate checks a raw specification document against the embedded
// schema without decoding it into structs. Violations are
// ConfigurationErrors so callers can distinguish them from I/O failures.
func Validate(raw []byte) error {
	var instance any
	if err := yaml.Unmarshal(raw, &instance); err != nil {
		return &convert.ConfigurationError{Reason: "specification is not valid YAML", Err: err}
	}

	// The validator only accepts JSON-decoded values; round-trip the
	// YAML document through JSON first.
	buf, err := json.Marshal(instance)
	if err != nil {
		return &convert.ConfigurationError{Reason: "specification is not representable as JSON", Err: err}
	}
	var jsonInstance any
	if err := json.Unmarshal(buf, &jsonInstance); err != nil {
		return &convert.ConfigurationError{Reason: "specification is not representable as JSON", Err: err}
	}

	if err := specSchema.Validate(jsonInstance); err != nil {
		return &convert.ConfigurationError{Reason: "specification failed schema validation", Err: err}
	}
	return nil
}
