package convert

import (
	"encoding/json"
	"fmt"
	"sort"

	"nwbridge/core/metadata"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Constructor builds a data interface from validated source data.
type Constructor func(source SourceData) (DataInterface, error)

type registration struct {
	schema *jsonschema.Schema
	ctor   Constructor
}

// Registry maps format identifiers to interface constructors. All
// registrations happen at startup; Build never resolves anything lazily.
type Registry struct {
	formats map[string]registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{formats: make(map[string]registration)}
}

// Register binds a format identifier to a constructor and its source-data
// schema. The schema is compiled immediately so a malformed schema fails
// at startup, not at first use.
func (r *Registry) Register(format string, sourceSchema metadata.Tree, ctor Constructor) error {
	if format == "" {
		return fmt.Errorf("format identifier must not be empty")
	}
	if ctor == nil {
		return fmt.Errorf("format %q registered with nil constructor", format)
	}
	if _, exists := r.formats[format]; exists {
		return fmt.Errorf("format %q registered twice", format)
	}

	raw, err := json.Marshal(sourceSchema)
	if err != nil {
		return fmt.Errorf("format %q: source schema is not serializable: %w", format, err)
	}
	schema, err := jsonschema.CompileString(format+".schema.json", string(raw))
	if err != nil {
		return fmt.Errorf("format %q: invalid source schema: %w", format, err)
	}

	r.formats[format] = registration{schema: schema, ctor: ctor}
	return nil
}

// Formats lists the registered format identifiers, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build validates source against the format's schema and constructs the
// interface. Unknown formats and schema violations are ConfigurationErrors.
func (r *Registry) Build(format string, source SourceData) (DataInterface, error) {
	reg, known := r.formats[format]
	if !known {
		return nil, Configf("unknown data interface format %q (registered: %v)", format, r.Formats())
	}

	// The validator only accepts JSON-decoded values, so round-trip the
	// source map (YAML decoding yields ints where JSON has float64).
	raw, err := json.Marshal(source)
	if err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("source data for %q is not serializable", format), Err: err}
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("source data for %q is not serializable", format), Err: err}
	}
	if err := reg.schema.Validate(instance); err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("source data for %q failed schema validation", format), Err: err}
	}

	return reg.ctor(source)
}
