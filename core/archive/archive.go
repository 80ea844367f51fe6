package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"nwbridge/core/metadata"
	"nwbridge/core/naming"
)

// Container kinds understood by downstream tooling.
const (
	KindTimeIntervals    = "TimeIntervals"
	KindEvents           = "Events"
	KindImageSeries      = "ImageSeries"
	KindElectricalSeries = "ElectricalSeries"
)

// Container is one named data unit inside a session's namespace.
type Container struct {
	// Name is the container's unique name within the session.
	Name string `json:"name"`
	// Kind identifies the container type.
	Kind string `json:"kind"`
	// Data holds the container payload (columns, event times, external
	// references, series descriptors).
	Data map[string]any `json:"data"`
}

// Session accumulates the containers and metadata for one output file.
// It becomes immutable once handed to a Writer.
type Session struct {
	metadata   metadata.Tree
	containers []Container
	names      map[string]struct{}
}

// NewSession creates an empty session carrying the merged metadata tree.
func NewSession(md metadata.Tree) *Session {
	return &Session{
		metadata: metadata.Copy(md),
		names:    make(map[string]struct{}),
	}
}

// Metadata returns the session's metadata tree.
func (s *Session) Metadata() metadata.Tree {
	return s.metadata
}

// AddContainer appends a container, enforcing name uniqueness within the
// session's namespace. Interfaces that intend to share a container must
// merge via naming.PlanContainers before adding.
func (s *Session) AddContainer(c Container) error {
	if c.Name == "" {
		return fmt.Errorf("container name must not be empty")
	}
	if _, exists := s.names[c.Name]; exists {
		return &naming.ConflictError{Name: c.Name}
	}
	s.names[c.Name] = struct{}{}
	s.containers = append(s.containers, c)
	return nil
}

// Containers returns the containers in insertion order.
func (s *Session) Containers() []Container {
	return s.containers
}

// Writer persists an assembled session to an output path. The real
// archival backend is external; implementations hold exclusive access to
// the path for the duration of the write.
type Writer interface {
	Write(ctx context.Context, path string, session *Session, overwrite bool) error
}

// FileWriter writes the session as a JSON document.
type FileWriter struct{}

type fileDocument struct {
	Metadata   metadata.Tree `json:"metadata"`
	Containers []Container   `json:"containers"`
}

// Write persists the session at path. An existing file fails the write
// unless overwrite is set.
func (FileWriter) Write(ctx context.Context, path string, session *Session, overwrite bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("output file %s already exists (use overwrite to replace)", path)
		}
	}
	doc := fileDocument{
		Metadata:   session.Metadata(),
		Containers: session.Containers(),
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
