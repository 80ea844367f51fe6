package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"nwbridge/core/archive"
	"nwbridge/core/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInterface is a minimal DataInterface for composition tests.
type fakeInterface struct {
	md        metadata.Tree
	schema    metadata.Tree
	container string
	addErr    error
	seenOpts  Options
}

func (f *fakeInterface) GetMetadata() metadata.Tree       { return f.md }
func (f *fakeInterface) GetMetadataSchema() metadata.Tree { return f.schema }

func (f *fakeInterface) AddToSession(ctx context.Context, session *archive.Session, md metadata.Tree, opts Options) error {
	f.seenOpts = opts
	if f.addErr != nil {
		return f.addErr
	}
	if f.container == "" {
		return nil
	}
	return session.AddContainer(archive.Container{Name: f.container, Kind: archive.KindEvents})
}

func TestNewConverterValidation(t *testing.T) {
	iface := &fakeInterface{}

	tests := []struct {
		name     string
		bindings []RoleBinding
		wantErr  string
	}{
		{
			name:     "DuplicateRole",
			bindings: []RoleBinding{{Role: "Recording", Interface: iface}, {Role: "Recording", Interface: iface}},
			wantErr:  "bound more than once",
		},
		{
			name:     "EmptyRole",
			bindings: []RoleBinding{{Role: "", Interface: iface}},
			wantErr:  "empty role",
		},
		{
			name:     "NilInterface",
			bindings: []RoleBinding{{Role: "Recording", Interface: nil}},
			wantErr:  "nil interface",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewConverter(tt.bindings)
			assert.Nil(t, c)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConverterMetadataMergeOrder(t *testing.T) {
	first := &fakeInterface{md: metadata.Tree{
		"NWBFile": metadata.Tree{"lab": "first", "institution": "first"},
	}}
	second := &fakeInterface{md: metadata.Tree{
		"NWBFile": metadata.Tree{"institution": "second"},
	}}

	c, err := NewConverter([]RoleBinding{
		{Role: "A", Interface: first},
		{Role: "B", Interface: second},
	})
	require.NoError(t, err)

	md := c.GetMetadata()
	assert.Equal(t, "first", metadata.GetString(md, "NWBFile", "lab"))
	assert.Equal(t, "second", metadata.GetString(md, "NWBFile", "institution"),
		"later members override earlier ones")
}

func TestConverterRunConversion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.nwb")

	recording := &fakeInterface{container: "series", md: metadata.Tree{"NWBFile": metadata.Tree{"session_id": "s1"}}}
	behavior := &fakeInterface{container: "events"}

	c, err := NewConverter([]RoleBinding{
		{Role: "Recording", Interface: recording},
		{Role: "Behavior", Interface: behavior},
	})
	require.NoError(t, err)

	opts := map[string]Options{"Behavior": {"threshold": 1.0}}
	require.NoError(t, c.RunConversion(context.Background(), archive.FileWriter{}, path, nil, false, opts))

	assert.FileExists(t, path)
	assert.Equal(t, Options{"threshold": 1.0}, behavior.seenOpts)
	assert.Nil(t, recording.seenOpts)
}

func TestConverterRunConversionInterfaceError(t *testing.T) {
	failing := &fakeInterface{addErr: fmt.Errorf("bad channel")}

	c, err := NewConverter([]RoleBinding{{Role: "Sync", Interface: failing}})
	require.NoError(t, err)

	err = c.RunConversion(context.Background(), archive.FileWriter{}, filepath.Join(t.TempDir(), "x.nwb"), nil, false, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `interface "Sync"`)
}

func TestPipeMetadataMergeOrder(t *testing.T) {
	p, err := NewPipe([]DataInterface{
		&fakeInterface{md: metadata.Tree{"NWBFile": metadata.Tree{"lab": "a"}}},
		&fakeInterface{md: metadata.Tree{"NWBFile": metadata.Tree{"lab": "b"}}},
	})
	require.NoError(t, err)

	assert.Equal(t, "b", metadata.GetString(p.GetMetadata(), "NWBFile", "lab"))
}

func TestPipeRunConversion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.nwb")
	first := &fakeInterface{container: "a"}
	second := &fakeInterface{container: "b"}

	p, err := NewPipe([]DataInterface{first, second})
	require.NoError(t, err)

	require.NoError(t, p.RunConversion(context.Background(), archive.FileWriter{}, path, metadata.Tree{}, false, []Options{{"k": "v"}}))
	assert.Equal(t, Options{"k": "v"}, first.seenOpts)
	assert.Nil(t, second.seenOpts, "short option slices leave trailing members bare")
}

func TestPipeRejectsNilInterface(t *testing.T) {
	p, err := NewPipe([]DataInterface{nil})
	assert.Nil(t, p)

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestPipeNameCollisionSurfaces(t *testing.T) {
	// Two members writing the same container name must fail the run; the
	// session namespace never silently overwrites.
	p, err := NewPipe([]DataInterface{
		&fakeInterface{container: "events"},
		&fakeInterface{container: "events"},
	})
	require.NoError(t, err)

	err = p.RunConversion(context.Background(), archive.FileWriter{}, filepath.Join(t.TempDir(), "x.nwb"), metadata.Tree{}, false, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate container name")
}
