package convert

import (
	"context"
	"fmt"

	"nwbridge/core/archive"
	"nwbridge/core/metadata"
)

// RoleBinding names one interface's logical role in a fixed-class
// converter (e.g. "Recording", "Behavior").
type RoleBinding struct {
	Role      string
	Interface DataInterface
}

// Converter composes interfaces under fixed role labels. Roles are
// ordered; each role appears exactly once.
type Converter struct {
	bindings []RoleBinding
}

// NewConverter builds a converter from ordered role bindings. A duplicate
// role or a nil interface is a ConfigurationError.
func NewConverter(bindings []RoleBinding) (*Converter, error) {
	seen := make(map[string]struct{}, len(bindings))
	for _, b := range bindings {
		if b.Role == "" {
			return nil, Configf("role binding with empty role")
		}
		if b.Interface == nil {
			return nil, Configf("role %q bound to nil interface", b.Role)
		}
		if _, dup := seen[b.Role]; dup {
			return nil, Configf("role %q bound more than once", b.Role)
		}
		seen[b.Role] = struct{}{}
	}
	return &Converter{bindings: bindings}, nil
}

// Interface returns the interface bound to role, if any.
func (c *Converter) Interface(role string) (DataInterface, bool) {
	for _, b := range c.bindings {
		if b.Role == role {
			return b.Interface, true
		}
	}
	return nil, false
}

// GetMetadata merges every member's metadata in binding order; later
// members override earlier ones at identical paths.
func (c *Converter) GetMetadata() metadata.Tree {
	merged := metadata.Tree{}
	for _, b := range c.bindings {
		merged = metadata.DeepUpdate(merged, b.Interface.GetMetadata())
	}
	return merged
}

// GetMetadataSchema merges every member's metadata schema in binding order.
func (c *Converter) GetMetadataSchema() metadata.Tree {
	merged := metadata.Tree{}
	for _, b := range c.bindings {
		merged = metadata.DeepUpdate(merged, b.Interface.GetMetadataSchema())
	}
	return merged
}

// RunConversion assembles a session from every member and writes it to
// path. A nil md uses the converter's own merged metadata; options are
// keyed by role.
func (c *Converter) RunConversion(
	ctx context.Context,
	writer archive.Writer,
	path string,
	md metadata.Tree,
	overwrite bool,
	options map[string]Options,
) error {
	if md == nil {
		md = c.GetMetadata()
	}
	session := archive.NewSession(md)
	for _, b := range c.bindings {
		if err := b.Interface.AddToSession(ctx, session, md, options[b.Role]); err != nil {
			return fmt.Errorf("interface %q: %w", b.Role, err)
		}
	}
	if err := writer.Write(ctx, path, session, overwrite); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Pipe composes an anonymous ordered list of interfaces.
type Pipe struct {
	interfaces []DataInterface
}

// NewPipe builds a dynamic pipe. Interfaces must be non-nil.
func NewPipe(interfaces []DataInterface) (*Pipe, error) {
	for i, iface := range interfaces {
		if iface == nil {
			return nil, Configf("pipe interface %d is nil", i)
		}
	}
	return &Pipe{interfaces: interfaces}, nil
}

// Interfaces returns the members in order.
func (p *Pipe) Interfaces() []DataInterface {
	return p.interfaces
}

// GetMetadata merges every member's metadata in list order.
func (p *Pipe) GetMetadata() metadata.Tree {
	merged := metadata.Tree{}
	for _, iface := range p.interfaces {
		merged = metadata.DeepUpdate(merged, iface.GetMetadata())
	}
	return merged
}

// GetMetadataSchema merges every member's metadata schema in list order.
func (p *Pipe) GetMetadataSchema() metadata.Tree {
	merged := metadata.Tree{}
	for _, iface := range p.interfaces {
		merged = metadata.DeepUpdate(merged, iface.GetMetadataSchema())
	}
	return merged
}

// RunConversion assembles a session from every member and writes it to
// path. Options are positional, one per member; a short slice leaves the
// remainder with nil options.
func (p *Pipe) RunConversion(
	ctx context.Context,
	writer archive.Writer,
	path string,
	md metadata.Tree,
	overwrite bool,
	options []Options,
) error {
	if md == nil {
		md = p.GetMetadata()
	}
	session := archive.NewSession(md)
	for i, iface := range p.interfaces {
		var opts Options
		if i < len(options) {
			opts = options[i]
		}
		if err := iface.AddToSession(ctx, session, md, opts); err != nil {
			return fmt.Errorf("interface %d: %w", i, err)
		}
	}
	if err := writer.Write(ctx, path, session, overwrite); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
