package naming

import "fmt"

// Item is one logical unit (a track, a video file) proposing a container
// name and carrying the external references it contributes.
type Item struct {
	// Name is the proposed container name.
	Name string
	// Refs are the external file references this unit contributes.
	Refs []string
}

// Container is one resolved entry in the output namespace.
type Container struct {
	// Name is the unique container name.
	Name string
	// Refs aggregates the references of every item merged into this
	// container. Unmerged containers carry exactly their item's refs.
	Refs []string
}

// Options controls collision handling during planning.
type Options struct {
	// ExternalMode opts into merging items that share a name into one
	// container holding all their external references. Without it, any
	// collision is a ConflictError.
	ExternalMode bool
}

// ConflictError reports a duplicate container name encountered outside
// external-reference mode.
type ConflictError struct {
	// Name is the colliding container name.
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("duplicate container name %q in output namespace (enable external mode to merge)", e.Name)
}

// PlanContainers resolves items into namespace entries. Items with unique
// names each become their own container, in input order. Under
// Options.ExternalMode, items sharing a name merge into a single container
// whose refs concatenate the colliding items' refs in input order.
func PlanContainers(items []Item, opts Options) ([]Container, error) {
	byName := make(map[string]int, len(items))
	containers := make([]Container, 0, len(items))

	for _, item := range items {
		index, seen := byName[item.Name]
		if !seen {
			byName[item.Name] = len(containers)
			containers = append(containers, Container{
				Name: item.Name,
				Refs: append([]string(nil), item.Refs...),
			})
			continue
		}
		if !opts.ExternalMode {
			return nil, &ConflictError{Name: item.Name}
		}
		containers[index].Refs = append(containers[index].Refs, item.Refs...)
	}

	return containers, nil
}
