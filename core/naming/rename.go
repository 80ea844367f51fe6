package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"nwbridge/core/metadata"
)

// PlaceholderPrefix marks output files that could not be named from
// session metadata at conversion time.
const PlaceholderPrefix = "temp_nwbfile_name_"

// ArchiveExtension is the suffix of every produced archive file.
const ArchiveExtension = ".nwb"

// Entry pairs a produced file with the merged metadata it was written with.
type Entry struct {
	// Path is the file's current location on disk.
	Path string
	// Metadata is the merged metadata tree used for the conversion.
	Metadata metadata.Tree
}

// UnresolvedNameError indicates the uniqueness pass could not derive a
// usable name for one file. Only that file's rename is aborted.
type UnresolvedNameError struct {
	// Path is the file that could not be named.
	Path string
	// Reason says why the derived name was rejected.
	Reason string
}

func (e *UnresolvedNameError) Error() string {
	return fmt.Sprintf("not enough metadata to assign a name to %s: %s", e.Path, e.Reason)
}

// Placeholder returns the deterministic fallback file name for the n-th
// session of a batch.
func Placeholder(n int) string {
	return fmt.Sprintf("%s%d", PlaceholderPrefix, n)
}

// IsPlaceholder reports whether path carries a placeholder file name.
func IsPlaceholder(path string) bool {
	return strings.HasPrefix(filepath.Base(path), PlaceholderPrefix)
}

// UniqueNames runs the global uniqueness pass over every file a batch
// produced and returns the new file name for each placeholder-named path.
// Names are derived from subject and session metadata; the pass considers
// all entries so a derived name cannot collide with a file that was named
// explicitly. Files that already have real names are never renamed. A file
// whose name cannot be resolved is left out of the result; its error is
// joined with the others so the caller still fails after renaming the rest.
func UniqueNames(entries []Entry) (map[string]string, error) {
	derived := make(map[string]string, len(entries))
	seen := make(map[string]string, len(entries))
	var errs []error

	// Non-placeholder names are fixed points; claim them first.
	for _, entry := range entries {
		if !IsPlaceholder(entry.Path) {
			seen[filepath.Base(entry.Path)] = entry.Path
		}
	}

	for _, entry := range entries {
		if !IsPlaceholder(entry.Path) {
			continue
		}
		name := DescriptiveName(entry.Metadata)
		if name == ArchiveExtension || name == "" {
			errs = append(errs, &UnresolvedNameError{Path: entry.Path, Reason: "derived name is empty"})
			continue
		}
		if other, taken := seen[name]; taken {
			errs = append(errs, &UnresolvedNameError{
				Path:   entry.Path,
				Reason: fmt.Sprintf("derived name %q already used by %s", name, other),
			})
			continue
		}
		seen[name] = entry.Path
		derived[entry.Path] = name
	}

	return derived, errors.Join(errs...)
}

// DescriptiveName builds a file name from subject and session metadata,
// e.g. "sub-mouse1_ses-day2.nwb". Missing fields are skipped; if every
// field is missing the result is just the extension, which callers must
// reject.
func DescriptiveName(md metadata.Tree) string {
	var parts []string
	if subject := sanitize(metadata.GetString(md, "Subject", "subject_id")); subject != "" {
		parts = append(parts, "sub-"+subject)
	}
	if session := sanitize(metadata.GetString(md, "NWBFile", "session_id")); session != "" {
		parts = append(parts, "ses-"+session)
	}
	return strings.Join(parts, "_") + ArchiveExtension
}

// sanitize makes a metadata value safe for use in a file name.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, string(filepath.Separator), "-")
	s = strings.ReplaceAll(s, "_", "-")
	return s
}
