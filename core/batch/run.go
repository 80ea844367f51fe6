package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"nwbridge/core/archive"
	"nwbridge/core/convert"
	"nwbridge/core/database"
	"nwbridge/core/metadata"
	"nwbridge/core/naming"
	"nwbridge/core/storage"

	"go.uber.org/zap"
)

// RunRecorder persists one catalog row per converted session.
// *database.Catalog satisfies it.
type RunRecorder interface {
	Record(ctx context.Context, run *database.ConversionRun) error
}

// Runner executes a batch specification. Registry is required; every
// other field is optional and defaults to a no-op.
type Runner struct {
	Registry *convert.Registry
	// Writer produces the archive files. Defaults to archive.FileWriter.
	Writer archive.Writer
	Log    *zap.Logger
	// Catalog records one row per converted session when set.
	Catalog RunRecorder
	// Uploader pushes finished archives to object storage when set.
	Uploader *storage.Uploader
}

// RunOptions control where a batch reads and writes.
type RunOptions struct {
	// DataFolder anchors relative paths in source_data. Defaults to the
	// specification file's directory.
	DataFolder string
	// OutputFolder receives the archive files. Defaults to the
	// specification file's directory.
	OutputFolder string
	// Overwrite allows replacing existing archive files.
	Overwrite bool
}

type result struct {
	experiment string
	session    string
	path       string
}

// Run converts every session in the specification at specPath. Sessions
// without an explicit nwbfile_name are written under a placeholder name
// and renamed from their metadata once the whole batch has completed, so
// a derived name can never collide with a file produced later. A
// conversion failure aborts the batch; failures in the rename pass are
// reported after all resolvable files have been renamed.
func (r *Runner) Run(ctx context.Context, specPath string, opts RunOptions) error {
	if r.Registry == nil {
		return convert.Configf("runner has no format registry")
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	writer := r.Writer
	if writer == nil {
		writer = archive.FileWriter{}
	}

	spec, err := Load(specPath)
	if err != nil {
		return err
	}

	dataFolder := opts.DataFolder
	if dataFolder == "" {
		dataFolder = filepath.Dir(specPath)
	}
	outputFolder := opts.OutputFolder
	if outputFolder == "" {
		outputFolder = filepath.Dir(specPath)
	}
	if err := os.MkdirAll(outputFolder, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	experimentIDs := make([]string, 0, len(spec.Experiments))
	for id := range spec.Experiments {
		experimentIDs = append(experimentIDs, id)
	}
	sort.Strings(experimentIDs)

	var (
		entries         []naming.Entry
		results         []result
		usedPlaceholder bool
		counter         int
	)

	for _, experimentID := range experimentIDs {
		experiment := spec.Experiments[experimentID]
		for sessionIndex, session := range experiment.Sessions {
			counter++
			sessionLog := log.With(
				zap.String("experiment", experimentID),
				zap.Int("session", sessionIndex),
			)

			converter, err := r.buildConverter(spec, experiment, session, dataFolder)
			if err != nil {
				r.record(ctx, sessionLog,
					result{experiment: experimentID, session: sessionName(session, sessionIndex)},
					database.StatusFailed, err.Error())
				return fmt.Errorf("experiment %q session %d: %w", experimentID, sessionIndex, err)
			}

			md := metadata.Chain(
				converter.GetMetadata(),
				spec.Metadata,
				experiment.Metadata,
				session.Metadata,
			)

			name := strings.TrimSuffix(session.NWBFileName, naming.ArchiveExtension)
			if name == "" {
				name = naming.Placeholder(counter)
				usedPlaceholder = true
			}
			path := filepath.Join(outputFolder, name+naming.ArchiveExtension)

			sessionLog.Info("converting session", zap.String("output", path))
			if err := converter.RunConversion(ctx, writer, path, md, opts.Overwrite, session.ConversionOptions); err != nil {
				r.record(ctx, sessionLog,
					result{experiment: experimentID, session: sessionName(session, sessionIndex), path: path},
					database.StatusFailed, err.Error())
				return fmt.Errorf("experiment %q session %d: %w", experimentID, sessionIndex, err)
			}

			entries = append(entries, naming.Entry{Path: path, Metadata: md})
			results = append(results, result{
				experiment: experimentID,
				session:    sessionName(session, sessionIndex),
				path:       path,
			})
		}
	}

	var errs []error
	// A file whose rename failed or whose name could not be derived is
	// cataloged as unresolved, not completed, with the reason on the row.
	rowErrs := map[string]string{}
	if usedPlaceholder {
		renames, nameErr := naming.UniqueNames(entries)
		if nameErr != nil {
			errs = append(errs, nameErr)
			for _, err := range joinedErrors(nameErr) {
				var unresolved *naming.UnresolvedNameError
				if errors.As(err, &unresolved) {
					rowErrs[unresolved.Path] = unresolved.Error()
				}
			}
		}
		for i, res := range results {
			newName, ok := renames[res.path]
			if !ok {
				continue
			}
			newPath := filepath.Join(outputFolder, newName)
			if err := os.Rename(res.path, newPath); err != nil {
				errs = append(errs, fmt.Errorf("failed to rename %s: %w", res.path, err))
				rowErrs[res.path] = err.Error()
				continue
			}
			log.Info("renamed archive", zap.String("from", res.path), zap.String("to", newPath))
			results[i].path = newPath
		}
	}

	for _, res := range results {
		status, errMsg := database.StatusCompleted, ""
		if msg, stuck := rowErrs[res.path]; stuck {
			status, errMsg = database.StatusUnresolved, msg
		}
		r.record(ctx, log, res, status, errMsg)
		if r.Uploader != nil {
			if err := r.Uploader.UploadFile(ctx, res.path); err != nil {
				errs = append(errs, fmt.Errorf("failed to upload %s: %w", res.path, err))
			}
		}
	}

	return errors.Join(errs...)
}

// joinedErrors flattens an errors.Join result.
func joinedErrors(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// buildConverter assembles the converter for one session from the
// cascaded interface declarations. Interface names bind in sorted order
// so metadata merging stays deterministic.
func (r *Runner) buildConverter(spec *Specification, experiment Experiment, session Session, dataFolder string) (*convert.Converter, error) {
	formats := map[string]string{}
	for name, format := range spec.DataInterfaces {
		formats[name] = format
	}
	for name, format := range experiment.DataInterfaces {
		formats[name] = format
	}
	for name, format := range session.DataInterfaces {
		formats[name] = format
	}
	if len(formats) == 0 {
		return nil, convert.Configf("no data_interfaces declared at any level")
	}

	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)

	bindings := make([]convert.RoleBinding, 0, len(names))
	for _, name := range names {
		source, ok := session.SourceData[name]
		if !ok {
			return nil, convert.Configf("no source_data for interface %q", name)
		}
		iface, err := r.Registry.Build(formats[name], resolvePaths(source, dataFolder))
		if err != nil {
			return nil, fmt.Errorf("interface %q: %w", name, err)
		}
		bindings = append(bindings, convert.RoleBinding{Role: name, Interface: iface})
	}
	return convert.NewConverter(bindings)
}

// resolvePaths anchors relative path values in source data against the
// data folder. Keys ending in "_path" hold a single path; keys ending in
// "_paths" hold a list.
func resolvePaths(source convert.SourceData, dataFolder string) convert.SourceData {
	resolved := make(convert.SourceData, len(source))
	for key, value := range source {
		switch {
		case strings.HasSuffix(key, "_path"):
			if s, ok := value.(string); ok && !filepath.IsAbs(s) {
				resolved[key] = filepath.Join(dataFolder, s)
				continue
			}
		case strings.HasSuffix(key, "_paths"):
			if list, ok := value.([]any); ok {
				out := make([]any, len(list))
				for i, item := range list {
					if s, ok := item.(string); ok && !filepath.IsAbs(s) {
						out[i] = filepath.Join(dataFolder, s)
					} else {
						out[i] = item
					}
				}
				resolved[key] = out
				continue
			}
		}
		resolved[key] = value
	}
	return resolved
}

func (r *Runner) record(ctx context.Context, log *zap.Logger, res result, status, errMsg string) {
	if r.Catalog == nil {
		return
	}
	run := &database.ConversionRun{
		Experiment: res.experiment,
		Session:    res.session,
		OutputPath: res.path,
		Status:     status,
		Error:      errMsg,
	}
	if err := r.Catalog.Record(ctx, run); err != nil {
		log.Warn("failed to record conversion run", zap.Error(err))
	}
}

func sessionName(session Session, index int) string {
	if id := metadata.GetString(session.Metadata, "NWBFile", "session_id"); id != "" {
		return id
	}
	return fmt.Sprintf("session-%d", index)
}
