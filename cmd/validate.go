package cmd

import (
	"fmt"
	"log"
	"sort"

	"nwbridge/core/batch"
	"nwbridge/core/config"
	"nwbridge/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// validateCmd checks a specification without converting anything.
var validateCmd = &cobra.Command{
	Use:   "validate <specification.yml>",
	Short: "Validate a batch specification without converting",
	Long: `Validate checks a YAML batch specification against the schema and
verifies that every declared data interface names a registered format and
has source_data in each session. No files are read or written.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	registry, err := newRegistry()
	if err != nil {
		return err
	}
	known := make(map[string]bool)
	for _, format := range registry.Formats() {
		known[format] = true
	}

	spec, err := batch.Load(args[0])
	if err != nil {
		return err
	}

	experimentIDs := make([]string, 0, len(spec.Experiments))
	for id := range spec.Experiments {
		experimentIDs = append(experimentIDs, id)
	}
	sort.Strings(experimentIDs)

	sessions := 0
	for _, experimentID := range experimentIDs {
		experiment := spec.Experiments[experimentID]
		for sessionIndex, session := range experiment.Sessions {
			sessions++
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
			for name, format := range formats {
				if !known[format] {
					return fmt.Errorf("experiment %q session %d: interface %q uses unknown format %q",
						experimentID, sessionIndex, name, format)
				}
				if _, ok := session.SourceData[name]; !ok {
					return fmt.Errorf("experiment %q session %d: no source_data for interface %q",
						experimentID, sessionIndex, name)
				}
			}
		}
	}

	logg.Info("Specification is valid",
		zap.Int("experiments", len(spec.Experiments)),
		zap.Int("sessions", sessions),
	)
	return nil
}
