package cmd

import (
	"context"
	"log"

	"nwbridge/core/batch"
	"nwbridge/core/config"
	"nwbridge/core/database"
	"nwbridge/core/logger"
	"nwbridge/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataFolder   string
	outputFolder string
	overwrite    bool
)

// convertCmd runs a whole batch specification.
var convertCmd = &cobra.Command{
	Use:   "convert <specification.yml>",
	Short: "Convert every session in a batch specification",
	Long: `Convert runs all experiments and sessions declared in a YAML batch
specification. Relative paths in source_data resolve against the data
folder; archives land in the output folder. Both default to the
specification file's directory.

Sessions without an explicit nwbfile_name are written under a placeholder
and renamed from their subject and session metadata once the whole batch
has finished.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&dataFolder, "data-folder", "", "Folder that relative source_data paths resolve against")
	convertCmd.Flags().StringVar(&outputFolder, "output-folder", "", "Folder that receives the archive files")
	convertCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing archive files")

	RootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	// 3. Build the format registry
	registry, err := newRegistry()
	if err != nil {
		return err
	}

	runner := &batch.Runner{
		Registry: registry,
		Log:      logg,
	}

	// 4. Connect to the run catalog (optional)
	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional catalog database connection failed", zap.Error(err))
		} else if catalog, err := database.NewCatalog(db); err != nil {
			logg.Warn("Failed to prepare run catalog", zap.Error(err))
		} else {
			runner.Catalog = catalog
			logg.Info("Recording runs in catalog database")
		}
	}

	// 5. Connect to object storage (optional)
	if cfg.Storage.Enabled {
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional storage connection failed", zap.Error(err))
		} else {
			uploader := storage.NewUploader(client, cfg.Storage.Bucket)
			if err := uploader.EnsureBucket(ctx); err != nil {
				logg.Warn("Failed to prepare archive bucket", zap.Error(err))
			} else {
				runner.Uploader = uploader
				logg.Info("Uploading archives", zap.String("bucket", cfg.Storage.Bucket))
			}
		}
	}

	return runner.Run(ctx, args[0], batch.RunOptions{
		DataFolder:   dataFolder,
		OutputFolder: outputFolder,
		Overwrite:    overwrite,
	})
}
