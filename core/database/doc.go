// Package database handles the optional conversion run catalog.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to
// properly configure MySQL connections based on the application's
// configuration, plus the Catalog type that records one row per
// converted session.
//
// The catalog is strictly optional: conversions run fine without a
// database, and callers are expected to downgrade connection errors to
// warnings.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("catalog unavailable", zap.Error(err))
//	}
//	catalog, err := database.NewCatalog(db)
package database
