// Package wire provides dependency injection for the qris application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/example/qris/internal/adapters/filesystem"
	"github.com/example/qris/internal/adapters/sqlite"
	"github.com/example/qris/internal/app"
	"github.com/example/qris/internal/config"
	"github.com/example/qris/internal/db"
	qrislog "github.com/example/qris/internal/logging"
	"github.com/example/qris/internal/ports/primary"
)

var (
	configPath string

	cfg        *config.Config
	logger     *slog.Logger
	configOnce sync.Once

	integrityService primary.IntegrityService
	integrityOnce    sync.Once

	catalogService  primary.ProtocolCatalogService
	settingsService primary.SettingsService
	settingsOnce    sync.Once
)

// SetConfigPath selects the config file. Must be called before any service is requested.
func SetConfigPath(path string) {
	configPath = path
}

// Config returns the singleton configuration.
func Config() *config.Config {
	configOnce.Do(initConfig)
	return cfg
}

// Logger returns the singleton process logger.
func Logger() *slog.Logger {
	configOnce.Do(initConfig)
	return logger
}

// IntegrityService returns the singleton IntegrityService instance.
// It does not open the settings database.
func IntegrityService() primary.IntegrityService {
	integrityOnce.Do(func() {
		integrityService = app.NewIntegrityService(filesystem.NewProtocolSource(), Logger())
	})
	return integrityService
}

// ProtocolCatalogService returns the singleton ProtocolCatalogService instance.
func ProtocolCatalogService() primary.ProtocolCatalogService {
	settingsOnce.Do(initSettingsServices)
	return catalogService
}

// SettingsService returns the singleton SettingsService instance.
func SettingsService() primary.SettingsService {
	settingsOnce.Do(initSettingsServices)
	return settingsService
}

// initConfig loads the config file and builds the logger.
// This is called once via sync.Once.
func initConfig() {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			log.Fatalf("failed to resolve config path: %v", err)
		}
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger = qrislog.New(os.Stderr, cfg.LogLevel)
	logger.Debug("config loaded", "path", path, "shared_protocol_folder", cfg.SharedProtocolFolder)
}

// initSettingsServices opens the preference database and the services backed by it.
// This is called once via sync.Once.
func initSettingsServices() {
	c := Config()
	database, err := db.Open(c.SettingsDB)
	if err != nil {
		log.Fatalf("failed to initialize settings database: %v", err)
	}

	// Secondary adapters
	store := sqlite.NewSettingsRepository(database)
	source := filesystem.NewProtocolSource()

	// Primary services
	settingsService = app.NewSettingsService(store)
	catalogService = app.NewProtocolCatalogService(source, store, c.SharedProtocolFolder, Logger())
}
