package server

import (
	"errors"

	"github.com/ether/etherpad-todolist/lib/db"
	"github.com/ether/etherpad-todolist/lib/settings"
	"go.uber.org/zap"
)

// GetDB opens the data store selected by the settings.
func GetDB(retrievedSettings *settings.Settings, setupLogger *zap.SugaredLogger) (db.DataStore, error) {
	dbSettings := retrievedSettings.DBSettings
	if dbSettings == nil && retrievedSettings.DBType != settings.MEMORY {
		return nil, errors.New("dbSettings are required for " + retrievedSettings.DBType.String())
	}

	switch retrievedSettings.DBType {
	case settings.MEMORY:
		setupLogger.Warn("Using the in-memory data store. Documents are lost on restart.")
		return db.NewMemoryDataStore(), nil
	case settings.SQLITE:
		return db.NewSQLiteDB(dbSettings.Filename, setupLogger)
	case settings.POSTGRES:
		return db.NewPostgresDB(db.PostgresOptions{
			Username: dbSettings.User,
			Password: dbSettings.Password,
			Port:     dbSettings.Port,
			Host:     dbSettings.Host,
			Database: dbSettings.Database,
		}, setupLogger)
	case settings.MYSQL:
		return db.NewMySQLDB(db.MySQLOptions{
			Username: dbSettings.User,
			Password: dbSettings.Password,
			Port:     dbSettings.Port,
			Host:     dbSettings.Host,
			Database: dbSettings.Database,
		}, setupLogger)
	default:
		return nil, errors.New("unsupported database type " + retrievedSettings.DBType.String())
	}
}
