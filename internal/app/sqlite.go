package app

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adanyl0v/taskboard/internal/config"
	"github.com/adanyl0v/taskboard/internal/services"
)

var globalSQLiteDB *gorm.DB

func mustOpenSQLite() services.TaskService {
	cfg := config.Global().SQLite

	var err error
	globalSQLiteDB, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", cfg.Path).
			Msg("failed to open sqlite database")
		panic(err)
	}

	taskService, err := services.NewSQLiteTaskService(globalLogger, globalSQLiteDB)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to prepare sqlite database")
		panic(err)
	}
	globalLogger.Info().
		Str("path", cfg.Path).
		Msg("opened sqlite database")

	return taskService
}

func closeSQLite() {
	sqlDB, err := globalSQLiteDB.DB()
	if err == nil {
		err = sqlDB.Close()
	}
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close sqlite database")
		return
	}
	globalLogger.Info().Msg("closed sqlite database")
}
