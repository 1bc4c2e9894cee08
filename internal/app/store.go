package app

import (
	"github.com/adanyl0v/taskboard/internal/config"
	"github.com/adanyl0v/taskboard/internal/services"
)

var (
	globalTaskService services.TaskService
	closeStore        func()
)

// MustConnectStore opens the store selected by STORE_DRIVER.
func MustConnectStore() {
	driver := config.Global().StoreDriver
	switch driver {
	case config.StoreDriverPostgres:
		globalTaskService = mustConnectPostgres()
		closeStore = disconnectPostgres
	case config.StoreDriverMongo:
		globalTaskService = mustConnectMongo()
		closeStore = disconnectMongo
	case config.StoreDriverSQLite:
		globalTaskService = mustOpenSQLite()
		closeStore = closeSQLite
	default:
		globalLogger.Error().
			Str("driver", driver).
			Msg("unknown store driver")
		panic("unknown store driver: " + driver)
	}
}

func DisconnectStore() {
	if closeStore != nil {
		closeStore()
	}
}
