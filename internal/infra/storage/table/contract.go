package table

import "github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics: *sql.DB и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
