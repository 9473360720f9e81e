package location

import "errors"

var (
	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("location.repository: location not found")

	ErrBuildQuery = errors.New("location.repository: failed to build query")
	ErrExecQuery  = errors.New("location.repository: failed to execute query")
	ErrScanRow    = errors.New("location.repository: failed to scan row")
)
