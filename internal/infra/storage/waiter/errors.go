package waiter

import "errors"

var (
	// ErrWaiterNotFound возвращается, когда официант не найден
	ErrWaiterNotFound = errors.New("waiter.repository: waiter not found")

	// ErrVersionConflict возвращается, когда слоты официанта изменил кто-то другой
	ErrVersionConflict = errors.New("waiter.repository: version conflict")

	ErrBuildQuery = errors.New("waiter.repository: failed to build query")
	ErrExecQuery  = errors.New("waiter.repository: failed to execute query")
	ErrScanRow    = errors.New("waiter.repository: failed to scan row")
)
