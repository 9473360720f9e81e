package keylock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type waits map[string]int

func (w waits) ObserveLockWait(prefix string, _ time.Duration) {
	w[prefix]++
}

func TestObserved(t *testing.T) {
	observed := waits{}
	l := NewObserved(NewLocalLocker(), observed)

	unlock, err := l.Lock(context.Background(), "slots:table:L1/T1")
	require.NoError(t, err)
	unlock()

	unlock, err = l.Lock(context.Background(), "booking:table:L1/T1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "booking:table:L1/T1")
	assert.ErrorIs(t, err, ErrLockTimeout)

	assert.Equal(t, waits{"slots": 1, "booking": 2}, observed)
}
