package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"10:30", false},
		{"00:00", false},
		{"23:59", false},
		{"24:00", true},
		{"9:30", true},
		{"10-30", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	a := MustTimeString("10:30")
	b := MustTimeString("12:15")

	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.Equal(t, 630, a.Minutes())
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := MustTimeString("10:30").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), got)

	_, err = MustTimeString("23:30").AddMinutes(45)
	assert.Error(t, err)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("14:00:00"))
	assert.Equal(t, TimeString("14:00"), ts)

	require.NoError(t, ts.Scan([]byte("15:45")))
	assert.Equal(t, TimeString("15:45"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_On(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	got := MustTimeString("19:15").On(date, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 19, 15, 0, 0, time.UTC), got)
}
