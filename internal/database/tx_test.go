package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockTimeoutStatement(t *testing.T) {
	tests := []struct {
		timeout time.Duration
		want    string
	}{
		{timeout: 2 * time.Second, want: "SET LOCAL lock_timeout = '2000ms'"},
		{timeout: 250 * time.Millisecond, want: "SET LOCAL lock_timeout = '250ms'"},
		{timeout: 1500 * time.Microsecond, want: "SET LOCAL lock_timeout = '2ms'"},
		{timeout: time.Nanosecond, want: "SET LOCAL lock_timeout = '1ms'"},
	}

	for _, tt := range tests {
		t.Run(tt.timeout.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, lockTimeoutStatement(tt.timeout))
		})
	}
}

func TestSnapshotTxOptions(t *testing.T) {
	opts := SnapshotTxOptions()

	assert.Equal(t, sql.LevelSerializable, opts.IsolationLevel)
	assert.Equal(t, DefaultLockTimeout, opts.LockTimeout)
	assert.Equal(t, DefaultTxOptions().MaxRetries, opts.MaxRetries)
	assert.Zero(t, DefaultTxOptions().LockTimeout)
}
