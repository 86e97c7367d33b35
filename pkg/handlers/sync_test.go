package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncWithRetry(t *testing.T) {
	errSync := errors.New("unknown application")
	tests := []struct {
		name     string
		failures int
		calls    int
		wantErr  bool
	}{
		{name: "first try", failures: 0, calls: 1},
		{name: "after retries", failures: 2, calls: 3},
		{name: "gives up", failures: 5, calls: 3, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			err := syncWithRetry(context.Background(), 3, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return errSync
				}
				return nil
			})
			assert.Equal(t, tt.calls, calls)
			if tt.wantErr {
				assert.ErrorIs(t, err, errSync)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSyncWithRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls int
	err := syncWithRetry(ctx, 3, time.Hour, func() error {
		calls++
		return errors.New("gateway not ready")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
