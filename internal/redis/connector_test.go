package redis

import (
	"testing"
	"time"

	"github.com/alarmbridge/alarmbridge/internal/logger"
)

func validOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "localhost:6379",
		ConnectTimeout: 30 * time.Second,
		RetryInterval:  2 * time.Second,
		MaxWait:        10 * time.Second,
		PingTimeout:    5 * time.Second,
	}
}

func TestConnectOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ConnectOptions)
		wantErr bool
	}{
		{
			name:    "valid",
			mutate:  func(o *ConnectOptions) {},
			wantErr: false,
		},
		{
			name:    "zero connect timeout",
			mutate:  func(o *ConnectOptions) { o.ConnectTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "zero retry interval",
			mutate:  func(o *ConnectOptions) { o.RetryInterval = 0 },
			wantErr: true,
		},
		{
			name:    "zero max wait",
			mutate:  func(o *ConnectOptions) { o.MaxWait = 0 },
			wantErr: true,
		},
		{
			name:    "zero ping timeout",
			mutate:  func(o *ConnectOptions) { o.PingTimeout = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)
			err := opts.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	opts := validOptions()
	opts.ConnectTimeout = 0
	if _, err := New(opts, logger.Nop()); err == nil {
		t.Fatal("New() should reject invalid options")
	}
}
