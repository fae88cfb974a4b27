package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestGetenv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      string
		expected string
	}{
		{
			name:     "variable set",
			key:      "TEST_GETENV",
			value:    "custom",
			def:      "default",
			expected: "custom",
		},
		{
			name:     "variable missing falls back",
			key:      "TEST_GETENV_MISSING",
			value:    "",
			def:      "default",
			expected: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}
			if got := getenv(tt.key, tt.def); got != tt.expected {
				t.Errorf("getenv() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "90s",
			def:      time.Minute,
			expected: 90 * time.Second,
		},
		{
			name:     "invalid duration falls back",
			key:      "TEST_DURATION_INVALID",
			value:    "soon",
			def:      time.Minute,
			expected: time.Minute,
		},
		{
			name:     "missing variable falls back",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      time.Minute,
			expected: time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}
			if got := mustDuration(tt.key, tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "invalid value falls back",
			key:      "TEST_BOOL_INVALID",
			value:    "maybe",
			def:      true,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}
			if got := mustBool(tt.key, tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple list",
			input:    "901,902",
			expected: []string{"901", "902"},
		},
		{
			name:     "whitespace and empty entries",
			input:    " 901 , ,902, ",
			expected: []string{"901", "902"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ALARMBRIDGE_ACCESS_KEY", "secret-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %v, want :8080", cfg.ListenPort)
	}
	if cfg.ScanInterval != DefaultScanInterval {
		t.Errorf("ScanInterval = %v, want %v", cfg.ScanInterval, DefaultScanInterval)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %v, want UTC", cfg.Timezone)
	}
	if cfg.AccessKey != "secret-key" {
		t.Errorf("AccessKey = %v, want secret-key", cfg.AccessKey)
	}

	// No contexts configured: poll the credential's active context.
	want := []Account{{UCR: "", Name: "active"}}
	if !reflect.DeepEqual(cfg.Accounts, want) {
		t.Errorf("Accounts = %v, want %v", cfg.Accounts, want)
	}
}

func TestLoadUCRList(t *testing.T) {
	t.Setenv("ALARMBRIDGE_ACCESS_KEY", "secret-key")
	t.Setenv("ALARMBRIDGE_UCR_IDS", "901, 902")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []Account{
		{UCR: "901", Name: "901"},
		{UCR: "902", Name: "902"},
	}
	if !reflect.DeepEqual(cfg.Accounts, want) {
		t.Errorf("Accounts = %v, want %v", cfg.Accounts, want)
	}
}
