package xr

import "testing"

func TestResult(t *testing.T) {
	tests := []struct {
		result    Result
		name      string
		succeeded bool
	}{
		{Success, "SUCCESS", true},
		{TimeoutExpired, "TIMEOUT_EXPIRED", true},
		{EventUnavailable, "EVENT_UNAVAILABLE", true},
		{ErrSessionNotRunning, "ERROR_SESSION_NOT_RUNNING", false},
		{ErrSessionNotStopping, "ERROR_SESSION_NOT_STOPPING", false},
		{ErrSessionRunning, "ERROR_SESSION_RUNNING", false},
		{ErrTimeInvalid, "ERROR_TIME_INVALID", false},
	}
	for _, tt := range tests {
		if got := tt.result.String(); got != tt.name {
			t.Errorf("%d.String() = %q, want %q", int32(tt.result), got, tt.name)
		}
		if got := tt.result.Succeeded(); got != tt.succeeded {
			t.Errorf("%v.Succeeded() = %v, want %v", tt.result, got, tt.succeeded)
		}
	}

	if !Success.Unqualified() {
		t.Error("Success.Unqualified() = false")
	}
	if EventUnavailable.Unqualified() {
		t.Error("EventUnavailable.Unqualified() = true")
	}
}

func TestParseViewConfigType(t *testing.T) {
	for _, v := range KnownViewConfigTypes {
		got, err := ParseViewConfigType(v.String())
		if err != nil {
			t.Errorf("ParseViewConfigType(%q) failed: %v", v.String(), err)
			continue
		}
		if got != v {
			t.Errorf("ParseViewConfigType(%q) = %v, want %v", v.String(), got, v)
		}
	}

	if _, err := ParseViewConfigType("octagonal"); err == nil {
		t.Error("ParseViewConfigType accepted an unknown name")
	}
}

func TestRuntimeRegistry(t *testing.T) {
	RegisterRuntime("xr-test-registry", func(cfg SessionConfig) (Runtime, error) {
		return nil, nil
	})

	if _, err := NewRuntime("xr-test-registry", SessionConfig{}); err != nil {
		t.Errorf("NewRuntime returned unexpected error: %v", err)
	}
	if _, err := NewRuntime("nonexistent", SessionConfig{}); err == nil {
		t.Error("expected error for unknown runtime name")
	}

	found := false
	for _, name := range RegisteredRuntimes() {
		if name == "xr-test-registry" {
			found = true
		}
	}
	if !found {
		t.Error("RegisteredRuntimes() does not include the registered name")
	}
}
