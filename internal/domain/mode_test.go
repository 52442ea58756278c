package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	for _, mode := range Modes {
		got, err := ParseMode(string(mode))
		if err != nil {
			t.Errorf("ParseMode(%q) error: %v", mode, err)
		}
		if got != mode {
			t.Errorf("ParseMode(%q) = %q", mode, got)
		}
	}
}

func TestParseMode_Unknown(t *testing.T) {
	for _, name := range []string{"", "turbo", "Gaming", "BALANCED", "gaming "} {
		if _, err := ParseMode(name); !errors.Is(err, ErrUnknownMode) {
			t.Errorf("ParseMode(%q) error = %v, want ErrUnknownMode", name, err)
		}
	}
}

func TestPerformanceMode_Valid(t *testing.T) {
	if !ModeAutopilot.Valid() {
		t.Error("autopilot should be valid")
	}
	if PerformanceMode("overdrive").Valid() {
		t.Error("overdrive should be invalid")
	}
}

func TestPerformanceMode_JSON(t *testing.T) {
	data, err := json.Marshal(ModeSleep)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"sleep"` {
		t.Errorf("marshal = %s, want %q", data, `"sleep"`)
	}

	var mode PerformanceMode
	if err := json.Unmarshal([]byte(`"gaming"`), &mode); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if mode != ModeGaming {
		t.Errorf("unmarshal = %q, want gaming", mode)
	}
}
