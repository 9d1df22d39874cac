package glowcast

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func testStation(t *testing.T) Station {
	t.Helper()
	st, err := NewStation("Test", "1", "key")
	if err != nil {
		t.Fatalf("NewStation() error = %v", err)
	}
	return st
}

func testStrip(t *testing.T) *MemoryStrip {
	t.Helper()
	s, err := NewMemoryStrip(8)
	if err != nil {
		t.Fatalf("NewMemoryStrip() error = %v", err)
	}
	return s
}

func TestNew_Defaults(t *testing.T) {
	gc, err := New(
		WithStation(testStation(t)),
		WithStrip(testStrip(t)),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if gc.PollInterval() != 10*time.Minute {
		t.Errorf("PollInterval() = %v, want 10m", gc.PollInterval())
	}
	if gc.Brightness() != 255 {
		t.Errorf("Brightness() = %d, want 255", gc.Brightness())
	}
	if gc.Port() != 0 {
		t.Errorf("Port() = %d, want 0 (server disabled)", gc.Port())
	}
	if got := gc.Palette().Classify(35); got != Red {
		t.Errorf("default palette Classify(35) = %v, want %v", got, Red)
	}
}

func TestNew_RequiresStation(t *testing.T) {
	_, err := New(WithStrip(testStrip(t)))
	if err == nil {
		t.Error("New() expected error without a station, got nil")
	}
}

func TestNew_RequiresStrip(t *testing.T) {
	_, err := New(WithStation(testStation(t)))
	if err == nil {
		t.Error("New() expected error without a strip, got nil")
	}
}

func TestWithStation_RejectsSecond(t *testing.T) {
	_, err := New(
		WithStation(testStation(t)),
		WithStation(testStation(t)),
		WithStrip(testStrip(t)),
	)
	if err == nil {
		t.Error("New() expected error for a second station, got nil")
	}
}

func TestWithStrip_RejectsNil(t *testing.T) {
	_, err := New(
		WithStation(testStation(t)),
		WithStrip(nil),
	)
	if err == nil {
		t.Error("New() expected error for nil strip, got nil")
	}
}

func TestWithPollInterval_Validation(t *testing.T) {
	gc, err := New(
		WithStation(testStation(t)),
		WithStrip(testStrip(t)),
		WithPollInterval(time.Minute),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if gc.PollInterval() != time.Minute {
		t.Errorf("PollInterval() = %v, want 1m", gc.PollInterval())
	}

	for _, d := range []time.Duration{0, -time.Second} {
		_, err := New(
			WithStation(testStation(t)),
			WithStrip(testStrip(t)),
			WithPollInterval(d),
		)
		if err == nil {
			t.Errorf("WithPollInterval(%v) expected error, got nil", d)
		}
	}
}

func TestWithBrightness_Validation(t *testing.T) {
	gc, err := New(
		WithStation(testStation(t)),
		WithStrip(testStrip(t)),
		WithBrightness(80),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if gc.Brightness() != 80 {
		t.Errorf("Brightness() = %d, want 80", gc.Brightness())
	}

	_, err = New(
		WithStation(testStation(t)),
		WithStrip(testStrip(t)),
		WithBrightness(0),
	)
	if err == nil {
		t.Error("WithBrightness(0) expected error, got nil")
	}
}

func TestWithPort_Validation(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"valid port", 8080, false},
		{"min port", 1, false},
		{"max port", 65535, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"too large", 65536, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc, err := New(
				WithStation(testStation(t)),
				WithStrip(testStrip(t)),
				WithPort(tt.port),
			)
			if (err != nil) != tt.wantErr {
				t.Fatalf("WithPort(%d) error = %v, wantErr %v", tt.port, err, tt.wantErr)
			}
			if err == nil && gc.Port() != tt.port {
				t.Errorf("Port() = %d, want %d", gc.Port(), tt.port)
			}
		})
	}
}

func TestWithPalette(t *testing.T) {
	custom := MustPalette(Blue, Band{Min: 0, Color: Red})

	gc, err := New(
		WithStation(testStation(t)),
		WithStrip(testStrip(t)),
		WithPalette(custom),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := gc.Palette().Classify(-5); got != Blue {
		t.Errorf("custom palette Classify(-5) = %v, want %v", got, Blue)
	}
}

func TestWithLogger_RejectsNil(t *testing.T) {
	_, err := New(
		WithStation(testStation(t)),
		WithStrip(testStrip(t)),
		WithLogger(nil),
	)
	if err == nil {
		t.Error("WithLogger(nil) expected error, got nil")
	}
}

func TestWithLogger_Valid(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := New(
		WithStation(testStation(t)),
		WithStrip(testStrip(t)),
		WithLogger(logger),
	)
	if err != nil {
		t.Errorf("New() error = %v", err)
	}
}

func TestWithSampleCallback_NilIsIgnored(t *testing.T) {
	_, err := New(
		WithStation(testStation(t)),
		WithStrip(testStrip(t)),
		WithSampleCallback(nil),
	)
	if err != nil {
		t.Errorf("WithSampleCallback(nil) error = %v, want nil (no-op)", err)
	}
}
