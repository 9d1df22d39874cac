package glowcast

import (
	"net/url"
	"testing"
	"time"
)

func TestNewStation_Defaults(t *testing.T) {
	st, err := NewStation("Home", "2643743", "secret")
	if err != nil {
		t.Fatalf("NewStation() error = %v", err)
	}

	if st.Name() != "Home" {
		t.Errorf("Name() = %q, want %q", st.Name(), "Home")
	}
	if st.LocationID() != "2643743" {
		t.Errorf("LocationID() = %q, want %q", st.LocationID(), "2643743")
	}
	if st.Units() != "metric" {
		t.Errorf("Units() = %q, want %q", st.Units(), "metric")
	}
	if st.Timeout() != 10*time.Second {
		t.Errorf("Timeout() = %v, want 10s", st.Timeout())
	}
	if st.Extractor() != nil {
		t.Error("Extractor() expected nil by default")
	}
}

func TestNewStation_RequiredFields(t *testing.T) {
	tests := []struct {
		name       string
		stName     string
		locationID string
		apiKey     string
	}{
		{"empty name", "", "2643743", "secret"},
		{"empty location", "Home", "", "secret"},
		{"empty api key", "Home", "2643743", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStation(tt.stName, tt.locationID, tt.apiKey)
			if err == nil {
				t.Error("NewStation() expected error, got nil")
			}
		})
	}
}

func TestStation_URL(t *testing.T) {
	st, err := NewStation("Home", "2643743", "secret")
	if err != nil {
		t.Fatalf("NewStation() error = %v", err)
	}

	u, err := url.Parse(st.URL())
	if err != nil {
		t.Fatalf("URL() produced unparseable URL: %v", err)
	}

	if u.Host != "api.openweathermap.org" {
		t.Errorf("URL host = %q, want %q", u.Host, "api.openweathermap.org")
	}
	if u.Path != "/data/2.5/weather" {
		t.Errorf("URL path = %q, want %q", u.Path, "/data/2.5/weather")
	}

	q := u.Query()
	if got := q.Get("id"); got != "2643743" {
		t.Errorf("query id = %q, want %q", got, "2643743")
	}
	if got := q.Get("appid"); got != "secret" {
		t.Errorf("query appid = %q, want %q", got, "secret")
	}
	if got := q.Get("units"); got != "metric" {
		t.Errorf("query units = %q, want %q", got, "metric")
	}
}

func TestStation_URLWithCustomBase(t *testing.T) {
	st, err := NewStation("Test", "42", "key",
		WithBaseURL("http://localhost:9999/weather"),
	)
	if err != nil {
		t.Fatalf("NewStation() error = %v", err)
	}

	u, err := url.Parse(st.URL())
	if err != nil {
		t.Fatalf("URL() produced unparseable URL: %v", err)
	}
	if u.Host != "localhost:9999" {
		t.Errorf("URL host = %q, want %q", u.Host, "localhost:9999")
	}
	if got := u.Query().Get("id"); got != "42" {
		t.Errorf("query id = %q, want %q", got, "42")
	}
}

func TestWithBaseURL_Validation(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		wantErr bool
	}{
		{"valid http", "http://example.com/weather", false},
		{"valid https", "https://example.com/weather", false},
		{"no scheme", "example.com/weather", true},
		{"ftp scheme", "ftp://example.com", true},
		{"garbage", "://///", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStation("Test", "1", "key", WithBaseURL(tt.rawURL))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewStation(WithBaseURL(%q)) error = %v, wantErr %v", tt.rawURL, err, tt.wantErr)
			}
		})
	}
}

func TestWithUnits_Validation(t *testing.T) {
	for _, units := range []string{"metric", "imperial", "standard"} {
		st, err := NewStation("Test", "1", "key", WithUnits(units))
		if err != nil {
			t.Errorf("WithUnits(%q) error = %v", units, err)
			continue
		}
		if st.Units() != units {
			t.Errorf("Units() = %q, want %q", st.Units(), units)
		}
	}

	if _, err := NewStation("Test", "1", "key", WithUnits("kelvin")); err == nil {
		t.Error("WithUnits(\"kelvin\") expected error, got nil")
	}
}

func TestWithTimeout_Validation(t *testing.T) {
	st, err := NewStation("Test", "1", "key", WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("NewStation() error = %v", err)
	}
	if st.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", st.Timeout())
	}

	if _, err := NewStation("Test", "1", "key", WithTimeout(0)); err == nil {
		t.Error("WithTimeout(0) expected error, got nil")
	}
	if _, err := NewStation("Test", "1", "key", WithTimeout(-time.Second)); err == nil {
		t.Error("WithTimeout(-1s) expected error, got nil")
	}
}

func TestWithFieldPath(t *testing.T) {
	st, err := NewStation("Test", "1", "key", WithFieldPath("data.temperature"))
	if err != nil {
		t.Fatalf("NewStation() error = %v", err)
	}

	extractor := st.Extractor()
	if extractor == nil {
		t.Fatal("Extractor() = nil, want custom extractor")
	}

	got, err := extractor([]byte(`{"data": {"temperature": 18.5}}`))
	if err != nil {
		t.Fatalf("extractor error = %v", err)
	}
	if got != 18.5 {
		t.Errorf("extractor = %v, want 18.5", got)
	}

	if _, err := NewStation("Test", "1", "key", WithFieldPath("")); err == nil {
		t.Error("WithFieldPath(\"\") expected error, got nil")
	}
}

func TestWithExtractor(t *testing.T) {
	custom := func(body []byte) (float64, error) { return 99, nil }

	st, err := NewStation("Test", "1", "key", WithExtractor(custom))
	if err != nil {
		t.Fatalf("NewStation() error = %v", err)
	}

	got, err := st.Extractor()(nil)
	if err != nil || got != 99 {
		t.Errorf("extractor = (%v, %v), want (99, nil)", got, err)
	}

	if _, err := NewStation("Test", "1", "key", WithExtractor(nil)); err == nil {
		t.Error("WithExtractor(nil) expected error, got nil")
	}
}
