package types

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"valid sqlite", Config{Backend: BackendSQLite, DataDir: "/tmp/x"}, nil},
		{"valid http", Config{Backend: BackendHTTP, BaseURL: "https://api.example.com"}, nil},
		{"empty backend", Config{}, ErrBackendEmpty},
		{"unknown backend", Config{Backend: "redis"}, ErrBackendUnknown},
		{"http without base url", Config{Backend: BackendHTTP}, ErrBaseURLEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); err != tt.wantErr {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigEndpoints(t *testing.T) {
	t.Run("defaults apply when unset", func(t *testing.T) {
		var c Config
		if c.ViewsEndpoint() != DefaultViewsPath {
			t.Fatalf("expected %q, got %q", DefaultViewsPath, c.ViewsEndpoint())
		}
		if c.StatesEndpoint() != DefaultStatesPath {
			t.Fatalf("expected %q, got %q", DefaultStatesPath, c.StatesEndpoint())
		}
	})

	t.Run("explicit paths win", func(t *testing.T) {
		c := Config{ViewsPath: "grid-views", StatesPath: "grid-states"}
		if c.ViewsEndpoint() != "grid-views" || c.StatesEndpoint() != "grid-states" {
			t.Fatalf("expected explicit paths, got %q %q", c.ViewsEndpoint(), c.StatesEndpoint())
		}
	})
}
