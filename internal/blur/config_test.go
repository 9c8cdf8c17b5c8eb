package blur

import (
	"errors"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"low negative", func(c *Config) { c.Low = -0.1 }},
		{"low above one", func(c *Config) { c.Low = 1.5; c.High = 1 }},
		{"high negative", func(c *Config) { c.High = -0.01 }},
		{"high above one", func(c *Config) { c.High = 1.01 }},
		{"low above high", func(c *Config) { c.Low = 0.5; c.High = 0.4 }},
		{"radius zero", func(c *Config) { c.Radius = 0 }},
		{"radius too large", func(c *Config) { c.Radius = 101 }},
		{"block pct zero", func(c *Config) { c.BlockPct = 0 }},
		{"block pct too large", func(c *Config) { c.BlockPct = 101 }},
		{"block width zero", func(c *Config) { c.BlockWidth = 0 }},
		{"block width below sentinel", func(c *Config) { c.BlockWidth = -2 }},
		{"block height zero", func(c *Config) { c.BlockHeight = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_ValidateBoundaries(t *testing.T) {
	cfg := Config{Low: 0, High: 1, Radius: 100, BlockPct: 1, BlockWidth: 1, BlockHeight: 64}
	if err := cfg.Validate(); err != nil {
		t.Errorf("boundary config rejected: %v", err)
	}
	cfg = Config{Low: 0.3, High: 0.3, Radius: 1, BlockPct: 100, BlockWidth: WholePlane, BlockHeight: WholePlane}
	if err := cfg.Validate(); err != nil {
		t.Errorf("low == high rejected: %v", err)
	}
}

func TestConfig_BlockSize(t *testing.T) {
	cfg := DefaultConfig()
	bw, bh := cfg.blockSize(640, 480)
	if bw != 640 || bh != 480 {
		t.Errorf("whole plane block: got %dx%d, want 640x480", bw, bh)
	}

	cfg.BlockWidth, cfg.BlockHeight = 32, 16
	bw, bh = cfg.blockSize(640, 480)
	if bw != 32 || bh != 16 {
		t.Errorf("explicit block: got %dx%d, want 32x16", bw, bh)
	}
}

func TestNewDetector_Errors(t *testing.T) {
	if _, err := NewDetector(DefaultConfig(), 9); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("bit depth 9: got %v, want ErrUnsupportedBitDepth", err)
	}

	cfg := DefaultConfig()
	cfg.Radius = 0
	if _, err := NewDetector(cfg, 8); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("radius 0: got %v, want ErrInvalidConfig", err)
	}
}
