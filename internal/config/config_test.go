package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultBreakoutConfig().Validate(); err != nil {
		t.Fatalf("DefaultBreakoutConfig().Validate() = %v", err)
	}
}

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg, err := decode(DefaultYAML())
	if err != nil {
		t.Fatalf("decode(embedded) = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBreakoutConfig()) {
		t.Errorf("embedded defaults drifted from DefaultBreakoutConfig():\n%+v\n%+v", cfg, DefaultBreakoutConfig())
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BreakoutConfig)
	}{
		{"zero ball speed", func(c *BreakoutConfig) { c.Ball.Speed = 0 }},
		{"min angle too wide", func(c *BreakoutConfig) { c.Ball.MinAngleDeg = 45 }},
		{"inverted size bounds", func(c *BreakoutConfig) { c.Paddle.SizeMin, c.Paddle.SizeMax = 2, 1 }},
		{"inverted speed bounds", func(c *BreakoutConfig) { c.Paddle.SpeedMin, c.Paddle.SpeedMax = 3, 1 }},
		{"hearts above max", func(c *BreakoutConfig) { c.Paddle.Hearts = 9 }},
		{"chance above 100", func(c *BreakoutConfig) { c.Upgrades.Chance = 101 }},
		{"negative chance", func(c *BreakoutConfig) { c.Upgrades.Chance = -1 }},
		{"unknown upgrade", func(c *BreakoutConfig) { c.Upgrades.Types = []string{"multiball"} }},
		{"no types with chance", func(c *BreakoutConfig) { c.Upgrades.Types = nil }},
		{"zero hold ticks", func(c *BreakoutConfig) { c.Input.HoldTicks = 0 }},
		{"negative cooldown", func(c *BreakoutConfig) { c.Projectiles.CooldownMS = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBreakoutConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadBreakoutCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "breakout.yaml")
	if err := os.WriteFile(path, []byte("ball:\n  speed: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBreakout(path)
	if err != nil {
		t.Fatalf("LoadBreakout() = %v", err)
	}
	if cfg.Ball.Speed != 30 {
		t.Errorf("Ball.Speed = %v, expected 30", cfg.Ball.Speed)
	}
	// Keys absent from the file keep their defaults
	if cfg.Paddle.Hearts != DefaultBreakoutConfig().Paddle.Hearts {
		t.Errorf("Paddle.Hearts = %d, expected default", cfg.Paddle.Hearts)
	}
}

func TestLoadBreakoutCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBreakout(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadBreakout() with missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("upgrades:\n  chance: 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBreakout(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadBreakout() invalid = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadBreakoutSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults
	cfg, err := LoadBreakout("")
	if err != nil {
		t.Fatalf("LoadBreakout() = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBreakoutConfig()) {
		t.Error("expected embedded defaults when no files exist")
	}

	// Local configs directory
	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, "configs", "breakout.yaml"), []byte("ball:\n  speed: 11\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadBreakout("")
	if cfg.Ball.Speed != 11 {
		t.Errorf("local config: Ball.Speed = %v, expected 11", cfg.Ball.Speed)
	}

	// User directory wins over local
	userDir := filepath.Join(home, ".breakout", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "breakout.yaml"), []byte("ball:\n  speed: 22\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadBreakout("")
	if cfg.Ball.Speed != 22 {
		t.Errorf("user config: Ball.Speed = %v, expected 22", cfg.Ball.Speed)
	}
}

func TestApplyBreakoutPreset(t *testing.T) {
	base := DefaultBreakoutConfig()

	easy := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&easy, DifficultyEasy)
	if easy.Paddle.Hearts <= base.Paddle.Hearts || easy.Ball.Speed >= base.Ball.Speed {
		t.Errorf("easy preset should add hearts and slow the ball: %+v", easy.Paddle)
	}

	hard := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&hard, DifficultyHard)
	if hard.Paddle.Hearts >= base.Paddle.Hearts || hard.Ball.Speed <= base.Ball.Speed {
		t.Errorf("hard preset should remove hearts and speed the ball up: %+v", hard.Paddle)
	}

	normal := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, base) {
		t.Error("normal preset should not change the config")
	}

	for _, cfg := range []BreakoutConfig{easy, hard} {
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset produced invalid config: %v", err)
		}
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&cfg, DifficultyHard)
	cfg.Upgrades.Types = []string{UpgradeLaser, UpgradeHeart}

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() = %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip changed config:\n%+v\n%+v", got, cfg)
	}
}
