package config

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Paddle.Hearts = 5
		cfg.Paddle.MaxHearts = max(cfg.Paddle.MaxHearts, 7)
		cfg.Paddle.Width = cfg.Paddle.Width * 1.2
		cfg.Ball.Speed = cfg.Ball.Speed * 0.8
		cfg.Upgrades.Chance = min(100, cfg.Upgrades.Chance+20)
	case DifficultyHard:
		cfg.Paddle.Hearts = 2
		cfg.Paddle.Width = cfg.Paddle.Width * 0.8
		cfg.Ball.Speed = cfg.Ball.Speed * 1.3
		cfg.Upgrades.Chance = max(0, cfg.Upgrades.Chance-15)
	}
	cfg.Paddle.Hearts = min(cfg.Paddle.Hearts, cfg.Paddle.MaxHearts)
}
