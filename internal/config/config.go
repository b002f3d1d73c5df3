// Package config handles tool configuration loading and management.
package config

// Config holds all posekit settings.
type Config struct {
	Assets   AssetsConfig   `yaml:"assets"`
	Playback PlaybackConfig `yaml:"playback"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AssetsConfig holds model file locations.
type AssetsConfig struct {
	Dirs []string `yaml:"dirs"` // Directories searched for glTF/GLB files
}

// PlaybackConfig holds clip playback settings.
type PlaybackConfig struct {
	Clip  string  `yaml:"clip"`  // Default clip name, first clip when empty
	FPS   float64 `yaml:"fps"`   // Pose sampling rate
	Speed float64 `yaml:"speed"` // Playback speed multiplier
	Loop  bool    `yaml:"loop"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Assets: AssetsConfig{
			Dirs: []string{"."},
		},
		Playback: PlaybackConfig{
			Clip:  "",
			FPS:   60,
			Speed: 1,
			Loop:  false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
