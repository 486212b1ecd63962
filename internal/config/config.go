// Package config handles surfterm configuration loading.
package config

// Config holds all plot and display settings.
type Config struct {
	Plot    PlotConfig    `yaml:"plot"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// PlotConfig holds the function and sampling settings.
type PlotConfig struct {
	Preset   string  `yaml:"preset"`
	GridSize int     `yaml:"grid_size"`
	MinX     float64 `yaml:"min_x"`
	MaxX     float64 `yaml:"max_x"`
	MinY     float64 `yaml:"min_y"`
	MaxY     float64 `yaml:"max_y"`
	// AutoScaleZ keeps the height extent proportional to the domain.
	AutoScaleZ bool `yaml:"auto_scale_z"`
}

// DisplayConfig holds rendering and animation settings.
type DisplayConfig struct {
	Mode       string  `yaml:"mode"` // phong, height, height-outline, flat, wire
	FPS        int     `yaml:"fps"`
	AxisTicks  int     `yaml:"axis_ticks"`
	ShowAxes   bool    `yaml:"show_axes"`
	Spin       bool    `yaml:"spin"`
	Saturation float64 `yaml:"saturation"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Plot: PlotConfig{
			Preset:     "ripple",
			GridSize:   48,
			MinX:       -1,
			MaxX:       1,
			MinY:       -1,
			MaxY:       1,
			AutoScaleZ: true,
		},
		Display: DisplayConfig{
			Mode:       "phong",
			FPS:        30,
			AxisTicks:  4,
			ShowAxes:   true,
			Spin:       false,
			Saturation: 1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
