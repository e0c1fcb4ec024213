package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ironsheep/segment-tools-mcp/internal/segment"
)

// Environment variables that override file and default settings.
const (
	EnvInput       = "SEGMENT_MCP_INPUT"
	EnvOutputDir   = "SEGMENT_MCP_OUTPUT_DIR"
	EnvJPEGQuality = "SEGMENT_MCP_JPEG_QUALITY"
)

// Config holds the application configuration
type Config struct {
	Input      string           `json:"input"`
	Thresholds ThresholdsConfig `json:"thresholds"`
	Output     OutputConfig     `json:"output"`
}

// ThresholdsConfig holds classifier and labeler thresholds on a 0-255 scale
type ThresholdsConfig struct {
	Upper  float64 `json:"upper"`
	Lower  float64 `json:"lower"`
	Cutoff int     `json:"cutoff"`
}

// OutputConfig holds artifact names. Relative names are resolved against Dir.
type OutputConfig struct {
	Dir             string `json:"dir"`
	RedPixels       string `json:"red_pixels"`
	CyanPixels      string `json:"cyan_pixels"`
	DiscoveryReport string `json:"discovery_report"`
	RankedReport    string `json:"ranked_report"`
	TopTwo          string `json:"top_two"`
	JPEGQuality     int    `json:"jpeg_quality"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Input: "./data/map.png",
		Thresholds: ThresholdsConfig{
			Upper:  segment.DefaultUpper,
			Lower:  segment.DefaultLower,
			Cutoff: segment.DefaultCutoff,
		},
		Output: OutputConfig{
			Dir:             ".",
			RedPixels:       "map-red-pixels.jpg",
			CyanPixels:      "map-cyan-pixels.jpg",
			DiscoveryReport: "cc-output-2a.txt",
			RankedReport:    "cc-output-2b.txt",
			TopTwo:          "cc-top-2.jpg",
			JPEGQuality:     95,
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Fields missing from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides settings from SEGMENT_MCP_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvInput); v != "" {
		c.Input = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv(EnvJPEGQuality); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJPEGQuality, err)
		}
		c.Output.JPEGQuality = q
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	t := c.Thresholds
	if math.IsNaN(t.Upper) || math.IsInf(t.Upper, 0) || math.IsNaN(t.Lower) || math.IsInf(t.Lower, 0) {
		return fmt.Errorf("thresholds.upper and thresholds.lower must be finite")
	}

	if t.Cutoff < 0 || t.Cutoff > 255 {
		return fmt.Errorf("thresholds.cutoff must be between 0 and 255")
	}

	if c.Input == "" {
		return fmt.Errorf("input cannot be empty")
	}

	o := c.Output
	for name, v := range map[string]string{
		"output.red_pixels":       o.RedPixels,
		"output.cyan_pixels":      o.CyanPixels,
		"output.discovery_report": o.DiscoveryReport,
		"output.ranked_report":    o.RankedReport,
		"output.top_two":          o.TopTwo,
	} {
		if v == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
	}

	if o.JPEGQuality < 1 || o.JPEGQuality > 100 {
		return fmt.Errorf("output.jpeg_quality must be between 1 and 100")
	}

	return nil
}

// Path resolves an artifact name against the output directory. Absolute
// names are returned unchanged.
func (o OutputConfig) Path(name string) string {
	if filepath.IsAbs(name) || o.Dir == "" {
		return name
	}
	return filepath.Join(o.Dir, name)
}

// ClassifiedPath returns the resolved mask path for mode.
func (o OutputConfig) ClassifiedPath(mode segment.Mode) string {
	if mode == segment.ModeCyan {
		return o.Path(o.CyanPixels)
	}
	return o.Path(o.RedPixels)
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "segment-tools-mcp", "config.json")
}
