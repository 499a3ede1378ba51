package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/davrolle/vservo/internal/servo"
)

const (
	DefaultDt         = 0.04
	DefaultIterations = 1000
	DefaultThreshold  = 1e-6
	DefaultGain       = 0.5
	DefaultGainZero   = 4.0
	DefaultGainInf    = 0.4
	DefaultGainSlope  = 30.0
)

type Config struct {
	Scenario    string     `yaml:"scenario"`
	Mode        string     `yaml:"mode"`
	Interaction string     `yaml:"interaction"`
	Dt          float64    `yaml:"dt"`
	Iterations  int        `yaml:"iterations"`
	Threshold   float64    `yaml:"threshold"`
	Gain        GainConfig `yaml:"gain"`
	InitialPose []float64  `yaml:"initial_pose"`
	DesiredPose []float64  `yaml:"desired_pose"`
}

type GainConfig struct {
	Constant float64 `yaml:"constant"`
	Adaptive bool    `yaml:"adaptive"`
	Zero     float64 `yaml:"zero"`
	Inf      float64 `yaml:"inf"`
	Slope    float64 `yaml:"slope"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    "ibvs4",
		Mode:        "eye-in-hand-camera",
		Interaction: "current",
		Dt:          DefaultDt,
		Iterations:  DefaultIterations,
		Threshold:   DefaultThreshold,
		Gain: GainConfig{
			Constant: DefaultGain,
			Zero:     DefaultGainZero,
			Inf:      DefaultGainInf,
			Slope:    DefaultGainSlope,
		},
		InitialPose: []float64{0.05, -0.05, 1.5, 0.1, -0.1, 0.2},
		DesiredPose: []float64{0, 0, 1, 0, 0, 0},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ServoMode parses the mode field.
func (c *Config) ServoMode() (servo.Mode, error) {
	return servo.ParseMode(c.Mode)
}

// InteractionType parses the interaction field.
func (c *Config) InteractionType() (servo.InteractionType, error) {
	return servo.ParseInteractionType(c.Interaction)
}

// Validate checks the fields a run needs before any scenario is built.
func (c *Config) Validate() error {
	if _, err := c.ServoMode(); err != nil {
		return err
	}
	if _, err := c.InteractionType(); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if len(c.InitialPose) != 6 {
		return fmt.Errorf("initial_pose needs 6 components, got %d", len(c.InitialPose))
	}
	if len(c.DesiredPose) != 6 {
		return fmt.Errorf("desired_pose needs 6 components, got %d", len(c.DesiredPose))
	}
	return nil
}
