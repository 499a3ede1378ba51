package config

var Presets = map[string]map[string]*Config{
	"point": {
		"near": {
			Scenario: "point", Dt: 0.04, Iterations: 500,
			Gain:        GainConfig{Constant: 0.5},
			InitialPose: []float64{0.1, 0.05, 1.2, 0, 0, 0},
			DesiredPose: []float64{0, 0, 1, 0, 0, 0},
		},
		"far": {
			Scenario: "point", Dt: 0.04, Iterations: 1500,
			Gain:        GainConfig{Constant: 0.5},
			InitialPose: []float64{0.4, -0.3, 2.5, 0, 0, 0},
			DesiredPose: []float64{0, 0, 1, 0, 0, 0},
		},
	},
	"ibvs4": {
		"approach": {
			Scenario: "ibvs4", Dt: 0.04, Iterations: 800,
			Gain:        GainConfig{Constant: 0.5},
			InitialPose: []float64{0, 0, 2, 0, 0, 0},
			DesiredPose: []float64{0, 0, 1, 0, 0, 0},
		},
		"rotated": {
			Scenario: "ibvs4", Dt: 0.04, Iterations: 1200,
			Gain:        GainConfig{Constant: 0.5},
			InitialPose: []float64{0.1, -0.1, 1.8, 0.15, -0.1, 0.4},
			DesiredPose: []float64{0, 0, 1, 0, 0, 0},
		},
		"damped": {
			Scenario: "ibvs4", Dt: 0.04, Iterations: 800,
			Gain:        GainConfig{Adaptive: true, Zero: 4.0, Inf: 0.4, Slope: 30.0},
			InitialPose: []float64{0.1, -0.1, 1.8, 0.15, -0.1, 0.4},
			DesiredPose: []float64{0, 0, 1, 0, 0, 0},
		},
	},
	"pbvs": {
		"near": {
			Scenario: "pbvs", Dt: 0.04, Iterations: 600,
			Gain:        GainConfig{Constant: 0.5},
			InitialPose: []float64{0.1, -0.1, 1.3, 0.1, 0, 0.2},
			DesiredPose: []float64{0, 0, 1, 0, 0, 0},
		},
		"wide": {
			Scenario: "pbvs", Dt: 0.04, Iterations: 1500,
			Gain:        GainConfig{Constant: 0.5},
			InitialPose: []float64{0.5, 0.3, 2.5, 0.3, -0.3, 0.8},
			DesiredPose: []float64{0, 0, 1, 0, 0, 0},
		},
	},
	"pose": {
		"gentle": {
			Scenario: "pose", Dt: 0.04, Iterations: 600,
			Gain:        GainConfig{Constant: 0.5},
			InitialPose: []float64{0.1, -0.05, 1.4, 0.1, -0.1, 0.15},
			DesiredPose: []float64{0, 0, 1, 0, 0, 0},
		},
	},
	"hybrid": {
		"standard": {
			Scenario: "hybrid", Dt: 0.04, Iterations: 800,
			Gain:        GainConfig{Constant: 0.5},
			InitialPose: []float64{0.1, -0.1, 1.6, 0.1, -0.1, 0.3},
			DesiredPose: []float64{0, 0, 1, 0, 0, 0},
		},
	},
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
