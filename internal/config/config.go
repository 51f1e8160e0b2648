package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed detector.yaml
var detectorYAML []byte

type Config struct {
	DataDir  string // face database root (FACE_CORPUS_DATA_DIR)
	Cascade  string // path to the detection cascade file (FACE_CORPUS_CASCADE)
	Detector string // detector backend: pigo (default) or haar (FACE_CORPUS_DETECTOR)
	Device   int    // capture device id for live mode (FACE_CORPUS_DEVICE)

	DetectorParams DetectorParams
}

// DetectorParams tunes the pigo cascade. Defaults come from the embedded
// detector.yaml; individual values can be overridden by environment
// variables.
type DetectorParams struct {
	MinSize          int     `yaml:"min_size"`
	MaxSize          int     `yaml:"max_size"`
	ShiftFactor      float64 `yaml:"shift_factor"`
	ScaleFactor      float64 `yaml:"scale_factor"`
	IoUThreshold     float64 `yaml:"iou_threshold"`
	QualityThreshold float64 `yaml:"quality_threshold"`
}

type detectorFile struct {
	Detector DetectorParams `yaml:"detector"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// envString reads an environment variable with a fallback.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var file detectorFile
	if err := yaml.Unmarshal(detectorYAML, &file); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded detector.yaml: " + err.Error())
	}
	params := file.Detector

	params.MinSize = envInt("FACE_CORPUS_MIN_FACE", params.MinSize)
	params.MaxSize = envInt("FACE_CORPUS_MAX_FACE", params.MaxSize)
	params.ShiftFactor = envFloat("FACE_CORPUS_SHIFT_FACTOR", params.ShiftFactor)
	params.ScaleFactor = envFloat("FACE_CORPUS_SCALE_FACTOR", params.ScaleFactor)
	params.IoUThreshold = envFloat("FACE_CORPUS_IOU", params.IoUThreshold)
	params.QualityThreshold = envFloat("FACE_CORPUS_QUALITY", params.QualityThreshold)

	return &Config{
		DataDir:        os.Getenv("FACE_CORPUS_DATA_DIR"),
		Cascade:        os.Getenv("FACE_CORPUS_CASCADE"),
		Detector:       envString("FACE_CORPUS_DETECTOR", "pigo"),
		Device:         envInt("FACE_CORPUS_DEVICE", 0),
		DetectorParams: params,
	}
}
