package config

import "testing"

func TestLoad_EmbeddedDefaults(t *testing.T) {
	cfg := Load()

	p := cfg.DetectorParams
	if p.MinSize != 20 {
		t.Errorf("MinSize = %d, expected 20", p.MinSize)
	}
	if p.MaxSize != 1000 {
		t.Errorf("MaxSize = %d, expected 1000", p.MaxSize)
	}
	if p.ShiftFactor != 0.1 {
		t.Errorf("ShiftFactor = %f, expected 0.1", p.ShiftFactor)
	}
	if p.ScaleFactor != 1.1 {
		t.Errorf("ScaleFactor = %f, expected 1.1", p.ScaleFactor)
	}
	if p.IoUThreshold != 0.2 {
		t.Errorf("IoUThreshold = %f, expected 0.2", p.IoUThreshold)
	}
	if p.QualityThreshold != 5.0 {
		t.Errorf("QualityThreshold = %f, expected 5.0", p.QualityThreshold)
	}

	if cfg.Detector != "pigo" {
		t.Errorf("Detector = %q, expected pigo default", cfg.Detector)
	}
	if cfg.Device != 0 {
		t.Errorf("Device = %d, expected 0", cfg.Device)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FACE_CORPUS_DATA_DIR", "/srv/facedb")
	t.Setenv("FACE_CORPUS_DETECTOR", "haar")
	t.Setenv("FACE_CORPUS_CASCADE", "cascade/facefinder")
	t.Setenv("FACE_CORPUS_DEVICE", "2")
	t.Setenv("FACE_CORPUS_MIN_FACE", "40")
	t.Setenv("FACE_CORPUS_QUALITY", "7.5")

	cfg := Load()

	if cfg.DataDir != "/srv/facedb" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Detector != "haar" {
		t.Errorf("Detector = %q, expected haar", cfg.Detector)
	}
	if cfg.Cascade != "cascade/facefinder" {
		t.Errorf("Cascade = %q", cfg.Cascade)
	}
	if cfg.Device != 2 {
		t.Errorf("Device = %d, expected 2", cfg.Device)
	}
	if cfg.DetectorParams.MinSize != 40 {
		t.Errorf("MinSize = %d, expected 40", cfg.DetectorParams.MinSize)
	}
	if cfg.DetectorParams.QualityThreshold != 7.5 {
		t.Errorf("QualityThreshold = %f, expected 7.5", cfg.DetectorParams.QualityThreshold)
	}
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("FACE_CORPUS_MIN_FACE", "not-a-number")
	t.Setenv("FACE_CORPUS_QUALITY", "-3")

	cfg := Load()

	if cfg.DetectorParams.MinSize != 20 {
		t.Errorf("MinSize = %d, expected embedded default 20", cfg.DetectorParams.MinSize)
	}
	if cfg.DetectorParams.QualityThreshold != 5.0 {
		t.Errorf("QualityThreshold = %f, expected embedded default 5.0", cfg.DetectorParams.QualityThreshold)
	}
}
