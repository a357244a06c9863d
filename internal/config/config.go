package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the optional YAML configuration file read from the working
// directory. Environment variables always win over file values.
const ConfigFile = "face-watch.yaml"

type Config struct {
	Camera    CameraConfig    `yaml:"camera"`
	Detector  DetectorConfig  `yaml:"detector"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Gallery   GalleryConfig   `yaml:"gallery"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
}

type CameraConfig struct {
	Device int `yaml:"device"` // capture device index, 0 = default webcam
}

type DetectorConfig struct {
	Kind       string  `yaml:"kind"`       // "cascade" or "dnn"
	Cascade    string  `yaml:"cascade"`    // Haar cascade XML file
	Prototxt   string  `yaml:"prototxt"`   // Caffe architecture descriptor
	Caffemodel string  `yaml:"caffemodel"` // Caffe trained weights
	Confidence float64 `yaml:"confidence"` // minimum detection score for the DNN variant
}

type EmbeddingConfig struct {
	Model     string  `yaml:"model"`     // local recognition model file, empty disables recognition
	InputSize int     `yaml:"input_size"` // square input edge expected by the model
	URL       string  `yaml:"url"`       // remote embedding server, alternative to Model
	Threshold float64 `yaml:"threshold"` // maximum match distance before Unknown
}

type GalleryConfig struct {
	Dir string `yaml:"dir"` // flat directory of labeled face images
}

type SnapshotConfig struct {
	Dir string `yaml:"dir"` // where annotated frames are saved
}

// envInt reads an environment variable and parses it as a non-negative integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
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

// envString returns the env value or the default when unset.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// Load builds the configuration. Defaults come first, then face-watch.yaml
// from the working directory if present, then environment variables.
func Load() *Config {
	cfg := defaults()

	if data, err := os.ReadFile(ConfigFile); err == nil {
		// Invalid YAML is ignored rather than fatal; env vars and
		// defaults still produce a usable configuration.
		_ = yaml.Unmarshal(data, cfg)
	}

	cfg.Camera.Device = envInt("FACEWATCH_CAMERA_DEVICE", cfg.Camera.Device)
	cfg.Detector.Kind = envString("FACEWATCH_DETECTOR", cfg.Detector.Kind)
	cfg.Detector.Cascade = envString("FACEWATCH_CASCADE_FILE", cfg.Detector.Cascade)
	cfg.Detector.Prototxt = envString("FACEWATCH_DNN_PROTOTXT", cfg.Detector.Prototxt)
	cfg.Detector.Caffemodel = envString("FACEWATCH_DNN_CAFFEMODEL", cfg.Detector.Caffemodel)
	cfg.Detector.Confidence = envFloat("FACEWATCH_CONFIDENCE", cfg.Detector.Confidence)
	cfg.Embedding.Model = envString("FACEWATCH_EMBED_MODEL", cfg.Embedding.Model)
	cfg.Embedding.InputSize = envInt("FACEWATCH_EMBED_INPUT_SIZE", cfg.Embedding.InputSize)
	cfg.Embedding.URL = envString("FACEWATCH_EMBED_URL", cfg.Embedding.URL)
	cfg.Embedding.Threshold = envFloat("FACEWATCH_MATCH_THRESHOLD", cfg.Embedding.Threshold)
	cfg.Gallery.Dir = envString("FACEWATCH_FACES_DIR", cfg.Gallery.Dir)
	cfg.Snapshot.Dir = envString("FACEWATCH_SNAPSHOT_DIR", cfg.Snapshot.Dir)

	return cfg
}

func defaults() *Config {
	return &Config{
		Camera: CameraConfig{
			Device: 0,
		},
		Detector: DetectorConfig{
			Kind:       "dnn",
			Cascade:    "haarcascade_frontalface_default.xml",
			Prototxt:   "deploy.prototxt",
			Caffemodel: "res10_300x300_ssd_iter_140000.caffemodel",
			Confidence: 0.5,
		},
		Embedding: EmbeddingConfig{
			InputSize: 96,
			Threshold: 1.0,
		},
		Snapshot: SnapshotConfig{
			Dir: "snapshots",
		},
	}
}
