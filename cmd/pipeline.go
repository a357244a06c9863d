package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-watch/internal/config"
	"github.com/kozaktomas/face-watch/internal/detect"
	"github.com/kozaktomas/face-watch/internal/embed"
	"github.com/kozaktomas/face-watch/internal/gallery"
)

// addPipelineFlags registers the model selection flags shared by the watch,
// detect and gallery commands. Defaults are empty so loadConfig can tell
// whether a flag was set; unset flags fall back to the config file and env.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("detector", "", "Detector variant: cascade or dnn")
	cmd.Flags().String("cascade", "", "Haar cascade XML file (cascade detector)")
	cmd.Flags().String("prototxt", "", "Caffe deploy descriptor (dnn detector)")
	cmd.Flags().String("caffemodel", "", "Caffe trained weights (dnn detector)")
	cmd.Flags().Float64("confidence", 0, "Minimum detection confidence (dnn detector)")
	cmd.Flags().String("embed-model", "", "Local face recognition model file")
	cmd.Flags().String("embed-url", "", "Embedding server URL, alternative to --embed-model")
	cmd.Flags().Float64("threshold", 0, "Maximum embedding distance for a match")
	cmd.Flags().String("faces", "", "Directory with labeled images of known faces")
}

// loadConfig builds the configuration and lets explicitly set flags win over
// the config file and environment.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()

	if cmd.Flags().Changed("detector") {
		cfg.Detector.Kind = mustGetString(cmd, "detector")
	}
	if cmd.Flags().Changed("cascade") {
		cfg.Detector.Cascade = mustGetString(cmd, "cascade")
	}
	if cmd.Flags().Changed("prototxt") {
		cfg.Detector.Prototxt = mustGetString(cmd, "prototxt")
	}
	if cmd.Flags().Changed("caffemodel") {
		cfg.Detector.Caffemodel = mustGetString(cmd, "caffemodel")
	}
	if cmd.Flags().Changed("confidence") {
		cfg.Detector.Confidence = mustGetFloat64(cmd, "confidence")
	}
	if cmd.Flags().Changed("embed-model") {
		cfg.Embedding.Model = mustGetString(cmd, "embed-model")
	}
	if cmd.Flags().Changed("embed-url") {
		cfg.Embedding.URL = mustGetString(cmd, "embed-url")
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Embedding.Threshold = mustGetFloat64(cmd, "threshold")
	}
	if cmd.Flags().Changed("faces") {
		cfg.Gallery.Dir = mustGetString(cmd, "faces")
	}

	return cfg
}

func buildDetector(cfg *config.Config) (*detect.Detector, error) {
	return detect.New(detect.Options{
		Kind:       detect.Kind(cfg.Detector.Kind),
		Cascade:    cfg.Detector.Cascade,
		Prototxt:   cfg.Detector.Prototxt,
		Caffemodel: cfg.Detector.Caffemodel,
		Confidence: float32(cfg.Detector.Confidence),
	})
}

// buildEmbedder picks the embedding backend. A remote server wins over a
// local model; with neither configured it returns nil and recognition is
// disabled.
func buildEmbedder(cfg *config.Config) (embed.Embedder, error) {
	switch {
	case cfg.Embedding.URL != "":
		return embed.NewClient(cfg.Embedding.URL), nil
	case cfg.Embedding.Model != "":
		return embed.NewNet(cfg.Embedding.Model, cfg.Embedding.InputSize)
	default:
		return nil, nil
	}
}

// loadGallery embeds the known faces directory with a progress bar. Without
// an embedder or a configured directory the gallery is empty and the watcher
// falls back to placeholder labels.
func loadGallery(cfg *config.Config, embedder embed.Embedder) (*gallery.Gallery, error) {
	if embedder == nil || cfg.Gallery.Dir == "" {
		return gallery.Empty(), nil
	}

	var bar *progressbar.ProgressBar
	g, err := gallery.Load(cfg.Gallery.Dir, embedder, gallery.LoadOptions{
		OnProgress: func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Embedding known faces"),
					progressbar.OptionShowCount(),
					progressbar.OptionShowIts(),
					progressbar.OptionSetItsString("faces"),
					progressbar.OptionShowElapsedTimeOnFinish(),
				)
			}
			bar.Add(1)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load known faces from %s: %w", cfg.Gallery.Dir, err)
	}
	if bar != nil {
		fmt.Println()
	}

	return g, nil
}
