package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-watch/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the webcam and recognize faces live",
	Long: `Open the webcam and run the live pipeline: every frame is scanned for
faces and each face is labeled with the closest known identity, Unknown
when nothing in the gallery is close enough, or a placeholder when
recognition is not configured.

Keys: ESC or q quits, s saves the current annotated frame.

Examples:
  # Watch with the default DNN detector and a local recognition model
  face-watch watch --embed-model nn4.small2.v1.t7 --faces ./known

  # Use the Haar cascade detector on a second camera
  face-watch watch --device 1 --detector cascade --cascade haarcascade_frontalface_default.xml

  # Detection only, no recognition
  face-watch watch`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Int("device", 0, "Capture device index")
	watchCmd.Flags().String("snapshots", "", "Directory for saved frames")
	addPipelineFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if cmd.Flags().Changed("device") {
		cfg.Camera.Device = mustGetInt(cmd, "device")
	}
	if cmd.Flags().Changed("snapshots") {
		cfg.Snapshot.Dir = mustGetString(cmd, "snapshots")
	}

	detector, err := buildDetector(cfg)
	if err != nil {
		return fmt.Errorf("failed to create detector: %w", err)
	}
	defer detector.Close()

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	if embedder != nil {
		defer embedder.Close()
	}

	g, err := loadGallery(cfg, embedder)
	if err != nil {
		return err
	}

	if embedder == nil {
		fmt.Println("Recognition disabled: no embedding model or server configured")
	} else if g.Size() == 0 {
		fmt.Println("Gallery is empty, faces will be labeled without identity")
	} else {
		fmt.Printf("Known faces: %d\n", g.Size())
	}
	fmt.Printf("Watching device %d with %s detector, press ESC or q to quit\n", cfg.Camera.Device, detector.Kind())

	watcher := watch.New(watch.Options{
		Device:      cfg.Camera.Device,
		Detector:    detector,
		Embedder:    embedder,
		Gallery:     g,
		Threshold:   cfg.Embedding.Threshold,
		SnapshotDir: cfg.Snapshot.Dir,
	})
	return watcher.Run()
}
