package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gocv.io/x/gocv"

	"github.com/kozaktomas/face-watch/internal/detect"
	"github.com/kozaktomas/face-watch/internal/gallery"
	"github.com/kozaktomas/face-watch/internal/watch"
)

var detectCmd = &cobra.Command{
	Use:   "detect <image>",
	Short: "Detect and recognize faces in a single image file",
	Long: `Run the detection and recognition pipeline once on an image file instead
of a live camera feed.

Examples:
  # Detect faces and print a table
  face-watch detect group.jpg

  # Recognize against a gallery and save the annotated image
  face-watch detect group.jpg --embed-model nn4.small2.v1.t7 --faces ./known --out annotated.jpg

  # Output as JSON
  face-watch detect group.jpg --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().Bool("json", false, "Output as JSON")
	detectCmd.Flags().String("out", "", "Write the annotated image to this file")
	addPipelineFlags(detectCmd)
}

// FaceResult is one detected face in the detect command output.
type FaceResult struct {
	Label    string    `json:"label"`
	Distance *float64  `json:"distance,omitempty"` // set only when a gallery comparison ran
	Box      []int     `json:"box"`                // [x1, y1, x2, y2] in pixels
	BoxRel   []float64 `json:"box_rel"`            // [x1, y1, x2, y2] relative (0-1)
}

// DetectOutput is the JSON output of the detect command.
type DetectOutput struct {
	File   string       `json:"file"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Faces  []FaceResult `json:"faces"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	path := args[0]
	jsonOutput := mustGetBool(cmd, "json")
	outFile := mustGetString(cmd, "out")

	cfg := loadConfig(cmd)

	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		return fmt.Errorf("failed to read image %s", path)
	}
	defer img.Close()

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

	boxes, err := detector.Detect(img)
	if err != nil {
		return fmt.Errorf("failed to detect faces: %w", err)
	}

	width, height := img.Cols(), img.Rows()
	recognize := embedder != nil && g.Size() > 0

	faces := make([]FaceResult, 0, len(boxes))
	labels := make([]string, 0, len(boxes))
	for _, box := range boxes {
		result := FaceResult{
			Label:  gallery.NoIdentity,
			Box:    []int{box.Min.X, box.Min.Y, box.Max.X, box.Max.Y},
			BoxRel: detect.ToRelative(box, width, height),
		}

		if recognize {
			result.Label = gallery.Unknown
			if clamped := detect.Clamp(box, width, height); !clamped.Empty() {
				vec, err := embedder.EmbedRegion(img, clamped)
				if err != nil {
					return fmt.Errorf("failed to embed face at %v: %w", box, err)
				}
				label, dist := g.Match(vec, cfg.Embedding.Threshold)
				result.Label = label
				if !math.IsInf(dist, 1) {
					result.Distance = &dist
				}
			}
		}

		faces = append(faces, result)
		labels = append(labels, result.Label)
	}

	if outFile != "" {
		watch.Annotate(&img, boxes, labels)
		if ok := gocv.IMWrite(outFile, img); !ok {
			return fmt.Errorf("failed to write annotated image %s", outFile)
		}
		if !jsonOutput {
			fmt.Printf("Annotated image saved to %s\n", outFile)
		}
	}

	if jsonOutput {
		return outputJSON(DetectOutput{File: path, Width: width, Height: height, Faces: faces})
	}

	printDetectTable(path, faces)
	return nil
}

func printDetectTable(path string, faces []FaceResult) {
	if len(faces) == 0 {
		fmt.Printf("No faces found in %s\n", path)
		return
	}

	fmt.Printf("Found %d faces in %s:\n\n", len(faces), path)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tLABEL\tDISTANCE\tBOX")
	fmt.Fprintln(w, "-\t-----\t--------\t---")

	for i, face := range faces {
		distStr := "-"
		if face.Distance != nil {
			distStr = fmt.Sprintf("%.4f", *face.Distance)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t(%d,%d)-(%d,%d)\n",
			i+1, face.Label, distStr, face.Box[0], face.Box[1], face.Box[2], face.Box[3])
	}

	w.Flush()
}

func outputJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
