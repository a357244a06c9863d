package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var galleryListCmd = &cobra.Command{
	Use:   "list",
	Short: "Embed the known faces directory and list its entries",
	Long: `Build the gallery the same way the watch command does and print what was
loaded. Useful for checking which identity key each image file produces
before going live.

Examples:
  # List the gallery with a local recognition model
  face-watch gallery list --embed-model nn4.small2.v1.t7 --faces ./known

  # Output as JSON
  face-watch gallery list --faces ./known --json`,
	RunE: runGalleryList,
}

func init() {
	galleryCmd.AddCommand(galleryListCmd)

	galleryListCmd.Flags().Bool("json", false, "Output as JSON")
	addPipelineFlags(galleryListCmd)
}

// GalleryEntry is one known face in the gallery list output.
type GalleryEntry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	File string `json:"file"`
	Dim  int    `json:"dim"`
}

func runGalleryList(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")
	cfg := loadConfig(cmd)

	if cfg.Gallery.Dir == "" {
		return errors.New("no known faces directory configured, use --faces or FACEWATCH_FACES_DIR")
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	if embedder == nil {
		return errors.New("no embedding model or server configured, use --embed-model or --embed-url")
	}
	defer embedder.Close()

	g, err := loadGallery(cfg, embedder)
	if err != nil {
		return err
	}

	entries := make([]GalleryEntry, 0, g.Size())
	for _, e := range g.Entries() {
		entries = append(entries, GalleryEntry{
			Key:  e.Key,
			Name: e.Name,
			File: e.File,
			Dim:  len(e.Vector),
		})
	}

	if jsonOutput {
		return outputJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Printf("No known faces found in %s\n", cfg.Gallery.Dir)
		return nil
	}

	fmt.Printf("Loaded %d known faces from %s:\n\n", len(entries), cfg.Gallery.Dir)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tFILE\tDIM")
	fmt.Fprintln(w, "---\t----\t----\t---")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.Key, e.Name, e.File, e.Dim)
	}
	w.Flush()

	return nil
}
