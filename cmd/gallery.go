package cmd

import (
	"github.com/spf13/cobra"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Known faces gallery operations",
	Long:  `Commands for inspecting the gallery of known faces used for recognition.`,
}

func init() {
	rootCmd.AddCommand(galleryCmd)
}
