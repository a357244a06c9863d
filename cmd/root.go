package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "face-watch",
	Short: "A CLI tool for watching a webcam and recognizing faces",
	Long: `Face Watch reads frames from a webcam, finds faces with OpenCV (a Haar
cascade or a Caffe SSD network) and labels them against a gallery of
known faces using embedding distance.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
