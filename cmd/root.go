package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "face-corpus",
	Short: "A CLI tool for collecting and recognizing faces in a directory-backed database",
	Long: `Face Corpus manages a directory-structured database of labeled face images
and drives a face recognition pipeline on top of it: collect labeled samples
from a live camera, recognize faces in a static image against the current
database, and query the portrait files stored for a person.

The database layout is two levels deep:

  <root>/faces/<name>/<timestamp>_<sequence>.jpg
  <root>/protraits/<name>/<timestamp>_<sequence>.jpg`,
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
