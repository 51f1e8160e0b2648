package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidq/face-corpus/internal/config"
	"github.com/davidq/face-corpus/internal/corpus"
	"github.com/davidq/face-corpus/internal/results"
)

var portraitsCmd = &cobra.Command{
	Use:   "portraits",
	Short: "Look up the portrait files stored for a person",
	Long: `Write the portrait file paths stored for a person name as a JSON array of
strings. An unknown name or a database without portraits produces [].

Examples:
  face-corpus portraits --data ./facedb --name alice --output portraits.json`,
	RunE: runPortraits,
}

func init() {
	rootCmd.AddCommand(portraitsCmd)

	portraitsCmd.Flags().String("data", "", "Path to the face database root")
	portraitsCmd.Flags().String("name", "", "Name of the person to look up")
	portraitsCmd.Flags().String("output", "", "Path of the JSON result file")
	_ = portraitsCmd.MarkFlagRequired("name")
	_ = portraitsCmd.MarkFlagRequired("output")
}

func runPortraits(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	dataDir := mustGetString(cmd, "data")
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	if dataDir == "" {
		return fmt.Errorf("no database root given (--data or FACE_CORPUS_DATA_DIR)")
	}

	name := mustGetString(cmd, "name")

	paths, err := corpus.NewStore(dataDir).PortraitPaths(name)
	if err != nil {
		return err
	}

	data, err := results.Paths(paths)
	if err != nil {
		return err
	}

	output := mustGetString(cmd, "output")
	if err := results.WriteFile(output, data); err != nil {
		return err
	}

	fmt.Printf("%d portraits of %s written to %s\n", len(paths), name, output)
	return nil
}
