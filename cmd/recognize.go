package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidq/face-corpus/internal/capture"
	"github.com/davidq/face-corpus/internal/config"
	"github.com/davidq/face-corpus/internal/pipeline"
	"github.com/davidq/face-corpus/internal/results"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize",
	Short: "Recognize faces in a static image against the database",
	Long: `Recognize faces found in one image file against the current database and
write the results as a JSON array, one object per detected face:

  [{"prediction":"alice","confidence":0.04,
    "position":{"x":120,"y":80},"size":{"width":96,"height":96}}]

An image with no detected faces produces [].

Examples:
  face-corpus recognize --data ./facedb --input group.jpg \
    --output result.json --cascade cascade/facefinder`,
	RunE: runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)

	recognizeCmd.Flags().String("data", "", "Path to the face database root")
	recognizeCmd.Flags().String("input", "", "Image file to recognize faces in")
	recognizeCmd.Flags().String("output", "", "Path of the JSON result file")
	recognizeCmd.Flags().String("cascade", "", "Path to the detection cascade file")
	recognizeCmd.Flags().String("detector", "", "Detector backend: pigo or haar")
	_ = recognizeCmd.MarkFlagRequired("input")
	_ = recognizeCmd.MarkFlagRequired("output")
}

func runRecognize(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	dataDir := mustGetString(cmd, "data")
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	if dataDir == "" {
		return fmt.Errorf("no database root given (--data or FACE_CORPUS_DATA_DIR)")
	}

	sess, err := loadSession(dataDir)
	if err != nil {
		return err
	}

	det, err := newDetector(cfg, mustGetString(cmd, "cascade"), mustGetString(cmd, "detector"))
	if err != nil {
		return err
	}

	src, err := capture.OpenImageFile(mustGetString(cmd, "input"))
	if err != nil {
		return err
	}
	defer src.Close()

	// Static images are detected at native resolution: DetectSize stays
	// zero, so rectangles need no rescaling.
	pipe := &pipeline.Pipeline{
		Source:   src,
		Detector: det,
		Session:  sess,
	}

	records, err := pipe.ProcessFrame()
	if err != nil {
		return err
	}

	fmt.Printf("%d faces detected\n", len(records))
	for _, r := range records {
		fmt.Printf("  - %s [%f]\n", r.Name, r.Confidence)
	}

	data, err := results.Faces(records)
	if err != nil {
		return err
	}

	output := mustGetString(cmd, "output")
	if err := results.WriteFile(output, data); err != nil {
		return err
	}

	fmt.Printf("Results written to %s\n", output)
	return nil
}
