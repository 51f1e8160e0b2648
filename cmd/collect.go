package cmd

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davidq/face-corpus/internal/capture"
	"github.com/davidq/face-corpus/internal/config"
	"github.com/davidq/face-corpus/internal/constants"
	"github.com/davidq/face-corpus/internal/corpus"
	"github.com/davidq/face-corpus/internal/pipeline"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect labeled face samples from a live camera",
	Long: `Collect face samples for one person from a live capture device.

Frames are processed continuously against the current database. Keys:

  space  save the detected face as a training sample (and retrain)
  p      save a portrait crop
  q/ESC  quit

Each keypress triggers at most one save; when several faces are present in
the same frame, only the first one is saved.

Examples:
  # Collect samples for alice with the default camera
  face-corpus collect --data ./facedb --name alice --cascade cascade/facefinder

  # Use a second camera and the OpenCV haar detector
  face-corpus collect --data ./facedb --name alice --device 1 \
    --cascade haarcascade_frontalface_default.xml --detector haar`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().String("data", "", "Path to the face database root")
	collectCmd.Flags().String("name", "", "Name of the person being collected (prompted when omitted)")
	collectCmd.Flags().Int("device", 0, "Capture device id")
	collectCmd.Flags().String("cascade", "", "Path to the detection cascade file")
	collectCmd.Flags().String("detector", "", "Detector backend: pigo or haar")
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	dataDir := mustGetString(cmd, "data")
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	if dataDir == "" {
		return fmt.Errorf("no database root given (--data or FACE_CORPUS_DATA_DIR)")
	}

	name := mustGetString(cmd, "name")
	if name == "" {
		var err error
		if name, err = promptName(); err != nil {
			return err
		}
	}

	device := mustGetInt(cmd, "device")
	if !cmd.Flags().Changed("device") {
		device = cfg.Device
	}

	store := corpus.NewStore(dataDir)
	if err := store.EnsureLayout(name); err != nil {
		return err
	}

	sess, err := loadSession(dataDir)
	if err != nil {
		return err
	}

	det, err := newDetector(cfg, mustGetString(cmd, "cascade"), mustGetString(cmd, "detector"))
	if err != nil {
		return err
	}

	cam, err := capture.OpenWebcam(device)
	if err != nil {
		return err
	}
	defer cam.Close()

	keys, err := capture.OpenKeys()
	if err != nil {
		return err
	}
	defer keys.Close()

	signals := pipeline.NewSignals()
	pipe := &pipeline.Pipeline{
		Source:     cam,
		Detector:   det,
		Session:    sess,
		Store:      store,
		Signals:    signals,
		PersonName: name,
		DetectSize: image.Pt(constants.DetectWidth, constants.DetectHeight),
		OnSave: func(kind, path string) {
			fmt.Printf("Saved %s as %s\r\n", kind, path)
		},
		OnError: func(err error) {
			fmt.Fprintf(os.Stderr, "Error: %v\r\n", err)
		},
	}

	fmt.Printf("Collecting samples for %s. Press space to save a face, p for a portrait, q to quit.\r\n", name)

	return pipe.Run(context.Background(), func(records []pipeline.Record) {
		for {
			key, ok := keys.Poll()
			if !ok {
				break
			}
			signals.Apply(key)
		}
	})
}

// promptName asks for the person name on stdin, original-tool style.
func promptName() (string, error) {
	fmt.Print("Please type the name of the current user (no spaces).\nNAME: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("cannot read name: %w", err)
	}

	name := strings.TrimSpace(line)
	if name == "" || strings.ContainsAny(name, " /") {
		return "", fmt.Errorf("invalid person name %q", name)
	}
	return name, nil
}
