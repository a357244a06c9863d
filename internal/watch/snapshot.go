package watch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gocv.io/x/gocv"
)

// snapshot writes the current annotated frame into the snapshot directory.
// Names are random so repeated presses never overwrite each other.
func (w *Watcher) snapshot(frame gocv.Mat) error {
	if err := os.MkdirAll(w.opts.SnapshotDir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	path := filepath.Join(w.opts.SnapshotDir, snapshotName())
	if ok := gocv.IMWrite(path, frame); !ok {
		return fmt.Errorf("failed to write snapshot %s", path)
	}

	log.Printf("saved snapshot %s", path)
	return nil
}

func snapshotName() string {
	return uuid.New().String() + ".jpg"
}
