// Package watcher auto-imports survey captures dropped into a directory.
package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"roamscope/internal/codec"
	"roamscope/internal/service"
)

// Watcher watches a drop directory for new survey captures and imports
// them automatically. Files are expected to follow the capture naming
// convention (survey_<floor>-NN.csv).
type Watcher struct {
	dir      string
	surveys  *service.SurveyService
	debounce time.Duration
}

// New creates a new drop-directory watcher
func New(dir string, surveys *service.SurveyService) *Watcher {
	return &Watcher{
		dir:      dir,
		surveys:  surveys,
		debounce: 2 * time.Second,
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch starts watching the drop directory.
// It blocks until the context is cancelled or an error occurs.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		return err
	}

	log.Printf("Watching %s for survey captures", w.dir)

	// Debounce per file so a capture still being written is imported
	// once, after the writes settle.
	debounceTimers := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isCapture(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				path := event.Name
				if timer, exists := debounceTimers[path]; exists {
					timer.Stop()
				}
				debounceTimers[path] = time.AfterFunc(w.debounce, func() {
					w.importCapture(ctx, path)
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			for _, timer := range debounceTimers {
				timer.Stop()
			}
			return ctx.Err()
		}
	}
}

// ImportExisting imports captures already sitting in the drop directory,
// so files dropped while the server was down are not missed.
func (w *Watcher) ImportExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !isCapture(entry.Name()) {
			continue
		}
		w.importCapture(ctx, filepath.Join(w.dir, entry.Name()))
	}
	return nil
}

func (w *Watcher) importCapture(ctx context.Context, path string) {
	floor := codec.FloorFromFilename(path)

	f, err := os.Open(path)
	if err != nil {
		log.Printf("Failed to open capture %s: %v", path, err)
		return
	}
	defer f.Close()

	survey, err := w.surveys.ImportAirodump(ctx, floor, f)
	if err != nil {
		log.Printf("Failed to import capture %s: %v", path, err)
		return
	}

	log.Printf("Auto-imported %s: floor %s, %d APs", filepath.Base(path), floor, len(survey.Observations))
}

func isCapture(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, "survey_") && strings.HasSuffix(name, ".csv")
}
