package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Event is a single run event written to the JSONL log.
type Event struct {
	Time     time.Time `json:"time"`
	Type     string    `json:"type"`
	WorkerID int       `json:"worker_id,omitempty"`
	Message  string    `json:"message,omitempty"`
}

// Recorder writes run events to a per-run JSONL file.
type Recorder struct {
	Dir     string
	RunID   string
	LogPath string

	mu   sync.Mutex
	file *os.File
}

// NewRecorder creates the log directory and a fresh JSONL file for this run.
func NewRecorder(baseDir string) (*Recorder, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("log base dir is empty")
	}
	if abs, err := filepath.Abs(baseDir); err == nil {
		baseDir = abs
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := runID()
	logPath := filepath.Join(baseDir, fmt.Sprintf("%s.jsonl", id))
	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	return &Recorder{
		Dir:     baseDir,
		RunID:   id,
		LogPath: logPath,
		file:    file,
	}, nil
}

// Record appends one event to the run log. Events may arrive from multiple
// goroutines.
func (r *Recorder) Record(ev Event) error {
	if r == nil || r.file == nil {
		return nil
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now().UTC()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

// Close closes the run log file.
func (r *Recorder) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}

func runID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}

// FindLatestLog finds the most recent JSONL log file in a directory.
func FindLatestLog(logDir string) (string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var latest string
	var latestTime time.Time

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latest = filepath.Join(logDir, entry.Name())
		}
	}

	return latest, nil
}
