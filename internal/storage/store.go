// Package storage keeps recorded runs on disk, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/algoviz/internal/stepper"
	"github.com/san-kum/algoviz/internal/trace"
)

const (
	metadataFile = "metadata.json"
	eventsFile   = "events.csv"
)

var eventsHeader = []string{"seq", "kind", "action", "message"}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string         `json:"id"`
	Algorithm string         `json:"algorithm"`
	Timestamp time.Time      `json:"timestamp"`
	Steps     int            `json:"steps"`
	Input     any            `json:"input,omitempty"`
	Result    any            `json:"result,omitempty"`
	Counts    map[string]int `json:"counts"`
}

// Save writes the transcript metadata and its event log and returns the run ID.
func (s *Store) Save(t *trace.Transcript) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	ts := s.now()
	runID := fmt.Sprintf("%s_%d", t.Algorithm, ts.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for i := 2; ; i++ {
		if _, err := os.Stat(runDir); os.IsNotExist(err) {
			break
		}
		runID = fmt.Sprintf("%s_%d_%d", t.Algorithm, ts.Unix(), i)
		runDir = filepath.Join(s.baseDir, runID)
	}
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	counts := make(map[string]int)
	for kind, n := range trace.Count(t.Events) {
		counts[string(kind)] = n
	}
	meta := RunMetadata{
		ID:        runID,
		Algorithm: t.Algorithm,
		Timestamp: ts,
		Steps:     t.Steps,
		Input:     t.Input,
		Result:    t.Result,
		Counts:    counts,
	}
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeEvents(filepath.Join(runDir, eventsFile), t.Events); err != nil {
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeEvents(path string, events []stepper.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(eventsHeader); err != nil {
		return err
	}
	for _, ev := range events {
		row := []string{strconv.Itoa(ev.Seq), string(ev.Kind), ev.Action, ev.Message}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first. Unreadable runs are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadEvents reads a run's event log back. Payloads are not stored.
func (s *Store) LoadEvents(runID string) ([]stepper.Event, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, runID, eventsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []stepper.Event{}, nil
	}

	events := make([]stepper.Event, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(eventsHeader) {
			return nil, fmt.Errorf("%s line %d: expected %d fields, got %d", eventsFile, i+2, len(eventsHeader), len(record))
		}
		seq, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", eventsFile, i+2, err)
		}
		events = append(events, stepper.Event{
			Seq:       seq,
			Algorithm: meta.Algorithm,
			Kind:      stepper.Kind(record[1]),
			Action:    record[2],
			Message:   record[3],
		})
	}
	return events, nil
}
