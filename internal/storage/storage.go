package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Tiliavir/wdc/internal/model"
	"github.com/Tiliavir/wdc/internal/timecalc"
)

const (
	fileExt   = ".csv"
	delimiter = ';'
)

// Store keeps one semicolon separated file per month in Dir.
type Store struct {
	Dir string
	log *zap.Logger
}

// New returns a Store rooted at dir. A nil logger discards log output.
func New(dir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{Dir: dir, log: log}
}

// periodFilePath returns the path of the month's file.
func (s *Store) periodFilePath(ym timecalc.YearMonth) string {
	return filepath.Join(s.Dir, ym.String()+fileExt)
}

// LoadPeriod loads all tasks of a month. A missing file yields no tasks.
// When a task ID occurs more than once the newest row wins.
func (s *Store) LoadPeriod(ym timecalc.YearMonth) ([]model.Task, error) {
	path := s.periodFilePath(ym)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []model.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	tasks, err := ReadTasks(bytes.NewReader(data))
	if err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		s.log.Warn("corrupt partition moved aside",
			zap.String("path", path),
			zap.String("backup", backupPath),
			zap.Error(err),
		)
		return nil, fmt.Errorf("corrupt data in %s (backed up to %s): %w", path, backupPath, err)
	}
	return latestVersions(tasks), nil
}

// ReplacePeriod atomically overwrites the month's file, sorted by date and start.
func (s *Store) ReplacePeriod(ym timecalc.YearMonth, tasks []model.Task) error {
	path := s.periodFilePath(ym)
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	for i := range tasks {
		if !model.IsValid(&tasks[i]) {
			return fmt.Errorf("storage error writing %s: task %q: %w", path, tasks[i].ID, ErrInvalidRow)
		}
	}

	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := sorted[i].Date.Compare(sorted[j].Date); c != 0 {
			return c < 0
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var buf bytes.Buffer
	if err := WriteTasks(&buf, sorted); err != nil {
		return fmt.Errorf("storage error encoding %s: %w", path, err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	s.log.Debug("partition written", zap.String("path", path), zap.Int("tasks", len(sorted)))
	return nil
}

// Periods lists the months that have a file, oldest first.
func (s *Store) Periods() ([]timecalc.YearMonth, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error listing %s: %w", s.Dir, err)
	}
	var out []timecalc.YearMonth
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		ym, err := timecalc.ParseYearMonth(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		out = append(out, ym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

// FindAllByID scans every month for rows with the given ID, oldest first.
func (s *Store) FindAllByID(id string) ([]model.Task, error) {
	periods, err := s.Periods()
	if err != nil {
		return nil, err
	}
	var found []model.Task
	for _, ym := range periods {
		tasks, err := s.LoadPeriod(ym)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			if t.ID == id {
				found = append(found, t)
			}
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return stampValue(found[i].CreatedAt) < stampValue(found[j].CreatedAt)
	})
	return found, nil
}

// ReadTasks decodes semicolon separated task rows.
func ReadTasks(r io.Reader) ([]model.Task, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = fieldCount

	var tasks []model.Task
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		task, err := DecodeRow(record)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// WriteTasks encodes tasks as semicolon separated rows.
func WriteTasks(w io.Writer, tasks []model.Task) error {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter
	for _, t := range tasks {
		if err := cw.Write(EncodeRow(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// latestVersions keeps one row per ID: the one with the newest creation
// stamp, or the later row when stamps are equal. Row order is preserved.
func latestVersions(tasks []model.Task) []model.Task {
	latest := make(map[string]int, len(tasks))
	for i, t := range tasks {
		j, seen := latest[t.ID]
		if !seen || stampValue(t.CreatedAt) >= stampValue(tasks[j].CreatedAt) {
			latest[t.ID] = i
		}
	}
	out := make([]model.Task, 0, len(latest))
	for i, t := range tasks {
		if latest[t.ID] == i {
			out = append(out, t)
		}
	}
	return out
}

func stampValue(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
