// Package fs implements the filesystem adapters: the run recorder, run
// retention pruning, and the stop-file signal.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/notyesbut/NitroGen/internal/domain"
	"github.com/notyesbut/NitroGen/internal/ports"
)

const (
	framesDirName   = "frames"
	entriesFileName = "actions.jsonl"
	metaFileName    = "meta.json"
)

// runMeta is the immutable per-run metadata object. EndTime and FrameCount
// are filled in at Close; everything else is written once at Begin.
type runMeta struct {
	RunID      string           `json:"run_id"`
	StartTime  time.Time        `json:"start_time"`
	EndTime    *time.Time       `json:"end_time,omitempty"`
	FrameCount uint64           `json:"frame_count"`
	Config     domain.RunConfig `json:"config"`
}

// Recorder persists frame/action pairs for one run under
// <root>/<run_id>/. Entries are append-only and strictly ordered by frame
// id; a crash leaves a trusted prefix (at most one trailing frame file
// without its entry).
type Recorder struct {
	root        string
	maxFrames   uint64
	maxDuration time.Duration
	logger      ports.Logger

	run     domain.Run
	dir     string
	entries *os.File
	count   uint64
	lastID  uint64
	began   bool
	closed  bool
}

// NewRecorder creates a recorder rooted at the given directory. maxFrames
// and maxDuration of zero mean unbounded.
func NewRecorder(root string, maxFrames uint64, maxDuration time.Duration, logger ports.Logger) *Recorder {
	return &Recorder{
		root:        root,
		maxFrames:   maxFrames,
		maxDuration: maxDuration,
		logger:      logger,
	}
}

// Begin creates the run directory, persists the run configuration once and
// opens the entry log. An unwritable run directory is startup-fatal.
func (r *Recorder) Begin(ctx context.Context, cfg domain.RunConfig) (domain.Run, error) {
	if r.began {
		return domain.Run{}, domain.ErrAlreadyRunning
	}

	run := domain.Run{
		ID:        uuid.NewString(),
		StartTime: time.Now(),
		Config:    cfg,
	}
	dir := filepath.Join(r.root, run.ID)

	if err := os.MkdirAll(filepath.Join(dir, framesDirName), 0o755); err != nil {
		return domain.Run{}, fmt.Errorf("create run dir: %w", err)
	}

	meta := runMeta{RunID: run.ID, StartTime: run.StartTime, Config: cfg}
	if err := writeMeta(dir, meta); err != nil {
		return domain.Run{}, fmt.Errorf("write run meta: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, entriesFileName),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return domain.Run{}, fmt.Errorf("open entry log: %w", err)
	}

	r.run = run
	r.dir = dir
	r.entries = f
	r.began = true

	r.logger.Info("run started",
		ports.String("run_id", run.ID),
		ports.String("dir", dir))
	return run, nil
}

// Run returns the active run. Zero value before Begin.
func (r *Recorder) Run() domain.Run { return r.run }

// Append persists one frame/action pair. The frame file and the entry line
// are written in lockstep; if the entry cannot be appended the frame file
// is removed so the persisted prefix stays aligned.
func (r *Recorder) Append(frame domain.Frame, action domain.TargetAction) error {
	if !r.began || r.closed {
		return domain.ErrRunClosed
	}
	if r.count > 0 && frame.ID <= r.lastID {
		return fmt.Errorf("%w: frame id %d does not advance past %d",
			domain.ErrOutOfOrder, frame.ID, r.lastID)
	}

	framePath := filepath.Join(r.dir, framesDirName,
		fmt.Sprintf("frame-%06d.png", r.count+1))
	if err := writeFramePNG(framePath, frame); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWriteFailure, err)
	}

	entry := domain.RecordEntry{
		FrameID:   frame.ID,
		Action:    action.Normalized(),
		Timestamp: frame.Timestamp,
	}
	line, err := json.Marshal(entry)
	if err != nil {
		os.Remove(framePath)
		return fmt.Errorf("%w: %v", domain.ErrWriteFailure, err)
	}
	if _, err := r.entries.Write(append(line, '\n')); err != nil {
		os.Remove(framePath)
		return fmt.Errorf("%w: %v", domain.ErrWriteFailure, err)
	}

	r.count++
	r.lastID = frame.ID

	if r.maxFrames > 0 && r.count >= r.maxFrames {
		return domain.ErrRunComplete
	}
	if r.maxDuration > 0 && time.Since(r.run.StartTime) >= r.maxDuration {
		return domain.ErrRunComplete
	}
	return nil
}

// Close stops accepting writes and finalizes run metadata.
func (r *Recorder) Close() error {
	if !r.began || r.closed {
		return nil
	}
	r.closed = true

	err := r.entries.Close()

	now := time.Now()
	meta := runMeta{
		RunID:      r.run.ID,
		StartTime:  r.run.StartTime,
		EndTime:    &now,
		FrameCount: r.count,
		Config:     r.run.Config,
	}
	if merr := writeMeta(r.dir, meta); merr != nil && err == nil {
		err = merr
	}

	r.logger.Info("run closed",
		ports.String("run_id", r.run.ID),
		ports.Uint64("frames", r.count))
	return err
}

func writeFramePNG(path string, frame domain.Frame) error {
	var buf bytes.Buffer
	if frame.Image != nil {
		if err := png.Encode(&buf, frame.Image); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// writeMeta persists metadata atomically: temp file, then rename.
func writeMeta(dir string, meta runMeta) error {
	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, metaFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
