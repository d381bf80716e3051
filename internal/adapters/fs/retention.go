package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/notyesbut/NitroGen/internal/ports"
)

var (
	retentionCheckInterval = time.Hour
	retentionTickerNow     = true // run once immediately; used for tests
)

// Retention trims old recorded runs when the output directory grows beyond
// the high watermark. Oldest runs (by directory mtime) go first, until the
// directory shrinks below the low watermark. The active run is never
// removed.
type Retention struct {
	root          string
	highWatermark int64
	lowWatermark  int64
	logger        ports.Logger
}

type runDir struct {
	name  string
	path  string
	mtime time.Time
	size  int64
}

// NewRetention creates a pruner for the given output root. Watermarks of
// zero disable pruning.
func NewRetention(root string, highWatermark, lowWatermark int64, logger ports.Logger) *Retention {
	return &Retention{
		root:          root,
		highWatermark: highWatermark,
		lowWatermark:  lowWatermark,
		logger:        logger,
	}
}

// Loop runs periodic pruning until the context is cancelled. protectedRun
// names the run id that must survive pruning, usually the active one.
func (rt *Retention) Loop(ctx context.Context, protectedRun string) {
	if rt.root == "" || rt.highWatermark <= 0 {
		return
	}

	if retentionTickerNow {
		rt.Prune(ctx, protectedRun)
	}

	t := time.NewTicker(retentionCheckInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			rt.Prune(ctx, protectedRun)
		}
	}
}

// Prune performs one pruning pass.
func (rt *Retention) Prune(ctx context.Context, protectedRun string) {
	if rt.highWatermark <= 0 {
		return
	}

	runs, total, err := rt.scanRuns()
	if err != nil {
		rt.logger.Error("retention: scan failed", ports.Err(err))
		return
	}
	if total <= rt.highWatermark {
		return
	}

	removed := int64(0)
	for _, run := range runs {
		if ctx.Err() != nil {
			return
		}
		if total <= rt.lowWatermark {
			break
		}
		if run.name == protectedRun {
			continue
		}

		if err := os.RemoveAll(run.path); err != nil {
			rt.logger.Error("retention: remove failed",
				ports.String("run_id", run.name), ports.Err(err))
			continue
		}
		total -= run.size
		removed += run.size
	}

	if removed > 0 {
		rt.logger.Info("retention pruned old runs",
			ports.Int64("freed_bytes", removed),
			ports.Int64("remaining_bytes", total))
	}
}

// scanRuns returns run directories ordered oldest first along with the
// total size of the output root.
func (rt *Retention) scanRuns() ([]runDir, int64, error) {
	ents, err := os.ReadDir(rt.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	var runs []runDir
	var total int64
	for _, e := range ents {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(rt.root, e.Name())
		size, err := dirSize(path)
		if err != nil {
			return nil, 0, err
		}
		info, err := e.Info()
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, runDir{
			name:  e.Name(),
			path:  path,
			mtime: info.ModTime(),
			size:  size,
		})
		total += size
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].mtime.Before(runs[j].mtime)
	})
	return runs, total, nil
}

func dirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
