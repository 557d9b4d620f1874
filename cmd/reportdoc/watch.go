package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce is how long a source must stay quiet before it is
// re-converted. Editors often write a file several times per save.
const watchDebounce = 200 * time.Millisecond

// sourceWatcher re-converts sources when they change.
type sourceWatcher struct {
	watcher   *fsnotify.Watcher
	inputPath string // file or directory being watched
	baseDir   string // inputPath when it is a directory, else ""
	outputDir string
	pool      Pool
	params    *conversionParams
	common    commonFlags
	env       *Environment
	logger    *zap.Logger
	debounce  time.Duration
	pending   map[string]time.Time
}

// newSourceWatcher watches inputPath. Directories are watched recursively,
// including subdirectories created later.
func newSourceWatcher(inputPath, outputDir string, pool Pool, params *conversionParams,
	common commonFlags, env *Environment, logger *zap.Logger,
) (*sourceWatcher, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting watcher: %w", err)
	}

	sw := &sourceWatcher{
		watcher:   w,
		inputPath: filepath.Clean(inputPath),
		outputDir: outputDir,
		pool:      pool,
		params:    params,
		common:    common,
		env:       env,
		logger:    logger,
		debounce:  watchDebounce,
		pending:   make(map[string]time.Time),
	}

	if info.IsDir() {
		sw.baseDir = sw.inputPath
		err = sw.addTree(sw.inputPath)
	} else {
		// Watch the parent: editors replace files on save, which drops a
		// watch held on the file itself.
		err = w.Add(filepath.Dir(sw.inputPath))
	}
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", inputPath, err)
	}
	return sw, nil
}

// Close stops watching.
func (sw *sourceWatcher) Close() error {
	return sw.watcher.Close()
}

// addTree watches root and every non-hidden directory below it.
func (sw *sourceWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return sw.watcher.Add(path)
	})
}

// Run handles events until ctx is done.
func (sw *sourceWatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(sw.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sw.logger.Debug("watch stopped")
			return nil

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return nil
			}
			sw.handleEvent(event, time.Now())

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return nil
			}
			sw.logger.Warn("watch error", zap.Error(err))

		case <-ticker.C:
			if due := sw.due(time.Now()); len(due) > 0 {
				sw.convert(ctx, due)
			}
		}
	}
}

// handleEvent records writes to watched sources and follows new
// directories.
func (sw *sourceWatcher) handleEvent(event fsnotify.Event, now time.Time) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	if event.Has(fsnotify.Create) && sw.baseDir != "" {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := sw.addTree(event.Name); err != nil {
				sw.logger.Warn("watching new directory", zap.String("path", event.Name), zap.Error(err))
			}
			return
		}
	}

	if !sw.wants(event.Name) {
		return
	}
	sw.logger.Debug("source changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
	sw.pending[filepath.Clean(event.Name)] = now
}

// wants reports whether path is a source this watcher converts.
func (sw *sourceWatcher) wants(path string) bool {
	path = filepath.Clean(path)
	if sw.baseDir == "" {
		return path == sw.inputPath
	}
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return validateSourceExtension(path) == nil
}

// due removes and returns, sorted, the pending sources quiet for at least
// the debounce interval.
func (sw *sourceWatcher) due(now time.Time) []string {
	var paths []string
	for path, changed := range sw.pending {
		if now.Sub(changed) >= sw.debounce {
			paths = append(paths, path)
			delete(sw.pending, path)
		}
	}
	slices.Sort(paths)
	return paths
}

// convert re-converts paths and prints the results.
func (sw *sourceWatcher) convert(ctx context.Context, paths []string) {
	files := make([]FileToConvert, 0, len(paths))
	for _, p := range paths {
		files = append(files, FileToConvert{
			InputPath:  p,
			OutputPath: resolveOutputPath(p, sw.outputDir, sw.baseDir),
		})
	}
	results := convertBatch(ctx, sw.pool, files, sw.params)
	printResults(results, sw.common.quiet, sw.common.verbose, sw.env)
}
