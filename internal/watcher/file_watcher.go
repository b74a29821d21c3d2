package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"i18ncheck/internal/config"
)

// resourceExtensions are translation resource and mapping formats. A change
// to one of them invalidates every finding, not just its own file.
var resourceExtensions = []string{".json", ".yaml", ".yml", ".toml"}

type FileWatcher struct {
	watcher     *fsnotify.Watcher
	filter      *config.PathFilter
	watchedDirs map[string]bool
	debouncer   *debouncer
	logger      zerolog.Logger
}

type FileChangeEvent struct {
	Path      string
	Operation string
	Timestamp time.Time
}

type FileChangeHandler func([]string) error

func NewFileWatcher(cfg *config.Config) (*FileWatcher, error) {
	return newFileWatcher(cfg, 500*time.Millisecond)
}

func newFileWatcher(cfg *config.Config, delay time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	fw := &FileWatcher{
		watcher:     watcher,
		watchedDirs: make(map[string]bool),
		debouncer:   newDebouncer(delay),
		logger:      log.With().Str("sys", "watcher").Logger(),
	}
	if cfg != nil {
		if fw.filter, err = cfg.Files.Filter(); err != nil {
			watcher.Close()
			return nil, err
		}
	}
	return fw, nil
}

func (fw *FileWatcher) Watch(paths []string, handler FileChangeHandler) error {
	for _, path := range paths {
		if err := fw.addPath(path); err != nil {
			return fmt.Errorf("failed to watch path %s: %w", path, err)
		}
	}
	go fw.eventLoop(handler)
	return nil
}

func (fw *FileWatcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		path = filepath.Dir(path)
	}
	return filepath.Walk(path, func(walkPath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if walkPath != path && fw.shouldSkipDir(path, walkPath) {
			return filepath.SkipDir
		}
		if !fw.watchedDirs[walkPath] {
			if err := fw.watcher.Add(walkPath); err != nil {
				return fmt.Errorf("failed to add directory %s to watcher: %w", walkPath, err)
			}
			fw.watchedDirs[walkPath] = true
		}
		return nil
	})
}

func (fw *FileWatcher) eventLoop(handler FileChangeHandler) {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event, handler)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error().Err(err).Msg("File watcher error")
		case <-fw.debouncer.stopChan:
			return
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event, handler FileChangeHandler) {
	if !fw.isRelevantFile(event.Name) {
		return
	}
	if fw.shouldSkipFile(event.Name) {
		return
	}
	changeEvent := FileChangeEvent{
		Path:      event.Name,
		Operation: fw.eventOpToString(event.Op),
		Timestamp: time.Now(),
	}
	fw.logger.Debug().Str("file", changeEvent.Path).Str("op", changeEvent.Operation).Msg("Change detected")
	fw.debouncer.add(changeEvent, handler)
}

// isRelevantFile accepts analyzed sources and translation resources.
func (fw *FileWatcher) isRelevantFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if slices.Contains(resourceExtensions, ext) {
		return true
	}
	return fw.filter != nil && fw.filter.Included(path)
}

// shouldSkipDir applies the default exclusions to the directory name and the
// exclude globs to its path relative to the watch root.
func (fw *FileWatcher) shouldSkipDir(root, path string) bool {
	defaultExclusions := []string{
		".git", "node_modules", ".vscode", ".idea", ".next", "build", "dist", "coverage", "tmp", "temp",
	}
	dirName := filepath.Base(path)
	if slices.Contains(defaultExclusions, dirName) {
		return true
	}
	if fw.filter == nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = dirName
	}
	return fw.filter.Excluded(rel, true)
}

func (fw *FileWatcher) shouldSkipFile(path string) bool {
	filename := filepath.Base(path)
	if strings.HasPrefix(filename, ".") {
		return true
	}
	if strings.HasSuffix(filename, ".tmp") || strings.HasSuffix(filename, "~") {
		return true
	}
	if strings.HasSuffix(filename, ".swp") || strings.HasSuffix(filename, ".swo") {
		return true
	}
	return false
}

func (fw *FileWatcher) eventOpToString(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return "CREATE"
	case op&fsnotify.Write == fsnotify.Write:
		return "WRITE"
	case op&fsnotify.Remove == fsnotify.Remove:
		return "REMOVE"
	case op&fsnotify.Rename == fsnotify.Rename:
		return "RENAME"
	case op&fsnotify.Chmod == fsnotify.Chmod:
		return "CHMOD"
	default:
		return "UNKNOWN"
	}
}

func (fw *FileWatcher) Close() error {
	fw.debouncer.stop()
	return fw.watcher.Close()
}

func (fw *FileWatcher) GetWatchedPaths() []string {
	paths := make([]string, 0, len(fw.watchedDirs))
	for path := range fw.watchedDirs {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// IsResourceFile reports whether path has a translation resource extension.
func IsResourceFile(path string) bool {
	return slices.Contains(resourceExtensions, strings.ToLower(filepath.Ext(path)))
}
