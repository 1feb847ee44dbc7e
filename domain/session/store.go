package session

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/soocke/pixel-sorter-go/imageio"
)

// A session is one visitor's run at the kiosk: the captured photo plus
// every edit they saved, kept together in a timestamped folder so the
// whole set can be exported at once.

const (
	sessionDirFormat = "session_20060102_150405"
	originalName     = "original.png"
)

var editNameRe = regexp.MustCompile(`^edit_(\d{3})_([a-z]+)\.png$`)

// Store manages session folders under a root output directory.
type Store struct {
	root   string
	logger *slog.Logger

	current   string
	iteration int
}

func NewStore(root string, logger *slog.Logger) *Store {
	return &Store{root: root, logger: logger}
}

// Root returns the output directory sessions are created under.
func (s *Store) Root() string { return s.root }

// CurrentDir returns the active session folder, empty when none is open.
func (s *Store) CurrentDir() string { return s.current }

// Begin opens a new session folder and stores the captured original.
func (s *Store) Begin(original *image.RGBA) error {
	dir := filepath.Join(s.root, time.Now().Format(sessionDirFormat))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("session: create %s: %w", dir, err)
	}
	if err := imageio.Save(original, filepath.Join(dir, originalName)); err != nil {
		return err
	}
	s.current = dir
	s.iteration = 0
	if s.logger != nil {
		s.logger.Info("session started", "dir", dir)
	}
	return nil
}

// SaveEdit writes the next edit in the active session and returns its
// path. The algorithm name is lowercased and embedded in the filename so
// exported sets are self-describing and resume can parse them back.
func (s *Store) SaveEdit(img *image.RGBA, algorithm string) (string, error) {
	if s.current == "" {
		return "", fmt.Errorf("session: no active session")
	}
	s.iteration++
	name := fmt.Sprintf("edit_%03d_%s.png", s.iteration, strings.ToLower(algorithm))
	path := filepath.Join(s.current, name)
	if err := imageio.Save(img, path); err != nil {
		s.iteration--
		return "", err
	}
	if s.logger != nil {
		s.logger.Info("edit saved", "path", path, "iteration", s.iteration)
	}
	return path, nil
}

// Iteration returns the number of edits saved in the active session.
func (s *Store) Iteration() int { return s.iteration }

// Resume reopens the most recent session folder, restoring the iteration
// counter from the highest existing edit number. Returns false when no
// session exists.
func (s *Store) Resume() (bool, error) {
	dirs, err := s.sessionDirs()
	if err != nil || len(dirs) == 0 {
		return false, err
	}
	last := dirs[len(dirs)-1]
	iter, err := lastIteration(last)
	if err != nil {
		return false, err
	}
	s.current = last
	s.iteration = iter
	if s.logger != nil {
		s.logger.Info("session resumed", "dir", last, "iteration", iter)
	}
	return true, nil
}

// LoadLastEdit returns the most recent edit image in the active session,
// or the original when no edits were saved yet.
func (s *Store) LoadLastEdit() (*image.RGBA, error) {
	if s.current == "" {
		return nil, fmt.Errorf("session: no active session")
	}
	entries, err := os.ReadDir(s.current)
	if err != nil {
		return nil, fmt.Errorf("session: read %s: %w", s.current, err)
	}
	best, bestIter := "", -1
	for _, e := range entries {
		m := editNameRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		if n > bestIter {
			best, bestIter = e.Name(), n
		}
	}
	if best == "" {
		best = originalName
	}
	return imageio.Load(filepath.Join(s.current, best))
}

// Close ends the active session.
func (s *Store) Close() {
	if s.current != "" && s.logger != nil {
		s.logger.Info("session closed", "dir", s.current, "edits", s.iteration)
	}
	s.current = ""
	s.iteration = 0
}

func (s *Store) sessionDirs() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("session: read %s: %w", s.root, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && len(e.Name()) == len(sessionDirFormat) && e.Name()[:8] == "session_" {
			dirs = append(dirs, filepath.Join(s.root, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func lastIteration(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("session: read %s: %w", dir, err)
	}
	last := 0
	for _, e := range entries {
		m := editNameRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if n, _ := strconv.Atoi(m[1]); n > last {
			last = n
		}
	}
	return last, nil
}
