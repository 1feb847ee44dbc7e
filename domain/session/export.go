package session

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// USB export. The kiosk has no network; visitors take their images home
// on a stick. Mount points are discovered under the usual Linux automount
// roots and the whole session folder is copied over.

var mountRoots = []string{"/media", "/mnt"}

// FindUSBMount returns the first writable removable-media mount point, or
// an empty string when none is present. Automounts appear either directly
// under the root (/media/stick) or namespaced per user (/media/pi/stick).
func FindUSBMount() string {
	for _, root := range mountRoots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			p := filepath.Join(root, e.Name())
			if isWritableMount(p) {
				return p
			}
			sub, err := os.ReadDir(p)
			if err != nil {
				continue
			}
			for _, se := range sub {
				if !se.IsDir() {
					continue
				}
				sp := filepath.Join(p, se.Name())
				if isWritableMount(sp) {
					return sp
				}
			}
		}
	}
	return ""
}

func isWritableMount(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	probe := filepath.Join(path, ".pixelsort_probe")
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}

// FreeSpace returns the bytes available to unprivileged writes at path.
func FreeSpace(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, fmt.Errorf("session: statfs %s: %w", path, err)
	}
	return st.Bavail * uint64(st.Bsize), nil
}

// Export copies the active session folder onto the given mount point
// after checking it has room for the whole set. Returns the destination
// directory.
func (s *Store) Export(mount string) (string, error) {
	if s.current == "" {
		return "", fmt.Errorf("session: no active session")
	}
	need, files, err := dirSize(s.current)
	if err != nil {
		return "", err
	}
	free, err := FreeSpace(mount)
	if err != nil {
		return "", err
	}
	if free < need {
		return "", fmt.Errorf("session: %s has %s free, need %s",
			mount, humanize.Bytes(free), humanize.Bytes(need))
	}
	dst := filepath.Join(mount, "pixel-sorter", filepath.Base(s.current))
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return "", fmt.Errorf("session: create %s: %w", dst, err)
	}
	for _, name := range files {
		if err := copyFile(filepath.Join(s.current, name), filepath.Join(dst, name)); err != nil {
			return "", fmt.Errorf("session: copy %s: %w", name, err)
		}
	}
	if s.logger != nil {
		s.logger.Info("session exported",
			"dst", dst,
			"files", len(files),
			"size", humanize.Bytes(need),
		)
	}
	return dst, nil
}

func dirSize(dir string) (uint64, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, nil, fmt.Errorf("session: read %s: %w", dir, err)
	}
	var total uint64
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return 0, nil, err
		}
		total += uint64(info.Size())
		files = append(files, e.Name())
	}
	return total, files, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
