package session

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/soocke/pixel-sorter-go/domain/sorting"
	"github.com/soocke/pixel-sorter-go/imageio"
)

func TestBeginCreatesSessionWithOriginal(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root, nil)
	if err := s.Begin(imageio.Gradient(32, 32)); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if s.CurrentDir() == "" {
		t.Fatal("no current session dir")
	}
	if _, err := os.Stat(filepath.Join(s.CurrentDir(), "original.png")); err != nil {
		t.Fatalf("original missing: %v", err)
	}
}

func TestSaveEditNumbersSequentially(t *testing.T) {
	s := NewStore(t.TempDir(), nil)
	if err := s.Begin(imageio.Gradient(32, 32)); err != nil {
		t.Fatalf("begin: %v", err)
	}
	p1, err := s.SaveEdit(imageio.Gradient(32, 32), "horizontal")
	if err != nil {
		t.Fatalf("save edit: %v", err)
	}
	p2, err := s.SaveEdit(imageio.Gradient(32, 32), "radial")
	if err != nil {
		t.Fatalf("save edit: %v", err)
	}
	if filepath.Base(p1) != "edit_001_horizontal.png" {
		t.Errorf("first edit named %s", filepath.Base(p1))
	}
	if filepath.Base(p2) != "edit_002_radial.png" {
		t.Errorf("second edit named %s", filepath.Base(p2))
	}
	if s.Iteration() != 2 {
		t.Errorf("iteration = %d, want 2", s.Iteration())
	}
}

func TestSaveEditLowercasesAlgorithmNames(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root, nil)
	if err := s.Begin(imageio.Gradient(32, 32)); err != nil {
		t.Fatalf("begin: %v", err)
	}
	p1, err := s.SaveEdit(imageio.Gradient(32, 32), sorting.Horizontal.Name())
	if err != nil {
		t.Fatalf("save edit: %v", err)
	}
	if filepath.Base(p1) != "edit_001_horizontal.png" {
		t.Errorf("first edit named %s", filepath.Base(p1))
	}
	if _, err := s.SaveEdit(imageio.Gradient(32, 32), sorting.Radial.Name()); err != nil {
		t.Fatalf("save edit: %v", err)
	}
	s.Close()

	// A fresh store must pick the counters back up from the filenames.
	fresh := NewStore(root, nil)
	ok, err := fresh.Resume()
	if err != nil || !ok {
		t.Fatalf("resume: ok=%v err=%v", ok, err)
	}
	if fresh.Iteration() != 2 {
		t.Errorf("iteration after resume = %d, want 2", fresh.Iteration())
	}
	p3, err := fresh.SaveEdit(imageio.Gradient(32, 32), sorting.Vertical.Name())
	if err != nil {
		t.Fatalf("save edit after resume: %v", err)
	}
	if filepath.Base(p3) != "edit_003_vertical.png" {
		t.Errorf("post-resume edit named %s", filepath.Base(p3))
	}
	img, err := fresh.LoadLastEdit()
	if err != nil {
		t.Fatalf("load last edit: %v", err)
	}
	if img == nil {
		t.Fatal("no last edit loaded")
	}
}

func TestSaveEditRequiresActiveSession(t *testing.T) {
	s := NewStore(t.TempDir(), nil)
	if _, err := s.SaveEdit(imageio.Gradient(16, 16), "vertical"); err == nil {
		t.Fatal("expected error without active session")
	}
}

func TestResumeRestoresIterationCounter(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root, nil)
	if err := s.Begin(imageio.Gradient(32, 32)); err != nil {
		t.Fatalf("begin: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := s.SaveEdit(imageio.Gradient(32, 32), "diagonal"); err != nil {
			t.Fatalf("save edit: %v", err)
		}
	}
	dir := s.CurrentDir()
	s.Close()

	fresh := NewStore(root, nil)
	ok, err := fresh.Resume()
	if err != nil || !ok {
		t.Fatalf("resume: ok=%v err=%v", ok, err)
	}
	if fresh.CurrentDir() != dir {
		t.Errorf("resumed %s, want %s", fresh.CurrentDir(), dir)
	}
	if fresh.Iteration() != 3 {
		t.Errorf("iteration = %d, want 3", fresh.Iteration())
	}
	p, err := fresh.SaveEdit(imageio.Gradient(32, 32), "horizontal")
	if err != nil {
		t.Fatalf("save edit after resume: %v", err)
	}
	if filepath.Base(p) != "edit_004_horizontal.png" {
		t.Errorf("post-resume edit named %s", filepath.Base(p))
	}
}

func TestResumeWithNoSessions(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nothing"), nil)
	ok, err := s.Resume()
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if ok {
		t.Fatal("resumed a session that does not exist")
	}
}

func TestLoadLastEditFallsBackToOriginal(t *testing.T) {
	s := NewStore(t.TempDir(), nil)
	if err := s.Begin(imageio.Checker(32, 32, 4)); err != nil {
		t.Fatalf("begin: %v", err)
	}
	img, err := s.LoadLastEdit()
	if err != nil {
		t.Fatalf("load last edit: %v", err)
	}
	if img.Bounds().Dx() != 32 {
		t.Fatal("wrong image loaded")
	}

	if _, err := s.SaveEdit(imageio.Bands(32, 32), "vertical"); err != nil {
		t.Fatalf("save edit: %v", err)
	}
	img, err = s.LoadLastEdit()
	if err != nil {
		t.Fatalf("load last edit: %v", err)
	}
	want := imageio.Bands(32, 32)
	for i := range want.Pix {
		if img.Pix[i] != want.Pix[i] {
			t.Fatal("last edit content does not match the saved edit")
		}
	}
}

func TestExportCopiesSessionFiles(t *testing.T) {
	s := NewStore(t.TempDir(), nil)
	if err := s.Begin(imageio.Gradient(32, 32)); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := s.SaveEdit(imageio.Noise(32, 32, 3), "radial"); err != nil {
		t.Fatalf("save edit: %v", err)
	}
	mount := t.TempDir()
	dst, err := s.Export(mount)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, name := range []string{"original.png", "edit_001_radial.png"} {
		got, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Errorf("exported file %s missing: %v", name, err)
			continue
		}
		want, err := os.ReadFile(filepath.Join(s.CurrentDir(), name))
		if err != nil {
			t.Fatalf("read source %s: %v", name, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("exported %s differs from the session copy", name)
		}
	}
}

func TestFreeSpaceReportsNonZero(t *testing.T) {
	free, err := FreeSpace(t.TempDir())
	if err != nil {
		t.Fatalf("free space: %v", err)
	}
	if free == 0 {
		t.Fatal("free space reported as zero")
	}
}
