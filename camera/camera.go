package camera

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/pixel-sorter-go/config"
)

// Snapshot carries the latest decoded preview frame and metadata.
type Snapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// Stats summarises streaming behaviour for instrumentation.
type Stats struct {
	Frames      uint64
	DecodeFails uint64
	BytesRead   uint64
	LastFrame   time.Time
}

// Controller drives the Raspberry Pi camera through the rpicam command
// line tools: a long-running rpicam-vid MJPEG stream for live preview and
// one-shot rpicam-still invocations for full-quality capture. When neither
// tool is installed the controller stays usable and serves an animated
// test pattern instead.
type Controller struct {
	cfg    *config.Config
	logger *slog.Logger

	vidCmd    string
	stillCmd  string
	available bool

	mu      sync.Mutex
	proc    *exec.Cmd
	running atomic.Bool
	done    chan struct{}

	latest      atomic.Pointer[Snapshot]
	sequence    atomic.Uint64
	frames      atomic.Uint64
	decodeFails atomic.Uint64
	bytesRead   atomic.Uint64

	tempDir string
}

// candidate tool pairs, newest naming first.
var toolPairs = [][2]string{
	{"rpicam-vid", "rpicam-still"},
	{"libcamera-vid", "libcamera-still"},
}

// NewController probes for the camera tooling and returns a controller.
// A missing camera stack is not an error; the controller degrades to test
// patterns so the kiosk still comes up.
func NewController(cfg *config.Config, logger *slog.Logger) *Controller {
	c := &Controller{cfg: cfg, logger: logger, tempDir: os.TempDir()}
	if !cfg.CameraEnabled {
		if logger != nil {
			logger.Info("camera disabled by config")
		}
		return c
	}
	for _, pair := range toolPairs {
		if _, err := exec.LookPath(pair[0]); err != nil {
			continue
		}
		if _, err := exec.LookPath(pair[1]); err != nil {
			continue
		}
		c.vidCmd, c.stillCmd = pair[0], pair[1]
		c.available = true
		break
	}
	if logger != nil {
		if c.available {
			logger.Info("camera initialized", "vid", c.vidCmd, "still", c.stillCmd)
		} else {
			logger.Warn("camera tools not found; serving test pattern")
		}
	}
	return c
}

// Available reports whether the camera tooling was found.
func (c *Controller) Available() bool { return c.available }

// Running reports whether the preview stream is active.
func (c *Controller) Running() bool { return c.running.Load() }

// LatestFrame returns the freshest preview snapshot; when the camera is
// unavailable or no frame has arrived yet, an animated test pattern is
// synthesized so the UI always has something to draw.
func (c *Controller) LatestFrame() Snapshot {
	if snap := c.latest.Load(); snap != nil {
		return *snap
	}
	return Snapshot{Image: c.testPattern(time.Now()), CapturedAt: time.Now()}
}

// Stats returns streaming counters.
func (c *Controller) Stats() Stats {
	s := Stats{
		Frames:      c.frames.Load(),
		DecodeFails: c.decodeFails.Load(),
		BytesRead:   c.bytesRead.Load(),
	}
	if snap := c.latest.Load(); snap != nil {
		s.LastFrame = snap.CapturedAt
	}
	return s
}

// Start launches the MJPEG preview stream. Idempotent; a no-op when the
// camera is unavailable.
func (c *Controller) Start() {
	if !c.available || !c.running.CompareAndSwap(false, true) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cmd := exec.Command(c.vidCmd,
		"--output", "-",
		"--width", strconv.Itoa(c.cfg.PreviewWidth),
		"--height", strconv.Itoa(c.cfg.PreviewHeight),
		"--framerate", strconv.Itoa(c.cfg.StreamFPS),
		"--codec", "mjpeg",
		"--nopreview",
		"--timeout", "0",
		"--flush", "1",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		c.running.Store(false)
		if c.logger != nil {
			c.logger.Error("camera stream pipe", "error", err)
		}
		return
	}
	if err := cmd.Start(); err != nil {
		c.running.Store(false)
		if c.logger != nil {
			c.logger.Error("camera stream start", "error", err)
		}
		return
	}
	c.proc = cmd
	c.done = make(chan struct{})
	go c.readLoop(stdout, c.done)
	if c.logger != nil {
		c.logger.Info("camera streaming started",
			"width", c.cfg.PreviewWidth,
			"height", c.cfg.PreviewHeight,
			"fps", c.cfg.StreamFPS,
		)
	}
}

// Stop kills the stream process and waits for the reader to drain.
// Idempotent.
func (c *Controller) Stop() {
	if !c.running.CompareAndSwap(true, false) {
		return
	}
	c.mu.Lock()
	proc, done := c.proc, c.done
	c.proc, c.done = nil, nil
	c.mu.Unlock()
	if proc != nil && proc.Process != nil {
		_ = proc.Process.Kill()
		_ = proc.Wait()
	}
	if done != nil {
		<-done
	}
	if c.logger != nil {
		c.logger.Info("camera streaming stopped")
	}
}

func (c *Controller) readLoop(r io.Reader, done chan struct{}) {
	defer close(done)
	var ex FrameExtractor
	buf := make([]byte, 64<<10)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			c.bytesRead.Add(uint64(n))
			for _, frame := range ex.Feed(buf[:n]) {
				c.publish(frame)
			}
		}
		if err != nil {
			if c.running.Load() && c.logger != nil && err != io.EOF {
				c.logger.Error("camera stream read", "error", err)
			}
			return
		}
	}
}

func (c *Controller) publish(frame []byte) {
	img, err := decodeJPEG(frame)
	if err != nil {
		c.decodeFails.Add(1)
		return
	}
	c.frames.Add(1)
	seq := c.sequence.Add(1)
	c.latest.Store(&Snapshot{Image: img, CapturedAt: time.Now(), Sequence: seq})
}

// CaptureStill takes a full-quality photo for sorting. A capture that
// looks corrupted (solid color, undersized) is retried once with a longer
// sensor settle timeout.
func (c *Controller) CaptureStill() (*image.RGBA, error) {
	if !c.available {
		return nil, fmt.Errorf("camera: not available")
	}
	path := filepath.Join(c.tempDir, "pixelsort_capture.jpg")
	defer os.Remove(path)

	img, err := c.captureTo(path, "1000")
	if err != nil {
		return nil, err
	}
	if !likelyCorrupted(img) {
		return img, nil
	}
	if c.logger != nil {
		c.logger.Warn("still capture looked corrupted; retrying")
	}
	img, err = c.captureTo(path, "2000")
	if err != nil {
		return nil, err
	}
	if likelyCorrupted(img) {
		return nil, fmt.Errorf("camera: capture corrupted after retry")
	}
	return img, nil
}

func (c *Controller) captureTo(path, timeoutMs string) (*image.RGBA, error) {
	_ = os.Remove(path)
	out, err := exec.Command(c.stillCmd,
		"-o", path,
		"--width", strconv.Itoa(c.cfg.CaptureWidth),
		"--height", strconv.Itoa(c.cfg.CaptureHeight),
		"--quality", strconv.Itoa(c.cfg.JPEGQuality),
		"--immediate",
		"--nopreview",
		"--timeout", timeoutMs,
	).CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("camera: %s failed: %w (%s)", c.stillCmd, err, firstLine(out))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("camera: open capture: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("camera: read capture: %w", err)
	}
	return decodeJPEG(data)
}

func firstLine(b []byte) string {
	for i, c := range b {
		if c == '\n' {
			return string(b[:i])
		}
	}
	return string(b)
}

func decodeJPEG(data []byte) (*image.RGBA, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("camera: decode jpeg: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out, nil
}

// likelyCorrupted flags frames that are almost certainly sensor garbage:
// undersized, or with five spread sample points all reading the same value.
func likelyCorrupted(img *image.RGBA) bool {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 10 || h < 10 {
		return true
	}
	samples := []image.Point{
		{b.Min.X + w/4, b.Min.Y + h/4},
		{b.Min.X + w/2, b.Min.Y + h/2},
		{b.Min.X + 3*w/4, b.Min.Y + 3*h/4},
		{b.Min.X + 10, b.Min.Y + 10},
		{b.Min.X + w - 10, b.Min.Y + h - 10},
	}
	first := img.RGBAAt(samples[0].X, samples[0].Y)
	for _, p := range samples[1:] {
		if img.RGBAAt(p.X, p.Y) != first {
			return false
		}
	}
	return true
}

// testPattern renders the animated placeholder shown when no camera is
// attached.
func (c *Controller) testPattern(at time.Time) *image.RGBA {
	w, h := c.cfg.PreviewWidth, c.cfg.PreviewHeight
	t := float64(at.UnixNano()) / float64(time.Second)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := sat8(float64(x)/float64(w)*255 + math.Sin(t*50)*50 + 100)
			g := sat8(float64(y)/float64(h)*255 + math.Cos(t*30)*50 + 100)
			bl := sat8(float64(x+y)/float64(w+h)*255 + math.Sin(t*70)*50 + 100)
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, bl, 0xff
		}
	}
	return img
}

func sat8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
