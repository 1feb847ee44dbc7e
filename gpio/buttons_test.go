package gpio

import (
	"log/slog"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/soocke/pixel-sorter-go/config"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestActionString(t *testing.T) {
	cases := map[Action]string{
		ActionCapture:       "capture",
		ActionNextAlgorithm: "next_algorithm",
		ActionThresholdUp:   "threshold_up",
		ActionThresholdDown: "threshold_down",
		ActionSave:          "save",
		Action(99):          "unknown",
	}
	for a, want := range cases {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, want %q", int(a), got, want)
		}
	}
}

func TestDisabledConfigYieldsSimulationMode(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.GPIOEnabled = false
	b := NewButtons(cfg, discardLogger, nil)
	if !b.Simulated() {
		t.Fatal("expected simulation mode with gpio disabled")
	}
	b.Start()
	if !b.Running() {
		t.Fatal("start did not mark running")
	}
	b.Stop()
	if b.Running() {
		t.Fatal("stop did not clear running")
	}
	b.Stop()
}

func TestWatchDebouncesPresses(t *testing.T) {
	edges := make(chan gpio.Level, 8)
	pin := &gpiotest.Pin{N: "GPIO18", EdgesChan: edges, L: gpio.Low}

	var got []Action
	b := &Buttons{
		logger:   discardLogger,
		debounce: time.Hour, // every press after the first counts as bounce
		pins:     map[Action]gpio.PinIO{ActionCapture: pin},
		handler:  func(a Action) { got = append(got, a) },
	}
	b.running.Store(true)
	b.wg.Add(1)
	go b.watch(ActionCapture, pin)

	edges <- gpio.Low
	edges <- gpio.Low
	edges <- gpio.Low

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && b.presses.Load()+b.bounces.Load() < 3 {
		time.Sleep(5 * time.Millisecond)
	}
	b.running.Store(false)
	b.wg.Wait()

	if b.presses.Load() != 1 {
		t.Fatalf("presses = %d, want 1", b.presses.Load())
	}
	if b.bounces.Load() != 2 {
		t.Fatalf("bounces = %d, want 2", b.bounces.Load())
	}
	if len(got) != 1 || got[0] != ActionCapture {
		t.Fatalf("handler calls = %v", got)
	}
}
