//go:build linux

package debug

// Memory/RSS periodic logger enabled when config.Debug is true.
// Logs resident set size along with Go heap stats to correlate native vs
// heap growth. Image pipelines leak natively (Tk photos, decode buffers)
// long before the Go heap shows it.

import (
	"bufio"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// StartMemLogger launches a goroutine that logs memory stats every interval.
// It is best-effort; failures to query RSS are logged once and suppressed.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for range ticker.C {
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			gcount := runtime.NumGoroutine()
			rss, peak, err := readRSS()
			if err != nil && !rssErrLogged {
				logger.Warn("memlog: rss read failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			logger.Info("memstats",
				slog.Int("goroutines", gcount),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
				slog.Uint64("heap_inuse", ms.HeapInuse),
				slog.Uint64("heap_idle", ms.HeapIdle),
				slog.Uint64("heap_sys", ms.HeapSys),
				slog.Uint64("next_gc", ms.NextGC),
				slog.Uint64("rss", rss),
				slog.Uint64("rss_peak", peak),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
			)
		}
	}()
}

// readRSS returns current and peak resident set size in bytes. Current
// comes from /proc/self/statm, peak from getrusage (ru_maxrss is in KiB
// on Linux).
func readRSS() (rss, peak uint64, err error) {
	var ru unix.Rusage
	if rerr := unix.Getrusage(unix.RUSAGE_SELF, &ru); rerr == nil {
		peak = uint64(ru.Maxrss) * 1024
	}
	f, err := os.Open("/proc/self/statm")
	if err != nil {
		return 0, peak, err
	}
	defer f.Close()
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil {
		return 0, peak, err
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, peak, nil
	}
	pages, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, peak, err
	}
	return pages * uint64(os.Getpagesize()), peak, nil
}
