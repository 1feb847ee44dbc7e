package camera

import "bytes"

// MJPEG stream demuxing. rpicam-vid with --codec mjpeg writes concatenated
// JPEG images to stdout; frames are recovered by scanning for SOI/EOI
// marker pairs. Anything between frames (partial writes, stray bytes after
// a kill) is discarded.

var (
	jpegSOI = []byte{0xff, 0xd8}
	jpegEOI = []byte{0xff, 0xd9}
)

// maxPendingBytes bounds the reassembly buffer; a stream that never
// produces an EOI (wedged camera process) must not grow memory without
// limit. Generous enough for a high-quality 1080p frame.
const maxPendingBytes = 8 << 20

// FrameExtractor incrementally reassembles complete JPEG frames from an
// MJPEG byte stream. Not safe for concurrent use; feed it from the single
// goroutine that owns the pipe.
type FrameExtractor struct {
	buf []byte
}

// Feed appends raw stream bytes and returns every complete JPEG frame now
// available, in stream order. Returned slices are private copies.
func (e *FrameExtractor) Feed(p []byte) [][]byte {
	e.buf = append(e.buf, p...)
	var frames [][]byte
	for {
		start := bytes.Index(e.buf, jpegSOI)
		if start < 0 {
			// No frame start in sight; keep one byte in case the buffer
			// ends mid-marker.
			if len(e.buf) > 1 {
				e.buf = e.buf[len(e.buf)-1:]
			}
			break
		}
		end := bytes.Index(e.buf[start+2:], jpegEOI)
		if end < 0 {
			if start > 0 {
				e.buf = e.buf[start:]
			}
			if len(e.buf) > maxPendingBytes {
				e.buf = nil
			}
			break
		}
		frameEnd := start + 2 + end + 2
		frame := make([]byte, frameEnd-start)
		copy(frame, e.buf[start:frameEnd])
		frames = append(frames, frame)
		e.buf = e.buf[frameEnd:]
	}
	return frames
}

// Reset drops any partially accumulated frame, e.g. after a stream restart.
func (e *FrameExtractor) Reset() { e.buf = nil }
