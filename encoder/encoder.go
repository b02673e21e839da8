// Package encoder records presented window frames to a video file through an
// ffmpeg process fed with raw RGBA over a pipe.
package encoder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame is one read-back of the default framebuffer. Pixels are bottom-up RGBA
// rows as GL returns them; PTS counts frames at the recording rate.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Options configures a recording.
type Options struct {
	OutputFile string
	FFMPEGPath string
	Codec      string // "h264" or "hevc"
	Width      int
	Height     int
	FPS        int
}

func (o Options) validate() error {
	if o.OutputFile == "" {
		return errors.New("no output file")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", o.Width, o.Height)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", o.FPS)
	}
	return nil
}

func (o Options) frameSize() int { return o.Width * o.Height * 4 }

// Args builds the ffmpeg input and output arguments for goos.
func Args(o Options, goos string) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", o.Width, o.Height),
		"r":       o.FPS,
	}

	hevc := o.Codec == "hevc"
	outputArgs = ffmpeg.KwArgs{
		// GL rows come bottom-up.
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}
	switch goos {
	case "darwin":
		if hevc {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
		outputArgs["b:v"] = "25M"
	default:
		if hevc {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
			outputArgs["tune"] = "zerolatency"
		}
		outputArgs["preset"] = "fast"
	}
	if hevc && strings.EqualFold(filepath.Ext(o.OutputFile), ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}

// Encoder is the consumer side of a recording. Frames are sent from the render
// loop and written by a background goroutine.
type Encoder struct {
	opts   Options
	frames chan *Frame
	done   chan error
}

// New starts ffmpeg and the writer goroutine.
func New(opts Options) (*Encoder, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}
	e := &Encoder{
		opts:   opts,
		frames: make(chan *Frame, 4),
		done:   make(chan error, 1),
	}

	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := Args(opts, runtime.GOOS)
	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg died early.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()
	go e.run(pipeWriter, errc)
	log.Printf("Recording %dx%d@%d to %s", opts.Width, opts.Height, opts.FPS, opts.OutputFile)
	return e, nil
}

// run writes frames in PTS order. Gaps between presented frames are filled by
// repeating the previous frame so the file keeps wall-clock timing.
func (e *Encoder) run(w *io.PipeWriter, errc <-chan error) {
	var last *Frame
	var writeErr error
	for frame := range e.frames {
		if writeErr != nil {
			continue
		}
		if len(frame.Pixels) != e.opts.frameSize() {
			log.Printf("encoder: dropping frame %d with %d bytes", frame.PTS, len(frame.Pixels))
			continue
		}
		if last != nil {
			for n := repeats(last.PTS, frame.PTS); n > 0 && writeErr == nil; n-- {
				_, writeErr = w.Write(last.Pixels)
			}
		}
		if last == nil || frame.PTS > last.PTS {
			if writeErr == nil {
				_, writeErr = w.Write(frame.Pixels)
			}
			last = frame
		} else {
			// Late frame: its pixels become the content of the next repeat.
			last = &Frame{Pixels: frame.Pixels, PTS: last.PTS}
		}
		if writeErr != nil {
			log.Printf("Error writing frame %d to ffmpeg: %v", frame.PTS, writeErr)
		}
	}
	w.Close()
	err := <-errc
	if err == nil && writeErr != nil {
		err = writeErr
	}
	e.done <- err
}

// repeats returns how many copies of the frame at prev are needed before the
// frame at next. Frames at or before prev are late and need none.
func repeats(prev, next int64) int64 {
	if next <= prev+1 {
		return 0
	}
	return next - prev - 1
}

// SendVideo queues a frame. It drops the frame when the writer is behind rather
// than stalling the render loop.
func (e *Encoder) SendVideo(frame *Frame) {
	select {
	case e.frames <- frame:
	default:
		log.Printf("encoder: writer busy, dropping frame %d", frame.PTS)
	}
}

// Options returns the recording settings.
func (e *Encoder) Options() Options { return e.opts }

// Close flushes the queue, waits for ffmpeg to exit and returns its error.
func (e *Encoder) Close() error {
	close(e.frames)
	return <-e.done
}
