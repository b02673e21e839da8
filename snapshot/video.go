package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoSource decodes a media file with ffmpeg into raw RGBA frames and keeps the
// newest one. The file loops until Close.
type VideoSource struct {
	width, height int

	cmd    *exec.Cmd
	reader *io.PipeReader

	mu     sync.Mutex
	latest *image.RGBA
	seq    uint64
	seen   uint64
	err    error

	closeOnce sync.Once
	done      chan struct{}
}

// NewVideoOpener returns a VideoOpener running the given ffmpeg binary ("" = PATH).
func NewVideoOpener(ffmpegPath string) VideoOpener {
	return func(ctx context.Context, src string) (FrameSource, error) {
		return OpenVideo(ctx, src, ffmpegPath)
	}
}

// OpenVideo probes src for its frame size and starts decoding it.
func OpenVideo(ctx context.Context, src, ffmpegPath string) (*VideoSource, error) {
	probe, err := ffmpeg.Probe(src)
	if err != nil {
		return nil, fmt.Errorf("probe: %w", err)
	}
	w, h, err := parseProbe(probe)
	if err != nil {
		return nil, err
	}
	w, h = fitMaxSide(w, h)

	pr, pw := io.Pipe()
	stream := ffmpeg.Input(src, videoInputArgs()).
		Output("pipe:", videoOutputArgs(w, h)).
		WithOutput(pw)
	if ffmpegPath != "" {
		stream = stream.SetFfmpegPath(ffmpegPath)
	}
	cmd := stream.Compile()
	if err := cmd.Start(); err != nil {
		pw.Close()
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	v := &VideoSource{
		width:  w,
		height: h,
		cmd:    cmd,
		reader: pr,
		done:   make(chan struct{}),
	}
	go func() {
		err := cmd.Wait()
		pw.CloseWithError(err)
	}()
	go v.readFrames()
	go func() {
		select {
		case <-ctx.Done():
			v.Close()
		case <-v.done:
		}
	}()
	return v, nil
}

func videoInputArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"re":          "",
		"stream_loop": "-1",
	}
}

func videoOutputArgs(w, h int) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"format":  "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", w, h),
		"an":      "",
	}
}

type probeResult struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// parseProbe extracts the first video stream's size from ffprobe JSON.
func parseProbe(data string) (int, int, error) {
	var pr probeResult
	if err := json.Unmarshal([]byte(data), &pr); err != nil {
		return 0, 0, fmt.Errorf("decode probe output: %w", err)
	}
	for _, s := range pr.Streams {
		if s.CodecType == "video" && s.Width > 0 && s.Height > 0 {
			return s.Width, s.Height, nil
		}
	}
	return 0, 0, errors.New("no video stream")
}

func fitMaxSide(w, h int) (int, int) {
	if w <= MaxSide && h <= MaxSide {
		return w, h
	}
	if w >= h {
		return MaxSide, max(1, h*MaxSide/w)
	}
	return max(1, w*MaxSide/h), MaxSide
}

func (v *VideoSource) readFrames() {
	frameSize := v.width * v.height * 4
	for {
		img := image.NewRGBA(image.Rect(0, 0, v.width, v.height))
		if _, err := io.ReadFull(v.reader, img.Pix[:frameSize]); err != nil {
			v.mu.Lock()
			if v.err == nil && !errors.Is(err, io.ErrClosedPipe) {
				v.err = err
			}
			v.mu.Unlock()
			return
		}
		v.mu.Lock()
		v.latest = img
		v.seq++
		v.mu.Unlock()
	}
}

func (v *VideoSource) Size() (int, int) { return v.width, v.height }

func (v *VideoSource) Next() (*image.RGBA, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.latest == nil || v.seq == v.seen {
		return nil, false
	}
	v.seen = v.seq
	return v.latest, true
}

// Err returns the error that stopped decoding, if any.
func (v *VideoSource) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *VideoSource) Close() error {
	v.closeOnce.Do(func() {
		close(v.done)
		if v.cmd.Process != nil {
			_ = v.cmd.Process.Kill()
		}
		v.reader.Close()
	})
	return nil
}
