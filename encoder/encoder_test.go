package encoder

import "testing"

func TestArgs(t *testing.T) {
	base := Options{OutputFile: "out.mp4", Width: 640, Height: 360, FPS: 30}

	in, out := Args(base, "linux")
	if in["s"] != "640x360" || in["pix_fmt"] != "rgba" || in["f"] != "rawvideo" {
		t.Errorf("input args = %v", in)
	}
	if in["r"] != 30 {
		t.Errorf("input rate = %v, want 30", in["r"])
	}
	if out["c:v"] != "libx264" || out["vf"] != "vflip" {
		t.Errorf("output args = %v", out)
	}
	if _, ok := out["tag:v"]; ok {
		t.Errorf("h264 output should not carry tag:v")
	}

	hevc := base
	hevc.Codec = "hevc"
	_, out = Args(hevc, "darwin")
	if out["c:v"] != "hevc_videotoolbox" {
		t.Errorf("darwin hevc codec = %v", out["c:v"])
	}
	if out["tag:v"] != "hvc1" {
		t.Errorf("hevc mp4 tag = %v, want hvc1", out["tag:v"])
	}

	hevc.OutputFile = "out.mkv"
	_, out = Args(hevc, "linux")
	if out["c:v"] != "libx265" {
		t.Errorf("linux hevc codec = %v", out["c:v"])
	}
	if _, ok := out["tag:v"]; ok {
		t.Errorf("mkv output should not carry tag:v")
	}
}

func TestRepeats(t *testing.T) {
	tests := []struct {
		prev, next, want int64
	}{
		{0, 1, 0},
		{0, 4, 3},
		{5, 5, 0},
		{5, 2, 0},
	}
	for _, tt := range tests {
		if got := repeats(tt.prev, tt.next); got != tt.want {
			t.Errorf("repeats(%d, %d) = %d, want %d", tt.prev, tt.next, got, tt.want)
		}
	}
}

func TestNewValidates(t *testing.T) {
	bad := []Options{
		{Width: 10, Height: 10, FPS: 30},
		{OutputFile: "x.mp4", Width: 0, Height: 10, FPS: 30},
		{OutputFile: "x.mp4", Width: 10, Height: 10, FPS: 0},
	}
	for _, o := range bad {
		if _, err := New(o); err == nil {
			t.Errorf("New(%+v) succeeded, want error", o)
		}
	}
}
