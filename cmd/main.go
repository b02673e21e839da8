package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/goglitch/encoder"
	"github.com/richinsley/goglitch/engine"
	"github.com/richinsley/goglitch/glfwcontext"
	"github.com/richinsley/goglitch/glrender"
	"github.com/richinsley/goglitch/options"
	"github.com/richinsley/goglitch/page"
	"github.com/richinsley/goglitch/snapshot"
	"github.com/richinsley/goglitch/visibility"
)

func init() {
	runtime.LockOSThread()
}

func runHost(opts *options.HostOptions, doc *page.Document, cfg options.Config) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts, doc.Title)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer ctx.Shutdown()
	ctx.MakeCurrent()
	glfw.SwapInterval(*opts.SwapInterval)

	dev, err := glrender.NewDevice(false)
	if err != nil {
		return err
	}
	defer dev.Shutdown()

	obs := visibility.NewRectObserver(ctx)
	rt := engine.NewRuntime(engine.RuntimeOptions{
		Device:   dev,
		Viewport: ctx,
		Observer: obs,
		Bridge:   snapshot.NewBridge(nil, snapshot.NewVideoOpener(*opts.FFMPEGPath)),
		Frames:   ctx,
		Mobile:   *opts.Mobile,
		OnDiagnostic: func(d engine.Diagnostic) {
			log.Printf("Warning: %v", d)
		},
	})
	id, err := rt.Register(cfg, doc.Elements())
	if err != nil {
		return fmt.Errorf("failed to register effects: %w", err)
	}
	defer rt.DestroyAll(*opts.KeepHidden)
	log.Printf("Watching %d elements of %q", len(doc.Boxes), doc.Title)

	bindKeys(ctx, rt, id)
	host := glfwcontext.NewHost(ctx, dev, rt, doc, obs, *opts.Mobile)
	if *opts.OutputFile != "" {
		fbWidth, fbHeight := ctx.GetFramebufferSize()
		rec, err := encoder.New(encoder.Options{
			OutputFile: *opts.OutputFile,
			FFMPEGPath: *opts.FFMPEGPath,
			Codec:      *opts.Codec,
			Width:      fbWidth,
			Height:     fbHeight,
			FPS:        *opts.FPS,
		})
		if err != nil {
			return fmt.Errorf("failed to start recording: %w", err)
		}
		host.SetRecorder(rec)
		defer func() {
			if err := rec.Close(); err != nil {
				log.Printf("Recording finished with error: %v", err)
			}
		}()
	}
	log.Println("Starting interactive render loop...")
	host.Run()
	return nil
}

// bindKeys installs the demo shortcuts: P, C and G toggle the effects, V toggles
// velocity scaling, S cycles the interaction shape, 1-4 pick a CRT preset and A
// fades the intensity in.
func bindKeys(ctx *glfwcontext.Context, rt *engine.Runtime, id engine.InstanceID) {
	update := func(p options.Patch) {
		if err := rt.UpdateConfig(id, p); err != nil {
			log.Printf("update config: %v", err)
		}
	}
	current := func() options.Config {
		inst, _ := rt.Instance(id)
		return inst.Config()
	}

	ctx.RegisterKeyCallback(glfw.KeyP, func() {
		on := !current().Effects.Pixelation.Enabled
		update(options.Patch{Effects: &options.EffectsPatch{Pixelation: &options.PixelationPatch{Enabled: &on}}})
	})
	ctx.RegisterKeyCallback(glfw.KeyC, func() {
		on := !current().Effects.CRT.Enabled
		update(options.Patch{Effects: &options.EffectsPatch{CRT: &options.CRTPatch{Enabled: &on}}})
	})
	ctx.RegisterKeyCallback(glfw.KeyG, func() {
		on := !current().Effects.Glitch.Enabled
		update(options.Patch{Effects: &options.EffectsPatch{Glitch: &options.GlitchPatch{Enabled: &on}}})
	})
	ctx.RegisterKeyCallback(glfw.KeyV, func() {
		on := !current().Interaction.Velocity
		update(options.Patch{Interaction: &options.InteractionPatch{Velocity: &on}})
	})
	shapes := []string{"circle", "square", "diamond", "cross", "plus"}
	ctx.RegisterKeyCallback(glfw.KeyS, func() {
		next := shapes[(int(current().Interaction.Shape)+1)%len(shapes)]
		update(options.Patch{Interaction: &options.InteractionPatch{Shape: &next}})
	})
	for i, name := range options.CRTPresetNames() {
		preset := name
		ctx.RegisterKeyCallback(glfw.Key1+glfw.Key(i), func() {
			update(options.Patch{Effects: &options.EffectsPatch{CRT: &options.CRTPatch{Preset: &preset}}})
		})
	}
	ctx.RegisterKeyCallback(glfw.KeyA, func() {
		if _, err := rt.Animate(id, "intensity", 0, 1, time.Second, "easeInOut"); err != nil {
			log.Printf("animate: %v", err)
		}
	})
}

func main() {
	opts := options.HostOptions{
		PagePath:     flag.String("page", "", "Page layout JSON file (required)"),
		ConfigPath:   flag.String("config", "", "Effect configuration JSON patch"),
		Width:        flag.Int("width", 1280, "Window width"),
		Height:       flag.Int("height", 720, "Window height"),
		FFMPEGPath:   flag.String("ffmpeg", "", "Path to ffmpeg executable for video elements"),
		Verbose:      flag.Bool("verbose", false, "Log runtime lifecycle and per-frame diagnostics"),
		Help:         flag.Bool("help", false, "Show help message"),
		Mobile:       flag.Bool("mobile", false, "Use touch-device input and resize handling"),
		KeepHidden:   flag.Bool("keep-hidden", false, "Leave source elements hidden after exit"),
		SwapInterval: flag.Int("swap-interval", 1, "Buffer swap interval (0 disables vsync)"),
		OutputFile:   flag.String("record", "", "Record the window to this video file"),
		Codec:        flag.String("codec", "h264", "Recording codec (h264, hevc)"),
		FPS:          flag.Int("fps", 30, "Recording frame rate"),
	}
	flag.Parse()

	if *opts.Help || *opts.PagePath == "" {
		fmt.Println("goglitch: pixelation, CRT and glitch effects over page elements")
		flag.PrintDefaults()
		if !*opts.Help {
			os.Exit(2)
		}
		return
	}
	if *opts.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		engine.SetLogger(slog.Default())
	}

	doc, err := page.LoadDocument(*opts.PagePath)
	if err != nil {
		log.Fatalf("Error loading page: %v", err)
	}

	cfg := options.Defaults()
	if *opts.ConfigPath != "" {
		patch, err := options.LoadPatch(*opts.ConfigPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		var errs []error
		cfg, errs = options.Merge(cfg, patch)
		for _, e := range errs {
			log.Printf("Warning: config: %v", e)
		}
	}

	if err := runHost(&opts, doc, cfg); err != nil {
		log.Fatalf("%v", err)
	}
}
