// Command backdrop renders the procedural 3D backdrop in a window, or as glyphs in the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/terminal"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/window"
)

// GLFW requires its calls on the main OS thread.
func init() {
	runtime.LockOSThread()
}

type options struct {
	configPath string
	terminal   bool
	width      int
	height     int
	vsync      bool
	msaa       int
	profile    bool
	fps        float64
	debug      bool
	logPath    string
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "TOML file overriding the default scene")
	flag.BoolVar(&o.terminal, "terminal", false, "render as glyphs in the terminal instead of a window")
	flag.IntVar(&o.width, "width", 1280, "window width")
	flag.IntVar(&o.height, "height", 720, "window height")
	flag.BoolVar(&o.vsync, "vsync", true, "wait for vertical blank when presenting")
	flag.IntVar(&o.msaa, "msaa", 4, "multisample count (1 or 4)")
	flag.BoolVar(&o.profile, "profile", false, "log frame rate, memory and renderer stats every second")
	flag.Float64Var(&o.fps, "fps", 60, "frame rate cap, 0 for uncapped")
	flag.BoolVar(&o.debug, "debug", false, "log per-frame diagnostics")
	flag.StringVar(&o.logPath, "log", "", "log file (default stderr; terminal mode logs only when set)")
	flag.Parse()

	if err := run(o); err != nil {
		log.Fatalf("backdrop: %v", err)
	}
}

func run(o options) error {
	closeLog, err := setupLogging(o)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := config.Default()
	if o.configPath != "" {
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}

	host, r, err := newHost(o)
	if err != nil {
		return err
	}
	defer func() {
		r.Destroy()
		if err := host.Close(); err != nil {
			common.Logger().Warn("host close failed", "error", err)
		}
	}()

	s := scene.NewScene("backdrop", r, host, scene.WithConfig(cfg))
	eng := engine.NewEngine(
		engine.WithHost(host),
		engine.WithScene(s),
		engine.WithProfiling(o.profile),
		engine.WithRenderFrameLimit(o.fps),
	)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		if _, ok := <-sig; ok {
			eng.Quit()
		}
	}()

	return eng.Run()
}

// newHost opens the window or the terminal and the renderer drawing into it.
func newHost(o options) (engine.Host, renderer.Renderer, error) {
	if o.terminal {
		t, err := terminal.NewTerminal()
		if err != nil {
			return nil, nil, err
		}
		return t, renderer.NewRendererWithBackend(t.Backend()), nil
	}

	w, err := window.NewWindow(
		window.WithTitle("Backdrop"),
		window.WithWidth(o.width),
		window.WithHeight(o.height),
	)
	if err != nil {
		return nil, nil, err
	}

	present := renderer.PresentModeUncapped
	if o.vsync {
		present = renderer.PresentModeVSync
	}
	msaa := renderer.MSAA4x
	if o.msaa <= 1 {
		msaa = renderer.MSAAOff
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, w,
		renderer.WithPresentMode(present),
		renderer.WithMSAA(msaa),
	)
	if err != nil {
		_ = w.Close()
		return nil, nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return w, r, nil
}

// setupLogging installs the shared logger. A terminal frame would be overwritten by stderr output,
// so terminal mode stays silent unless a log file is given.
func setupLogging(o options) (func(), error) {
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case o.logPath != "":
		f, err := os.OpenFile(o.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	case o.terminal:
		return closeFn, nil
	}

	common.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return closeFn, nil
}
