// Package app implements the frame loop and owns the runtime state.
package app

import (
	"time"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/engine/debug"
	"github.com/Faultbox/learngl/internal/engine/gpu"
	"github.com/Faultbox/learngl/internal/engine/gpu/gldriver"
	"github.com/Faultbox/learngl/internal/engine/input"
	"github.com/Faultbox/learngl/internal/engine/renderer"
	"github.com/Faultbox/learngl/internal/engine/scene"
	"github.com/Faultbox/learngl/internal/engine/shader"
	"github.com/Faultbox/learngl/internal/engine/window"
	"github.com/Faultbox/learngl/internal/logger"
)

// App is the harness instance.
type App struct {
	cfg      *config.Config
	log      *zap.Logger
	window   *window.Window
	driver   *gldriver.Driver
	renderer *renderer.Renderer
	input    *input.Input
	shaders  shader.Pair
	buildLog gpu.BuildLogWriter
	program  *gpu.Program
	reporter *gpu.UniformReporter
	watcher  *shader.Watcher
	capture  *debug.ScreenshotCapture

	running   bool
	wireframe bool
}

// New creates the window, loads the shaders and builds the program. Any
// failure is returned after releasing what was already created.
func New(cfg *config.Config) (_ *App, err error) {
	a := &App{
		cfg:      cfg,
		log:      logger.Named("app"),
		input:    input.New(),
		shaders:  shader.Pair{Vertex: cfg.Shaders.Vertex, Fragment: cfg.Shaders.Fragment},
		buildLog: gpu.NewFileBuildLog(cfg.Shaders.BuildLog, logger.Named("gpu")),
		reporter: gpu.NewUniformReporter(logger.Named("gpu")),
		capture:  debug.NewScreenshotCapture(cfg.Window.ScreenshotDir, "learngl"),
	}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Debug:      cfg.GL.Debug,
	}, logger.Named("window"))
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}

	a.driver, err = gldriver.New(logger.Named("gl"))
	if err != nil {
		return nil, err
	}
	if cfg.GL.Debug {
		a.driver.EnableDebugOutput(gpu.NewLogSink(logger.Named("gl")))
	}

	a.program, err = a.build()
	if err != nil {
		return nil, errors.Wrap(err, "build shader program")
	}

	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:        width,
		Height:       height,
		Textures:     cfg.Textures.Paths,
		FlipTextures: cfg.Textures.FlipVertical,
		Camera: scene.Camera{
			FOV:    cfg.Camera.FOV,
			Radius: cfg.Camera.Radius,
			Near:   cfg.Camera.Near,
			Far:    cfg.Camera.Far,
		},
	}, logger.Named("renderer"))
	if err != nil {
		return nil, errors.Wrap(err, "create renderer")
	}
	a.reporter.Report(a.renderer.Bind(a.program)...)

	if cfg.Shaders.HotReload {
		a.watcher, err = shader.Watch(a.shaders, logger.Named("shader"))
		if err != nil {
			return nil, errors.Wrap(err, "watch shaders")
		}
	}

	a.log.Info("harness initialized")
	return a, nil
}

func (a *App) build() (*gpu.Program, error) {
	return a.shaders.Build(a.driver,
		gpu.WithBuildLog(a.buildLog),
		gpu.WithLogger(logger.Named("gpu")),
	)
}

// Run drives frames until the window is closed or Escape is pressed.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")
	for a.running {
		a.input.Update()
		for _, ev := range a.input.Events() {
			a.handle(ev)
		}
		if !a.running {
			break
		}

		a.pollReload()

		errs := a.renderer.Draw(a.program, window.Elapsed())
		a.reporter.Report(errs...)

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (a *App) handle(ev input.Event) {
	switch ev.Type {
	case input.EventQuit:
		a.running = false
	case input.EventResize:
		a.renderer.Resize(ev.Width, ev.Height)
	case input.EventKeyDown:
		switch ev.Key {
		case sdl.K_ESCAPE:
			a.running = false
		case sdl.K_w:
			a.wireframe = !a.wireframe
			a.renderer.SetWireframe(a.wireframe)
			a.log.Debug("wireframe toggled", zap.Bool("on", a.wireframe))
		case sdl.K_F12:
			a.screenshot()
		}
	}
}

func (a *App) screenshot() {
	pixels, width, height := a.renderer.ReadPixels()
	path, err := a.capture.CaptureFromPixels(pixels, width, height)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// pollReload rebuilds the program after a source edit. A failed rebuild
// keeps the current program running.
func (a *App) pollReload() {
	if a.watcher == nil {
		return
	}
	select {
	case <-a.watcher.Changes():
	default:
		return
	}

	next, err := a.build()
	if err != nil {
		a.log.Error("shader reload failed, keeping previous program", zap.Error(err))
		return
	}
	a.program.Destroy()
	a.program = next
	a.reporter.Reset()
	a.reporter.Report(a.renderer.Bind(a.program)...)
	a.log.Info("shader program reloaded", zap.Uint32("program", next.Handle()))
}

// Close releases everything in reverse order of creation. It is safe on a
// partially constructed App.
func (a *App) Close() {
	a.log.Info("closing harness")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("close shader watcher", zap.Error(err))
		}
		a.watcher = nil
	}
	if a.renderer != nil {
		a.renderer.Close()
		a.renderer = nil
	}
	a.program.Destroy()
	a.program = nil
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}
