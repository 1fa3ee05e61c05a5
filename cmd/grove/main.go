package main

import (
	"log"
	"sync/atomic"

	"github.com/Carmen-Shannon/grove-go/common"
	"github.com/Carmen-Shannon/grove-go/engine"
	"github.com/Carmen-Shannon/grove-go/engine/camera"
	"github.com/Carmen-Shannon/grove-go/engine/gesture"
	"github.com/Carmen-Shannon/grove-go/engine/morph"
	"github.com/Carmen-Shannon/grove-go/engine/renderer"
	"github.com/Carmen-Shannon/grove-go/engine/scene"
	"github.com/Carmen-Shannon/grove-go/engine/window"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("[Grove] invalid configuration: %v", err)
	}

	title := "Grove"
	if cfg.Name != "" {
		title = "Grove — " + cfg.Name
	}

	win := window.NewWindow(
		window.WithTitle(title),
		window.WithWidth(cfg.Width),
		window.WithHeight(cfg.Height),
	)

	presentMode := renderer.PresentModeVSync
	if !cfg.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(win.SurfaceDescriptor(),
		renderer.WithPresentMode(presentMode),
	)
	r.Resize(win.Width(), win.Height())

	cam := camera.NewCamera(
		camera.WithAspect(float32(win.Width()) / float32(win.Height())),
	)

	ctrl := morph.NewController()

	sc := scene.NewScene("grove", cam, r,
		scene.WithFoliageCount(cfg.FoliageCount),
		scene.WithOrnamentCount(cfg.OrnamentCount),
		scene.WithMorphController(ctrl),
	)

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithScene(sc),
		engine.WithTickRate(cfg.TickRate),
		engine.WithProfiling(cfg.Profiling),
		engine.WithProfilerInterval(cfg.ProfilingInterval),
	)

	// started flips once on Enter; read by the tick loop for auto-rotation.
	var started atomic.Bool

	// The gesture source is created on the main thread (key callback) and
	// only read there afterwards, so no lock is needed.
	var src *gesture.Source

	onReading := func(reading gesture.Reading) {
		applyReading(ctrl, cam, reading)
	}

	startExperience := func() {
		if !started.CompareAndSwap(false, true) {
			return
		}
		if cfg.Name != "" {
			log.Printf("[Grove] welcome, %s", cfg.Name)
		} else {
			log.Printf("[Grove] welcome")
		}

		dialed, dialErr := gesture.Dial(cfg.GestureURL, onReading)
		if dialErr != nil {
			// Manual mode for the rest of the session; space toggles.
			log.Printf("[Grove] gesture recognizer unavailable at %s (%v), running in manual mode", cfg.GestureURL, dialErr)
			return
		}
		src = dialed
		log.Printf("[Grove] gesture control connected to %s", cfg.GestureURL)
	}

	win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyEnter:
			startExperience()
		case common.KeySpace:
			mode := ctrl.Toggle()
			log.Printf("[Grove] morph toggled, now %s", mode)
		case common.KeyR:
			ctrl.SetAssembled()
		}
	})

	win.SetDragCallback(func(dx, dy float32) {
		// Orbit input is owned by the director while gesture control is live.
		if cam.Director().Active() {
			return
		}
		cam.Controller().Orbit(dx, dy)
	})

	win.SetScrollCallback(func(delta float32) {
		if cam.Director().Active() {
			return
		}
		cam.Controller().Zoom(delta)
	})

	eng.SetTickCallback(func(deltaTime float32) {
		ctrl.Tick()
		snap := ctrl.Snapshot()

		cam.Director().SetHeight(snap.Height)

		// Idle auto-rotation: only once started, only while the tree is fully
		// assembled, and never while the director owns the camera.
		autoRotate := started.Load() &&
			!cam.Director().Active() &&
			snap.Mode == morph.ModeAssembled &&
			snap.Morph <= morph.SnapEpsilon
		cam.Controller().SetAutoRotate(autoRotate)

		cam.Update(deltaTime)
	})

	log.Printf("[Grove] %d particles, %d ornaments — Enter to begin, Space to toggle, Esc to quit",
		sc.FoliageCount(), sc.OrnamentCount())

	eng.Run()

	if src != nil {
		if err := src.Close(); err != nil {
			log.Printf("[Grove] gesture source close: %v", err)
		}
	}
	r.Release()
}

// applyReading folds one recognizer reading into the morph targets and the
// camera director. Frames with no detection leave the previous targets
// untouched so the scene holds its state instead of springing back.
func applyReading(ctrl morph.Controller, cam camera.Camera, reading gesture.Reading) {
	if !reading.Detected {
		return
	}
	// The mapper's spread ceiling is above 1 on purpose; clamp to the blend
	// range here.
	ctrl.SetMorphTarget(common.Clamp01(reading.Spread))
	ctrl.SetHeightTarget(reading.Height)
	cam.Director().MarkDetected()
}
