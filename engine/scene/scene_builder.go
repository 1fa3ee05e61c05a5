package scene

import "github.com/Carmen-Shannon/grove-go/engine/morph"

// SceneBuilderOption is a functional option applied to a scene during construction via NewScene.
type SceneBuilderOption func(*scene)

// WithFoliageCount sets the number of foliage particles to generate.
//
// Parameters:
//   - n: the particle count (values below 1 are ignored)
//
// Returns:
//   - SceneBuilderOption: a function that applies the foliage count option to a scene
func WithFoliageCount(n int) SceneBuilderOption {
	return func(s *scene) {
		if n > 0 {
			s.foliageCount = n
		}
	}
}

// WithOrnamentCount sets the number of ornament instances to generate.
//
// Parameters:
//   - n: the ornament count (values below 1 are ignored)
//
// Returns:
//   - SceneBuilderOption: a function that applies the ornament count option to a scene
func WithOrnamentCount(n int) SceneBuilderOption {
	return func(s *scene) {
		if n > 0 {
			s.ornamentCount = n
		}
	}
}

// WithMorphController attaches a pre-configured morph controller instead of
// the default.
//
// Parameters:
//   - ctrl: the morph controller to attach
//
// Returns:
//   - SceneBuilderOption: a function that applies the controller option to a scene
func WithMorphController(ctrl morph.Controller) SceneBuilderOption {
	return func(s *scene) {
		s.ctrl = ctrl
	}
}

// WithBlendWorkers sets the number of worker goroutines used during the
// parallel particle blend phase of PrepareFrame.
//
// Parameters:
//   - n: the number of blend workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: a function that applies the blend workers option to a scene
func WithBlendWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n >= 1 {
			s.blendWorkers = n
		}
	}
}
