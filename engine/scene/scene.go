package scene

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/grove-go/common"
	"github.com/Carmen-Shannon/grove-go/engine/camera"
	"github.com/Carmen-Shannon/grove-go/engine/field"
	"github.com/Carmen-Shannon/grove-go/engine/mesh"
	"github.com/Carmen-Shannon/grove-go/engine/morph"
	"github.com/Carmen-Shannon/grove-go/engine/renderer"
)

// Mesh batch keys registered with the renderer.
const (
	meshKeyBox    = "ornament-box"
	meshKeySphere = "ornament-sphere"
	meshKeyStar   = "star"
)

// blendChunkSize is the number of particles each worker task blends. Chunks
// are large enough that task submission overhead is negligible against the
// per-particle math.
const blendChunkSize = 2048

// DefaultFoliageCount is the particle count used when no option overrides it.
const DefaultFoliageCount = 60000

// DefaultOrnamentCount is the ornament count used when no option overrides it.
const DefaultOrnamentCount = 320

// starColor is the gold tint applied to the tree topper mesh.
var starColor = [3]float32{1.0, 0.84, 0.35}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.Mutex

	name string

	cam  camera.Camera
	r    renderer.Renderer
	ctrl morph.Controller

	foliage   []field.ParticlePoint
	ornaments []field.OrnamentInstance
	star      field.Star

	// Ornament indices split by shape at construction. The original ordinal
	// is preserved so the per-ornament stagger phase is stable regardless of
	// batch membership.
	boxOrdinals    []int
	sphereOrdinals []int

	foliageCount  int
	ornamentCount int

	elapsed float32

	// Pre-allocated staging slices reused each frame to avoid per-frame allocations.
	pointStaging  []renderer.PointGPU
	boxStaging    []renderer.InstanceGPU
	sphereStaging []renderer.InstanceGPU
	starStaging   []renderer.InstanceGPU

	// blendPool manages a bounded set of reusable goroutines for the parallel
	// CPU blend phase of PrepareFrame. Workers persist across frames, avoiding
	// per-frame goroutine spawn/teardown overhead.
	blendPool    worker.DynamicWorkerPool
	blendWorkers int
}

// Scene owns the particle field, the ornament set, the morph controller, and
// the camera, and drives the per-frame CPU blend that feeds the renderer.
type Scene interface {
	// Name returns the scene's display name.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Camera returns the attached camera.
	//
	// Returns:
	//   - camera.Camera: the scene camera
	Camera() camera.Camera

	// Morph returns the attached morph controller.
	//
	// Returns:
	//   - morph.Controller: the morph controller
	Morph() morph.Controller

	// FoliageCount returns the number of foliage particles.
	//
	// Returns:
	//   - int: the particle count
	FoliageCount() int

	// OrnamentCount returns the number of ornament instances.
	//
	// Returns:
	//   - int: the ornament count
	OrnamentCount() int

	// PrepareFrame advances scene time, reads one consistent snapshot of the
	// morph controller, blends every particle and ornament in parallel on the
	// worker pool, and uploads the packed results and the camera uniform to
	// the renderer. Call once per rendered frame before Draw.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	PrepareFrame(deltaTime float32)

	// Draw encodes the scene's draw calls within the renderer's current
	// frame. Ornaments draw first so the translucent particles blend against
	// their depth.
	Draw()
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a Scene with the given camera and renderer, generates the
// particle field and ornament set, and uploads the static mesh data to the
// GPU. Both the camera and renderer are required and NewScene panics if
// either is nil or if GPU resource creation fails.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:            &sync.Mutex{},
		name:          name,
		cam:           cam,
		r:             r,
		foliageCount:  DefaultFoliageCount,
		ornamentCount: DefaultOrnamentCount,
		blendWorkers:  max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	if s.ctrl == nil {
		s.ctrl = morph.NewController()
	}

	// Initialize the blend pool after options so WithBlendWorkers can
	// override the default. The queue must hold every chunk task a single
	// frame submits or the frame barrier would wait on a dropped task.
	s.blendPool = worker.NewDynamicWorkerPool(s.blendWorkers, blendQueueSize(s.foliageCount), 1*time.Second)

	s.foliage = field.GenerateFoliage(s.foliageCount)
	s.ornaments = field.GenerateOrnaments(s.ornamentCount)
	s.star = field.NewStar()

	for i, o := range s.ornaments {
		switch o.Shape {
		case field.ShapeBox:
			s.boxOrdinals = append(s.boxOrdinals, i)
		case field.ShapeSphere:
			s.sphereOrdinals = append(s.sphereOrdinals, i)
		}
	}

	s.pointStaging = make([]renderer.PointGPU, len(s.foliage))
	s.boxStaging = make([]renderer.InstanceGPU, len(s.boxOrdinals))
	s.sphereStaging = make([]renderer.InstanceGPU, len(s.sphereOrdinals))
	s.starStaging = make([]renderer.InstanceGPU, 1)

	if err := s.initGPUResources(); err != nil {
		panic(fmt.Sprintf("scene: failed to init GPU resources: %v", err))
	}

	return s
}

// blendQueueSize returns the worker pool queue capacity for a particle count:
// one slot per chunk task submitted in a frame, with a floor for small fields.
func blendQueueSize(foliageCount int) int {
	chunks := (foliageCount + blendChunkSize - 1) / blendChunkSize
	return max(chunks, 256)
}

// initGPUResources uploads the static meshes and creates the particle and
// instance storage buffers.
func (s *scene) initGPUResources() error {
	if len(s.foliage) > 0 {
		if err := s.r.InitPointBuffer(len(s.foliage)); err != nil {
			return err
		}
	}

	cube := mesh.Cube()
	if err := s.r.RegisterMesh(meshKeyBox, cube.VertexBytes(), cube.IndexBytes(), cube.IndexCount(), max(len(s.boxOrdinals), 1)); err != nil {
		return err
	}

	sphere := mesh.Sphere(12, 18)
	if err := s.r.RegisterMesh(meshKeySphere, sphere.VertexBytes(), sphere.IndexBytes(), sphere.IndexCount(), max(len(s.sphereOrdinals), 1)); err != nil {
		return err
	}

	star := mesh.Star()
	if err := s.r.RegisterMesh(meshKeyStar, star.VertexBytes(), star.IndexBytes(), star.IndexCount(), 1); err != nil {
		return err
	}

	return nil
}

func (s *scene) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Morph() morph.Controller {
	return s.ctrl
}

func (s *scene) FoliageCount() int {
	return len(s.foliage)
}

func (s *scene) OrnamentCount() int {
	return len(s.ornaments)
}

func (s *scene) PrepareFrame(deltaTime float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if deltaTime > 0 {
		s.elapsed += deltaTime
	}
	elapsed := s.elapsed

	// One consistent controller snapshot per frame: every particle blends
	// against the same morph and height values.
	snap := s.ctrl.Snapshot()

	// Fan out the per-particle blend across the pool in fixed-size chunks.
	// A WaitGroup provides per-frame barrier sync since pool.Wait() blocks
	// until workers idle-exit which is unsuitable for frame-rate workloads.
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(s.foliage); start += blendChunkSize {
		end := min(start+blendChunkSize, len(s.foliage))

		wg.Add(1)
		chunkStart, chunkEnd := start, end
		id := taskID
		taskID++
		s.blendPool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for i := chunkStart; i < chunkEnd; i++ {
					pos, color, size := field.BlendPoint(&s.foliage[i], snap.Morph, elapsed)
					glow := float32(0)
					if s.foliage[i].Class == field.SizeLight {
						glow = 1
					}
					s.pointStaging[i] = renderer.PointGPU{
						Position: pos,
						Size:     size,
						Color:    color,
						Glow:     glow,
					}
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Ornaments and the star are few enough to blend serially.
	for slot, ordinal := range s.boxOrdinals {
		s.boxStaging[slot] = s.ornamentInstance(ordinal, snap.Morph, elapsed)
	}
	for slot, ordinal := range s.sphereOrdinals {
		s.sphereStaging[slot] = s.ornamentInstance(ordinal, snap.Morph, elapsed)
	}

	starPos, starRot := field.BlendStar(s.star, snap.Morph, elapsed)
	s.starStaging[0] = packInstance(starPos, starRot, s.star.Scale, starColor)

	cam := s.cameraUniform()
	s.r.WriteCamera(&cam)
	s.r.WritePoints(s.pointStaging)
	s.r.WriteInstances(meshKeyBox, s.boxStaging)
	s.r.WriteInstances(meshKeySphere, s.sphereStaging)
	s.r.WriteInstances(meshKeyStar, s.starStaging)
}

// ornamentInstance blends one ornament and packs it for upload.
func (s *scene) ornamentInstance(ordinal int, morphValue, elapsed float32) renderer.InstanceGPU {
	o := &s.ornaments[ordinal]
	pos, rot := field.BlendOrnament(o, ordinal, morphValue, elapsed)
	return packInstance(pos, rot, o.Scale, o.Color)
}

// cameraUniform packs the camera matrices and billboard basis.
func (s *scene) cameraUniform() renderer.CameraGPU {
	right, up := s.cam.Basis()
	return renderer.CameraGPU{
		ViewProj: s.cam.ViewProjectionMatrix(),
		Right:    [4]float32{right[0], right[1], right[2], 0},
		Up:       [4]float32{up[0], up[1], up[2], 0},
	}
}

// packInstance builds the model matrix and packs one mesh instance.
func packInstance(pos, rot [3]float32, scale float32, color [3]float32) renderer.InstanceGPU {
	var inst renderer.InstanceGPU
	common.BuildModelMatrix(inst.Model[:], pos[0], pos[1], pos[2], rot[0], rot[1], rot[2], scale)
	inst.Color = [4]float32{color[0], color[1], color[2], 1}
	return inst
}

func (s *scene) Draw() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Opaque ornaments first so the depth buffer is populated before the
	// depth-read-only particle pass.
	s.r.DrawMesh(meshKeyBox, uint32(len(s.boxStaging)))
	s.r.DrawMesh(meshKeySphere, uint32(len(s.sphereStaging)))
	s.r.DrawMesh(meshKeyStar, 1)
	s.r.DrawPoints(uint32(len(s.foliage)))
}
