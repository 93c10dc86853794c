// Package asset assembles decoded GLB data into per-mesh records.
package asset

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/glbrig/internal/logger"
	"github.com/Faultbox/glbrig/pkg/formats"
)

// Textures holds the material texture references of a mesh.
type Textures struct {
	Albedo *formats.TextureRef
	Normal *formats.TextureRef
}

// Mesh is everything decoded for one mesh. Attribute slices are nil when
// the attribute is absent.
type Mesh struct {
	ID   int
	Name string

	Positions []float32
	Normals   []float32
	Tangents  []float32
	UVs       []float32
	Weights   []float32
	Joints    []uint8
	Indices   []uint16

	Textures Textures
	Scene    SceneTransform

	Skin       []formats.SkinJoint
	Animations formats.TrackSet
}

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Skinned reports whether the mesh has a skin.
func (m *Mesh) Skinned() bool {
	return len(m.Skin) > 0
}

// Asset is one loaded GLB container.
type Asset struct {
	ID     uuid.UUID
	Header formats.GLBHeader
	Meshes []*Mesh
}

// Mesh returns the mesh with the given name, or nil.
func (a *Asset) Mesh(name string) *Mesh {
	for _, m := range a.Meshes {
		if m.Name == name {
			return m
		}
	}
	return nil
}

type options struct {
	workers int
	log     *zap.Logger
}

// Option configures Load.
type Option func(*options)

// WithWorkers sets the number of meshes decoded in parallel.
// Values <= 1 decode sequentially.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger used for decode diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// LoadFile reads and decodes a GLB file.
func LoadFile(path string, opts ...Option) (*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", path, err)
	}
	a, err := Load(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading asset %s: %w", path, err)
	}
	return a, nil
}

// Load decodes every mesh of a GLB container. Structural container errors
// abort the load; unresolvable references leave the affected fields empty.
func Load(data []byte, opts ...Option) (*Asset, error) {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Named("asset")
	}

	glb, err := formats.ParseGLB(data)
	if err != nil {
		return nil, err
	}

	a := &Asset{
		ID:     uuid.New(),
		Header: glb.Header,
		Meshes: make([]*Mesh, len(glb.Document.Meshes)),
	}

	decode := func(i int) {
		a.Meshes[i] = decodeMesh(glb.Document, glb.BIN.Data, i, o.log)
	}

	start := time.Now()
	if o.workers <= 1 || len(a.Meshes) <= 1 {
		for i := range a.Meshes {
			decode(i)
		}
	} else {
		decodeParallel(len(a.Meshes), o.workers, decode)
	}

	o.log.Debug("asset loaded",
		zap.Stringer("id", a.ID),
		zap.Int("meshes", len(a.Meshes)),
		zap.Int("workers", o.workers),
		zap.Duration("elapsed", time.Since(start)))

	return a, nil
}

var (
	poolsMu sync.Mutex
	pools   = map[int]worker.DynamicWorkerPool{}
)

// sharedPool returns the process-wide pool with size workers, creating it
// on first use. Pool workers never exit, so pools are kept and reused
// across loads instead of being created per call.
func sharedPool(size int) worker.DynamicWorkerPool {
	poolsMu.Lock()
	defer poolsMu.Unlock()

	pool, ok := pools[size]
	if !ok {
		pool = worker.NewDynamicWorkerPool(size, 256, 1*time.Second)
		pools[size] = pool
	}
	return pool
}

// decodeParallel runs decode for every index on the shared pool for
// workers. Each task writes only its own slot.
func decodeParallel(n, workers int, decode func(int)) {
	pool := sharedPool(workers)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		idx := i
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				decode(idx)
				return nil, nil
			},
		})
	}
	wg.Wait()
}
