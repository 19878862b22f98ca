package geometry

import (
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

type builderImpl struct {
	workers int
	pool    worker.DynamicWorkerPool
}

// Builder generates many meshes in parallel.
// Mesh generation for a full layout is CPU-bound and independent per descriptor, so it is fanned out
// over a bounded pool of reusable workers.
type Builder interface {
	// BuildAll generates one mesh per descriptor. Duplicate descriptors are generated once
	// and the result is shared by every position that requested it.
	//
	// Parameters:
	//   - descriptors: the descriptors to build
	//
	// Returns:
	//   - []Mesh: meshes in the same order as descriptors
	//   - error: the joined errors of every failed descriptor, or nil
	BuildAll(descriptors []Descriptor) ([]Mesh, error)

	// Workers returns the configured worker count.
	//
	// Returns:
	//   - int: number of pool workers
	Workers() int
}

var _ Builder = &builderImpl{}

// BuilderOption configures a Builder.
type BuilderOption func(*builderImpl)

// WithWorkers overrides the number of pool workers. Values below one are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - BuilderOption: a function that sets the worker count
func WithWorkers(n int) BuilderOption {
	return func(b *builderImpl) {
		if n > 0 {
			b.workers = n
		}
	}
}

// NewBuilder creates a Builder backed by a dynamic worker pool.
// Idle workers exit after one second, so a Builder kept between scene restarts costs nothing while idle.
//
// Parameters:
//   - options: functional options to configure the builder
//
// Returns:
//   - Builder: the newly created builder
func NewBuilder(options ...BuilderOption) Builder {
	b := &builderImpl{
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(b)
	}
	b.pool = worker.NewDynamicWorkerPool(b.workers, 256, 1*time.Second)
	return b
}

func (b *builderImpl) Workers() int {
	return b.workers
}

func (b *builderImpl) BuildAll(descriptors []Descriptor) ([]Mesh, error) {
	unique := make(map[Descriptor]int, len(descriptors))
	order := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		d = d.Normalize()
		if _, ok := unique[d]; !ok {
			unique[d] = len(order)
			order = append(order, d)
		}
	}

	built := make([]Mesh, len(order))
	errs := make([]error, len(order))

	// A WaitGroup is the barrier here; the pool itself only drains when workers idle out.
	var wg sync.WaitGroup
	for i, d := range order {
		wg.Add(1)
		idx, desc := i, d
		b.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				built[idx], errs[idx] = Build(desc)
				return nil, errs[idx]
			},
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	out := make([]Mesh, len(descriptors))
	for i, d := range descriptors {
		out[i] = built[unique[d.Normalize()]]
	}
	return out, nil
}
