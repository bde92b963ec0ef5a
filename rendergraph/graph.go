package rendergraph

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/rendergraph/gfx"
)

// Options configure a RenderGraph
type Options struct {
	// Scratch supplies the working state used by Compile. A single worker pool is created when it is nil.
	// Graphs compiled concurrently must use different workers.
	Scratch *ScratchPool
	// Worker is the index of the Scratch worker this graph compiles on
	Worker int
	// ValidateMaterialized makes Execute materialize every resource used by the compiled passes, and
	// check that each has the kind it was declared with, before recording any commands
	ValidateMaterialized bool
}

// RenderGraph collects passes and the resources they read and write, orders the passes that a target
// resource depends on, and records them with the barriers they need.
//
// A RenderGraph is not safe for concurrent use.
type RenderGraph struct {
	logger  *slog.Logger
	device  gfx.Device
	options Options
	epoch   uint32

	passes    []*Pass
	passNames *swiss.Map[string, *Pass]
	resources []resource
	physical  []*PhysicalResource
	errs      []error

	compiled bool
	target   ResourceID
	order    []*Pass
}

// New creates an empty RenderGraph that materializes its resources on device
func New(logger *slog.Logger, device gfx.Device, options Options) (*RenderGraph, error) {
	if logger == nil {
		return nil, errors.New("rendergraph.New requires a logger")
	}
	if device == nil {
		return nil, errors.New("rendergraph.New requires a device")
	}

	if options.Scratch == nil {
		if options.Worker != 0 {
			return nil, errors.Newf("rendergraph.Options.Worker is %d, but no scratch pool was provided", options.Worker)
		}
		options.Scratch = NewScratchPool(1)
	}
	if options.Worker < 0 || options.Worker >= options.Scratch.Workers() {
		return nil, errors.Newf("rendergraph.Options.Worker is %d, but the scratch pool has %d workers",
			options.Worker, options.Scratch.Workers())
	}

	return &RenderGraph{
		logger:    logger,
		device:    device,
		options:   options,
		epoch:     1,
		passNames: swiss.NewMap[string, *Pass](16),
	}, nil
}

// AddPass creates a pass. Passes are only executed if Compile finds that the target depends on them.
func (g *RenderGraph) AddPass(name string, kind PassKind) *Pass {
	pass := &Pass{
		graph: g,
		index: len(g.passes),
		name:  name,
		kind:  kind,
	}
	g.passes = append(g.passes, pass)
	if !g.passNames.Has(name) {
		g.passNames.Put(name, pass)
	}
	g.compiled = false
	return pass
}

// FindPass returns the first pass created with name
func (g *RenderGraph) FindPass(name string) (*Pass, bool) {
	return g.passNames.Get(name)
}

func (g *RenderGraph) Passes() []*Pass {
	return g.passes
}

// NewAttachment declares a graph owned image. It must be written before it is read.
func (g *RenderGraph) NewAttachment(name string, description gfx.AttachmentDescription) ResourceID {
	flags := ResourceImage | ResourceUninitialised
	if description.Format.IsDepthStencil() {
		flags |= ResourceDepthStencil
	}
	return g.createResource(name, flags, AttachmentMaterializer{Description: description})
}

// NewBuffer declares a graph owned buffer. It must be written before it is read.
func (g *RenderGraph) NewBuffer(name string, description gfx.BufferDescription) ResourceID {
	return g.createResource(name, ResourceBuffer|ResourceUninitialised, BufferMaterializer{Description: description})
}

// ImportBuffer declares a buffer owned outside the graph. The graph never destroys it.
func (g *RenderGraph) ImportBuffer(name string, buffer gfx.Buffer) ResourceID {
	return g.createResource(name, ResourceBuffer|ResourceImported, ImportedBufferMaterializer{Buffer: buffer})
}

// ImportImage declares an image owned outside the graph, which is in layout when the graph executes.
// The graph never destroys it.
func (g *RenderGraph) ImportImage(name string, image gfx.Image, layout gfx.ImageLayout) ResourceID {
	flags := ResourceImage | ResourceImported
	if image.Format().IsDepthStencil() {
		flags |= ResourceDepthStencil
	}
	return g.createResource(name, flags, ImportedImageMaterializer{Image: image, Layout: layout})
}

// NewResource declares a resource that is materialized by a caller provided Materializer. flags must
// contain exactly one of ResourceBuffer and ResourceImage. If flags contains ResourceImported and
// materializer has an InitialLayout method, its result is the layout of the image when the graph
// executes.
func (g *RenderGraph) NewResource(name string, flags ResourceFlags, materializer Materializer) ResourceID {
	if materializer == nil {
		g.recordError(errors.Newf("resource %q has no materializer", name))
		return ResourceID{}
	}
	if kind := flags & resourceKindMask; kind != ResourceBuffer && kind != ResourceImage {
		g.recordError(errors.Wrapf(ErrWrongKind, "resource %q has flags %s", name, flags))
		return ResourceID{}
	}
	return g.createResource(name, flags, materializer)
}

func (g *RenderGraph) createResource(name string, flags ResourceFlags, materializer Materializer) ResourceID {
	physical := uint32(len(g.physical))
	g.physical = append(g.physical, &PhysicalResource{
		name:         name,
		flags:        flags,
		materializer: materializer,
	})
	g.resources = append(g.resources, resource{
		physical: physical,
		flags:    flags,
	})
	g.compiled = false

	return ResourceID{
		virtual:  uint32(len(g.resources) - 1),
		physical: physical,
		epoch:    g.epoch,
	}
}

// clone creates the next version of id, produced by producer, and retires id
func (g *RenderGraph) clone(id ResourceID, producer *Pass) ResourceID {
	previous := &g.resources[id.virtual]
	previous.superseded = true

	g.resources = append(g.resources, resource{
		physical: id.physical,
		producer: producer,
		flags:    previous.flags &^ (ResourceImported | ResourceUninitialised),
	})
	g.compiled = false

	return ResourceID{
		virtual:  uint32(len(g.resources) - 1),
		physical: id.physical,
		epoch:    g.epoch,
	}
}

func (g *RenderGraph) checkID(id ResourceID, allowSuperseded bool) error {
	if !id.Valid() {
		return ErrInvalidResource
	}
	if id.epoch != g.epoch {
		return errors.Wrapf(ErrStaleResource, "%s was issued before the graph was reset", id)
	}
	if int(id.virtual) >= len(g.resources) || g.resources[id.virtual].physical != id.physical {
		return errors.Wrapf(ErrInvalidResource, "%s", id)
	}
	if !allowSuperseded && g.resources[id.virtual].superseded {
		return errors.Wrapf(ErrStaleResource, "%s of %q has been replaced by a later write",
			id, g.physical[id.physical].name)
	}
	return nil
}

func (g *RenderGraph) checkDeclaration(pass *Pass, verb string, id ResourceID) bool {
	if pass.index >= len(g.passes) || g.passes[pass.index] != pass {
		g.recordError(errors.Wrapf(ErrStalePass, "pass %q cannot %s %s", pass.name, verb, id))
		return false
	}

	err := g.checkID(id, false)
	if err != nil {
		g.recordError(errors.Wrapf(err, "pass %q cannot %s %s", pass.name, verb, id))
		return false
	}
	return true
}

func (g *RenderGraph) recordError(err error) {
	g.errs = append(g.errs, err)
	g.compiled = false
}

// Physical returns the physical resource behind id
func (g *RenderGraph) Physical(id ResourceID) (*PhysicalResource, error) {
	err := g.checkID(id, true)
	if err != nil {
		return nil, err
	}
	return g.physical[id.physical], nil
}

// Flags returns the flags of the version id
func (g *RenderGraph) Flags(id ResourceID) (ResourceFlags, error) {
	err := g.checkID(id, true)
	if err != nil {
		return 0, err
	}
	return g.resources[id.virtual].flags, nil
}

// Producer returns the pass that wrote the version id, or nil if it has not been written by a pass
func (g *RenderGraph) Producer(id ResourceID) (*Pass, error) {
	err := g.checkID(id, true)
	if err != nil {
		return nil, err
	}
	return g.resources[id.virtual].producer, nil
}

func (g *RenderGraph) materialize(id ResourceID, kind ResourceFlags) (any, error) {
	err := g.checkID(id, true)
	if err != nil {
		return nil, err
	}

	physical := g.physical[id.physical]
	if physical.flags&kind == 0 {
		return nil, errors.Wrapf(ErrWrongKind, "resource %q is a %s", physical.name, physical.flags&resourceKindMask)
	}
	return physical.Materialized(g.device)
}

// Buffer returns the device buffer behind id, materializing it if necessary. Old versions of a resource
// resolve to the same buffer as the current one.
func (g *RenderGraph) Buffer(id ResourceID) (gfx.Buffer, error) {
	materialized, err := g.materialize(id, ResourceBuffer)
	if err != nil {
		return nil, err
	}

	buffer, ok := materialized.(gfx.Buffer)
	if !ok {
		return nil, errors.Wrapf(ErrWrongKind, "resource %q materialized as %T", g.physical[id.physical].name, materialized)
	}
	return buffer, nil
}

// Image returns the device image behind id, materializing it if necessary. Old versions of a resource
// resolve to the same image as the current one.
func (g *RenderGraph) Image(id ResourceID) (gfx.Image, error) {
	materialized, err := g.materialize(id, ResourceImage)
	if err != nil {
		return nil, err
	}

	image, ok := materialized.(gfx.Image)
	if !ok {
		return nil, errors.Wrapf(ErrWrongKind, "resource %q materialized as %T", g.physical[id.physical].name, materialized)
	}
	return image, nil
}

func (g *RenderGraph) releaseAll() error {
	var err error
	for _, physical := range g.physical {
		if physical.flags&ResourceImported != 0 {
			physical.materialized = nil
			continue
		}
		err = errors.CombineErrors(err, physical.release(g.device))
	}
	return err
}

// Destroy releases every device object the graph materialized. Imported resources are left alone.
func (g *RenderGraph) Destroy() error {
	g.logger.LogAttrs(context.Background(), slog.LevelDebug, "rendergraph::Destroy",
		slog.Int("physicalResources", len(g.physical)),
	)
	return g.releaseAll()
}

// Reset releases the graph's device objects and removes every pass and resource. ResourceIDs and passes
// created before the reset are stale afterward.
func (g *RenderGraph) Reset() error {
	err := g.releaseAll()

	g.epoch++
	if g.epoch == 0 {
		g.epoch = 1
	}
	g.passes = g.passes[:0]
	g.passNames.Clear()
	g.resources = g.resources[:0]
	g.physical = g.physical[:0]
	g.errs = nil
	g.compiled = false
	g.target = ResourceID{}
	g.order = g.order[:0]

	g.logger.LogAttrs(context.Background(), slog.LevelDebug, "rendergraph::Reset",
		slog.Int("epoch", int(g.epoch)),
	)
	return err
}
