package rendergraph

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/rendergraph/gfx"
)

// ResourceFlags describe the kind of a resource and where its contents come from
type ResourceFlags int32

var resourceFlagsMapping = common.NewFlagStringMapping[ResourceFlags]()

func (f ResourceFlags) Register(str string) {
	resourceFlagsMapping.Register(f, str)
}
func (f ResourceFlags) String() string {
	return resourceFlagsMapping.FlagsToString(f)
}

const (
	ResourceBuffer ResourceFlags = 1 << iota
	ResourceImage
	// ResourceImported marks a resource owned outside the graph. It has no producer and the graph never
	// releases it.
	ResourceImported
	// ResourceUninitialised marks a resource that no pass has written yet
	ResourceUninitialised
	// ResourceDepthStencil marks an image with a depth or stencil aspect
	ResourceDepthStencil
)

func init() {
	ResourceBuffer.Register("Buffer")
	ResourceImage.Register("Image")
	ResourceImported.Register("Imported")
	ResourceUninitialised.Register("Uninitialised")
	ResourceDepthStencil.Register("DepthStencil")
}

const resourceKindMask = ResourceBuffer | ResourceImage

// ResourceID names a single version of a graph resource. Every write produces a new version that shares
// the physical resource of the version it replaces. Once a version has been replaced, its ResourceID may
// no longer be read or written.
//
// The zero ResourceID is never issued by a graph.
type ResourceID struct {
	virtual  uint32
	physical uint32
	epoch    uint32
}

// Valid reports whether the id was issued by a graph. It does not check whether the id is stale.
func (id ResourceID) Valid() bool {
	return id.epoch != 0
}

// Virtual is the index of this version among every version in the graph
func (id ResourceID) Virtual() int {
	return int(id.virtual)
}

// Physical is the index of the physical resource backing this version
func (id ResourceID) Physical() int {
	return int(id.physical)
}

func (id ResourceID) String() string {
	if !id.Valid() {
		return "invalid"
	}
	return fmt.Sprintf("v%d/p%d", id.virtual, id.physical)
}

// resource is a single version of a physical resource. The write state is filled in by Compile from the
// kind of the producing pass.
type resource struct {
	physical   uint32
	producer   *Pass
	flags      ResourceFlags
	superseded bool

	writeStage  gfx.PipelineStage
	writeAccess gfx.Access
	writeLayout gfx.ImageLayout
}

// PhysicalResource is the device object behind one or more versions of a resource. It is materialized
// the first time it is needed and the result is kept until the graph is reset or destroyed.
type PhysicalResource struct {
	name         string
	flags        ResourceFlags
	materializer Materializer

	materialized     any
	materializeCount int
}

func (r *PhysicalResource) Name() string {
	return r.name
}

// Flags returns the flags the resource was created with
func (r *PhysicalResource) Flags() ResourceFlags {
	return r.flags
}

// IsMaterialized reports whether the device object currently exists
func (r *PhysicalResource) IsMaterialized() bool {
	return r.materialized != nil
}

// MaterializeCount is the number of times the Materializer successfully produced a device object
func (r *PhysicalResource) MaterializeCount() int {
	return r.materializeCount
}

// Materialized returns the device object for this resource, creating it on the first call. A failed
// materialization is not remembered, so a later call will try again.
func (r *PhysicalResource) Materialized(device gfx.Device) (any, error) {
	if r.materialized != nil {
		return r.materialized, nil
	}

	materialized, err := r.materializer.Materialize(device)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to materialize resource %q", r.name)
	}
	if materialized == nil {
		return nil, errors.Newf("materializer for resource %q returned nothing", r.name)
	}

	r.materialized = materialized
	r.materializeCount++
	return materialized, nil
}

func (r *PhysicalResource) initialLayout() gfx.ImageLayout {
	if initial, ok := r.materializer.(layoutProvider); ok {
		return initial.InitialLayout()
	}
	return gfx.ImageLayoutUndefined
}

func (r *PhysicalResource) release(device gfx.Device) error {
	if r.materialized == nil {
		return nil
	}

	materialized := r.materialized
	r.materialized = nil
	return errors.Wrapf(r.materializer.Release(device, materialized), "failed to release resource %q", r.name)
}
