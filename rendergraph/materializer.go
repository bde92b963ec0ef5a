package rendergraph

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/rendergraph/gfx"
)

// Materializer describes how to produce the device object behind a PhysicalResource without producing
// it. Passes that are culled by Compile never cause their resources to be materialized.
type Materializer interface {
	// Materialize creates the device object. It is called at most once per PhysicalResource unless it
	// fails or the resource has been released.
	Materialize(device gfx.Device) (any, error)
	// Release destroys an object previously returned by Materialize
	Release(device gfx.Device, materialized any) error
}

type layoutProvider interface {
	InitialLayout() gfx.ImageLayout
}

// AttachmentMaterializer creates a graph owned image
type AttachmentMaterializer struct {
	Description gfx.AttachmentDescription
}

func (m AttachmentMaterializer) Materialize(device gfx.Device) (any, error) {
	return device.CreateImage(m.Description)
}

func (m AttachmentMaterializer) Release(device gfx.Device, materialized any) error {
	image, ok := materialized.(gfx.Image)
	if !ok {
		return errors.Newf("expected an image, got %T", materialized)
	}
	return device.DestroyImage(image)
}

// BufferMaterializer creates a graph owned buffer
type BufferMaterializer struct {
	Description gfx.BufferDescription
}

func (m BufferMaterializer) Materialize(device gfx.Device) (any, error) {
	return device.CreateBuffer(m.Description)
}

func (m BufferMaterializer) Release(device gfx.Device, materialized any) error {
	buffer, ok := materialized.(gfx.Buffer)
	if !ok {
		return errors.Newf("expected a buffer, got %T", materialized)
	}
	return device.DestroyBuffer(buffer)
}

// ImportedBufferMaterializer hands out a buffer that is owned elsewhere
type ImportedBufferMaterializer struct {
	Buffer gfx.Buffer
}

func (m ImportedBufferMaterializer) Materialize(gfx.Device) (any, error) {
	return m.Buffer, nil
}

func (m ImportedBufferMaterializer) Release(gfx.Device, any) error {
	return nil
}

// ImportedImageMaterializer hands out an image that is owned elsewhere. Layout is the layout the image is
// in when the graph starts executing.
type ImportedImageMaterializer struct {
	Image  gfx.Image
	Layout gfx.ImageLayout
}

func (m ImportedImageMaterializer) Materialize(gfx.Device) (any, error) {
	return m.Image, nil
}

func (m ImportedImageMaterializer) Release(gfx.Device, any) error {
	return nil
}

func (m ImportedImageMaterializer) InitialLayout() gfx.ImageLayout {
	return m.Layout
}
