package mocks

import "github.com/vkngwrapper/rendergraph/gfx"

// DummyBuffer is a fixed gfx.Buffer for tests that don't need call expectations on the buffer itself
type DummyBuffer struct {
	Name       string
	BufferSize int
}

func NewDummyBuffer(name string, size int) *DummyBuffer {
	return &DummyBuffer{Name: name, BufferSize: size}
}

func (b *DummyBuffer) Size() int { return b.BufferSize }

// DummyImage is a fixed gfx.Image for tests that don't need call expectations on the image itself
type DummyImage struct {
	Name        string
	ImageFormat gfx.Format
	ImageExtent gfx.Extent2D
}

func NewDummyImage(name string, format gfx.Format, width, height int) *DummyImage {
	return &DummyImage{
		Name:        name,
		ImageFormat: format,
		ImageExtent: gfx.Extent2D{Width: width, Height: height},
	}
}

func (i *DummyImage) Format() gfx.Format   { return i.ImageFormat }
func (i *DummyImage) Extent() gfx.Extent2D { return i.ImageExtent }
func (i *DummyImage) MipLevels() int       { return 1 }
func (i *DummyImage) ArrayLayers() int     { return 1 }
