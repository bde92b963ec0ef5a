package vulkan

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/rendergraph/gfx"
	"github.com/vkngwrapper/rendergraph/vam"
)

// Buffer is a VkBuffer bound to memory from a vam.Allocator
type Buffer struct {
	handle     core1_0.Buffer
	allocation *vam.Allocation
	size       int
}

var _ gfx.Buffer = &Buffer{}

func (b *Buffer) Size() int                   { return b.size }
func (b *Buffer) Handle() core1_0.Buffer      { return b.handle }
func (b *Buffer) Allocation() *vam.Allocation { return b.allocation }

// Image is a 2D VkImage and a view over all of its subresources. Images created by a Device own their
// memory. Images from WrapImage, such as swapchain images, do not and cannot be destroyed by a Device.
type Image struct {
	handle      core1_0.Image
	view        core1_0.ImageView
	allocation  *vam.Allocation
	format      gfx.Format
	extent      gfx.Extent2D
	mipLevels   int
	arrayLayers int
}

var _ gfx.Image = &Image{}

// WrapImage describes an image whose lifetime is managed elsewhere so that it can be imported into a
// render graph
func WrapImage(handle core1_0.Image, view core1_0.ImageView, format gfx.Format, extent gfx.Extent2D) *Image {
	return &Image{
		handle:      handle,
		view:        view,
		format:      format,
		extent:      extent,
		mipLevels:   1,
		arrayLayers: 1,
	}
}

func (i *Image) Format() gfx.Format          { return i.format }
func (i *Image) Extent() gfx.Extent2D        { return i.extent }
func (i *Image) MipLevels() int              { return i.mipLevels }
func (i *Image) ArrayLayers() int            { return i.arrayLayers }
func (i *Image) Handle() core1_0.Image       { return i.handle }
func (i *Image) View() core1_0.ImageView     { return i.view }
func (i *Image) Allocation() *vam.Allocation { return i.allocation }

// Pipeline is a VkPipeline created by the caller
type Pipeline struct {
	handle    core1_0.Pipeline
	bindPoint gfx.PipelineBindPoint
}

var _ gfx.Pipeline = Pipeline{}

func NewPipeline(handle core1_0.Pipeline, bindPoint gfx.PipelineBindPoint) Pipeline {
	return Pipeline{handle: handle, bindPoint: bindPoint}
}

func (p Pipeline) Handle() core1_0.Pipeline         { return p.handle }
func (p Pipeline) BindPoint() gfx.PipelineBindPoint { return p.bindPoint }
