package vulkan

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
	"github.com/vkngwrapper/rendergraph/gfx"
	"github.com/vkngwrapper/rendergraph/vam"
)

// gfx enums share their numeric values with Vulkan, so most conversions are plain casts

func stageFlags(stage gfx.PipelineStage) core1_0.PipelineStageFlags {
	return core1_0.PipelineStageFlags(stage)
}

func accessFlags(access gfx.Access) core1_0.AccessFlags {
	return core1_0.AccessFlags(access)
}

func imageLayout(layout gfx.ImageLayout) core1_0.ImageLayout {
	if layout == gfx.ImageLayoutPresentSrc {
		return khr_swapchain.ImageLayoutPresentSrc
	}
	return core1_0.ImageLayout(layout)
}

func imageFormat(format gfx.Format) core1_0.Format {
	return core1_0.Format(format)
}

func aspectFlags(format gfx.Format) core1_0.ImageAspectFlags {
	if !format.IsDepthStencil() {
		return core1_0.ImageAspectColor
	}

	aspect := core1_0.ImageAspectDepth
	if format.HasStencil() {
		aspect |= core1_0.ImageAspectStencil
	}
	return aspect
}

func bindPoint(point gfx.PipelineBindPoint) core1_0.PipelineBindPoint {
	if point == gfx.PipelineBindPointCompute {
		return core1_0.PipelineBindPointCompute
	}
	return core1_0.PipelineBindPointGraphics
}

func bufferMemoryFlags(description gfx.BufferDescription) vam.MemoryFlags {
	if description.HostAccessible {
		return vam.MemoryHostSequentialWrite
	}
	return 0
}

func subresourceRange(image *Image) core1_0.ImageSubresourceRange {
	return core1_0.ImageSubresourceRange{
		AspectMask:     aspectFlags(image.format),
		BaseMipLevel:   0,
		LevelCount:     image.mipLevels,
		BaseArrayLayer: 0,
		LayerCount:     image.arrayLayers,
	}
}
