package vulkan

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/core/v3/mocks"
	"github.com/vkngwrapper/core/v3/mocks/mocks1_2"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
	"github.com/vkngwrapper/rendergraph/gfx"
	"go.uber.org/mock/gomock"
)

func readyCommandBuffer(ctrl *gomock.Controller) (*mocks1_2.MockCoreDeviceDriver, *CommandBuffer) {
	driver := mocks1_2.NewMockCoreDeviceDriver(ctrl)
	driver.EXPECT().Device().Return(mocks.NewDummyDevice(common.Vulkan1_2, nil)).AnyTimes()

	return driver, NewCommandBuffer(driver, core1_0.CommandBuffer{}, core1_0.CommandBufferBeginInfo{
		Flags: core1_0.CommandBufferUsageOneTimeSubmit,
	})
}

func TestCommandBufferBeginEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, cmd := readyCommandBuffer(ctrl)

	gomock.InOrder(
		driver.EXPECT().BeginCommandBuffer(core1_0.CommandBuffer{}, core1_0.CommandBufferBeginInfo{
			Flags: core1_0.CommandBufferUsageOneTimeSubmit,
		}).Return(core1_0.VKSuccess, nil),
		driver.EXPECT().EndCommandBuffer(core1_0.CommandBuffer{}).Return(core1_0.VKSuccess, nil),
	)

	require.NoError(t, cmd.Begin())
	require.NoError(t, cmd.End())
}

func TestPipelineBarrierPresent(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, cmd := readyCommandBuffer(ctrl)

	swapchainImage := mocks.NewDummyImage(driver.Device())
	image := WrapImage(swapchainImage, core1_0.ImageView{}, gfx.FormatB8G8R8A8SRGB, gfx.Extent2D{Width: 800, Height: 600})

	driver.EXPECT().CmdPipelineBarrier(
		core1_0.CommandBuffer{},
		core1_0.PipelineStageColorAttachmentOutput,
		core1_0.PipelineStageAllCommands|core1_0.PipelineStageFragmentShader,
		gomock.Any(),
		[]core1_0.MemoryBarrier{
			{
				SrcAccessMask: core1_0.AccessColorAttachmentWrite,
				DstAccessMask: core1_0.AccessShaderRead,
			},
		},
		nil,
		[]core1_0.ImageMemoryBarrier{
			{
				SrcAccessMask:       core1_0.AccessColorAttachmentWrite,
				DstAccessMask:       0,
				OldLayout:           core1_0.ImageLayoutColorAttachmentOptimal,
				NewLayout:           khr_swapchain.ImageLayoutPresentSrc,
				SrcQueueFamilyIndex: -1,
				DstQueueFamilyIndex: -1,
				Image:               swapchainImage,
				SubresourceRange: core1_0.ImageSubresourceRange{
					AspectMask: core1_0.ImageAspectColor,
					LevelCount: 1,
					LayerCount: 1,
				},
			},
		},
	).Return(nil)

	require.NoError(t, cmd.PipelineBarrier(gfx.Dependency{
		MemoryBarriers: []gfx.MemoryBarrier{
			{
				SrcStage:  gfx.PipelineStageColorAttachmentOutput,
				SrcAccess: gfx.AccessColorAttachmentWrite,
				DstStage:  gfx.PipelineStageFragmentShader,
				DstAccess: gfx.AccessShaderRead,
			},
		},
		ImageBarriers: []gfx.ImageBarrier{
			{
				Image:     image,
				SrcStage:  gfx.PipelineStageColorAttachmentOutput,
				SrcAccess: gfx.AccessColorAttachmentWrite,
				DstStage:  gfx.PipelineStageAllCommands,
				DstAccess: gfx.AccessNone,
				OldLayout: gfx.ImageLayoutColorAttachmentOptimal,
				NewLayout: gfx.ImageLayoutPresentSrc,
			},
		},
	}))
}

func TestPipelineBarrierDefaultsStages(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, cmd := readyCommandBuffer(ctrl)

	depthImage := mocks.NewDummyImage(driver.Device())
	image := &Image{
		handle:      depthImage,
		format:      gfx.FormatD32Sfloat,
		extent:      gfx.Extent2D{Width: 64, Height: 64},
		mipLevels:   4,
		arrayLayers: 2,
	}

	driver.EXPECT().CmdPipelineBarrier(
		core1_0.CommandBuffer{},
		core1_0.PipelineStageTopOfPipe,
		core1_0.PipelineStageEarlyFragmentTests|core1_0.PipelineStageLateFragmentTests,
		gomock.Any(),
		nil,
		nil,
		[]core1_0.ImageMemoryBarrier{
			{
				SrcAccessMask:       0,
				DstAccessMask:       core1_0.AccessDepthStencilAttachmentWrite,
				OldLayout:           core1_0.ImageLayoutUndefined,
				NewLayout:           core1_0.ImageLayoutDepthStencilAttachmentOptimal,
				SrcQueueFamilyIndex: -1,
				DstQueueFamilyIndex: -1,
				Image:               depthImage,
				SubresourceRange: core1_0.ImageSubresourceRange{
					AspectMask: core1_0.ImageAspectDepth,
					LevelCount: 4,
					LayerCount: 2,
				},
			},
		},
	).Return(nil)

	require.NoError(t, cmd.PipelineBarrier(gfx.Dependency{
		ImageBarriers: []gfx.ImageBarrier{
			{
				Image:     image,
				DstStage:  gfx.PipelineStageEarlyFragmentTests | gfx.PipelineStageLateFragmentTests,
				DstAccess: gfx.AccessDepthStencilAttachmentWrite,
				OldLayout: gfx.ImageLayoutUndefined,
				NewLayout: gfx.ImageLayoutDepthStencilAttachmentOptimal,
			},
		},
	}))

	// Nothing is recorded for an empty dependency
	require.NoError(t, cmd.PipelineBarrier(gfx.Dependency{}))
}

type foreignBuffer struct{}

func (foreignBuffer) Size() int { return 64 }

func TestCommandBufferRejectsForeignResources(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, cmd := readyCommandBuffer(ctrl)

	buffer := &Buffer{handle: mocks.NewDummyBuffer(driver.Device()), size: 64}

	require.Error(t, cmd.PipelineBarrier(gfx.Dependency{
		BufferBarriers: []gfx.BufferBarrier{{Buffer: foreignBuffer{}}},
	}))
	require.Error(t, cmd.CopyBuffer(foreignBuffer{}, buffer, gfx.BufferCopy{Size: 16}))
	require.Error(t, cmd.DrawIndirect(foreignBuffer{}, 0, 1, 16))
}

func TestCopyBuffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, cmd := readyCommandBuffer(ctrl)

	srcHandle := mocks.NewDummyBuffer(driver.Device())
	dstHandle := mocks.NewDummyBuffer(driver.Device())
	src := &Buffer{handle: srcHandle, size: 256}
	dst := &Buffer{handle: dstHandle, size: 1024}

	driver.EXPECT().CmdCopyBuffer(core1_0.CommandBuffer{}, srcHandle, dstHandle,
		core1_0.BufferCopy{SrcOffset: 0, DstOffset: 512, Size: 256},
	).Return(nil)

	require.NoError(t, cmd.CopyBuffer(src, dst, gfx.BufferCopy{SrcOffset: 0, DstOffset: 512, Size: 256}))
	require.Error(t, cmd.CopyBuffer(src, dst, gfx.BufferCopy{SrcOffset: 128, DstOffset: 0, Size: 256}))
	require.NoError(t, cmd.CopyBuffer(src, dst))
}

func TestDrawIndirectBounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, cmd := readyCommandBuffer(ctrl)

	buffer := &Buffer{handle: mocks.NewDummyBuffer(driver.Device()), size: 64}

	require.ErrorContains(t, cmd.DrawIndirect(buffer, 32, 3, 16), "overrun a buffer of 64 bytes")
}

func TestDrawIndirect(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, cmd := readyCommandBuffer(ctrl)

	handle := mocks.NewDummyBuffer(driver.Device())
	buffer := &Buffer{handle: handle, size: 64}

	driver.EXPECT().CmdDrawIndirect(core1_0.CommandBuffer{}, handle, 16, 2, 16)

	require.NoError(t, cmd.DrawIndirect(buffer, 16, 2, 16))
}
