package vulkan

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/core/v3/mocks"
	"github.com/vkngwrapper/rendergraph/gfx"
	"github.com/vkngwrapper/rendergraph/rendergraph"
	"go.uber.org/mock/gomock"
)

func TestRenderGraphUploadAndReadback(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver, device := readyDevice(t, ctrl)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	graph, err := rendergraph.New(logger, device, rendergraph.Options{})
	require.NoError(t, err)

	stagingHandle := mocks.NewDummyBuffer(driver.Device())
	readbackHandle := mocks.NewDummyBuffer(driver.Device())
	verticesHandle := mocks.NewDummyBuffer(driver.Device())

	staging := graph.ImportBuffer("staging", &Buffer{handle: stagingHandle, size: 256})
	readback := graph.ImportBuffer("readback", &Buffer{handle: readbackHandle, size: 256})
	vertices := graph.NewBuffer("vertices", gfx.BufferDescription{
		Size:  256,
		Usage: gfx.BufferUsageVertex | gfx.BufferUsageTransferSrc | gfx.BufferUsageTransferDst,
	})

	copyPass := func(src, dst *rendergraph.ResourceID) func(gfx.CommandBuffer) error {
		return func(cmd gfx.CommandBuffer) error {
			srcBuffer, err := graph.Buffer(*src)
			if err != nil {
				return err
			}
			dstBuffer, err := graph.Buffer(*dst)
			if err != nil {
				return err
			}
			return cmd.CopyBuffer(srcBuffer, dstBuffer, gfx.BufferCopy{Size: 256})
		}
	}

	graph.AddPass("upload", rendergraph.PassTransfer).
		Read(&staging, 0).
		Write(&vertices, 0).
		SetOnExecute(copyPass(&staging, &vertices))
	graph.AddPass("readback", rendergraph.PassTransfer).
		Read(&vertices, 0).
		Write(&readback, 0).
		SetOnExecute(copyPass(&vertices, &readback))

	require.NoError(t, graph.Compile(readback))

	memory := mocks.NewDummyDeviceMemory(driver.Device(), poolSize)
	cmdHandle := core1_0.CommandBuffer{}
	gomock.InOrder(
		driver.EXPECT().CreateBuffer(gomock.Any(), core1_0.BufferCreateInfo{
			Size:  256,
			Usage: core1_0.BufferUsageVertexBuffer | core1_0.BufferUsageTransferSrc | core1_0.BufferUsageTransferDst,
		}).Return(verticesHandle, core1_0.VKSuccess, nil),
		driver.EXPECT().GetBufferMemoryRequirements(verticesHandle).Return(&core1_0.MemoryRequirements{
			Size:           256,
			Alignment:      16,
			MemoryTypeBits: 0xffffffff,
		}),
		driver.EXPECT().AllocateMemory(gomock.Any(), core1_0.MemoryAllocateInfo{
			MemoryTypeIndex: 0,
			AllocationSize:  poolSize,
		}).Return(memory, core1_0.VKSuccess, nil),
		driver.EXPECT().BindBufferMemory(verticesHandle, memory, 0).Return(core1_0.VKSuccess, nil),
		driver.EXPECT().CmdCopyBuffer(cmdHandle, stagingHandle, verticesHandle,
			core1_0.BufferCopy{Size: 256},
		).Return(nil),
		driver.EXPECT().CmdPipelineBarrier(
			cmdHandle,
			core1_0.PipelineStageTransfer,
			core1_0.PipelineStageTransfer,
			gomock.Any(),
			[]core1_0.MemoryBarrier{
				{
					SrcAccessMask: core1_0.AccessTransferWrite,
					DstAccessMask: core1_0.AccessTransferRead,
				},
			},
			nil,
			nil,
		).Return(nil),
		driver.EXPECT().CmdCopyBuffer(cmdHandle, verticesHandle, readbackHandle,
			core1_0.BufferCopy{Size: 256},
		).Return(nil),
	)

	cmd := NewCommandBuffer(driver, cmdHandle, core1_0.CommandBufferBeginInfo{})
	require.NoError(t, graph.Execute(cmd))

	driver.EXPECT().DestroyBuffer(verticesHandle, nil)
	require.NoError(t, graph.Destroy())

	driver.EXPECT().FreeMemory(memory, nil)
	require.NoError(t, device.Allocator().Destroy())
}
