package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/rendergraph/gfx"
)

// CommandBuffer records gfx commands into a primary VkCommandBuffer. It does not implement
// gfx.RenderingCommandBuffer, so graphics passes recorded into it must be wrapped in a render pass by
// the pass callbacks.
type CommandBuffer struct {
	driver core1_0.DeviceDriver
	buffer core1_0.CommandBuffer
	begin  core1_0.CommandBufferBeginInfo
}

var _ gfx.CommandBuffer = &CommandBuffer{}

// NewCommandBuffer wraps buffer, which must have been allocated from a pool on driver's device. Begin
// passes begin to vkBeginCommandBuffer.
func NewCommandBuffer(driver core1_0.DeviceDriver, buffer core1_0.CommandBuffer, begin core1_0.CommandBufferBeginInfo) *CommandBuffer {
	return &CommandBuffer{
		driver: driver,
		buffer: buffer,
		begin:  begin,
	}
}

func (c *CommandBuffer) Handle() core1_0.CommandBuffer { return c.buffer }

func (c *CommandBuffer) Begin() error {
	res, err := c.driver.BeginCommandBuffer(c.buffer, c.begin)
	if err != nil {
		return errors.Wrapf(err, "failed to begin command buffer (%s)", res)
	}
	return nil
}

func (c *CommandBuffer) End() error {
	res, err := c.driver.EndCommandBuffer(c.buffer)
	if err != nil {
		return errors.Wrapf(err, "failed to end command buffer (%s)", res)
	}
	return nil
}

// PipelineBarrier records dependency as one vkCmdPipelineBarrier. The barrier's stage masks are the
// union of every member barrier's stages.
func (c *CommandBuffer) PipelineBarrier(dependency gfx.Dependency) error {
	if dependency.IsEmpty() {
		return nil
	}

	var srcStage, dstStage gfx.PipelineStage

	var memoryBarriers []core1_0.MemoryBarrier
	for _, barrier := range dependency.MemoryBarriers {
		srcStage |= barrier.SrcStage
		dstStage |= barrier.DstStage
		memoryBarriers = append(memoryBarriers, core1_0.MemoryBarrier{
			SrcAccessMask: accessFlags(barrier.SrcAccess),
			DstAccessMask: accessFlags(barrier.DstAccess),
		})
	}

	var bufferBarriers []core1_0.BufferMemoryBarrier
	for _, barrier := range dependency.BufferBarriers {
		buffer, ok := barrier.Buffer.(*Buffer)
		if !ok || buffer == nil {
			return errors.Newf("cannot record a barrier for a buffer of type %T", barrier.Buffer)
		}

		srcStage |= barrier.SrcStage
		dstStage |= barrier.DstStage
		bufferBarriers = append(bufferBarriers, core1_0.BufferMemoryBarrier{
			SrcAccessMask:       accessFlags(barrier.SrcAccess),
			DstAccessMask:       accessFlags(barrier.DstAccess),
			SrcQueueFamilyIndex: -1,
			DstQueueFamilyIndex: -1,
			Buffer:              buffer.handle,
			Offset:              0,
			Size:                buffer.size,
		})
	}

	var imageBarriers []core1_0.ImageMemoryBarrier
	for _, barrier := range dependency.ImageBarriers {
		image, ok := barrier.Image.(*Image)
		if !ok || image == nil {
			return errors.Newf("cannot record a barrier for an image of type %T", barrier.Image)
		}

		srcStage |= barrier.SrcStage
		dstStage |= barrier.DstStage
		imageBarriers = append(imageBarriers, core1_0.ImageMemoryBarrier{
			SrcAccessMask:       accessFlags(barrier.SrcAccess),
			DstAccessMask:       accessFlags(barrier.DstAccess),
			OldLayout:           imageLayout(barrier.OldLayout),
			NewLayout:           imageLayout(barrier.NewLayout),
			SrcQueueFamilyIndex: -1,
			DstQueueFamilyIndex: -1,
			Image:               image.handle,
			SubresourceRange:    subresourceRange(image),
		})
	}

	// A zero source stage mask is only valid with synchronization2
	if srcStage == gfx.PipelineStageNone {
		srcStage = gfx.PipelineStageTopOfPipe
	}
	if dstStage == gfx.PipelineStageNone {
		dstStage = gfx.PipelineStageBottomOfPipe
	}

	return c.driver.CmdPipelineBarrier(c.buffer, stageFlags(srcStage), stageFlags(dstStage), 0,
		memoryBarriers, bufferBarriers, imageBarriers)
}

func (c *CommandBuffer) BindPipeline(pipeline gfx.Pipeline) error {
	vkPipeline, ok := pipeline.(Pipeline)
	if !ok {
		return errors.Newf("cannot bind a pipeline of type %T", pipeline)
	}

	c.driver.CmdBindPipeline(c.buffer, bindPoint(vkPipeline.bindPoint), vkPipeline.handle)
	return nil
}

func (c *CommandBuffer) Draw(vertexCount, instanceCount, firstVertex, firstInstance int) error {
	c.driver.CmdDraw(c.buffer, vertexCount, instanceCount, uint32(firstVertex), uint32(firstInstance))
	return nil
}

func (c *CommandBuffer) DrawIndexed(indexCount, instanceCount, firstIndex, vertexOffset, firstInstance int) error {
	c.driver.CmdDrawIndexed(c.buffer, indexCount, instanceCount, uint32(firstIndex), vertexOffset, uint32(firstInstance))
	return nil
}

func (c *CommandBuffer) DrawIndirect(buffer gfx.Buffer, offset, drawCount, stride int) error {
	vkBuffer, ok := buffer.(*Buffer)
	if !ok || vkBuffer == nil {
		return errors.Newf("cannot draw from an indirect buffer of type %T", buffer)
	}
	if offset < 0 || offset+drawCount*stride > vkBuffer.size {
		return errors.Newf("%d indirect draws of stride %d at offset %d overrun a buffer of %d bytes",
			drawCount, stride, offset, vkBuffer.size)
	}

	c.driver.CmdDrawIndirect(c.buffer, vkBuffer.handle, offset, drawCount, stride)
	return nil
}

func (c *CommandBuffer) Dispatch(groupCountX, groupCountY, groupCountZ int) error {
	c.driver.CmdDispatch(c.buffer, groupCountX, groupCountY, groupCountZ)
	return nil
}

func (c *CommandBuffer) CopyBuffer(src, dst gfx.Buffer, regions ...gfx.BufferCopy) error {
	srcBuffer, ok := src.(*Buffer)
	if !ok || srcBuffer == nil {
		return errors.Newf("cannot copy from a buffer of type %T", src)
	}
	dstBuffer, ok := dst.(*Buffer)
	if !ok || dstBuffer == nil {
		return errors.Newf("cannot copy to a buffer of type %T", dst)
	}

	copies := make([]core1_0.BufferCopy, 0, len(regions))
	for _, region := range regions {
		if region.SrcOffset+region.Size > srcBuffer.size || region.DstOffset+region.Size > dstBuffer.size {
			return errors.Newf("copy of %d bytes from offset %d to offset %d is out of bounds",
				region.Size, region.SrcOffset, region.DstOffset)
		}
		copies = append(copies, core1_0.BufferCopy{
			SrcOffset: region.SrcOffset,
			DstOffset: region.DstOffset,
			Size:      region.Size,
		})
	}
	if len(copies) == 0 {
		return nil
	}

	return c.driver.CmdCopyBuffer(c.buffer, srcBuffer.handle, dstBuffer.handle, copies...)
}
