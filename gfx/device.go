package gfx

type Extent2D struct {
	Width  int
	Height int
}

// AttachmentDescription describes a 2D image created by a Device for use as a render target or storage
// image. MipLevels and ArrayLayers of 0 are treated as 1.
type AttachmentDescription struct {
	Extent      Extent2D
	Format      Format
	Usage       ImageUsage
	MipLevels   int
	ArrayLayers int
}

type BufferDescription struct {
	Size  int
	Usage BufferUsage
	// HostAccessible requests memory the host can write sequentially. Otherwise the buffer lives in
	// device local memory.
	HostAccessible bool
}

// Buffer is a device buffer. Implementations are backend specific.
type Buffer interface {
	Size() int
}

// Image is a device image together with a view over all of its subresources. Implementations are
// backend specific.
type Image interface {
	Format() Format
	Extent() Extent2D
	MipLevels() int
	ArrayLayers() int
}

// Pipeline is a compiled pipeline that can be bound to a command buffer
type Pipeline interface {
	BindPoint() PipelineBindPoint
}

// Device creates and destroys the resources that a render graph materialises
type Device interface {
	CreateBuffer(description BufferDescription) (Buffer, error)
	DestroyBuffer(buffer Buffer) error
	CreateImage(description AttachmentDescription) (Image, error)
	DestroyImage(image Image) error
}

type MemoryBarrier struct {
	SrcStage  PipelineStage
	SrcAccess Access
	DstStage  PipelineStage
	DstAccess Access
}

type BufferBarrier struct {
	Buffer    Buffer
	SrcStage  PipelineStage
	SrcAccess Access
	DstStage  PipelineStage
	DstAccess Access
}

// ImageBarrier makes prior writes to every subresource of Image visible and moves it from OldLayout to
// NewLayout
type ImageBarrier struct {
	Image     Image
	SrcStage  PipelineStage
	SrcAccess Access
	DstStage  PipelineStage
	DstAccess Access
	OldLayout ImageLayout
	NewLayout ImageLayout
}

// Dependency is a single pipeline barrier
type Dependency struct {
	MemoryBarriers []MemoryBarrier
	BufferBarriers []BufferBarrier
	ImageBarriers  []ImageBarrier
}

func (d Dependency) IsEmpty() bool {
	return len(d.MemoryBarriers) == 0 && len(d.BufferBarriers) == 0 && len(d.ImageBarriers) == 0
}

type BufferCopy struct {
	SrcOffset int
	DstOffset int
	Size      int
}

type RenderingAttachment struct {
	Image   Image
	Layout  ImageLayout
	LoadOp  AttachmentLoadOp
	StoreOp AttachmentStoreOp
}

type RenderingInfo struct {
	RenderArea       Extent2D
	ColorAttachments []RenderingAttachment
	DepthAttachment  *RenderingAttachment
}

// CommandBuffer records device work. Calls are only valid between Begin and End.
type CommandBuffer interface {
	Begin() error
	End() error

	PipelineBarrier(dependency Dependency) error
	BindPipeline(pipeline Pipeline) error
	Draw(vertexCount, instanceCount, firstVertex, firstInstance int) error
	DrawIndexed(indexCount, instanceCount, firstIndex, vertexOffset, firstInstance int) error
	DrawIndirect(buffer Buffer, offset, drawCount, stride int) error
	Dispatch(groupCountX, groupCountY, groupCountZ int) error
	CopyBuffer(src, dst Buffer, regions ...BufferCopy) error
}

// RenderingCommandBuffer is a CommandBuffer that supports dynamic rendering. Graphics passes recorded
// into one are bracketed with BeginRendering and EndRendering.
type RenderingCommandBuffer interface {
	CommandBuffer

	BeginRendering(info RenderingInfo) error
	EndRendering() error
}
