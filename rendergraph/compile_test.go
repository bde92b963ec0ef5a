package rendergraph

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/rendergraph/gfx"
	"github.com/vkngwrapper/rendergraph/gfx/mocks"
	"go.uber.org/mock/gomock"
)

func TestCompileOrderCullsUnusedPasses(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, graph := readyGraph(t, ctrl, Options{})

	x := graph.NewBuffer("x", storageDescription)
	y := graph.NewBuffer("y", storageDescription)
	z := graph.NewAttachment("z", colorDescription)
	w := graph.NewBuffer("w", storageDescription)

	graph.AddPass("A", PassTransfer).Write(&x, 0)
	graph.AddPass("D", PassCompute).Read(&x, 0).Write(&w, 0)
	graph.AddPass("B", PassCompute).Read(&x, 0).Write(&y, 0)
	graph.AddPass("C", PassGraphics).Read(&y, 0).Write(&z, 0)

	require.NoError(t, graph.Compile(z))
	require.True(t, graph.Compiled())
	require.Equal(t, []string{"A", "B", "C"}, passNames(graph.PassOrder()))

	stats := graph.Statistics()
	require.Equal(t, 4, stats.DeclaredPasses)
	require.Equal(t, 3, stats.OrderedPasses)
	require.Equal(t, 1, stats.CulledPasses)
	require.Equal(t, 8, stats.VirtualResources)
	require.Equal(t, 4, stats.PhysicalResources)
	require.Equal(t, 0, stats.MaterializedResources)

	// Compiling to an intermediate resource only keeps what it depends on
	require.NoError(t, graph.Compile(y))
	require.Equal(t, []string{"A", "B"}, passNames(graph.PassOrder()))
}

func TestCompileOrderProducersFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, graph := readyGraph(t, ctrl, Options{})

	gbuffer := graph.NewAttachment("gbuffer", colorDescription)
	depth := graph.NewAttachment("depth", depthDescription)
	lights := graph.NewBuffer("lights", storageDescription)
	hdr := graph.NewAttachment("hdr", colorDescription)
	output := graph.NewAttachment("output", colorDescription)

	graph.AddPass("depth prepass", PassGraphics).Write(&depth, 0)
	graph.AddPass("geometry", PassGraphics).Read(&depth, 0).Write(&gbuffer, 0)
	graph.AddPass("light cull", PassCompute).Read(&depth, ReadSampled).Write(&lights, 0)
	graph.AddPass("lighting", PassGraphics).
		Read(&gbuffer, ReadSampled).
		Read(&lights, 0).
		Read(&depth, ReadSampled).
		Write(&hdr, 0)
	graph.AddPass("tonemap", PassCompute).Read(&hdr, ReadSampled).Write(&output, 0)

	require.NoError(t, graph.Compile(output))
	order := graph.PassOrder()
	require.Equal(t, []string{"depth prepass", "geometry", "light cull", "lighting", "tonemap"}, passNames(order))

	position := map[*Pass]int{}
	for index, pass := range order {
		position[pass] = index
	}
	for _, pass := range order {
		for _, read := range pass.Reads() {
			producer, err := graph.Producer(read.ID)
			require.NoError(t, err)
			require.Less(t, position[producer], position[pass])
		}
	}
}

func TestCompileAdditiveWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, graph := readyGraph(t, ctrl, Options{})

	x := graph.NewAttachment("x", colorDescription)
	clearPass := graph.AddPass("clear", PassTransfer).Write(&x, 0)
	x0 := x
	first := graph.AddPass("first", PassGraphics).Write(&x, WriteAdditive)
	x1 := x
	second := graph.AddPass("second", PassGraphics).Write(&x, WriteAdditive)

	require.NoError(t, graph.Compile(x))
	require.Equal(t, []string{"clear", "first", "second"}, passNames(graph.PassOrder()))

	require.Equal(t, []Transition{{
		ID:        x0,
		OldLayout: gfx.ImageLayoutUndefined,
		NewLayout: gfx.ImageLayoutTransferDstOptimal,
		SrcStage:  gfx.PipelineStageAllCommands,
		SrcAccess: gfx.AccessMemoryRead,
		DstStage:  gfx.PipelineStageTransfer,
		DstAccess: gfx.AccessTransferWrite,
	}}, clearPass.Transitions())

	// The first additive write keeps the contents the transfer pass wrote
	require.Equal(t, []Transition{{
		ID:        x1,
		OldLayout: gfx.ImageLayoutTransferDstOptimal,
		NewLayout: gfx.ImageLayoutColorAttachmentOptimal,
		SrcStage:  gfx.PipelineStageAllCommands,
		SrcAccess: gfx.AccessMemoryRead | gfx.AccessMemoryWrite,
		DstStage:  gfx.PipelineStageColorAttachmentOutput,
		DstAccess: gfx.AccessColorAttachmentWrite,
	}}, first.Transitions())
	require.Equal(t, []Attachment{{
		ID:      x1,
		Layout:  gfx.ImageLayoutColorAttachmentOptimal,
		LoadOp:  gfx.AttachmentLoadOpLoad,
		StoreOp: gfx.AttachmentStoreOpStore,
	}}, first.Attachments())

	dependency := first.MemoryDependency()
	require.Equal(t, gfx.PipelineStageTransfer, dependency.SrcStage)
	require.Equal(t, gfx.AccessTransferWrite, dependency.SrcAccess)
	require.NotZero(t, dependency.DstStage&gfx.PipelineStageColorAttachmentOutput)
	require.NotZero(t, dependency.DstAccess&gfx.AccessColorAttachmentWrite)

	// The second is already in the attachment layout
	require.Empty(t, second.Transitions())
	require.Equal(t, []Attachment{{
		ID:      x,
		Layout:  gfx.ImageLayoutColorAttachmentOptimal,
		LoadOp:  gfx.AttachmentLoadOpLoad,
		StoreOp: gfx.AttachmentStoreOpStore,
	}}, second.Attachments())
	require.Equal(t, gfx.PipelineStageColorAttachmentOutput, second.MemoryDependency().SrcStage)
}

func TestCompileOverwriteClears(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, graph := readyGraph(t, ctrl, Options{})

	x := graph.NewAttachment("x", colorDescription)
	graph.AddPass("first", PassGraphics).Write(&x, 0)
	second := graph.AddPass("second", PassGraphics).Write(&x, 0)

	require.NoError(t, graph.Compile(x))
	// second does not read x, so the first pass is culled
	require.Equal(t, []string{"second"}, passNames(graph.PassOrder()))
	require.Len(t, second.Transitions(), 1)
	require.Equal(t, gfx.ImageLayoutUndefined, second.Transitions()[0].OldLayout)
	require.Equal(t, gfx.AttachmentLoadOpClear, second.Attachments()[0].LoadOp)
}

func TestCompileReadTransitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, graph := readyGraph(t, ctrl, Options{})

	depth := graph.NewAttachment("depth", depthDescription)
	shadow := graph.NewAttachment("shadow", colorDescription)
	args := graph.NewBuffer("args", storageDescription)
	readback := graph.ImportBuffer("readback", mocks.NewDummyBuffer("readback", 4096))
	swapchain := graph.ImportImage("swapchain", mocks.NewDummyImage("swapchain", gfx.FormatB8G8R8A8SRGB, 800, 600),
		gfx.ImageLayoutPresentSrc)

	prepass := graph.AddPass("prepass", PassGraphics).Write(&depth, 0)
	depthWrite := depth
	cull := graph.AddPass("cull", PassCompute).Read(&depth, ReadSampled).Write(&args, 0).Write(&shadow, 0)
	draw := graph.AddPass("draw", PassGraphics).
		Read(&args, ReadIndirect).
		Read(&depth, 0).
		Write(&swapchain, 0)
	swapchainWrite := swapchain
	copyPass := graph.AddPass("copy", PassTransfer).Read(&shadow, 0).Write(&readback, 0)
	present := graph.AddPass("present", PassGraphics).Read(&swapchain, ReadPresent).Read(&readback, 0)

	require.NoError(t, graph.Compile(swapchain))
	require.Equal(t, []string{"prepass", "cull", "draw", "copy", "present"}, passNames(graph.PassOrder()))

	require.Equal(t, gfx.ImageLayoutDepthStencilAttachmentOptimal, prepass.Transitions()[0].NewLayout)
	require.Equal(t, []Attachment{{
		ID:      depthWrite,
		Layout:  gfx.ImageLayoutDepthStencilAttachmentOptimal,
		LoadOp:  gfx.AttachmentLoadOpClear,
		StoreOp: gfx.AttachmentStoreOpStore,
		Depth:   true,
	}}, prepass.Attachments())

	require.Equal(t, Transition{
		ID:        depthWrite,
		OldLayout: gfx.ImageLayoutDepthStencilAttachmentOptimal,
		NewLayout: gfx.ImageLayoutDepthStencilReadOnlyOptimal,
		SrcStage:  gfx.PipelineStageEarlyFragmentTests | gfx.PipelineStageLateFragmentTests,
		SrcAccess: gfx.AccessDepthStencilAttachmentRead | gfx.AccessDepthStencilAttachmentWrite,
		DstStage:  gfx.PipelineStageAllCommands,
		DstAccess: gfx.AccessMemoryRead,
	}, cull.Transitions()[0])
	require.Equal(t, gfx.ImageLayoutGeneral, cull.Transitions()[1].NewLayout)
	require.Empty(t, cull.Attachments())

	// The depth buffer is already read only, and the indirect arguments add to the wait
	drawDependency := draw.MemoryDependency()
	require.Equal(t, gfx.PipelineStageComputeShader|gfx.PipelineStageEarlyFragmentTests|gfx.PipelineStageLateFragmentTests,
		drawDependency.SrcStage)
	require.NotZero(t, drawDependency.DstStage&gfx.PipelineStageDrawIndirect)
	require.NotZero(t, drawDependency.DstAccess&gfx.AccessIndirectCommandRead)
	require.Equal(t, []Transition{{
		ID:        swapchainWrite,
		OldLayout: gfx.ImageLayoutUndefined,
		NewLayout: gfx.ImageLayoutColorAttachmentOptimal,
		SrcStage:  gfx.PipelineStageAllCommands,
		SrcAccess: gfx.AccessMemoryRead,
		DstStage:  gfx.PipelineStageColorAttachmentOutput,
		DstAccess: gfx.AccessColorAttachmentWrite,
	}}, draw.Transitions())
	require.Len(t, draw.Attachments(), 2)
	require.Equal(t, gfx.AttachmentLoadOpLoad, draw.Attachments()[0].LoadOp)
	require.Equal(t, gfx.AttachmentStoreOpNone, draw.Attachments()[0].StoreOp)
	require.True(t, draw.Attachments()[0].Depth)
	require.Equal(t, gfx.AttachmentLoadOpClear, draw.Attachments()[1].LoadOp)

	require.Equal(t, gfx.ImageLayoutTransferSrcOptimal, copyPass.Transitions()[0].NewLayout)
	require.Equal(t, gfx.AccessTransferRead, copyPass.Transitions()[0].DstAccess)
	require.Equal(t, gfx.ImageLayoutGeneral, copyPass.Transitions()[0].OldLayout)

	require.Equal(t, []Transition{{
		ID:        swapchainWrite,
		OldLayout: gfx.ImageLayoutColorAttachmentOptimal,
		NewLayout: gfx.ImageLayoutPresentSrc,
		SrcStage:  gfx.PipelineStageColorAttachmentOutput,
		SrcAccess: gfx.AccessColorAttachmentWrite,
		DstStage:  gfx.PipelineStageAllCommands,
		DstAccess: gfx.AccessNone,
	}}, present.Transitions())
	require.Empty(t, present.Attachments())
	require.Equal(t, gfx.PipelineStageColorAttachmentOutput|gfx.PipelineStageTransfer, present.MemoryDependency().SrcStage)
}

func TestCompileImportedInitialLayout(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, graph := readyGraph(t, ctrl, Options{})

	texture := graph.ImportImage("texture", mocks.NewDummyImage("texture", gfx.FormatR8G8B8A8SRGB, 256, 256),
		gfx.ImageLayoutShaderReadOnlyOptimal)
	environment := graph.ImportImage("environment", mocks.NewDummyImage("environment", gfx.FormatR8G8B8A8SRGB, 256, 256),
		gfx.ImageLayoutTransferDstOptimal)
	output := graph.NewAttachment("output", colorDescription)

	draw := graph.AddPass("draw", PassGraphics).
		Read(&texture, ReadSampled).
		Read(&environment, ReadSampled).
		Write(&output, 0)

	require.NoError(t, graph.Compile(output))
	require.Equal(t, []string{"draw"}, passNames(graph.PassOrder()))

	transitions := draw.Transitions()
	require.Len(t, transitions, 2)
	require.Equal(t, environment, transitions[0].ID)
	require.Equal(t, gfx.ImageLayoutTransferDstOptimal, transitions[0].OldLayout)
	require.Equal(t, gfx.ImageLayoutShaderReadOnlyOptimal, transitions[0].NewLayout)
	require.Equal(t, gfx.PipelineStageAllCommands, transitions[0].SrcStage)
	require.Equal(t, gfx.AccessMemoryWrite, transitions[0].SrcAccess)
	require.Equal(t, output, transitions[1].ID)
	require.Equal(t, gfx.PipelineStageNone, draw.MemoryDependency().SrcStage)
}

func TestCompileDetectsCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, graph := readyGraph(t, ctrl, Options{})

	x := graph.NewBuffer("x", storageDescription)
	y := graph.NewBuffer("y", storageDescription)

	a := graph.AddPass("A", PassCompute).Write(&x, 0)
	graph.AddPass("B", PassCompute).Read(&x, 0).Write(&y, 0)
	a.Read(&y, 0)

	err := graph.Compile(y)
	require.True(t, errors.Is(err, ErrCycle))
	require.ErrorContains(t, err, "B -> A -> B")
	require.False(t, graph.Compiled())
	require.Empty(t, graph.PassOrder())
}

func TestCompileDetectsSelfDependency(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, graph := readyGraph(t, ctrl, Options{})

	x := graph.NewBuffer("x", storageDescription)
	graph.AddPass("feedback", PassCompute).Write(&x, 0).Read(&x, 0)

	err := graph.Compile(x)
	require.True(t, errors.Is(err, ErrCycle))
	require.ErrorContains(t, err, "feedback -> feedback")
}

func TestCompileUninitialisedRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, graph := readyGraph(t, ctrl, Options{})

	x := graph.NewAttachment("x", colorDescription)
	y := graph.NewAttachment("y", colorDescription)
	graph.AddPass("blit", PassGraphics).Read(&x, ReadSampled).Write(&y, 0)

	err := graph.Compile(y)
	require.True(t, errors.Is(err, ErrUninitialisedRead))
	require.ErrorContains(t, err, `pass "blit" reads "x"`)

	// An additive write to a resource nothing has written is also a read of uninitialised contents
	z := graph.NewAttachment("z", colorDescription)
	graph.AddPass("accumulate", PassGraphics).Write(&z, WriteAdditive)
	err = graph.Compile(z)
	require.True(t, errors.Is(err, ErrUninitialisedRead))
}

func TestCompileNoProducer(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, graph := readyGraph(t, ctrl, Options{})

	swapchain := graph.ImportImage("swapchain", mocks.NewDummyImage("swapchain", gfx.FormatB8G8R8A8SRGB, 800, 600),
		gfx.ImageLayoutUndefined)
	err := graph.Compile(swapchain)
	require.True(t, errors.Is(err, ErrNoProducer))

	custom := graph.NewResource("custom", ResourceBuffer, BufferMaterializer{Description: storageDescription})
	out := graph.NewBuffer("out", storageDescription)
	graph.AddPass("compute", PassCompute).Read(&custom, 0).Write(&out, 0)
	err = graph.Compile(out)
	require.True(t, errors.Is(err, ErrNoProducer))
}

func TestCompileWrongReadKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, graph := readyGraph(t, ctrl, Options{})

	buffer := graph.NewBuffer("buffer", storageDescription)
	image := graph.NewAttachment("image", colorDescription)
	out := graph.NewBuffer("out", storageDescription)

	graph.AddPass("fill", PassCompute).Write(&buffer, 0).Write(&image, 0)
	graph.AddPass("use", PassCompute).Read(&buffer, ReadSampled).Read(&image, ReadIndirect).Write(&out, 0)

	err := graph.Compile(out)
	require.True(t, errors.Is(err, ErrWrongKind))
	require.ErrorContains(t, err, `reads "buffer"`)
	require.ErrorContains(t, err, `reads "image"`)
}

func TestCompileReturnsScratch(t *testing.T) {
	ctrl := gomock.NewController(t)
	scratch := NewScratchPool(2)
	_, graph := readyGraph(t, ctrl, Options{Scratch: scratch, Worker: 1})

	x := graph.NewBuffer("x", storageDescription)
	graph.AddPass("A", PassCompute).Write(&x, 0)

	require.Equal(t, 0, scratch.Idle(1))
	require.NoError(t, graph.Compile(x))
	require.Equal(t, 1, scratch.Idle(1))
	require.Equal(t, 0, scratch.Idle(0))

	require.NoError(t, graph.Compile(x))
	require.Equal(t, 1, scratch.Idle(1))
}
