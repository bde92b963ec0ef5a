package rendergraph

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/rendergraph/gfx"
	"github.com/vkngwrapper/rendergraph/internal/utils"
	"golang.org/x/exp/slices"
)

type passMark uint8

const (
	markUnvisited passMark = iota
	markInProgress
	markDone
)

type dfsFrame struct {
	pass     *Pass
	nextRead int
}

type compileScratch struct {
	marks   []passMark
	stack   []dfsFrame
	layouts *swiss.Map[uint32, gfx.ImageLayout]
}

func newCompileScratch() *compileScratch {
	return &compileScratch{
		layouts: swiss.NewMap[uint32, gfx.ImageLayout](32),
	}
}

func (s *compileScratch) reset() {
	s.marks = s.marks[:0]
	s.stack = s.stack[:0]
	s.layouts.Clear()
}

func (s *compileScratch) prepareMarks(passCount int) []passMark {
	s.marks = slices.Grow(s.marks[:0], passCount)[:passCount]
	for i := range s.marks {
		s.marks[i] = markUnvisited
	}
	return s.marks
}

func (s *compileScratch) layout(physical uint32) gfx.ImageLayout {
	layout, ok := s.layouts.Get(physical)
	if !ok {
		return gfx.ImageLayoutUndefined
	}
	return layout
}

// ScratchPool holds the working state Compile needs, one free list per worker. Graphs that compile on
// different goroutines at the same time must be given different workers.
type ScratchPool struct {
	pool *utils.WorkerPool[*compileScratch]
}

func NewScratchPool(workers int) *ScratchPool {
	return &ScratchPool{
		pool: utils.NewWorkerPool(workers, newCompileScratch, (*compileScratch).reset),
	}
}

func (p *ScratchPool) Workers() int {
	return p.pool.Workers()
}

// Idle is the number of scratch objects waiting to be reused by worker
func (p *ScratchPool) Idle(worker int) int {
	return p.pool.Idle(worker)
}

// Compile orders the passes that target depends on and synthesizes the barriers and layout transitions
// each of them needs. Passes that target does not depend on are culled. Errors recorded while the
// graph was declared are returned here, along with any dependency cycle, read of an uninitialised
// resource, or missing producer found along the way.
func (g *RenderGraph) Compile(target ResourceID) error {
	g.compiled = false
	g.order = g.order[:0]
	for _, pass := range g.passes {
		pass.clearCompiled()
	}

	if len(g.errs) > 0 {
		return errors.Wrap(errors.Join(g.errs...), "render graph was declared incorrectly")
	}

	err := g.checkID(target, true)
	if err != nil {
		return errors.Wrap(err, "invalid compile target")
	}
	producer := g.resources[target.virtual].producer
	if producer == nil {
		return errors.Wrapf(ErrNoProducer, "compile target %q (%s)", g.physical[target.physical].name, target)
	}

	scratch := g.options.Scratch.pool.Get(g.options.Worker)
	defer g.options.Scratch.pool.Put(g.options.Worker, scratch)

	err = g.buildOrder(scratch, producer)
	if err != nil {
		g.order = g.order[:0]
		return err
	}
	g.buildSync(scratch)

	g.compiled = true
	g.target = target

	transitions := 0
	for _, pass := range g.order {
		transitions += len(pass.transitions)
	}
	g.logger.LogAttrs(context.Background(), slog.LevelDebug, "rendergraph::Compile",
		slog.String("target", g.physical[target.physical].name),
		slog.Int("declaredPasses", len(g.passes)),
		slog.Int("orderedPasses", len(g.order)),
		slog.Int("transitions", transitions),
	)
	return nil
}

// buildOrder appends root and every pass it transitively reads from to the pass order, producers first
func (g *RenderGraph) buildOrder(scratch *compileScratch, root *Pass) error {
	marks := scratch.prepareMarks(len(g.passes))
	var errs []error

	marks[root.index] = markInProgress
	scratch.stack = append(scratch.stack, dfsFrame{pass: root})

	for len(scratch.stack) > 0 {
		top := &scratch.stack[len(scratch.stack)-1]
		pass := top.pass
		if top.nextRead == len(pass.reads) {
			marks[pass.index] = markDone
			g.order = append(g.order, pass)
			scratch.stack = scratch.stack[:len(scratch.stack)-1]
			continue
		}

		read := pass.reads[top.nextRead]
		top.nextRead++

		res := &g.resources[read.ID.virtual]
		name := g.physical[read.ID.physical].name
		if err := checkReadKind(read.Flags, res.flags); err != nil {
			errs = append(errs, errors.Wrapf(err, "pass %q reads %q as %s", pass.name, name, read.Flags))
		}
		if res.flags&ResourceUninitialised != 0 {
			errs = append(errs, errors.Wrapf(ErrUninitialisedRead, "pass %q reads %q", pass.name, name))
			continue
		}
		if res.flags&ResourceImported != 0 {
			continue
		}
		if res.producer == nil {
			errs = append(errs, errors.Wrapf(ErrNoProducer, "pass %q reads %q", pass.name, name))
			continue
		}

		switch marks[res.producer.index] {
		case markUnvisited:
			marks[res.producer.index] = markInProgress
			scratch.stack = append(scratch.stack, dfsFrame{pass: res.producer})
		case markInProgress:
			errs = append(errs, errors.Wrapf(ErrCycle, "%s", cyclePath(scratch.stack, res.producer)))
		}
	}

	return errors.Join(errs...)
}

func checkReadKind(flags ReadFlags, resourceFlags ResourceFlags) error {
	if flags&(ReadPresent|ReadSampled) != 0 && resourceFlags&ResourceImage == 0 {
		return ErrWrongKind
	}
	if flags&ReadIndirect != 0 && resourceFlags&ResourceBuffer == 0 {
		return ErrWrongKind
	}
	return nil
}

// cyclePath describes the cycle that closes when the pass at the top of stack reads from producer
func cyclePath(stack []dfsFrame, producer *Pass) string {
	var path strings.Builder
	start := slices.IndexFunc(stack, func(frame dfsFrame) bool { return frame.pass == producer })
	for _, frame := range stack[start:] {
		path.WriteString(frame.pass.name)
		path.WriteString(" -> ")
	}
	path.WriteString(producer.name)
	return path.String()
}

func (r *resource) assignWriteState() {
	r.writeStage = gfx.PipelineStageNone
	r.writeAccess = gfx.AccessNone
	r.writeLayout = gfx.ImageLayoutUndefined
	if r.producer == nil || r.flags&(ResourceImported|ResourceUninitialised) != 0 {
		return
	}

	image := r.flags&ResourceImage != 0
	switch {
	case r.producer.kind == PassTransfer:
		r.writeStage = gfx.PipelineStageTransfer
		r.writeAccess = gfx.AccessTransferWrite
		if image {
			r.writeLayout = gfx.ImageLayoutTransferDstOptimal
		}
	case r.producer.kind == PassCompute:
		r.writeStage = gfx.PipelineStageComputeShader
		r.writeAccess = gfx.AccessShaderWrite
		// Compute shaders write images through storage descriptors
		if image {
			r.writeLayout = gfx.ImageLayoutGeneral
		}
	case !image:
		r.writeStage = gfx.PipelineStageVertexShader | gfx.PipelineStageFragmentShader
		r.writeAccess = gfx.AccessShaderWrite
	case r.flags&ResourceDepthStencil != 0:
		r.writeStage = gfx.PipelineStageEarlyFragmentTests | gfx.PipelineStageLateFragmentTests
		r.writeAccess = gfx.AccessDepthStencilAttachmentRead | gfx.AccessDepthStencilAttachmentWrite
		r.writeLayout = gfx.ImageLayoutDepthStencilAttachmentOptimal
	default:
		r.writeStage = gfx.PipelineStageColorAttachmentOutput
		r.writeAccess = gfx.AccessColorAttachmentWrite
		r.writeLayout = gfx.ImageLayoutColorAttachmentOptimal
	}
}

func (g *RenderGraph) buildSync(scratch *compileScratch) {
	for i := range g.resources {
		g.resources[i].assignWriteState()
	}

	for index, physical := range g.physical {
		if physical.flags&ResourceImported != 0 && physical.flags&ResourceImage != 0 {
			scratch.layouts.Put(uint32(index), physical.initialLayout())
		}
	}

	for _, pass := range g.order {
		g.syncPass(scratch, pass)
	}
}

func (g *RenderGraph) syncPass(scratch *compileScratch, pass *Pass) {
	switch pass.kind {
	case PassTransfer:
		pass.dstStage |= gfx.PipelineStageTransfer
		pass.dstAccess |= gfx.AccessTransferRead
	case PassCompute:
		pass.dstStage |= gfx.PipelineStageComputeShader
		pass.dstAccess |= gfx.AccessShaderRead
	case PassGraphics:
		pass.dstStage |= gfx.PipelineStageVertexInput | gfx.PipelineStageVertexShader | gfx.PipelineStageFragmentShader
		pass.dstAccess |= gfx.AccessShaderRead | gfx.AccessVertexAttributeRead | gfx.AccessIndexRead | gfx.AccessUniformRead
	}

	for _, read := range pass.reads {
		res := &g.resources[read.ID.virtual]
		pass.srcStage |= res.writeStage
		pass.srcAccess |= res.writeAccess

		if read.Flags&ReadAdditive != 0 {
			continue
		}
		if read.Flags&ReadIndirect != 0 {
			pass.dstStage |= gfx.PipelineStageDrawIndirect
			pass.dstAccess |= gfx.AccessIndirectCommandRead
		}
		if res.flags&ResourceImage == 0 {
			continue
		}

		readLayout := gfx.ImageLayoutShaderReadOnlyOptimal
		if res.flags&ResourceDepthStencil != 0 {
			readLayout = gfx.ImageLayoutDepthStencilReadOnlyOptimal
		}
		dstAccess := gfx.AccessMemoryRead
		if read.Flags&ReadPresent != 0 {
			readLayout = gfx.ImageLayoutPresentSrc
			dstAccess = gfx.AccessNone
		} else if pass.kind == PassTransfer {
			readLayout = gfx.ImageLayoutTransferSrcOptimal
			dstAccess = gfx.AccessTransferRead
		}

		current := scratch.layout(read.ID.physical)
		if current == readLayout {
			continue
		}

		srcStage, srcAccess := res.writeStage, res.writeAccess
		if res.producer == nil {
			// Written outside the graph
			srcStage, srcAccess = gfx.PipelineStageAllCommands, gfx.AccessMemoryWrite
		}
		pass.transitions = append(pass.transitions, Transition{
			ID:        read.ID,
			OldLayout: current,
			NewLayout: readLayout,
			SrcStage:  srcStage,
			SrcAccess: srcAccess,
			DstStage:  gfx.PipelineStageAllCommands,
			DstAccess: dstAccess,
		})
		scratch.layouts.Put(read.ID.physical, readLayout)
	}

	for _, write := range pass.writes {
		res := &g.resources[write.ID.virtual]
		additive := write.Flags&WriteAdditive != 0
		if additive {
			pass.dstStage |= res.writeStage
			pass.dstAccess |= res.writeAccess
		}
		if res.flags&ResourceImage == 0 {
			continue
		}

		current := scratch.layout(write.ID.physical)
		if current == res.writeLayout {
			continue
		}

		transition := Transition{
			ID:        write.ID,
			OldLayout: gfx.ImageLayoutUndefined,
			NewLayout: res.writeLayout,
			SrcStage:  gfx.PipelineStageAllCommands,
			SrcAccess: gfx.AccessMemoryRead,
			DstStage:  res.writeStage,
			DstAccess: res.writeAccess,
		}
		if additive {
			transition.OldLayout = current
			transition.SrcAccess |= gfx.AccessMemoryWrite
		}
		pass.transitions = append(pass.transitions, transition)
		scratch.layouts.Put(write.ID.physical, res.writeLayout)
	}

	if pass.kind == PassGraphics {
		g.buildAttachments(scratch, pass)
	}
}

func (g *RenderGraph) buildAttachments(scratch *compileScratch, pass *Pass) {
	for _, read := range pass.reads {
		res := &g.resources[read.ID.virtual]
		// Additive reads load through their write, and sampled or presented images are not attachments
		if read.Flags&(ReadAdditive|ReadSampled|ReadPresent) != 0 || res.flags&ResourceImage == 0 {
			continue
		}
		pass.attachments = append(pass.attachments, Attachment{
			ID:      read.ID,
			Layout:  scratch.layout(read.ID.physical),
			LoadOp:  gfx.AttachmentLoadOpLoad,
			StoreOp: gfx.AttachmentStoreOpNone,
			Depth:   res.flags&ResourceDepthStencil != 0,
		})
	}

	for _, write := range pass.writes {
		res := &g.resources[write.ID.virtual]
		if res.flags&ResourceImage == 0 {
			continue
		}
		loadOp := gfx.AttachmentLoadOpClear
		if write.Flags&WriteAdditive != 0 {
			loadOp = gfx.AttachmentLoadOpLoad
		}
		pass.attachments = append(pass.attachments, Attachment{
			ID:      write.ID,
			Layout:  res.writeLayout,
			LoadOp:  loadOp,
			StoreOp: gfx.AttachmentStoreOpStore,
			Depth:   res.flags&ResourceDepthStencil != 0,
		})
	}
}
