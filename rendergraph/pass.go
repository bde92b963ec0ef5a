package rendergraph

import (
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/rendergraph/gfx"
)

type PassKind int32

const (
	PassCompute PassKind = iota
	PassGraphics
	PassTransfer
)

var passKindNames = map[PassKind]string{
	PassCompute:  "Compute",
	PassGraphics: "Graphics",
	PassTransfer: "Transfer",
}

func (k PassKind) String() string {
	return passKindNames[k]
}

// ReadFlags describe how a pass uses a resource it reads
type ReadFlags int32

var readFlagsMapping = common.NewFlagStringMapping[ReadFlags]()

func (f ReadFlags) Register(str string) {
	readFlagsMapping.Register(f, str)
}
func (f ReadFlags) String() string {
	return readFlagsMapping.FlagsToString(f)
}

const (
	// ReadAdditive is recorded by an additive write. It orders the pass after the previous writer but
	// needs no layout transition of its own.
	ReadAdditive ReadFlags = 1 << iota
	// ReadIndirect reads a buffer as indirect draw or dispatch arguments
	ReadIndirect
	// ReadPresent moves an image to the presentation layout. The ResourceID is replaced with a new
	// version produced by the reading pass, so that the present pass can be compiled as a target.
	ReadPresent
	// ReadSampled reads an image through a sampler rather than as an attachment
	ReadSampled
)

// WriteFlags describe how a pass uses a resource it writes
type WriteFlags int32

var writeFlagsMapping = common.NewFlagStringMapping[WriteFlags]()

func (f WriteFlags) Register(str string) {
	writeFlagsMapping.Register(f, str)
}
func (f WriteFlags) String() string {
	return writeFlagsMapping.FlagsToString(f)
}

const (
	// WriteAdditive preserves the previous contents of the resource instead of discarding them
	WriteAdditive WriteFlags = 1 << iota
)

func init() {
	ReadAdditive.Register("Additive")
	ReadIndirect.Register("Indirect")
	ReadPresent.Register("Present")
	ReadSampled.Register("Sampled")

	WriteAdditive.Register("Additive")
}

type PassRead struct {
	ID    ResourceID
	Flags ReadFlags
}

type PassWrite struct {
	ID    ResourceID
	Flags WriteFlags
}

// Transition is an image layout change that must happen before a pass runs
type Transition struct {
	ID        ResourceID
	OldLayout gfx.ImageLayout
	NewLayout gfx.ImageLayout
	SrcStage  gfx.PipelineStage
	SrcAccess gfx.Access
	DstStage  gfx.PipelineStage
	DstAccess gfx.Access
}

// Attachment is an image a graphics pass renders to or loads from
type Attachment struct {
	ID      ResourceID
	Layout  gfx.ImageLayout
	LoadOp  gfx.AttachmentLoadOp
	StoreOp gfx.AttachmentStoreOp
	Depth   bool
}

type PassState int32

const (
	PassUnrecorded PassState = iota
	PassBarriersEmitted
	PassRecording
	PassRecorded
)

var passStateNames = map[PassState]string{
	PassUnrecorded:      "Unrecorded",
	PassBarriersEmitted: "BarriersEmitted",
	PassRecording:       "Recording",
	PassRecorded:        "Recorded",
}

func (s PassState) String() string {
	return passStateNames[s]
}

// Pass is one unit of device work, along with the resources it reads and writes. Passes are created with
// RenderGraph.AddPass and belong to the graph.
type Pass struct {
	graph     *RenderGraph
	index     int
	name      string
	kind      PassKind
	reads     []PassRead
	writes    []PassWrite
	onExecute func(cmd gfx.CommandBuffer) error

	srcStage    gfx.PipelineStage
	srcAccess   gfx.Access
	dstStage    gfx.PipelineStage
	dstAccess   gfx.Access
	transitions []Transition
	attachments []Attachment
	state       PassState
}

func (p *Pass) Name() string {
	return p.name
}

func (p *Pass) Kind() PassKind {
	return p.kind
}

// Read declares that the pass reads id. With ReadPresent, id is replaced by a new version produced by this
// pass.
func (p *Pass) Read(id *ResourceID, flags ReadFlags) *Pass {
	if !p.graph.checkDeclaration(p, "read", *id) {
		return p
	}

	p.reads = append(p.reads, PassRead{ID: *id, Flags: flags})
	if flags&ReadPresent != 0 {
		*id = p.graph.clone(*id, p)
	}
	return p
}

// Write declares that the pass writes id and replaces id with the new version. The old value of id is
// stale after this call. An additive write also reads the previous version.
func (p *Pass) Write(id *ResourceID, flags WriteFlags) *Pass {
	if !p.graph.checkDeclaration(p, "write", *id) {
		return p
	}

	if flags&WriteAdditive != 0 {
		p.reads = append(p.reads, PassRead{ID: *id, Flags: ReadAdditive})
	}
	*id = p.graph.clone(*id, p)
	p.writes = append(p.writes, PassWrite{ID: *id, Flags: flags})
	return p
}

// SetOnExecute sets the function that records the pass's commands
func (p *Pass) SetOnExecute(onExecute func(cmd gfx.CommandBuffer) error) *Pass {
	p.onExecute = onExecute
	return p
}

func (p *Pass) Reads() []PassRead {
	return p.reads
}

func (p *Pass) Writes() []PassWrite {
	return p.writes
}

// Transitions returns the layout transitions Compile synthesized for this pass
func (p *Pass) Transitions() []Transition {
	return p.transitions
}

// Attachments returns the rendering attachments Compile computed for a graphics pass
func (p *Pass) Attachments() []Attachment {
	return p.attachments
}

// MemoryDependency returns the stages and accesses that must complete before the pass runs and the stages
// and accesses of the pass that wait on them
func (p *Pass) MemoryDependency() gfx.MemoryBarrier {
	return gfx.MemoryBarrier{
		SrcStage:  p.srcStage,
		SrcAccess: p.srcAccess,
		DstStage:  p.dstStage,
		DstAccess: p.dstAccess,
	}
}

func (p *Pass) State() PassState {
	return p.state
}

func (p *Pass) clearCompiled() {
	p.srcStage = gfx.PipelineStageNone
	p.srcAccess = gfx.AccessNone
	p.dstStage = gfx.PipelineStageNone
	p.dstAccess = gfx.AccessNone
	p.transitions = p.transitions[:0]
	p.attachments = p.attachments[:0]
	p.state = PassUnrecorded
}
