package rendergraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"golang.org/x/exp/slices"
)

// Statistics summarize the graph as it was last compiled
type Statistics struct {
	DeclaredPasses        int
	OrderedPasses         int
	CulledPasses          int
	Transitions           int
	VirtualResources      int
	PhysicalResources     int
	MaterializedResources int
}

func (g *RenderGraph) Statistics() Statistics {
	stats := Statistics{
		DeclaredPasses:    len(g.passes),
		VirtualResources:  len(g.resources),
		PhysicalResources: len(g.physical),
	}
	if g.compiled {
		stats.OrderedPasses = len(g.order)
		stats.CulledPasses = len(g.passes) - len(g.order)
	}
	for _, pass := range g.order {
		stats.Transitions += len(pass.transitions)
	}
	for _, physical := range g.physical {
		if physical.IsMaterialized() {
			stats.MaterializedResources++
		}
	}
	return stats
}

// Compiled reports whether the graph has been compiled since it was last changed
func (g *RenderGraph) Compiled() bool {
	return g.compiled
}

// PassOrder returns the passes Execute will record, in order. It is empty until Compile succeeds.
func (g *RenderGraph) PassOrder() []*Pass {
	if !g.compiled {
		return nil
	}
	return slices.Clone(g.order)
}

func (g *RenderGraph) orderedSet() []bool {
	ordered := make([]bool, len(g.passes))
	if g.compiled {
		for _, pass := range g.order {
			ordered[pass.index] = true
		}
	}
	return ordered
}

func (g *RenderGraph) resourceName(id ResourceID) string {
	return g.physical[id.physical].name
}

// WriteJSON writes the passes, the compiled order, and the physical resources of the graph into json
func (g *RenderGraph) WriteJSON(json *jwriter.ObjectState) {
	ordered := g.orderedSet()

	json.Name("Compiled").Bool(g.compiled)
	if g.compiled {
		json.Name("Target").String(g.resourceName(g.target))
	}

	orderArray := json.Name("Order").Array()
	for _, pass := range g.PassOrder() {
		orderArray.String(pass.name)
	}
	orderArray.End()

	passArray := json.Name("Passes").Array()
	for _, pass := range g.passes {
		passObj := passArray.Object()
		g.writePassJSON(&passObj, pass, g.compiled && !ordered[pass.index])
		passObj.End()
	}
	passArray.End()

	versions := make([]int, len(g.physical))
	for _, res := range g.resources {
		versions[res.physical]++
	}

	resourceArray := json.Name("Resources").Array()
	for index, physical := range g.physical {
		resourceObj := resourceArray.Object()
		resourceObj.Name("Index").Int(index)
		resourceObj.Name("Name").String(physical.name)
		resourceObj.Name("Flags").String(physical.flags.String())
		resourceObj.Name("Versions").Int(versions[index])
		resourceObj.Name("Materialized").Bool(physical.IsMaterialized())
		resourceObj.End()
	}
	resourceArray.End()
}

func (g *RenderGraph) writePassJSON(json *jwriter.ObjectState, pass *Pass, culled bool) {
	json.Name("Name").String(pass.name)
	json.Name("Kind").String(pass.kind.String())
	json.Name("Culled").Bool(culled)
	json.Name("State").String(pass.state.String())

	readArray := json.Name("Reads").Array()
	for _, read := range pass.reads {
		readObj := readArray.Object()
		readObj.Name("Resource").String(g.resourceName(read.ID))
		readObj.Name("ID").String(read.ID.String())
		readObj.Name("Flags").String(read.Flags.String())
		readObj.End()
	}
	readArray.End()

	writeArray := json.Name("Writes").Array()
	for _, write := range pass.writes {
		writeObj := writeArray.Object()
		writeObj.Name("Resource").String(g.resourceName(write.ID))
		writeObj.Name("ID").String(write.ID.String())
		writeObj.Name("Flags").String(write.Flags.String())
		writeObj.End()
	}
	writeArray.End()

	if culled || !g.compiled {
		return
	}

	dependency := pass.MemoryDependency()
	dependencyObj := json.Name("MemoryDependency").Object()
	dependencyObj.Name("SrcStage").String(dependency.SrcStage.String())
	dependencyObj.Name("SrcAccess").String(dependency.SrcAccess.String())
	dependencyObj.Name("DstStage").String(dependency.DstStage.String())
	dependencyObj.Name("DstAccess").String(dependency.DstAccess.String())
	dependencyObj.End()

	transitionArray := json.Name("Transitions").Array()
	for _, transition := range pass.transitions {
		transitionObj := transitionArray.Object()
		transitionObj.Name("Resource").String(g.resourceName(transition.ID))
		transitionObj.Name("OldLayout").String(transition.OldLayout.String())
		transitionObj.Name("NewLayout").String(transition.NewLayout.String())
		transitionObj.Name("SrcStage").String(transition.SrcStage.String())
		transitionObj.Name("SrcAccess").String(transition.SrcAccess.String())
		transitionObj.Name("DstStage").String(transition.DstStage.String())
		transitionObj.Name("DstAccess").String(transition.DstAccess.String())
		transitionObj.End()
	}
	transitionArray.End()

	if pass.kind != PassGraphics {
		return
	}

	attachmentArray := json.Name("Attachments").Array()
	for _, attachment := range pass.attachments {
		attachmentObj := attachmentArray.Object()
		attachmentObj.Name("Resource").String(g.resourceName(attachment.ID))
		attachmentObj.Name("Layout").String(attachment.Layout.String())
		attachmentObj.Name("LoadOp").String(attachment.LoadOp.String())
		attachmentObj.Name("StoreOp").String(attachment.StoreOp.String())
		attachmentObj.Name("Depth").Bool(attachment.Depth)
		attachmentObj.End()
	}
	attachmentArray.End()
}

// JSON returns the output of WriteJSON as a single object
func (g *RenderGraph) JSON() string {
	writer := jwriter.NewWriter()
	objState := writer.Object()
	g.WriteJSON(&objState)
	objState.End()
	return string(writer.Bytes())
}

// DOT returns the graph in graphviz format. Passes are boxes and physical resources are ellipses. Passes
// culled by the last Compile are dashed.
func (g *RenderGraph) DOT() string {
	ordered := g.orderedSet()

	var sb strings.Builder
	sb.WriteString("digraph RenderGraph {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [fontname=\"Arial\"];\n")
	sb.WriteString("  edge [fontname=\"Arial\", fontsize=10];\n\n")

	for _, pass := range g.passes {
		style := "solid"
		if g.compiled && !ordered[pass.index] {
			style = "dashed"
		}
		sb.WriteString(fmt.Sprintf("  P%d [label=%s, shape=box, style=%s];\n",
			pass.index, strconv.Quote(pass.name+"\n"+pass.kind.String()), style))
	}
	sb.WriteString("\n")

	for index, physical := range g.physical {
		shape := "ellipse"
		if physical.flags&ResourceImported != 0 {
			shape = "doublecircle"
		}
		sb.WriteString(fmt.Sprintf("  R%d [label=%s, shape=%s];\n", index, strconv.Quote(physical.name), shape))
	}
	sb.WriteString("\n")

	for _, pass := range g.passes {
		for _, read := range pass.reads {
			sb.WriteString(fmt.Sprintf("  R%d -> P%d%s;\n", read.ID.physical, pass.index, edgeLabel(read.Flags.String())))
		}
		for _, write := range pass.writes {
			sb.WriteString(fmt.Sprintf("  P%d -> R%d%s;\n", pass.index, write.ID.physical, edgeLabel(write.Flags.String())))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

func edgeLabel(flags string) string {
	if flags == "" || flags == "None" {
		return ""
	}
	return fmt.Sprintf(" [label=%s]", strconv.Quote(flags))
}
