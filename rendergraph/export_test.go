package rendergraph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/rendergraph/gfx"
	"go.uber.org/mock/gomock"
)

func readyExportGraph(t *testing.T, ctrl *gomock.Controller) *RenderGraph {
	_, graph := readyGraph(t, ctrl, Options{})

	x := graph.NewBuffer("x", storageDescription)
	y := graph.NewAttachment("y", colorDescription)
	unused := graph.NewBuffer("unused", storageDescription)

	graph.AddPass("upload", PassTransfer).Write(&x, 0)
	graph.AddPass("debug", PassCompute).Read(&x, 0).Write(&unused, 0)
	graph.AddPass("draw", PassGraphics).Read(&x, ReadIndirect).Write(&y, 0)

	require.NoError(t, graph.Compile(y))
	return graph
}

func TestJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	graph := readyExportGraph(t, ctrl)

	var dump struct {
		Compiled bool
		Target   string
		Order    []string
		Passes   []struct {
			Name             string
			Kind             string
			Culled           bool
			Reads            []struct{ Resource, Flags string }
			Writes           []struct{ Resource, Flags string }
			MemoryDependency *struct{ SrcStage, DstStage string }
			Transitions      []struct{ Resource, OldLayout, NewLayout string }
			Attachments      []struct{ Resource, LoadOp, StoreOp string }
		}
		Resources []struct {
			Name         string
			Versions     int
			Materialized bool
		}
	}
	require.NoError(t, json.Unmarshal([]byte(graph.JSON()), &dump))

	require.True(t, dump.Compiled)
	require.Equal(t, "y", dump.Target)
	require.Equal(t, []string{"upload", "draw"}, dump.Order)

	require.Len(t, dump.Passes, 3)
	require.Equal(t, "debug", dump.Passes[1].Name)
	require.True(t, dump.Passes[1].Culled)
	require.Nil(t, dump.Passes[1].MemoryDependency)

	drawPass := dump.Passes[2]
	require.Equal(t, "Graphics", drawPass.Kind)
	require.False(t, drawPass.Culled)
	require.Equal(t, "x", drawPass.Reads[0].Resource)
	require.Equal(t, ReadIndirect.String(), drawPass.Reads[0].Flags)
	require.Equal(t, gfx.PipelineStageTransfer.String(), drawPass.MemoryDependency.SrcStage)
	require.Len(t, drawPass.Transitions, 1)
	require.Equal(t, "ColorAttachmentOptimal", drawPass.Transitions[0].NewLayout)
	require.Len(t, drawPass.Attachments, 1)
	require.Equal(t, "Clear", drawPass.Attachments[0].LoadOp)
	require.Equal(t, "Store", drawPass.Attachments[0].StoreOp)

	require.Len(t, dump.Resources, 3)
	require.Equal(t, "x", dump.Resources[0].Name)
	require.Equal(t, 2, dump.Resources[0].Versions)
	require.False(t, dump.Resources[0].Materialized)
}

func TestJSONBeforeCompile(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, graph := readyGraph(t, ctrl, Options{})

	x := graph.NewBuffer("x", storageDescription)
	graph.AddPass("upload", PassTransfer).Write(&x, 0)

	out := graph.JSON()
	require.True(t, json.Valid([]byte(out)))
	require.NotContains(t, out, "Target")
	require.NotContains(t, out, "MemoryDependency")
}

func TestDOT(t *testing.T) {
	ctrl := gomock.NewController(t)
	graph := readyExportGraph(t, ctrl)

	dot := graph.DOT()
	require.Contains(t, dot, "digraph RenderGraph {\n")
	require.Contains(t, dot, `  P0 [label="upload\nTransfer", shape=box, style=solid];`)
	require.Contains(t, dot, `  P1 [label="debug\nCompute", shape=box, style=dashed];`)
	require.Contains(t, dot, `  P2 [label="draw\nGraphics", shape=box, style=solid];`)
	require.Contains(t, dot, `  R1 [label="y", shape=ellipse];`)
	require.Contains(t, dot, "  P0 -> R0;\n")
	require.Contains(t, dot, `  R0 -> P2 [label="Indirect"];`)
	require.Contains(t, dot, "  P2 -> R1;\n")
}
