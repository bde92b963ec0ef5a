package rendergraph

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/rendergraph/gfx"
)

// Execute records the compiled passes into cmd in order. Each pass gets a single pipeline barrier with
// its memory dependency and layout transitions, followed by its own commands. Graphics passes with
// attachments are recorded inside BeginRendering/EndRendering when cmd is a gfx.RenderingCommandBuffer.
//
// Execute does not begin or end cmd. Recording stops at the first pass that fails.
func (g *RenderGraph) Execute(cmd gfx.CommandBuffer) error {
	if !g.compiled {
		return ErrNotCompiled
	}

	for _, pass := range g.order {
		pass.state = PassUnrecorded
	}

	if g.options.ValidateMaterialized {
		err := g.validateMaterialized()
		if err != nil {
			return err
		}
	}

	for _, pass := range g.order {
		err := g.recordPass(cmd, pass)
		if err != nil {
			return err
		}
	}

	return nil
}

func (g *RenderGraph) validateMaterialized() error {
	var err error
	validate := func(pass *Pass, id ResourceID) {
		var resolveErr error
		if g.resources[id.virtual].flags&ResourceImage != 0 {
			_, resolveErr = g.Image(id)
		} else {
			_, resolveErr = g.Buffer(id)
		}
		if resolveErr != nil {
			err = errors.CombineErrors(err, errors.Wrapf(resolveErr, "pass %q", pass.name))
		}
	}

	for _, pass := range g.order {
		for _, read := range pass.reads {
			validate(pass, read.ID)
		}
		for _, write := range pass.writes {
			validate(pass, write.ID)
		}
	}
	return err
}

func (g *RenderGraph) recordPass(cmd gfx.CommandBuffer, pass *Pass) error {
	var dependency gfx.Dependency
	if pass.srcStage != gfx.PipelineStageNone {
		dependency.MemoryBarriers = append(dependency.MemoryBarriers, pass.MemoryDependency())
	}

	for _, transition := range pass.transitions {
		image, err := g.Image(transition.ID)
		if err != nil {
			return errors.Wrapf(err, "pass %q", pass.name)
		}

		dependency.ImageBarriers = append(dependency.ImageBarriers, gfx.ImageBarrier{
			Image:     image,
			SrcStage:  transition.SrcStage,
			SrcAccess: transition.SrcAccess,
			DstStage:  transition.DstStage,
			DstAccess: transition.DstAccess,
			OldLayout: transition.OldLayout,
			NewLayout: transition.NewLayout,
		})
	}

	if !dependency.IsEmpty() {
		err := cmd.PipelineBarrier(dependency)
		if err != nil {
			return errors.Wrapf(err, "pass %q failed to record its barrier", pass.name)
		}
	}
	pass.state = PassBarriersEmitted

	renderingCmd, rendering := cmd.(gfx.RenderingCommandBuffer)
	rendering = rendering && pass.kind == PassGraphics && len(pass.attachments) > 0
	if rendering {
		info, err := g.renderingInfo(pass)
		if err != nil {
			return err
		}

		err = renderingCmd.BeginRendering(info)
		if err != nil {
			return errors.Wrapf(err, "pass %q failed to begin rendering", pass.name)
		}
	}

	pass.state = PassRecording
	if pass.onExecute != nil {
		err := pass.onExecute(cmd)
		if err != nil {
			return errors.Wrapf(err, "pass %q failed to record", pass.name)
		}
	}

	if rendering {
		err := renderingCmd.EndRendering()
		if err != nil {
			return errors.Wrapf(err, "pass %q failed to end rendering", pass.name)
		}
	}
	pass.state = PassRecorded

	g.logger.LogAttrs(context.Background(), slog.LevelDebug, "rendergraph::recordPass",
		slog.String("pass", pass.name),
		slog.String("kind", pass.kind.String()),
		slog.Int("memoryBarriers", len(dependency.MemoryBarriers)),
		slog.Int("imageBarriers", len(dependency.ImageBarriers)),
		slog.Bool("rendering", rendering),
	)
	return nil
}

// renderingInfo resolves the attachments of a graphics pass. The render area covers the largest
// attachment.
func (g *RenderGraph) renderingInfo(pass *Pass) (gfx.RenderingInfo, error) {
	var info gfx.RenderingInfo
	for _, attachment := range pass.attachments {
		image, err := g.Image(attachment.ID)
		if err != nil {
			return info, errors.Wrapf(err, "pass %q", pass.name)
		}

		extent := image.Extent()
		info.RenderArea.Width = max(info.RenderArea.Width, extent.Width)
		info.RenderArea.Height = max(info.RenderArea.Height, extent.Height)

		renderingAttachment := gfx.RenderingAttachment{
			Image:   image,
			Layout:  attachment.Layout,
			LoadOp:  attachment.LoadOp,
			StoreOp: attachment.StoreOp,
		}
		if !attachment.Depth {
			info.ColorAttachments = append(info.ColorAttachments, renderingAttachment)
			continue
		}

		if info.DepthAttachment != nil {
			return info, errors.Newf("pass %q has more than one depth attachment", pass.name)
		}
		info.DepthAttachment = &renderingAttachment
	}

	return info, nil
}
