package gfx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagStrings(t *testing.T) {
	require.Equal(t, "None", PipelineStageNone.String())
	require.Equal(t, "EarlyFragmentTests|LateFragmentTests",
		(PipelineStageLateFragmentTests | PipelineStageEarlyFragmentTests).String())
	require.Equal(t, "ShaderWrite|MemoryWrite", (AccessMemoryWrite | AccessShaderWrite).String())
	require.Equal(t, "ShaderWrite", (AccessShaderWrite | Access(0x20000000)).String())
	require.Equal(t, "PresentSrc", ImageLayoutPresentSrc.String())
	require.Equal(t, "ImageLayout(77)", ImageLayout(77).String())
	require.Equal(t, "Clear", AttachmentLoadOpClear.String())
	require.Equal(t, "None", AttachmentStoreOpNone.String())
}

func TestFormatClassification(t *testing.T) {
	require.True(t, FormatD32Sfloat.IsDepthStencil())
	require.False(t, FormatD32Sfloat.HasStencil())
	require.True(t, FormatD24UnormS8Uint.IsDepthStencil())
	require.True(t, FormatD24UnormS8Uint.HasStencil())
	require.False(t, FormatB8G8R8A8SRGB.IsDepthStencil())
	require.Equal(t, "B8G8R8A8SRGB", FormatB8G8R8A8SRGB.String())
}

func TestDependencyIsEmpty(t *testing.T) {
	require.True(t, Dependency{}.IsEmpty())
	require.False(t, Dependency{
		MemoryBarriers: []MemoryBarrier{{SrcStage: PipelineStageTransfer}},
	}.IsEmpty())
}
