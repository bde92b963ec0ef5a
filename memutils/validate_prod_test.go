//go:build !debug_mem_utils

package memutils_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/rendergraph/memutils"
)

func TestDebugChecksAreSilent(t *testing.T) {
	require.NotPanics(t, func() {
		memutils.DebugCheckPow2(24, "alignment")
		memutils.AlignUp(100, 24)
		memutils.AlignDown(100, 24)
	})
}
