package memutils_test

import (
	"math"
	"testing"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/rendergraph/memutils"
)

func TestCheckPow2(t *testing.T) {
	require.NoError(t, memutils.CheckPow2(1, "one"))
	require.NoError(t, memutils.CheckPow2(uint(16384), "alignment"))

	err := memutils.CheckPow2(24, "alignment")
	require.ErrorIs(t, err, memutils.PowerOfTwoError)
	require.ErrorContains(t, err, "alignment is 24")

	require.ErrorIs(t, memutils.CheckPow2(0, "zero"), memutils.PowerOfTwoError)
}

func TestAlign(t *testing.T) {
	require.Equal(t, 256, memutils.AlignUp(1, 256))
	require.Equal(t, 256, memutils.AlignUp(256, 256))
	require.Equal(t, 16384, memutils.AlignUp(1024, 16384))
	require.Equal(t, 0, memutils.AlignDown(255, 256))
	require.Equal(t, 512, memutils.AlignDown(767, 256))
}

func TestLog2(t *testing.T) {
	require.Equal(t, 8, memutils.Log2(256))
	require.Equal(t, 8, memutils.Log2(511))
	require.Equal(t, 9, memutils.Log2(512))
	require.Equal(t, 31, memutils.Log2(uint32(math.MaxUint32)))
}

func TestDetailedStatistics(t *testing.T) {
	var stats memutils.DetailedStatistics
	stats.Clear()

	stats.BlockCount++
	stats.BlockBytes += 4096
	stats.AddAllocation(1024)
	stats.AddAllocation(256)
	stats.AddUnusedRange(2816)

	var other memutils.DetailedStatistics
	other.Clear()
	other.BlockCount++
	other.BlockBytes += 1024
	other.AddUnusedRange(1024)

	stats.AddDetailedStatistics(&other)

	require.Equal(t, memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			BlockCount:      2,
			BlockBytes:      5120,
			AllocationCount: 2,
			AllocationBytes: 1280,
		},
		UnusedRangeCount:   2,
		AllocationSizeMin:  256,
		AllocationSizeMax:  1024,
		UnusedRangeSizeMin: 1024,
		UnusedRangeSizeMax: 2816,
	}, stats)
	require.Equal(t, 3840, stats.UnusedBytes())
}

func TestDetailedStatisticsWriteJSON(t *testing.T) {
	var stats memutils.DetailedStatistics
	stats.Clear()
	stats.BlockCount++
	stats.BlockBytes += 4096
	stats.AddAllocation(1024)
	stats.AddUnusedRange(3072)

	writer := jwriter.NewWriter()
	obj := writer.Object()
	obj.Name("Heap").Int(0)
	stats.WriteJSON(&obj)
	obj.Name("Budget").Int(8192)
	obj.End()

	require.NoError(t, writer.Error())
	require.JSONEq(t, `{
		"Heap": 0,
		"BlockCount": 1,
		"BlockBytes": 4096,
		"AllocationCount": 1,
		"AllocationBytes": 1024,
		"UnusedRangeCount": 1,
		"AllocationSizeMin": 1024,
		"AllocationSizeMax": 1024,
		"UnusedRangeSizeMin": 3072,
		"UnusedRangeSizeMax": 3072,
		"Budget": 8192
	}`, string(writer.Bytes()))
}
