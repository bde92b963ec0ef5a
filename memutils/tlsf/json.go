package tlsf

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/rendergraph/memutils"
)

// BlockJsonData populates a json object with summary information about this pool
func (p *MemoryPool) BlockJsonData(json *jwriter.ObjectState) {
	var stats memutils.DetailedStatistics
	stats.Clear()
	p.AddDetailedStatistics(&stats)

	json.Name("TotalBytes").Int(p.totalSize)
	json.Name("UnusedBytes").Int(stats.UnusedBytes())
	json.Name("Allocations").Int(stats.AllocationCount)
	json.Name("UnusedRanges").Int(stats.UnusedRangeCount)
	json.Name("LargestFreeBlock").Int(p.LargestFreeBlockSize())
}

// PrintDetailedMap writes the summary from BlockJsonData followed by every region in offset order
func (p *MemoryPool) PrintDetailedMap(json *jwriter.ObjectState) {
	p.BlockJsonData(json)

	arrayState := json.Name("Regions").Array()
	defer arrayState.End()

	_ = p.VisitAllRegions(func(handle BlockHandle, offset int, size int, free bool) error {
		obj := arrayState.Object()
		defer obj.End()

		obj.Name("Offset").Int(offset)
		obj.Name("Size").Int(size)
		if free {
			obj.Name("Type").String("FREE")
		} else {
			obj.Name("Type").String("ALLOCATION")
			obj.Name("Handle").String(handle.String())
		}
		return nil
	})
}
