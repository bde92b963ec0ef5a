package vam

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/rendergraph/memutils"
)

// AllocatorStatistics holds detailed statistics for every memory type and heap, plus their total
type AllocatorStatistics struct {
	MemoryTypes [common.MaxMemoryTypes]memutils.DetailedStatistics
	MemoryHeaps [common.MaxMemoryHeaps]memutils.DetailedStatistics
	Total       memutils.DetailedStatistics
}

// CalculateStatistics walks every pool and dedicated allocation and populates stats
func (a *Allocator) CalculateStatistics(stats *AllocatorStatistics) {
	stats.Total.Clear()
	for i := 0; i < common.MaxMemoryTypes; i++ {
		stats.MemoryTypes[i].Clear()
	}
	for i := 0; i < common.MaxMemoryHeaps; i++ {
		stats.MemoryHeaps[i].Clear()
	}

	for typeIndex, heap := range a.heaps {
		heap.AddDetailedStatistics(&stats.MemoryTypes[typeIndex])
	}

	for typeIndex, memoryType := range a.memoryProperties.MemoryTypes {
		stats.MemoryHeaps[memoryType.HeapIndex].AddDetailedStatistics(&stats.MemoryTypes[typeIndex])
	}

	for heapIndex := range a.memoryProperties.MemoryHeaps {
		stats.Total.AddDetailedStatistics(&stats.MemoryHeaps[heapIndex])
	}
}

// BuildStatsString produces a json document describing every heap and memory type. When detailedMap
// is true, every region of every pool and every dedicated allocation is listed as well.
func (a *Allocator) BuildStatsString(detailedMap bool) string {
	var stats AllocatorStatistics
	a.CalculateStatistics(&stats)

	writer := jwriter.NewWriter()
	objState := writer.Object()

	totalObj := objState.Name("Total").Object()
	stats.Total.WriteJSON(&totalObj)
	totalObj.End()

	heapsArray := objState.Name("MemoryHeaps").Array()
	for heapIndex, heap := range a.memoryProperties.MemoryHeaps {
		heapObj := heapsArray.Object()
		heapObj.Name("Index").Int(heapIndex)
		heapObj.Name("Size").Int(heap.Size)
		heapObj.Name("Flags").String(heap.Flags.String())

		statsObj := heapObj.Name("Stats").Object()
		stats.MemoryHeaps[heapIndex].WriteJSON(&statsObj)
		statsObj.End()

		typesArray := heapObj.Name("MemoryTypes").Array()
		for typeIndex, memoryType := range a.memoryProperties.MemoryTypes {
			if memoryType.HeapIndex != heapIndex {
				continue
			}

			typeObj := typesArray.Object()
			typeObj.Name("Index").Int(typeIndex)
			typeObj.Name("Flags").String(memoryType.PropertyFlags.String())
			typeObj.Name("PoolSize").Int(a.heaps[typeIndex].poolSize)

			typeStatsObj := typeObj.Name("Stats").Object()
			stats.MemoryTypes[typeIndex].WriteJSON(&typeStatsObj)
			typeStatsObj.End()

			a.heaps[typeIndex].BuildStatsString(&typeObj, detailedMap)
			typeObj.End()
		}
		typesArray.End()

		heapObj.End()
	}
	heapsArray.End()

	objState.End()
	return string(writer.Bytes())
}
