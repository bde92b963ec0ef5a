package vam

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/rendergraph/memutils/tlsf"
)

type allocationType byte

const (
	allocationTypeNone allocationType = iota
	allocationTypePool
	allocationTypeDedicated
)

var allocationTypeMapping = map[allocationType]string{
	allocationTypeNone:      "allocationTypeNone",
	allocationTypePool:      "allocationTypePool",
	allocationTypeDedicated: "allocationTypeDedicated",
}

func (t allocationType) String() string {
	return allocationTypeMapping[t]
}

type poolData struct {
	pool  *devicePool
	block tlsf.Block
}

type dedicatedData struct {
	nextAlloc *Allocation
	prevAlloc *Allocation
}

// Allocation is a region of DeviceMemory handed out by an Allocator. Buffers and images are bound to
// Memory at Offset.
type Allocation struct {
	size            int
	alignment       uint
	flags           MemoryFlags
	memoryTypeIndex int
	allocationType  allocationType
	memory          core1_0.DeviceMemory

	heap *memoryHeap

	poolData      poolData
	dedicatedData dedicatedData
}

func (a *Allocation) MemoryTypeIndex() int         { return a.memoryTypeIndex }
func (a *Allocation) Size() int                    { return a.size }
func (a *Allocation) Alignment() uint              { return a.alignment }
func (a *Allocation) Flags() MemoryFlags           { return a.flags }
func (a *Allocation) Memory() core1_0.DeviceMemory { return a.memory }
func (a *Allocation) IsDedicated() bool            { return a.allocationType == allocationTypeDedicated }

// Offset is the byte offset of this allocation within Memory. Dedicated allocations always start at 0.
func (a *Allocation) Offset() int {
	if a.allocationType == allocationTypePool {
		return a.poolData.block.Offset
	}
	return 0
}

// BindBufferMemory binds buffer to this allocation's memory at its offset
func (a *Allocation) BindBufferMemory(buffer core1_0.Buffer) (common.VkResult, error) {
	if a.allocationType == allocationTypeNone {
		return core1_0.VKErrorUnknown, errors.New("attempted to bind a buffer to an allocation that has been freed")
	}
	return a.heap.driver.BindBufferMemory(buffer, a.memory, a.Offset())
}

// BindImageMemory binds image to this allocation's memory at its offset
func (a *Allocation) BindImageMemory(image core1_0.Image) (common.VkResult, error) {
	if a.allocationType == allocationTypeNone {
		return core1_0.VKErrorUnknown, errors.New("attempted to bind an image to an allocation that has been freed")
	}
	return a.heap.driver.BindImageMemory(image, a.memory, a.Offset())
}

// Free returns this allocation to its memory heap. Freeing an allocation twice returns an error.
func (a *Allocation) Free() error {
	if a.allocationType == allocationTypeNone {
		return errors.New("attempted to free an allocation that has already been freed")
	}

	err := a.heap.free(a)
	if err != nil {
		return err
	}

	a.allocationType = allocationTypeNone
	a.heap = nil
	a.poolData = poolData{}
	return nil
}

func (a *Allocation) printParameters(json *jwriter.ObjectState) {
	json.Name("Type").String(a.allocationType.String())
	json.Name("Size").Int(a.size)
	json.Name("Offset").Int(a.Offset())
	if a.flags != 0 {
		json.Name("Flags").String(a.flags.String())
	}
}

func (a *Allocation) String() string {
	return fmt.Sprintf("%s{memoryType: %d, offset: %d, size: %d}", a.allocationType, a.memoryTypeIndex, a.Offset(), a.size)
}

func (a *Allocation) nextDedicatedAlloc() *Allocation {
	if a.allocationType != allocationTypeDedicated {
		panic("attempted to get the next dedicated allocation of a pooled allocation")
	}
	return a.dedicatedData.nextAlloc
}

func (a *Allocation) setNext(alloc *Allocation) {
	if a.allocationType != allocationTypeDedicated {
		panic("attempted to link a pooled allocation into a dedicated allocation list")
	}
	a.dedicatedData.nextAlloc = alloc
}

func (a *Allocation) prevDedicatedAlloc() *Allocation {
	if a.allocationType != allocationTypeDedicated {
		panic("attempted to get the previous dedicated allocation of a pooled allocation")
	}
	return a.dedicatedData.prevAlloc
}

func (a *Allocation) setPrev(alloc *Allocation) {
	if a.allocationType != allocationTypeDedicated {
		panic("attempted to link a pooled allocation into a dedicated allocation list")
	}
	a.dedicatedData.prevAlloc = alloc
}
