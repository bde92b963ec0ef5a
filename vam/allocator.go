package vam

import (
	"context"
	"log/slog"
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/rendergraph/memutils"
)

const (
	highPriority float32 = 1.0

	knownMemoryProperties = core1_0.MemoryPropertyDeviceLocal | core1_0.MemoryPropertyHostVisible |
		core1_0.MemoryPropertyHostCoherent | core1_0.MemoryPropertyHostCached
)

// Allocator hands out device memory for buffers and images. Each memory type gets its own set of TLSF
// pools, and large or strictly aligned requests get a dedicated vkAllocateMemory.
//
// Unless CreateOptions.ExternallySynchronized is set, an Allocator and its Allocations may be used from
// any goroutine.
type Allocator struct {
	logger *slog.Logger
	driver core1_0.DeviceDriver

	useMutex          bool
	useMemoryPriority bool

	memoryProperties       core1_0.PhysicalDeviceMemoryProperties
	bufferImageGranularity int
	maxAllocationSize      int

	heaps []*memoryHeap
}

// Driver is the device driver memory is allocated through
func (a *Allocator) Driver() core1_0.DeviceDriver { return a.driver }

// MemoryTypeCount is the number of memory types the allocator manages
func (a *Allocator) MemoryTypeCount() int { return len(a.heaps) }

// MemoryTypeProperties returns the property flags of a memory type
func (a *Allocator) MemoryTypeProperties(memoryTypeIndex int) core1_0.MemoryPropertyFlags {
	return a.memoryProperties.MemoryTypes[memoryTypeIndex].PropertyFlags
}

func (a *Allocator) memoryTypePreferences(flags MemoryFlags) (required, desirable, undesirable core1_0.MemoryPropertyFlags) {
	undesirable = ^knownMemoryProperties

	switch {
	case flags&MemoryHostRandomAccess != 0:
		required = core1_0.MemoryPropertyHostVisible
		desirable = core1_0.MemoryPropertyHostCached | core1_0.MemoryPropertyDeviceLocal
	case flags&MemoryHostSequentialWrite != 0:
		required = core1_0.MemoryPropertyHostVisible
		undesirable |= core1_0.MemoryPropertyHostCached
		if flags&MemoryStaging != 0 {
			undesirable |= core1_0.MemoryPropertyDeviceLocal
		} else {
			desirable = core1_0.MemoryPropertyDeviceLocal
		}
	default:
		required = core1_0.MemoryPropertyDeviceLocal
		undesirable |= core1_0.MemoryPropertyHostVisible
	}

	return required, desirable, undesirable
}

// FindMemoryTypeIndex returns the memory type in memoryTypeBits that best fits flags. Types missing a
// required property are never chosen. Among the rest, the type with the fewest missing desirable
// properties and present undesirable properties wins, ties going to the lowest index.
func (a *Allocator) FindMemoryTypeIndex(memoryTypeBits uint32, flags MemoryFlags) (int, error) {
	required, desirable, undesirable := a.memoryTypePreferences(flags)

	bestIndex := -1
	bestCost := 0
	for typeIndex, memoryType := range a.memoryProperties.MemoryTypes {
		if memoryTypeBits&(1<<uint(typeIndex)) == 0 {
			continue
		}

		properties := memoryType.PropertyFlags
		if properties&required != required {
			continue
		}

		cost := bits.OnesCount32(uint32(^properties&desirable)) + bits.OnesCount32(uint32(properties&undesirable))
		if bestIndex < 0 || cost < bestCost {
			bestIndex = typeIndex
			bestCost = cost
			if cost == 0 {
				break
			}
		}
	}

	if bestIndex < 0 {
		return -1, errors.Wrapf(memutils.ErrOutOfMemory, "no memory type in bits %#x has properties %s", memoryTypeBits, required)
	}
	return bestIndex, nil
}

// AllocateMemory finds a memory type for requirements and allocates from it. If the best memory type
// can't satisfy the request, the next best is tried until every type in MemoryTypeBits is exhausted.
func (a *Allocator) AllocateMemory(requirements *core1_0.MemoryRequirements, flags MemoryFlags) (*Allocation, error) {
	if requirements == nil {
		return nil, errors.New("vam.Allocator.AllocateMemory requires memory requirements")
	}
	if requirements.Size <= 0 {
		return nil, errors.Newf("attempted to allocate %d bytes", requirements.Size)
	}

	alignment := requirements.Alignment
	if alignment == 0 {
		alignment = 1
	}
	err := memutils.CheckPow2(alignment, "memory requirements alignment")
	if err != nil {
		return nil, err
	}
	alignment = max(alignment, a.bufferImageGranularity)

	if requirements.Size >= DedicatedThreshold {
		flags |= MemoryPreferDedicated
	}

	priority := defaultPriority
	if flags&MemoryHighPriority != 0 {
		priority = highPriority
	}

	memoryTypeBits := requirements.MemoryTypeBits
	var lastErr error
	for {
		typeIndex, err := a.FindMemoryTypeIndex(memoryTypeBits, flags)
		if err != nil {
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, err
		}

		alloc, err := a.heaps[typeIndex].allocate(requirements.Size, uint(alignment), flags, priority)
		if err == nil {
			return alloc, nil
		}

		a.logger.LogAttrs(context.Background(), slog.LevelDebug, "vam::Allocator memory type exhausted",
			slog.Int("memoryType", typeIndex),
			slog.Int("size", requirements.Size),
			slog.Any("error", err),
		)
		lastErr = err
		memoryTypeBits &^= 1 << uint(typeIndex)
	}
}

// AllocateMemoryForBuffer allocates memory that satisfies buffer's requirements and binds buffer to it
func (a *Allocator) AllocateMemoryForBuffer(buffer core1_0.Buffer, flags MemoryFlags) (*Allocation, error) {
	requirements := a.driver.GetBufferMemoryRequirements(buffer)

	alloc, err := a.AllocateMemory(requirements, flags)
	if err != nil {
		return nil, err
	}

	_, err = alloc.BindBufferMemory(buffer)
	if err != nil {
		return nil, errors.CombineErrors(err, alloc.Free())
	}

	return alloc, nil
}

// AllocateMemoryForImage allocates memory that satisfies image's requirements and binds image to it
func (a *Allocator) AllocateMemoryForImage(image core1_0.Image, flags MemoryFlags) (*Allocation, error) {
	requirements := a.driver.GetImageMemoryRequirements(image)

	alloc, err := a.AllocateMemory(requirements, flags)
	if err != nil {
		return nil, err
	}

	_, err = alloc.BindImageMemory(image)
	if err != nil {
		return nil, errors.CombineErrors(err, alloc.Free())
	}

	return alloc, nil
}

// PoolCount is the number of pools currently backing a memory type
func (a *Allocator) PoolCount(memoryTypeIndex int) int {
	return a.heaps[memoryTypeIndex].PoolCount()
}

// HeapRanges returns every region of every pool of a memory type, in pool order and then offset order
func (a *Allocator) HeapRanges(memoryTypeIndex int) []HeapRange {
	return a.heaps[memoryTypeIndex].HeapRanges()
}

// Validate checks the internal consistency of every pool and dedicated allocation list
func (a *Allocator) Validate() error {
	for typeIndex, heap := range a.heaps {
		err := heap.Validate()
		if err != nil {
			return errors.Wrapf(err, "memory type %d", typeIndex)
		}
	}

	return nil
}

// Destroy releases all device memory held by the allocator. Every Allocation must be freed first:
// leaked allocations are logged and an error is returned.
func (a *Allocator) Destroy() error {
	var err error
	for _, heap := range a.heaps {
		err = errors.CombineErrors(err, heap.Destroy())
	}

	return err
}
