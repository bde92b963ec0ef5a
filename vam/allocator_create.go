package vam

import (
	"context"
	"log/slog"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/rendergraph/memutils"
	"github.com/vkngwrapper/rendergraph/memutils/tlsf"
)

const (
	// defaultMaxPoolSize caps the size of an automatically sized pool. It is equal to 256Mb.
	defaultMaxPoolSize int = 256 * 1024 * 1024

	// DedicatedThreshold is the allocation size at which MemoryPreferDedicated is implied. It is equal to 16Mb.
	DedicatedThreshold int = 16 * 1024 * 1024

	// PoolAlignmentLimit is the largest alignment that will be placed in a pool. Anything more strictly
	// aligned goes straight to a dedicated allocation. It is equal to 4Mb.
	PoolAlignmentLimit int = 4 * 1024 * 1024

	// poolShiftCount is the number of times pool creation halves the pool size after a failed
	// vkAllocateMemory before giving up on pools for a request
	poolShiftCount = 5
)

// CreateOptions contains the device information and optional settings used to create an allocator
type CreateOptions struct {
	// MemoryProperties are the memory types and heaps of the PhysicalDevice that owns the driver's
	// Device. At least one memory type is required.
	MemoryProperties core1_0.PhysicalDeviceMemoryProperties
	// BufferImageGranularity is the device limit of the same name. Every allocation is aligned to at
	// least this value so that linear and optimal resources can share a pool. 0 is treated as 1.
	BufferImageGranularity int
	// MaxMemoryAllocationSize is the largest single vkAllocateMemory the device supports. 0 means no limit.
	MaxMemoryAllocationSize int

	// PreferredPoolSize overrides the size of newly created pools. When it is 0, pools are an eighth of
	// their heap, capped at 256Mb.
	PreferredPoolSize int

	// ExternallySynchronized indicates that the consumer guarantees this allocator and its allocations
	// are only used from one goroutine at a time, so internal mutexes are not used.
	ExternallySynchronized bool
	// UseMemoryPriority chains a MemoryPriorityAllocateInfo onto every vkAllocateMemory. The
	// VK_EXT_memory_priority extension must be enabled on the device.
	UseMemoryPriority bool
}

// New creates a new Allocator
//
// driver - The device driver that memory will be allocated through
//
// options - The PhysicalDevice memory properties are required, all other fields may be left blank
func New(logger *slog.Logger, driver core1_0.DeviceDriver, options CreateOptions) (*Allocator, error) {
	if logger == nil {
		return nil, errors.New("vam.New requires a logger")
	}
	if driver == nil {
		return nil, errors.New("vam.New requires a device driver")
	}

	memoryTypes := options.MemoryProperties.MemoryTypes
	memoryHeaps := options.MemoryProperties.MemoryHeaps
	if len(memoryTypes) == 0 || len(memoryTypes) > common.MaxMemoryTypes {
		return nil, errors.Newf("vam.CreateOptions.MemoryProperties has %d memory types, but between 1 and %d are required",
			len(memoryTypes), common.MaxMemoryTypes)
	}
	if len(memoryHeaps) == 0 || len(memoryHeaps) > common.MaxMemoryHeaps {
		return nil, errors.Newf("vam.CreateOptions.MemoryProperties has %d memory heaps, but between 1 and %d are required",
			len(memoryHeaps), common.MaxMemoryHeaps)
	}
	for typeIndex, memoryType := range memoryTypes {
		if memoryType.HeapIndex < 0 || memoryType.HeapIndex >= len(memoryHeaps) {
			return nil, errors.Newf("memory type %d refers to heap %d, but there are only %d heaps",
				typeIndex, memoryType.HeapIndex, len(memoryHeaps))
		}
	}

	granularity := options.BufferImageGranularity
	if granularity == 0 {
		granularity = 1
	}
	err := memutils.CheckPow2(granularity, "vam.CreateOptions.BufferImageGranularity")
	if err != nil {
		return nil, err
	}

	maxAllocationSize := options.MaxMemoryAllocationSize
	if maxAllocationSize <= 0 {
		maxAllocationSize = math.MaxInt
	}

	allocator := &Allocator{
		logger:                 logger,
		driver:                 driver,
		useMutex:               !options.ExternallySynchronized,
		useMemoryPriority:      options.UseMemoryPriority,
		memoryProperties:       options.MemoryProperties,
		bufferImageGranularity: granularity,
		maxAllocationSize:      maxAllocationSize,
	}

	for typeIndex := range memoryTypes {
		poolSize := allocator.calculatePoolSize(typeIndex, options.PreferredPoolSize)
		allocator.heaps = append(allocator.heaps, newMemoryHeap(allocator, typeIndex, poolSize))

		logger.LogAttrs(context.Background(), slog.LevelDebug, "vam::New memory type",
			slog.Int("memoryType", typeIndex),
			slog.Int("heap", memoryTypes[typeIndex].HeapIndex),
			slog.String("flags", memoryTypes[typeIndex].PropertyFlags.String()),
			slog.Int("poolSize", poolSize),
		)
	}

	return allocator, nil
}

// calculatePoolSize returns the size of the first pool attempted for a memory type, or 0 if the heap is
// too small for pools and every allocation of this type must be dedicated
func (a *Allocator) calculatePoolSize(memoryTypeIndex int, preferredSize int) int {
	heapIndex := a.memoryProperties.MemoryTypes[memoryTypeIndex].HeapIndex
	heapSize := a.memoryProperties.MemoryHeaps[heapIndex].Size

	size := preferredSize
	if size <= 0 {
		size = min(heapSize>>3, defaultMaxPoolSize)
	}
	size = min(size, a.maxAllocationSize, tlsf.MaxPoolSize)
	size = memutils.AlignDown(size, tlsf.MinimumAllocationSize)

	if size < tlsf.MinimumAllocationSize {
		return 0
	}
	return size
}
