package vam

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_memory_priority"
	"github.com/vkngwrapper/rendergraph/internal/utils"
	"github.com/vkngwrapper/rendergraph/memutils"
	"github.com/vkngwrapper/rendergraph/memutils/tlsf"
)

const defaultPriority float32 = 0.5

// HeapRange is one region of a pool, as reported by Allocator.HeapRanges
type HeapRange struct {
	Pool  int
	Start int
	Size  int
	Free  bool
}

// memoryHeap owns every pool and dedicated allocation for a single memory type
type memoryHeap struct {
	logger            *slog.Logger
	driver            core1_0.DeviceDriver
	memoryTypeIndex   int
	poolSize          int
	maxAllocationSize int
	useMemoryPriority bool

	mutex      utils.OptionalMutex
	pools      []*devicePool
	nextPoolID int

	dedicated dedicatedAllocationList
}

func newMemoryHeap(allocator *Allocator, memoryTypeIndex int, poolSize int) *memoryHeap {
	heap := &memoryHeap{
		logger:            allocator.logger,
		driver:            allocator.driver,
		memoryTypeIndex:   memoryTypeIndex,
		poolSize:          poolSize,
		maxAllocationSize: allocator.maxAllocationSize,
		useMemoryPriority: allocator.useMemoryPriority,
		mutex:             utils.OptionalMutex{UseMutex: allocator.useMutex},
	}
	heap.dedicated.Init(allocator.useMutex)

	return heap
}

func (h *memoryHeap) allocateDeviceMemory(size int, priority float32) (core1_0.DeviceMemory, error) {
	allocInfo := core1_0.MemoryAllocateInfo{
		AllocationSize:  size,
		MemoryTypeIndex: h.memoryTypeIndex,
	}

	if h.useMemoryPriority {
		allocInfo.NextOptions = common.NextOptions{
			Next: ext_memory_priority.MemoryPriorityAllocateInfo{
				Priority: priority,
			},
		}
	}

	memory, res, err := h.driver.AllocateMemory(nil, allocInfo)
	if err != nil {
		return memory, errors.Wrapf(err, "failed to allocate %d bytes from memory type %d (%s)", size, h.memoryTypeIndex, res)
	}

	return memory, nil
}

// allocate tries a dedicated allocation first if one is preferred, then the existing pools, then a new
// pool, then a dedicated allocation if one has not already been tried
func (h *memoryHeap) allocate(size int, alignment uint, flags MemoryFlags, priority float32) (*Allocation, error) {
	var deviceErr error
	preferDedicated := flags&MemoryPreferDedicated != 0

	if preferDedicated {
		alloc, err := h.allocateDedicated(size, alignment, flags, priority)
		if err == nil {
			return alloc, nil
		}
		deviceErr = err
	}

	alloc, err := h.allocateFromPools(size, alignment, flags)
	if err != nil {
		return nil, err
	}
	if alloc != nil {
		return alloc, nil
	}

	if !preferDedicated {
		alloc, err = h.allocateDedicated(size, alignment, flags, priority)
		if err == nil {
			return alloc, nil
		}
		deviceErr = err
	}

	err = errors.Wrapf(memutils.ErrOutOfMemory, "memory type %d could not satisfy an allocation of %d bytes", h.memoryTypeIndex, size)
	if deviceErr != nil {
		err = errors.WithSecondaryError(err, deviceErr)
	}
	return nil, err
}

func (h *memoryHeap) allocateFromPools(size int, alignment uint, flags MemoryFlags) (*Allocation, error) {
	if h.poolSize == 0 || size >= h.poolSize || alignment > uint(PoolAlignmentLimit) {
		return nil, nil
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, pool := range h.pools {
		block, ok, err := pool.allocate(size, alignment)
		if err != nil {
			return nil, err
		}
		if ok {
			return h.newPoolAllocation(pool, block, size, alignment, flags), nil
		}
	}

	for shift := 0; shift < poolShiftCount; shift++ {
		attemptSize := memutils.AlignDown(h.poolSize>>shift, tlsf.MinimumAllocationSize)
		if attemptSize <= size {
			break
		}

		memory, err := h.allocateDeviceMemory(attemptSize, defaultPriority)
		if err != nil {
			h.logger.LogAttrs(context.Background(), slog.LevelDebug, "vam::memoryHeap failed to create pool",
				slog.Int("memoryType", h.memoryTypeIndex),
				slog.Int("size", attemptSize),
				slog.Any("error", err),
			)
			continue
		}

		pool, err := newDevicePool(h.nextPoolID, memory, attemptSize)
		if err != nil {
			h.driver.FreeMemory(memory, nil)
			return nil, err
		}
		h.nextPoolID++
		h.pools = append(h.pools, pool)

		h.logger.LogAttrs(context.Background(), slog.LevelDebug, "vam::memoryHeap created pool",
			slog.Int("memoryType", h.memoryTypeIndex),
			slog.Int("pool", pool.id),
			slog.Int("size", attemptSize),
		)

		block, ok, err := pool.allocate(size, alignment)
		if err != nil {
			return nil, err
		}
		if ok {
			return h.newPoolAllocation(pool, block, size, alignment, flags), nil
		}
		break
	}

	return nil, nil
}

func (h *memoryHeap) newPoolAllocation(pool *devicePool, block tlsf.Block, size int, alignment uint, flags MemoryFlags) *Allocation {
	return &Allocation{
		size:            size,
		alignment:       alignment,
		flags:           flags,
		memoryTypeIndex: h.memoryTypeIndex,
		allocationType:  allocationTypePool,
		memory:          pool.memory,
		heap:            h,
		poolData: poolData{
			pool:  pool,
			block: block,
		},
	}
}

func (h *memoryHeap) allocateDedicated(size int, alignment uint, flags MemoryFlags, priority float32) (*Allocation, error) {
	if size > h.maxAllocationSize {
		return nil, errors.Newf("allocation of %d bytes exceeds the device's maximum allocation size of %d", size, h.maxAllocationSize)
	}

	memory, err := h.allocateDeviceMemory(size, priority)
	if err != nil {
		return nil, err
	}

	alloc := &Allocation{
		size:            size,
		alignment:       alignment,
		flags:           flags,
		memoryTypeIndex: h.memoryTypeIndex,
		allocationType:  allocationTypeDedicated,
		memory:          memory,
		heap:            h,
	}
	h.dedicated.Register(alloc)

	h.logger.LogAttrs(context.Background(), slog.LevelDebug, "vam::memoryHeap dedicated allocation",
		slog.Int("memoryType", h.memoryTypeIndex),
		slog.Int("size", size),
	)
	return alloc, nil
}

func (h *memoryHeap) free(alloc *Allocation) error {
	if alloc.allocationType == allocationTypeDedicated {
		h.dedicated.Unregister(alloc)
		h.driver.FreeMemory(alloc.memory, nil)
		return nil
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	alreadyHaveEmptyPool := false
	for _, pool := range h.pools {
		if pool.IsEmpty() {
			alreadyHaveEmptyPool = true
			break
		}
	}

	pool := alloc.poolData.pool
	err := pool.free(alloc.poolData.block.Handle)
	if err != nil {
		return err
	}

	// Keep at most one empty pool around so that allocations hovering at a pool boundary don't
	// allocate and free device memory over and over
	if !alreadyHaveEmptyPool {
		return nil
	}

	last := len(h.pools) - 1
	if pool.IsEmpty() {
		index := h.poolIndex(pool)
		h.pools[index], h.pools[last] = h.pools[last], h.pools[index]
	} else if !h.pools[last].IsEmpty() {
		return nil
	}

	poolToFree := h.pools[last]
	h.pools[last] = nil
	h.pools = h.pools[:last]
	h.driver.FreeMemory(poolToFree.memory, nil)

	h.logger.LogAttrs(context.Background(), slog.LevelDebug, "vam::memoryHeap deleted empty pool",
		slog.Int("memoryType", h.memoryTypeIndex),
		slog.Int("pool", poolToFree.id),
		slog.Int("size", poolToFree.Size()),
	)
	return nil
}

func (h *memoryHeap) poolIndex(pool *devicePool) int {
	for index, candidate := range h.pools {
		if candidate == pool {
			return index
		}
	}

	panic("attempted to free an allocation from a pool that does not belong to its heap")
}

func (h *memoryHeap) PoolCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	return len(h.pools)
}

func (h *memoryHeap) Validate() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, pool := range h.pools {
		err := pool.Validate()
		if err != nil {
			return err
		}
	}

	return h.dedicated.Validate()
}

func (h *memoryHeap) AddStatistics(stats *memutils.Statistics) {
	h.mutex.Lock()
	for _, pool := range h.pools {
		pool.AddStatistics(stats)
	}
	h.mutex.Unlock()

	h.dedicated.AddStatistics(stats)
}

func (h *memoryHeap) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	h.mutex.Lock()
	for _, pool := range h.pools {
		pool.AddDetailedStatistics(stats)
	}
	h.mutex.Unlock()

	h.dedicated.AddDetailedStatistics(stats)
}

func (h *memoryHeap) HeapRanges() []HeapRange {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	var ranges []HeapRange
	for _, pool := range h.pools {
		_ = pool.pool.VisitAllRegions(func(handle tlsf.BlockHandle, offset int, size int, free bool) error {
			ranges = append(ranges, HeapRange{
				Pool:  pool.id,
				Start: offset,
				Size:  size,
				Free:  free,
			})
			return nil
		})
	}

	return ranges
}

func (h *memoryHeap) BuildStatsString(json *jwriter.ObjectState, detailedMap bool) {
	if !detailedMap {
		return
	}

	h.mutex.Lock()
	poolArray := json.Name("Pools").Array()
	for _, pool := range h.pools {
		obj := poolArray.Object()
		pool.printDetailedMap(&obj)
		obj.End()
	}
	poolArray.End()
	h.mutex.Unlock()

	if !h.dedicated.IsEmpty() {
		h.dedicated.BuildStatsString(json.Name("DedicatedAllocations"))
	}
}

// Destroy frees every pool's device memory. If any allocation is still live, each one is logged and an
// error is returned without freeing anything.
func (h *memoryHeap) Destroy() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	leaked := 0
	for _, pool := range h.pools {
		if pool.IsEmpty() {
			continue
		}

		_ = pool.pool.VisitAllRegions(func(handle tlsf.BlockHandle, offset int, size int, free bool) error {
			if free {
				return nil
			}

			leaked++
			h.logUnreleasedMemory(pool.id, offset, size)
			return nil
		})
	}

	h.dedicated.visit(func(alloc *Allocation) {
		leaked++
		h.logUnreleasedMemory(-1, 0, alloc.size)
	})

	if leaked > 0 {
		return errors.Newf("%d allocations from memory type %d were not freed before the allocator was destroyed", leaked, h.memoryTypeIndex)
	}

	for _, pool := range h.pools {
		h.driver.FreeMemory(pool.memory, nil)
	}
	h.pools = nil

	return nil
}

func (h *memoryHeap) logUnreleasedMemory(pool, offset, size int) {
	h.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED MEMORY] unfreed allocation",
		slog.Int("memoryType", h.memoryTypeIndex),
		slog.Int("pool", pool),
		slog.Int("offset", offset),
		slog.Int("size", size),
	)
}
