package vam

import "github.com/vkngwrapper/core/v3/common"

// MemoryFlags describe how an allocation will be accessed. They drive memory type selection and the
// choice between a pooled and a dedicated allocation.
type MemoryFlags int32

var memoryFlagsMapping = common.NewFlagStringMapping[MemoryFlags]()

func (f MemoryFlags) Register(str string) {
	memoryFlagsMapping.Register(f, str)
}
func (f MemoryFlags) String() string {
	return memoryFlagsMapping.FlagsToString(f)
}

const (
	// MemoryHostRandomAccess requests host visible memory that will be read by the host, preferably
	// cached. Readback buffers should use this.
	MemoryHostRandomAccess MemoryFlags = 1 << iota
	// MemoryHostSequentialWrite requests host visible memory that the host will only write linearly,
	// such as uniform or vertex data updated every frame. Uncached memory is preferred.
	MemoryHostSequentialWrite
	// MemoryStaging may be combined with MemoryHostSequentialWrite for upload buffers. It avoids
	// device local host visible memory, which is usually scarce.
	MemoryStaging
	// MemoryPreferDedicated requests a separate DeviceMemory for the allocation before trying any
	// pool. Allocations of DedicatedThreshold bytes or more always prefer dedicated memory.
	MemoryPreferDedicated
	// MemoryHighPriority raises the priority of a dedicated allocation when memory priority is in use
	MemoryHighPriority
)

func init() {
	MemoryHostRandomAccess.Register("MemoryHostRandomAccess")
	MemoryHostSequentialWrite.Register("MemoryHostSequentialWrite")
	MemoryStaging.Register("MemoryStaging")
	MemoryPreferDedicated.Register("MemoryPreferDedicated")
	MemoryHighPriority.Register("MemoryHighPriority")
}
