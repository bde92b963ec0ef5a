package tlsf

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/rendergraph/memutils"
)

const (
	// MinimumAllocationSize is both the smallest block the pool will hand out and the alignment
	// every block offset is guaranteed to have
	MinimumAllocationSize = 256
	minimumShift          = 8

	secondLevelShift = 5
	// SecondLevelCount is the number of linear subdivisions of each first level size class
	SecondLevelCount = 1 << secondLevelShift
	// FirstLevelCount is the number of power-of-two size classes, starting at MinimumAllocationSize
	FirstLevelCount = 32 - minimumShift

	// MaxPoolSize is the largest arena a single pool can manage
	MaxPoolSize = math.MaxUint32 - (math.MaxUint32 % MinimumAllocationSize)
)

// MemoryPool is a two-level segregated fit allocator over a single fixed-size arena. It does not
// own any memory itself, it only hands out offsets and sizes. Allocate and Free are O(1).
//
// MemoryPool is not synchronized. Consumers that share a pool between goroutines must guard it.
type MemoryPool struct {
	blocks    []poolBlock
	freeSlots []uint32
	root      uint32

	totalSize       int
	usedSize        int
	allocCount      int
	blocksFreeCount int

	firstLevelBitmap  uint32
	secondLevelBitmap [FirstLevelCount]uint32
	freeMap           [FirstLevelCount][SecondLevelCount]uint32
}

var _ memutils.Validatable = &MemoryPool{}

// New creates a pool managing totalSize bytes. totalSize must be a multiple of MinimumAllocationSize
// no larger than MaxPoolSize.
func New(totalSize int) (*MemoryPool, error) {
	if totalSize < MinimumAllocationSize || totalSize > MaxPoolSize {
		return nil, errors.Newf("pool size %d is outside of the range [%d, %d]", totalSize, MinimumAllocationSize, MaxPoolSize)
	}
	if totalSize%MinimumAllocationSize != 0 {
		return nil, errors.Newf("pool size %d is not a multiple of %d", totalSize, MinimumAllocationSize)
	}

	p := &MemoryPool{
		totalSize: totalSize,
	}
	for fl := range p.freeMap {
		for sl := range p.freeMap[fl] {
			p.freeMap[fl][sl] = invalidIndex
		}
	}

	p.root = p.newBlock(0, totalSize)
	p.blocks[p.root].prevPhysical = p.root
	p.blocks[p.root].nextPhysical = p.root
	p.linkBlock(p.root)

	return p, nil
}

func (p *MemoryPool) TotalSize() int { return p.totalSize }

// UsedSize is the sum of the sizes of all live blocks, including the rounding up to MinimumAllocationSize
func (p *MemoryPool) UsedSize() int { return p.usedSize }

func (p *MemoryPool) FreeSize() int { return p.totalSize - p.usedSize }

func (p *MemoryPool) AllocationCount() int { return p.allocCount }

func (p *MemoryPool) IsEmpty() bool { return p.allocCount == 0 }

func sizeMapping(size int) (int, int) {
	if size < MinimumAllocationSize {
		panic(fmt.Sprintf("size %d is below the minimum allocation size", size))
	}

	firstLevel := memutils.Log2(size)
	secondLevel := (size >> (firstLevel - secondLevelShift)) &^ SecondLevelCount

	return firstLevel - minimumShift, secondLevel
}

func (p *MemoryPool) linkBlock(index uint32) {
	block := &p.blocks[index]
	if block.isFree {
		panic(fmt.Sprintf("block at offset %d is already free", block.offset))
	}
	if block.prevFree != invalidIndex || block.nextFree != invalidIndex {
		panic(fmt.Sprintf("block at offset %d still has free list links", block.offset))
	}
	block.isFree = true

	fl, sl := sizeMapping(block.size)
	block.nextFree = p.freeMap[fl][sl]
	p.freeMap[fl][sl] = index
	if block.nextFree != invalidIndex {
		p.blocks[block.nextFree].prevFree = index
	}

	p.firstLevelBitmap |= 1 << fl
	p.secondLevelBitmap[fl] |= 1 << sl
	p.blocksFreeCount++
}

func (p *MemoryPool) unlinkBlock(index uint32, fl, sl int) {
	block := &p.blocks[index]
	if !block.isFree {
		panic(fmt.Sprintf("block at offset %d is not free", block.offset))
	}

	prevFree := block.prevFree
	nextFree := block.nextFree
	if prevFree != invalidIndex {
		p.blocks[prevFree].nextFree = nextFree
	}
	if nextFree != invalidIndex {
		p.blocks[nextFree].prevFree = prevFree
	}

	block.isFree = false
	block.prevFree = invalidIndex
	block.nextFree = invalidIndex

	if p.freeMap[fl][sl] == index {
		p.freeMap[fl][sl] = nextFree

		if nextFree == invalidIndex {
			p.secondLevelBitmap[fl] &^= 1 << sl
			if p.secondLevelBitmap[fl] == 0 {
				p.firstLevelBitmap &^= 1 << fl
			}
		}
	} else if prevFree == invalidIndex {
		panic(fmt.Sprintf("block at offset %d was not in the free list at the expected location", block.offset))
	}

	p.blocksFreeCount--
}

// Allocate carves a block of at least size bytes whose offset is a multiple of alignment. The
// boolean result is false when no free block is large enough; that is not an error. An error is
// only returned for invalid arguments.
func (p *MemoryPool) Allocate(size int, alignment uint) (Block, bool, error) {
	if size < 1 {
		return Block{}, false, errors.Newf("invalid allocation size: %d", size)
	}
	if alignment == 0 {
		alignment = 1
	}
	err := memutils.CheckPow2(alignment, "alignment")
	if err != nil {
		return Block{}, false, err
	}
	if size > p.totalSize || alignment > uint(p.totalSize) {
		return Block{}, false, nil
	}

	size = max(size, MinimumAllocationSize)

	// Search for a class that fits the worst case of padding required to reach alignment
	searchSize := size + int(alignment) - 1
	if searchSize > p.totalSize {
		return Block{}, false, nil
	}

	// Round up to the next second level class so any block in it is large enough
	searchSize = memutils.AlignUp(searchSize, uint(1)<<(memutils.Log2(searchSize)-secondLevelShift))
	if searchSize > p.totalSize {
		return Block{}, false, nil
	}

	fl, sl := sizeMapping(searchSize)
	secondLevelMap := p.secondLevelBitmap[fl] & (math.MaxUint32 << sl)
	if secondLevelMap == 0 {
		// Nothing in this first level, check any larger one
		firstLevelMap := p.firstLevelBitmap & (math.MaxUint32 << (fl + 1))
		if firstLevelMap == 0 {
			return Block{}, false, nil
		}

		fl = bits.TrailingZeros32(firstLevelMap)
		secondLevelMap = p.secondLevelBitmap[fl]
		if secondLevelMap == 0 {
			panic("free bitmap is in an invalid state")
		}
	}
	sl = bits.TrailingZeros32(secondLevelMap)

	index := p.freeMap[fl][sl]
	if index == invalidIndex {
		panic(fmt.Sprintf("free list [%d][%d] was listed as having free blocks, but no blocks were in the free list", fl, sl))
	}
	if p.blocks[index].size < size {
		panic(fmt.Sprintf("block at offset %d is too small for an allocation of size %d", p.blocks[index].offset, size))
	}

	p.unlinkBlock(index, fl, sl)

	offset := p.blocks[index].offset
	padding := memutils.AlignUp(offset, alignment) - offset
	if padding > 0 {
		// Offsets are always multiples of the minimum size, so padding can be its own block
		if padding < MinimumAllocationSize {
			panic(fmt.Sprintf("alignment padding of %d bytes is below the minimum allocation size", padding))
		}

		prev := p.blocks[index].prevPhysical
		if p.blocks[prev].isFree {
			panic(fmt.Sprintf("free block at offset %d was not coalesced with its neighbour", p.blocks[prev].offset))
		}

		paddingIndex := p.newBlock(offset, padding)
		p.insertPhysicalBefore(index, paddingIndex)
		p.linkBlock(paddingIndex)

		p.blocks[index].offset += padding
		p.blocks[index].size -= padding
	}

	// Split off the remainder if it is large enough to be a block of its own
	alignedSize := memutils.AlignUp(size, MinimumAllocationSize)
	if p.blocks[index].size-alignedSize >= MinimumAllocationSize {
		remainderIndex := p.newBlock(p.blocks[index].offset+alignedSize, p.blocks[index].size-alignedSize)
		p.blocks[index].size = alignedSize
		p.insertPhysicalAfter(index, remainderIndex)
		p.linkBlock(remainderIndex)
	}

	block := &p.blocks[index]
	block.generation++
	p.usedSize += block.size
	p.allocCount++

	memutils.DebugValidate(p)

	return Block{
		Handle: makeHandle(index, block.generation),
		Offset: block.offset,
		Size:   block.size,
	}, true, nil
}

func (p *MemoryPool) resolve(handle BlockHandle) (uint32, error) {
	index := handle.index()
	if handle == NoBlock || int(index) >= len(p.blocks) {
		return invalidIndex, errors.Newf("received a handle that was incompatible with this pool: %s", handle)
	}

	block := &p.blocks[index]
	if !block.live || block.generation != handle.generation() || block.isFree {
		return invalidIndex, errors.Newf("block handle %s does not refer to a live allocation", handle)
	}

	return index, nil
}

// Block retrieves the current offset and size of a live allocation
func (p *MemoryPool) Block(handle BlockHandle) (Block, error) {
	index, err := p.resolve(handle)
	if err != nil {
		return Block{}, err
	}

	return Block{Handle: handle, Offset: p.blocks[index].offset, Size: p.blocks[index].size}, nil
}

// Free returns an allocation to the pool, coalescing it with any free physical neighbours. Freeing
// a handle twice, or a handle from another pool, returns an error.
func (p *MemoryPool) Free(handle BlockHandle) error {
	index, err := p.resolve(handle)
	if err != nil {
		return err
	}

	p.usedSize -= p.blocks[index].size
	p.allocCount--
	p.blocks[index].generation++

	// The offset checks stop coalescing across the wraparound of the circular list
	prev := p.blocks[index].prevPhysical
	if prev != index && p.blocks[prev].isFree && p.blocks[prev].offset < p.blocks[index].offset {
		fl, sl := sizeMapping(p.blocks[prev].size)
		p.unlinkBlock(prev, fl, sl)

		p.blocks[index].offset = p.blocks[prev].offset
		p.blocks[index].size += p.blocks[prev].size
		p.removePhysical(prev)

		if p.root == prev {
			p.root = index
		}
		p.releaseBlock(prev)
	}

	next := p.blocks[index].nextPhysical
	if next != index && p.blocks[next].isFree && p.blocks[next].offset > p.blocks[index].offset {
		if next == p.root {
			panic("the root block cannot follow another block")
		}
		fl, sl := sizeMapping(p.blocks[next].size)
		p.unlinkBlock(next, fl, sl)

		p.blocks[index].size += p.blocks[next].size
		p.removePhysical(next)
		p.releaseBlock(next)
	}

	p.linkBlock(index)

	memutils.DebugValidate(p)
	return nil
}

// LargestFreeBlockSize returns the size of the largest block in the highest populated size class,
// or 0 if the pool is full
func (p *MemoryPool) LargestFreeBlockSize() int {
	if p.firstLevelBitmap == 0 {
		return 0
	}

	fl := 31 - bits.LeadingZeros32(p.firstLevelBitmap)
	sl := 31 - bits.LeadingZeros32(p.secondLevelBitmap[fl])

	largest := 0
	for index := p.freeMap[fl][sl]; index != invalidIndex; index = p.blocks[index].nextFree {
		largest = max(largest, p.blocks[index].size)
	}
	return largest
}

// VisitAllRegions calls handleBlock for every allocation and free region in offset order. Free
// regions are reported with NoBlock as their handle.
func (p *MemoryPool) VisitAllRegions(handleBlock func(handle BlockHandle, offset int, size int, free bool) error) error {
	index := p.root
	for {
		block := &p.blocks[index]
		handle := NoBlock
		if !block.isFree {
			handle = makeHandle(index, block.generation)
		}

		err := handleBlock(handle, block.offset, block.size, block.isFree)
		if err != nil {
			return err
		}

		index = block.nextPhysical
		if index == p.root {
			return nil
		}
	}
}

func (p *MemoryPool) AddStatistics(stats *memutils.Statistics) {
	stats.BlockCount++
	stats.BlockBytes += p.totalSize
	stats.AllocationCount += p.allocCount
	stats.AllocationBytes += p.usedSize
}

func (p *MemoryPool) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	stats.BlockCount++
	stats.BlockBytes += p.totalSize

	_ = p.VisitAllRegions(func(handle BlockHandle, offset int, size int, free bool) error {
		if free {
			stats.AddUnusedRange(size)
		} else {
			stats.AddAllocation(size)
		}
		return nil
	})
}

// Validate walks every free list and the full physical list, checking that they agree with each
// other and with the pool's counters. It is expensive and intended for tests and debug builds.
func (p *MemoryPool) Validate() error {
	if p.blocks[p.root].offset != 0 {
		return errors.Errorf("the root block should have an offset of 0, but instead it has an offset of %d", p.blocks[p.root].offset)
	}

	freeSize := 0
	freeListCount := 0
	for fl := 0; fl < FirstLevelCount; fl++ {
		firstLevelEmpty := p.firstLevelBitmap&(1<<fl) == 0
		for sl := 0; sl < SecondLevelCount; sl++ {
			secondLevelEmpty := p.secondLevelBitmap[fl]&(1<<sl) == 0
			listEmpty := p.freeMap[fl][sl] == invalidIndex
			if secondLevelEmpty != listEmpty || (firstLevelEmpty && !secondLevelEmpty) {
				return errors.Errorf("size class [%d][%d] is inconsistent: first level empty %t, second level empty %t, list empty %t",
					fl, sl, firstLevelEmpty, secondLevelEmpty, listEmpty)
			}

			previous := invalidIndex
			for index := p.freeMap[fl][sl]; index != invalidIndex; index = p.blocks[index].nextFree {
				block := &p.blocks[index]
				if !block.live || !block.isFree {
					return errors.Errorf("block at offset %d is in the free list for class [%d][%d] but is not free", block.offset, fl, sl)
				}
				if block.prevFree != previous {
					return errors.Errorf("block at offset %d in class [%d][%d] has a broken previous free link", block.offset, fl, sl)
				}
				blockFl, blockSl := sizeMapping(block.size)
				if blockFl != fl || blockSl != sl {
					return errors.Errorf("block at offset %d with size %d belongs in class [%d][%d] but is in class [%d][%d]",
						block.offset, block.size, blockFl, blockSl, fl, sl)
				}

				freeSize += block.size
				freeListCount++
				previous = index
			}
		}
	}

	if p.usedSize+freeSize != p.totalSize {
		return errors.Errorf("used size (%d) + free size (%d) != total size (%d)", p.usedSize, freeSize, p.totalSize)
	}

	var allocCount, physicalFreeCount, calculatedSize int
	previous := invalidIndex
	index := p.root
	for {
		block := &p.blocks[index]
		if !block.live {
			return errors.Errorf("block at offset %d is in the physical list but its arena slot is not live", block.offset)
		}

		if previous != invalidIndex {
			prevBlock := &p.blocks[previous]
			if block.prevPhysical != previous {
				return errors.Errorf("block at offset %d has a broken previous physical link", block.offset)
			}
			if block.offset < prevBlock.offset+prevBlock.size {
				return errors.Errorf("block at [%d, %d] overlaps with previous block at [%d, %d]",
					block.offset, block.offset+block.size, prevBlock.offset, prevBlock.offset+prevBlock.size)
			}
			if block.offset != prevBlock.offset+prevBlock.size {
				return errors.Errorf("gap of size %d between blocks [%d, %d] and [%d, %d]",
					block.offset-(prevBlock.offset+prevBlock.size),
					prevBlock.offset, prevBlock.offset+prevBlock.size, block.offset, block.offset+block.size)
			}
			if block.isFree && prevBlock.isFree {
				return errors.Errorf("free blocks at offsets %d and %d were not coalesced", prevBlock.offset, block.offset)
			}
		}

		if block.size < MinimumAllocationSize {
			return errors.Errorf("block at offset %d has bad size %d", block.offset, block.size)
		}
		if block.offset%MinimumAllocationSize != 0 {
			return errors.Errorf("block at offset %d has bad alignment", block.offset)
		}

		calculatedSize += block.size
		if block.isFree {
			physicalFreeCount++
		} else {
			allocCount++
		}

		previous = index
		index = block.nextPhysical
		if index == p.root {
			break
		}
	}

	if calculatedSize != p.totalSize {
		return errors.Errorf("the total size of the pool is %d, but the blocks only added up to %d", p.totalSize, calculatedSize)
	}
	if physicalFreeCount != freeListCount || physicalFreeCount != p.blocksFreeCount {
		return errors.Errorf("the physical list has %d free blocks, the free lists have %d, and the pool counted %d",
			physicalFreeCount, freeListCount, p.blocksFreeCount)
	}
	if allocCount != p.allocCount {
		return errors.Errorf("the allocation count of the pool is %d, but the taken blocks only added up to %d", p.allocCount, allocCount)
	}

	return nil
}
