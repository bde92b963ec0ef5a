package tlsf

import "fmt"

const invalidIndex uint32 = ^uint32(0)

// BlockHandle identifies a single live allocation within a MemoryPool. The low 32 bits hold the
// arena slot and the high 32 bits hold the slot's generation, so a handle stops resolving as soon
// as its allocation is freed.
type BlockHandle uint64

// NoBlock is never returned from a successful allocation
const NoBlock BlockHandle = 0

func makeHandle(index uint32, generation uint32) BlockHandle {
	return BlockHandle(uint64(generation)<<32 | uint64(index))
}

func (h BlockHandle) index() uint32 {
	return uint32(h)
}

func (h BlockHandle) generation() uint32 {
	return uint32(h >> 32)
}

func (h BlockHandle) String() string {
	if h == NoBlock {
		return "NoBlock"
	}
	return fmt.Sprintf("%d#%d", h.index(), h.generation())
}

// Block describes a region of the pool's arena handed out by Allocate
type Block struct {
	Handle BlockHandle
	Offset int
	Size   int
}

// poolBlock is one node of the arena. Every live node is in the circular physical list, and free
// nodes are additionally in exactly one size-class free list.
type poolBlock struct {
	offset int
	size   int

	prevPhysical uint32
	nextPhysical uint32
	prevFree     uint32
	nextFree     uint32

	generation uint32
	isFree     bool
	live       bool
}

func (p *MemoryPool) newBlock(offset, size int) uint32 {
	var index uint32
	if len(p.freeSlots) > 0 {
		index = p.freeSlots[len(p.freeSlots)-1]
		p.freeSlots = p.freeSlots[:len(p.freeSlots)-1]
	} else {
		index = uint32(len(p.blocks))
		p.blocks = append(p.blocks, poolBlock{})
	}

	b := &p.blocks[index]
	if b.live {
		panic(fmt.Sprintf("arena slot %d was recycled while still live", index))
	}

	b.offset = offset
	b.size = size
	b.prevPhysical = invalidIndex
	b.nextPhysical = invalidIndex
	b.prevFree = invalidIndex
	b.nextFree = invalidIndex
	b.isFree = false
	b.live = true
	return index
}

func (p *MemoryPool) releaseBlock(index uint32) {
	b := &p.blocks[index]
	if b.isFree {
		panic(fmt.Sprintf("block at offset %d released while still linked into a free list", b.offset))
	}

	b.live = false
	b.generation++
	p.freeSlots = append(p.freeSlots, index)
}

// insertPhysicalBefore places newIndex directly before index in the physical list
func (p *MemoryPool) insertPhysicalBefore(index, newIndex uint32) {
	prev := p.blocks[index].prevPhysical
	p.blocks[newIndex].prevPhysical = prev
	p.blocks[newIndex].nextPhysical = index
	p.blocks[prev].nextPhysical = newIndex
	p.blocks[index].prevPhysical = newIndex
}

// insertPhysicalAfter places newIndex directly after index in the physical list
func (p *MemoryPool) insertPhysicalAfter(index, newIndex uint32) {
	next := p.blocks[index].nextPhysical
	p.blocks[newIndex].prevPhysical = index
	p.blocks[newIndex].nextPhysical = next
	p.blocks[next].prevPhysical = newIndex
	p.blocks[index].nextPhysical = newIndex
}

// removePhysical unlinks index from the physical list without touching its neighbours' ranges
func (p *MemoryPool) removePhysical(index uint32) {
	prev := p.blocks[index].prevPhysical
	next := p.blocks[index].nextPhysical
	p.blocks[prev].nextPhysical = next
	p.blocks[next].prevPhysical = prev
	p.blocks[index].prevPhysical = invalidIndex
	p.blocks[index].nextPhysical = invalidIndex
}
