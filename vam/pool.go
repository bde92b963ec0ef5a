package vam

import (
	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/rendergraph/memutils"
	"github.com/vkngwrapper/rendergraph/memutils/tlsf"
)

// devicePool is a single DeviceMemory sub-allocated by a TLSF pool
type devicePool struct {
	id     int
	memory core1_0.DeviceMemory
	pool   *tlsf.MemoryPool
}

func newDevicePool(id int, memory core1_0.DeviceMemory, size int) (*devicePool, error) {
	pool, err := tlsf.New(size)
	if err != nil {
		return nil, err
	}

	return &devicePool{
		id:     id,
		memory: memory,
		pool:   pool,
	}, nil
}

func (p *devicePool) Size() int { return p.pool.TotalSize() }

func (p *devicePool) IsEmpty() bool { return p.pool.IsEmpty() }

// allocate places an allocation in this pool. Requests that are at least as large as the pool, or that
// are aligned more strictly than PoolAlignmentLimit, are rejected so the caller can use dedicated memory.
func (p *devicePool) allocate(size int, alignment uint) (tlsf.Block, bool, error) {
	if size >= p.pool.TotalSize() || alignment > uint(PoolAlignmentLimit) {
		return tlsf.Block{}, false, nil
	}

	return p.pool.Allocate(size, alignment)
}

func (p *devicePool) free(handle tlsf.BlockHandle) error {
	return p.pool.Free(handle)
}

func (p *devicePool) Validate() error {
	err := p.pool.Validate()
	if err != nil {
		return errors.Wrapf(err, "pool %d", p.id)
	}
	return nil
}

func (p *devicePool) AddStatistics(stats *memutils.Statistics) {
	p.pool.AddStatistics(stats)
}

func (p *devicePool) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	p.pool.AddDetailedStatistics(stats)
}

func (p *devicePool) printDetailedMap(json *jwriter.ObjectState) {
	json.Name("ID").Int(p.id)
	p.pool.PrintDetailedMap(json)
}
