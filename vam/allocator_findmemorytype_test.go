package vam

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/rendergraph/memutils"
	"go.uber.org/mock/gomock"
)

var memoryTypeIndexTestCases = map[string]struct {
	MemoryTypeBits uint32
	Flags          MemoryFlags

	ExpectedIndex int
	ExpectedError error
}{
	"DeviceLocal": {
		MemoryTypeBits: 0xffffffff,
		Flags:          0,
		ExpectedIndex:  0,
	},
	"DeviceLocalPrefersNotHostVisible": {
		MemoryTypeBits: 0b1110,
		Flags:          MemoryPreferDedicated,
		ExpectedIndex:  3,
	},
	"Readback": {
		MemoryTypeBits: 0xffffffff,
		Flags:          MemoryHostRandomAccess,
		ExpectedIndex:  2,
	},
	"SequentialWrite": {
		MemoryTypeBits: 0xffffffff,
		Flags:          MemoryHostSequentialWrite,
		ExpectedIndex:  3,
	},
	"Staging": {
		MemoryTypeBits: 0xffffffff,
		Flags:          MemoryHostSequentialWrite | MemoryStaging,
		ExpectedIndex:  1,
	},
	"StagingWithoutPlainHostMemory": {
		MemoryTypeBits: 0b1100,
		Flags:          MemoryHostSequentialWrite | MemoryStaging,
		ExpectedIndex:  2,
	},
	"NoDeviceLocalInBits": {
		MemoryTypeBits: 0b0110,
		Flags:          0,
		ExpectedIndex:  -1,
		ExpectedError:  memutils.ErrOutOfMemory,
	},
	"BitsOutOfRange": {
		MemoryTypeBits: 0b110000,
		Flags:          MemoryHostRandomAccess,
		ExpectedIndex:  -1,
		ExpectedError:  memutils.ErrOutOfMemory,
	},
}

func TestFindMemoryTypeIndex(t *testing.T) {
	for testName, testCase := range memoryTypeIndexTestCases {
		t.Run(testName, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			_, allocator := readyAllocator(t, ctrl, AllocatorSetup{
				MemoryTypes: []core1_0.MemoryType{
					{
						PropertyFlags: core1_0.MemoryPropertyDeviceLocal,
						HeapIndex:     0,
					},
					{
						PropertyFlags: core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent,
						HeapIndex:     1,
					},
					{
						PropertyFlags: core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent |
							core1_0.MemoryPropertyHostCached,
						HeapIndex: 1,
					},
					{
						PropertyFlags: core1_0.MemoryPropertyDeviceLocal | core1_0.MemoryPropertyHostVisible |
							core1_0.MemoryPropertyHostCoherent,
						HeapIndex: 0,
					},
				},
				MemoryHeaps: []core1_0.MemoryHeap{
					{
						Size:  256 * 1024 * 1024,
						Flags: core1_0.MemoryHeapDeviceLocal,
					},
					{
						Size:  1024 * 1024 * 1024,
						Flags: 0,
					},
				},
			})

			index, err := allocator.FindMemoryTypeIndex(testCase.MemoryTypeBits, testCase.Flags)
			if testCase.ExpectedError != nil {
				require.ErrorIs(t, err, testCase.ExpectedError)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, testCase.ExpectedIndex, index)
		})
	}
}
