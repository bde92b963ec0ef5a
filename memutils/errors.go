package memutils

import "github.com/pkg/errors"

// PowerOfTwoError is the error returned from CheckPow2 or other methods if the number being tested is not a power of two
var PowerOfTwoError error = errors.New("number must be a power of two")

// ErrOutOfMemory is wrapped by allocators when no pool, new pool, or dedicated allocation could satisfy a request
var ErrOutOfMemory error = errors.New("out of device memory")
