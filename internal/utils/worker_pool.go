package utils

import "fmt"

// WorkerPool hands out reusable scratch objects, one free list per worker. A worker index must only
// be used by one goroutine at a time, which is what lets Get and Put skip locking entirely.
type WorkerPool[T any] struct {
	newItem func() T
	reset   func(T)
	free    [][]T
}

// NewWorkerPool creates a pool for the given number of workers. newItem builds a fresh object when a
// worker's free list is empty, and reset, if non-nil, is applied to every object passed to Put.
func NewWorkerPool[T any](workers int, newItem func() T, reset func(T)) *WorkerPool[T] {
	if workers < 1 {
		panic(fmt.Sprintf("worker pool requires at least one worker, got %d", workers))
	}
	if newItem == nil {
		panic("worker pool requires a constructor")
	}

	return &WorkerPool[T]{
		newItem: newItem,
		reset:   reset,
		free:    make([][]T, workers),
	}
}

func (p *WorkerPool[T]) Workers() int {
	return len(p.free)
}

func (p *WorkerPool[T]) checkWorker(worker int) {
	if worker < 0 || worker >= len(p.free) {
		panic(fmt.Sprintf("worker index %d is outside of the range [0, %d)", worker, len(p.free)))
	}
}

// Get retrieves an object from worker's free list, creating one if the list is empty
func (p *WorkerPool[T]) Get(worker int) T {
	p.checkWorker(worker)

	list := p.free[worker]
	if len(list) == 0 {
		return p.newItem()
	}

	item := list[len(list)-1]
	p.free[worker] = list[:len(list)-1]
	return item
}

// Put returns an object to worker's free list
func (p *WorkerPool[T]) Put(worker int, item T) {
	p.checkWorker(worker)

	if p.reset != nil {
		p.reset(item)
	}
	p.free[worker] = append(p.free[worker], item)
}

// Idle returns the number of objects waiting in worker's free list
func (p *WorkerPool[T]) Idle(worker int) int {
	p.checkWorker(worker)
	return len(p.free[worker])
}
