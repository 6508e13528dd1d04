// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

import "sync"

// QueuePool manages a pool of reusable Queue objects. A frame with several
// render passes allocates one queue per pass; after warmup the pool serves
// them without allocating.
//
// Usage:
//
//	pool := NewQueuePool()
//	q := pool.Get()
//	defer pool.Put(q)
//	// record into q...
type QueuePool struct {
	pool sync.Pool
}

// NewQueuePool creates a new queue pool.
func NewQueuePool() *QueuePool {
	return &QueuePool{
		pool: sync.Pool{
			New: func() any {
				return NewQueue()
			},
		},
	}
}

// Get retrieves a queue from the pool. The queue is cleared and ready
// for recording.
func (p *QueuePool) Get() *Queue {
	q := p.pool.Get().(*Queue)
	q.Clear()
	return q
}

// Put returns a queue to the pool for reuse. The queue is cleared
// immediately so it does not pin GPU handles while pooled.
func (p *QueuePool) Put(q *Queue) {
	if q == nil {
		return
	}
	q.Clear()
	p.pool.Put(q)
}

// Warmup pre-allocates queues to avoid allocation during the frame loop.
func (p *QueuePool) Warmup(count int) {
	queues := make([]*Queue, count)
	for i := 0; i < count; i++ {
		queues[i] = p.Get()
	}
	for i := 0; i < count; i++ {
		p.Put(queues[i])
	}
}

// DefaultPool is a global queue pool for convenience.
var DefaultPool = NewQueuePool()

// GetQueue retrieves a queue from the default pool.
func GetQueue() *Queue {
	return DefaultPool.Get()
}

// PutQueue returns a queue to the default pool.
func PutQueue(q *Queue) {
	DefaultPool.Put(q)
}
