// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package command

// Queue is an ordered, append-only buffer of recorded commands, split into
// two channels: transfer commands (buffer copies, replayed before the render
// pass opens) and draw commands (replayed inside the pass).
//
// The queue performs no validation of command legality — a draw recorded
// before any vertex buffer is bound is appended all the same. Legality is
// the recorder's contract with the device, not the queue's.
//
// A Queue belongs to exactly one render pass and is never shared. It is not
// safe for concurrent use; recording is single-threaded by design.
type Queue struct {
	draw     []Command
	transfer []Command
}

// NewQueue creates an empty command queue.
func NewQueue() *Queue {
	return &Queue{}
}

// PushDraw appends a draw-channel command.
func (q *Queue) PushDraw(cmd Command) {
	q.draw = append(q.draw, cmd)
}

// PushTransfer appends a transfer-channel command.
func (q *Queue) PushTransfer(cmd Command) {
	q.transfer = append(q.transfer, cmd)
}

// Draw returns the draw channel in insertion order. The returned slice is
// the queue's backing storage; callers must not append to it.
func (q *Queue) Draw() []Command {
	return q.draw
}

// Transfer returns the transfer channel in insertion order. The returned
// slice is the queue's backing storage; callers must not append to it.
func (q *Queue) Transfer() []Command {
	return q.transfer
}

// Len returns the total number of recorded commands across both channels.
func (q *Queue) Len() int {
	return len(q.draw) + len(q.transfer)
}

// IsEmpty reports whether the queue holds no commands.
func (q *Queue) IsEmpty() bool {
	return len(q.draw) == 0 && len(q.transfer) == 0
}

// Clear drops all recorded commands. Command structs are zeroed before the
// slices are truncated so the queue does not pin GPU handles past replay
// when reused through a pool.
func (q *Queue) Clear() {
	clear(q.draw)
	clear(q.transfer)
	q.draw = q.draw[:0]
	q.transfer = q.transfer[:0]
}
