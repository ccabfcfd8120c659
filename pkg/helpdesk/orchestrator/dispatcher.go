package orchestrator

import (
	"context"
	"sync"

	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/pkg/logger"
)

// Handler consumes one inbound message. Satisfied by *Orchestrator.
type Handler interface {
	Handle(ctx context.Context, msg dto.IncomingMessage)
}

type mailbox struct {
	queue   []dto.IncomingMessage
	running bool
}

// Dispatcher serializes message handling per identity while letting distinct
// identities proceed concurrently. The webhook handler calls Dispatch and
// returns immediately; a drain goroutine works each identity's queue in
// arrival order.
type Dispatcher struct {
	handler Handler
	logger  logger.ILogger

	baseCtx context.Context

	mu        sync.Mutex
	mailboxes map[string]*mailbox
	wg        sync.WaitGroup
}

// NewDispatcher creates a dispatcher whose drain goroutines run under baseCtx.
// Cancelling baseCtx stops in-flight collaborator calls; queued messages still
// drain (their handlers fail fast on the dead context).
func NewDispatcher(baseCtx context.Context, handler Handler, log logger.ILogger) *Dispatcher {
	return &Dispatcher{
		handler:   handler,
		logger:    log,
		baseCtx:   baseCtx,
		mailboxes: make(map[string]*mailbox),
	}
}

// Dispatch enqueues a message for its identity and starts a drain goroutine if
// none is running. Never blocks on handler work.
func (d *Dispatcher) Dispatch(msg dto.IncomingMessage) {
	if msg.Identity == "" {
		d.logger.Warn("DISPATCHER", "Dropping message without identity", nil)
		return
	}

	d.mu.Lock()
	mb, ok := d.mailboxes[msg.Identity]
	if !ok {
		mb = &mailbox{}
		d.mailboxes[msg.Identity] = mb
	}
	mb.queue = append(mb.queue, msg)
	start := !mb.running
	if start {
		mb.running = true
		d.wg.Add(1)
	}
	d.mu.Unlock()

	if start {
		go d.drain(msg.Identity, mb)
	}
}

// drain processes the identity's queue to exhaustion, then parks. The running
// flag flips back under the same lock that guards the queue, so a message
// enqueued during the final check is never stranded.
func (d *Dispatcher) drain(identity string, mb *mailbox) {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		if len(mb.queue) == 0 {
			mb.running = false
			d.mu.Unlock()
			return
		}
		msg := mb.queue[0]
		mb.queue = mb.queue[1:]
		d.mu.Unlock()

		d.handler.Handle(d.baseCtx, msg)
	}
}

// Wait blocks until every drain goroutine has parked. Used on shutdown after
// the webhook stops accepting traffic.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
