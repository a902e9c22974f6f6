// Package runtime is the Elm-architecture half of the TUI core: a Model
// holds all application state, Update folds an incoming Msg into a new
// Model plus zero or more Cmds to run, and View renders the result. Cmds
// that do blocking work (Cmd::Task equivalents — network calls, disk
// reads) run on a bounded worker pool built on golang.org/x/sync so a
// runaway command fan-out can't spawn unbounded goroutines against a
// terminal that can only ever show one frame at a time.
package runtime

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Msg is anything that can be delivered to Update. The zero Msg value,
// Msg(nil), is never dispatched.
type Msg any

// Model is the full, owned application state.
type Model interface {
	Init() Cmd
	Update(Msg) (Model, Cmd)
	View() string
}

// Cmd is a deferred side effect: a function the Program runs on the worker
// pool, whose return value (if non-nil) is fed back into Update as a Msg.
// A nil Cmd performs no work.
type Cmd func(ctx context.Context) Msg

// Batch runs every cmd concurrently and funnels each result back through
// Update as an independent Msg, the way a Cmd::Task launches several
// parallel tasks and reports them as they complete rather than waiting for
// all of them.
func Batch(cmds ...Cmd) Cmd {
	live := make([]Cmd, 0, len(cmds))
	for _, c := range cmds {
		if c != nil {
			live = append(live, c)
		}
	}
	if len(live) == 0 {
		return nil
	}
	return func(ctx context.Context) Msg {
		return batchMsg(live)
	}
}

// batchMsg is recognized specially by Program.runOne to fan a Batch
// out across the worker pool instead of running it as one opaque command.
type batchMsg []Cmd

// Subscription is a long-lived source of Msgs (a timer tick, a file
// watcher, a background poller) that runs for the Program's whole
// lifetime, emitting onto a bounded channel so a fast subscription can
// never unboundedly outrun Update.
type Subscription func(ctx context.Context, emit func(Msg))

// Program drives a Model: it owns the worker pool that runs Cmds and the
// message queue that serializes their results (and Subscription output)
// back into Update, one Msg at a time, so Update itself never needs to be
// concurrency-safe.
type Program struct {
	model Model

	msgQueue chan Msg
	sem      *semaphore.Weighted

	subs []Subscription

	renderFn func(Model)
}

// DefaultWorkerCapacity bounds how many Cmds may run concurrently.
const DefaultWorkerCapacity = 8

// DefaultQueueCapacity bounds how many pending Msgs may queue up before a
// Subscription's emit blocks (backpressure instead of unbounded growth).
const DefaultQueueCapacity = 256

// NewProgram creates a Program around the given initial model. render is
// called after every Update with the new model, so the caller can draw it
// (typically into a Buffer via the model's View()).
func NewProgram(model Model, render func(Model)) *Program {
	return &Program{
		model:    model,
		msgQueue: make(chan Msg, DefaultQueueCapacity),
		sem:      semaphore.NewWeighted(DefaultWorkerCapacity),
		renderFn: render,
	}
}

// Subscribe registers a long-lived Subscription, started when Run begins.
func (p *Program) Subscribe(s Subscription) {
	p.subs = append(p.subs, s)
}

// Send enqueues msg for delivery to Update on the next loop iteration.
// Safe to call from any goroutine (e.g. an input reader).
func (p *Program) Send(msg Msg) {
	if msg == nil {
		return
	}
	p.msgQueue <- msg
}

// Run starts all subscriptions, dispatches the model's initial Cmd, and
// then loops delivering Msgs to Update until ctx is canceled.
func (p *Program) Run(ctx context.Context) {
	for _, sub := range p.subs {
		sub := sub
		go sub(ctx, p.Send)
	}

	if cmd := p.model.Init(); cmd != nil {
		p.dispatchCmd(ctx, cmd)
	}
	if p.renderFn != nil {
		p.renderFn(p.model)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-p.msgQueue:
			var cmd Cmd
			p.model, cmd = p.model.Update(msg)
			if cmd != nil {
				p.dispatchCmd(ctx, cmd)
			}
			if p.renderFn != nil {
				p.renderFn(p.model)
			}
		}
	}
}

// dispatchCmd runs cmd on the worker pool (expanding a Batch into its
// constituent Cmds, each scheduled independently), feeding its result back
// through Send once it completes. Acquiring the semaphore blocks the
// caller (the Run loop) only until a slot frees, bounding how far ahead of
// the render loop the worker pool can get.
func (p *Program) dispatchCmd(ctx context.Context, cmd Cmd) {
	p.runOne(ctx, cmd)
}

func (p *Program) runOne(ctx context.Context, cmd Cmd) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return
	}
	go func() {
		defer p.sem.Release(1)
		msg := cmd(ctx)
		if batch, ok := msg.(batchMsg); ok {
			for _, sub := range batch {
				p.runOne(ctx, sub)
			}
			return
		}
		if msg != nil {
			select {
			case p.msgQueue <- msg:
			case <-ctx.Done():
			}
		}
	}()
}
