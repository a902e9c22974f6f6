package runtime

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type counterModel struct {
	n      int
	target int
	done   chan struct{}
}

type incMsg struct{}

func (m *counterModel) Init() Cmd { return nil }

func (m *counterModel) Update(msg Msg) (Model, Cmd) {
	if _, ok := msg.(incMsg); ok {
		m.n++
		if m.n >= m.target {
			close(m.done)
		}
	}
	return m, nil
}

func (m *counterModel) View() string { return "" }

func TestProgramDeliversSentMessages(t *testing.T) {
	m := &counterModel{target: 3, done: make(chan struct{})}
	var rendered int32
	p := NewProgram(m, func(Model) { atomic.AddInt32(&rendered, 1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	p.Send(incMsg{})
	p.Send(incMsg{})
	p.Send(incMsg{})

	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for model to reach target")
	}
	if atomic.LoadInt32(&rendered) == 0 {
		t.Fatal("expected render callback to fire")
	}
}

type cmdModel struct {
	result chan Msg
}

type taskDoneMsg struct{ value int }

func (m *cmdModel) Init() Cmd {
	return func(ctx context.Context) Msg {
		return taskDoneMsg{value: 42}
	}
}

func (m *cmdModel) Update(msg Msg) (Model, Cmd) {
	if d, ok := msg.(taskDoneMsg); ok {
		m.result <- d
	}
	return m, nil
}

func (m *cmdModel) View() string { return "" }

func TestInitCmdResultReachesUpdate(t *testing.T) {
	m := &cmdModel{result: make(chan Msg, 1)}
	p := NewProgram(m, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	select {
	case msg := <-m.result:
		d := msg.(taskDoneMsg)
		if d.value != 42 {
			t.Fatalf("got %d", d.value)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for init cmd result")
	}
}

func TestSubscriptionFeedsMessages(t *testing.T) {
	m := &counterModel{target: 1, done: make(chan struct{})}
	p := NewProgram(m, nil)
	p.Subscribe(func(ctx context.Context, emit func(Msg)) {
		emit(incMsg{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for subscription message")
	}
}

func TestBatchRunsAllCommands(t *testing.T) {
	m := &counterModel{target: 2, done: make(chan struct{})}
	p := NewProgram(m, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	p.dispatchCmd(ctx, Batch(
		func(ctx context.Context) Msg { return incMsg{} },
		func(ctx context.Context) Msg { return incMsg{} },
	))

	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for batched commands")
	}
}
