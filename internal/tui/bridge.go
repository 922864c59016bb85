package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/svccat/internal/controller"
)

// StateMsg carries a published controller state into the Bubble Tea program.
type StateMsg struct {
	State controller.State
}

// Subscriber is the part of the controller a Bridge listens to.
type Subscriber interface {
	Subscribe(fn func(controller.State)) func()
}

// Bridge forwards controller publications to a Bubble Tea program.
//
// Only the latest unread state is kept: a publication replaces one the program
// has not received yet, so the controller never blocks on the UI.
type Bridge struct {
	ch          chan controller.State
	done        chan struct{}
	once        sync.Once
	unsubscribe func()
}

// NewBridge subscribes to s.
func NewBridge(s Subscriber) *Bridge {
	b := &Bridge{
		ch:   make(chan controller.State, 1),
		done: make(chan struct{}),
	}
	b.unsubscribe = s.Subscribe(b.publish)
	return b
}

// publish runs on the controller's publishing goroutine. Publications are
// serialized by the controller, so the drain-and-send below has one writer.
func (b *Bridge) publish(s controller.State) {
	select {
	case b.ch <- s:
		return
	default:
	}
	select {
	case <-b.ch:
	default:
	}
	select {
	case b.ch <- s:
	default:
	}
}

// Next returns a command that waits for the next state. It yields nil once the
// bridge is closed.
func (b *Bridge) Next() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-b.ch:
			return StateMsg{State: s}
		case <-b.done:
			return nil
		}
	}
}

// Close unsubscribes and releases any waiting Next command.
func (b *Bridge) Close() {
	b.once.Do(func() {
		b.unsubscribe()
		close(b.done)
	})
}
