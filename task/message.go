package task

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidMessageType = errors.New("task: invalid message type")
	ErrQueueFull          = errors.New("task: message queue full")
)

// MessageType identifies a message. Applications define their own types
// starting at UserMessage.
type MessageType uint8

const (
	TimerMessage MessageType = iota // sent by the task itself every period
	UserMessage
)

// Message is sent to a MessageTask. Param and Data are free for the sender
// to use.
type Message struct {
	Type  MessageType
	Param uint32
	Data  any
}

// Handler processes one message.
type Handler func(ctx context.Context, msg Message) error

// MessageTask is a task that waits for messages and passes them to the
// handler registered for their type. If a period is set, it also sends itself
// a TimerMessage every period.
type MessageTask struct {
	queue    chan Message
	period   time.Duration
	ticker   *time.Ticker
	handlers map[MessageType]Handler
	setup    func(ctx context.Context) error
}

// NewMessageTask returns a task with a queue of the given size. A zero period
// disables timer messages.
func NewMessageTask(size int, period time.Duration) *MessageTask {
	return &MessageTask{
		queue:    make(chan Message, size),
		period:   period,
		handlers: make(map[MessageType]Handler),
	}
}

// Handle registers the handler for a message type. It must be called before
// the task is started.
func (t *MessageTask) Handle(typ MessageType, h Handler) {
	t.handlers[typ] = h
}

// OnSetup sets a function that is called from Setup.
func (t *MessageTask) OnSetup(fn func(ctx context.Context) error) {
	t.setup = fn
}

// Send queues a message without waiting. It returns ErrQueueFull if there is
// no room, and ErrInvalidMessageType if there is no handler for the message.
func (t *MessageTask) Send(msg Message) error {
	if _, ok := t.handlers[msg.Type]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidMessageType, msg.Type)
	}
	select {
	case t.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// SendWait queues a message, waiting for room in the queue until the context
// is done.
func (t *MessageTask) SendWait(ctx context.Context, msg Message) error {
	if _, ok := t.handlers[msg.Type]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidMessageType, msg.Type)
	}
	select {
	case t.queue <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *MessageTask) Setup(ctx context.Context) error {
	if t.period > 0 {
		if _, ok := t.handlers[TimerMessage]; !ok {
			return fmt.Errorf("%w: timer set without timer handler", ErrInvalidMessageType)
		}
		t.ticker = time.NewTicker(t.period)
	}
	if t.setup != nil {
		return t.setup(ctx)
	}
	return nil
}

// Loop handles one message.
func (t *MessageTask) Loop(ctx context.Context) error {
	var tick <-chan time.Time
	if t.ticker != nil {
		tick = t.ticker.C
	}
	var msg Message
	select {
	case <-ctx.Done():
		if t.ticker != nil {
			t.ticker.Stop()
		}
		return ctx.Err()
	case msg = <-t.queue:
	case <-tick:
		msg = Message{Type: TimerMessage}
	}
	return t.handlers[msg.Type](ctx, msg)
}
