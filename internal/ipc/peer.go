package ipc

import (
	"context"
	"fmt"
	"sync"

	"scribe/internal/errors"
	"scribe/internal/log"

	"github.com/goccy/go-json"
)

// HandlerFunc answers a request. The returned value becomes the response
// payload; a returned error becomes the response error.
type HandlerFunc func(ctx context.Context, req *Message) (interface{}, error)

// EventFunc receives an event or notification.
type EventFunc func(ctx context.Context, ev *Message)

// Peer is one end of the host/view channel. Requests are served on their
// own goroutines; events are delivered one at a time in arrival order.
type Peer struct {
	name string
	conn Conn
	log  *log.Logger

	mu        sync.Mutex
	handlers  map[string]HandlerFunc
	listeners map[string][]EventFunc
	pending   map[string]chan *Message

	eventMu  sync.Mutex
	events   []*Message
	eventsCh chan struct{}

	done     chan struct{}
	doneOnce sync.Once
}

// NewPeer wraps conn. Serve must be running for Invoke to complete.
func NewPeer(name string, conn Conn) *Peer {
	return &Peer{
		name:      name,
		conn:      conn,
		log:       log.LogWithFields(log.F("peer", name)),
		handlers:  make(map[string]HandlerFunc),
		listeners: make(map[string][]EventFunc),
		pending:   make(map[string]chan *Message),
		eventsCh:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// Name identifies the peer in logs.
func (p *Peer) Name() string {
	return p.name
}

// Handle registers the handler for requests on channel, replacing any
// previous one.
func (p *Peer) Handle(channel string, h HandlerFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[channel] = h
}

// On subscribes fn to events on channel.
func (p *Peer) On(channel string, fn EventFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners[channel] = append(p.listeners[channel], fn)
}

// Invoke sends a request on channel and waits for its response, decoding
// the payload into resp when resp is non-nil.
func (p *Peer) Invoke(ctx context.Context, channel string, req, resp interface{}) error {
	m, err := NewMessage(TypeRequest, channel, req)
	if err != nil {
		return err
	}

	ch := make(chan *Message, 1)
	p.mu.Lock()
	p.pending[m.ID] = ch
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		delete(p.pending, m.ID)
		p.mu.Unlock()
	}()

	if err := p.conn.Send(ctx, m); err != nil {
		return err
	}

	select {
	case reply := <-ch:
		if err := reply.Err(); err != nil {
			return err
		}
		return reply.Decode(resp)
	case <-p.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Emit sends a fire-and-forget event on channel.
func (p *Peer) Emit(ctx context.Context, channel string, payload interface{}) error {
	m, err := NewMessage(TypeEvent, channel, payload)
	if err != nil {
		return err
	}
	return p.conn.Send(ctx, m)
}

// Serve reads messages until ctx is done or the connection closes. It
// returns nil on an orderly shutdown.
func (p *Peer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer p.doneOnce.Do(func() { close(p.done) })

	go p.eventLoop(ctx)

	for {
		m, err := p.conn.Recv(ctx)
		if err != nil {
			switch {
			case errors.KindOf(err) == errors.DecodeFailed:
				p.log.WithError(err).Warn("Dropping malformed message")
				continue
			case ctx.Err() != nil, errors.Is(err, ErrClosed):
				return nil
			}
			return err
		}
		p.dispatch(ctx, m)
	}
}

// Done is closed when Serve returns.
func (p *Peer) Done() <-chan struct{} {
	return p.done
}

// Close closes the underlying connection, which stops Serve.
func (p *Peer) Close() error {
	return p.conn.Close()
}

func (p *Peer) dispatch(ctx context.Context, m *Message) {
	switch m.Type {
	case TypeResponse:
		p.mu.Lock()
		ch, ok := p.pending[m.ID]
		p.mu.Unlock()
		if !ok {
			p.log.With(log.F("channel", m.Channel), log.F("id", m.ID)).Debug("Dropping response to unknown request")
			return
		}
		select {
		case ch <- m:
		default:
		}
	case TypeRequest:
		go p.serveRequest(ctx, m)
	case TypeEvent:
		p.eventMu.Lock()
		p.events = append(p.events, m)
		p.eventMu.Unlock()
		select {
		case p.eventsCh <- struct{}{}:
		default:
		}
	default:
		p.log.With(log.F("type", string(m.Type)), log.F("channel", m.Channel)).Warn("Dropping message of unknown type")
	}
}

func (p *Peer) serveRequest(ctx context.Context, m *Message) {
	p.mu.Lock()
	h, ok := p.handlers[m.Channel]
	p.mu.Unlock()

	reply := &Message{ID: m.ID, Type: TypeResponse, Channel: m.Channel}
	if !ok {
		reply.Error = fmt.Sprintf("unknown channel: %s", m.Channel)
		reply.Kind = errors.UnknownChannel
		p.log.With(log.F("channel", m.Channel)).Warn("Request on unknown channel")
	} else if result, err := h(ctx, m); err != nil {
		reply.Error = err.Error()
		reply.Kind = errors.KindOf(err)
		p.log.WithError(err).With(log.F("channel", m.Channel)).Debug("Request failed")
	} else if raw, err := encodePayload(m.Channel, result); err != nil {
		reply.Error = err.Error()
		reply.Kind = errors.EncodeFailed
	} else {
		if raw == nil {
			raw = json.RawMessage("null")
		}
		reply.Payload = raw
	}

	if err := p.conn.Send(ctx, reply); err != nil && ctx.Err() == nil {
		p.log.WithError(err).With(log.F("channel", m.Channel)).Warn("Cannot send response")
	}
}

func (p *Peer) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.eventsCh:
		}

		for {
			p.eventMu.Lock()
			if len(p.events) == 0 {
				p.eventMu.Unlock()
				break
			}
			ev := p.events[0]
			p.events = p.events[1:]
			p.eventMu.Unlock()

			p.mu.Lock()
			fns := append([]EventFunc(nil), p.listeners[ev.Channel]...)
			p.mu.Unlock()
			if len(fns) == 0 {
				p.log.With(log.F("channel", ev.Channel)).Debug("No listener for event")
			}
			for _, fn := range fns {
				fn(ctx, ev)
			}
		}
	}
}
