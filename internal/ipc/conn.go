package ipc

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"sync"

	"scribe/internal/errors"

	"github.com/goccy/go-json"
)

// ErrClosed is returned by Send and Recv once a Conn has been closed.
var ErrClosed = errors.NewProtocolError("connection closed", "", errors.TransportClosed, nil)

// Conn carries Messages between two peers.
type Conn interface {
	Send(ctx context.Context, m *Message) error
	Recv(ctx context.Context) (*Message, error)
	Close() error
}

const pipeBuffer = 32

type pipeConn struct {
	in     <-chan *Message
	out    chan<- *Message
	closed chan struct{}
	once   *sync.Once
}

// Pipe returns two connected in-memory Conns. Closing either end closes both.
func Pipe() (Conn, Conn) {
	ab := make(chan *Message, pipeBuffer)
	ba := make(chan *Message, pipeBuffer)
	closed := make(chan struct{})
	once := &sync.Once{}

	a := &pipeConn{in: ba, out: ab, closed: closed, once: once}
	b := &pipeConn{in: ab, out: ba, closed: closed, once: once}
	return a, b
}

func (p *pipeConn) Send(ctx context.Context, m *Message) error {
	select {
	case <-p.closed:
		return ErrClosed
	default:
	}
	select {
	case p.out <- m.clone():
		return nil
	case <-p.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pipeConn) Recv(ctx context.Context) (*Message, error) {
	select {
	case m := <-p.in:
		return m, nil
	case <-p.closed:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *pipeConn) Close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

type received struct {
	msg *Message
	err error
}

// StreamConn frames Messages as JSON lines over a byte stream, such as a
// unix socket or a child process's stdio.
type StreamConn struct {
	w       io.Writer
	writeMu sync.Mutex

	incoming chan received
	readDone chan struct{}
	readErr  error
	closed   chan struct{}
	once     sync.Once
	closers  []io.Closer
}

// NewStreamConn reads frames from r and writes frames to w. If r or w
// implement io.Closer they are closed by Close.
func NewStreamConn(r io.Reader, w io.Writer) *StreamConn {
	c := &StreamConn{
		w:        w,
		incoming: make(chan received),
		readDone: make(chan struct{}),
		closed:   make(chan struct{}),
	}
	if rc, ok := r.(io.Closer); ok {
		c.closers = append(c.closers, rc)
	}
	if wc, ok := w.(io.Closer); ok && any(w) != any(r) {
		c.closers = append(c.closers, wc)
	}
	go c.readLoop(bufio.NewReader(r))
	return c
}

func (c *StreamConn) readLoop(r *bufio.Reader) {
	defer close(c.readDone)
	for {
		line, err := r.ReadBytes('\n')
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			var m Message
			res := received{msg: &m}
			if derr := json.Unmarshal(line, &m); derr != nil {
				res = received{err: errors.NewProtocolError("malformed frame", "", errors.DecodeFailed, derr)}
			}
			if !c.deliver(res) {
				c.readErr = ErrClosed
				return
			}
		}
		if err != nil {
			if err == io.EOF {
				err = ErrClosed
			}
			c.readErr = err
			return
		}
	}
}

func (c *StreamConn) deliver(res received) bool {
	select {
	case c.incoming <- res:
		return true
	case <-c.closed:
		return false
	}
}

// Send writes m as a single line.
func (c *StreamConn) Send(ctx context.Context, m *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}

	data, err := json.Marshal(m)
	if err != nil {
		return errors.NewProtocolError("cannot encode frame", m.Channel, errors.EncodeFailed, err)
	}
	data = append(data, '\n')

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if _, err := c.w.Write(data); err != nil {
		return errors.NewProtocolError("cannot write frame", m.Channel, errors.TransportClosed, err)
	}
	return nil
}

// Recv returns the next frame. A frame that is not valid JSON is reported
// as an error without closing the connection.
func (c *StreamConn) Recv(ctx context.Context) (*Message, error) {
	select {
	case <-c.closed:
		return nil, ErrClosed
	default:
	}
	select {
	case res := <-c.incoming:
		return res.msg, res.err
	case <-c.readDone:
		return nil, c.readErr
	case <-c.closed:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the connection and closes the underlying stream.
func (c *StreamConn) Close() error {
	var firstErr error
	c.once.Do(func() {
		close(c.closed)
		for _, cl := range c.closers {
			if err := cl.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	})
	return firstErr
}
