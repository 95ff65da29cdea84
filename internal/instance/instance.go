// Package instance keeps one editor per user session. The first process
// listens on a unix socket; later processes hand their file to it and exit.
package instance

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"scribe/internal/errors"
	"scribe/internal/ipc"
	"scribe/internal/log"
)

// SocketName is the file name of the socket inside the runtime directory.
const SocketName = "scribe.sock"

const dialTimeout = 500 * time.Millisecond

// ErrAlreadyRunning is returned by Acquire when another process owns the
// socket. The launch file, if any, has been handed to that process.
var ErrAlreadyRunning = errors.New("scribe is already running")

// OpenFunc receives the paths forwarded by later processes.
type OpenFunc func(ctx context.Context, path string)

// Instance is the primary process's listener.
type Instance struct {
	path     string
	listener net.Listener

	mu     sync.Mutex
	peers  map[*ipc.Peer]struct{}
	closed bool
	wg     sync.WaitGroup
}

// RuntimeDir is where the socket lives: $XDG_RUNTIME_DIR, or the temp
// directory.
func RuntimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}

// Acquire makes this process the primary instance. If another process is
// already listening, launch (when not empty) is forwarded to it and
// ErrAlreadyRunning is returned.
func Acquire(ctx context.Context, dir, launch string) (*Instance, error) {
	path := filepath.Join(dir, SocketName)

	if conn, err := net.DialTimeout("unix", path, dialTimeout); err == nil {
		if launch != "" {
			if err := forward(ctx, conn, launch); err != nil {
				return nil, errors.Wrap(err, "forwarding file to running instance")
			}
		} else {
			_ = conn.Close()
		}
		return nil, ErrAlreadyRunning
	}

	// Nobody answered, so whatever is at path is stale.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "removing stale socket %s", path)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrapf(err, "creating runtime directory %s", dir)
	}
	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, errors.Wrapf(err, "listening on %s", path)
	}
	log.LogWithFields(log.F("socket", path)).Debug("Acquired single-instance socket")

	return &Instance{
		path:     path,
		listener: l,
		peers:    make(map[*ipc.Peer]struct{}),
	}, nil
}

func forward(ctx context.Context, conn net.Conn, launch string) error {
	if abs, err := filepath.Abs(launch); err == nil {
		launch = abs
	}

	peer := ipc.NewPeer("forward", ipc.NewStreamConn(conn, conn))
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	go func() { _ = peer.Serve(ctx) }()
	defer peer.Close()

	log.LogWithFields(log.F("path", launch)).Info("Handing file to running instance")
	return peer.Invoke(ctx, ipc.OpenPath, ipc.PathRequest{Path: launch}, nil)
}

// Path is the socket path.
func (i *Instance) Path() string {
	return i.path
}

// Serve accepts forwarded open-path requests until ctx is done or the
// instance is closed.
func (i *Instance) Serve(ctx context.Context, open OpenFunc) error {
	go func() {
		<-ctx.Done()
		_ = i.Close()
	}()

	for {
		conn, err := i.listener.Accept()
		if err != nil {
			i.mu.Lock()
			closed := i.closed
			i.mu.Unlock()
			if closed {
				return nil
			}
			return errors.Wrap(err, "accepting forwarded connection")
		}
		i.serveConn(ctx, conn, open)
	}
}

func (i *Instance) serveConn(ctx context.Context, conn net.Conn, open OpenFunc) {
	peer := ipc.NewPeer("instance", ipc.NewStreamConn(conn, conn))
	peer.Handle(ipc.OpenPath, func(ctx context.Context, req *ipc.Message) (interface{}, error) {
		var in ipc.PathRequest
		if err := req.Decode(&in); err != nil {
			return nil, err
		}
		if in.Path == "" {
			return nil, errors.NewFileError("empty path", "", errors.InvalidPath, nil)
		}
		log.LogWithFields(log.F("path", in.Path)).Info("Received file from another instance")
		open(ctx, in.Path)
		return nil, nil
	})

	i.mu.Lock()
	if i.closed {
		i.mu.Unlock()
		_ = peer.Close()
		return
	}
	i.peers[peer] = struct{}{}
	i.wg.Add(1)
	i.mu.Unlock()

	go func() {
		defer i.wg.Done()
		if err := peer.Serve(ctx); err != nil {
			log.LogWithError(err).Debug("Forwarding connection ended")
		}
		_ = peer.Close()
		i.mu.Lock()
		delete(i.peers, peer)
		i.mu.Unlock()
	}()
}

// Close stops listening, removes the socket and drops open connections.
func (i *Instance) Close() error {
	i.mu.Lock()
	if i.closed {
		i.mu.Unlock()
		return nil
	}
	i.closed = true
	peers := make([]*ipc.Peer, 0, len(i.peers))
	for p := range i.peers {
		peers = append(peers, p)
	}
	i.mu.Unlock()

	err := i.listener.Close()
	for _, p := range peers {
		_ = p.Close()
	}
	i.wg.Wait()
	return err
}
