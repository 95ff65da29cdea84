// Package shell wires a host and a view together over an in-memory ipc
// pipe. Front-ends supply the widgets and dialogs; the shell owns the
// persisted stores and the goroutines serving both peers.
package shell

import (
	"context"
	"sync"

	"scribe/internal/config"
	"scribe/internal/host"
	"scribe/internal/ipc"
	"scribe/internal/log"
	"scribe/internal/recent"
	"scribe/internal/store"
	"scribe/internal/view"
	"scribe/internal/watch"
)

// Frontend is what a GUI or terminal front-end provides.
type Frontend struct {
	Dialogs host.Dialogs
	Menu    host.Menu
	Editor  view.Editor
	Status  view.StatusBar
	Confirm view.Confirmer
	// Quit ends the front-end's event loop.
	Quit func()
}

// Stores are the persisted documents shared by the host.
type Stores struct {
	Recent      *recent.Manager
	Preferences *store.Preferences
	Mappings    *store.FormatMappings
}

// OpenStores loads the three documents from the configured data directory.
// Missing or corrupt documents load empty.
func OpenStores(cfg *config.Config) Stores {
	paths := cfg.Paths()
	return Stores{
		Recent:      recent.Open(paths.RecentFiles),
		Preferences: store.OpenPreferences(paths.Preferences),
		Mappings:    store.OpenFormatMappings(paths.FormatMappings),
	}
}

// Shell is a running host/view pair.
type Shell struct {
	Host *host.Host
	View *view.Controller

	hostPeer *ipc.Peer
	viewPeer *ipc.Peer
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	once     sync.Once
}

// Start connects a host and a view and announces the view as ready, so a
// launch file set afterwards opens at once.
func Start(ctx context.Context, cfg *config.Config, stores Stores, fe Frontend) (*Shell, error) {
	ctx, cancel := context.WithCancel(ctx)

	hostConn, viewConn := ipc.Pipe()
	s := &Shell{
		hostPeer: ipc.NewPeer("host", hostConn),
		viewPeer: ipc.NewPeer("view", viewConn),
		cancel:   cancel,
	}

	var watcher *watch.Watcher
	if cfg.Watch.Enabled {
		w, err := watch.New()
		if err != nil {
			log.LogWithError(err).Warn("File watching disabled")
		} else {
			watcher = w
		}
	}

	s.Host = host.New(s.hostPeer, host.Options{
		Dialogs:     fe.Dialogs,
		Menu:        fe.Menu,
		Recent:      stores.Recent,
		Preferences: stores.Preferences,
		Mappings:    stores.Mappings,
		Watcher:     watcher,
		Quit:        fe.Quit,
	})
	s.View = view.NewController(fe.Editor, fe.Status, fe.Confirm)

	for _, p := range []*ipc.Peer{s.hostPeer, s.viewPeer} {
		s.wg.Add(1)
		go func(p *ipc.Peer) {
			defer s.wg.Done()
			if err := p.Serve(ctx); err != nil {
				log.LogWithFields(log.F("peer", p.Name()), log.F("error", err)).Warn("Peer stopped")
			}
		}(p)
	}

	if err := s.Host.Start(ctx); err != nil {
		log.LogWithError(err).Warn("File watching disabled")
	}
	if err := s.View.Bind(ctx, s.viewPeer); err != nil {
		s.Close()
		return nil, err
	}

	log.Debug("Shell started")
	return s, nil
}

// Close stops both peers and the host's watcher.
func (s *Shell) Close() {
	s.once.Do(func() {
		s.Host.Close()
		s.cancel()
		_ = s.hostPeer.Close()
		_ = s.viewPeer.Close()
		s.wg.Wait()
	})
}
