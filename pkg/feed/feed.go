// Package feed pushes board status to websocket clients.
package feed

import (
	"context"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/up2stream/pkg/framework"
	"github.com/robotalks/up2stream/pkg/up2stream"
)

// Snapshot is the JSON message sent to clients.
type Snapshot struct {
	Source    string `json:"source"`
	Mute      bool   `json:"mute"`
	Volume    int    `json:"volume"`
	Treble    int    `json:"treble"`
	Bass      int    `json:"bass"`
	Net       bool   `json:"net"`
	Internet  bool   `json:"internet"`
	Playing   bool   `json:"playing"`
	LED       bool   `json:"led"`
	Upgrading bool   `json:"upgrading"`
}

// NewSnapshot converts st.
func NewSnapshot(st up2stream.Status) Snapshot {
	return Snapshot{
		Source:    string(st.Source),
		Mute:      st.Mute,
		Volume:    int(st.Volume),
		Treble:    int(st.Treble),
		Bass:      int(st.Bass),
		Net:       st.Net,
		Internet:  st.Internet,
		Playing:   st.Playing,
		LED:       st.LED,
		Upgrading: st.Upgrading,
	}
}

// Feed broadcasts status to connected clients. A client joining late
// receives the last status first. Slow clients only get the latest one.
type Feed struct {
	lock    sync.Mutex
	clients map[chan up2stream.Status]struct{}
	last    *up2stream.Status
}

// New creates a Feed.
func New() *Feed {
	return &Feed{clients: make(map[chan up2stream.Status]struct{})}
}

// Publish sends st to all clients.
func (f *Feed) Publish(st up2stream.Status) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.last = &st
	for ch := range f.clients {
		deliver(ch, st)
	}
}

func deliver(ch chan up2stream.Status, st up2stream.Status) {
	select {
	case <-ch:
	default:
	}
	ch <- st
}

// Clients returns the number of connected clients.
func (f *Feed) Clients() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.clients)
}

// Handler returns the websocket handler.
func (f *Feed) Handler() http.Handler {
	return websocket.Handler(f.serve)
}

func (f *Feed) serve(conn *websocket.Conn) {
	ch := make(chan up2stream.Status, 1)
	f.lock.Lock()
	f.clients[ch] = struct{}{}
	if f.last != nil {
		deliver(ch, *f.last)
	}
	f.lock.Unlock()
	defer func() {
		f.lock.Lock()
		delete(f.clients, ch)
		f.lock.Unlock()
	}()

	glog.V(1).Infof("feed client %s connected", conn.Request().RemoteAddr)
	done := make(chan struct{})
	go func() {
		var msg []byte
		for websocket.Message.Receive(conn, &msg) == nil {
		}
		close(done)
	}()
	for {
		select {
		case <-done:
			glog.V(1).Infof("feed client %s disconnected", conn.Request().RemoteAddr)
			return
		case st := <-ch:
			if err := websocket.JSON.Send(conn, NewSnapshot(st)); err != nil {
				glog.Warningf("feed client %s: %v", conn.Request().RemoteAddr, err)
				return
			}
		}
	}
}

// Server serves the feed at /status.
type Server struct {
	Addr string
	Feed *Feed
}

// Run implements framework.Runnable.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/status", s.Feed.Handler())
	server := &http.Server{Addr: s.Addr, Handler: mux}
	glog.Infof("feed listening on %s", s.Addr)
	return fx.RunWithContextCloser(ctx, server, server.ListenAndServe)
}
