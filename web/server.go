// Package web runs the local server that receives the Yahoo OAuth redirect. It is
// only needed on the first run, before a token has been saved.
package web

import (
	"context"
	"embed"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/benaicompanion/fantasy-101-dashboard/controller"
	"github.com/unrolled/render"
)

//go:embed templates
var templates embed.FS

type Server struct {
	server   *http.Server
	authDone chan struct{}
	once     sync.Once
}

func NewServer(port int, ctrl controller.C) (*Server, error) {
	s := &Server{
		authDone: make(chan struct{}),
	}

	render := newRender()
	router := getRouter(ctrl, render, s.signalAuthDone)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}
	return s, nil
}

// AuthDone is closed once an authorization code has been exchanged successfully.
func (s *Server) AuthDone() <-chan struct{} {
	return s.authDone
}

func (s *Server) signalAuthDone() {
	s.once.Do(func() { close(s.authDone) })
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatalf("fatal error shutting down server: %v", err)
		}
	}()

	log.Printf("oauth callback server is listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("fatal error with server: %v", err)
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
	})
}
