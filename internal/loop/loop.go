// Package loop runs a local game: an in-process server ticking one match
// and a client drawing it to a terminal.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/lanebattle/internal/draw"
	"github.com/tomz197/lanebattle/internal/logging"
	"github.com/tomz197/lanebattle/internal/loop/client"
	"github.com/tomz197/lanebattle/internal/loop/server"
)

// Options configures a local game.
type Options struct {
	Server       server.Options
	Username     string
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
}

// Run plays on r and w until the player quits or ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.Server.Logger == nil {
		opts.Server.Logger = logger
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gs := server.NewServer(opts.Server)
	done := make(chan struct{})
	go func() {
		defer close(done)
		gs.Run(ctx)
	}()
	go func() {
		<-ctx.Done()
		gs.Shutdown(0)
	}()

	c := client.NewClient(gs, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     opts.Username,
		Logger:       logger,
	})
	err := c.Run()

	cancel()
	<-done
	return err
}
