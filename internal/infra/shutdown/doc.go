// Package shutdown ties long-running commands to process signals.
//
// WithSignals returns a context cancelled on SIGINT or SIGTERM. A Handler
// collects cleanup hooks and runs them once, newest first and bounded by a
// timeout:
//
//	ctx, stop := shutdown.WithSignals(context.Background())
//	defer stop()
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(srv.Shutdown)
//	go srv.Serve(ln)
//	<-ctx.Done()
//	err := h.Shutdown()
package shutdown
