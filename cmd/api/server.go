package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// serve blocks until the server fails or is shut down. Shutdown starts on
// SIGINT, SIGTERM or when ctx is done, and waits up to 5 seconds for the
// requests in flight.
func (app *application) serve(ctx context.Context) error {
	// also releases the shutdown routine when ListenAndServe fails
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Port),
		Handler: app.routes(),
		// server errors go through the json logger, it is an io.Writer
		ErrorLog:     log.New(app.logger, "", 0),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// buffered so the shutdown routine never blocks when ListenAndServe
	// failed on its own
	shutdownError := make(chan error, 1)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		properties := map[string]string{}
		select {
		case s := <-quit:
			properties["signal"] = s.String()
		case <-ctx.Done():
			properties["reason"] = context.Cause(ctx).Error()
		}

		app.logger.PrintInfo("shutting down server", properties)

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(shutdownCtx)
	}()

	app.logger.PrintInfo("starting server", map[string]string{
		"env":     app.config.Env,
		"addr":    srv.Addr,
		"storage": app.config.Storage.Driver,
	})

	// ErrServerClosed is the normal result of Shutdown
	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.PrintInfo("stopped server", map[string]string{
		"addr": srv.Addr,
	})

	return nil
}
