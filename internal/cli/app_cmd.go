package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/coursetrack/internal/export"
)

const shutdownTimeout = 5 * time.Second

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write overview, deadlines and workload to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := export.WriteFile(cmd.Context(), app.Tracker, args[0]); err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Wrote %s\n", args[0]))
			return nil
		},
	}
}

func newWatchCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run passive deadline alerts and serve metrics until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Scheduler == nil {
				return fmt.Errorf("alert scheduler is not configured")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, app, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "metrics-addr", app.MetricsAddr, "Listen address for /metrics (empty disables)")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, app *App, addr string) error {
	if app.MetricsHandler == nil || addr == "" {
		printOut(cmd, "Watching deadlines, press Ctrl+C to stop\n")
		return app.Scheduler.Run(ctx)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.MetricsHandler)
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	printOut(cmd, fmt.Sprintf("Watching deadlines, metrics on http://%s/metrics\n", ln.Addr()))

	runErr := app.Scheduler.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		server.Close()
	}
	if err := <-serveErr; err != nil {
		return fmt.Errorf("metrics server: %w", err)
	}
	return runErr
}

func newDashCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("dash needs an interactive terminal")
			}
			return app.runProgram(newDashModel(cmd.Context(), app.Tracker))
		},
	}
}
