package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/netlens/graph"
	"github.com/teranos/netlens/logger"
	"github.com/teranos/netlens/snapshot"
)

// WatchCmd re-applies a mode whenever the snapshot file changes
var WatchCmd = &cobra.Command{
	Use:   "watch <snapshot.json>",
	Short: "Re-apply a visibility mode whenever the snapshot changes",
	Long: `Load a snapshot, apply a visibility mode and keep watching the file.
Every time the file is rewritten the view is reloaded, the selection is
restored and the mode is applied again. Stop with Ctrl+C.

With --metrics-addr the engine's prometheus collectors are served on
/metrics (metrics.enabled must be true for them to be populated).`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchFlags       modeFlags
	watchDebounce    time.Duration
	watchMetricsAddr string
)

func init() {
	watchFlags.register(WatchCmd)
	WatchCmd.Flags().DurationVar(&watchDebounce, "debounce", snapshot.DefaultDebounce, "Quiet period before a change is reloaded")
	WatchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address (e.g. :9464)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := logger.Named("watch")
	session, engine, _, err := openSession(args[0], watchFlags.view)
	if err != nil {
		return err
	}
	view := graph.View(watchFlags.view)

	var mu sync.Mutex
	show := func() {
		res, err := watchFlags.apply(engine)
		if err != nil {
			printGraphError(err)
			return
		}
		renderResult(engine, res)
	}
	show()

	watcher, err := snapshot.NewWatcher(args[0], watchDebounce)
	if err != nil {
		return err
	}
	watcher.OnReload(func(snap *graph.Snapshot) error {
		mu.Lock()
		defer mu.Unlock()
		if _, err := session.Load(view, *snap); err != nil {
			return err
		}
		show()
		return nil
	})
	watcher.Start()
	defer watcher.Stop()

	if watchMetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: watchMetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorw("Metrics server failed", logger.FieldError, err)
			}
		}()
		defer srv.Shutdown(context.Background())
		pterm.Info.Printfln("Serving metrics on %s/metrics", watchMetricsAddr)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Info.Printfln("Watching %s (Ctrl+C to stop)", args[0])
	select {
	case <-ctx.Done():
	case <-watcher.Done():
	}
	log.Infow("Stopped watching", logger.FieldPath, args[0])
	return nil
}
