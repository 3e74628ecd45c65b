package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/hnimtadd/vtgrid"
	"github.com/hnimtadd/vtgrid/config"
	"github.com/hnimtadd/vtgrid/logger"
	"github.com/hnimtadd/vtgrid/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [-- command [args...]]",
		Short: "Run a command on a pty and print the resulting grid",
		Long: `Run starts the command (the configured shell when none is given) on a
pseudo terminal, feeds its output through the emulator and the render
batcher, and prints the grid as plain text plus statistics when it exits.`,
		RunE: runCommand,
	}
	flags := cmd.Flags()
	flags.Int("rows", 24, "grid rows (default: host terminal size)")
	flags.Int("cols", 80, "grid columns (default: host terminal size)")
	flags.Int("scrollback", 10000, "history lines kept by the primary screen")
	flags.String("shell", "", "command run when no arguments are given")
	flags.Duration("duration", 0, "stop after this long (0 waits for the command to exit)")
	flags.Bool("dump", true, "print the grid as plain text on exit")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.String("log-format", "", "text, json or zap")
	return cmd
}

type runStats struct {
	frames  atomic.Int64
	records atomic.Int64
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd.Flags(), stdoutSize)
	if err != nil {
		return err
	}
	logOpts := cfg.Log.LoggerOptions()
	logOpts.Buffer = cmd.ErrOrStderr()
	log := logger.New(logOpts)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if d, _ := cmd.Flags().GetDuration("duration"); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := vtgrid.NewMetrics(reg)
	if cfg.Metrics.Addr != "" {
		shutdown := serveMetrics(cfg.Metrics.Addr, reg, log)
		defer shutdown()
	}

	// The child is killed once the session is over, whatever ended it.
	childCtx, killChild := context.WithCancel(ctx)
	defer killChild()
	child := childCommand(cfg, args)
	pty, err := vtgrid.StartCommand(childCtx, child, cfg.Terminal.Rows, cfg.Terminal.Cols)
	if err != nil {
		return err
	}

	geometry := render.Geometry{
		CellWidth:  cfg.Render.CellWidth,
		CellHeight: cfg.Render.CellHeight,
		Descender:  cfg.Render.Descender,
	}
	atlas := render.NewCachedAtlas(render.NewGridAtlas(geometry, cfg.Render.AtlasSize), cfg.Render.GlyphExpiration, log)
	var stats runStats
	session, err := vtgrid.NewSession(pty, vtgrid.SessionOptions{
		Rows:           cfg.Terminal.Rows,
		Cols:           cfg.Terminal.Cols,
		Scrollback:     cfg.Terminal.Scrollback,
		QueueDepth:     cfg.Session.QueueDepth,
		ReadBufferSize: cfg.Session.ReadBufferSize,
		FrameInterval:  cfg.Session.FrameInterval,
		Batcher:        render.NewBatcher(geometry, atlas, log),
		Sink: func(b render.Batch) {
			stats.frames.Add(1)
			stats.records.Add(int64(len(b.Records)))
		},
		BellRate:  rate.Limit(cfg.Session.BellRate),
		BellBurst: cfg.Session.BellBurst,
		Metrics:   metrics,
		Logger:    log,
	})
	if err != nil {
		_ = pty.Close()
		return err
	}
	runErr := session.Run(ctx)
	killChild()
	waitErr := pty.Wait()
	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		return runErr
	}
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		log.Warn("waiting for child", "err", waitErr)
	}

	out := cmd.OutOrStdout()
	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		fmt.Fprintln(out, session.Emulator().PlainString())
	}
	report(out, session, pty.ExitCode(), &stats, atlas)
	return nil
}

func childCommand(cfg config.Config, args []string) *exec.Cmd {
	var c *exec.Cmd
	if len(args) > 0 {
		c = exec.Command(args[0], args[1:]...)
	} else {
		c = exec.Command(cfg.Terminal.Shell)
	}
	c.Env = append(os.Environ(), "TERM=xterm-256color")
	return c
}

func report(w io.Writer, s *vtgrid.Session, exitCode int, stats *runStats, atlas *render.CachedAtlas) {
	e := s.Emulator()
	cols, rows := e.Size()
	st := e.Stats()
	fmt.Fprintf(w, "session:    %s\n", s.ID())
	fmt.Fprintf(w, "exit code:  %d\n", exitCode)
	fmt.Fprintf(w, "grid:       %dx%d\n", cols, rows)
	if title := e.Title(); title != "" {
		fmt.Fprintf(w, "title:      %s\n", title)
	}
	fmt.Fprintf(w, "frames:     %d (%d records)\n", stats.frames.Load(), stats.records.Load())
	fmt.Fprintf(w, "glyphs:     %d hits, %d misses\n", atlas.Hits(), atlas.Misses())
	fmt.Fprintf(w, "scrolled:   %d lines\n", st.ScrolledOff)
	fmt.Fprintf(w, "unknown:    %d sequences\n", st.UnknownSequences)
	fmt.Fprintf(w, "bells:      %d\n", st.Bells)
}

func serveMetrics(addr string, reg *prometheus.Registry, log logger.Logger) (shutdown func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "addr", addr, "err", err)
		}
	}()
	log.Info("serving metrics", "addr", addr)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
