package command

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/chainmap-go/internal/infra/confloader"
	"github.com/yndnr/chainmap-go/internal/infra/shutdown"
	"github.com/yndnr/chainmap-go/internal/telemetry/logger"
	"github.com/yndnr/chainmap-go/internal/telemetry/metric"
	"github.com/yndnr/chainmap-go/internal/workload"
	"github.com/yndnr/chainmap-go/pkg/dictionary"
	"github.com/yndnr/chainmap-go/pkg/hashmap"
)

// Summary is the inspect output for one table.
type Summary struct {
	Name          string  `json:"name,omitempty"`
	Hasher        string  `json:"hasher"`
	Size          int     `json:"size"`
	Capacity      int     `json:"capacity"`
	LoadFactor    float64 `json:"load_factor"`
	UsedBuckets   int     `json:"used_buckets"`
	LongestBucket int     `json:"longest_bucket"`
	Rehashes      uint64  `json:"rehashes"`
	Histogram     []int   `json:"histogram"`
}

func summarize(w *workload.Workload, d *dictionary.Dictionary) Summary {
	s := d.Stats()
	hasher := w.Table.Hasher
	if hasher == "" {
		hasher = workload.HasherMurmur3
	}
	return Summary{
		Name:          w.Name,
		Hasher:        hasher,
		Size:          s.Size,
		Capacity:      s.Capacity,
		LoadFactor:    s.LoadFactor,
		UsedBuckets:   s.UsedBuckets,
		LongestBucket: s.LongestBucket,
		Rehashes:      s.Rehashes,
		Histogram:     d.Histogram(),
	}
}

// InspectCommand returns the inspect command.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Build a table from a workload file and show its statistics",
		Flags: []cli.Flag{
			fileFlag(true),
			noEnvFlag(),
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Rebuild and print again whenever the file changes",
			},
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "Wait this long after the last write before rebuilding",
				Value: confloader.DefaultDebounce,
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on this address while watching (e.g. :9090)",
			},
			&cli.DurationFlag{
				Name:  "slow-rehash",
				Usage: "Log rehashes slower than this at warn level",
				Value: 10 * time.Millisecond,
			},
		},
		Action: inspect,
	}
}

// tableHolder serializes access to the current table between reloads and
// metric scrapes.
type tableHolder struct {
	mu   sync.Mutex
	dict *dictionary.Dictionary
}

func (h *tableHolder) set(d *dictionary.Dictionary) {
	h.mu.Lock()
	h.dict = d
	h.mu.Unlock()
}

func (h *tableHolder) lock() func() {
	h.mu.Lock()
	return h.mu.Unlock
}

// Stats implements metric.StatsSource. The caller holds the lock.
func (h *tableHolder) Stats() hashmap.Stats {
	if h.dict == nil {
		return hashmap.Stats{}
	}
	return h.dict.Stats()
}

func inspect(c *cli.Context) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}
	src, err := workloadSource(c)
	if err != nil {
		return err
	}
	log := appLogger(c)
	holder := &tableHolder{}

	build := func() error {
		w, err := readWorkload(c, flags, src)
		if err != nil {
			return err
		}
		d, err := w.Build(hashmap.WithObserver[string](logger.RehashObserver(log, c.Duration("slow-rehash"))))
		if err != nil {
			return err
		}
		holder.set(d)
		return render(c, flags, summarize(w, d))
	}

	if err := build(); err != nil {
		return err
	}
	if !c.Bool("watch") {
		return nil
	}
	return watch(c, src.Path(), holder, build, log)
}

// watch rebuilds on every change to the workload file until interrupted.
func watch(c *cli.Context, path string, holder *tableHolder, build func() error, log logger.Logger) error {
	ctx, stop := shutdown.WithSignals(c.Context)
	defer stop()

	w, err := confloader.NewWatcher(path,
		confloader.WithWatcherLogger(log),
		confloader.WithDebounce(c.Duration("debounce")),
	)
	if err != nil {
		return err
	}
	w.OnChange(func(path string) {
		log.Info("workload changed, rebuilding", "path", path)
		if err := build(); err != nil {
			log.Error("rebuild failed", "path", path, "error", err)
		}
	})

	handler := shutdown.NewHandler(shutdown.DefaultTimeout)
	if addr := c.String("metrics-addr"); addr != "" {
		reg := metric.NewRegistry(true)
		if err := reg.Register(metric.NewCollector("workload", holder, holder.lock)); err != nil {
			return errors.Join(fmt.Errorf("register collector: %w", err), w.Close())
		}
		srv, err := serveMetrics(addr, reg, log)
		if err != nil {
			return errors.Join(err, w.Close())
		}
		handler.OnShutdown(srv.Shutdown)
	}

	errRun := w.Run(ctx)
	return errors.Join(errRun, handler.Shutdown())
}

func serveMetrics(addr string, reg *metric.Registry, log logger.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()
	log.Info("serving metrics", "addr", ln.Addr().String())
	return srv, nil
}

