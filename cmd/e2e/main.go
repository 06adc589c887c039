package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/couchbase/gocb/v2"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"broadcast/internal/broadcast"
	"broadcast/internal/broadcast/controller"
	"broadcast/internal/broadcast/dispatcher"
	"broadcast/internal/broadcast/hub"
	"broadcast/internal/broadcast/metrics"
	"broadcast/internal/broadcast/queue"
	"broadcast/internal/broadcast/relay"
	"broadcast/internal/broadcast/tracing"
	"broadcast/internal/config"
	"broadcast/internal/couchbase"
	"broadcast/internal/logging"
)

// drainTimeout bounds how long the driver waits for every subscriber to
// receive every message after the senders finish.
const drainTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.Profile != "" {
		stop, err := startProfile(cfg.Profile)
		if err != nil {
			log.Fatalf("failed to start profiling: %v", err)
		}
		defer stop()
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	registry := metrics.NewRegistry()
	registry.SetSystemInfo("e2e", time.Now().Format(time.RFC3339))

	metricsServer := metrics.NewServer(cfg.Metrics, registry, logger)
	go func() {
		if err := metricsServer.Start(context.Background()); err != nil {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Stop(shutdownCtx); err != nil {
			logger.Error("failed to stop metrics server", zap.Error(err))
		}
	}()

	logger.Info("metrics server started",
		zap.String("endpoint", fmt.Sprintf("http://localhost%s/metrics", metricsServer.Addr())),
		zap.String("health", fmt.Sprintf("http://localhost%s/health", metricsServer.Addr())),
	)

	tracer, cleanup, err := newTracer(cfg.Tracing)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cleanup(shutdownCtx); err != nil {
			logger.Error("failed to cleanup tracing", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sig:
			cancel()
		case <-ctx.Done():
		}
	}()

	start := time.Now()
	if err := run(ctx, cfg, logger, registry, tracer, metricsServer); err != nil {
		logger.Error("e2e run failed", zap.Error(err))
	}

	fmt.Printf("\n\n TEST COMPLETE IN %.2f seconds\n", time.Since(start).Seconds())
}

// subscriber counts deliveries received by one subscription.
type subscriber struct {
	name     string
	received atomic.Int64
}

func run(
	ctx context.Context,
	cfg config.Config,
	logger *zap.Logger,
	registry *metrics.Registry,
	tracer *tracing.Tracer,
	server *metrics.Server,
) error {
	channel := broadcast.NewChannel(broadcast.MessageBoxChannel)
	total := int64(cfg.SenderCount * cfg.MessagesPerSender)

	g, gctx := errgroup.WithContext(ctx)
	runCtx, stopPipeline := context.WithCancel(gctx)
	defer stopPipeline()

	var (
		q    broadcast.Queue
		subs []*subscriber
	)

	switch cfg.QueueBackend {
	case config.QueueBackendLocal:
		h := hub.New(logger)
		for _, name := range cfg.RelaySubscriptions {
			s := &subscriber{name: name}
			deliveries, unsubscribe := h.Subscribe(channel.Name, int(total))
			subs = append(subs, s)
			g.Go(func() error {
				defer unsubscribe()
				return receive(runCtx, logger, s, deliveries)
			})
		}

		local, err := queue.NewLocal(h, logger, cfg.LocalQueueSize, cfg.LocalQueueWorkers)
		if err != nil {
			return fmt.Errorf("failed to create local queue: %w", err)
		}
		g.Go(func() error { return local.Run(runCtx) })
		q = local

	default:
		ctlr, cluster, err := newController(cfg, registry, tracer)
		if err != nil {
			return err
		}
		defer func() {
			if err := cluster.Close(nil); err != nil {
				logger.Warn("failed to close couchbase cluster", zap.Error(err))
			}
		}()

		couchbaseQueue, err := queue.NewCouchbase(ctlr, logger)
		if err != nil {
			return fmt.Errorf("failed to create couchbase queue: %w", err)
		}
		q = couchbaseQueue

		// each subscription relays into its own hub, as a gateway instance would
		for _, name := range cfg.RelaySubscriptions {
			s := &subscriber{name: name}
			h := hub.New(logger.With(zap.String("sub", name)))
			deliveries, unsubscribe := h.Subscribe(channel.Name, int(total))
			subs = append(subs, s)

			baseRelay, err := relay.NewRelay(ctlr, h, logger, cfg.RelayBatchSize)
			if err != nil {
				unsubscribe()
				return fmt.Errorf("failed to create relay: %w", err)
			}
			r := relay.NewTracedRelay(relay.NewMetricsRelay(baseRelay, registry), tracer)

			g.Go(func() error {
				defer unsubscribe()
				return receive(runCtx, logger, s, deliveries)
			})
			g.Go(func() error {
				return relay.Poll(runCtx, r, logger, channel.Name, cfg.RelayPollInterval, name)
			})
		}
	}

	baseDispatcher, err := dispatcher.NewDispatcher(q, logger)
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	d := dispatcher.NewTracedDispatcher(dispatcher.NewMetricsDispatcher(baseDispatcher, registry), tracer)

	server.SetReady(true)
	defer server.SetReady(false)

	g.Go(func() error {
		defer stopPipeline()

		if err := send(gctx, cfg, logger, d); err != nil {
			return err
		}
		logger.Info("all messages dispatched", zap.Int64("count", total))

		return waitDrained(gctx, logger, subs, total)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	for _, s := range subs {
		logger.Info("subscription summary",
			zap.String("sub", s.name),
			zap.Int64("received", s.received.Load()),
			zap.Int64("expected", total),
		)
	}

	return nil
}

func send(ctx context.Context, cfg config.Config, logger *zap.Logger, d broadcast.Dispatcher) error {
	// a rate of 0 means no rate limiting
	limit := rate.Inf
	if cfg.PublishMessagesPerSec > 0 {
		limit = rate.Limit(cfg.PublishMessagesPerSec)
	}
	limiter := rate.NewLimiter(limit, 1)

	g, gctx := errgroup.WithContext(ctx)
	for sender := range cfg.SenderCount {
		senderID := int64(sender + 1)
		g.Go(func() error {
			for i := range cfg.MessagesPerSender {
				if err := limiter.Wait(gctx); err != nil {
					return err
				}

				event := broadcast.NewMessageEvent(senderID, fmt.Sprintf("Hello #%d from sender %d", i+1, senderID))
				if err := d.Dispatch(gctx, event); err != nil {
					logger.Error("failed to dispatch message", zap.Int64("senderId", senderID), zap.Error(err))
					return fmt.Errorf("failed to dispatch message: %w", err)
				}
			}
			return nil
		})
	}

	return g.Wait()
}

func receive(ctx context.Context, logger *zap.Logger, s *subscriber, deliveries <-chan broadcast.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			event, err := broadcast.DecodeMessageEvent(d.Payload)
			if err != nil {
				logger.Error("received malformed message", zap.String("sub", s.name), zap.Error(err))
				continue
			}
			s.received.Add(1)
			logger.Debug("message received",
				zap.String("sub", s.name),
				zap.Int64("senderId", event.SenderID()),
				zap.String("message", event.Message()),
			)
		}
	}
}

func waitDrained(ctx context.Context, logger *zap.Logger, subs []*subscriber, total int64) error {
	deadline := time.NewTimer(drainTimeout)
	defer deadline.Stop()
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		drained := true
		for _, s := range subs {
			if s.received.Load() < total {
				drained = false
				break
			}
		}
		if drained {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			logger.Warn("subscriptions did not drain in time", zap.Duration("timeout", drainTimeout))
			return nil
		case <-tick.C:
		}
	}
}

func newTracer(cfg tracing.Config) (*tracing.Tracer, func(context.Context) error, error) {
	if !cfg.Enabled {
		noopCleanup := func(context.Context) error { return nil }
		return tracing.NewTracerFromProvider(noop.NewTracerProvider(), cfg.ServiceName), noopCleanup, nil
	}

	return tracing.NewTracer(cfg)
}

// newController connects to Couchbase and builds the decorated controller.
// The caller owns the returned cluster.
func newController(cfg config.Config, registry *metrics.Registry, tracer *tracing.Tracer) (broadcast.Controller, *gocb.Cluster, error) {
	cluster, bucket, err := newCouchbase(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Couchbase: %w", err)
	}

	ctlr, err := buildController(cfg, cluster, bucket, registry, tracer)
	if err != nil {
		_ = cluster.Close(nil)
		return nil, nil, err
	}

	return ctlr, cluster, nil
}

func buildController(
	cfg config.Config,
	cluster *gocb.Cluster,
	bucket *gocb.Bucket,
	registry *metrics.Registry,
	tracer *tracing.Tracer,
) (broadcast.Controller, error) {
	cursors, err := broadcast.NewCursorsStore(cluster, bucket, cfg.CouchbaseScopeName)
	if err != nil {
		return nil, fmt.Errorf("failed to create cursors store: %w", err)
	}
	leases, err := broadcast.NewLeasesStore(cluster, bucket, cfg.CouchbaseScopeName)
	if err != nil {
		return nil, fmt.Errorf("failed to create leases store: %w", err)
	}
	envelopes, err := broadcast.NewEnvelopesStore(cluster, bucket, cfg.CouchbaseScopeName)
	if err != nil {
		return nil, fmt.Errorf("failed to create envelopes store: %w", err)
	}
	offsets, err := broadcast.NewOffsetsStore(cluster, bucket, cfg.CouchbaseScopeName)
	if err != nil {
		return nil, fmt.Errorf("failed to create offsets store: %w", err)
	}

	transactions, err := couchbase.NewTransactions(cluster)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactions: %w", err)
	}

	baseController, err := controller.NewController(
		cursors,
		leases,
		envelopes,
		offsets,
		transactions,
		cfg.CouchbaseBucketName,
		cfg.CouchbaseScopeName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}

	metricsController := controller.NewMetricsController(baseController, registry)
	return controller.NewTracedController(metricsController, tracer), nil
}

func newCouchbase(cfg config.Config) (*gocb.Cluster, *gocb.Bucket, error) {
	cluster, err := gocb.Connect(cfg.CouchbaseConnectionString, gocb.ClusterOptions{
		Authenticator: gocb.PasswordAuthenticator{
			Username: cfg.CouchbaseUsername,
			Password: cfg.CouchbasePassword,
		},
		TimeoutsConfig: gocb.TimeoutsConfig{
			ConnectTimeout: 10 * time.Second,
			KVTimeout:      5 * time.Second,
			QueryTimeout:   30 * time.Second,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to cluster: %w", err)
	}

	bucket := cluster.Bucket(cfg.CouchbaseBucketName)

	err = bucket.WaitUntilReady(5*time.Second, nil)
	if err != nil {
		_ = cluster.Close(nil)
		return nil, nil, fmt.Errorf("bucket not ready: %w", err)
	}

	return cluster, bucket, nil
}

// startProfile writes cpu.pprof into dir until the returned func runs, which
// also writes mem.pprof.
func startProfile(dir string) (func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile dir: %w", err)
	}

	cpuProfile, err := os.Create(filepath.Join(dir, "cpu.pprof"))
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuProfile); err != nil {
		cpuProfile.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}

	return func() {
		pprof.StopCPUProfile()
		cpuProfile.Close()

		memProfile, err := os.Create(filepath.Join(dir, "mem.pprof"))
		if err != nil {
			log.Printf("could not create memory profile: %v", err)
			return
		}
		defer memProfile.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(memProfile); err != nil {
			log.Printf("could not write memory profile: %v", err)
		}
	}, nil
}
