package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/config"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/controller"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/notify"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/ratelimit"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/service"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/pkg/http_server"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Start the HTTP API together with the notification subscriber and the hire repair job`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func connectRedis(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.Warn().Err(err).Msg("invalid redis url, continuing without redis")
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, continuing without fan-out and rate limiting")
		_ = client.Close()
		return nil
	}

	return client
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if store.postgres != nil && cfg.Database.AutoMigrate {
		if err := runMigrations(store.postgres, cfg.Database, false); err != nil {
			return err
		}
	}

	hub := notify.NewHub()
	var sink notify.Sink = hub
	opts := service.Options{
		RetryAttempts: cfg.Hiring.RetryAttempts,
		RetryBackoff:  cfg.Hiring.RetryBackoff,
	}

	if client := connectRedis(cfg.Redis); client != nil {
		defer client.Close()

		redisSink := notify.NewRedisSink(client, cfg.Redis.Channel, hub)
		sink = redisSink
		opts.Limiter = ratelimit.NewRedisLimiter(client, cfg.RateLimit.Bids, cfg.RateLimit.Window, "gigflow:ratelimit")

		g.Go(func() error {
			return redisSink.Run(ctx)
		})
	}

	services := service.NewServices(store.repos, sink, opts)

	g.Go(func() error {
		return runRepairJob(ctx, services.Hiring, cfg.Hiring.RepairInterval)
	})

	handler := echo.New()
	controller.SetupRoutesHandlers(handler, services, sink, controller.RouterOptions{
		AllowOrigins: cfg.Server.CorsOrigins,
	})

	log.Info().Str("address", cfg.Server.Address).Msg("starting server")
	httpServer := http_server.New(handler, cfg.Server.Address, cfg.Server.ShutdownTimeout)

	g.Go(func() error {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
		case err, ok := <-httpServer.Notify():
			if ok && err != nil {
				return errors.Wrap(err, "http server failed")
			}
		}

		if err := httpServer.Shutdown(); err != nil {
			return errors.Wrap(err, "shutdown error")
		}
		log.Info().Msg("successful shutdown")
		return nil
	})

	return g.Wait()
}

// runRepairJob finishes hires interrupted after the gig was assigned.
func runRepairJob(ctx context.Context, hiring service.Hiring, interval time.Duration) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return errors.Wrap(err, "failed to create scheduler")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if _, err := hiring.RepairIncompleteHires(ctx); err != nil {
				log.Error().Err(err).Msg("failed to repair incomplete hires")
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return errors.Wrap(err, "failed to schedule repair job")
	}

	log.Info().Dur("interval", interval).Msg("starting hire repair job")
	scheduler.Start()

	<-ctx.Done()
	return scheduler.Shutdown()
}
