package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MichaelMansour256/Diwan-Mansour/config"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/handler"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/repository"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/server"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/service/cart"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/service/catalog"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/service/checkout"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/service/identity"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/service/imgstore"
	"github.com/MichaelMansour256/Diwan-Mansour/migrations"
	"github.com/MichaelMansour256/Diwan-Mansour/pkg/kafka"
	"github.com/MichaelMansour256/Diwan-Mansour/pkg/logger"
	"github.com/MichaelMansour256/Diwan-Mansour/pkg/postgres"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "bookshop")

	var repo repository.Repository
	if cfg.Database.Host != "" {
		db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			return errors.Wrap(err, "db init")
		}
		repo, err = repository.NewRepository(db, log)
		if err != nil {
			return errors.Wrap(err, "repo init")
		}
	} else {
		log.Warn("database is not configured, catalog lives in memory only")
		repo = repository.NewMemoryRepository(repository.Seed(), log)
	}
	defer repo.Close()

	var pub catalog.Publisher
	feedEnabled := len(cfg.Kafka.Addrs) > 0
	if feedEnabled {
		kafkaPub, err := kafka.NewPublisher(cfg.Kafka, kafka.CatalogTopic)
		if err != nil {
			return errors.Wrap(err, "kafka publisher")
		}
		defer kafkaPub.Close()
		pub = kafkaPub
	}

	catalogSvc := catalog.NewService(repo, pub, log)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	if err := catalogSvc.Load(loadCtx); err != nil {
		log.Error("catalog load failed, serving seed catalog", zap.Error(err))
		catalogSvc.Replace(repository.Seed())
	}
	cancelLoad()

	cartSvc := cart.NewService(catalogSvc, log)
	checkoutSvc := checkout.NewService(cfg.Checkout.WhatsAppNumber)
	authSvc := identity.NewService(cfg.Identity, log)
	imageSvc := imgstore.NewService(cfg.ImageStore, log)

	h := handler.New(catalogSvc, cartSvc, checkoutSvc, authSvc, imageSvc, []byte(cfg.JWTKey), log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	g.Go(func() error {
		return srv.Run()
	})

	g.Go(func() error {
		catalogSvc.RunSweeper(ctx, cfg.Sweep.Interval, cfg.Sweep.ReservationTTL)
		return nil
	})

	if feedEnabled {
		group, err := kafka.NewConsumer(cfg.Kafka, kafka.CatalogConsumerGroup)
		if err != nil {
			return errors.Wrap(err, "kafka consumer")
		}
		g.Go(func() error {
			defer group.Close()
			return kafka.Consume(ctx, group, handler.NewConsumer(catalogSvc.Replace, log), kafka.CatalogTopic)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Debug("Graceful shutdown")
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("Graceful shutdown finished")
	return nil
}
