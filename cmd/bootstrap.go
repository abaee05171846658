package cmd

import (
	"fmt"

	"cosplay-booking/internal/data/repository"
	"cosplay-booking/internal/usecase"
	"cosplay-booking/internal/wire"
	"cosplay-booking/pkg/database"
	"cosplay-booking/pkg/mq"
	"cosplay-booking/pkg/payos"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

// runtime holds the wired application and the connections it must close.
type runtime struct {
	app     *wire.App
	closers []func()
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}

func bootstrap(config *utils.Config, logger *zap.Logger) (*runtime, error) {
	rt := &runtime{}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	rt.closers = append(rt.closers, db.Close)
	logger.Info("Database connected successfully")

	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	rt.closers = append(rt.closers, func() { _ = rdb.Close() })
	logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))

	deps := usecase.Deps{
		Tx:      database.NewTransactor(db),
		Gateway: payos.NewClient(config.PayOS),
		Redis:   rdb,
	}

	if config.Rabbit.URL != "" {
		publisher, err := mq.NewPublisher(config.Rabbit.URL, config.Rabbit.Exchange)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		rt.closers = append(rt.closers, func() { _ = publisher.Close() })
		deps.Publisher = publisher
		logger.Info("RabbitMQ connected successfully", zap.String("exchange", config.Rabbit.Exchange))
	} else {
		logger.Warn("RabbitMQ not configured, notification events are logged only")
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	rt.app = wire.Wiring(repos, deps, config, logger)

	return rt, nil
}
