package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"paygate/api/internal/config"
	"paygate/api/internal/delivery"
	"paygate/api/internal/infra/nats"
	"paygate/api/internal/logger"
	"paygate/api/internal/service"
	"syscall"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	Db        *gorm.DB
	NatsInfra *nats.NatsInfra
	Log       logger.Logger
}

func (app *App) Start() {
	ctx, cancel := context.WithCancel(context.Background())

	defer func() {
		cancel()
		app.NatsInfra.Close()
	}()

	gin.SetMode(gin.ReleaseMode)
	if !app.Config.Prod_env {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	services := service.NewServices(app.NatsInfra, app.Db, app.Log, app.Config)

	app.Autostart(ctx, services)

	{
		h := delivery.InitHandler(services, app.Config, app.Log)

		h.InitAPI(r)
	}

	eChan := make(chan error)
	interrupt := make(chan os.Signal, 1)

	fmt.Println("internal web is starting")

	go func() {
		err := r.Run(app.Config.Api.Ipv4)
		if err != nil {
			eChan <- fmt.Errorf("listen and serve: %w", err)
		}
	}()

	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-eChan:
		app.Log.TemplHTTPError("app fatal error", app.Config.Api.Ipv4, err)
		return
	case <-interrupt:
		return
	}
}

// start autostart services
func (app *App) Autostart(ctx context.Context, services *service.Services) {
	if app.Config.Outbox.Disabled {
		fmt.Println("Autostart: outbox disabled")
		return
	}

	fmt.Println("Autostart: start process events")
	services.OutboxEvents.StartProcessEvents(ctx)
}
