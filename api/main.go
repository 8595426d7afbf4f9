package main

import (
	"os"
	"paygate/api/internal/app"
	"paygate/api/internal/config"
	"paygate/api/internal/infra/nats"
	"paygate/api/internal/infra/postgres"
	"paygate/api/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	if path := os.Getenv("ENVPATH"); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic("Can't load .env file: " + err.Error())
		}
	}

	config := config.ReadConfig()

	unixLogger := logger.Init(config)

	config.DB = postgres.Init(config)

	natsinfra := nats.Init(config, unixLogger)
	if config.Log.Ship {
		unixLogger = unixLogger.WithSink(natsinfra.Nc)
	}

	app := &app.App{
		Config:    config,
		Db:        config.DB,
		NatsInfra: natsinfra,
		Log:       unixLogger,
	}

	app.Start()
}
