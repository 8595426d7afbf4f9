package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/nats-io/nats.go"
)

const (
	subjLogs   = "logs.>"
	queueGroup = "log_collectors"
)

type Config struct {
	NatsServers       string        `envconfig:"NATS_SERVERS" required:"true"`
	ParseableURL      string        `envconfig:"PARSEABLE_URL" required:"true"`
	ParseableUsername string        `envconfig:"PARSEABLE_USERNAME"`
	ParseablePassword string        `envconfig:"PARSEABLE_PASSWORD"`
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"5s"`
}

type collector struct {
	url    string
	bearer string
	client *http.Client
}

func newCollector(cfg Config) *collector {
	return &collector{
		url:    strings.TrimRight(cfg.ParseableURL, "/"),
		bearer: base64.RawStdEncoding.EncodeToString([]byte(cfg.ParseableUsername + ":" + cfg.ParseablePassword)),
		client: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// logs.<stream> -> <stream>
func logstream(subject string) (string, bool) {
	stream, ok := strings.CutPrefix(subject, "logs.")
	if !ok || stream == "" || strings.Contains(stream, ".") {
		return "", false
	}
	return stream, true
}

func (c *collector) handle(msg *nats.Msg) {
	stream, ok := logstream(msg.Subject)
	if !ok {
		fmt.Println("invalid logstream:", msg.Subject)
		return
	}

	if err := c.sendLog(c.url+"/api/v1/logstream/"+stream, msg.Data); err != nil {
		fmt.Println("send log error:", err)
	}
}

func (c *collector) sendLog(url string, log []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(log))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.bearer)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("parseable %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func main() {
	if path := os.Getenv("ENVPATH"); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}

	var cfg Config
	if err := envconfig.Process("paygate_logger", &cfg); err != nil {
		panic(err)
	}

	nc, err := nats.Connect(cfg.NatsServers)
	if err != nil {
		panic(err)
	}
	defer nc.Drain()

	c := newCollector(cfg)
	if _, err := nc.QueueSubscribe(subjLogs, queueGroup, c.handle); err != nil {
		panic(err)
	}

	fmt.Println("Log collector started")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-interrupt
}
