package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"insight-center-be/internal/config"
	"insight-center-be/pkg/events"
	pktNats "insight-center-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

func main() {
	subject := pflag.String("subject", pktNats.SubjectPrefix+".>", "subject filter")
	durable := pflag.String("durable", "", "durable consumer name; empty tails new events only")
	url := pflag.String("url", "", "NATS URL (defaults to NATS_URL)")
	pflag.Parse()

	cfg := config.Load()
	if *url == "" {
		*url = cfg.Messaging.NatsURL
	}

	sub, err := pktNats.NewSubscriber(*url)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	color.Cyan("Tailing %s on %s", *subject, *url)
	err = sub.Subscribe(ctx, *subject, *durable, func(_ context.Context, event events.Event) error {
		data, _ := json.Marshal(event.Payload())
		fmt.Printf("%s %s %s\n",
			color.HiBlackString(event.Timestamp().Format("15:04:05.000")),
			color.YellowString(event.EventType()),
			data,
		)
		return nil
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}
