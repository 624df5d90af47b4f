package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"requestpay.com/payment-contract/common"
	"requestpay.com/payment-contract/config"
	"requestpay.com/payment-contract/log"
	"requestpay.com/payment-contract/serviceNode"
)

func main() {
	cfg, err := config.ParseConfig()
	if err != nil {
		log.Fatal(err)
	}

	flush := common.InitGlobalTracer(cfg.JaegerConfig)
	defer flush()

	server, err := serviceNode.StartServiceNode(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("Service node listening on %s", server.Addr)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	<-signals

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Connection shutdown failed: %s", err.Error())
	}
}
