package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/laosia/navi/internal/server"
)

var (
	flagServeAddr         string
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard as a JSON API with a change-event stream",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config, 127.0.0.1:8787)")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	addr := flagServeAddr
	if addr == "" {
		addr = e.cfg.Server.Addr
	}
	svc := server.New(server.Config{
		Addr:         addr,
		EventsBuffer: flagServeEventsBuffer,
	}, e.sess, e.policy, e.cfg)

	fmt.Printf("  navi API on http://%s/v1/dashboard\n", addr)
	fmt.Printf("  Events: http://%s/v1/stream\n", addr)
	fmt.Println("  Stop with Ctrl+C")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("serve: %v", err)
		return err
	}
	return nil
}
