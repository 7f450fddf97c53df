package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clintwin/clintwin-backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		a.Log.Info("Shutting down...")
		a.Close()
		os.Exit(0)
	}()

	if err := a.Run(":" + a.Cfg.Port); err != nil {
		a.Log.Error("Server exited", "error", err)
		a.Close()
		os.Exit(1)
	}
}
