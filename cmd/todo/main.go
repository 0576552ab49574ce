package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"Todo/internal/config"
	"Todo/internal/taskapi"
	"Todo/internal/tasklist"
	"Todo/internal/terminal"
)

func main() {
	apiURL := flag.String("api", "", "task collection URL, overrides TODO_API_URL")
	flag.Parse()

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}

	// Diagnostics go to stderr so they stay out of the rendered list.
	diag := log.New(os.Stderr, "todo: ", log.LstdFlags)
	diag.Printf("using %s", cfg.APIURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	term := terminal.New(os.Stdin, os.Stdout)
	api := taskapi.New(cfg.APIURL, cfg.HTTPTimeout.Duration())
	ctl := tasklist.New(api, term, term, diag, cfg.MessageTTL.Duration())

	_ = ctl.Refresh(ctx)
	if err := terminal.NewShell(term, ctl).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		diag.Fatalf("shell: %v", err)
	}
}
