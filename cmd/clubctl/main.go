package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"clubhub/internal/client"
	"clubhub/pkg/clubclient"
)

func main() {
	fs := flag.NewFlagSet("clubctl", flag.ContinueOnError)
	server := fs.String("server", envOr("CLUBHUB_URL", clubclient.DefaultBaseURL), "clubhub API base URL")
	sessionPath := fs.String("session", envOr("CLUBHUB_SESSION", client.DefaultSessionPath()), "session file")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := client.NewSession(client.FileStore{Path: *sessionPath})
	app := client.NewApp(clubclient.New(*server), session, client.NewFeed(nil), os.Stdin, os.Stdout)

	fmt.Printf("clubhub client, talking to %s. Type help for commands.\n", *server)
	app.Run(ctx)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
