package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ghost2804/finhub/htdocs"
	"github.com/ghost2804/finhub/pkg/client"
	"github.com/ghost2804/finhub/pkg/settings"
	"github.com/ghost2804/finhub/pkg/web"
)

func main() {
	var zlogger *zap.Logger
	if settings.InDevelop() {
		zlogger, _ = zap.NewDevelopment()
	} else {
		zlogger, _ = zap.NewProduction()
	}
	zap.ReplaceGlobals(zlogger)
	defer func() { _ = zlogger.Sync() }()

	app := &cli.App{
		Name:           "finhub",
		Usage:          "personal finance hub: advisor chat, live quotes, budget tools",
		Version:        settings.Current.Version,
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the web server",
				Action: runServe,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Aliases: []string{"l"}, Usage: "listen address", Value: settings.Current.HTTPListen},
				},
			},
			{
				Name:   "watch",
				Usage:  "follow watchlist quotes in the terminal",
				Action: runWatch,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "server", Aliases: []string{"s"}, Usage: "finhub server base URL", Value: settings.Current.BaseURI},
					&cli.DurationFlag{Name: "interval", Aliases: []string{"i"}, Usage: "poll interval", Value: settings.Current.QuoteRefresh},
				},
			},
			{
				Name:   "chat",
				Usage:  "talk to the finance advisor in the terminal",
				Action: runChat,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "server", Aliases: []string{"s"}, Usage: "finhub server base URL", Value: settings.Current.BaseURI},
				},
			},
			{
				Name:  "usage",
				Usage: "print environment configuration help",
				Action: func(c *cli.Context) error {
					return settings.Usage()
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.S().Fatalw("run fail", "err", err)
	}
}

func runServe(c *cli.Context) error {
	sugar := zap.S()
	srv := web.New(web.Config{
		Addr:       c.String("addr"),
		Debug:      settings.InDevelop(),
		DocHandler: http.FileServer(http.FS(htdocs.FS())),
	})

	idleClosed := make(chan struct{})
	ctx := context.Background()
	go func() {
		quit := make(chan os.Signal, 2)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		sugar.Info("shutting down server...")
		if err := srv.Stop(ctx); err != nil {
			sugar.Infow("server shutdown", "err", err)
		}
		close(idleClosed)
	}()

	if err := srv.Serve(ctx); err != nil {
		sugar.Infow("serve fail", "err", err)
	}

	<-idleClosed
	return nil
}

func runWatch(c *cli.Context) error {
	api := client.NewAPI(c.String("server"))
	sfc := client.NewTermSurface(os.Stdout, "Finance Hub watchlist (Ctrl+C to quit)")
	ticker := client.NewTicker(api, sfc, c.Duration("interval"))

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ticker.Start(ctx); err != nil {
		return err
	}
	fmt.Printf("Watching quotes from %s, first refresh in %s...\n", c.String("server"), c.Duration("interval"))
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return ticker.Stop(stopCtx)
}

func runChat(c *cli.Context) error {
	api := client.NewAPI(c.String("server"))
	sfc := client.NewTermSurface(os.Stdout, "Finance Advisor (bye to leave)")
	sfc.EnableMarkdown()
	chat := client.NewChat(api, sfc)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := chat.Start(ctx); err != nil {
		return err
	}

	in := bufio.NewScanner(os.Stdin)
	fmt.Print("\n> ")
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		switch strings.ToLower(line) {
		case "bye", "exit", "quit":
			fmt.Println("Goodbye! Keep your budget on track.")
			return nil
		}
		chat.Submit(ctx, line)
		fmt.Print("\n> ")
	}
	return in.Err()
}
