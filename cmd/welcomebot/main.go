// Package main implements welcomebot, a Discord bot that sends a direct
// message to every member who joins a guild it is in.
//
// The token comes from the WELCOMEBOT_TOKEN environment variable or
// [bot] token in fontkit.toml.
package main

import (
	"context"
	"flag"

	"tools.welcomer/dev/fontkit/internal/cli"
	"tools.welcomer/dev/fontkit/internal/config"
	"tools.welcomer/dev/fontkit/internal/paths"
	"tools.welcomer/dev/fontkit/internal/welcome"
)

func main() {
	rootDir := flag.String("root", ".", "Repository root that relative paths resolve against")
	configPath := flag.String("config", "", "Config file (default <root>/fontkit.toml)")
	flag.Parse()

	root := paths.Root{Dir: *rootDir}
	if *configPath == "" {
		*configPath = root.Config()
	}

	cfg, closer, err := cli.Setup("welcomebot", root, *configPath)
	if err != nil {
		cli.Fatal(err)
	}
	defer closer.Close()

	bot, err := newBot(cfg)
	if err != nil {
		cli.Fatal(err, closer)
	}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	if err := bot.Run(ctx); err != nil {
		stop()
		cli.Fatal(err, closer)
	}
}

func newBot(cfg *config.Config) (*welcome.Bot, error) {
	return welcome.New(cfg.Bot.Token, welcome.Options{
		Message:  cfg.Bot.Message,
		SkipBots: cfg.Bot.SkipBots,
	})
}
