// Command chatmark renders a chat message for preview.
//
// Usage:
//
//	chatmark [-in file.md | -message msg.json] [-format ansi|plain|png] [-out file]
//
// The message JSON carries the raw text and its mention ranges:
//
//	{"text": "hi @Ann", "mentions": [{"start": 3, "length": 4, "user_id": "ann@wire.com"}]}
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riverfjs/chatmark-go"
)

// Version is set at build time.
var Version = "dev"

type config struct {
	in             string
	message        string
	self           string
	theme          string
	format         string
	out            string
	width          int
	legacyMentions bool
	noHighlight    bool
	watch          bool
}

func parseFlags(args []string) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("chatmark", flag.ContinueOnError)
	fs.StringVar(&cfg.in, "in", "", "markdown file to render (default stdin)")
	fs.StringVar(&cfg.message, "message", "", "message JSON with text and mentions")
	fs.StringVar(&cfg.self, "self", "", "id of the current user, value[@domain]")
	fs.StringVar(&cfg.theme, "theme", "", "theme TOML file")
	fs.StringVar(&cfg.format, "format", "ansi", "output format: ansi, plain or png")
	fs.StringVar(&cfg.out, "out", "", "output file (default stdout)")
	fs.IntVar(&cfg.width, "width", 0, "wrap width in cells (ansi) or pixels (png)")
	fs.BoolVar(&cfg.legacyMentions, "legacy-mentions", false, "consume the head of the mention list on every match")
	fs.BoolVar(&cfg.noHighlight, "no-highlight", false, "disable code highlighting")
	fs.BoolVar(&cfg.watch, "watch", false, "re-render when the input file changes")
	version := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *version {
		fmt.Printf("chatmark %s\n", Version)
		os.Exit(0)
	}

	if cfg.in != "" && cfg.message != "" {
		return nil, errors.New("-in and -message are mutually exclusive")
	}
	switch cfg.format {
	case formatANSI, formatPlain, formatPNG:
	default:
		return nil, fmt.Errorf("unknown format %q", cfg.format)
	}
	if cfg.watch && cfg.source() == "" {
		return nil, errors.New("-watch needs -in or -message")
	}
	return cfg, nil
}

// source 返回输入文件路径，空串表示 stdin
func (c *config) source() string {
	if c.message != "" {
		return c.message
	}
	return c.in
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "chatmark: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		chatmark.Logger.Printf("error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config) error {
	theme := chatmark.DefaultTheme()
	if cfg.theme != "" {
		t, err := chatmark.LoadTheme(cfg.theme)
		if err != nil {
			return err
		}
		theme = t
	}
	r := &renderer{cfg: cfg, theme: theme}

	if err := r.renderOnce(); err != nil {
		return err
	}
	if !cfg.watch {
		return nil
	}
	return watch(ctx, cfg.source(), func() {
		if err := r.renderOnce(); err != nil {
			chatmark.Logger.Printf("render: %v", err)
		}
	})
}
