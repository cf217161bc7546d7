package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"

	"github.com/riverfjs/chatmark-go"
	"github.com/riverfjs/chatmark-go/internal/raster"
	"github.com/riverfjs/chatmark-go/internal/term"
)

const (
	formatANSI  = "ansi"
	formatPlain = "plain"
	formatPNG   = "png"
)

type renderer struct {
	cfg   *config
	theme *chatmark.Theme
}

// renderOnce 读取输入、渲染并写出一次
func (r *renderer) renderOnce() error {
	data, err := readInput(r.cfg.source())
	if err != nil {
		return err
	}

	text := string(data)
	var mentions []chatmark.DisplayMention
	if r.cfg.message != "" {
		msg, err := parseMessage(data)
		if err != nil {
			return err
		}
		self := chatmark.ParseQualifiedID(r.cfg.self)
		text, mentions = chatmark.MarkMentions(msg.Text, msg.Mentions, self)
	}

	blocks := chatmark.Render(text, mentions, r.options()...)

	var buf bytes.Buffer
	if err := r.write(&buf, blocks); err != nil {
		return err
	}
	return writeOutput(r.cfg.out, buf.Bytes())
}

func (r *renderer) options() []chatmark.Option {
	opts := []chatmark.Option{
		chatmark.WithTheme(r.theme),
		chatmark.WithHighlighting(!r.cfg.noHighlight),
	}
	if r.cfg.legacyMentions {
		opts = append(opts, chatmark.WithMentionConsumption(chatmark.ConsumeHead))
	}
	return opts
}

func (r *renderer) write(w io.Writer, blocks []chatmark.Block) error {
	switch r.cfg.format {
	case formatPlain:
		_, err := fmt.Fprintln(w, chatmark.Flatten(blocks, r.theme).Text)
		return err

	case formatPNG:
		img, err := raster.Render(blocks, raster.Options{Width: r.cfg.width, Theme: r.theme})
		if err != nil {
			return fmt.Errorf("render png: %w", err)
		}
		return raster.EncodePNG(w, img)

	default:
		profile := termenv.Ascii
		if r.cfg.out == "" {
			profile = termenv.NewOutput(os.Stdout).EnvColorProfile()
		}
		out := term.Render(blocks, term.Options{
			Width:      r.cfg.width,
			Hyperlinks: profile != termenv.Ascii,
			Profile:    profile,
			Theme:      r.theme,
		})
		_, err := fmt.Fprintln(w, out)
		return err
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
