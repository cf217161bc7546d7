package chatmark

import (
	"github.com/riverfjs/chatmark-go/internal/converter"
	"github.com/riverfjs/chatmark-go/internal/types"
)

// MentionConsumption 提及描述符的消费策略
type MentionConsumption = types.MentionConsumption

const (
	// ConsumeMatched removes only the descriptor that matched (default).
	ConsumeMatched = types.ConsumeMatched
	// ConsumeHead removes the head of the pool on every successful match.
	ConsumeHead = types.ConsumeHead
)

// DefaultMentionMark wraps the user name of a pending mention in message text.
const DefaultMentionMark = converter.DefaultMentionMark

// RenderOptions holds options for markdown rendering.
type RenderOptions struct {
	Theme       *Theme
	MentionMark string
	Consumption MentionConsumption
	Highlight   bool
	CodeStyle   string
}

// Option is a function that configures RenderOptions.
type Option func(*RenderOptions)

// WithTheme sets a custom Theme. A nil theme keeps the default.
func WithTheme(theme *Theme) Option {
	return func(opts *RenderOptions) {
		if theme != nil {
			opts.Theme = theme
		}
	}
}

// WithMentionMark sets the marker that wraps mention user names.
// An empty marker disables mention resolution.
func WithMentionMark(mark string) Option {
	return func(opts *RenderOptions) {
		opts.MentionMark = mark
	}
}

// WithMentionConsumption sets how descriptors are removed from the pool.
func WithMentionConsumption(policy MentionConsumption) Option {
	return func(opts *RenderOptions) {
		opts.Consumption = policy
	}
}

// WithHighlighting enables or disables syntax colouring of code blocks.
func WithHighlighting(enable bool) Option {
	return func(opts *RenderOptions) {
		opts.Highlight = enable
	}
}

// WithCodeStyle overrides the chroma style named by the theme.
func WithCodeStyle(style string) Option {
	return func(opts *RenderOptions) {
		opts.CodeStyle = style
	}
}

// defaultRenderOptions returns the default rendering options.
func defaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Theme:       DefaultTheme(),
		MentionMark: DefaultMentionMark,
		Consumption: ConsumeMatched,
		Highlight:   true,
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *RenderOptions {
	options := defaultRenderOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.CodeStyle != "" && options.CodeStyle != options.Theme.CodeStyle {
		theme := *options.Theme
		theme.CodeStyle = options.CodeStyle
		options.Theme = &theme
	}
	return options
}
