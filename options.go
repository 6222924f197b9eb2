package mixfence

// Options holds options for rendering.
type Options struct {
	Config *RenderConfig
}

// Option is a function that configures Options.
type Option func(*Options)

// WithConfig replaces the whole RenderConfig. Options applied after it
// still take effect.
func WithConfig(config *RenderConfig) Option {
	return func(opts *Options) {
		if config == nil {
			return
		}
		c := *config
		opts.Config = &c
	}
}

// WithLanguage sets the language tag written after the opening fence.
func WithLanguage(language string) Option {
	return func(opts *Options) {
		opts.Config.Language = language
	}
}

// WithLineBoundedQuotes keeps single- and double-quoted literals on one line
// when escaping. Triple-quoted literals may still span lines.
func WithLineBoundedQuotes(enable bool) Option {
	return func(opts *Options) {
		opts.Config.LineBoundedQuotes = enable
	}
}

// WithPreserveFences passes regions that are already fenced through untouched.
func WithPreserveFences(enable bool) Option {
	return func(opts *Options) {
		opts.Config.PreserveFences = enable
	}
}

// defaultOptions returns a fresh copy of the default options.
func defaultOptions() *Options {
	c := *DefaultConfig()
	return &Options{Config: &c}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *Options {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}
