package gptrouter

// Options contains per-call configuration for a generate request.
type Options struct {
	Metadata Metadata
}

// Option is a functional option for configuring generate requests.
type Option func(*Options)

// WithMetadata merges md into the call-site metadata.
// Later options override earlier ones key by key.
func WithMetadata(md Metadata) Option {
	return func(o *Options) {
		for k, v := range md {
			o.set(k, v)
		}
	}
}

// WithTag sets the call-site tag.
func WithTag(tag string) Option {
	return func(o *Options) {
		o.set(MetaTag, tag)
	}
}

// WithCreatedByUserID sets the call-site creating user.
func WithCreatedByUserID(id any) Option {
	return func(o *Options) {
		o.set(MetaCreatedByUserID, id)
	}
}

// WithHistoryID sets the call-site history ID.
func WithHistoryID(id any) Option {
	return func(o *Options) {
		o.set(MetaHistoryID, id)
	}
}

func (o *Options) set(key string, value any) {
	if o.Metadata == nil {
		o.Metadata = Metadata{}
	}
	o.Metadata[key] = value
}

// ApplyOptions applies functional options to an Options struct.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
