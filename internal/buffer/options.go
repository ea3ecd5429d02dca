package buffer

// Option configures a Buffer at construction time.
type Option func(*Buffer)

// WithEOL forces the buffer's line terminator instead of auto-detecting
// it from the initial content.
func WithEOL(eol EOL) Option {
	return func(b *Buffer) { b.eol = eol; b.eolForced = true }
}

// WithTabWidth sets the tab width (in columns) that TabWidth reports.
// Defaults to 4. The buffer only stores it; the text model's indent
// guides use the model's own tab size, and bracket matching uses none.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// WithBOM records that the source carried a byte-order mark, so it is
// re-emitted by serialization helpers.
func WithBOM(present bool) Option {
	return func(b *Buffer) { b.bom = present }
}
