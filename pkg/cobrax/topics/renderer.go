package topics

// Renderer defines the interface for rendering topic content
type Renderer interface {
	// Render takes raw content and returns formatted content for terminal display
	Render(content string, format string) string
}

// ForTTY picks the renderer appropriate for the output destination:
// rich markdown rendering on terminals, pass-through everywhere else.
func ForTTY(tty bool) Renderer {
	if tty {
		return NewGlamourRenderer()
	}
	return &PlainRenderer{}
}

// PlainRenderer is the default renderer that returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
