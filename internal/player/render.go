package player

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Renderer displays the active caption. Render is called with the cue text
// on every resync that finds a current cue, Clear on every one that does not.
type Renderer interface {
	Render(text string)
	Clear()
}

// TextRenderer prints caption changes to a writer, one block per cue.
type TextRenderer struct {
	mu      sync.Mutex
	out     io.Writer
	prefix  string
	last    string
	showing bool
}

func NewTextRenderer(out io.Writer) *TextRenderer {
	return &TextRenderer{out: out, prefix: "  "}
}

func (r *TextRenderer) Render(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.showing && text == r.last {
		return
	}
	r.last = text
	r.showing = true

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		fmt.Fprintf(r.out, "%s%s\n", r.prefix, line)
	}
	fmt.Fprintln(r.out)
}

func (r *TextRenderer) Clear() {
	r.mu.Lock()
	r.showing = false
	r.last = ""
	r.mu.Unlock()
}

// text currently displayed, if any
func (r *TextRenderer) Showing() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.showing
}
