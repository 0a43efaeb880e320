package mei

import (
	"fmt"
	"strings"

	"github.com/sonovice/tusk-go/errors"
)

// Frame is one step of the validation path: the element tag and its
// 1-based position among the parent's element children.
type Frame struct {
	Tag   Tag
	Index int
}

// Context threads the validation path and the accumulated
// diagnostics through the recursive walk. It is passed by pointer to
// exactly one walk at a time and is not safe for concurrent use.
type Context struct {
	frames []Frame
	diags  errors.DiagnosticList
	enters int
	exits  int
}

// Mark is a scope guard for one path frame. Enter pushes the frame
// and returns the mark; the caller releases it with a deferred Exit
// so that no return path can leave the stack unbalanced.
type Mark struct {
	ctx   *Context
	depth int
}

// Enter pushes a (tag, index) frame and returns its release mark.
func (c *Context) Enter(tag Tag, index int) Mark {
	c.frames = append(c.frames, Frame{Tag: tag, Index: index})
	c.enters++
	return Mark{ctx: c, depth: len(c.frames)}
}

// Exit pops the frame pushed by the matching Enter. Calling Exit more
// than once is harmless.
func (m Mark) Exit() {
	if m.ctx == nil || m.depth == 0 {
		return
	}
	if len(m.ctx.frames) >= m.depth {
		m.ctx.frames = m.ctx.frames[:m.depth-1]
		m.ctx.exits++
	}
}

// Path renders the current location, e.g. "/mei[1]/music[1]/note[3]".
func (c *Context) Path() string {
	if len(c.frames) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, f := range c.frames {
		fmt.Fprintf(&sb, "/%s[%d]", f.Tag, f.Index)
	}
	return sb.String()
}

// Depth returns the current path depth.
func (c *Context) Depth() int {
	return len(c.frames)
}

// Report records a diagnostic at the current path.
func (c *Context) Report(code errors.Code, el *Element, format string, args ...any) {
	d := errors.Newf(code, c.Path(), format, args...)
	if el != nil {
		d.Line = el.Line
		d.Column = el.Column
	}
	c.diags = append(c.diags, d)
}

// Diagnostics returns the findings collected so far.
func (c *Context) Diagnostics() errors.DiagnosticList {
	return c.diags
}

// Balanced reports whether every Enter was matched by an Exit and the
// path stack is empty again.
func (c *Context) Balanced() bool {
	return c.enters == c.exits && len(c.frames) == 0
}
