package parser

import (
	"github.com/goarxml/goarxml/constant"
	"github.com/goarxml/goarxml/xmltree"
)

// Frame holds the cross-cutting metadata tags read while parsing one
// element: SHORT-NAME, CATEGORY, DESC, LONG-NAME and ADMIN-DATA.
// Each field is written at most once per element.
type Frame struct {
	Name      string
	Category  string
	Desc      *constant.LangText
	LongName  *constant.LangText
	AdminData *constant.AdminData
}

// Context is a stack of Frames, one per metadata-aware parse in
// progress. Only the top frame is addressable. A Context belongs to a
// single parser instance and must not be shared between goroutines.
type Context struct {
	frames []*Frame
}

// Push stacks a fresh frame.
func (c *Context) Push() {
	c.frames = append(c.frames, &Frame{})
}

// Pop discards the top frame. When target is non-nil the frame's
// description and long name, if present, are copied onto it first.
func (c *Context) Pop(target constant.Describable) {
	f := c.top()
	if target != nil {
		if f.Desc != nil {
			target.SetDesc(*f.Desc)
		}
		if f.LongName != nil {
			target.SetLongName(*f.LongName)
		}
	}
	c.frames[len(c.frames)-1] = nil
	c.frames = c.frames[:len(c.frames)-1]
}

// Scope pushes a frame, runs fn and pops the frame on every exit path,
// including errors and panics. The target returned by fn receives the
// frame's description and long name, unless fn failed. fn must return
// an untyped nil when it produced nothing.
func (c *Context) Scope(fn func() (constant.Describable, error)) error {
	c.Push()
	var target constant.Describable
	defer func() { c.Pop(target) }()

	t, err := fn()
	if err != nil {
		return err
	}
	target = t
	return nil
}

// Depth returns the number of frames on the stack.
func (c *Context) Depth() int { return len(c.frames) }

// Top returns the top frame. It panics on an empty stack.
func (c *Context) Top() *Frame { return c.top() }

// Name returns the SHORT-NAME of the top frame.
func (c *Context) Name() string { return c.top().Name }

// AdminData returns the ADMIN-DATA of the top frame.
func (c *Context) AdminData() *constant.AdminData { return c.top().AdminData }

// Category returns the CATEGORY of the top frame.
func (c *Context) Category() string { return c.top().Category }

// Desc returns the DESC of the top frame.
func (c *Context) Desc() *constant.LangText { return c.top().Desc }

// LongName returns the LONG-NAME of the top frame.
func (c *Context) LongName() *constant.LangText { return c.top().LongName }

func (c *Context) top() *Frame {
	if len(c.frames) == 0 {
		panic("parser: context stack accessed before Push")
	}
	return c.frames[len(c.frames)-1]
}

// DefaultHandler records a cross-cutting tag into the top frame.
// Every other tag is an ErrUnsupportedTag; element parsers route all
// children they do not handle themselves through here, which makes it
// the single point where schema coverage is enforced.
func (c *Context) DefaultHandler(n xmltree.Node, parent string) error {
	f := c.top()
	switch n.Tag() {
	case "SHORT-NAME":
		f.Name = n.Text()
	case "ADMIN-DATA":
		ad, err := ParseAdminData(n)
		if err != nil {
			return err
		}
		f.AdminData = ad
	case "CATEGORY":
		f.Category = n.Text()
	case "DESC":
		desc, err := parseLangText(n, "L-2")
		if err != nil {
			return err
		}
		f.Desc = desc
	case "LONG-NAME":
		ln, err := parseLangText(n, "L-4")
		if err != nil {
			return err
		}
		f.LongName = ln
	default:
		return unsupported(n.Tag(), parent)
	}
	return nil
}
