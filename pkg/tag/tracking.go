package tag

// frame collects the tags consumed while it is the innermost tracking frame.
type frame struct {
	// ignore marks frames opened by Untrack. Consumed tags are dropped.
	ignore bool

	tags []Tag
	seen map[Tag]struct{}
}

func (f *frame) add(t Tag) {
	if f.ignore {
		return
	}
	if f.seen == nil {
		f.seen = make(map[Tag]struct{})
	}
	if _, ok := f.seen[t]; ok {
		return
	}
	f.seen[t] = struct{}{}
	f.tags = append(f.tags, t)
}

// trackingContext holds the stack of open tracking frames.
type trackingContext struct {
	frames []*frame
}

var tracking trackingContext

func (c *trackingContext) push(f *frame) {
	c.frames = append(c.frames, f)
}

func (c *trackingContext) pop() *frame {
	n := len(c.frames)
	f := c.frames[n-1]
	c.frames[n-1] = nil
	c.frames = c.frames[:n-1]
	return f
}

func (c *trackingContext) top() *frame {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

// Track runs fn inside a new tracking frame and returns a tag combining every
// tag consumed during the call. The frame is closed even if fn panics.
func Track(fn func()) Tag {
	f := &frame{}
	tracking.push(f)
	defer tracking.pop()

	fn()
	return Combine(f.tags)
}

// Consume registers t as a dependency of the innermost tracking frame. It is a
// no-op outside Track, inside Untrack, and for the Constant tag.
func Consume(t Tag) {
	if t == nil || t == Constant {
		return
	}
	if f := tracking.top(); f != nil {
		f.add(t)
	}
}

// Untrack runs fn with dependency registration suspended.
func Untrack(fn func()) {
	tracking.push(&frame{ignore: true})
	defer tracking.pop()
	fn()
}

// IsTracking reports whether a tracking frame that records dependencies is
// currently open.
func IsTracking() bool {
	f := tracking.top()
	return f != nil && !f.ignore
}

// Depth returns the number of open tracking frames, including Untrack frames.
func Depth() int {
	return len(tracking.frames)
}
