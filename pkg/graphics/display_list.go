package graphics

import "github.com/go-quill/quill/pkg/geometry"

// Op is a single recorded drawing operation.
type Op interface {
	replay(canvas Canvas)
}

// SaveOp records a Canvas.Save call.
type SaveOp struct{}

// RestoreOp records a Canvas.Restore call.
type RestoreOp struct{}

// TranslateOp records a Canvas.Translate call.
type TranslateOp struct {
	Dx, Dy float64
}

// ClipRectOp records a Canvas.ClipRect call.
type ClipRectOp struct {
	Rect geometry.Rect
}

// ClearOp records a Canvas.Clear call.
type ClearOp struct {
	Color Color
}

// RectOp records a Canvas.DrawRect call.
type RectOp struct {
	Rect  geometry.Rect
	Paint Paint
}

// LineOp records a Canvas.DrawLine call.
type LineOp struct {
	Start, End geometry.Offset
	Paint      Paint
}

// CircleOp records a Canvas.DrawCircle call.
type CircleOp struct {
	Center geometry.Offset
	Radius float64
	Paint  Paint
}

// TextOp records a Canvas.DrawText call.
type TextOp struct {
	Text   string
	Origin geometry.Offset
	Paint  Paint
}

func (op SaveOp) replay(c Canvas)      { c.Save() }
func (op RestoreOp) replay(c Canvas)   { c.Restore() }
func (op TranslateOp) replay(c Canvas) { c.Translate(op.Dx, op.Dy) }
func (op ClipRectOp) replay(c Canvas)  { c.ClipRect(op.Rect) }
func (op ClearOp) replay(c Canvas)     { c.Clear(op.Color) }
func (op RectOp) replay(c Canvas)      { c.DrawRect(op.Rect, op.Paint) }
func (op LineOp) replay(c Canvas)      { c.DrawLine(op.Start, op.End, op.Paint) }
func (op CircleOp) replay(c Canvas)    { c.DrawCircle(op.Center, op.Radius, op.Paint) }
func (op TextOp) replay(c Canvas)      { c.DrawText(op.Text, op.Origin, op.Paint) }

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []Op
	size geometry.Size
}

// Replay executes the recorded operations against the provided canvas.
func (d *DisplayList) Replay(canvas Canvas) {
	for _, op := range d.ops {
		op.replay(canvas)
	}
}

// Ops returns the recorded operations in order. The slice must not be modified.
func (d *DisplayList) Ops() []Op {
	return d.ops
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() geometry.Size {
	return d.size
}

// Recorder records drawing commands into a display list.
type Recorder struct {
	ops       []Op
	recording bool
	size      geometry.Size
}

// Begin starts a new recording session and returns the recording canvas.
func (r *Recorder) Begin(size geometry.Size) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r}
}

// End finishes the recording and returns a display list.
func (r *Recorder) End() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]Op, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{ops: ops, size: r.size}
}

func (r *Recorder) append(op Op) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

type recordingCanvas struct {
	recorder *Recorder
}

func (c *recordingCanvas) Save()    { c.recorder.append(SaveOp{}) }
func (c *recordingCanvas) Restore() { c.recorder.append(RestoreOp{}) }

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.recorder.append(TranslateOp{Dx: dx, Dy: dy})
}

func (c *recordingCanvas) ClipRect(rect geometry.Rect) {
	c.recorder.append(ClipRectOp{Rect: rect})
}

func (c *recordingCanvas) Clear(color Color) {
	c.recorder.append(ClearOp{Color: color})
}

func (c *recordingCanvas) DrawRect(rect geometry.Rect, paint Paint) {
	c.recorder.append(RectOp{Rect: rect, Paint: paint})
}

func (c *recordingCanvas) DrawLine(start, end geometry.Offset, paint Paint) {
	c.recorder.append(LineOp{Start: start, End: end, Paint: paint})
}

func (c *recordingCanvas) DrawCircle(center geometry.Offset, radius float64, paint Paint) {
	c.recorder.append(CircleOp{Center: center, Radius: radius, Paint: paint})
}

func (c *recordingCanvas) DrawText(text string, origin geometry.Offset, paint Paint) {
	c.recorder.append(TextOp{Text: text, Origin: origin, Paint: paint})
}
