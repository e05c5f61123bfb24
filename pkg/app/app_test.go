package app

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/errors"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/graphics"
	"github.com/go-quill/quill/pkg/shell"
	"github.com/go-quill/quill/pkg/widget"
)

type model struct {
	N float64
}

func (m model) Same(other model) bool {
	return m == other
}

// probe records every pass it receives and runs scripted hooks.
type probe struct {
	log         *[]string
	onEvent     func(ctx *widget.EventCtx, ev widget.Event, d *model)
	onLifecycle func(ctx *widget.LifeCycleCtx, ev widget.LifeCycle)
	updates     int
}

func (p *probe) record(what string) {
	*p.log = append(*p.log, what)
}

func (p *probe) Event(ctx *widget.EventCtx, ev widget.Event, d *model, e env.Env) {
	p.record(fmt.Sprintf("event:%T", ev))
	if p.onEvent != nil {
		p.onEvent(ctx, ev, d)
	}
}

func (p *probe) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *model, e env.Env) {
	p.record(fmt.Sprintf("lifecycle:%T", ev))
	if p.onLifecycle != nil {
		p.onLifecycle(ctx, ev)
	}
}

func (p *probe) Update(ctx *widget.UpdateCtx, old, new *model, e env.Env) {
	p.updates++
	p.record("update")
}

func (p *probe) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *model, e env.Env) geometry.Size {
	p.record("layout")
	return bc.Constrain(geometry.Size{Width: 10, Height: 10})
}

func (p *probe) Paint(ctx *widget.PaintCtx, d *model, e env.Env) {
	p.record("paint")
}

type appFixture struct {
	app   *AppRoot[model]
	win   *shell.Headless
	probe *probe
	log   []string
}

func newApp(t *testing.T) *appFixture {
	t.Helper()
	f := &appFixture{win: shell.NewHeadless()}
	f.probe = &probe{log: &f.log}
	f.app = NewAppRoot[model](f.probe, model{}, env.Empty(), f.win)
	return f
}

// render establishes the window size and runs layout and paint once.
func (f *appFixture) render(w, h float64) *graphics.DisplayList {
	f.app.HandleEvent(widget.WindowSize{Size: geometry.Size{Width: w, Height: h}})
	var rec graphics.Recorder
	canvas := rec.Begin(geometry.Size{Width: w, Height: h})
	f.app.Render(canvas)
	return rec.End()
}

func (f *appFixture) has(entry string) bool {
	for _, l := range f.log {
		if l == entry {
			return true
		}
	}
	return false
}

func TestMountDeliversWidgetAdded(t *testing.T) {
	f := newApp(t)
	if len(f.log) == 0 || f.log[0] != "lifecycle:widget.WidgetAdded" {
		t.Fatalf("first delivery = %v, want WidgetAdded", f.log)
	}
	if !f.app.Root().IsInitialized() {
		t.Fatal("root pod not initialized after mount")
	}
}

func TestWindowSizeDrivesLayoutAndPaint(t *testing.T) {
	f := newApp(t)
	f.render(200, 100)
	if !f.has("layout") || !f.has("paint") {
		t.Fatalf("render passes missing, log = %v", f.log)
	}
	got := f.app.Root().Size()
	want := geometry.Size{Width: 200, Height: 100}
	if got != want {
		t.Fatalf("root size = %v, want %v (tight window constraints)", got, want)
	}
}

func TestCommandDispatchedAfterEventPass(t *testing.T) {
	f := newApp(t)
	f.render(100, 100)
	f.probe.onEvent = func(ctx *widget.EventCtx, ev widget.Event, d *model) {
		if _, ok := ev.(widget.MouseDown); ok {
			ctx.Submit(widget.NewCommand("test.ping", 42))
			f.log = append(f.log, "submitted")
		}
	}
	f.app.HandleEvent(widget.MouseDown{Mouse: widget.Mouse{Pos: geometry.Offset{X: 5, Y: 5}}})

	// The command pass must start only after the submitting pass returned.
	var submitted, dispatched int = -1, -1
	for i, l := range f.log {
		switch l {
		case "submitted":
			submitted = i
		case "event:widget.CommandEvent":
			dispatched = i
		}
	}
	if submitted == -1 || dispatched == -1 || dispatched < submitted {
		t.Fatalf("command dispatch order wrong, log = %v", f.log)
	}
}

func TestFocusRouting(t *testing.T) {
	f := newApp(t)
	f.render(100, 100)
	f.probe.onEvent = func(ctx *widget.EventCtx, ev widget.Event, d *model) {
		if _, ok := ev.(widget.MouseDown); ok {
			ctx.RequestFocus()
		}
	}
	f.app.HandleEvent(widget.MouseDown{Mouse: widget.Mouse{Pos: geometry.Offset{X: 5, Y: 5}}})
	if f.app.Focused() != f.app.Root().ID() {
		t.Fatalf("focus = %v, want root pod %v", f.app.Focused(), f.app.Root().ID())
	}
	if !f.has("lifecycle:widget.FocusChanged") {
		t.Fatalf("FocusChanged not delivered, log = %v", f.log)
	}
}

func TestDisabledRoutingAndEventBlocking(t *testing.T) {
	f := newApp(t)
	f.render(100, 100)
	f.probe.onEvent = func(ctx *widget.EventCtx, ev widget.Event, d *model) {
		switch ev.(type) {
		case widget.MouseDown:
			ctx.RequestFocus()
		case widget.KeyDown:
			ctx.SetDisabled(true)
		}
	}
	f.app.HandleEvent(widget.MouseDown{Mouse: widget.Mouse{Pos: geometry.Offset{X: 5, Y: 5}}})
	f.app.HandleEvent(widget.KeyDown{Key: widget.Key{Name: "d"}})
	if !f.has("lifecycle:widget.DisabledChanged") {
		t.Fatalf("DisabledChanged not delivered, log = %v", f.log)
	}
	// Disabling drops focus.
	if f.app.Focused() != widget.NoWidget {
		t.Fatalf("focus = %v after disable, want none", f.app.Focused())
	}
	before := len(f.log)
	f.app.HandleEvent(widget.KeyDown{Key: widget.Key{Name: "x"}})
	for _, l := range f.log[before:] {
		if l == "event:widget.KeyDown" {
			t.Fatal("disabled widget received a key event")
		}
	}
}

func TestKeyEventsRequireFocus(t *testing.T) {
	f := newApp(t)
	f.render(100, 100)
	f.probe.onEvent = func(ctx *widget.EventCtx, ev widget.Event, d *model) {
		if _, ok := ev.(widget.MouseDown); ok {
			ctx.RequestFocus()
		}
	}
	f.app.HandleEvent(widget.KeyDown{Key: widget.Key{Name: "x"}})
	if f.has("event:widget.KeyDown") {
		t.Fatalf("key delivered without focus, log = %v", f.log)
	}
	f.app.HandleEvent(widget.MouseDown{Mouse: widget.Mouse{Pos: geometry.Offset{X: 5, Y: 5}}})
	f.app.HandleEvent(widget.KeyDown{Key: widget.Key{Name: "x"}})
	if !f.has("event:widget.KeyDown") {
		t.Fatalf("focused widget missed the key, log = %v", f.log)
	}
}

func TestDataMutationReachesUpdate(t *testing.T) {
	f := newApp(t)
	f.render(100, 100)
	f.probe.onEvent = func(ctx *widget.EventCtx, ev widget.Event, d *model) {
		if _, ok := ev.(widget.MouseDown); ok {
			d.N++
		}
	}
	f.app.HandleEvent(widget.MouseDown{Mouse: widget.Mouse{Pos: geometry.Offset{X: 5, Y: 5}}})
	if f.probe.updates != 1 {
		t.Fatalf("updates = %d, want 1", f.probe.updates)
	}
	if f.app.Data().N != 1 {
		t.Fatalf("data = %v, want N=1", f.app.Data())
	}
}

func TestUpdateShortCircuitsWithoutMutation(t *testing.T) {
	f := newApp(t)
	f.render(100, 100)
	f.app.HandleEvent(widget.MouseDown{Mouse: widget.Mouse{Pos: geometry.Offset{X: 5, Y: 5}}})
	if f.probe.updates != 0 {
		t.Fatalf("updates = %d, want 0 for unchanged data", f.probe.updates)
	}
}

func TestUpdateDataOutsideEventPass(t *testing.T) {
	f := newApp(t)
	f.app.UpdateData(func(m *model) { m.N = 7 })
	if f.probe.updates != 1 {
		t.Fatalf("updates = %d, want 1", f.probe.updates)
	}
	if f.app.Data().N != 7 {
		t.Fatalf("data = %v, want N=7", f.app.Data())
	}
}

func TestSetEnvTriggersUpdate(t *testing.T) {
	key := env.NewKey[float64]("test.set-env")
	f := newApp(t)
	f.app.SetEnv(env.Adding(f.app.Env(), key, 1.5))
	if f.probe.updates != 1 {
		t.Fatalf("updates = %d, want 1 after env swap", f.probe.updates)
	}
}

func TestCloseRequestHonoredWhenUnhandled(t *testing.T) {
	f := newApp(t)
	f.app.HandleEvent(widget.WindowCloseRequested{})
	if !f.win.Closed {
		t.Fatal("window not closed after unvetoed close request")
	}
}

func TestCloseRequestVetoedWhenHandled(t *testing.T) {
	f := newApp(t)
	f.probe.onEvent = func(ctx *widget.EventCtx, ev widget.Event, d *model) {
		if _, ok := ev.(widget.WindowCloseRequested); ok {
			ctx.SetHandled()
		}
	}
	f.app.HandleEvent(widget.WindowCloseRequested{})
	if f.win.Closed {
		t.Fatal("handled close request still closed the window")
	}
}

func TestAnimationFrameOnlyWhenRequested(t *testing.T) {
	f := newApp(t)
	f.render(100, 100)
	f.app.AnimationFrame(16 * time.Millisecond)
	if f.has("event:widget.AnimFrame") {
		t.Fatal("AnimFrame delivered without a request")
	}

	f.probe.onEvent = func(ctx *widget.EventCtx, ev widget.Event, d *model) {
		if _, ok := ev.(widget.MouseDown); ok {
			ctx.RequestAnimFrame()
		}
	}
	f.app.HandleEvent(widget.MouseDown{Mouse: widget.Mouse{Pos: geometry.Offset{X: 5, Y: 5}}})
	if !f.app.WantsAnimFrame() {
		t.Fatal("anim frame request did not reach the root")
	}
	f.app.AnimationFrame(16 * time.Millisecond)
	if !f.has("event:widget.AnimFrame") {
		t.Fatalf("AnimFrame not delivered, log = %v", f.log)
	}
	if f.app.WantsAnimFrame() {
		t.Fatal("anim frame request not cleared after delivery")
	}
}

func TestTimerFlowsThroughPipeline(t *testing.T) {
	f := newApp(t)
	f.render(100, 100)
	f.probe.onEvent = func(ctx *widget.EventCtx, ev widget.Event, d *model) {
		if _, ok := ev.(widget.MouseDown); ok {
			ctx.RequestTimer(50 * time.Millisecond)
		}
	}
	f.app.HandleEvent(widget.MouseDown{Mouse: widget.Mouse{Pos: geometry.Offset{X: 5, Y: 5}}})
	fired := f.win.AdvanceTime(60 * time.Millisecond)
	if len(fired) != 1 {
		t.Fatalf("fired timers = %d, want 1", len(fired))
	}
	f.app.FireTimer(fired[0])
	if !f.has("event:widget.Timer") {
		t.Fatalf("Timer not routed, log = %v", f.log)
	}
}

type panicRecorder struct {
	panics []*errors.PanicError
}

func (r *panicRecorder) HandleError(*errors.FrameworkError) {}

func (r *panicRecorder) HandlePanic(err *errors.PanicError) {
	r.panics = append(r.panics, err)
}

func TestWidgetPanicIsRecovered(t *testing.T) {
	rec := &panicRecorder{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })

	f := newApp(t)
	f.render(100, 100)
	f.probe.onEvent = func(ctx *widget.EventCtx, ev widget.Event, d *model) {
		if _, ok := ev.(widget.MouseDown); ok {
			panic("widget bug")
		}
	}
	f.app.HandleEvent(widget.MouseDown{Mouse: widget.Mouse{Pos: geometry.Offset{X: 5, Y: 5}}})
	if len(rec.panics) != 1 {
		t.Fatalf("recovered panics = %d, want 1", len(rec.panics))
	}
	if !strings.Contains(rec.panics[0].Error(), "widget bug") {
		t.Fatalf("panic error = %v", rec.panics[0])
	}

	// The pipeline must survive: later events are still delivered.
	f.probe.onEvent = nil
	before := len(f.log)
	f.app.HandleEvent(widget.MouseDown{Mouse: widget.Mouse{Pos: geometry.Offset{X: 6, Y: 6}}})
	if len(f.log) == before {
		t.Fatal("tree stopped receiving events after a recovered panic")
	}
}

func TestExternalHandleSubmission(t *testing.T) {
	f := newApp(t)
	h := f.app.ExternalHandle()

	wakes := f.win.InvalidateCount
	h.Submit(widget.NewCommand("test.external", "payload"))
	if f.win.InvalidateCount <= wakes {
		t.Fatal("external submission did not wake the window")
	}
	if f.has("event:widget.CommandEvent") {
		t.Fatal("command dispatched before PumpExternal")
	}
	f.app.PumpExternal()
	if !f.has("event:widget.CommandEvent") {
		t.Fatalf("external command not dispatched, log = %v", f.log)
	}
}
