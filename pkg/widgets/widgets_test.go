package widgets

import (
	"fmt"
	"testing"

	"github.com/go-quill/quill/pkg/data"
	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/geometry"
	"github.com/go-quill/quill/pkg/graphics"
	"github.com/go-quill/quill/pkg/lens"
	"github.com/go-quill/quill/pkg/shell"
	"github.com/go-quill/quill/pkg/theme"
	"github.com/go-quill/quill/pkg/widget"
)

type item struct {
	N float64
}

func (i item) Same(other item) bool { return i == other }

type pair struct {
	Left, Right item
}

func (p pair) Same(other pair) bool {
	return p.Left.Same(other.Left) && p.Right.Same(other.Right)
}

var (
	leftLens  = lens.Field(func(p *pair) *item { return &p.Left })
	rightLens = lens.Field(func(p *pair) *item { return &p.Right })
)

// probe is a scriptable leaf recording every pass it receives.
type probe[T data.Data[T]] struct {
	size    geometry.Size
	events  []string
	updates int
	layouts int
	lastBC  geometry.Constraints
	onEvent func(ctx *widget.EventCtx, ev widget.Event, d *T, e env.Env)
}

func newProbe[T data.Data[T]]() *probe[T] {
	return &probe[T]{size: geometry.Size{Width: 10, Height: 10}}
}

func (p *probe[T]) Event(ctx *widget.EventCtx, ev widget.Event, d *T, e env.Env) {
	p.events = append(p.events, fmt.Sprintf("event:%T", ev))
	if p.onEvent != nil {
		p.onEvent(ctx, ev, d, e)
	}
}

func (p *probe[T]) Lifecycle(ctx *widget.LifeCycleCtx, ev widget.LifeCycle, d *T, e env.Env) {
	p.events = append(p.events, fmt.Sprintf("lifecycle:%T", ev))
}

func (p *probe[T]) Update(ctx *widget.UpdateCtx, old, new *T, e env.Env) {
	p.updates++
}

func (p *probe[T]) Layout(ctx *widget.LayoutCtx, bc geometry.Constraints, d *T, e env.Env) geometry.Size {
	p.layouts++
	p.lastBC = bc
	return bc.Constrain(p.size)
}

func (p *probe[T]) Paint(ctx *widget.PaintCtx, d *T, e env.Env) {
	ctx.Canvas.DrawRect(p.size.ToRect(), graphics.FillPaint(graphics.ColorWhite))
}

func (p *probe[T]) saw(entry string) bool {
	for _, e := range p.events {
		if e == entry {
			return true
		}
	}
	return false
}

// tree drives passes over a mounted widget tree.
type tree[T data.Data[T]] struct {
	t    *testing.T
	root *widget.Root[T]
	win  *shell.Headless
	data T
	env  env.Env
}

func mountTree[T data.Data[T]](t *testing.T, w widget.Widget[T], d T) *tree[T] {
	t.Helper()
	tr := &tree[T]{t: t, win: shell.NewHeadless(), data: d, env: theme.Default(env.Empty())}
	tr.root = widget.NewRoot(w, widget.NewContextState(tr.win, &widget.CommandQueue{}))
	tr.root.SendLifecycle(widget.WidgetAdded{}, &tr.data, tr.env)
	return tr
}

func (tr *tree[T]) layout(w, h float64) geometry.Size {
	return tr.root.RunLayout(geometry.Size{Width: w, Height: h}, &tr.data, tr.env)
}

func (tr *tree[T]) update() {
	tr.root.RunUpdate(&tr.data, tr.env)
}

func (tr *tree[T]) event(ev widget.Event) {
	tr.root.SendEvent(ev, &tr.data, tr.env)
}

func (tr *tree[T]) routeAdded() {
	tr.root.SendLifecycle(widget.RouteWidgetAdded{}, &tr.data, tr.env)
}

func (tr *tree[T]) paint() *graphics.DisplayList {
	var rec graphics.Recorder
	canvas := rec.Begin(tr.root.Pod().Size())
	tr.root.PaintInto(canvas, &tr.data, tr.env)
	return rec.End()
}

func click(x, y float64) (widget.MouseDown, widget.MouseUp) {
	m := widget.Mouse{Pos: geometry.Offset{X: x, Y: y}, Button: widget.ButtonLeft, Count: 1}
	return widget.MouseDown{Mouse: m}, widget.MouseUp{Mouse: m}
}

// A change to one field of the shared data must reach only the subtree
// lensed onto that field; siblings stay short-circuited.
func TestLensSelectiveUpdate(t *testing.T) {
	left, right := newProbe[item](), newProbe[item]()
	root := Row[pair]().
		Add(Lensed(leftLens, left)).
		Add(Lensed(rightLens, right))
	tr := mountTree[pair](t, root, pair{})

	tr.update()
	if left.updates != 0 || right.updates != 0 {
		t.Fatalf("updates before any change: left=%d right=%d", left.updates, right.updates)
	}

	tr.data.Left.N = 5
	tr.update()
	if left.updates != 1 {
		t.Fatalf("left updates = %d, want 1", left.updates)
	}
	if right.updates != 0 {
		t.Fatalf("right updates = %d, want 0 (unchanged field)", right.updates)
	}
}

func TestLensWritebackOnEvent(t *testing.T) {
	left := newProbe[item]()
	left.onEvent = func(ctx *widget.EventCtx, ev widget.Event, d *item, e env.Env) {
		d.N = 7
	}
	tr := mountTree[pair](t, Lensed(leftLens, left), pair{})
	tr.layout(100, 100)
	down, _ := click(5, 5)
	tr.event(down)
	if tr.data.Left.N != 7 {
		t.Fatalf("whole after event = %+v, want Left.N=7", tr.data)
	}
	if tr.data.Right.N != 0 {
		t.Fatalf("sibling field touched: %+v", tr.data)
	}
}

func TestEnvScopeOverrideVisibleToChild(t *testing.T) {
	key := env.NewKey[float64]("widgets-test.scale")
	p := newProbe[item]()
	seen := -1.0
	p.onEvent = func(ctx *widget.EventCtx, ev widget.Event, d *item, e env.Env) {
		seen = env.GetOr(e, key, -1)
	}
	tr := mountTree[item](t, Scoped(func(e env.Env) env.Env {
		return env.Adding(e, key, 2)
	}, p), item{})
	tr.layout(100, 100)
	down, _ := click(5, 5)
	tr.event(down)
	if seen != 2 {
		t.Fatalf("child saw %v, want the scoped binding 2", seen)
	}
}

// The scope derives its environment once per incoming identity, so a data
// change elsewhere must not defeat the scoped child's short-circuit.
func TestEnvScopePreservesShortCircuit(t *testing.T) {
	key := env.NewKey[float64]("widgets-test.gap")
	scopedLeft, right := newProbe[item](), newProbe[item]()
	root := Row[pair]().
		Add(Scoped(func(e env.Env) env.Env {
			return env.Adding(e, key, 4)
		}, Lensed(leftLens, scopedLeft))).
		Add(Lensed(rightLens, right))
	tr := mountTree[pair](t, root, pair{})

	tr.data.Right.N = 3
	tr.update()
	if right.updates != 1 {
		t.Fatalf("right updates = %d, want 1", right.updates)
	}
	if scopedLeft.updates != 0 {
		t.Fatalf("scoped left updates = %d, want 0", scopedLeft.updates)
	}
}

func TestEitherSwitchesBranches(t *testing.T) {
	onTrue, onFalse := newProbe[item](), newProbe[item]()
	either := EitherOf(func(d *item, e env.Env) bool { return d.N > 0 },
		onTrue, onFalse)
	tr := mountTree[item](t, Aligned(0, 0, either), item{})
	tr.layout(100, 100)
	if onFalse.layouts != 1 || onTrue.layouts != 0 {
		t.Fatalf("layouts = true:%d false:%d, want only the false branch", onTrue.layouts, onFalse.layouts)
	}

	down, _ := click(5, 5)
	tr.event(down)
	if onTrue.saw("event:widget.MouseDown") {
		t.Fatal("hidden branch received an event")
	}
	if !onFalse.saw("event:widget.MouseDown") {
		t.Fatal("visible branch missed the event")
	}

	tr.data.N = 1
	tr.update()
	if onTrue.updates != 1 {
		t.Fatalf("newly shown branch updates = %d, want 1 (catch up)", onTrue.updates)
	}
	if !tr.root.Pod().NeedsLayout() {
		t.Fatal("branch switch did not request layout")
	}
	tr.layout(100, 100)
	if onTrue.layouts != 1 {
		t.Fatalf("true branch layouts = %d, want 1 after switch", onTrue.layouts)
	}
	down2, _ := click(5, 5)
	tr.event(down2)
	if !onTrue.saw("event:widget.MouseDown") {
		t.Fatal("shown branch missed the event after switch")
	}
}

func TestFlexRowPositionsChildren(t *testing.T) {
	a, b := newProbe[item](), newProbe[item]()
	a.size = geometry.Size{Width: 20, Height: 10}
	b.size = geometry.Size{Width: 30, Height: 40}
	row := Row[item]().WithSpacing(5).Add(a).Add(b)
	tr := mountTree[item](t, Aligned(0, 0, row), item{})
	tr.layout(200, 100)

	pods := row.ChildPods()
	if got := pods[0].Origin(); got != (geometry.Offset{}) {
		t.Fatalf("first child origin = %v, want (0,0)", got)
	}
	if got := pods[1].Origin(); got != (geometry.Offset{X: 25}) {
		t.Fatalf("second child origin = %v, want (25,0)", got)
	}
	if got := pods[1].Size(); got != b.size {
		t.Fatalf("second child size = %v, want %v", got, b.size)
	}
}

func TestFlexCrossCenterAlignment(t *testing.T) {
	a, b := newProbe[item](), newProbe[item]()
	a.size = geometry.Size{Width: 20, Height: 10}
	b.size = geometry.Size{Width: 30, Height: 40}
	row := Row[item]().WithCrossAlignment(CrossCenter).Add(a).Add(b)
	tr := mountTree[item](t, Aligned(0, 0, row), item{})
	tr.layout(200, 100)

	if got := row.ChildPods()[0].Origin(); got != (geometry.Offset{Y: 15}) {
		t.Fatalf("short child origin = %v, want centered at (0,15)", got)
	}
}

func TestFlexDistributesRemainder(t *testing.T) {
	a, b := newProbe[item](), newProbe[item]()
	row := Row[item]().AddFlex(a, 1).AddFlex(b, 3)
	tr := mountTree[item](t, Aligned(0, 0, Sized(100, 20, row)), item{})
	tr.layout(200, 100)

	pods := row.ChildPods()
	if got := pods[0].Size().Width; got != 25 {
		t.Fatalf("flex-1 width = %v, want 25", got)
	}
	if got := pods[1].Size().Width; got != 75 {
		t.Fatalf("flex-3 width = %v, want 75", got)
	}
	if got := pods[1].Origin(); got != (geometry.Offset{X: 25}) {
		t.Fatalf("flex-3 origin = %v, want (25,0)", got)
	}
}

func TestPaddingCarvesInsets(t *testing.T) {
	p := newProbe[item]()
	pad := Padded(geometry.Insets{Left: 3, Top: 4, Right: 5, Bottom: 6}, p)
	tr := mountTree[item](t, pad, item{})
	tr.layout(100, 100)

	if got := p.lastBC.MaxWidth; got != 92 {
		t.Fatalf("child max width = %v, want 92 (100 - 8 horizontal insets)", got)
	}
	var found bool
	for _, op := range tr.paint().Ops() {
		if tOp, ok := op.(graphics.TranslateOp); ok && tOp == (graphics.TranslateOp{Dx: 3, Dy: 4}) {
			found = true
		}
	}
	if !found {
		t.Fatal("child not translated by the top-left insets")
	}
}

func TestSizedBoxTightensConstraints(t *testing.T) {
	p := newProbe[item]()
	tr := mountTree[item](t, Aligned(0, 0, Sized(40, 30, p)), item{})
	tr.layout(100, 100)
	wantBC := geometry.Constraints{MinWidth: 40, MaxWidth: 40, MinHeight: 30, MaxHeight: 30}
	if p.lastBC != wantBC {
		t.Fatalf("child constraints = %+v, want tight 40x30", p.lastBC)
	}
}

func TestFixedWidthLeavesHeightAlone(t *testing.T) {
	p := newProbe[item]()
	tr := mountTree[item](t, Aligned(0, 0, FixedWidth(40, p)), item{})
	tr.layout(100, 100)
	if p.lastBC.MinWidth != 40 || p.lastBC.MaxWidth != 40 {
		t.Fatalf("width not fixed: %+v", p.lastBC)
	}
	if p.lastBC.MinHeight != 0 || p.lastBC.MaxHeight != 100 {
		t.Fatalf("height bounds changed: %+v", p.lastBC)
	}
}

func TestLabelFollowsData(t *testing.T) {
	label := NewLabel(func(d *item, e env.Env) string {
		return fmt.Sprintf("%.0f", d.N)
	})
	tr := mountTree[item](t, Aligned(0, 0, label), item{})
	tr.layout(100, 100)

	tr.data.N = 10
	tr.update()
	if !tr.root.Pod().NeedsLayout() {
		t.Fatal("text change did not request layout")
	}
	tr.layout(100, 100)
	var texts []string
	for _, op := range tr.paint().Ops() {
		if tOp, ok := op.(graphics.TextOp); ok {
			texts = append(texts, tOp.Text)
		}
	}
	if len(texts) != 1 || texts[0] != "10" {
		t.Fatalf("painted text = %v, want [10]", texts)
	}
}

func TestButtonFiresOnReleaseInside(t *testing.T) {
	fired := 0
	btn := NewButton("go", func(ctx *widget.EventCtx, d *item, e env.Env) {
		fired++
	})
	tr := mountTree[item](t, Aligned(0, 0, btn), item{})
	tr.layout(200, 200)

	down, up := click(5, 5)
	tr.event(down)
	tr.event(up)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1 for press and release inside", fired)
	}

	// Press inside, release outside: the grab delivers the release, but
	// the action must not fire.
	tr.event(down)
	outside, _ := click(150, 150)
	tr.event(widget.MouseUp{Mouse: outside.Mouse})
	if fired != 1 {
		t.Fatalf("fired = %d, want 1 after release outside", fired)
	}
}

func TestListFollowsDataLength(t *testing.T) {
	var probes []*probe[item]
	list := ListOf(func() widget.Widget[item] {
		p := newProbe[item]()
		probes = append(probes, p)
		return p
	})
	tr := mountTree[data.List[item]](t, list, data.NewList(item{N: 1}, item{N: 2}))
	tr.layout(100, 100)
	if len(list.ChildPods()) != 2 {
		t.Fatalf("children = %d, want 2", len(list.ChildPods()))
	}

	tr.data = tr.data.Append(item{N: 3})
	tr.update()
	if !tr.root.State().TakeChildrenChanged() {
		t.Fatal("appending an element did not flag a structural change")
	}
	tr.routeAdded()
	if len(probes) != 3 || !list.ChildPods()[2].IsInitialized() {
		t.Fatal("new element pod not initialized by the routing walk")
	}
	tr.layout(100, 100)
	if got := list.ChildPods()[2].Origin(); got != (geometry.Offset{Y: 20}) {
		t.Fatalf("third child origin = %v, want (0,20)", got)
	}
}

func TestListWritesElementMutationBack(t *testing.T) {
	var probes []*probe[item]
	list := ListOf(func() widget.Widget[item] {
		p := newProbe[item]()
		p.onEvent = func(ctx *widget.EventCtx, ev widget.Event, d *item, e env.Env) {
			if _, ok := ev.(widget.MouseDown); ok {
				d.N = 9
			}
		}
		probes = append(probes, p)
		return p
	})
	tr := mountTree[data.List[item]](t, list, data.NewList(item{N: 1}, item{N: 2}))
	tr.layout(100, 100)

	// Hit only the first element; the second is not under the pointer.
	down, _ := click(5, 5)
	tr.event(down)
	if got := tr.data.At(0).N; got != 9 {
		t.Fatalf("first element = %v, want 9 written back", got)
	}
	if got := tr.data.At(1).N; got != 2 {
		t.Fatalf("second element = %v, want untouched 2", got)
	}
}

func TestZStackEventsTopmostFirst(t *testing.T) {
	bottom, top := newProbe[item](), newProbe[item]()
	bottom.size = geometry.Size{Width: 50, Height: 50}
	top.size = geometry.Size{Width: 20, Height: 20}
	top.onEvent = func(ctx *widget.EventCtx, ev widget.Event, d *item, e env.Env) {
		if _, ok := ev.(widget.MouseDown); ok {
			ctx.SetHandled()
		}
	}
	tr := mountTree[item](t, Aligned(0, 0, Stacked[item](bottom, top)), item{})
	tr.layout(100, 100)

	down, _ := click(5, 5)
	tr.event(down)
	if !top.saw("event:widget.MouseDown") {
		t.Fatal("top layer missed the event")
	}
	if bottom.saw("event:widget.MouseDown") {
		t.Fatal("handled event leaked to the bottom layer")
	}
}

func TestZStackPaintsBottomUp(t *testing.T) {
	bottom, top := newProbe[item](), newProbe[item]()
	bottom.size = geometry.Size{Width: 50, Height: 50}
	top.size = geometry.Size{Width: 20, Height: 20}
	tr := mountTree[item](t, Aligned(0, 0, Stacked[item](bottom, top)), item{})
	tr.layout(100, 100)

	bottomAt, topAt := -1, -1
	for i, op := range tr.paint().Ops() {
		if rOp, ok := op.(graphics.RectOp); ok {
			switch rOp.Rect.Width() {
			case 50:
				bottomAt = i
			case 20:
				topAt = i
			}
		}
	}
	if bottomAt == -1 || topAt == -1 || bottomAt > topAt {
		t.Fatalf("paint order bottom=%d top=%d, want bottom first", bottomAt, topAt)
	}
}

type doc struct {
	HasMeta bool
	Meta    item
}

func (d doc) Same(other doc) bool {
	return d.HasMeta == other.HasMeta && d.Meta.Same(other.Meta)
}

var metaPrism = lens.Guard(func(d *doc) *item {
	if !d.HasMeta {
		return nil
	}
	return &d.Meta
})

func TestPrismAbsentVariantGetsNothing(t *testing.T) {
	p := newProbe[item]()
	tr := mountTree[doc](t, Aligned(0, 0, Prismed(metaPrism, p)), doc{})
	tr.layout(100, 100)

	if len(p.events) != 0 {
		t.Fatalf("absent variant received passes: %v", p.events)
	}
	if p.layouts != 0 {
		t.Fatalf("absent variant laid out %d times", p.layouts)
	}

	// WindowSize recurses unconditionally; only the guard stands between
	// the event and the absent child.
	tr.event(widget.WindowSize{Size: geometry.Size{Width: 100, Height: 100}})
	if len(p.events) != 0 {
		t.Fatal("absent variant received an event")
	}
}

func TestPrismVariantAppearing(t *testing.T) {
	p := newProbe[item]()
	tr := mountTree[doc](t, Aligned(0, 0, Prismed(metaPrism, p)), doc{})
	tr.layout(100, 100)

	tr.data.HasMeta = true
	tr.data.Meta.N = 4
	tr.update()
	if !tr.root.State().TakeChildrenChanged() {
		t.Fatal("variant appearance did not flag a structural change")
	}
	if !tr.root.Pod().NeedsLayout() {
		t.Fatal("variant appearance did not request layout")
	}
	tr.routeAdded()
	if !p.saw("lifecycle:widget.WidgetAdded") {
		t.Fatal("child did not receive WidgetAdded after appearing")
	}
	tr.layout(100, 100)
	if p.layouts != 1 {
		t.Fatalf("layouts = %d, want 1 after appearing", p.layouts)
	}
}
