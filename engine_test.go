package funtext

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// constRand always returns the same value.
type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

// seqRand cycles through a fixed list of values and counts draws.
type seqRand struct {
	vals  []float64
	draws int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.draws%len(r.vals)]
	r.draws++
	return v
}

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseHTMLString(src)
	if err != nil {
		t.Fatalf("ParseHTMLString: %v", err)
	}
	return doc
}

func initEngine(t *testing.T, doc *Document, cfg Config, opts ...EngineOption) *Engine {
	t.Helper()
	e := NewEngine(doc, cfg, opts...)
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return e
}

func firstContainer(t *testing.T, doc *Document) *Node {
	t.Helper()
	cs := doc.QueryClass(DefaultConfig().TargetClass)
	if len(cs) == 0 {
		t.Fatal("no container found")
	}
	return cs[0]
}

func assertAppearState(t *testing.T, u CharacterUnit, cfg Config) {
	t.Helper()
	st := u.Node.Style
	if st.AnimationName != EffectLetterAppear {
		t.Errorf("unit %d: AnimationName = %q, want %q", u.Index, st.AnimationName, EffectLetterAppear)
	}
	if !approx(st.AnimationDuration, cfg.AppearDuration) {
		t.Errorf("unit %d: duration = %v, want %v", u.Index, st.AnimationDuration, cfg.AppearDuration)
	}
	if want := float64(u.Index) * cfg.LetterStagger; !approx(st.AnimationDelay, want) {
		t.Errorf("unit %d: delay = %v, want %v", u.Index, st.AnimationDelay, want)
	}
	if st.IterationCount != 1 {
		t.Errorf("unit %d: IterationCount = %d, want 1", u.Index, st.IterationCount)
	}
	if st.FillMode != FillForwards {
		t.Errorf("unit %d: FillMode = %v, want forwards", u.Index, st.FillMode)
	}
	if st.OpacitySet {
		t.Errorf("unit %d: opacity should not be set in appear state", u.Index)
	}
}

func assertWiggleState(t *testing.T, u CharacterUnit, easing Easing) {
	t.Helper()
	st := u.Node.Style
	if st.AnimationName != EffectWiggle {
		t.Errorf("unit %d: AnimationName = %q, want %q", u.Index, st.AnimationName, EffectWiggle)
	}
	if st.IterationCount != IterationInfinite {
		t.Errorf("unit %d: IterationCount = %d, want infinite", u.Index, st.IterationCount)
	}
	if !st.OpacitySet || st.Opacity != 1 {
		t.Errorf("unit %d: opacity = (%v, set=%t), want 1", u.Index, st.Opacity, st.OpacitySet)
	}
	if st.FillMode != FillNone {
		t.Errorf("unit %d: FillMode = %v, want none", u.Index, st.FillMode)
	}
	if st.TimingFunction != easing {
		t.Errorf("unit %d: TimingFunction = %v, want %v", u.Index, st.TimingFunction, easing)
	}
}

// --- End to end ---

func TestEngineLetterModeEndToEnd(t *testing.T) {
	doc := mustParse(t, `<div class="fun-text appear-by-letter smoothness-0"><p>Hi!</p></div>`)
	cfg := DefaultConfig()
	e := initEngine(t, doc, cfg, WithRand(constRand(0.5)))
	c := firstContainer(t, doc)

	units := e.Units(c)
	if len(units) != 3 {
		t.Fatalf("len(units) = %d, want 3", len(units))
	}
	for i, want := range []rune("Hi!") {
		if units[i].Char != want || units[i].Index != i {
			t.Errorf("unit %d = (%q, %d), want (%q, %d)", i, units[i].Char, units[i].Index, want, i)
		}
		if got := units[i].Node.TextContent(); got != string(want) {
			t.Errorf("unit %d text = %q", i, got)
		}
		assertAppearState(t, units[i], cfg)
	}
	if got := c.TextContent(); got != "Hi!" {
		t.Errorf("TextContent = %q, want %q", got, "Hi!")
	}
	if p := c.ChildAt(0); p.Tag != "p" || p.NumChildren() != 3 {
		t.Errorf("expected <p> with 3 unit children, got <%s> with %d", p.Tag, p.NumChildren())
	}

	task := e.Pending(c)
	if task == nil {
		t.Fatal("expected a pending transition")
	}
	want := 2*0.08 + 0.9 + 1.5
	if !approx(task.Due(), want) {
		t.Errorf("Due = %v, want %v", task.Due(), want)
	}

	doc.Update(want - 0.05)
	for _, u := range units {
		assertAppearState(t, u, cfg)
	}

	doc.Update(0.1)
	if !task.Done() {
		t.Fatal("transition should have fired")
	}
	if e.Pending(c) != nil {
		t.Error("Pending should be nil after firing")
	}
	for _, u := range units {
		assertWiggleState(t, u, Steps(1))
		if u.Node.Style.AnimationDelay != 0.15 {
			t.Errorf("re-wiggle delay = %v, want 0.15", u.Node.Style.AnimationDelay)
		}
		if u.Node.Style.AnimationDuration != 1.2 {
			t.Errorf("wiggle duration = %v, want 1.2", u.Node.Style.AnimationDuration)
		}
	}
}

func TestEngineWiggleModeImmediate(t *testing.T) {
	doc := mustParse(t, `<div class="fun-text">ok go</div>`)
	cfg := DefaultConfig()
	e := initEngine(t, doc, cfg, WithRand(constRand(0.5)))
	c := firstContainer(t, doc)

	units := e.Units(c)
	if len(units) != 4 {
		t.Fatalf("len(units) = %d, want 4", len(units))
	}
	for _, u := range units {
		assertWiggleState(t, u, cfg.DefaultWiggleEasing)
		if u.Node.Style.AnimationDelay != 0.6 {
			t.Errorf("initial delay = %v, want 0.6", u.Node.Style.AnimationDelay)
		}
	}
	if e.Pending(c) != nil {
		t.Error("wiggle-only container should not schedule a transition")
	}
	if n := doc.Scheduler().Pending(); n != 0 {
		t.Errorf("scheduler pending = %d, want 0", n)
	}
}

// --- Splitting ---

func TestEngineRoundTripPreservesText(t *testing.T) {
	sources := []string{
		"Hello, world!",
		"  leading and trailing  ",
		"tabs\tand\nnewlines",
		"ünïcödé → ok",
		"a",
		"x  y",
	}
	for _, src := range sources {
		doc := NewDocument()
		c := NewElement("div", "fun-text")
		c.AddChild(NewText(src))
		doc.Root().AddChild(c)

		e := initEngine(t, doc, DefaultConfig())
		if got := c.TextContent(); got != src {
			t.Errorf("TextContent = %q, want %q", got, src)
		}
		nonSpace := 0
		for _, r := range src {
			if strings.TrimSpace(string(r)) != "" {
				nonSpace++
			}
		}
		if got := len(e.Units(c)); got != nonSpace {
			t.Errorf("%q: %d units, want %d", src, got, nonSpace)
		}
	}
}

func TestEngineWhitespaceOnlyTextUntouched(t *testing.T) {
	doc := NewDocument()
	c := NewElement("div", "fun-text")
	ws := NewText("  \n\t ")
	p := NewElement("p")
	p.AddChild(NewText("a b"))
	c.AddChild(ws)
	c.AddChild(p)
	doc.Root().AddChild(c)

	e := initEngine(t, doc, DefaultConfig())

	if c.ChildAt(0) != ws || ws.Text != "  \n\t " {
		t.Error("whitespace-only text node should be left in place")
	}
	if got := len(e.Units(c)); got != 2 {
		t.Errorf("units = %d, want 2", got)
	}
	// "a", " ", "b"
	if p.NumChildren() != 3 {
		t.Fatalf("p children = %d, want 3", p.NumChildren())
	}
	if mid := p.ChildAt(1); mid.Type != NodeTypeText || mid.Text != " " {
		t.Errorf("middle child = %v %q, want text \" \"", mid.Type, mid.Text)
	}
}

func TestEngineIndexSharedAcrossNestedElements(t *testing.T) {
	doc := mustParse(t, `<div class="fun-text">Hi <b>big <i>new</i></b> world<span class="fun-label">tag</span>!</div>`)
	e := initEngine(t, doc, DefaultConfig())
	c := firstContainer(t, doc)

	units := e.Units(c)
	var chars []rune
	for i, u := range units {
		if u.Index != i {
			t.Errorf("unit %d has index %d", i, u.Index)
		}
		chars = append(chars, u.Char)
	}
	if got, want := string(chars), "Hibignewworld!"; got != want {
		t.Errorf("unit chars = %q, want %q", got, want)
	}
	if got, want := c.TextContent(), "Hi big new worldtag!"; got != want {
		t.Errorf("TextContent = %q, want %q", got, want)
	}
}

func TestEngineSkipsLabelAndExistingUnits(t *testing.T) {
	doc := mustParse(t, `<div class="fun-text appear-by-letter"><span class="fun-text-char">x</span>ab<em class="fun-label">no</em>c</div>`)
	cfg := DefaultConfig()
	e := initEngine(t, doc, cfg)
	c := firstContainer(t, doc)

	units := e.Units(c)
	if len(units) != 3 {
		t.Fatalf("units = %d, want 3", len(units))
	}
	if units[0].Char != 'a' || units[0].Index != 0 {
		t.Errorf("first unit = (%q, %d), want ('a', 0)", units[0].Char, units[0].Index)
	}
	pre := c.ChildAt(0)
	if pre.Style.HasAnimation() || pre.NumChildren() != 1 || pre.ChildAt(0).Type != NodeTypeText {
		t.Error("pre-existing unit should not be reprocessed")
	}
	label := c.ChildAt(3)
	if !label.HasClass("fun-label") || label.NumChildren() != 1 || label.ChildAt(0).Text != "no" {
		t.Error("label should be left untouched")
	}
	if !approx(e.Pending(c).Due(), TransitionDelay(cfg, 3)) {
		t.Errorf("Due = %v, want %v", e.Pending(c).Due(), TransitionDelay(cfg, 3))
	}
}

// --- Smoothness ---

func TestEngineSmoothnessFirstMatchWins(t *testing.T) {
	tests := []struct {
		classes string
		want    Easing
	}{
		{"fun-text smoothness-2 smoothness-0", Steps(1)},
		{"fun-text smoothness-1", Steps(2)},
		{"fun-text smoothness-2", Steps(4)},
		{"fun-text smoothness-3", Steps(6)},
		{"fun-text smoothness-4 smoothness-3", Steps(6)},
		{"fun-text smoothness-5", EaseInOut},
		{"fun-text", EaseInOut},
	}
	for _, tt := range tests {
		doc := mustParse(t, `<div class="`+tt.classes+`">ab</div>`)
		e := initEngine(t, doc, DefaultConfig())
		c := firstContainer(t, doc)
		got, ok := e.WiggleEasing(c)
		if !ok || got != tt.want {
			t.Errorf("%q: easing = %v, want %v", tt.classes, got, tt.want)
		}
		for _, u := range e.Units(c) {
			if u.Node.Style.TimingFunction != tt.want {
				t.Errorf("%q: unit easing = %v, want %v", tt.classes, u.Node.Style.TimingFunction, tt.want)
			}
		}
	}
}

// --- Timing ---

func TestTransitionDelayTenCharacters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LetterStagger = 0.08
	cfg.AppearDuration = 0.9
	cfg.PauseAfterAppear = 1.5
	if got := TransitionDelay(cfg, 10); !approx(got, 3.12) {
		t.Errorf("TransitionDelay = %v, want 3.12", got)
	}

	doc := mustParse(t, `<div class="fun-text appear-by-letter">abcde <b>fghij</b></div>`)
	e := initEngine(t, doc, cfg)
	task := e.Pending(firstContainer(t, doc))
	if task == nil || !approx(task.Due(), 3.12) {
		t.Fatalf("pending transition due = %v, want 3.12", task)
	}
}

func TestWiggleDurationEqualBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WiggleDurationMin = 1.5
	cfg.WiggleDurationMax = 1.5
	for _, r := range []float64{0, 0.25, 0.5, 0.999999} {
		doc := mustParse(t, `<div class="fun-text">abc</div>`)
		e := initEngine(t, doc, cfg, WithRand(constRand(r)))
		for _, u := range e.Units(firstContainer(t, doc)) {
			if u.Node.Style.AnimationDuration != 1.5 {
				t.Errorf("rand %v: duration = %v, want 1.5", r, u.Node.Style.AnimationDuration)
			}
		}
	}
}

func TestWiggleDrawsStayInBounds(t *testing.T) {
	cfg := DefaultConfig()
	doc := mustParse(t, `<div class="fun-text appear-by-letter">abcdefgh</div>`)
	rng := &seqRand{vals: []float64{0, 0.1, 0.37, 0.5, 0.73, 0.999999}}
	e := initEngine(t, doc, cfg, WithRand(rng))
	c := firstContainer(t, doc)
	if rng.draws != 0 {
		t.Errorf("appear state should not draw randoms, drew %d", rng.draws)
	}

	doc.Update(TransitionDelay(cfg, 8) + 0.01)
	if rng.draws != 16 {
		t.Errorf("draws = %d, want 2 per unit", rng.draws)
	}
	for _, u := range e.Units(c) {
		st := u.Node.Style
		if st.AnimationDelay < 0 || st.AnimationDelay > rewiggleDelayMax {
			t.Errorf("delay %v outside [0, %v]", st.AnimationDelay, rewiggleDelayMax)
		}
		if st.AnimationDuration < cfg.WiggleDurationMin || st.AnimationDuration > cfg.WiggleDurationMax {
			t.Errorf("duration %v outside [%v, %v]", st.AnimationDuration, cfg.WiggleDurationMin, cfg.WiggleDurationMax)
		}
	}
}

func TestWiggleInvertedRangeNotRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WiggleDurationMin = 2
	cfg.WiggleDurationMax = 1
	doc := mustParse(t, `<div class="fun-text">a</div>`)
	e := initEngine(t, doc, cfg, WithRand(constRand(0.5)))
	if got := e.Units(firstContainer(t, doc))[0].Node.Style.AnimationDuration; got != 1.5 {
		t.Errorf("duration = %v, want 1.5", got)
	}
}

func TestContainersScheduleIndependently(t *testing.T) {
	doc := mustParse(t, `<div class="fun-text appear-by-letter">ab</div><div class="fun-text appear-by-letter">abcdef</div><div class="fun-text appear-by-letter">   </div>`)
	cfg := DefaultConfig()
	e := initEngine(t, doc, cfg)
	cs := e.Containers()
	if len(cs) != 3 {
		t.Fatalf("containers = %d, want 3", len(cs))
	}
	short, long, empty := e.Pending(cs[0]), e.Pending(cs[1]), e.Pending(cs[2])
	if short == nil || long == nil {
		t.Fatal("expected transitions for non-empty containers")
	}
	if empty != nil {
		t.Error("container without units should not schedule a transition")
	}
	if !(short.Due() < long.Due()) {
		t.Errorf("short due %v should precede long due %v", short.Due(), long.Due())
	}

	doc.Update(short.Due() + 0.01)
	if !short.Done() || long.Done() {
		t.Errorf("after first deadline: short done=%t long done=%t", short.Done(), long.Done())
	}
}

// --- Container handling ---

func TestEngineNoContainers(t *testing.T) {
	doc := mustParse(t, `<p>nothing here</p>`)
	e := initEngine(t, doc, DefaultConfig())
	if len(e.Containers()) != 0 {
		t.Errorf("containers = %d, want 0", len(e.Containers()))
	}
	if got := doc.Root().TextContent(); got != "nothing here" {
		t.Errorf("document changed: %q", got)
	}
}

func TestEngineFontFamilyOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FontFamily = "Comic Neue"
	doc := mustParse(t, `<div class="fun-text" style="font-family: serif">a</div><div class="other">b</div>`)
	initEngine(t, doc, cfg)

	c := firstContainer(t, doc)
	if c.Style.FontFamily != "Comic Neue" {
		t.Errorf("FontFamily = %q, want %q", c.Style.FontFamily, "Comic Neue")
	}
	other := doc.QueryClass("other")[0]
	if other.Style.FontFamily != "" {
		t.Errorf("non-container FontFamily = %q, want empty", other.Style.FontFamily)
	}
	if !strings.Contains(c.HTML(), "font-family: Comic Neue") {
		t.Errorf("HTML missing font-family: %s", c.HTML())
	}
}

func TestEngineNoFontFamilyKeepsExisting(t *testing.T) {
	doc := mustParse(t, `<div class="fun-text" style="font-family: serif">a</div>`)
	initEngine(t, doc, DefaultConfig())
	if got := firstContainer(t, doc).Style.FontFamily; got != "serif" {
		t.Errorf("FontFamily = %q, want serif", got)
	}
}

func TestEngineInitializeTwiceIsIdempotent(t *testing.T) {
	doc := mustParse(t, `<div class="fun-text appear-by-letter">abc</div>`)
	e := initEngine(t, doc, DefaultConfig())
	c := firstContainer(t, doc)
	before := c.HTML()

	if err := e.Initialize(); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	if got := c.HTML(); got != before {
		t.Errorf("second Initialize changed container:\n%s\n%s", before, got)
	}
	if len(e.Containers()) != 1 {
		t.Errorf("containers = %d, want 1", len(e.Containers()))
	}
	if n := doc.Scheduler().Pending(); n != 1 {
		t.Errorf("pending = %d, want 1", n)
	}

	// A second engine over the same document also skips it.
	e2 := initEngine(t, doc, DefaultConfig())
	if len(e2.Containers()) != 0 {
		t.Errorf("second engine processed %d containers, want 0", len(e2.Containers()))
	}
}

func TestEngineMissingEffectFailsBeforeMutation(t *testing.T) {
	cfg := DefaultConfig()
	doc := mustParse(t, `<div class="fun-text">abc</div>`)
	sheet := NewEmptyStylesheet(cfg)
	sheet.Register(newWiggleEffect())

	e := NewEngine(doc, cfg, WithStylesheet(sheet))
	err := e.Initialize()
	if !errors.Is(err, ErrUnknownEffect) {
		t.Fatalf("err = %v, want ErrUnknownEffect", err)
	}
	if !strings.Contains(err.Error(), EffectLetterAppear) {
		t.Errorf("error should name the missing effect: %v", err)
	}
	c := firstContainer(t, doc)
	if c.HasAttr(cfg.ProcessedAttr) || c.NumChildren() != 1 || c.ChildAt(0).Type != NodeTypeText {
		t.Error("document should be untouched")
	}
}

// --- Cancellation ---

func TestEngineDisposeCancelsTransition(t *testing.T) {
	doc := mustParse(t, `<div class="fun-text appear-by-letter">abc</div>`)
	cfg := DefaultConfig()
	e := initEngine(t, doc, cfg)
	c := firstContainer(t, doc)
	units := e.Units(c)
	task := e.Pending(c)

	c.Dispose()
	if !task.Cancelled() {
		t.Error("disposing the container should cancel its transition")
	}
	doc.Update(10)
	if task.Done() {
		t.Error("cancelled task should not fire")
	}
	for _, u := range units {
		if u.Node.Style.AnimationName != EffectLetterAppear {
			t.Errorf("unit %d changed after cancel: %q", u.Index, u.Node.Style.AnimationName)
		}
	}
}

func TestEngineDetachedContainerSkipsTransition(t *testing.T) {
	doc := mustParse(t, `<div class="fun-text appear-by-letter">abc</div>`)
	e := initEngine(t, doc, DefaultConfig())
	c := firstContainer(t, doc)
	units := e.Units(c)

	c.RemoveFromParent()
	doc.Update(10)
	for _, u := range units {
		if u.Node.Style.AnimationName != EffectLetterAppear {
			t.Errorf("detached unit %d transitioned", u.Index)
		}
	}
}

func TestEngineCancelAndTeardown(t *testing.T) {
	doc := mustParse(t, `<div class="fun-text appear-by-letter">ab</div><div class="fun-text appear-by-letter">cd</div>`)
	e := initEngine(t, doc, DefaultConfig())
	cs := e.Containers()

	if !e.Cancel(cs[0]) {
		t.Error("Cancel should report true for a pending transition")
	}
	if e.Cancel(cs[0]) {
		t.Error("second Cancel should report false")
	}
	e.Teardown()
	if n := doc.Scheduler().Pending(); n != 0 {
		t.Errorf("pending after Teardown = %d, want 0", n)
	}
	if e.Cancel(NewElement("div")) {
		t.Error("Cancel on unknown node should report false")
	}
}

func TestEngineHTMLOutput(t *testing.T) {
	doc := mustParse(t, `<div class="fun-text appear-by-letter">a b</div>`)
	initEngine(t, doc, DefaultConfig())
	out := firstContainer(t, doc).HTML()

	for _, want := range []string{
		`data-fun-processed=""`,
		`<span class="fun-text-char" style="animation-name: fun-letter-appear; animation-duration: 0.9s; animation-delay: 0s; animation-iteration-count: 1; animation-fill-mode: forwards">a</span> `,
		`animation-delay: 0.08s`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q:\n%s", want, out)
		}
	}
}
