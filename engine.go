package funtext

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxSmoothnessLevel is the highest smoothness-N modifier recognized.
const maxSmoothnessLevel = 4

// rewiggleDelayMax bounds the random wiggle delay when units move from the
// appear state to the wiggle state.
const rewiggleDelayMax = 0.3

// CharacterUnit is one generated element wrapping a single non-whitespace
// character of a container.
type CharacterUnit struct {
	Node  *Node
	Char  rune
	Index int // position among the container's units, from 0
}

// containerState is what the engine remembers about a processed container.
type containerState struct {
	easing     Easing
	letterMode bool
	units      []CharacterUnit
	task       *Task // pending appear-to-wiggle transition; nil in wiggle-only mode
}

// traversal carries the running character index and unit collection through
// the recursive walk of one container. A fresh traversal is used per
// container; nested elements share it.
type traversal struct {
	container *Node
	state     *containerState
	index     int
}

// Engine splits the text of target containers into per-character units and
// assigns their appear and wiggle animations.
type Engine struct {
	doc   *Document
	cfg   Config
	rng   Rand
	sheet *Stylesheet

	containers []*Node
	states     map[*Node]*containerState
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithRand sets the randomness source used for wiggle timing.
func WithRand(r Rand) EngineOption {
	return func(e *Engine) { e.rng = r }
}

// WithStylesheet sets the stylesheet whose effects the engine assigns.
func WithStylesheet(s *Stylesheet) EngineOption {
	return func(e *Engine) { e.sheet = s }
}

// NewEngine creates an engine for doc. No validation is performed on cfg.
func NewEngine(doc *Document, cfg Config, opts ...EngineOption) *Engine {
	e := &Engine{
		doc:    doc,
		cfg:    cfg,
		rng:    defaultRand{},
		states: make(map[*Node]*containerState),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sheet == nil {
		e.sheet = NewStylesheet(cfg)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Stylesheet returns the stylesheet the engine validates against.
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}

// Initialize scans the document once, in document order, and animates every
// target container not already processed. It fails before touching the
// document if the stylesheet lacks either effect.
func (e *Engine) Initialize() error {
	if err := e.sheet.Require(EffectLetterAppear, EffectWiggle); err != nil {
		return err
	}
	for _, c := range e.doc.QueryClass(e.cfg.TargetClass) {
		if c.HasAttr(e.cfg.ProcessedAttr) {
			debugf("skip <%s>: already processed", c.describe())
			continue
		}
		if e.cfg.FontFamily != "" {
			c.Style.FontFamily = e.cfg.FontFamily
		}
		e.processContainer(c)
		c.SetAttr(e.cfg.ProcessedAttr, "")
	}
	return nil
}

// processContainer runs the split-and-assign algorithm on one container.
func (e *Engine) processContainer(c *Node) {
	state := &containerState{
		easing:     e.wiggleEasing(c),
		letterMode: c.HasClass(e.cfg.LetterModeClass),
	}
	tr := &traversal{container: c, state: state}
	e.walk(c, tr)

	e.containers = append(e.containers, c)
	e.states[c] = state
	debugf("processed <%s>: %d units, easing %s, letter mode %t",
		c.describe(), len(state.units), state.easing, state.letterMode)

	if !state.letterMode || tr.index == 0 {
		return
	}
	delay := TransitionDelay(e.cfg, tr.index)
	state.task = e.doc.Scheduler().After(delay, func() { e.transition(c) })
	c.OnDispose(func() { e.Cancel(c) })
	debugf("scheduled wiggle for <%s> in %.2fs", c.describe(), delay)
}

// wiggleEasing returns the stepped easing of the lowest smoothness level the
// container carries, or the configured default.
func (e *Engine) wiggleEasing(c *Node) Easing {
	for level := 0; level <= maxSmoothnessLevel; level++ {
		if c.HasClass(e.cfg.SmoothnessPrefix + strconv.Itoa(level)) {
			return SmoothnessEasing(level)
		}
	}
	return e.cfg.DefaultWiggleEasing
}

// walk visits n's children depth-first. Children are snapshotted because
// text nodes are replaced while walking.
func (e *Engine) walk(n *Node, tr *traversal) {
	children := append([]*Node(nil), n.children...)
	for _, child := range children {
		switch child.Type {
		case NodeTypeText:
			if strings.TrimSpace(child.Text) == "" {
				continue
			}
			e.splitText(child, tr)
		case NodeTypeElement:
			if child.HasClass(e.cfg.UnitClass()) || child.HasClass(e.cfg.LabelClass) {
				continue
			}
			e.walk(child, tr)
		}
	}
}

// splitText replaces a text node with one unit per non-whitespace character,
// keeping whitespace characters as plain text in place.
func (e *Engine) splitText(text *Node, tr *traversal) {
	replacement := make([]*Node, 0, utf8.RuneCountInString(text.Text))
	for _, r := range text.Text {
		ch := string(r)
		if strings.TrimSpace(ch) == "" {
			replacement = append(replacement, NewText(ch))
			continue
		}
		unit := NewElement("span", e.cfg.UnitClass())
		unit.AddChild(NewText(ch))
		cu := CharacterUnit{Node: unit, Char: r, Index: tr.index}
		tr.index++
		tr.state.units = append(tr.state.units, cu)

		if tr.state.letterMode {
			e.applyAppearState(unit, cu.Index)
		} else {
			e.applyWiggleState(unit, tr.state.easing, true)
		}
		replacement = append(replacement, unit)
	}
	text.ReplaceWith(replacement...)
}

// applyAppearState starts the one-shot appear effect, staggered by index.
// The timing function belongs to the effect and is left unset.
func (e *Engine) applyAppearState(unit *Node, index int) {
	st := &unit.Style
	st.AnimationName = EffectLetterAppear
	st.AnimationDuration = e.cfg.AppearDuration
	st.AnimationDelay = float64(index) * e.cfg.LetterStagger
	st.FillMode = FillForwards
	st.IterationCount = 1
	unit.animStart = e.doc.Time()
}

// applyWiggleState starts the infinite wiggle with freshly drawn delay and
// duration. Initial setup uses the configured delay bound; the transition
// out of the appear state uses a short fixed bound.
func (e *Engine) applyWiggleState(unit *Node, easing Easing, isInitialSetup bool) {
	delayMax := rewiggleDelayMax
	if isInitialSetup {
		delayMax = e.cfg.WiggleDelayMax
	}
	st := &unit.Style
	st.SetOpacity(1)
	st.AnimationName = EffectWiggle
	st.TimingFunction = easing
	st.IterationCount = IterationInfinite
	st.FillMode = FillNone
	st.AnimationDelay = randomBetween(e.rng, 0, delayMax)
	st.AnimationDuration = randomBetween(e.rng, e.cfg.WiggleDurationMin, e.cfg.WiggleDurationMax)
	unit.animStart = e.doc.Time()
}

// transition moves every unit of c from the appear state to the wiggle state.
// It does nothing if c has left the document.
func (e *Engine) transition(c *Node) {
	state := e.states[c]
	if state == nil {
		return
	}
	state.task = nil
	if !e.doc.Contains(c) {
		debugf("skip wiggle for detached <%s>", c.describe())
		return
	}
	for _, u := range state.units {
		e.applyWiggleState(u.Node, state.easing, false)
	}
	debugf("wiggle started for <%s>: %d units", c.describe(), len(state.units))
}

// TransitionDelay returns the seconds from initialization until the last of
// count units has finished appearing, plus the configured pause.
func TransitionDelay(cfg Config, count int) float64 {
	lastIndex := count - 1
	return float64(lastIndex)*cfg.LetterStagger + cfg.AppearDuration + cfg.PauseAfterAppear
}

// Containers returns the processed containers in processing order.
func (e *Engine) Containers() []*Node {
	return e.containers
}

// Units returns the character units created for container c, in index order.
func (e *Engine) Units(c *Node) []CharacterUnit {
	if s := e.states[c]; s != nil {
		return s.units
	}
	return nil
}

// WiggleEasing returns the easing chosen for container c.
func (e *Engine) WiggleEasing(c *Node) (Easing, bool) {
	if s := e.states[c]; s != nil {
		return s.easing, true
	}
	return Easing{}, false
}

// Pending returns the pending transition of container c, or nil.
func (e *Engine) Pending(c *Node) *Task {
	if s := e.states[c]; s != nil {
		return s.task
	}
	return nil
}

// Cancel revokes the pending transition of container c. Units stay in
// whatever state they are in. Returns false if nothing was pending.
func (e *Engine) Cancel(c *Node) bool {
	s := e.states[c]
	if s == nil || s.task == nil {
		return false
	}
	ok := s.task.Cancel()
	s.task = nil
	if ok {
		debugf("cancelled wiggle for <%s>", c.describe())
	}
	return ok
}

// Teardown cancels every pending transition.
func (e *Engine) Teardown() {
	for _, c := range e.containers {
		e.Cancel(c)
	}
}
