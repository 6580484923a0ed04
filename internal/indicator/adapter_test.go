package indicator

import (
	"errors"
	"testing"
)

type fakeWidget struct {
	text      string
	visible   bool
	destroyed bool
	sets      int
}

func (w *fakeWidget) SetText(text string) { w.text = text; w.sets++ }
func (w *fakeWidget) Show()               { w.visible = true }
func (w *fakeWidget) Hide()               { w.visible = false }
func (w *fakeWidget) Destroy()            { w.destroyed = true; w.visible = false }

type fakeArea struct {
	widgets   []*fakeWidget
	placement Placement
	err       error
}

func (a *fakeArea) AddWidget(p Placement) (Widget, error) {
	if a.err != nil {
		return nil, a.err
	}
	w := &fakeWidget{visible: true} // hosts may create widgets visible
	a.widgets = append(a.widgets, w)
	a.placement = p
	return w, nil
}

type fakeBus struct {
	handler      Handler
	subscribed   int
	unsubscribed int
	subErr       error
	unsubErr     error
}

type fakeToken struct{ id int }

func (b *fakeBus) Subscribe(h Handler) (Subscription, error) {
	if b.subErr != nil {
		return nil, b.subErr
	}
	b.handler = h
	b.subscribed++
	return &fakeToken{id: b.subscribed}, nil
}

func (b *fakeBus) Unsubscribe(s Subscription) error {
	if _, ok := s.(*fakeToken); !ok {
		return errors.New("unknown subscription")
	}
	b.handler = nil
	b.unsubscribed++
	return b.unsubErr
}

// emit delivers a payload the way a bus would: only while subscribed.
func (b *fakeBus) emit(p ...interface{}) {
	if b.handler != nil {
		b.handler(Payload(p))
	}
}

func activate(t *testing.T) (*Adapter, *fakeArea, *fakeBus) {
	t.Helper()
	a := New(DefaultPlacement)
	area := &fakeArea{}
	bus := &fakeBus{}
	if err := a.Activate(area, bus); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	return a, area, bus
}

func TestActivateMountsHiddenWidget(t *testing.T) {
	a, area, bus := activate(t)

	if !a.Active() {
		t.Fatal("expected adapter to be active")
	}
	if len(area.widgets) != 1 {
		t.Fatalf("expected 1 widget, got %d", len(area.widgets))
	}
	if area.widgets[0].visible {
		t.Error("expected widget to start hidden")
	}
	if area.placement != DefaultPlacement {
		t.Errorf("placement = %+v, want %+v", area.placement, DefaultPlacement)
	}
	if bus.subscribed != 1 {
		t.Errorf("expected 1 subscription, got %d", bus.subscribed)
	}
}

func TestActivateTwice(t *testing.T) {
	a, area, bus := activate(t)

	err := a.Activate(area, bus)
	if !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("second Activate() error = %v, want ErrAlreadyActive", err)
	}
	if len(area.widgets) != 1 || bus.subscribed != 1 {
		t.Errorf("second Activate created resources: widgets=%d subscriptions=%d", len(area.widgets), bus.subscribed)
	}
}

func TestActivateSubscribeFailure(t *testing.T) {
	a := New(DefaultPlacement)
	area := &fakeArea{}
	bus := &fakeBus{subErr: errors.New("no session bus")}

	if err := a.Activate(area, bus); err == nil {
		t.Fatal("expected error when subscription fails")
	}
	if a.Active() {
		t.Error("adapter should stay inactive after failed Activate")
	}
	if !area.widgets[0].destroyed {
		t.Error("widget should be destroyed after failed Activate")
	}
	if err := a.Deactivate(); err != nil {
		t.Errorf("Deactivate() after failed Activate error = %v", err)
	}
}

func TestActivateWidgetFailure(t *testing.T) {
	a := New(DefaultPlacement)
	bus := &fakeBus{}

	if err := a.Activate(&fakeArea{err: errors.New("no status area")}, bus); err == nil {
		t.Fatal("expected error when widget creation fails")
	}
	if bus.subscribed != 0 {
		t.Error("should not subscribe without a widget")
	}
	if a.Active() {
		t.Error("adapter should stay inactive")
	}
}

func TestSignalDisplayPolicy(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		visible bool
		text    string
	}{
		{name: "lyric", line: "Is this the real life?", visible: true, text: "Is this the real life?"},
		{name: "keeps surrounding whitespace", line: "  la la  \n", visible: true, text: "  la la  \n"},
		{name: "space is shown", line: " ", visible: true, text: " "},
		{name: "non-ascii", line: "夜に駆ける", visible: true, text: "夜に駆ける"},
		{name: "empty hides", line: "", visible: false, text: "previous"},
		{name: "NUL hides", line: "\x00", visible: false, text: "previous"},
		{name: "ETX hides", line: "\x03", visible: false, text: "previous"},
		{name: "EOT hides", line: "\x04", visible: false, text: "previous"},
		{name: "control prefix hides", line: "\x1fhidden", visible: false, text: "previous"},
		{name: "DEL is shown", line: "\x7f", visible: true, text: "\x7f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, area, bus := activate(t)
			w := area.widgets[0]

			bus.emit("previous")
			bus.emit(tt.line)

			if w.visible != tt.visible {
				t.Errorf("visible = %v, want %v", w.visible, tt.visible)
			}
			if w.text != tt.text {
				t.Errorf("text = %q, want %q", w.text, tt.text)
			}
		})
	}
}

func TestSignalIdempotent(t *testing.T) {
	for _, line := range []string{"hello", ""} {
		_, area, bus := activate(t)
		w := area.widgets[0]

		bus.emit("seed")
		bus.emit(line)
		once := *w
		bus.emit(line)

		if w.visible != once.visible || w.text != once.text {
			t.Errorf("line %q: state after repeat = (%v, %q), want (%v, %q)", line, w.visible, w.text, once.visible, once.text)
		}
	}
}

func TestSignalOrdering(t *testing.T) {
	_, area, bus := activate(t)
	w := area.widgets[0]

	for _, line := range []string{" ", "hello", "\x00", "world"} {
		bus.emit(line)
	}

	if !w.visible || w.text != "world" {
		t.Errorf("final state = (%v, %q), want (true, %q)", w.visible, w.text, "world")
	}
}

func TestMalformedPayloadIgnored(t *testing.T) {
	tests := []struct {
		name    string
		payload []interface{}
	}{
		{name: "no fields", payload: nil},
		{name: "integer", payload: []interface{}{42}},
		{name: "byte slice", payload: []interface{}{[]byte("hello")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, area, bus := activate(t)
			w := area.widgets[0]
			bus.emit("before")

			bus.emit(tt.payload...)

			if !w.visible || w.text != "before" {
				t.Errorf("state = (%v, %q), want unchanged (true, %q)", w.visible, w.text, "before")
			}
		})
	}
}

func TestExtraPayloadFieldsIgnored(t *testing.T) {
	_, area, bus := activate(t)
	bus.emit("line", int32(7), "extra")

	if w := area.widgets[0]; !w.visible || w.text != "line" {
		t.Errorf("state = (%v, %q), want (true, %q)", w.visible, w.text, "line")
	}
}

func TestDeactivateReleasesResources(t *testing.T) {
	a, area, bus := activate(t)

	if err := a.Deactivate(); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if a.Active() {
		t.Error("adapter should be inactive")
	}
	if !area.widgets[0].destroyed {
		t.Error("widget not destroyed")
	}
	if bus.unsubscribed != 1 || bus.handler != nil {
		t.Errorf("subscription not released: unsubscribed=%d", bus.unsubscribed)
	}
}

func TestDeactivateTwice(t *testing.T) {
	a, _, bus := activate(t)

	if err := a.Deactivate(); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if err := a.Deactivate(); err != nil {
		t.Fatalf("second Deactivate() error = %v", err)
	}
	if bus.unsubscribed != 1 {
		t.Errorf("unsubscribed %d times, want 1", bus.unsubscribed)
	}
}

func TestDeactivateWithoutActivate(t *testing.T) {
	if err := New(DefaultPlacement).Deactivate(); err != nil {
		t.Errorf("Deactivate() on fresh adapter error = %v", err)
	}
}

func TestDeactivateUnsubscribeError(t *testing.T) {
	a, area, bus := activate(t)
	bus.unsubErr = errors.New("connection closed")

	if err := a.Deactivate(); err == nil {
		t.Fatal("expected unsubscribe error to be returned")
	}
	if !area.widgets[0].destroyed {
		t.Error("widget must be destroyed even when unsubscribe fails")
	}
	if a.Active() {
		t.Error("adapter should be inactive")
	}
}

func TestLateDeliveryAfterDeactivate(t *testing.T) {
	a, area, bus := activate(t)
	handler := bus.handler
	w := area.widgets[0]
	bus.emit("last")

	if err := a.Deactivate(); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	textBefore, setsBefore := w.text, w.sets
	handler(Payload{"stale"})

	if w.text != textBefore || w.sets != setsBefore || w.visible {
		t.Errorf("late delivery mutated destroyed widget: (%v, %q)", w.visible, w.text)
	}
}

func TestReactivate(t *testing.T) {
	a, area, bus := activate(t)
	if err := a.Deactivate(); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if err := a.Activate(area, bus); err != nil {
		t.Fatalf("re-Activate() error = %v", err)
	}
	if len(area.widgets) != 2 {
		t.Fatalf("expected a fresh widget, got %d widgets", len(area.widgets))
	}

	bus.emit("again")
	if w := area.widgets[1]; !w.visible || w.text != "again" {
		t.Errorf("new widget state = (%v, %q)", w.visible, w.text)
	}
	if area.widgets[0].text == "again" {
		t.Error("destroyed widget received update")
	}
}

func TestEndToEnd(t *testing.T) {
	a, area, bus := activate(t)
	w := area.widgets[0]

	bus.emit("Bohemian Rhapsody")
	if !w.visible || w.text != "Bohemian Rhapsody" {
		t.Fatalf("after lyric: (%v, %q)", w.visible, w.text)
	}

	bus.emit("")
	if w.visible || w.text != "Bohemian Rhapsody" {
		t.Fatalf("after blank: (%v, %q)", w.visible, w.text)
	}

	if err := a.Deactivate(); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	bus.emit("Another One Bites the Dust")
	if w.text != "Bohemian Rhapsody" || w.visible {
		t.Errorf("update after Deactivate changed widget: (%v, %q)", w.visible, w.text)
	}
}
