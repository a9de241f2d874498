package subtitle

import "testing"

func sampleCues() []Cue {
	return []Cue{
		{Start: 1, Stop: 2, Text: "a"},
		{Start: 3, Stop: 4, Text: "b"},
		{Start: 4.5, Stop: 6, Text: "c"},
		{Start: 10, Stop: 12, Text: "d"},
	}
}

func cueText(c *Cue) string {
	if c == nil {
		return "<nil>"
	}
	return c.Text
}

func TestLocate(t *testing.T) {
	cues := sampleCues()

	tests := []struct {
		name                string
		time                float64
		prev, current, next string
	}{
		{name: "before first cue", time: 0, prev: "<nil>", current: "<nil>", next: "a"},
		{name: "just before first cue", time: 0.999, prev: "<nil>", current: "<nil>", next: "a"},
		{name: "first cue start", time: 1, prev: "<nil>", current: "a", next: "b"},
		{name: "inside first cue", time: 1.5, prev: "<nil>", current: "a", next: "b"},
		{name: "first cue stop is inclusive", time: 2, prev: "<nil>", current: "a", next: "b"},
		{name: "gap after first cue", time: 2.5, prev: "a", current: "<nil>", next: "b"},
		{name: "inside middle cue", time: 5, prev: "b", current: "c", next: "d"},
		{name: "gap before last cue", time: 7, prev: "c", current: "<nil>", next: "d"},
		{name: "inside last cue", time: 11, prev: "c", current: "d", next: "<nil>"},
		{name: "after last cue", time: 100, prev: "d", current: "<nil>", next: "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, current, next := Locate(cues, tt.time)
			if got := cueText(prev); got != tt.prev {
				t.Errorf("previous = %s, want %s", got, tt.prev)
			}
			if got := cueText(current); got != tt.current {
				t.Errorf("current = %s, want %s", got, tt.current)
			}
			if got := cueText(next); got != tt.next {
				t.Errorf("next = %s, want %s", got, tt.next)
			}
		})
	}
}

func TestLocateEmpty(t *testing.T) {
	for _, tm := range []float64{-1, 0, 5, 1e9} {
		prev, current, next := Locate(nil, tm)
		if prev != nil || current != nil || next != nil {
			t.Errorf("Locate(nil, %v) = %v, %v, %v; want all nil", tm, prev, current, next)
		}
		prev, current, next = Locate([]Cue{}, tm)
		if prev != nil || current != nil || next != nil {
			t.Errorf("Locate([], %v) = %v, %v, %v; want all nil", tm, prev, current, next)
		}
	}
}

func TestLocateEveryCueAndGap(t *testing.T) {
	cues := sampleCues()
	for i, cue := range cues {
		mid := (cue.Start + cue.Stop) / 2
		_, current, _ := Locate(cues, mid)
		if current != &cues[i] {
			t.Errorf("time %v: current = %s, want %s", mid, cueText(current), cue.Text)
		}

		if i+1 < len(cues) && cue.Stop < cues[i+1].Start {
			gap := (cue.Stop + cues[i+1].Start) / 2
			prev, current, next := Locate(cues, gap)
			if prev != &cues[i] || current != nil || next != &cues[i+1] {
				t.Errorf("gap %v: got (%s, %s, %s)", gap, cueText(prev), cueText(current), cueText(next))
			}
		}
	}
}

func TestLocateDuplicateStartsPicksLast(t *testing.T) {
	cues := []Cue{
		{Start: 1, Stop: 5, Text: "first"},
		{Start: 1, Stop: 3, Text: "second"},
		{Start: 6, Stop: 7, Text: "third"},
	}
	prev, current, next := Locate(cues, 2)
	if cueText(prev) != "first" || cueText(current) != "second" || cueText(next) != "third" {
		t.Errorf("got (%s, %s, %s)", cueText(prev), cueText(current), cueText(next))
	}

	// past the later duplicate's stop: it becomes previous even though the
	// earlier cue still covers the time
	prev, current, _ = Locate(cues, 4)
	if cueText(prev) != "second" || current != nil {
		t.Errorf("got previous %s, current %s", cueText(prev), cueText(current))
	}
}
