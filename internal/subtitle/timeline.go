package subtitle

import "sort"

// Locate returns the cues surrounding t in cues, which must be sorted by
// Start. current is the cue whose [Start, Stop] contains t; previous and next
// are its neighbours, or the cues on either side of the gap t falls in.
// Among cues sharing a start time the last one wins.
func Locate(cues []Cue, t float64) (previous, current, next *Cue) {
	if len(cues) == 0 {
		return nil, nil, nil
	}

	// index of the last cue starting at or before t
	a := sort.Search(len(cues), func(i int) bool {
		return cues[i].Start > t
	}) - 1

	if a < 0 {
		return nil, nil, &cues[0]
	}

	if t <= cues[a].Stop {
		if a > 0 {
			previous = &cues[a-1]
		}
		current = &cues[a]
	} else {
		previous = &cues[a]
	}
	if a+1 < len(cues) {
		next = &cues[a+1]
	}
	return previous, current, next
}
