// Package lyrics holds time-indexed lyric lines and the cursor that follows playback through them.
package lyrics

import "sort"

// Entry is a single lyric line. PTS is the presentation time in milliseconds.
type Entry struct {
	PTS  int64  `json:"pts" jsonschema:"description=Presentation time in milliseconds"`
	Text string `json:"text"`
}

// Timeline tracks the line being sung (current) and the line after it (next).
//
// Entries are expected in ascending PTS order and are never re-sorted here.
// While the timeline is non-empty 0 <= current <= next <= Len()-1 holds; once
// the last line is current, next equals current.
// A Timeline is not safe for concurrent use.
type Timeline struct {
	entries []Entry
	current int
	next    int
}

// SetEntries replaces the lines wholesale and rewinds both cursors to the first line.
func (t *Timeline) SetEntries(entries []Entry) {
	t.entries = entries
	t.current = 0
	t.next = 0
}

// Cue points next at the second line, if there is one.
func (t *Timeline) Cue() {
	if t.next+1 < len(t.entries) {
		t.next++
	}
}

// Entries returns the lines in timeline order.
func (t *Timeline) Entries() []Entry {
	return t.entries
}

// Len returns the number of lines.
func (t *Timeline) Len() int {
	return len(t.entries)
}

// Current returns the index of the line being sung.
func (t *Timeline) Current() int {
	return t.current
}

// Next returns the index of the upcoming line.
func (t *Timeline) Next() int {
	return t.next
}

// SyncToTime repositions both cursors for an arbitrary time, as after a seek.
// current becomes the last line starting at or before pts and next the one after it.
// When every line starts at or before pts both cursors land on the last line.
// It reports whether either cursor moved.
func (t *Timeline) SyncToTime(pts int64) bool {
	n := len(t.entries)
	if n == 0 {
		return false
	}

	current, next := n-1, n-1
	if i := sort.Search(n, func(i int) bool { return t.entries[i].PTS > pts }); i < n {
		current = max(i-1, 0)
		next = min(current+1, n-1)
	}

	changed := current != t.current || next != t.next
	t.current, t.next = current, next
	return changed
}

// Advance moves the cursors forward by one line once pts has strictly passed
// both the current and the next line. It never moves backwards and reports
// whether either cursor moved.
func (t *Timeline) Advance(pts int64) bool {
	if len(t.entries) == 0 {
		return false
	}
	if pts <= t.entries[t.current].PTS || pts <= t.entries[t.next].PTS {
		return false
	}

	current, next := t.current, t.next
	t.current = t.next
	if t.next+1 < len(t.entries) {
		t.next++
	}
	return current != t.current || next != t.next
}
