package session

import "github.com/guilhermeluismatos9483-blip/Sistema/internal/domain"

// Ledger is the newest-first history of successful analyses for the
// lifetime of the process. Entries are only ever prepended.
type Ledger struct {
	entries []domain.FeedbackEntry
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Prepend records entry as the newest item.
func (l *Ledger) Prepend(entry domain.FeedbackEntry) {
	l.entries = append(l.entries, domain.FeedbackEntry{})
	copy(l.entries[1:], l.entries)
	l.entries[0] = entry
}

// Entries returns a copy of the history, newest first.
func (l *Ledger) Entries() []domain.FeedbackEntry {
	out := make([]domain.FeedbackEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Ledger) Len() int { return len(l.entries) }

// Latest returns the most recently prepended entry.
func (l *Ledger) Latest() (domain.FeedbackEntry, bool) {
	if len(l.entries) == 0 {
		return domain.FeedbackEntry{}, false
	}
	return l.entries[0], true
}
