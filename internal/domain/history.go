package domain

// HistoryKey is the storage key the history list lives under.
const HistoryKey = "passwords"

// HistoryList holds previously generated passwords in insertion order.
// Duplicates are allowed.
type HistoryList []string

// Clone returns an independent copy that is never nil.
func (h HistoryList) Clone() HistoryList {
	out := make(HistoryList, len(h))
	copy(out, h)
	return out
}

// Last returns the most recently added password.
func (h HistoryList) Last() (string, bool) {
	if len(h) == 0 {
		return "", false
	}
	return h[len(h)-1], true
}

// Trim keeps the newest max entries. A max of zero or less keeps everything.
func (h HistoryList) Trim(max int) HistoryList {
	if max <= 0 || len(h) <= max {
		return h
	}
	return h[len(h)-max:]
}
