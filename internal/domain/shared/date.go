package shared

import "time"

// DateLayout is the wire format for calendar dates exchanged with the client.
const DateLayout = "2006-01-02"

// ParseDate converts a YYYY-MM-DD string to a date value. It returns nil on an
// empty string or any parse failure; it never returns an error. Both the merge
// policy and the full-sync reconciler rely on this normalization so that a
// malformed expiry date degrades to "no expiry date" instead of failing a batch.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// FormatDate renders a date pointer back to YYYY-MM-DD, or nil for a nil date.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// SameDate reports whether two date pointers refer to the same calendar day.
// Two nil pointers are equal; a nil and a non-nil pointer are not.
func SameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
