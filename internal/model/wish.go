package model

// Wish is a single entry in a user's list. IDs are allocated per user,
// start at 1 and are never reused. Fulfilled only ever flips false->true.
type Wish struct {
	ID        uint32 `json:"id"`
	Text      string `json:"text"`
	CreatedAt uint64 `json:"created_at"` // sequence marker at creation time
	Fulfilled bool   `json:"fulfilled"`
}

// Settings is the process-wide configuration singleton written once at
// bootstrap. Deadline is unix seconds; zero means "never bootstrapped with
// an explicit deadline" and falls back to DefaultDeadline at check time.
type Settings struct {
	Admin    string   `json:"admin"`
	Deadline int64    `json:"deadline"`
	Denylist []string `json:"denylist"`
}

// DefaultDeadline is the fallback cutover instant (Dec 25 2025 00:00:00 UTC)
// used when no deadline was ever stored.
const DefaultDeadline int64 = 1_766_620_800

// Denylisted reports whether user is barred from adding wishes.
func (s *Settings) Denylisted(user string) bool {
	for _, p := range s.Denylist {
		if p == user {
			return true
		}
	}
	return false
}
