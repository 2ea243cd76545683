package domain

import "time"

// Entry is one leaderboard row. Timestamp is milliseconds since the epoch.
type Entry struct {
	ID        string
	Name      string
	Score     int64
	MaxCombo  int64
	Timestamp int64
	CreatedAt time.Time
}
