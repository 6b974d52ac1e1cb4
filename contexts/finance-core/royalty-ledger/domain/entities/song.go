package entities

import "time"

// Contributor is one entry in a song's split table. Duplicate accounts are
// allowed within a song; their shares accrue into the same balance.
type Contributor struct {
	Account    string
	Percentage int
}

// Song is a registered, immutable asset with a fixed contributor split.
// The percentage sum is validated lazily at distribution time, not here.
type Song struct {
	ID           uint64
	Title        string
	Artist       string
	IPFSHash     string
	Contributors []Contributor
	CreatedAt    time.Time
}

// PercentageTotal sums the contributor percentages of the song.
func (s Song) PercentageTotal() int {
	total := 0
	for _, contributor := range s.Contributors {
		total += contributor.Percentage
	}
	return total
}
