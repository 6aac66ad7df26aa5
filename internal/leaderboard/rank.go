package leaderboard

import "sort"

// Entry is one leaderboard standing. Rank is a dense competition rank:
// tied values share a rank, the next distinct value ranks at its 1-indexed
// position, so values [100, 100, 80] rank [1, 1, 3].
type Entry struct {
	UserID string  `json:"userId"`
	Value  float64 `json:"value"`
	Rank   int     `json:"rank"`
}

// Rank turns per-user values into ranked standings, sorted by value
// descending. Ties are ordered by user id to keep the output deterministic.
func Rank(valuesByUser map[string]float64) []Entry {
	entries := make([]Entry, 0, len(valuesByUser))
	for userID, value := range valuesByUser {
		entries = append(entries, Entry{
			UserID: userID,
			Value:  value,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		if i > 0 && entries[i].Value == entries[i-1].Value {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}

	return entries
}
