package matching

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Rankable is anything that can be ordered in an HR candidate list.
type Rankable interface {
	RankScore() *int
	RankCreatedAt() time.Time
	RankID() uuid.UUID
}

// Rank sorts items by score descending (nil counts as 0), then newest
// first, then by id so identical inputs always produce the same order.
func Rank[T Rankable](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return Less(items[i], items[j])
	})
}

func Less(a, b Rankable) bool {
	sa, sb := scoreOrZero(a.RankScore()), scoreOrZero(b.RankScore())
	if sa != sb {
		return sa > sb
	}
	ta, tb := a.RankCreatedAt(), b.RankCreatedAt()
	if !ta.Equal(tb) {
		return ta.After(tb)
	}
	ia, ib := a.RankID(), b.RankID()
	return ia.String() < ib.String()
}

func scoreOrZero(s *int) int {
	if s == nil {
		return 0
	}
	return *s
}
