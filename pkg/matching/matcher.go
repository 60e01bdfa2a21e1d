// pkg/matching/matcher.go
package matching

import (
	"strings"

	"github.com/xrash/smetrics"
)

// MatchThreshold – минимальный процент совпадения, начиная с которого результат считается точным.
const MatchThreshold = 80

// TrackMetadata содержит поля трека, по которым он сравнивается с запросом.
type TrackMetadata struct {
	Title  string
	Artist string
}

// QueryScore возвращает процент совпадения запроса с треком.
// Запрос сравнивается с названием и с парой «название исполнитель» в любом порядке.
func QueryScore(query string, t TrackMetadata) int {
	q := normalize(query)
	title := normalize(t.Title)
	best := similarity(q, title)
	if t.Artist != "" {
		artist := normalize(t.Artist)
		for _, candidate := range []string{title + " " + artist, artist + " " + title} {
			if s := similarity(q, candidate); s > best {
				best = s
			}
		}
	}
	return best
}

// BestMatch возвращает индекс трека, лучше всего совпадающего с запросом.
// При равенстве побеждает более ранний трек. ok=false, если никто не достиг MatchThreshold.
func BestMatch(query string, tracks []TrackMetadata) (index int, ok bool) {
	index, bestScore := -1, -1
	for i, t := range tracks {
		if s := QueryScore(query, t); s > bestScore {
			index, bestScore = i, s
		}
	}
	if index < 0 || bestScore < MatchThreshold {
		return -1, false
	}
	return index, true
}

func similarity(s1, s2 string) int {
	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}
	if maxLen == 0 {
		return 100
	}
	distance := smetrics.WagnerFischer(s1, s2, 1, 1, 2)
	score := 100 - (distance * 100 / maxLen)
	if score < 0 {
		return 0
	}
	return score
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
