// pkg/matching/matcher_test.go
package matching

import "testing"

func TestQueryScore(t *testing.T) {
	track := TrackMetadata{Title: "Shape of You", Artist: "Ed Sheeran"}

	if score := QueryScore("shape of you", track); score != 100 {
		t.Errorf("Ожидалось полное совпадение, получено %d", score)
	}
	if score := QueryScore("  Shape   of You ed sheeran", track); score != 100 {
		t.Errorf("Ожидалось совпадение с исполнителем, получено %d", score)
	}
	if score := QueryScore("ed sheeran shape of you", track); score != 100 {
		t.Errorf("Ожидалось совпадение при обратном порядке, получено %d", score)
	}
	if score := QueryScore("blinding lights", track); score >= MatchThreshold {
		t.Errorf("Ожидался низкий процент совпадения, получено %d", score)
	}
}

func TestBestMatch(t *testing.T) {
	tracks := []TrackMetadata{
		{Title: "Shape of You (Remix)", Artist: "Someone"},
		{Title: "Shape of You", Artist: "Ed Sheeran"},
		{Title: "Shape of You", Artist: "Cover Band"},
	}
	idx, ok := BestMatch("shape of you", tracks)
	if !ok || idx != 1 {
		t.Errorf("Ожидался индекс 1, получено %d (ok=%v)", idx, ok)
	}

	if _, ok := BestMatch("completely different", tracks); ok {
		t.Errorf("Не ожидалось совпадения")
	}
	if _, ok := BestMatch("x", nil); ok {
		t.Errorf("Пустой список не может дать совпадение")
	}
}
