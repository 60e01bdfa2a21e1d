package api

import (
	"bytes"
	"encoding/json"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/Clean1ines/airsongs/pkg/matching"
)

// SearchResult определяет запись из выдачи поиска.
type SearchResult struct {
	ID              string
	Title           string
	PrimaryArtists  string
	Album           string
	DurationSeconds int
	Year            string
	Language        string
	ImageURL        string // пусто, если обложки нет
	PlayCount       *int64 // nil, если API не прислал значение
	Label           string
}

// ToMetadata конвертирует запись в формат для сравнения с запросом
func (r SearchResult) ToMetadata() matching.TrackMetadata {
	return matching.TrackMetadata{
		Title:  r.Title,
		Artist: r.PrimaryArtists,
	}
}

// SongDetail – полная карточка песни со ссылкой на аудио.
type SongDetail struct {
	SearchResult
	MediaURL string
}

// Media возвращает ссылку на аудио или ErrUnavailable.
func (d SongDetail) Media() (string, error) {
	if d.MediaURL == "" {
		return "", ErrUnavailable
	}
	return d.MediaURL, nil
}

// LyricsStatus описывает исход запроса текста песни.
type LyricsStatus int

const (
	LyricsMissing LyricsStatus = iota // API ответил, но текста нет
	LyricsFound
	LyricsFailed // мягкий отказ: сеть или разбор ответа
)

func (s LyricsStatus) String() string {
	switch s {
	case LyricsFound:
		return "found"
	case LyricsFailed:
		return "failed"
	default:
		return "missing"
	}
}

// LyricsResult – результат GetLyrics. Err заполнен только для LyricsFailed.
type LyricsResult struct {
	Status LyricsStatus
	Text   string
	Err    error
}

// Available сообщает, есть ли текст для показа.
func (r LyricsResult) Available() bool {
	return r.Status == LyricsFound
}

// rawSong повторяет JSON-формат API (/result/ и /song/).
type rawSong struct {
	ID             flexString `json:"id"`
	Song           string     `json:"song"`
	PrimaryArtists string     `json:"primary_artists"`
	Album          string     `json:"album"`
	Duration       flexNumber `json:"duration"`
	Year           flexString `json:"year"`
	Language       string     `json:"language"`
	Image          string     `json:"image"`
	PlayCount      flexNumber `json:"play_count"`
	Label          string     `json:"label"`
	MediaURL       string     `json:"media_url"`
}

func (s rawSong) toSearchResult() SearchResult {
	r := SearchResult{
		ID:              string(s.ID),
		Title:           html.UnescapeString(s.Song),
		PrimaryArtists:  html.UnescapeString(s.PrimaryArtists),
		Album:           html.UnescapeString(s.Album),
		DurationSeconds: int(s.Duration.Value),
		Year:            string(s.Year),
		Language:        s.Language,
		ImageURL:        s.Image,
		Label:           html.UnescapeString(s.Label),
	}
	if s.PlayCount.Valid {
		n := s.PlayCount.Value
		r.PlayCount = &n
	}
	return r
}

func (s rawSong) toDetail() SongDetail {
	return SongDetail{SearchResult: s.toSearchResult(), MediaURL: s.MediaURL}
}

type rawLyrics struct {
	Success bool `json:"success"`
	Data    *struct {
		Lyrics string `json:"lyrics"`
	} `json:"data"`
}

// flexNumber принимает число как JSON-число или как строку ("245").
// Пустые, нечисловые, отрицательные и слишком большие значения считаются отсутствующими.
// maxFlexNumber – наибольшее целое, точно представимое в float64.
const maxFlexNumber = 1 << 53

type flexNumber struct {
	Value int64
	Valid bool
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	*n = flexNumber{}
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > maxFlexNumber {
		return nil
	}
	*n = flexNumber{Value: int64(v), Valid: true}
	return nil
}

// flexString принимает строку или число.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

// isArray сообщает, является ли JSON-документ массивом.
func isArray(body []byte) bool {
	body = bytes.TrimSpace(body)
	return len(body) > 0 && body[0] == '['
}
