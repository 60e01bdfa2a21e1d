// pkg/api/songs.go
package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/Clean1ines/airsongs/pkg/api/client"
)

// Пути эндпоинтов API песен.
const (
	searchPath = "/result/"
	songPath   = "/song/"
	lyricsPath = "/lyrics/"
)

// Client обращается к REST API поиска песен. Безопасен для конкурентного использования.
type Client struct {
	baseURL string
	http    *client.Client
}

// NewClient создаёт клиента API с заданным базовым адресом.
func NewClient(baseURL string, hc *client.Client) *Client {
	if hc == nil {
		hc = client.New(0)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// Search ищет песни по запросу. Пустой результат или ответ не-массив дают пустой срез.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	reqURL := c.endpoint(searchPath, query)
	body, err := c.http.Get(ctx, reqURL)
	if err != nil {
		return nil, &LookupError{Op: "search", URL: reqURL, Err: err}
	}
	if !json.Valid(body) {
		return nil, &LookupError{Op: "search", URL: reqURL, Err: errInvalidJSON}
	}
	if !isArray(body) {
		return nil, nil
	}
	var raw []rawSong
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &LookupError{Op: "search", URL: reqURL, Err: err}
	}
	results := make([]SearchResult, 0, len(raw))
	for _, s := range raw {
		results = append(results, s.toSearchResult())
	}
	return results, nil
}

// GetDetail возвращает первую запись из ответа /song/ или ErrNotFound.
func (c *Client) GetDetail(ctx context.Context, songID string) (SongDetail, error) {
	reqURL := c.endpoint(songPath, songID)
	body, err := c.http.Get(ctx, reqURL)
	if err != nil {
		return SongDetail{}, &LookupError{Op: "detail", URL: reqURL, Err: err}
	}
	if !json.Valid(body) {
		return SongDetail{}, &LookupError{Op: "detail", URL: reqURL, Err: errInvalidJSON}
	}
	if !isArray(body) {
		return SongDetail{}, ErrNotFound
	}
	var raw []rawSong
	if err := json.Unmarshal(body, &raw); err != nil {
		return SongDetail{}, &LookupError{Op: "detail", URL: reqURL, Err: err}
	}
	if len(raw) == 0 {
		return SongDetail{}, ErrNotFound
	}
	return raw[0].toDetail(), nil
}

// GetLyrics никогда не возвращает ошибку: отсутствие текста – ожидаемый исход,
// сбой запроса помечается как LyricsFailed.
func (c *Client) GetLyrics(ctx context.Context, songID string) LyricsResult {
	reqURL := c.endpoint(lyricsPath, songID)
	body, err := c.http.Get(ctx, reqURL)
	if err != nil {
		return LyricsResult{Status: LyricsFailed, Err: &LookupError{Op: "lyrics", URL: reqURL, Err: err}}
	}
	var raw rawLyrics
	if err := json.Unmarshal(body, &raw); err != nil {
		return LyricsResult{Status: LyricsFailed, Err: &LookupError{Op: "lyrics", URL: reqURL, Err: err}}
	}
	if !raw.Success || raw.Data == nil || strings.TrimSpace(raw.Data.Lyrics) == "" {
		return LyricsResult{Status: LyricsMissing}
	}
	return LyricsResult{Status: LyricsFound, Text: raw.Data.Lyrics}
}

func (c *Client) endpoint(path, query string) string {
	return c.baseURL + path + "?" + url.Values{"query": {query}}.Encode()
}
