package service

import (
	"context"
	"fmt"

	"github.com/Clean1ines/airsongs/pkg/api"
	"github.com/Clean1ines/airsongs/pkg/logging"
	"github.com/Clean1ines/airsongs/pkg/matching"
)

func (d *Dispatcher) handleSearch(ctx context.Context, log *logging.Logger, q SearchQuery, out Outbox) {
	log.Infof("Поиск: %q", q.Text)
	if err := d.search(ctx, log, q.Text, out); err != nil {
		log.Errorf("Ошибка поиска %q: %v", q.Text, err)
		if err := out.Emit(ctx, SendText{Text: MsgSearchError}); err != nil {
			log.Errorf("Ошибка отправки сообщения об ошибке: %v", err)
		}
	}
}

func (d *Dispatcher) search(ctx context.Context, log *logging.Logger, query string, out Outbox) error {
	indicate(ctx, log, out, TypingIndicator{})

	results, err := d.songs.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return out.Emit(ctx, SendText{Text: MsgNoResults})
	}
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	best := -1
	if len(results) > 1 {
		meta := make([]matching.TrackMetadata, len(results))
		for i, r := range results {
			meta[i] = r.ToMetadata()
		}
		if i, ok := matching.BestMatch(query, meta); ok {
			best = i
		}
	}

	if err := out.Emit(ctx, SendText{Text: searchSummary(len(results), query)}); err != nil {
		return err
	}
	for i, r := range results {
		if err := d.sendCard(ctx, log, r, i == best, out); err != nil {
			return fmt.Errorf("card %s: %w", r.ID, err)
		}
	}
	return nil
}

// sendCard отправляет карточку песни. Если Telegram не принял обложку,
// карточка уходит текстом.
func (d *Dispatcher) sendCard(ctx context.Context, log *logging.Logger, r api.SearchResult, bestMatch bool, out Outbox) error {
	caption := songCaption(r, bestMatch)
	keyboard := songKeyboard(r.ID)
	if r.ImageURL != "" {
		err := out.Emit(ctx, SendPhoto{URL: r.ImageURL, Caption: caption, ParseMode: ParseMarkdown, Keyboard: keyboard})
		if err == nil {
			return nil
		}
		log.Warnf("Обложка %s не отправлена, карточка уходит текстом: %v", r.ImageURL, err)
	}
	return out.Emit(ctx, SendText{Text: caption, ParseMode: ParseMarkdown, Keyboard: keyboard})
}
