package service

import (
	"context"
	"errors"

	"github.com/Clean1ines/airsongs/pkg/api"
	"github.com/Clean1ines/airsongs/pkg/logging"
)

// handleButton всегда отправляет ровно один AckCallback: ветки возвращают
// текст ответа, а отправляется он только здесь.
func (d *Dispatcher) handleButton(ctx context.Context, log *logging.Logger, p ButtonPress, out Outbox) {
	log.Infof("Кнопка %s для песни %s", p.Action, p.SongID)
	ack, err := d.button(ctx, log, p, out)
	if err != nil {
		log.Errorf("Ошибка обработки кнопки %s_%s: %v", p.Action, p.SongID, err)
		ack = AckErrorProcessing
	}
	if err := out.Emit(ctx, AckCallback{Text: ack}); err != nil {
		log.Errorf("Ошибка ответа на callback: %v", err)
	}
}

func (d *Dispatcher) button(ctx context.Context, log *logging.Logger, p ButtonPress, out Outbox) (string, error) {
	song, err := d.songs.GetDetail(ctx, p.SongID)
	if errors.Is(err, api.ErrNotFound) {
		return AckSongNotFound, nil
	}
	if err != nil {
		return "", err
	}

	switch p.Action {
	case ActionStream:
		return d.stream(ctx, log, song, out)
	case ActionDownload:
		return d.download(ctx, song, out)
	case ActionLyrics:
		return d.lyrics(ctx, log, song, p.SongID, out)
	case ActionInfo:
		if err := out.Emit(ctx, SendText{Text: songInfo(song), ParseMode: ParseMarkdown}); err != nil {
			return "", err
		}
		return AckInfoDisplayed, nil
	default:
		return AckUnknownAction, nil
	}
}

func (d *Dispatcher) stream(ctx context.Context, log *logging.Logger, song api.SongDetail, out Outbox) (string, error) {
	indicate(ctx, log, out, UploadAudioIndicator{})
	media, err := song.Media()
	if errors.Is(err, api.ErrUnavailable) {
		return AckStreamUnavailable, nil
	}
	audio := SendAudio{
		URL:             media,
		Title:           song.Title,
		Performer:       song.PrimaryArtists,
		DurationSeconds: song.DurationSeconds,
	}
	if err := out.Emit(ctx, audio); err != nil {
		return "", err
	}
	return AckStreaming, nil
}

func (d *Dispatcher) download(ctx context.Context, song api.SongDetail, out Outbox) (string, error) {
	media, err := song.Media()
	if errors.Is(err, api.ErrUnavailable) {
		return AckDownloadUnavailable, nil
	}
	if err := out.Emit(ctx, SendText{Text: downloadMessage(media)}); err != nil {
		return "", err
	}
	return AckLinkSent, nil
}

// lyrics – мягкая зависимость: любой сбой запроса превращается в «текста нет».
func (d *Dispatcher) lyrics(ctx context.Context, log *logging.Logger, song api.SongDetail, songID string, out Outbox) (string, error) {
	indicate(ctx, log, out, TypingIndicator{})
	res := d.songs.GetLyrics(ctx, songID)
	if !res.Available() {
		if res.Status == api.LyricsFailed {
			log.Warnf("Текст песни %s недоступен (мягкий отказ): %v", songID, res.Err)
		}
		if err := out.Emit(ctx, SendText{Text: MsgLyricsUnavailable}); err != nil {
			return "", err
		}
		return AckNoLyrics, nil
	}
	for _, part := range splitMessage(lyricsMessage(song.Title, res.Text), MaxMessageLength) {
		if err := out.Emit(ctx, SendText{Text: part, ParseMode: ParseMarkdown}); err != nil {
			return "", err
		}
	}
	return AckLyricsLoaded, nil
}
