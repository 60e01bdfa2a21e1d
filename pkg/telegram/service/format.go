package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Clean1ines/airsongs/pkg/api"
)

// ParseMarkdown – режим разметки для карточек, информации и текста песен.
// В MarkdownV2 экранирование допустимо и внутри *жирного* текста.
const ParseMarkdown = tgbotapi.ModeMarkdownV2

// MaxMessageLength – ограничение Telegram на длину текста сообщения.
const MaxMessageLength = 4096

const welcomeText = `🎵 Welcome to AirSongs Bot! 🎵

Search for any song and I'll help you:
• 🎧 Stream music directly
• 📥 Download MP3 files
• 📝 Get lyrics
• ℹ️ View song details

Just type the name of any song to get started!

Examples:
• Arjan Vailly
• Shape of You
• Blinding Lights`

const helpText = `🤖 AirSongs Bot Commands:

/start - Start the bot
/help - Show this help message

🔍 How to use:
1. Send me any song name
2. Choose from the search results
3. Stream, download, or get lyrics!

💡 Tips:
• Be specific with song names for better results
• Include artist name for more accurate search
• All downloads are in high quality MP3 format

🎵 Enjoy your music!`

// Тексты сообщений и ответов на callback.
const (
	MsgNoResults         = "❌ No songs found. Try a different search term."
	MsgSearchError       = "❌ Sorry, there was an error searching for songs. Please try again."
	MsgLyricsUnavailable = "❌ Lyrics not available for this song."

	AckSongNotFound         = "❌ Song not found!"
	AckStreaming            = "🎧 Streaming..."
	AckStreamUnavailable    = "❌ Stream not available!"
	AckLinkSent             = "📥 Download link sent!"
	AckDownloadUnavailable  = "❌ Download not available!"
	AckLyricsLoaded         = "📝 Lyrics loaded!"
	AckNoLyrics             = "❌ No lyrics found!"
	AckInfoDisplayed        = "ℹ️ Song info displayed!"
	AckUnknownAction        = "❌ Unknown action!"
	AckErrorProcessing      = "❌ Error processing request!"
	bestMatchLine           = "🎯 Best match"
	notAvailable            = "N/A"
	downloadMessageTemplate = "📥 Download Link:\n%s\n\n💡 Click the link to download the MP3 file."
)

// FormatDuration форматирует секунды как "м:сс".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatPlayCount выводит число прослушиваний с разделителями тысяч или "N/A".
func FormatPlayCount(count *int64) string {
	if count == nil {
		return notAvailable
	}
	return message.NewPrinter(language.English).Sprintf("%d", *count)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// escape экранирует значение для MarkdownV2. EscapeText не трогает обратный слеш,
// поэтому он экранируется отдельно и первым.
func escape(s string) string {
	return tgbotapi.EscapeText(ParseMarkdown, strings.ReplaceAll(s, `\`, `\\`))
}

func searchSummary(count int, query string) string {
	return fmt.Sprintf("🔍 Found %d results for \"%s\":", count, query)
}

// songCaption – подпись карточки в выдаче поиска.
func songCaption(r api.SearchResult, bestMatch bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎵 *%s*\n", escape(r.Title))
	if bestMatch {
		b.WriteString(bestMatchLine + "\n")
	}
	fmt.Fprintf(&b, "👤 Artist: %s\n", escape(r.PrimaryArtists))
	fmt.Fprintf(&b, "💽 Album: %s\n", escape(r.Album))
	fmt.Fprintf(&b, "⏱️ Duration: %s\n", escape(FormatDuration(r.DurationSeconds)))
	fmt.Fprintf(&b, "🗓️ Year: %s\n", escape(r.Year))
	fmt.Fprintf(&b, "🌐 Language: %s", escape(r.Language))
	return b.String()
}

// songKeyboard – четыре кнопки действий для песни.
func songKeyboard(songID string) Keyboard {
	return Keyboard{
		{
			{Text: "🎧 Stream", Data: EncodeButton(ActionStream, songID)},
			{Text: "📥 Download", Data: EncodeButton(ActionDownload, songID)},
		},
		{
			{Text: "📝 Lyrics", Data: EncodeButton(ActionLyrics, songID)},
			{Text: "ℹ️ Info", Data: EncodeButton(ActionInfo, songID)},
		},
	}
}

func songInfo(d api.SongDetail) string {
	var b strings.Builder
	b.WriteString("ℹ️ *Song Information*\n\n")
	fmt.Fprintf(&b, "🎵 *Title:* %s\n", escape(d.Title))
	fmt.Fprintf(&b, "👤 *Artist:* %s\n", escape(d.PrimaryArtists))
	fmt.Fprintf(&b, "💽 *Album:* %s\n", escape(d.Album))
	fmt.Fprintf(&b, "⏱️ *Duration:* %s\n", escape(FormatDuration(d.DurationSeconds)))
	fmt.Fprintf(&b, "🗓️ *Year:* %s\n", escape(d.Year))
	fmt.Fprintf(&b, "🌐 *Language:* %s\n", escape(d.Language))
	fmt.Fprintf(&b, "▶️ *Play Count:* %s\n", escape(FormatPlayCount(d.PlayCount)))
	fmt.Fprintf(&b, "🏷️ *Label:* %s", escape(orNA(d.Label)))
	return b.String()
}

func downloadMessage(mediaURL string) string {
	return fmt.Sprintf(downloadMessageTemplate, mediaURL)
}

func lyricsMessage(title, lyrics string) string {
	return fmt.Sprintf("📝 *Lyrics for %s*\n\n%s", escape(title), escape(lyrics))
}

// splitMessage режет текст на части не длиннее limit байт, по возможности по переводам строк.
func splitMessage(text string, limit int) []string {
	var parts []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			// не отрываем экранирующий обратный слеш от символа
			if cut > 1 && trailingBackslashes(text[:cut])%2 == 1 {
				cut--
			}
		}
		parts = append(parts, text[:cut])
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" || len(parts) == 0 {
		parts = append(parts, text)
	}
	return parts
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}
