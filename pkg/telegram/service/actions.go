package service

// Action – исходящее действие, которое транспорт исполняет один к одному.
type Action interface {
	action()
}

// SendText – текстовое сообщение, опционально с клавиатурой.
type SendText struct {
	Text      string
	ParseMode string
	Keyboard  Keyboard
}

// SendPhoto – фото по URL с подписью.
type SendPhoto struct {
	URL       string
	Caption   string
	ParseMode string
	Keyboard  Keyboard
}

// SendAudio – аудио по URL.
type SendAudio struct {
	URL             string
	Title           string
	Performer       string
	DurationSeconds int
}

// AckCallback – ответ на нажатие кнопки. Ровно один на каждый ButtonPress.
type AckCallback struct {
	Text string
}

// TypingIndicator – статус «печатает…».
type TypingIndicator struct{}

// UploadAudioIndicator – статус «отправляет аудио…».
type UploadAudioIndicator struct{}

func (SendText) action()             {}
func (SendPhoto) action()            {}
func (SendAudio) action()            {}
func (AckCallback) action()          {}
func (TypingIndicator) action()      {}
func (UploadAudioIndicator) action() {}

// Button – inline-кнопка с callback data.
type Button struct {
	Text string
	Data string
}

// Keyboard – ряды inline-кнопок.
type Keyboard [][]Button
