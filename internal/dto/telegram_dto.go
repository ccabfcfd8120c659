package dto

// TelegramUpdate is the subset of the Bot API update object the webhook cares
// about: plain text messages and inline-button presses.
type TelegramUpdate struct {
	UpdateId      int64                  `json:"update_id"`
	Message       *TelegramMessage       `json:"message,omitempty"`
	CallbackQuery *TelegramCallbackQuery `json:"callback_query,omitempty"`
}

type TelegramMessage struct {
	MessageId int64        `json:"message_id"`
	Text      string       `json:"text"`
	Chat      TelegramChat `json:"chat"`
}

type TelegramChat struct {
	Id int64 `json:"id"`
}

type TelegramCallbackQuery struct {
	Id      string           `json:"id"`
	Data    string           `json:"data"`
	Message *TelegramMessage `json:"message,omitempty"`
}
