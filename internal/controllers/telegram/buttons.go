package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// ButtonID enumerates every inline button the bot attaches to its messages.
type ButtonID int

const (
	ButtonYes ButtonID = iota + 1
	ButtonNo
	ButtonWeather
	ButtonTime
	ButtonInfo
)

// Data is the callback payload Telegram echoes back on press.
func (b ButtonID) Data() string {
	switch b {
	case ButtonYes:
		return "yes"
	case ButtonNo:
		return "no"
	case ButtonWeather:
		return "weather"
	case ButtonTime:
		return "time_btn"
	case ButtonInfo:
		return "info_btn"
	}
	return ""
}

// ParseButton maps callback data back to a ButtonID.
func ParseButton(data string) (ButtonID, bool) {
	switch data {
	case "yes":
		return ButtonYes, true
	case "no":
		return ButtonNo, true
	case "weather":
		return ButtonWeather, true
	case "time_btn":
		return ButtonTime, true
	case "info_btn":
		return ButtonInfo, true
	}
	return 0, false
}

func button(label string, id ButtonID) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, id.Data()))
}

func startKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		button("✅ Да", ButtonYes),
		button("❌ Нет", ButtonNo),
		button("🌤 Погода в Воронеже", ButtonWeather),
	)
}

func helpKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		button("🌤 Погода", ButtonWeather),
		button("🕐 Время", ButtonTime),
		button("👤 Инфо", ButtonInfo),
	)
}

func refreshWeatherKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		button("🔄 Обновить погоду", ButtonWeather),
	)
}
