package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"weather-bot/internal/services/weather"
)

const (
	greetingText = "Вы хотите чтобы я рассказал что я умею?"

	capabilitiesText = "🤖 **Что я умею:**\n\n" +
		"• Отвечать на ваши сообщения (эхо)\n" +
		"• Команда /start - начать диалог\n" +
		"• Команда /help - помощь\n" +
		"• Команда /time - текущее время\n" +
		"• Команда /info - информация о вас\n" +
		"• Команда /weather - погода в Воронеже\n\n" +
		"Я работаю на Render 24/7! 🚀"

	declineText = "Хорошо! Если передумаете - просто напишите /help или задайте вопрос!"

	helpText = "📚 **Доступные команды:**\n\n" +
		"/start - Начать диалог с кнопками\n" +
		"/help - Помощь и список команд\n" +
		"/time - Текущее время\n" +
		"/info - Информация о вас\n" +
		"/weather - Погода в Воронеже\n\n" +
		"Или используйте кнопки ниже:"

	echoPrefix = "Вы сказали: "

	lastNameMissing = "не указана"
	usernameMissing = "не указан"
)

func timeText(now time.Time) string {
	return fmt.Sprintf("📅 **Дата:** %s\n⏰ **Время:** %s",
		now.Format(weather.DateLayout), now.Format(weather.TimeLayout))
}

func infoText(u *tgbotapi.User) string {
	lastName := u.LastName
	if lastName == "" {
		lastName = lastNameMissing
	}

	return fmt.Sprintf("👤 **Информация о вас:**\n"+
		"• Имя: %s\n"+
		"• Фамилия: %s\n"+
		"• Username: @%s\n"+
		"• ID: %d",
		u.FirstName, lastName, username(u), u.ID)
}

// briefInfoText is the button variant of infoText, without the last name.
func briefInfoText(u *tgbotapi.User) string {
	return fmt.Sprintf("👤 **Информация о вас:**\n"+
		"• Имя: %s\n"+
		"• Username: @%s\n"+
		"• ID: %d",
		u.FirstName, username(u), u.ID)
}

func username(u *tgbotapi.User) string {
	if u.UserName == "" {
		return usernameMissing
	}
	return u.UserName
}

func echoText(text string) string {
	return echoPrefix + text
}
