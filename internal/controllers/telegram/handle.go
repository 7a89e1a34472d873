package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (r *Router) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	command := msg.Command()

	switch command {
	case "start":
		r.metrics.ObserveUpdate("command", command)
		reply := tgbotapi.NewMessage(msg.Chat.ID, greetingText)
		reply.ReplyMarkup = startKeyboard()
		r.send(reply, command)

	case "help":
		r.metrics.ObserveUpdate("command", command)
		reply := tgbotapi.NewMessage(msg.Chat.ID, helpText)
		reply.ReplyMarkup = helpKeyboard()
		r.send(reply, command)

	case "time":
		r.metrics.ObserveUpdate("command", command)
		r.send(tgbotapi.NewMessage(msg.Chat.ID, timeText(r.now())), command)

	case "info":
		r.metrics.ObserveUpdate("command", command)
		if msg.From == nil {
			r.l.Warning("info command without sender", map[string]any{"chatID": msg.Chat.ID})
			return
		}
		r.send(tgbotapi.NewMessage(msg.Chat.ID, infoText(msg.From)), command)

	case "weather":
		r.metrics.ObserveUpdate("command", command)
		r.request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping), command, "chat_action")

		reply := tgbotapi.NewMessage(msg.Chat.ID, r.weather.Fetch(ctx).Text())
		reply.ParseMode = tgbotapi.ModeMarkdown
		reply.ReplyMarkup = refreshWeatherKeyboard()
		r.send(reply, command)

	default:
		r.metrics.ObserveUpdate("command", "unknown")
		r.l.Debug("unknown command", map[string]any{"command": command, "chatID": msg.Chat.ID})
	}
}

func (r *Router) handleEcho(msg *tgbotapi.Message) {
	r.metrics.ObserveUpdate("message", "echo")
	r.send(tgbotapi.NewMessage(msg.Chat.ID, echoText(msg.Text)), "echo")
}

// handleCallback acknowledges the press first, then edits the message the
// button is attached to.
func (r *Router) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	r.request(tgbotapi.NewCallback(q.ID, ""), q.Data, "answer_callback")

	id, ok := ParseButton(q.Data)
	if !ok {
		r.metrics.ObserveUpdate("callback", "unknown")
		r.l.Warning("unknown callback data", map[string]any{"data": q.Data})
		return
	}
	r.metrics.ObserveUpdate("callback", id.Data())

	var edit tgbotapi.EditMessageTextConfig

	switch id {
	case ButtonYes:
		edit = editFor(q, capabilitiesText)
		edit.ParseMode = tgbotapi.ModeMarkdown

	case ButtonNo:
		edit = editFor(q, declineText)

	case ButtonWeather:
		keyboard := refreshWeatherKeyboard()
		edit = editFor(q, r.weather.Fetch(ctx).Text())
		edit.ParseMode = tgbotapi.ModeMarkdown
		edit.ReplyMarkup = &keyboard

	case ButtonTime:
		edit = editFor(q, timeText(r.now()))

	case ButtonInfo:
		if q.From == nil {
			return
		}
		edit = editFor(q, briefInfoText(q.From))
	}

	r.request(edit, id.Data(), "edit_message")
}

// editFor targets the chat message the button belongs to, or the inline
// message when the button came from inline mode.
func editFor(q *tgbotapi.CallbackQuery, text string) tgbotapi.EditMessageTextConfig {
	if q.Message != nil && q.Message.Chat != nil {
		return tgbotapi.NewEditMessageText(q.Message.Chat.ID, q.Message.MessageID, text)
	}

	return tgbotapi.EditMessageTextConfig{
		BaseEdit: tgbotapi.BaseEdit{InlineMessageID: q.InlineMessageID},
		Text:     text,
	}
}
