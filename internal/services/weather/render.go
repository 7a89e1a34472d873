package weather

import (
	"fmt"
	"strings"

	"weather-bot/internal/models"
)

const (
	DateLayout = "02.01.2006"
	TimeLayout = "15:04:05"

	headerLine = "🌤 **Погода в Воронеже**\n"
	sourceLine = "\n📊 *Источник: Яндекс.Погода*"
)

// Render formats a report for Telegram legacy Markdown. It never fails:
// every field already carries a value or the NotAvailable placeholder.
func Render(r models.WeatherReport) string {
	var b strings.Builder

	b.WriteString(headerLine)

	if r.Summary != "" {
		b.WriteString("\n")
		b.WriteString(r.Summary)
		return b.String()
	}

	fmt.Fprintf(&b, "📅 %s\n\n", r.FetchedAt.Format(DateLayout))
	b.WriteString("**Сейчас:**\n")
	fmt.Fprintf(&b, "🌡 Температура: %s°C\n", r.CurrentTemperature)
	fmt.Fprintf(&b, "📝 Состояние: %s\n", r.Condition)
	fmt.Fprintf(&b, "🤔 Ощущается как: %s°C\n\n", r.FeelsLike)

	if len(r.DayParts) > 0 {
		b.WriteString("**Прогноз на день:**\n")
		for i, part := range r.DayParts {
			if i == models.MaxDayParts {
				break
			}
			fmt.Fprintf(&b, "• %s: %s°C\n", part.Label, part.Temperature)
		}
	}

	b.WriteString(sourceLine)

	return b.String()
}
