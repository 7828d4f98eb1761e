package notifier

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"BuyOrWait/internal/assistant"
	"BuyOrWait/internal/collector"
	"BuyOrWait/internal/forecast"
	"BuyOrWait/internal/model"
)

// InsufficientDataText is shown when a selection has too few observations.
const InsufficientDataText = "⚠️ Not enough historical data."

// FormatRecommendation formats an analysis into a Telegram message.
func FormatRecommendation(a *model.Analysis, currency string) string {
	rec := a.Recommendation
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🤖 <b>%s</b> | %s\n\n", html.EscapeString(a.Commodity), html.EscapeString(a.Region)))
	b.WriteString(fmt.Sprintf("Current price: %s\n", assistant.FormatPrice(currency, rec.CurrentPrice)))
	b.WriteString(fmt.Sprintf("Predicted price (%d days): %s\n", forecast.DefaultHorizon, assistant.FormatPrice(currency, rec.PredictedPrice)))
	b.WriteString(fmt.Sprintf("%s <b>%s</b>\n", actionEmoji(rec.Action), rec.Action.Label()))
	b.WriteString(fmt.Sprintf("Expected price change: %s\n\n", assistant.FormatPercent(rec.PercentChange)))

	b.WriteString("📅 <b>Best day to buy</b>\n")
	b.WriteString(fmt.Sprintf("💰 Lowest expected price: %s\n", assistant.FormatPrice(currency, rec.MinPredictedPrice)))
	b.WriteString(fmt.Sprintf("📆 Date: %s\n", assistant.FormatDate(rec.BestDay)))
	b.WriteString(fmt.Sprintf("⏳ Wait: %d days", rec.WaitDays))
	return b.String()
}

func actionEmoji(a model.Action) string {
	switch a {
	case model.ActionBuyNow:
		return "🟢"
	case model.ActionWait:
		return "🔴"
	default:
		return "🟡"
	}
}

// DigestEntry is one watchlist line: either an analysis or the error that
// stopped it.
type DigestEntry struct {
	State     string
	Commodity string
	Analysis  *model.Analysis
	Err       error
}

// FormatDigest formats the watchlist digest.
func FormatDigest(date string, entries []DigestEntry, currency string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>BuyOrWait digest</b> | %s\n", date))
	for _, e := range entries {
		b.WriteString("\n")
		if e.Err != nil {
			b.WriteString(fmt.Sprintf("<b>%s</b> | %s\n%s\n",
				html.EscapeString(e.Commodity), html.EscapeString(e.State), FormatError(e.Err)))
			continue
		}
		b.WriteString(FormatRecommendation(e.Analysis, currency))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatError renders a pipeline error for users.
func FormatError(err error) string {
	if errors.Is(err, collector.ErrInsufficientData) {
		return InsufficientDataText
	}
	return "❌ " + html.EscapeString(err.Error())
}

// FormatAnswer converts an assistant reply to Telegram HTML: the text is
// escaped and **bold** spans become <b> tags.
func FormatAnswer(text string) string {
	escaped := html.EscapeString(text)
	parts := strings.Split(escaped, "**")
	if len(parts)%2 == 0 {
		// unbalanced markers stay literal
		return escaped
	}
	var b strings.Builder
	for i, p := range parts {
		if i%2 == 1 {
			b.WriteString("<b>" + p + "</b>")
			continue
		}
		b.WriteString(p)
	}
	return b.String()
}

// FormatHistory formats the most recent conversation entries.
func FormatHistory(msgs []model.Message) string {
	if len(msgs) == 0 {
		return "💬 No questions yet."
	}
	var b strings.Builder
	b.WriteString("💬 <b>Chat history</b>\n")
	for _, m := range msgs {
		if m.Speaker == model.SpeakerUser {
			b.WriteString("\n🧑 <b>You:</b> ")
		} else {
			b.WriteString("\n🤖 <b>AI:</b> ")
		}
		b.WriteString(FormatAnswer(m.Text))
	}
	return b.String()
}

// FormatList formats a titled bullet list.
func FormatList(title string, items []string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>%s</b>\n", html.EscapeString(title)))
	if len(items) == 0 {
		b.WriteString("(none)")
		return b.String()
	}
	for _, it := range items {
		b.WriteString("• " + html.EscapeString(it) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatWelcome lists the commands and the quick questions.
func FormatWelcome() string {
	var b strings.Builder
	b.WriteString("🛒 <b>BuyOrWait</b>\n\n")
	b.WriteString("Commands:\n")
	b.WriteString("• /states\n")
	b.WriteString("• /commodities\n")
	b.WriteString("• /select &lt;state&gt; | &lt;commodity&gt;\n")
	b.WriteString("• /report\n")
	b.WriteString("• /history\n\n")
	b.WriteString("💡 You can ask questions like:\n")
	for _, q := range assistant.QuickQuestions {
		b.WriteString("- " + q + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
