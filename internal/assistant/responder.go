package assistant

import (
	"fmt"
	"strings"

	"BuyOrWait/internal/forecast"
	"BuyOrWait/internal/model"
)

// Context is the selection a question is answered against.
type Context struct {
	Recommendation *model.Recommendation
	Region         string
	Commodity      string
}

// HelpText is returned for questions no rule recognises.
const HelpText = "❓ I can answer:\n" +
	"- Trend\n" +
	"- Lowest price day\n" +
	"- Buy now or wait\n" +
	"- Predicted price\n" +
	"- Current price"

// NoSelectionText is returned when there is no recommendation to answer from.
const NoSelectionText = "⚠️ Select a state and commodity first."

// Topic names a question category.
type Topic string

const (
	TopicTrend     Topic = "trend"
	TopicLowest    Topic = "lowest"
	TopicBuyWait   Topic = "buy_wait"
	TopicForecast  Topic = "forecast"
	TopicCurrent   Topic = "current"
	TopicChange    Topic = "change"
	TopicRegion    Topic = "region"
	TopicCommodity Topic = "commodity"
	TopicHelp      Topic = "help"
)

type rule struct {
	topic   Topic
	terms   []string
	respond func(r *Responder, qc Context) string
}

// rules are checked in order against the lower-cased question; first match wins.
// "low" also matches inside "lowest" and "below", "now" inside "know".
var rules = []rule{
	{TopicTrend, []string{"trend", "increase", "decrease"}, (*Responder).trend},
	{TopicLowest, []string{"lowest", "minimum", "cheap", "cheapest", "low"}, (*Responder).lowest},
	{TopicBuyWait, []string{"buy", "wait", "recommend"}, (*Responder).buyWait},
	{TopicForecast, []string{"predict", "forecast", "future"}, (*Responder).forecast},
	{TopicCurrent, []string{"current", "today", "now"}, (*Responder).current},
	{TopicChange, []string{"change", "%", "percentage"}, (*Responder).change},
	{TopicRegion, []string{"state", "region"}, (*Responder).region},
	{TopicCommodity, []string{"vegetable", "commodity"}, (*Responder).commodity},
}

// Classify returns the topic of the first rule whose terms occur in question.
func Classify(question string) Topic {
	if r, ok := match(question); ok {
		return r.topic
	}
	return TopicHelp
}

func match(question string) (rule, bool) {
	q := strings.ToLower(question)
	for _, r := range rules {
		for _, term := range r.terms {
			if strings.Contains(q, term) {
				return r, true
			}
		}
	}
	return rule{}, false
}

// Responder answers free-text questions by keyword lookup over a recommendation.
type Responder struct {
	Currency string
}

// NewResponder creates a responder that prefixes prices with currency.
func NewResponder(currency string) *Responder {
	return &Responder{Currency: currency}
}

// Reply answers question without recording it.
func (r *Responder) Reply(question string, qc Context) string {
	if qc.Recommendation == nil {
		return NoSelectionText
	}
	rl, ok := match(question)
	if !ok {
		return HelpText
	}
	return rl.respond(r, qc)
}

// Answer replies to question and appends the question and reply to log.
// Blank questions are ignored: nothing is appended and "" is returned.
func (r *Responder) Answer(log *model.ConversationLog, question string, qc Context) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return ""
	}
	reply := r.Reply(question, qc)
	log.Append(model.SpeakerUser, question)
	log.Append(model.SpeakerAssistant, reply)
	return reply
}

func (r *Responder) trend(qc Context) string {
	pct := qc.Recommendation.PercentChange
	switch {
	case pct > 0:
		return fmt.Sprintf("📈 The trend is increasing. Expected change is %s in the next %d days.", FormatPercent(pct), forecast.DefaultHorizon)
	case pct < 0:
		return fmt.Sprintf("📉 The trend is decreasing. Expected change is %s in the next %d days.", FormatPercent(pct), forecast.DefaultHorizon)
	default:
		return "📊 The price trend is stable with minimal change."
	}
}

func (r *Responder) lowest(qc Context) string {
	rec := qc.Recommendation
	return fmt.Sprintf("💰 The lowest predicted price is %s on 📅 %s.",
		FormatPrice(r.Currency, rec.MinPredictedPrice), FormatDate(rec.BestDay))
}

func (r *Responder) buyWait(qc Context) string {
	rec := qc.Recommendation
	return fmt.Sprintf("🛒 Recommendation: **%s**.\n\nCurrent price is %s and predicted price after %d days is %s.",
		rec.Action.Label(), FormatPrice(r.Currency, rec.CurrentPrice), forecast.DefaultHorizon, FormatPrice(r.Currency, rec.PredictedPrice))
}

func (r *Responder) forecast(qc Context) string {
	return fmt.Sprintf("🔮 Predicted price after %d days is %s.",
		forecast.DefaultHorizon, FormatPrice(r.Currency, qc.Recommendation.PredictedPrice))
}

func (r *Responder) current(qc Context) string {
	return fmt.Sprintf("📌 Current price is %s.", FormatPrice(r.Currency, qc.Recommendation.CurrentPrice))
}

func (r *Responder) change(qc Context) string {
	return fmt.Sprintf("📊 Expected price change is %s in the next %d days.",
		FormatPercent(qc.Recommendation.PercentChange), forecast.DefaultHorizon)
}

func (r *Responder) region(qc Context) string {
	return fmt.Sprintf("📍 Selected state: **%s**.", qc.Region)
}

func (r *Responder) commodity(qc Context) string {
	return fmt.Sprintf("🥦 Selected commodity: **%s**.", qc.Commodity)
}
