package scheduler

import (
	"strings"

	"BuyOrWait/internal/notifier"
)

const (
	selectUsage      = "Usage: /select &lt;state&gt; | &lt;commodity&gt;"
	commoditiesUsage = "Usage: /commodities &lt;state&gt;"
)

// HandleCommand processes a chat message and returns a reply. Commands start
// with "/"; any other text is a question about the chat's active selection.
func (s *Scheduler) HandleCommand(chatID, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	sess := s.Sessions.Get(chatID)

	if !strings.HasPrefix(text, "/") {
		if !sess.Selected() {
			return notifier.FormatAnswer(s.Responder.Reply(text, sess.Context()))
		}
		return notifier.FormatAnswer(s.Responder.Answer(&sess.Log, text, sess.Context()))
	}

	command, arg, _ := strings.Cut(text, " ")
	// "/report@SomeBot" in group chats
	command, _, _ = strings.Cut(strings.ToLower(command), "@")
	arg = strings.TrimSpace(arg)

	switch command {
	case "/states":
		return notifier.FormatList("States", s.Table.Regions())
	case "/commodities":
		state := arg
		if state == "" && sess.Analysis != nil {
			state = sess.Analysis.Region
		}
		if state == "" {
			return commoditiesUsage
		}
		state = resolve(s.Table.Regions(), state)
		return notifier.FormatList("Commodities in "+state, s.Table.Commodities(state))
	case "/select":
		state, commodity, ok := strings.Cut(arg, "|")
		state, commodity = strings.TrimSpace(state), strings.TrimSpace(commodity)
		if !ok || state == "" || commodity == "" {
			return selectUsage
		}
		state = resolve(s.Table.Regions(), state)
		commodity = resolve(s.Table.Commodities(state), commodity)
		a, err := s.Advisor.Analyze(state, commodity)
		if err != nil {
			sess.Select(nil)
			return notifier.FormatError(err)
		}
		sess.Select(a)
		return notifier.FormatRecommendation(a, s.Currency)
	case "/report":
		if !sess.Selected() {
			return notifier.FormatAnswer(s.Responder.Reply("", sess.Context()))
		}
		return notifier.FormatRecommendation(sess.Analysis, s.Currency)
	case "/history":
		return notifier.FormatHistory(sess.Recent())
	default:
		return notifier.FormatWelcome()
	}
}

// resolve returns the entry of names equal to name ignoring case, or name itself.
func resolve(names []string, name string) string {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return n
		}
	}
	return name
}
