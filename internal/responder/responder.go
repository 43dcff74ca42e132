package responder

import (
	"context"
	"regexp"
	"strings"
)

// Mode selects which rule ladder answers an utterance.
type Mode string

const (
	// ModeSimple answers from the canned FAQ table with a short topic fallback.
	ModeSimple Mode = "SIMPLE"
	// ModeAssistant recognizes ticket control intents and produces longer guidance.
	ModeAssistant Mode = "ASSISTANT"
)

// ReplyKind tags the responder outcome.
type ReplyKind int

const (
	// ReplyAnswer carries display text for the transcript.
	ReplyAnswer ReplyKind = iota
	// ReplyRaiseTicket instructs the caller to open an escalating ticket.
	ReplyRaiseTicket
	// ReplyCheckTicketStatus instructs the caller to run the status lookup sub-flow.
	ReplyCheckTicketStatus
)

// Reply is the tagged result of intent resolution. Control outcomes carry no
// text; the caller owns the rendering.
type Reply struct {
	Kind ReplyKind
	Text string
}

// Answer wraps display text in a Reply.
func Answer(text string) Reply {
	return Reply{Kind: ReplyAnswer, Text: text}
}

var ticketIDPattern = regexp.MustCompile(`(?i)tkt-\d+`)

// TicketIDIn extracts the first TKT-<digits> token from free text.
func TicketIDIn(s string) (string, bool) {
	match := ticketIDPattern.FindString(s)
	if match == "" {
		return "", false
	}
	return strings.ToUpper(match), true
}

// rule pairs trigger keywords with a fixed answer. Within a ladder the first
// rule whose keyword is contained in the utterance wins; declaration order is
// part of the behavioral contract because keyword sets overlap.
type rule struct {
	keywords []string
	answer   string
}

func (r rule) matches(utterance string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(utterance, kw) {
			return true
		}
	}
	return false
}

// Engine resolves utterances against the static rule tables. It is a pure
// function of its inputs and never fails; the error return exists so callers
// can swap in a remote model behind the same contract.
type Engine struct{}

// NewEngine constructs the rule engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Respond maps a normalized utterance to an answer or control signal.
func (e *Engine) Respond(_ context.Context, utterance string, mode Mode) (Reply, error) {
	lower := strings.ToLower(utterance)
	if mode == ModeAssistant {
		return e.assistantReply(lower), nil
	}
	return e.simpleReply(lower), nil
}

func (e *Engine) simpleReply(lower string) Reply {
	for _, entry := range predefinedAnswers {
		if strings.Contains(lower, entry.trigger) {
			return Answer(entry.answer)
		}
	}
	for _, r := range simpleFallbackRules {
		if r.matches(lower) {
			return Answer(r.answer)
		}
	}
	return Answer(simpleDefaultAnswer)
}

func (e *Engine) assistantReply(lower string) Reply {
	if strings.Contains(lower, "ticket") && (strings.Contains(lower, "status") ||
		strings.Contains(lower, "check") ||
		strings.Contains(lower, "tkt-") ||
		ticketIDPattern.MatchString(lower)) {
		return Reply{Kind: ReplyCheckTicketStatus}
	}
	for _, kw := range raiseTicketKeywords {
		if strings.Contains(lower, kw) {
			return Reply{Kind: ReplyRaiseTicket}
		}
	}
	for _, r := range assistantRules {
		if r.matches(lower) {
			return Answer(r.answer)
		}
	}
	return Answer(assistantDefaultAnswer)
}

// FAQ is a suggestion chip shown above the input box.
type FAQ struct {
	Question string `json:"question"`
	Key      string `json:"key"`
}

// Suggest returns up to three FAQ entries matching the partial input.
func (e *Engine) Suggest(input string) []FAQ {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	lower := strings.ToLower(input)
	var matched []FAQ
	for _, faq := range faqs {
		if strings.Contains(strings.ToLower(faq.Question), lower) || strings.Contains(faq.Key, lower) {
			matched = append(matched, faq)
			if len(matched) == 3 {
				break
			}
		}
	}
	return matched
}

// FAQs returns the chips shown on a fresh conversation.
func (e *Engine) FAQs() []FAQ {
	out := make([]FAQ, len(faqs))
	copy(out, faqs)
	return out
}
