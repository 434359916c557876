package chat

import (
	"math/rand/v2"
	"strings"
)

// Reply is the bot's answer to one message.
type Reply struct {
	Intent  Intent `json:"intent"`
	Message string `json:"message"`
}

// Bot answers from the scripted templates.
type Bot struct {
	// Pick returns an index in [0, n). Defaults to the process-wide generator.
	Pick func(n int) int
}

// NewBot constructs a Bot backed by math/rand/v2.
func NewBot() *Bot {
	return &Bot{Pick: rand.IntN}
}

// Respond picks one template of intent uniformly.
func (b *Bot) Respond(intent Intent) string {
	options := Templates(intent)
	pick := b.Pick
	if pick == nil {
		pick = rand.IntN
	}
	return options[pick(len(options))]
}

// Reply classifies text and answers it.
func (b *Bot) Reply(text string) Reply {
	intent := Classify(strings.TrimSpace(text))
	return Reply{Intent: intent, Message: b.Respond(intent)}
}
