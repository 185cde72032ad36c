package ai

import (
	"fmt"
	"strings"
)

// systemPrompt frames every generation for the 40-column page medium.
const systemPrompt = "You are the writer behind a teletext-style information service. " +
	"Answer in plain prose with short sentences. Do not use markdown, " +
	"tables or emoji; the output is rendered on a 40-column character grid."

// Modes accepted by the generation endpoint.
const (
	ModeStory    = "story"
	ModePoem     = "poem"
	ModeFact     = "fact"
	ModeQuestion = "question"
	ModeChat     = "chat"
)

var lengthHints = map[string]string{
	"short":  "Keep it under 80 words.",
	"medium": "Aim for roughly 200 words.",
	"long":   "Write 400 words or more.",
}

// BuildPrompt turns a mode plus its parameters into the user prompt sent
// to the model. Unknown modes are a caller error.
func BuildPrompt(mode string, params map[string]string) (string, error) {
	theme := params["theme"]
	hint := lengthHints[params["length"]]

	var b strings.Builder
	switch mode {
	case ModeStory:
		b.WriteString("Tell an original short story")
		if theme != "" {
			fmt.Fprintf(&b, " about %s", theme)
		}
		b.WriteString(".")
	case ModePoem:
		b.WriteString("Write a poem")
		if theme != "" {
			fmt.Fprintf(&b, " about %s", theme)
		}
		b.WriteString(".")
	case ModeFact:
		b.WriteString("Share a surprising true fact")
		if theme != "" {
			fmt.Fprintf(&b, " about %s", theme)
		}
		b.WriteString(" and explain it briefly.")
	case ModeQuestion, ModeChat:
		question := params["question"]
		if question == "" {
			return "", fmt.Errorf("mode %q requires a question parameter", mode)
		}
		b.WriteString(question)
	default:
		return "", fmt.Errorf("unknown generation mode %q", mode)
	}

	if hint != "" {
		b.WriteString(" ")
		b.WriteString(hint)
	}
	return b.String(), nil
}
