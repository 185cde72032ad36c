// Package quiz holds the fixed question set and the pure state
// transition applied to quiz sessions.
package quiz

import (
	"errors"
	"fmt"

	"github.com/oguzkopan/teletext-sub000/internal/model/session"
)

var (
	ErrTerminal         = errors.New("quiz already completed")
	ErrChoiceOutOfRange = errors.New("choice out of range")
)

// Seed provides the built-in general-knowledge question set.
func Seed() []session.Question {
	return []session.Question{
		{
			Prompt:  "Which planet has the shortest day?",
			Options: []string{"Mercury", "Jupiter", "Mars", "Venus"},
			Answer:  1,
		},
		{
			Prompt:  "What is the largest ocean on Earth?",
			Options: []string{"Atlantic", "Indian", "Pacific", "Arctic"},
			Answer:  2,
		},
		{
			Prompt:  "In which year did the first teletext service launch?",
			Options: []string{"1968", "1974", "1982", "1990"},
			Answer:  1,
		},
		{
			Prompt:  "How many bits are in a byte?",
			Options: []string{"4", "8", "16", "32"},
			Answer:  1,
		},
		{
			Prompt:  "Which element has the symbol Sn?",
			Options: []string{"Silicon", "Sodium", "Tin", "Silver"},
			Answer:  2,
		},
	}
}

// Answer applies choice to the current question and returns the advanced
// session plus whether the choice was correct. The session is never
// mutated in place.
func Answer(s session.QuizSession, choice int) (session.QuizSession, bool, error) {
	if s.Terminal() {
		return s, false, ErrTerminal
	}
	q := s.Questions[s.CurrentIndex]
	if choice < 0 || choice >= len(q.Options) {
		return s, false, fmt.Errorf("%w: %d", ErrChoiceOutOfRange, choice)
	}

	correct := choice == q.Answer
	s.Answers = append(append([]bool(nil), s.Answers...), correct)
	s.CurrentIndex++
	if correct {
		s.Score++
	}
	return s, correct, nil
}
