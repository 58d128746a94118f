// Package readability scores text with a few word and sentence length rules.
package readability

import (
	"strings"
	"unicode/utf8"
)

// Level is the readability bucket reported to users.
type Level string

const (
	LevelEasy      Level = "Easy to read"
	LevelModerate  Level = "Moderate difficulty"
	LevelDifficult Level = "Difficult to read"
)

const (
	maxScore     = 10
	minScore     = 1
	longWordRune = 8
)


// Result holds the score and the measurements it was derived from.
type Result struct {
	Score             int
	Level             Level
	Words             int
	Sentences         int
	AvgWordLength     float64
	AvgSentenceLength float64
	LongWords         int
}

// Estimate scores text from 1 (hard) to 10 (easy).
// Words are whitespace separated and sentences are split on '.', so a
// trailing period yields an extra empty sentence. Text without words has
// zero averages and scores 10.
func Estimate(text string) Result {
	words := strings.Fields(text)
	sentences := len(strings.Split(text, "."))

	var letters, long int
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		letters += n
		if n > longWordRune {
			long++
		}
	}

	r := Result{
		Words:             len(words),
		Sentences:         sentences,
		AvgSentenceLength: float64(len(words)) / float64(sentences),
		LongWords:         long,
	}
	if len(words) > 0 {
		r.AvgWordLength = float64(letters) / float64(len(words))
	}

	score := maxScore
	switch {
	case r.AvgWordLength > 6:
		score -= 2
	case r.AvgWordLength > 5:
		score -= 1
	}
	switch {
	case r.AvgSentenceLength > 20:
		score -= 2
	case r.AvgSentenceLength > 15:
		score -= 1
	}
	total := float64(len(words))
	switch {
	case float64(long) > total*0.2:
		score -= 2
	case float64(long) > total*0.1:
		score -= 1
	}
	r.Score = max(minScore, min(maxScore, score))
	r.Level = levelFor(r.Score)
	return r
}

func levelFor(score int) Level {
	switch {
	case score >= 8:
		return LevelEasy
	case score >= 5:
		return LevelModerate
	default:
		return LevelDifficult
	}
}
