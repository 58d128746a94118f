package inference

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// GeneratedText extracts the generated article from a generation response.
// Both a list of records and a single record are accepted; the text is read
// from generated_text, then content, and otherwise the record itself is used.
func GeneratedText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	record := trimmed
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return "", malformed(EndpointGeneration, raw, err)
		}
		if len(items) == 0 {
			return "", &Error{Kind: KindEmptyResult, Endpoint: EndpointGeneration, Err: ErrNoContent}
		}
		record = bytes.TrimSpace(items[0])
	}

	text, err := recordText(record)
	if err != nil {
		return "", malformed(EndpointGeneration, raw, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &Error{Kind: KindEmptyResult, Endpoint: EndpointGeneration, Err: ErrNoContent}
	}
	return text, nil
}

func recordText(record json.RawMessage) (string, error) {
	if len(record) == 0 {
		return "", nil
	}
	switch record[0] {
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(record, &fields); err != nil {
			return "", err
		}
		for _, key := range []string{"generated_text", "content"} {
			value, ok := fields[key]
			if !ok {
				continue
			}
			var text string
			if err := json.Unmarshal(value, &text); err != nil {
				return "", fmt.Errorf("field %s is not a string", key)
			}
			return text, nil
		}
	case '"':
		var text string
		if err := json.Unmarshal(record, &text); err != nil {
			return "", err
		}
		return text, nil
	case 'n':
		if string(record) == "null" {
			return "", nil
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, record); err != nil {
		return "", err
	}
	return compact.String(), nil
}

// Sentiment maps a classification response to a Label. The highest scoring
// candidate wins (first on ties); scores under SentimentThreshold are Neutral.
func Sentiment(raw json.RawMessage) (Label, error) {
	candidates, err := labelScores(raw)
	if err != nil {
		return "", malformed(EndpointSentiment, raw, err)
	}
	if len(candidates) == 0 {
		return LabelNeutral, nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return classify(best), nil
}

func classify(best LabelScore) Label {
	if best.Score < SentimentThreshold {
		return LabelNeutral
	}
	switch strings.ToUpper(strings.TrimSpace(best.Label)) {
	case "POSITIVE":
		return LabelPositive
	case "NEGATIVE":
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// labelScores accepts [[{label,score}...]] and [{label,score}...].
func labelScores(raw json.RawMessage) ([]LabelScore, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("expected a list of label scores")
	}
	var outer []json.RawMessage
	if err := json.Unmarshal(trimmed, &outer); err != nil {
		return nil, err
	}
	if len(outer) == 0 {
		return nil, nil
	}
	first := bytes.TrimSpace(outer[0])
	if len(first) > 0 && first[0] == '[' {
		var inner []LabelScore
		if err := json.Unmarshal(first, &inner); err != nil {
			return nil, err
		}
		return inner, nil
	}
	var flat []LabelScore
	if err := json.Unmarshal(trimmed, &flat); err != nil {
		return nil, err
	}
	return flat, nil
}

func malformed(endpoint Endpoint, raw json.RawMessage, err error) error {
	return &Error{Kind: KindMalformedResponse, Endpoint: endpoint, Body: string(raw), Err: err}
}
