package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"TaaraAgent/internal/entity"
)

const defaultMeetingTitle = "Meeting"

type ParameterExtractor struct {
	timePattern *regexp.Regexp
}

func NewParameterExtractor() *ParameterExtractor {
	return &ParameterExtractor{
		timePattern: regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`),
	}
}

func (e *ParameterExtractor) ExtractSchedule(text string, now time.Time) entity.Parameters {
	params := entity.Parameters{
		entity.ParamTitle: defaultMeetingTitle,
	}

	if strings.Contains(text, "tomorrow") {
		params[entity.ParamDate] = now.AddDate(0, 0, 1).Format(dateLayout)
	}

	if clock, ok := e.ExtractTime(text); ok {
		params[entity.ParamTime] = clock
	}

	return params
}

// ExtractTime finds the first hour[:minute][am|pm] and renders it as 24h "H:MM".
func (e *ParameterExtractor) ExtractTime(text string) (string, bool) {
	m := e.timePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}

	minute := m[2]
	if minute == "" {
		minute = "00"
	}

	switch m[3] {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	return fmt.Sprintf("%d:%s", hour, minute), true
}

// ExtractText drops stop-word tokens and keeps the rest of the command in order.
// Tokens are compared without surrounding punctuation, so "task:" is a stop word
// while "tomorrow" keeps its "to".
func (e *ParameterExtractor) ExtractText(text string, stopWords map[string]bool) string {
	words := strings.Fields(text)
	kept := make([]string, 0, len(words))

	for _, word := range words {
		bare := strings.TrimFunc(word, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if bare == "" || stopWords[bare] {
			continue
		}
		kept = append(kept, word)
	}

	return strings.TrimSpace(strings.Join(kept, " "))
}
