package nlp

import (
	"time"

	"TaaraAgent/internal/entity"
)

type IIntentParser interface {
	Parse(text string, now time.Time) entity.Intent
	Classify(text string) entity.Classification
}

// keywordFamily maps a classification to the substrings that select it.
type keywordFamily struct {
	Classification entity.Classification
	Keywords       []string
}

var (
	dangerousPhrases = []string{"delete everything", "clear all"}
	scheduleKeywords = []string{"schedule", "meeting"}
	remindKeywords   = []string{"remind"}
	taskKeywords     = []string{"task", "todo"}

	// classification order differs from action order: it only labels the
	// text for the risk check and never selects an action.
	classificationFamilies = []keywordFamily{
		{entity.ClassificationSchedule, []string{"schedule", "meeting", "appointment"}},
		{entity.ClassificationRemind, []string{"remind"}},
		{entity.ClassificationTask, []string{"task", "todo"}},
		{entity.ClassificationDangerous, []string{"delete", "remove", "clear"}},
	}

	remindStopWords = map[string]bool{"remind": true, "me": true, "to": true}
	taskStopWords   = map[string]bool{"task": true, "todo": true, "add": true}
)

const (
	defaultScope = "all"
	dateLayout   = "2006-01-02"
)
