package nlp

import (
	"strings"
	"time"
	"unicode"

	"TaaraAgent/internal/entity"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type intentParser struct {
	extractor *ParameterExtractor
}

func NewParser() IIntentParser {
	return &intentParser{
		extractor: NewParameterExtractor(),
	}
}

// Parse resolves text into an Intent. The result depends only on text and now.
func (p *intentParser) Parse(text string, now time.Time) entity.Intent {
	clean := cleanText(text)

	intent := entity.Intent{
		RawInput:       clean,
		Classification: p.Classify(clean),
		Parameters:     entity.Parameters{},
		Timestamp:      now,
	}

	switch {
	case containsAny(clean, dangerousPhrases):
		intent.Action = entity.ActionDeleteAll
		intent.Parameters[entity.ParamScope] = defaultScope

	case containsAny(clean, scheduleKeywords):
		intent.Action = entity.ActionSchedule
		intent.Parameters = p.extractor.ExtractSchedule(clean, now)

	case containsAny(clean, remindKeywords):
		intent.Action = entity.ActionRemind
		intent.Parameters[entity.ParamText] = p.extractor.ExtractText(clean, remindStopWords)

	case containsAny(clean, taskKeywords):
		intent.Action = entity.ActionTask
		intent.Parameters[entity.ParamText] = p.extractor.ExtractText(clean, taskStopWords)

	default:
		intent.Action = entity.ActionUnknown
	}

	return intent
}

func (p *intentParser) Classify(text string) entity.Classification {
	clean := cleanText(text)
	for _, family := range classificationFamilies {
		if containsAny(clean, family.Keywords) {
			return family.Classification
		}
	}
	return entity.ClassificationQuery
}

// cleanText lower-cases, folds diacritics and trims. Punctuation is kept since
// the time pattern needs the colon.
func cleanText(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		result = text
	}

	return strings.TrimSpace(result)
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
