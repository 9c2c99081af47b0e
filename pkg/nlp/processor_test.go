package nlp

import (
	"testing"
	"time"

	"TaaraAgent/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan1 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func TestParseSchedule(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name   string
		text   string
		params entity.Parameters
	}{
		{
			name: "tomorrow afternoon",
			text: "Schedule a meeting tomorrow at 2pm",
			params: entity.Parameters{
				entity.ParamTitle: "Meeting",
				entity.ParamDate:  "2024-01-02",
				entity.ParamTime:  "14:00",
			},
		},
		{
			name: "minutes and spaced meridiem",
			text: "meeting at 3:30 pm",
			params: entity.Parameters{
				entity.ParamTitle: "Meeting",
				entity.ParamTime:  "15:30",
			},
		},
		{
			name: "midnight",
			text: "schedule sync at 12am",
			params: entity.Parameters{
				entity.ParamTitle: "Meeting",
				entity.ParamTime:  "0:00",
			},
		},
		{
			name: "noon stays noon",
			text: "schedule lunch 12pm",
			params: entity.Parameters{
				entity.ParamTitle: "Meeting",
				entity.ParamTime:  "12:00",
			},
		},
		{
			name: "24h clock without meridiem",
			text: "schedule review at 9:05",
			params: entity.Parameters{
				entity.ParamTitle: "Meeting",
				entity.ParamTime:  "9:05",
			},
		},
		{
			name:   "no time",
			text:   "  SCHEDULE something  ",
			params: entity.Parameters{entity.ParamTitle: "Meeting"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := p.Parse(tt.text, jan1)
			assert.Equal(t, entity.ActionSchedule, intent.Action)
			assert.Equal(t, tt.params, intent.Parameters)
			assert.Equal(t, entity.ClassificationSchedule, intent.Classification)
		})
	}
}

func TestParseDangerousWinsOverSchedule(t *testing.T) {
	intent := NewParser().Parse("Delete everything from my calendar", jan1)
	assert.Equal(t, entity.ActionDeleteAll, intent.Action)
	assert.Equal(t, entity.Parameters{entity.ParamScope: "all"}, intent.Parameters)
	assert.Equal(t, entity.ClassificationDangerous, intent.Classification)

	intent = NewParser().Parse("clear all meetings", jan1)
	assert.Equal(t, entity.ActionDeleteAll, intent.Action)
	// the classifier sees "meeting" first; only the action is dangerous
	assert.Equal(t, entity.ClassificationSchedule, intent.Classification)
}

func TestParseRemind(t *testing.T) {
	intent := NewParser().Parse("Remind me to call John tomorrow", jan1)
	assert.Equal(t, entity.ActionRemind, intent.Action)
	assert.Equal(t, "call john tomorrow", intent.Parameters[entity.ParamText])
	assert.Equal(t, entity.ClassificationRemind, intent.Classification)
}

func TestParseTask(t *testing.T) {
	tests := map[string]string{
		"Add task: Buy groceries":  "buy groceries",
		"todo water the plants":    "water the plants",
		"add a task to review PRs": "a to review prs",
	}
	for text, want := range tests {
		intent := NewParser().Parse(text, jan1)
		assert.Equal(t, entity.ActionTask, intent.Action, text)
		assert.Equal(t, want, intent.Parameters[entity.ParamText], text)
	}
}

func TestParseUnknownClassifiesAsQuery(t *testing.T) {
	intent := NewParser().Parse("what is the weather", jan1)
	assert.Equal(t, entity.ActionUnknown, intent.Action)
	assert.Empty(t, intent.Parameters)
	assert.Equal(t, entity.ClassificationQuery, intent.Classification)

	intent = NewParser().Parse("please remove my notes", jan1)
	assert.Equal(t, entity.ActionUnknown, intent.Action)
	assert.Equal(t, entity.ClassificationDangerous, intent.Classification)
}

func TestParseNormalizesInput(t *testing.T) {
	intent := NewParser().Parse("  Remínd ME to Pay Rent \n", jan1)
	assert.Equal(t, "remind me to pay rent", intent.RawInput)
	assert.Equal(t, "pay rent", intent.Parameters[entity.ParamText])
	assert.Equal(t, jan1, intent.Timestamp)
}

func TestParseIsIdempotent(t *testing.T) {
	p := NewParser()
	texts := []string{
		"Schedule a meeting tomorrow at 2pm",
		"remind me to stretch",
		"add todo laundry",
		"clear all",
		"hello",
	}
	for _, text := range texts {
		a := p.Parse(text, jan1)
		b := p.Parse(text, jan1)
		require.Equal(t, a.Action, b.Action, text)
		require.Equal(t, a.Parameters, b.Parameters, text)
		require.Equal(t, a.Classification, b.Classification, text)
	}
}

func TestExtractTimeNoMatch(t *testing.T) {
	_, ok := NewParameterExtractor().ExtractTime("schedule standup")
	assert.False(t, ok)
}
