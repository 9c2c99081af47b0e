package entity

import (
	"strconv"
	"time"
)

type Action string

const (
	ActionSchedule  Action = "schedule"
	ActionRemind    Action = "remind"
	ActionTask      Action = "task"
	ActionDeleteAll Action = "delete_all"
	ActionUnknown   Action = "unknown"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionSchedule, ActionRemind, ActionTask, ActionDeleteAll, ActionUnknown:
		return true
	default:
		return false
	}
}

type Classification string

const (
	ClassificationSchedule  Classification = "schedule"
	ClassificationRemind    Classification = "remind"
	ClassificationTask      Classification = "task"
	ClassificationDangerous Classification = "dangerous"
	ClassificationQuery     Classification = "query"
	ClassificationUnknown   Classification = "unknown"
)

func (c Classification) IsValid() bool {
	switch c {
	case ClassificationSchedule, ClassificationRemind, ClassificationTask,
		ClassificationDangerous, ClassificationQuery, ClassificationUnknown:
		return true
	default:
		return false
	}
}

// Parameter keys shared by the parser, the pipeline and the executor.
const (
	ParamTitle          = "title"
	ParamDate           = "date"
	ParamTime           = "time"
	ParamText           = "text"
	ParamScope          = "scope"
	ParamVerified       = "verified"
	ParamVerificationID = "verification_id"
	ParamRiskScore      = "risk_score"
)

type Parameters map[string]interface{}

func (p Parameters) String(key, fallback string) string {
	if v, ok := p[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func (p Parameters) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

func (p Parameters) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func (p Parameters) Clone() Parameters {
	out := make(Parameters, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Intent is produced once by the parser and only read afterwards; stages that
// need to annotate parameters work on a Clone.
type Intent struct {
	RawInput       string         `json:"raw_input"`
	Classification Classification `json:"type"`
	Action         Action         `json:"action"`
	Parameters     Parameters     `json:"parameters"`
	Timestamp      time.Time      `json:"timestamp"`
}
