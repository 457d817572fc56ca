package domain

// Stage identifies one of the four fractions of a run, in collection order.
type Stage string

const (
	StageHeads     Stage = "heads"
	StageLateHeads Stage = "late_heads"
	StageHearts    Stage = "hearts"
	StageTails     Stage = "tails"
)

// Stages lists every stage in the order the still produces them.
var Stages = []Stage{StageHeads, StageLateHeads, StageHearts, StageTails}

// Label returns the operator-facing name of the stage.
func (s Stage) Label() string {
	switch s {
	case StageHeads:
		return "Heads"
	case StageLateHeads:
		return "Late heads"
	case StageHearts:
		return "Hearts"
	case StageTails:
		return "Tails"
	default:
		return string(s)
	}
}

// ParseStage converts a stage name into a Stage.
func ParseStage(name string) (Stage, bool) {
	for _, s := range Stages {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}
