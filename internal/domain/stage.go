package domain

import "fmt"

// Stage — этап развития стартапа. Порядок фиксирован.
type Stage string

const (
	StageIdea          Stage = "idea"
	StageValidation    Stage = "validation"
	StageBusinessModel Stage = "business_model"
	StageMVP           Stage = "mvp"
	StagePitch         Stage = "pitch"
)

// StageOrder is the canonical progression, from first to last.
var StageOrder = []Stage{
	StageIdea,
	StageValidation,
	StageBusinessModel,
	StageMVP,
	StagePitch,
}

func (s Stage) IsValid() bool {
	switch s {
	case StageIdea, StageValidation, StageBusinessModel, StageMVP, StagePitch:
		return true
	default:
		return false
	}
}

type StageStatus string

const (
	StageNotStarted StageStatus = "not_started"
	StageInProgress StageStatus = "in_progress"
	StageCompleted  StageStatus = "completed"
)

func (s StageStatus) IsValid() bool {
	switch s {
	case StageNotStarted, StageInProgress, StageCompleted:
		return true
	default:
		return false
	}
}

// StageProgress — состояние чек-листа одного этапа.
type StageProgress struct {
	Status         StageStatus `json:"status"`
	CompletedItems []string    `json:"completed_items"`
}

// ProgressData keys are restricted to the five canonical stages.
type ProgressData map[Stage]StageProgress

// Validate rejects unknown stage keys and statuses instead of
// silently ignoring them.
func (p ProgressData) Validate() error {
	for stage, sp := range p {
		if !stage.IsValid() {
			return fmt.Errorf("unknown stage key: %q", stage)
		}
		if sp.Status != "" && !sp.Status.IsValid() {
			return fmt.Errorf("unknown stage status: %q", sp.Status)
		}
	}
	return nil
}

// HasCompletedItem reports whether the checklist item is done for the stage.
func (p ProgressData) HasCompletedItem(stage Stage, item string) bool {
	sp, ok := p[stage]
	if !ok {
		return false
	}
	for _, it := range sp.CompletedItems {
		if it == item {
			return true
		}
	}
	return false
}
