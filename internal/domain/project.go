package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Artifacts — свободные текстовые поля проекта ("problem",
// "target_audience", "custdev_results" и т.д.).
type Artifacts map[string]string

// Has reports whether the named artifact is present and non-empty.
func (a Artifacts) Has(key string) bool {
	return strings.TrimSpace(a[key]) != ""
}

// UnitEconomics — числовые вводные юнит-экономики.
type UnitEconomics struct {
	AvgCheck      float64 `json:"avg_check"`
	CAC           float64 `json:"cac"`
	LTV           float64 `json:"ltv"`
	MarginPercent float64 `json:"margin_percent"`
	ChurnRate     float64 `json:"churn_rate"`
}

type Project struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Name   string    `json:"name"`

	Stage Stage `gorm:"type:varchar(32);default:'idea'" json:"stage"`

	Artifacts     datatypes.JSONType[Artifacts]     `json:"artifacts"`
	Progress      datatypes.JSONType[ProgressData]  `json:"progress"`
	BMC           datatypes.JSONType[BMCData]       `json:"bmc"`
	VPC           datatypes.JSONType[VPCData]       `json:"vpc"`
	UnitEconomics datatypes.JSONType[UnitEconomics] `json:"unit_economics"`

	// Последний рассчитанный скоркард (снапшот, пересчитывается).
	Scorecard datatypes.JSONType[Scorecard] `json:"scorecard"`
	Score     int                           `gorm:"default:0" json:"score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScorecardHistory — журнал скоркардов, не чаще одной записи в час.
type ScorecardHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;index"`
	Scorecard datatypes.JSONType[Scorecard]
	Total     int
	CreatedAt time.Time `gorm:"index"`
}
