package engine

import (
	"fmt"
	"math"

	"startupcopilot/internal/domain"
)

// FallbackLevels — зашитая таблица на случай недоступной конфигурации.
// Резолвер уровней не должен падать никогда.
func FallbackLevels() []domain.LevelDefinition {
	return []domain.LevelDefinition{
		{Level: 1, Title: "Dreamer", MinXP: 0, Icon: "🌱"},
		{Level: 2, Title: "Explorer", MinXP: 100, Icon: "🧭"},
		{Level: 3, Title: "Builder", MinXP: 500, Icon: "🔨"},
		{Level: 4, Title: "Launcher", MinXP: 1500, Icon: "🚀"},
		{Level: 5, Title: "Founder", MinXP: 5000, Icon: "👑"},
	}
}

// ValidateLevelDefs проверяет инварианты конфигурации: непустой список,
// строго возрастающие level и min_xp, первый уровень = 1 с 0 XP.
func ValidateLevelDefs(defs []domain.LevelDefinition) error {
	if len(defs) == 0 {
		return ErrNoLevelDefinitions
	}
	if defs[0].Level != 1 || defs[0].MinXP != 0 {
		return fmt.Errorf("first level must be 1 with min_xp 0, got level=%d min_xp=%d", defs[0].Level, defs[0].MinXP)
	}
	for i := 1; i < len(defs); i++ {
		if defs[i].MinXP <= defs[i-1].MinXP || defs[i].Level <= defs[i-1].Level {
			return fmt.Errorf("level definitions must be strictly increasing at index %d", i)
		}
	}
	return nil
}

type LevelInfo struct {
	Level             int    `json:"level"`
	Title             string `json:"title"`
	Icon              string `json:"icon"`
	XPIntoLevel       int    `json:"xp_into_level"`
	XPRequiredForNext int    `json:"xp_required_for_next"`
	ProgressPercent   int    `json:"progress_percent"`
	// NextLevelXP == nil на максимальном уровне.
	NextLevelXP *int `json:"next_level_xp"`
}

// ResolveLevel picks the highest definition with MinXP <= xp.
// defs must be sorted ascending by MinXP; an empty list falls back to
// the built-in table. Negative XP is clamped, not rejected.
func ResolveLevel(defs []domain.LevelDefinition, xp int) LevelInfo {
	if len(defs) == 0 {
		defs = FallbackLevels()
	}
	if xp < 0 {
		xp = 0
	}

	idx := 0
	for i, d := range defs {
		if d.MinXP <= xp {
			idx = i
		}
	}
	cur := defs[idx]

	info := LevelInfo{
		Level:           cur.Level,
		Title:           cur.Title,
		Icon:            cur.Icon,
		XPIntoLevel:     xp - cur.MinXP,
		ProgressPercent: 100,
	}
	if idx+1 < len(defs) {
		next := defs[idx+1]
		info.XPRequiredForNext = next.MinXP - cur.MinXP
		info.NextLevelXP = &next.MinXP
		pct := int(math.Round(float64(info.XPIntoLevel) / float64(info.XPRequiredForNext) * 100))
		if pct > 100 {
			pct = 100
		}
		info.ProgressPercent = pct
	}
	return info
}

type LevelUp struct {
	LeveledUp bool
	NewLevel  *domain.LevelDefinition
}

// CheckLevelUp detects a threshold strictly above oldXP and at or below
// newXP. When one award crosses several boundaries, the *lowest* crossed
// level is reported; callers that need the final state use ResolveLevel.
func CheckLevelUp(defs []domain.LevelDefinition, oldXP, newXP int) LevelUp {
	if len(defs) == 0 {
		defs = FallbackLevels()
	}
	for _, d := range defs {
		if d.MinXP > oldXP && d.MinXP <= newXP {
			crossed := d
			return LevelUp{LeveledUp: true, NewLevel: &crossed}
		}
	}
	return LevelUp{}
}
