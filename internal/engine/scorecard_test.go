package engine

import (
	"testing"

	"startupcopilot/internal/domain"
)

func note(text string) domain.StickyNote {
	return domain.StickyNote{ID: "n", Text: text}
}

func fullBMC() domain.BMCData {
	bmc := domain.BMCData{}
	for _, block := range domain.BMCBlocks {
		bmc[block] = []domain.StickyNote{note("x")}
	}
	return bmc
}

func criterionScore(t *testing.T, sc domain.Scorecard, key string) int {
	t.Helper()
	for _, c := range sc.Criteria {
		if c.Key == key {
			return c.Score
		}
	}
	t.Fatalf("criterion %q not found", key)
	return 0
}

func TestComputeScorecardEmptyProject(t *testing.T) {
	sc := ComputeScorecard(nil, nil, nil, nil)
	if sc.Total != 0 {
		t.Fatalf("empty project total=%d, want 0", sc.Total)
	}
	if len(sc.Criteria) != 10 {
		t.Fatalf("criteria count=%d, want 10", len(sc.Criteria))
	}
	for _, c := range sc.Criteria {
		if c.Score != 0 {
			t.Fatalf("criterion %s=%d, want 0", c.Key, c.Score)
		}
	}
}

func TestScoresStayInRange(t *testing.T) {
	artifacts := domain.Artifacts{
		"problem": "p", "hypothesis": "h", "competitors": "c",
		"target_audience": "t", "segments": "s", "early_adopters": "e",
		"market_size": "m", "tam_sam_som": "t",
		"custdev_results": "r", "interview_script": "i",
		"revenue_model": "rm", "mvp_description": "mvp", "pitch_structure": "ps",
	}
	progress := domain.ProgressData{}
	for _, stage := range domain.StageOrder {
		progress[stage] = domain.StageProgress{
			Status:         domain.StageCompleted,
			CompletedItems: []string{"a", "b", "c", "d", "e", "f", "g", "unit_economics"},
		}
	}
	sc := ComputeScorecard(artifacts, progress, fullBMC(), domain.VPCData{
		domain.VPCPains: []domain.StickyNote{note("x")},
	})
	for _, c := range sc.Criteria {
		if c.Score < 0 || c.Score > 100 {
			t.Fatalf("criterion %s=%d out of [0,100]", c.Key, c.Score)
		}
	}
	if sc.Total < 0 || sc.Total > 100 {
		t.Fatalf("total=%d out of [0,100]", sc.Total)
	}
}

func TestPresenceCriterionIncrements(t *testing.T) {
	sc := ComputeScorecard(domain.Artifacts{"problem": "есть"}, nil, nil, nil)
	if got := criterionScore(t, sc, CriterionProblem); got != 50 {
		t.Fatalf("problem with one field=%d, want 50", got)
	}

	sc = ComputeScorecard(domain.Artifacts{"problem": "p", "hypothesis": "h", "competitors": "c"}, nil, nil, nil)
	if got := criterionScore(t, sc, CriterionProblem); got != 100 {
		t.Fatalf("problem with all fields=%d, want 100", got)
	}

	// Пробелы — не данные.
	sc = ComputeScorecard(domain.Artifacts{"problem": "   "}, nil, nil, nil)
	if got := criterionScore(t, sc, CriterionProblem); got != 0 {
		t.Fatalf("whitespace-only artifact scored %d, want 0", got)
	}
}

func TestCanvasFillMonotonic(t *testing.T) {
	bmc := domain.BMCData{}
	prev := 0
	for i, block := range domain.BMCBlocks {
		bmc[block] = []domain.StickyNote{note("idea")}
		sc := ComputeScorecard(nil, nil, bmc, nil)
		got := criterionScore(t, sc, CriterionBMC)
		if got <= prev {
			t.Fatalf("bmc score after %d blocks=%d, not above previous %d", i+1, got, prev)
		}
		prev = got
	}
	if prev != 100 {
		t.Fatalf("bmc score with 9/9 blocks=%d, want 100", prev)
	}
}

// Сценарий из продуктовой проверки: business_model, BMC 9/9, VPC 0/6,
// чек-лист [fill_bmc, unit_economics], артефактов нет.
func TestBusinessModelScenario(t *testing.T) {
	progress := domain.ProgressData{
		domain.StageBusinessModel: {
			Status:         domain.StageInProgress,
			CompletedItems: []string{"fill_bmc", "unit_economics"},
		},
	}
	sc := ComputeScorecard(nil, progress, fullBMC(), domain.VPCData{})

	if got := criterionScore(t, sc, CriterionBMC); got != 100 {
		t.Fatalf("bmc=%d, want 100", got)
	}
	if got := criterionScore(t, sc, CriterionVPC); got != 0 {
		t.Fatalf("vpc=%d, want 0", got)
	}
	if got := criterionScore(t, sc, CriterionUnitEconomics); got != 40 {
		t.Fatalf("unit_economics=%d, want 40", got)
	}
	// (100*1.0 + 40*1.0) / 10.2 = 13.7 -> 14
	if sc.Total != 14 {
		t.Fatalf("total=%d, want 14", sc.Total)
	}
}

func TestStageCompletedBonus(t *testing.T) {
	progress := domain.ProgressData{
		domain.StageBusinessModel: {
			Status:         domain.StageCompleted,
			CompletedItems: []string{"unit_economics"},
		},
	}
	sc := ComputeScorecard(domain.Artifacts{"revenue_model": "подписка"}, progress, nil, nil)
	if got := criterionScore(t, sc, CriterionUnitEconomics); got != 100 {
		t.Fatalf("unit_economics=%d, want 100 (40 item + 40 artifact + 20 bonus)", got)
	}
}
