package engine

import (
	"math"

	"startupcopilot/internal/domain"
)

// Ключи критериев скоркарда. Клиенты хранят их, не переименовывать.
const (
	CriterionProblem       = "problem_clarity"
	CriterionAudience      = "target_audience"
	CriterionValidation    = "idea_validation"
	CriterionMarket        = "market_size"
	CriterionCustDev       = "custdev"
	CriterionBMC           = "bmc"
	CriterionVPC           = "vpc"
	CriterionUnitEconomics = "unit_economics"
	CriterionMVP           = "mvp_definition"
	CriterionPitch         = "pitch"
)

// Пункт чек-листа этапа даёт фиксированный вклад в критерий этапа,
// завершённый этап — бонус сверху.
const (
	stageItemPoints    = 15
	stageItemCap       = 60
	stageCompleteBonus = 20
)

type criterionRule struct {
	key    string
	label  string
	weight float64
	score  func(in scoreInput) int
}

type scoreInput struct {
	artifacts domain.Artifacts
	progress  domain.ProgressData
	bmc       domain.BMCData
	vpc       domain.VPCData
}

// Веса отражают значимость критерия для готовности стартапа:
// CustDev, проблема и аудитория — опережающие индикаторы, рынок,
// VPC и питч важны позже.
var criterionRules = []criterionRule{
	{CriterionProblem, "Чёткость проблемы", 1.2, scoreProblem},
	{CriterionAudience, "Целевая аудитория", 1.2, scoreAudience},
	{CriterionValidation, "Проверка идеи", 1.1, scoreValidation},
	{CriterionMarket, "Размер рынка", 0.8, scoreMarket},
	{CriterionCustDev, "CustDev", 1.3, scoreCustDev},
	{CriterionBMC, "Business Model Canvas", 1.0, scoreBMC},
	{CriterionVPC, "Value Proposition Canvas", 0.8, scoreVPC},
	{CriterionUnitEconomics, "Юнит-экономика", 1.0, scoreUnitEconomics},
	{CriterionMVP, "Определение MVP", 1.0, scoreMVP},
	{CriterionPitch, "Питч", 0.8, scorePitch},
}

// ComputeScorecard — чистая функция: считает 10 критериев и
// взвешенный итог 0-100 по текущему состоянию проекта.
func ComputeScorecard(artifacts domain.Artifacts, progress domain.ProgressData, bmc domain.BMCData, vpc domain.VPCData) domain.Scorecard {
	in := scoreInput{artifacts: artifacts, progress: progress, bmc: bmc, vpc: vpc}

	criteria := make([]domain.CriterionScore, 0, len(criterionRules))
	var weighted, weightSum float64
	for _, rule := range criterionRules {
		score := clampScore(rule.score(in))
		criteria = append(criteria, domain.CriterionScore{
			Key:    rule.key,
			Label:  rule.label,
			Score:  score,
			Weight: rule.weight,
		})
		weighted += float64(score) * rule.weight
		weightSum += rule.weight
	}

	return domain.Scorecard{
		Criteria: criteria,
		Total:    clampScore(int(math.Round(weighted / weightSum))),
	}
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// --- критерии по наличию артефактов ---

func scoreProblem(in scoreInput) int {
	return presencePoints(in.artifacts, "problem", "hypothesis", "competitors")
}

func scoreAudience(in scoreInput) int {
	return presencePoints(in.artifacts, "target_audience", "segments", "early_adopters")
}

func scoreMarket(in scoreInput) int {
	return presencePoints(in.artifacts, "market_size", "tam_sam_som", "competitors")
}

// presencePoints: 50/30/20 за наличие трёх именованных полей.
func presencePoints(a domain.Artifacts, first, second, third string) int {
	score := 0
	if a.Has(first) {
		score += 50
	}
	if a.Has(second) {
		score += 30
	}
	if a.Has(third) {
		score += 20
	}
	return score
}

// --- критерии по прогрессу этапов ---

func scoreValidation(in scoreInput) int {
	score := stageItemScore(in.progress, domain.StageValidation)
	if in.artifacts.Has("custdev_results") {
		score += 20
	}
	score += completedBonus(in.progress, domain.StageValidation)
	return score
}

func scoreCustDev(in scoreInput) int {
	score := 0
	if in.artifacts.Has("custdev_results") {
		score += 50
	}
	if in.artifacts.Has("interview_script") {
		score += 30
	}
	score += completedBonus(in.progress, domain.StageValidation)
	return score
}

func scoreUnitEconomics(in scoreInput) int {
	score := 0
	if in.progress.HasCompletedItem(domain.StageBusinessModel, "unit_economics") {
		score += 40
	}
	if in.artifacts.Has("revenue_model") {
		score += 40
	}
	score += completedBonus(in.progress, domain.StageBusinessModel)
	return score
}

func scoreMVP(in scoreInput) int {
	score := stageItemScore(in.progress, domain.StageMVP)
	if in.artifacts.Has("mvp_description") {
		score += 20
	}
	score += completedBonus(in.progress, domain.StageMVP)
	return score
}

func scorePitch(in scoreInput) int {
	score := stageItemScore(in.progress, domain.StagePitch)
	if in.artifacts.Has("pitch_structure") {
		score += 20
	}
	score += completedBonus(in.progress, domain.StagePitch)
	return score
}

func stageItemScore(p domain.ProgressData, stage domain.Stage) int {
	score := len(p[stage].CompletedItems) * stageItemPoints
	if score > stageItemCap {
		score = stageItemCap
	}
	return score
}

func completedBonus(p domain.ProgressData, stage domain.Stage) int {
	if p[stage].Status == domain.StageCompleted {
		return stageCompleteBonus
	}
	return 0
}

// --- критерии заполненности канвасов ---

func scoreBMC(in scoreInput) int {
	return int(math.Round(float64(in.bmc.FilledBlocks()) / float64(len(domain.BMCBlocks)) * 100))
}

func scoreVPC(in scoreInput) int {
	return int(math.Round(float64(in.vpc.FilledZones()) / float64(len(domain.VPCZones)) * 100))
}
