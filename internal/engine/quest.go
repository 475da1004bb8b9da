package engine

import "startupcopilot/internal/domain"

// Ключи ежедневных заданий. По ним работает автозачёт: действие,
// выполненное в продукте, закрывает задание с тем же ключом.
const (
	QuestDescribeProblem  = "describe_problem"
	QuestDescribeAudience = "describe_audience"
	QuestRecordCustDev    = "record_custdev"
	QuestFillBMC          = "fill_bmc"
	QuestFillVPC          = "fill_vpc"
	QuestUnitEconomics    = "calc_unit_economics"
	QuestDescribeMVP      = "describe_mvp"
	QuestOutlinePitch     = "outline_pitch"
	QuestCompleteLesson   = "complete_lesson"
)

const (
	stageQuestXP  = 30
	lessonQuestXP = 20
)

// QuestDefinition — что именно предложить пользователю сегодня.
type QuestDefinition struct {
	Key      string
	Label    string
	XPReward int
}

// SelectQuest deterministically picks the next meaningful action for
// the project's current stage. Same project state — same quest, so
// re-generation within a day cannot produce a different task.
func SelectQuest(p *domain.Project) QuestDefinition {
	artifacts := p.Artifacts.Data()
	progress := p.Progress.Data()

	switch p.Stage {
	case domain.StageIdea:
		if !artifacts.Has("problem") {
			return QuestDefinition{QuestDescribeProblem, "Опишите проблему, которую решает ваш стартап", stageQuestXP}
		}
		if !artifacts.Has("target_audience") {
			return QuestDefinition{QuestDescribeAudience, "Опишите целевую аудиторию проекта", stageQuestXP}
		}
	case domain.StageValidation:
		if !artifacts.Has("custdev_results") {
			return QuestDefinition{QuestRecordCustDev, "Запишите выводы из CustDev-интервью", stageQuestXP}
		}
	case domain.StageBusinessModel:
		if p.BMC.Data().FilledBlocks() < len(domain.BMCBlocks) {
			return QuestDefinition{QuestFillBMC, "Заполните ещё один блок Business Model Canvas", stageQuestXP}
		}
		if p.VPC.Data().FilledZones() < len(domain.VPCZones) {
			return QuestDefinition{QuestFillVPC, "Заполните зону Value Proposition Canvas", stageQuestXP}
		}
		if !progress.HasCompletedItem(domain.StageBusinessModel, "unit_economics") {
			return QuestDefinition{QuestUnitEconomics, "Посчитайте юнит-экономику проекта", stageQuestXP}
		}
	case domain.StageMVP:
		if !artifacts.Has("mvp_description") {
			return QuestDefinition{QuestDescribeMVP, "Опишите минимальную версию продукта", stageQuestXP}
		}
	case domain.StagePitch:
		if !artifacts.Has("pitch_structure") {
			return QuestDefinition{QuestOutlinePitch, "Набросайте структуру питча", stageQuestXP}
		}
	}

	return QuestDefinition{QuestCompleteLesson, "Пройдите урок текущего этапа", lessonQuestXP}
}

// QuestBaseline — точка отсчёта для заданий вида "ещё один блок":
// фиксируем заполненность канваса на момент генерации.
func QuestBaseline(questKey string, p *domain.Project) int {
	switch questKey {
	case QuestFillBMC:
		return p.BMC.Data().FilledBlocks()
	case QuestFillVPC:
		return p.VPC.Data().FilledZones()
	default:
		return 0
	}
}

// QuestSatisfied проверяет предикат автозачёта: действие, выполненное
// в продукте, закрывает задание без клика по кнопке "готово".
func QuestSatisfied(questKey string, baseline int, p *domain.Project) bool {
	artifacts := p.Artifacts.Data()
	switch questKey {
	case QuestDescribeProblem:
		return artifacts.Has("problem")
	case QuestDescribeAudience:
		return artifacts.Has("target_audience")
	case QuestRecordCustDev:
		return artifacts.Has("custdev_results")
	case QuestDescribeMVP:
		return artifacts.Has("mvp_description")
	case QuestOutlinePitch:
		return artifacts.Has("pitch_structure")
	case QuestFillBMC:
		return p.BMC.Data().FilledBlocks() > baseline
	case QuestFillVPC:
		return p.VPC.Data().FilledZones() > baseline
	case QuestUnitEconomics:
		return p.Progress.Data().HasCompletedItem(domain.StageBusinessModel, "unit_economics") ||
			p.UnitEconomics.Data().AvgCheck > 0
	default:
		// complete_lesson закрывается явным событием урока.
		return false
	}
}

// QuestActionURL — маршрут фронтенда, куда ведёт кнопка задания.
func QuestActionURL(questKey string) string {
	switch questKey {
	case QuestDescribeProblem, QuestDescribeAudience, QuestRecordCustDev, QuestDescribeMVP, QuestOutlinePitch:
		return "/project/artifacts"
	case QuestFillBMC:
		return "/canvas/bmc"
	case QuestFillVPC:
		return "/canvas/vpc"
	case QuestUnitEconomics:
		return "/calculator"
	default:
		return "/lessons"
	}
}
