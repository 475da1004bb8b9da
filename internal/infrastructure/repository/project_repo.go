package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"startupcopilot/internal/domain"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Stage == "" {
		p.Stage = domain.StageIdea
	}
	if !p.Stage.IsValid() {
		return fmt.Errorf("unknown stage: %q", p.Stage)
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var p domain.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

// GetActiveByUser — последний редактированный проект пользователя.
// Нет проекта — нет ошибки: секции дашборда просто не рендерятся.
func (r *ProjectRepository) GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.Project, error) {
	var p domain.Project
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *ProjectRepository) UpdateStage(ctx context.Context, id uuid.UUID, stage domain.Stage) error {
	if !stage.IsValid() {
		return fmt.Errorf("unknown stage: %q", stage)
	}
	return r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ?", id).
		Update("stage", stage).Error
}

func (r *ProjectRepository) UpdateArtifacts(ctx context.Context, id uuid.UUID, a domain.Artifacts) error {
	return r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ?", id).
		Update("artifacts", datatypes.NewJSONType(a)).Error
}

func (r *ProjectRepository) UpdateBMC(ctx context.Context, id uuid.UUID, bmc domain.BMCData) error {
	for block := range bmc {
		if !block.IsValid() {
			return fmt.Errorf("unknown bmc block: %q", block)
		}
	}
	return r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ?", id).
		Update("bmc", datatypes.NewJSONType(bmc)).Error
}

func (r *ProjectRepository) UpdateVPC(ctx context.Context, id uuid.UUID, vpc domain.VPCData) error {
	for zone := range vpc {
		if !zone.IsValid() {
			return fmt.Errorf("unknown vpc zone: %q", zone)
		}
	}
	return r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ?", id).
		Update("vpc", datatypes.NewJSONType(vpc)).Error
}

func (r *ProjectRepository) UpdateUnitEconomics(ctx context.Context, id uuid.UUID, ue domain.UnitEconomics) error {
	return r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ?", id).
		Update("unit_economics", datatypes.NewJSONType(ue)).Error
}

// UpdateProgress отвергает неизвестные ключи этапов на границе
// персистентности, а не молча игнорирует их.
func (r *ProjectRepository) UpdateProgress(ctx context.Context, id uuid.UUID, progress domain.ProgressData) error {
	if err := progress.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ?", id).
		Update("progress", datatypes.NewJSONType(progress)).Error
}

// SaveScorecard пишет свежий снапшот на сам проект.
func (r *ProjectRepository) SaveScorecard(ctx context.Context, id uuid.UUID, sc domain.Scorecard) error {
	return r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"scorecard": datatypes.NewJSONType(sc),
			"score":     sc.Total,
		}).Error
}

type ScorecardHistoryRepository struct {
	db *gorm.DB
}

func NewScorecardHistoryRepository(db *gorm.DB) *ScorecardHistoryRepository {
	return &ScorecardHistoryRepository{db: db}
}

func (r *ScorecardHistoryRepository) Append(ctx context.Context, projectID uuid.UUID, sc domain.Scorecard, at time.Time) error {
	entry := domain.ScorecardHistory{
		ID:        uuid.New(),
		ProjectID: projectID,
		Scorecard: datatypes.NewJSONType(sc),
		Total:     sc.Total,
		CreatedAt: at,
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *ScorecardHistoryRepository) Latest(ctx context.Context, projectID uuid.UUID) (*domain.ScorecardHistory, error) {
	var entry domain.ScorecardHistory
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at desc").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

// FirstAndLastInWindow — крайние записи истории за окно [from, to).
func (r *ScorecardHistoryRepository) FirstAndLastInWindow(ctx context.Context, projectID uuid.UUID, from, to time.Time) (*domain.ScorecardHistory, *domain.ScorecardHistory, error) {
	var first, last domain.ScorecardHistory

	err := r.db.WithContext(ctx).
		Where("project_id = ? AND created_at >= ? AND created_at < ?", projectID, from, to).
		Order("created_at asc").First(&first).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	err = r.db.WithContext(ctx).
		Where("project_id = ? AND created_at >= ? AND created_at < ?", projectID, from, to).
		Order("created_at desc").First(&last).Error
	if err != nil {
		return nil, nil, err
	}
	return &first, &last, nil
}
