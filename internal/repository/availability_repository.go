package repository

import (
	"errors"
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/model"

	"gorm.io/gorm"
)

type AvailabilityRepository struct {
	DB *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

func (r *AvailabilityRepository) RulesForProfessor(professorID string) ([]model.AvailabilityRule, error) {
	var rules []model.AvailabilityRule
	err := r.DB.Where("professor_id = ?", professorID).
		Order("weekday ASC, start_time ASC").
		Find(&rules).Error
	return rules, err
}

func (r *AvailabilityRepository) FindRuleByID(id string) (*model.AvailabilityRule, error) {
	var rule model.AvailabilityRule
	err := r.DB.Where("id = ?", id).First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *AvailabilityRepository) CreateRule(rule *model.AvailabilityRule) error {
	return r.DB.Create(rule).Error
}

func (r *AvailabilityRepository) SaveRule(rule *model.AvailabilityRule) error {
	return r.DB.Save(rule).Error
}

func (r *AvailabilityRepository) DeleteRule(id string) error {
	return r.DB.Delete(&model.AvailabilityRule{}, "id = ?", id).Error
}

func (r *AvailabilityRepository) SettingsForProfessor(professorID string) (*model.ProfessorSettings, error) {
	var settings model.ProfessorSettings
	err := r.DB.Where("professor_id = ?", professorID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *AvailabilityRepository) SaveSettings(settings *model.ProfessorSettings) error {
	return r.DB.Save(settings).Error
}

type BlockageRepository struct {
	DB *gorm.DB
}

func NewBlockageRepository(db *gorm.DB) *BlockageRepository {
	return &BlockageRepository{DB: db}
}

// InRange returns company blockages overlapping [from, to).
func (r *BlockageRepository) InRange(companyID string, from, to time.Time) ([]model.Blockage, error) {
	var blockages []model.Blockage
	err := r.DB.Where("company_id = ?", companyID).
		Where("starts_at < ? AND ends_at > ?", to, from).
		Find(&blockages).Error
	return blockages, err
}

func (r *BlockageRepository) ListByCompany(companyID string) ([]model.Blockage, error) {
	var blockages []model.Blockage
	err := r.DB.Where("company_id = ?", companyID).
		Order("starts_at DESC").
		Find(&blockages).Error
	return blockages, err
}

func (r *BlockageRepository) FindByID(id string) (*model.Blockage, error) {
	var blockage model.Blockage
	err := r.DB.Where("id = ?", id).First(&blockage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blockage, nil
}

func (r *BlockageRepository) Create(blockage *model.Blockage) error {
	return r.DB.Create(blockage).Error
}

func (r *BlockageRepository) Save(blockage *model.Blockage) error {
	return r.DB.Save(blockage).Error
}

func (r *BlockageRepository) Delete(id string) error {
	return r.DB.Delete(&model.Blockage{}, "id = ?", id).Error
}
