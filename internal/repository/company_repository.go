package repository

import (
	"errors"

	"github.com/SinesysTech/aluminify-sub018/internal/model"

	"gorm.io/gorm"
)

type CompanyRepository struct {
	DB *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) FindByID(id string) (*model.Company, error) {
	var company model.Company
	err := r.DB.Where("id = ?", id).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) FindBySlug(slug string) (*model.Company, error) {
	var company model.Company
	err := r.DB.Where("slug = ?", slug).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) Save(company *model.Company) error {
	return r.DB.Save(company).Error
}
