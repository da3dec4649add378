package model

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "sbml-builder/backend/common/errors"

	"gorm.io/gorm"
)

// DefaultModelName is used when a model is created without a name.
const DefaultModelName = "Untitled Model"

// SBMLModel is a stored model record. SBMLData is replaced wholesale on every
// mutation; concurrent writers are last-write-wins.
type SBMLModel struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	SBMLData    Document  `json:"sbml_data" gorm:"column:sbml_data;type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *SBMLModel) TableName() string {
	return "models"
}

// ExportFilename is the download name of the stored document.
func (m *SBMLModel) ExportFilename() string {
	return m.Name + ".sbml"
}

// NormalizeModelName falls back to DefaultModelName for blank names.
func NormalizeModelName(name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultModelName
	}
	return name
}

// GetAllModels returns every model, newest first.
func GetAllModels(ctx context.Context) ([]*SBMLModel, error) {
	models := make([]*SBMLModel, 0)
	err := DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&models).Error
	return models, err
}

func GetModelByID(ctx context.Context, id int64) (*SBMLModel, error) {
	var m SBMLModel
	err := DB.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrModelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func CreateModel(ctx context.Context, m *SBMLModel) error {
	m.Name = NormalizeModelName(m.Name)
	return DB.WithContext(ctx).Create(m).Error
}

// ReplaceDocument overwrites the stored document with doc and bumps
// updated_at. When component is non-nil it is recorded in the same store
// transaction. No merge is attempted: whichever call writes last wins.
func ReplaceDocument(ctx context.Context, id int64, doc Document, component *Component) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&SBMLModel{}).Where("id = ?", id).Updates(map[string]any{
			"sbml_data":  doc,
			"updated_at": time.Now(),
		}).Error
		if err != nil {
			return err
		}
		if component == nil {
			return nil
		}
		component.ModelID = id
		return tx.Create(component).Error
	})
}

// DeleteModel removes the model and, through the schema, its components and
// simulations. Deleting an unknown id is not an error.
func DeleteModel(ctx context.Context, id int64) error {
	return DB.WithContext(ctx).Delete(&SBMLModel{}, id).Error
}
