package model

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// DefaultComponentType is assumed when a component is added without a type.
const DefaultComponentType = "species"

// Component is a named element (species, reaction, parameter, ...) of a model.
type Component struct {
	ID         int64          `json:"id" gorm:"primaryKey"`
	ModelID    int64          `json:"model_id" gorm:"index;not null"`
	Name       string         `json:"name" gorm:"size:255;not null"`
	Type       string         `json:"type" gorm:"size:50;not null"`
	Properties datatypes.JSON `json:"properties"`
	CreatedAt  time.Time      `json:"created_at"`

	Model *SBMLModel `json:"-" gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE"`
}

func (c *Component) TableName() string {
	return "components"
}

func GetComponentsByModelID(ctx context.Context, modelID int64) ([]*Component, error) {
	components := make([]*Component, 0)
	err := DB.WithContext(ctx).Where("model_id = ?", modelID).Order("id ASC").Find(&components).Error
	return components, err
}
