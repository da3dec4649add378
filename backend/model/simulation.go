package model

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

type SimulationStatus string

const (
	SimulationPending   SimulationStatus = "pending"
	SimulationRunning   SimulationStatus = "running"
	SimulationCompleted SimulationStatus = "completed"
	SimulationFailed    SimulationStatus = "failed"
	SimulationCancelled SimulationStatus = "cancelled"
)

// Terminal reports whether no further transition is expected.
func (s SimulationStatus) Terminal() bool {
	switch s {
	case SimulationCompleted, SimulationFailed, SimulationCancelled:
		return true
	}
	return false
}

// Simulation records one simulation request against a model.
type Simulation struct {
	ID          int64            `json:"id" gorm:"primaryKey"`
	ModelID     int64            `json:"model_id" gorm:"index;not null"`
	Config      datatypes.JSON   `json:"config"`
	Results     datatypes.JSON   `json:"results"`
	Status      SimulationStatus `json:"status" gorm:"size:50;default:pending"`
	CreatedAt   time.Time        `json:"created_at"`
	CompletedAt *time.Time       `json:"completed_at"`

	Model *SBMLModel `json:"-" gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE"`
}

func (s *Simulation) TableName() string {
	return "simulations"
}

// SetStatus moves the record to status, stamping CompletedAt on terminal states.
func (s *Simulation) SetStatus(status SimulationStatus) {
	s.Status = status
	if status.Terminal() {
		now := time.Now()
		s.CompletedAt = &now
	} else {
		s.CompletedAt = nil
	}
}

func CreateSimulation(ctx context.Context, s *Simulation) error {
	if s.Status == "" {
		s.Status = SimulationPending
	}
	return DB.WithContext(ctx).Create(s).Error
}

// GetSimulationsByModelID returns the simulation history of a model, newest first.
func GetSimulationsByModelID(ctx context.Context, modelID int64) ([]*Simulation, error) {
	simulations := make([]*Simulation, 0)
	err := DB.WithContext(ctx).Where("model_id = ?", modelID).Order("created_at DESC").Order("id DESC").Find(&simulations).Error
	return simulations, err
}
