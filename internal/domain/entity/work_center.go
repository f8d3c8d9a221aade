package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para WorkCenter.
const (
	WorkCenterStatusActive      = "active"
	WorkCenterStatusInactive    = "inactive"
	WorkCenterStatusMaintenance = "maintenance"
)

// WorkCenter representa un centro de trabajo de planta.
type WorkCenter struct {
	ID            string
	Code          string // único
	Name          string
	Description   string
	HoursPerShift decimal.Decimal
	ShiftsPerDay  int
	Efficiency    decimal.Decimal // 0..1
	HoursPerUnit  decimal.Decimal // horas estándar para producir una unidad en este centro
	Status        string          // active, inactive, maintenance
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TheoreticalDailyCapacity horas efectivas por día: horas por turno × turnos × eficiencia.
func (w *WorkCenter) TheoreticalDailyCapacity() decimal.Decimal {
	return w.HoursPerShift.
		Mul(decimal.NewFromInt(int64(w.ShiftsPerDay))).
		Mul(w.Efficiency)
}

// LoadHours convierte unidades pendientes en horas de trabajo, usando el
// tiempo estándar por unidad del centro.
func (w *WorkCenter) LoadHours(units decimal.Decimal) decimal.Decimal {
	return units.Mul(w.HoursPerUnit)
}
