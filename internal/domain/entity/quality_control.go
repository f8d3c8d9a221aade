package entity

import "time"

// Estados válidos para QualityControl.
const (
	QCStatusPending = "pending"
	QCStatusPassed  = "passed"
	QCStatusFailed  = "failed"
)

// QualityControl registro de control de calidad sobre una orden de producción.
// Se crea pending y se resuelve (passed/failed) con la acción de inspección.
type QualityControl struct {
	ID                string
	Code              string // único
	ProductionOrderID string
	InspectorID       string // usuario que inspecciona; vacío hasta la inspección
	Status            string // pending, passed, failed
	SampleSize        int
	DefectsFound      int
	Measurements      map[string]any // mediciones libres (jsonb)
	InspectedAt       *time.Time
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Settled indica si el registro ya fue resuelto por una inspección.
func (q *QualityControl) Settled() bool {
	return q.Status != QCStatusPending
}
