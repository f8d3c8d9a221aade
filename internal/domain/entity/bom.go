package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para BOM.
const (
	BOMStatusDraft    = "draft"
	BOMStatusActive   = "active"
	BOMStatusObsolete = "obsolete"
)

// BOM lista de materiales de un producto. Los ítems pueden referenciar otra
// BOM (subensamble) vía ChildBOMID, lo que habilita la explosión multinivel.
type BOM struct {
	ID          string
	Code        string // único
	Name        string
	ProductName string
	Version     int
	Status      string // draft, active, obsolete
	Notes       string
	Items       []BOMItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BOMItem componente de una BOM.
type BOMItem struct {
	ID            string
	BOMID         string
	ComponentCode string
	ComponentName string
	Quantity      decimal.Decimal
	Unit          string // "un", "kg", "m", ...
	UnitCost      decimal.Decimal
	ChildBOMID    string // vacío si es componente hoja
}

// Leaf indica si el ítem es un componente hoja (sin sub-BOM).
func (i BOMItem) Leaf() bool {
	return i.ChildBOMID == ""
}
