package model

import "time"

type TableShape string

const (
	TableShapeRound     TableShape = "round"
	TableShapeSquare    TableShape = "square"
	TableShapeRectangle TableShape = "rectangle"
)

// Table стол на плане зала
type Table struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Capacity int        `json:"capacity"`
	IsActive bool       `json:"is_active"`
	Shape    TableShape `json:"shape"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Rotation float64    `json:"rotation"` // в градусах
}

// Simple возвращает стол без геометрии
func (t Table) Simple() SimpleTable {
	return SimpleTable{
		ID:       t.ID,
		Name:     t.Name,
		Capacity: t.Capacity,
		IsActive: t.IsActive,
	}
}

type FloorPlanElementType string

const (
	ElementWall       FloorPlanElementType = "wall"
	ElementEntrance   FloorPlanElementType = "entrance"
	ElementBar        FloorPlanElementType = "bar"
	ElementWindow     FloorPlanElementType = "window"
	ElementDecoration FloorPlanElementType = "decoration"
)

// FloorPlanElement элемент плана, который не участвует в бронировании
type FloorPlanElement struct {
	ID       string               `json:"id"`
	Type     FloorPlanElementType `json:"type"`
	Label    string               `json:"label,omitempty"`
	X        float64              `json:"x"`
	Y        float64              `json:"y"`
	Width    float64              `json:"width"`
	Height   float64              `json:"height"`
	Rotation float64              `json:"rotation"`
}

type FloorPlan struct {
	ID           int64              `json:"id"`
	RestaurantID int64              `json:"restaurant_id"`
	Version      int                `json:"version"`
	Name         string             `json:"name"`
	Tables       []Table            `json:"tables"`
	Elements     []FloorPlanElement `json:"elements"`
	IsActive     bool               `json:"is_active"`
	CreatedAt    time.Time          `json:"created_at"`
}

// SimpleTables возвращает столы плана в виде, пригодном для расчёта доступности
func (p *FloorPlan) SimpleTables() []SimpleTable {
	if p == nil {
		return nil
	}
	tables := make([]SimpleTable, 0, len(p.Tables))
	for _, t := range p.Tables {
		tables = append(tables, t.Simple())
	}
	return tables
}
