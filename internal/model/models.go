package model

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
)

// Entity is implemented by pointers to every stored record type.
type Entity interface {
	Meta() *Base
	EntityName() string
	TableName() string
}

// Base carries the identity and bookkeeping columns shared by all entities
type Base struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta exposes the shared columns to generic storage code
func (b *Base) Meta() *Base {
	return b
}

// Touch stamps the record. CreatedAt is only set once.
func (b *Base) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// Field represents a cultivated plot of land
type Field struct {
	Base

	Name            string      `gorm:"not null;size:255" json:"name"`
	Size            float64     `gorm:"type:decimal(10,2)" json:"size"` // hectares
	Location        string      `gorm:"size:255" json:"location"`
	SoilType        string      `gorm:"size:100" json:"soilType"`
	CurrentCrop     string      `gorm:"size:100;index" json:"currentCrop"`
	Status          FieldStatus `gorm:"size:20" json:"status"`
	PlantingDate    Date        `json:"plantingDate"`
	ExpectedHarvest Date        `json:"expectedHarvest"`
	Coordinates     orb.Point   `gorm:"serializer:json" json:"coordinates"` // lon, lat
}

// EntityName returns the display name used in error messages
func (Field) EntityName() string { return "Field" }

// TableName specifies the table name for Field
func (Field) TableName() string {
	return "fields"
}

// Crop represents a planting tracked against a field
type Crop struct {
	Base

	Name            string  `gorm:"not null;size:100" json:"name"`
	Variety         string  `gorm:"size:100" json:"variety"`
	FieldID         string  `gorm:"size:64;index" json:"fieldId"`
	PlantingDate    Date    `json:"plantingDate"`
	ExpectedHarvest Date    `json:"expectedHarvest"`
	Status          string  `gorm:"size:50" json:"status"`
	ExpectedYield   float64 `gorm:"type:decimal(12,2)" json:"expectedYield"`
	YieldUnit       string  `gorm:"size:30" json:"yieldUnit"`
	Notes           string  `gorm:"type:text" json:"notes"`
}

func (Crop) EntityName() string { return "Crop" }

// TableName specifies the table name for Crop
func (Crop) TableName() string {
	return "crops"
}

// Task represents a unit of farm work
type Task struct {
	Base

	Title       string       `gorm:"not null;size:255" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Type        TaskType     `gorm:"size:30" json:"type"`
	Priority    TaskPriority `gorm:"size:20" json:"priority"`
	Status      TaskStatus   `gorm:"size:20;index" json:"status"`
	AssignedTo  string       `gorm:"size:255" json:"assignedTo"`
	DueDate     Date         `json:"dueDate"`
	FieldID     string       `gorm:"size:64;index" json:"fieldId"`
}

func (Task) EntityName() string { return "Task" }

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// Resource represents an inventory item such as seed, fertilizer or fuel
type Resource struct {
	Base

	Name         string          `gorm:"not null;size:255" json:"name"`
	Type         string          `gorm:"size:100" json:"type"`
	Quantity     float64         `gorm:"type:decimal(12,2)" json:"quantity"`
	Unit         string          `gorm:"size:30" json:"unit"`
	MinimumStock float64         `gorm:"type:decimal(12,2)" json:"minimumStock"`
	Location     string          `gorm:"size:255" json:"location"`
	Supplier     string          `gorm:"size:255" json:"supplier"`
	Cost         decimal.Decimal `gorm:"type:decimal(12,2)" json:"cost"`
}

func (Resource) EntityName() string { return "Resource" }

// TableName specifies the table name for Resource
func (Resource) TableName() string {
	return "resources"
}

// Equipment represents a machine or implement owned by the farm
type Equipment struct {
	Base

	Name                string          `gorm:"not null;size:255" json:"name"`
	Type                string          `gorm:"size:100" json:"type"`
	Model               string          `gorm:"size:100" json:"model"`
	Manufacturer        string          `gorm:"size:100" json:"manufacturer"`
	SerialNumber        string          `gorm:"size:100" json:"serialNumber"`
	PurchaseDate        Date            `json:"purchaseDate"`
	PurchasePrice       decimal.Decimal `gorm:"type:decimal(12,2)" json:"purchasePrice"`
	CurrentValue        decimal.Decimal `gorm:"type:decimal(12,2)" json:"currentValue"`
	Condition           string          `gorm:"size:50" json:"condition"`
	Location            string          `gorm:"size:255" json:"location"`
	OperatingHours      float64         `json:"operatingHours"`
	FuelType            string          `gorm:"size:50" json:"fuelType"`
	MaintenanceInterval int             `json:"maintenanceInterval"` // days
	LastMaintenanceDate Date            `json:"lastMaintenanceDate"`
	NextMaintenanceDate Date            `gorm:"index" json:"nextMaintenanceDate"`
	Status              string          `gorm:"size:30" json:"status"`
	Notes               string          `gorm:"type:text" json:"notes"`
}

func (Equipment) EntityName() string { return "Equipment" }

// TableName specifies the table name for Equipment
func (Equipment) TableName() string {
	return "equipment"
}

// MaintenanceRecord represents a service event for a piece of equipment
type MaintenanceRecord struct {
	Base

	EquipmentID     string          `gorm:"not null;size:64;index" json:"equipmentId"`
	Type            MaintenanceType `gorm:"size:30" json:"type"`
	Description     string          `gorm:"type:text" json:"description"`
	Date            Date            `gorm:"index" json:"date"`
	Cost            decimal.Decimal `gorm:"type:decimal(12,2)" json:"cost"`
	Technician      string          `gorm:"size:255" json:"technician"`
	Vendor          string          `gorm:"size:255" json:"vendor"`
	PartsUsed       []string        `gorm:"serializer:json" json:"partsUsed"`
	LaborHours      float64         `json:"laborHours"`
	NextServiceDate Date            `json:"nextServiceDate"`
	Status          string          `gorm:"size:30" json:"status"`
	Notes           string          `gorm:"type:text" json:"notes"`
}

func (MaintenanceRecord) EntityName() string { return "Maintenance record" }

// TableName specifies the table name for MaintenanceRecord
func (MaintenanceRecord) TableName() string {
	return "maintenance_records"
}

// Expense represents money spent on farm operations
type Expense struct {
	Base

	Description string          `gorm:"size:255" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category    ExpenseCategory `gorm:"size:30;index" json:"category"`
	FieldID     string          `gorm:"size:64;index" json:"fieldId"`
	Date        Date            `gorm:"index" json:"date"`
	CropType    string          `gorm:"size:100" json:"cropType"`
}

func (Expense) EntityName() string { return "Expense" }

// TableName specifies the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

// Budget represents a spending limit for one category on one field
type Budget struct {
	Base

	Category     ExpenseCategory `gorm:"size:30" json:"category"`
	FieldID      string          `gorm:"size:64;index" json:"fieldId"`
	BudgetAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"budgetAmount"`
	Period       BudgetPeriod    `gorm:"size:20" json:"period"`
	Year         int             `json:"year"`
}

func (Budget) EntityName() string { return "Budget" }

// TableName specifies the table name for Budget
func (Budget) TableName() string {
	return "budgets"
}

// Income represents revenue from a sale
type Income struct {
	Base

	Description  string          `gorm:"size:255" json:"description"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CropType     string          `gorm:"size:100;index" json:"cropType"`
	FieldID      string          `gorm:"size:64;index" json:"fieldId"`
	Date         Date            `gorm:"index" json:"date"`
	Buyer        string          `gorm:"size:255" json:"buyer"`
	Quantity     float64         `json:"quantity"`
	Unit         string          `gorm:"size:30" json:"unit"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(12,2)" json:"pricePerUnit"`
	Notes        string          `gorm:"type:text" json:"notes"`
}

func (Income) EntityName() string { return "Income" }

// TableName specifies the table name for Income
func (Income) TableName() string {
	return "income"
}

// All returns one zero value of every entity type, used for migrations
func All() []any {
	return []any{
		&Field{},
		&Crop{},
		&Task{},
		&Resource{},
		&Equipment{},
		&MaintenanceRecord{},
		&Expense{},
		&Budget{},
		&Income{},
	}
}
