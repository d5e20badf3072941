package model

import "strings"

// FieldStatus is the cultivation state of a field
type FieldStatus string

const (
	FieldActive    FieldStatus = "active"
	FieldFallow    FieldStatus = "fallow"
	FieldPreparing FieldStatus = "preparing"
)

// TaskType classifies farm work
type TaskType string

const (
	TaskPlanting    TaskType = "planting"
	TaskIrrigation  TaskType = "irrigation"
	TaskFertilizing TaskType = "fertilizing"
	TaskHarvesting  TaskType = "harvesting"
	TaskMaintenance TaskType = "maintenance"
)

// TaskPriority ranks tasks
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskStatus is the progress of a task. Tasks only move forward.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every status in workflow order
var TaskStatuses = []TaskStatus{TaskPending, TaskInProgress, TaskCompleted}

// NormalizeTaskStatus maps spelling variants onto the canonical status.
// An empty status becomes pending.
func NormalizeTaskStatus(s TaskStatus) TaskStatus {
	key := strings.ToLower(strings.TrimSpace(string(s)))
	switch strings.NewReplacer("_", "", "-", "", " ", "").Replace(key) {
	case "":
		return TaskPending
	case "pending":
		return TaskPending
	case "inprogress":
		return TaskInProgress
	case "completed", "complete", "done":
		return TaskCompleted
	default:
		return TaskStatus(key)
	}
}

// Next returns the status that follows s. Completed is terminal and a
// status outside the workflow is returned unchanged.
func (s TaskStatus) Next() TaskStatus {
	switch NormalizeTaskStatus(s) {
	case TaskPending:
		return TaskInProgress
	case TaskInProgress, TaskCompleted:
		return TaskCompleted
	default:
		return s
	}
}

// MaintenanceType classifies a maintenance record
type MaintenanceType string

const (
	MaintenanceScheduled  MaintenanceType = "Scheduled"
	MaintenanceRepair     MaintenanceType = "Repair"
	MaintenanceInspection MaintenanceType = "Inspection"
	MaintenanceUpgrade    MaintenanceType = "Upgrade"
)

// Equipment and maintenance record states assigned on create
const (
	EquipmentActive      = "Active"
	MaintenanceCompleted = "Completed"
)

// ExpenseCategory is the closed set of spending categories
type ExpenseCategory string

const (
	CategorySeeds       ExpenseCategory = "seeds"
	CategoryFertilizers ExpenseCategory = "fertilizers"
	CategoryPesticides  ExpenseCategory = "pesticides"
	CategoryLabor       ExpenseCategory = "labor"
	CategoryEquipment   ExpenseCategory = "equipment"
	CategoryFuel        ExpenseCategory = "fuel"
	CategoryMaintenance ExpenseCategory = "maintenance"
	CategoryOther       ExpenseCategory = "other"
)

// ExpenseCategories lists every category in display order
var ExpenseCategories = []ExpenseCategory{
	CategorySeeds,
	CategoryFertilizers,
	CategoryPesticides,
	CategoryLabor,
	CategoryEquipment,
	CategoryFuel,
	CategoryMaintenance,
	CategoryOther,
}

// NormalizeExpenseCategory lower-cases c and folds the singular
// "fertilizer" into "fertilizers".
func NormalizeExpenseCategory(c ExpenseCategory) ExpenseCategory {
	key := ExpenseCategory(strings.ToLower(strings.TrimSpace(string(c))))
	if key == "fertilizer" {
		return CategoryFertilizers
	}
	return key
}

// BudgetPeriod is the window a budget covers
type BudgetPeriod string

const (
	PeriodMonthly   BudgetPeriod = "monthly"
	PeriodQuarterly BudgetPeriod = "quarterly"
	PeriodYearly    BudgetPeriod = "yearly"
)
