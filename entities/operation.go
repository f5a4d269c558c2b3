package entities

type OperationType string

const (
	// Users
	OperationUserCreated   OperationType = "user_created"
	OperationUserBlocked   OperationType = "user_blocked"
	OperationUserUnblocked OperationType = "user_unblocked"
	OperationRoleAssigned  OperationType = "role_assigned"
	OperationRoleRemoved   OperationType = "role_removed"

	// Warehouse
	OperationInventoryReceive OperationType = "inventory_receive"
	OperationInventoryIssue   OperationType = "inventory_issue"
	OperationInventoryAdjust  OperationType = "inventory_adjust"

	// Hoppers
	OperationHopperFill    OperationType = "hopper_fill"
	OperationHopperInstall OperationType = "hopper_install"
	OperationHopperRemove  OperationType = "hopper_remove"
	OperationHopperClean   OperationType = "hopper_clean"
	OperationIssueHopper   OperationType = "issue_hopper"
	OperationReturnHopper  OperationType = "return_hopper"

	// Machines
	OperationMachineService      OperationType = "machine_service"
	OperationMachineRepair       OperationType = "machine_repair"
	OperationMachineStatusChange OperationType = "machine_status_change"

	// Transport
	OperationStartTrip      OperationType = "start_trip"
	OperationEndTrip        OperationType = "end_trip"
	OperationFuelPurchase   OperationType = "fuel_purchase"
	OperationVehicleService OperationType = "vehicle_service"

	// Reports
	OperationProblemReport  OperationType = "problem_report"
	OperationInventoryCheck OperationType = "inventory_check"
)

// Operation is an immutable audit record of one business action and its
// outcome. Rows are only ever appended; failed attempts are recorded too.
type Operation struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"index;not null" json:"user_id"`
	OperationType OperationType `gorm:"size:50;not null;index" json:"operation_type"`

	EntityType string `gorm:"size:50" json:"entity_type,omitempty"`
	EntityID   *uint  `json:"entity_id,omitempty"`

	Description  string `gorm:"type:text;not null" json:"description"`
	Success      bool   `gorm:"not null" json:"success"`
	ErrorMessage string `gorm:"type:text" json:"error_message,omitempty"`
	Metadata     string `gorm:"type:jsonb" json:"metadata,omitempty"`

	Photos []Photo `gorm:"foreignKey:OperationID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`

	Timestamp
}

type PhotoType string

const (
	PhotoHopperInstall   PhotoType = "hopper_install"
	PhotoHopperRemove    PhotoType = "hopper_remove"
	PhotoMachineService  PhotoType = "machine_service"
	PhotoFuelReceipt     PhotoType = "fuel_receipt"
	PhotoVehicleOdometer PhotoType = "vehicle_odometer"
	PhotoProblemReport   PhotoType = "problem_report"
	PhotoInventoryCheck  PhotoType = "inventory_check"
)

// Photo is evidence attached to an operation. FileKey points at the stored
// object; the bytes themselves live in the object store.
type Photo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OperationID uint      `gorm:"index;not null" json:"operation_id"`
	UserID      uint      `gorm:"not null" json:"user_id"`
	FileKey     string    `gorm:"size:255;not null;uniqueIndex" json:"file_key"`
	PhotoType   PhotoType `gorm:"size:50;not null" json:"photo_type"`
	Caption     string    `gorm:"size:1000" json:"caption,omitempty"`
	FileSize    *int      `json:"file_size,omitempty"`
	Width       *int      `json:"width,omitempty"`
	Height      *int      `json:"height,omitempty"`

	Timestamp
}
