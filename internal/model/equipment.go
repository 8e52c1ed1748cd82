package model

import "time"

// Equipment is a tracked physical asset.
type Equipment struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Type        EquipmentType   `gorm:"type:varchar(32);not null;check:chk_equipment_type,type IN ('Machine','Vessel','Tank','Mixer')" json:"type"`
	Status      EquipmentStatus `gorm:"type:varchar(32);not null;check:chk_equipment_status,status IN ('Active','Inactive','Under Maintenance')" json:"status"`
	LastCleaned *Date           `gorm:"type:date" json:"last_cleaned"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// TableName pins the table name to the singular form.
func (Equipment) TableName() string {
	return "equipment"
}
