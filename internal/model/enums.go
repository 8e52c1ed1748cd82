package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// EquipmentType is the closed set of equipment kinds.
type EquipmentType string

const (
	TypeMachine EquipmentType = "Machine"
	TypeVessel  EquipmentType = "Vessel"
	TypeTank    EquipmentType = "Tank"
	TypeMixer   EquipmentType = "Mixer"
)

// EquipmentTypes lists every permitted type in display order.
var EquipmentTypes = []EquipmentType{TypeMachine, TypeVessel, TypeTank, TypeMixer}

// Valid reports whether t is one of the enumerated literals.
func (t EquipmentType) Valid() bool {
	switch t {
	case TypeMachine, TypeVessel, TypeTank, TypeMixer:
		return true
	}
	return false
}

// ParseEquipmentType converts a raw literal into an EquipmentType.
func ParseEquipmentType(s string) (EquipmentType, error) {
	t := EquipmentType(s)
	if !t.Valid() {
		return "", fmt.Errorf("invalid equipment type %q", s)
	}
	return t, nil
}

func (t *EquipmentType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseEquipmentType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer.
func (t EquipmentType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid equipment type %q", string(t))
	}
	return string(t), nil
}

// Scan implements sql.Scanner.
func (t *EquipmentType) Scan(src any) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseEquipmentType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// EquipmentStatus is the closed set of lifecycle states.
type EquipmentStatus string

const (
	StatusActive           EquipmentStatus = "Active"
	StatusInactive         EquipmentStatus = "Inactive"
	StatusUnderMaintenance EquipmentStatus = "Under Maintenance"
)

// EquipmentStatuses lists every permitted status in display order.
var EquipmentStatuses = []EquipmentStatus{StatusActive, StatusInactive, StatusUnderMaintenance}

// Valid reports whether s is one of the enumerated literals.
func (s EquipmentStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusUnderMaintenance:
		return true
	}
	return false
}

// ParseEquipmentStatus converts a raw literal into an EquipmentStatus.
func ParseEquipmentStatus(raw string) (EquipmentStatus, error) {
	s := EquipmentStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid equipment status %q", raw)
	}
	return s, nil
}

func (s *EquipmentStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseEquipmentStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer.
func (s EquipmentStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid equipment status %q", string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *EquipmentStatus) Scan(src any) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseEquipmentStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func scanString(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into an enum", src)
	}
}
