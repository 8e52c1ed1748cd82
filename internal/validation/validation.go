// Package validation registers the equipment-specific tags on a
// go-playground validator, so the API boundary and the form share one set
// of rules.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"equipment-tracker/internal/model"
)

const (
	TagNotBlank        = "notblank"
	TagEquipmentType   = "equipment_type"
	TagEquipmentStatus = "equipment_status"
)

// Register adds the custom tags to v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(TagNotBlank, notBlank); err != nil {
		return err
	}
	if err := v.RegisterValidation(TagEquipmentType, equipmentType); err != nil {
		return err
	}
	return v.RegisterValidation(TagEquipmentStatus, equipmentStatus)
}

// New returns a validator with the custom tags registered and field names
// reported by their json tag.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(JSONFieldName)
	if err := Register(v); err != nil {
		// Only fails on an empty tag name or nil func.
		panic(err)
	}
	return v
}

// JSONFieldName reports a struct field by its json name.
func JSONFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func equipmentType(fl validator.FieldLevel) bool {
	return model.EquipmentType(fl.Field().String()).Valid()
}

func equipmentStatus(fl validator.FieldLevel) bool {
	return model.EquipmentStatus(fl.Field().String()).Valid()
}

// Message renders a human-readable message for one failed field.
func Message(fe validator.FieldError) string {
	label := strings.ToUpper(fe.Field()[:1]) + strings.ReplaceAll(fe.Field()[1:], "_", " ")
	switch fe.Tag() {
	case "required", TagNotBlank:
		return label + " is required"
	case TagEquipmentType:
		return label + " must be one of " + joinTypes()
	case TagEquipmentStatus:
		return label + " must be one of " + joinStatuses()
	case "datetime":
		return label + " must be a date in YYYY-MM-DD form"
	default:
		return label + " is invalid"
	}
}

// IsMissing reports whether fe failed because the field was absent or blank.
func IsMissing(fe validator.FieldError) bool {
	return fe.Tag() == "required" || fe.Tag() == TagNotBlank
}

func joinTypes() string {
	parts := make([]string, len(model.EquipmentTypes))
	for i, t := range model.EquipmentTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func joinStatuses() string {
	parts := make([]string, len(model.EquipmentStatuses))
	for i, s := range model.EquipmentStatuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
