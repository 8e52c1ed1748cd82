// Package form holds a draft equipment record and validates it before it is
// handed to a create or update handler.
package form

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"equipment-tracker/internal/client"
	"equipment-tracker/internal/model"
	"equipment-tracker/internal/validation"
)

var validate = validation.New()

// Draft is the editable state of the form.
type Draft struct {
	Name        string `json:"name" validate:"required,notblank"`
	Type        string `json:"type" validate:"required,equipment_type"`
	Status      string `json:"status" validate:"required,equipment_status"`
	LastCleaned string `json:"last_cleaned" validate:"omitempty,datetime=2006-01-02"`
}

// FromEquipment prefills a draft for editing an existing record.
func FromEquipment(e model.Equipment) Draft {
	d := Draft{
		Name:   e.Name,
		Type:   string(e.Type),
		Status: string(e.Status),
	}
	if e.LastCleaned != nil {
		d.LastCleaned = e.LastCleaned.String()
	}
	return d
}

// FieldErrors maps a field's json name to its message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	return "invalid equipment form"
}

// Validate returns nil when the draft can be submitted.
func (d Draft) Validate() FieldErrors {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = validation.Message(fe)
	}
	return out
}

// Data converts a valid draft into the request body. Call Validate first.
func (d Draft) Data() (client.EquipmentData, error) {
	typ, err := model.ParseEquipmentType(d.Type)
	if err != nil {
		return client.EquipmentData{}, err
	}
	status, err := model.ParseEquipmentStatus(d.Status)
	if err != nil {
		return client.EquipmentData{}, err
	}
	data := client.EquipmentData{Name: d.Name, Type: typ, Status: status}
	if d.LastCleaned != "" {
		date, err := model.ParseDate(d.LastCleaned)
		if err != nil {
			return client.EquipmentData{}, err
		}
		data.LastCleaned = &date
	}
	return data, nil
}

// SubmitFunc performs the create or update call.
type SubmitFunc func(ctx context.Context, data client.EquipmentData) error

// Form is a draft plus the per-field errors from the last submit attempt.
type Form struct {
	Draft  Draft
	Errors FieldErrors
}

// New returns an empty form, or one prefilled from e when editing.
func New(e *model.Equipment) *Form {
	f := &Form{}
	if e != nil {
		f.Draft = FromEquipment(*e)
	}
	return f
}

// Clear drops the error shown for field once the user edits it.
func (f *Form) Clear(field string) {
	delete(f.Errors, field)
}

// Submit validates the draft and, only when it is valid, calls submit. The
// returned error is FieldErrors on validation failure, otherwise whatever
// submit returned.
func (f *Form) Submit(ctx context.Context, submit SubmitFunc) error {
	if errs := f.Draft.Validate(); errs != nil {
		f.Errors = errs
		return errs
	}
	f.Errors = nil

	data, err := f.Draft.Data()
	if err != nil {
		return err
	}
	return submit(ctx, data)
}
