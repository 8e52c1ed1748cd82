package api

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"equipment-tracker/internal/model"
	"equipment-tracker/internal/store"
	"equipment-tracker/internal/validation"
)

// equipmentRequest is the body of POST /api/equipment and PUT /api/equipment/:id.
type equipmentRequest struct {
	Name        string `json:"name" binding:"required,notblank"`
	Type        string `json:"type" binding:"required,equipment_type"`
	Status      string `json:"status" binding:"required,equipment_status"`
	LastCleaned string `json:"last_cleaned" binding:"omitempty,datetime=2006-01-02"`
}

// toInput converts a bound and validated request into store input.
func (r equipmentRequest) toInput() (store.EquipmentInput, error) {
	typ, err := model.ParseEquipmentType(r.Type)
	if err != nil {
		return store.EquipmentInput{}, err
	}
	status, err := model.ParseEquipmentStatus(r.Status)
	if err != nil {
		return store.EquipmentInput{}, err
	}
	in := store.EquipmentInput{
		Name:   strings.TrimSpace(r.Name),
		Type:   typ,
		Status: status,
	}
	if r.LastCleaned != "" {
		d, err := model.ParseDate(r.LastCleaned)
		if err != nil {
			return store.EquipmentInput{}, err
		}
		in.LastCleaned = &d
	}
	return in, nil
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

const (
	msgMissingFields = "Name, type, and status are required"
	msgInvalidBody   = "Invalid equipment data"
	msgInvalidID     = "Invalid equipment ID"
	msgNotFound      = "Equipment not found"
)

// bindError turns a ShouldBindJSON failure into a 400 body.
func bindError(err error) errorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errorResponse{Error: msgInvalidBody}
	}

	resp := errorResponse{Error: msgInvalidBody, Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		resp.Fields[fe.Field()] = validation.Message(fe)
		if validation.IsMissing(fe) {
			resp.Error = msgMissingFields
		}
	}
	return resp
}
