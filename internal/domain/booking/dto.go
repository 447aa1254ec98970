package booking

import (
	"encoding/json"
	"sort"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/sqltypes"
)

// CreateRequest is a booking request from the website form
type CreateRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required,max=30"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email,max=255"`
	PetName       string `json:"pet_name" validate:"required,max=100"`
	PetBreed      string `json:"pet_breed" validate:"required,max=100"`
	ServiceName   string `json:"service_name" validate:"required,max=200"`
	ServicePrice  *int   `json:"service_price" validate:"required,gte=0"`
	BookingDate   string `json:"booking_date" validate:"required,isodate"`
	BookingTime   string `json:"booking_time" validate:"required,clock"`
	Notes         string `json:"notes" validate:"max=1000"`
}

// Filter narrows the booking list
type Filter struct {
	Date   *sqltypes.Date
	Status *Status
}

// Patch is a partial booking update. Nil fields are left untouched.
type Patch struct {
	Status *Status
	Notes  *string
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.Notes == nil
}

// columns returns the column assignments the patch makes
func (p Patch) columns() map[string]any {
	set := make(map[string]any, 2)
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.Notes != nil {
		set["notes"] = sqltypes.NullString(*p.Notes)
	}
	return set
}

type patchSetter func(p *Patch, raw json.RawMessage) error

// patchSetters is the complete set of fields a booking update may touch.
var patchSetters = map[string]patchSetter{
	"status": func(p *Patch, raw json.RawMessage) error {
		var status Status
		if err := json.Unmarshal(raw, &status); err != nil || !status.Valid() {
			return ErrInvalidStatus
		}
		p.Status = &status
		return nil
	},
	"notes": func(p *Patch, raw json.RawMessage) error {
		var notes string
		if err := json.Unmarshal(raw, &notes); err != nil {
			return apperror.Validation("Invalid value for field: notes")
		}
		if len(notes) > 1000 {
			return apperror.Validation("Notes must be at most 1000 characters")
		}
		p.Notes = &notes
		return nil
	},
}

// ParsePatch builds a Patch from a decoded JSON object.
// An empty object or any field outside the updatable set is rejected.
func ParsePatch(fields map[string]json.RawMessage) (Patch, error) {
	var patch Patch
	if len(fields) == 0 {
		return patch, ErrNoFieldsToUpdate
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		set, ok := patchSetters[name]
		if !ok {
			return Patch{}, apperror.Validation("Field cannot be updated: " + name)
		}
		if err := set(&patch, fields[name]); err != nil {
			return Patch{}, err
		}
	}
	return patch, nil
}
