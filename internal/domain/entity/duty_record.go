// internal/domain/entity/duty_record.go
package entity

// DutyRecord represents one flight-duty assignment row
type DutyRecord struct {
	JobID      string `json:"JobID,omitempty"`
	Date       string `json:"date"`
	SN         string `json:"sn"`
	Flight     string `json:"flight"`
	From       string `json:"from"`
	To         string `json:"to"`
	STA        string `json:"sta"`
	ETA        string `json:"eta"`
	ATA        string `json:"ata"`
	Remarks    string `json:"remarks"`
	EmployeeID string `json:"employeeID"`
	Supervisor string `json:"supervisor"`
}

// RoutineField identifies a DutyRecord column for sorting and editing
type RoutineField string

const (
	FieldDate       RoutineField = "date"
	FieldSN         RoutineField = "sn"
	FieldFlight     RoutineField = "flight"
	FieldFrom       RoutineField = "from"
	FieldTo         RoutineField = "to"
	FieldSTA        RoutineField = "sta"
	FieldETA        RoutineField = "eta"
	FieldATA        RoutineField = "ata"
	FieldRemarks    RoutineField = "remarks"
	FieldEmployeeID RoutineField = "employeeID"
	FieldSupervisor RoutineField = "supervisor"
)

// SortableFields lists the columns a table header click may sort by
var SortableFields = []RoutineField{
	FieldDate, FieldSN, FieldFlight, FieldFrom, FieldTo,
	FieldSTA, FieldETA, FieldATA, FieldRemarks, FieldEmployeeID, FieldSupervisor,
}

// Editable reports whether the field may change once a record exists.
// SN is fixed at creation and JobID is server-assigned.
func (f RoutineField) Editable() bool {
	return f != FieldSN && f != ""
}

// Valid reports whether f names a real DutyRecord column
func (f RoutineField) Valid() bool {
	for _, s := range SortableFields {
		if f == s {
			return true
		}
	}
	return false
}

// Get returns the value of the named field
func (r *DutyRecord) Get(f RoutineField) string {
	switch f {
	case FieldDate:
		return r.Date
	case FieldSN:
		return r.SN
	case FieldFlight:
		return r.Flight
	case FieldFrom:
		return r.From
	case FieldTo:
		return r.To
	case FieldSTA:
		return r.STA
	case FieldETA:
		return r.ETA
	case FieldATA:
		return r.ATA
	case FieldRemarks:
		return r.Remarks
	case FieldEmployeeID:
		return r.EmployeeID
	case FieldSupervisor:
		return r.Supervisor
	}
	return ""
}

// Set assigns value to the named field if that field is editable
func (r *DutyRecord) Set(f RoutineField, value string) bool {
	if !f.Editable() {
		return false
	}
	switch f {
	case FieldDate:
		r.Date = value
	case FieldFlight:
		r.Flight = value
	case FieldFrom:
		r.From = value
	case FieldTo:
		r.To = value
	case FieldSTA:
		r.STA = value
	case FieldETA:
		r.ETA = value
	case FieldATA:
		r.ATA = value
	case FieldRemarks:
		r.Remarks = value
	case FieldEmployeeID:
		r.EmployeeID = value
	case FieldSupervisor:
		r.Supervisor = value
	default:
		return false
	}
	return true
}
