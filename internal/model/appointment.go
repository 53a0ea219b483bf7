package model

type AppointmentStatus string

const (
	AppointmentStatusEmpty AppointmentStatus = "empty" // free, bookable
	AppointmentStatusEdit  AppointmentStatus = "edit"  // claimed by an agent, booking in progress
	AppointmentStatusOkay  AppointmentStatus = "okay"  // booked, customer attached
)

type Appointment struct {
	ID         string            `json:"id,omitempty"`
	SlotID     string            `json:"slot"`
	Date       string            `json:"date"` // YYYY-MM-DD
	Time       string            `json:"time"` // HH:MM, slot start + index*space
	Status     AppointmentStatus `json:"status"`
	CustomerID string            `json:"customer"` // empty unless status is okay
	Created    string            `json:"created,omitempty"`
	Updated    string            `json:"updated,omitempty"`

	// Filled via relation expansion, not stored on the record
	Customer *Customer `json:"-"`
}

// Booked reports whether the appointment holds a customer.
func (a *Appointment) Booked() bool {
	return a.Status == AppointmentStatusOkay
}
