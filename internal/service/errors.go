package service

import "errors"

// Business-rule errors. These propagate straight to the caller for user
// messaging and are never retried.
var (
	ErrSlotNotFound        = errors.New("slot not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrCustomerNotFound    = errors.New("customer not found")

	// ErrNoAppointments means the slot's time window and spacing would
	// generate zero appointments.
	ErrNoAppointments = errors.New("slot would generate no appointments")

	// ErrAlreadyClaimed means another agent holds the edit lock.
	ErrAlreadyClaimed = errors.New("appointment is being edited by someone else")

	// ErrAlreadyBooked means the appointment already carries a customer.
	ErrAlreadyBooked = errors.New("appointment is already booked")

	// ErrNotClaimed means a transition required the edit state first.
	ErrNotClaimed = errors.New("appointment is not claimed")

	ErrMissingCustomer = errors.New("customer reference is required")
	ErrInvalidQCStatus = errors.New("invalid QC status value")

	ErrCompanyNotFound = errors.New("company not found")
	ErrTeamNotFound    = errors.New("team not found")

	// ErrCompanyHasTeams blocks deleting a company that still owns teams.
	ErrCompanyHasTeams = errors.New("company still has teams attached")
)
