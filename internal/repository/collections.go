package repository

// Backend collection names.
const (
	CollectionSlots        = "slots"
	CollectionAppointments = "appointments"
	CollectionCustomers    = "customers"
	CollectionCompanies    = "companies"
	CollectionTeams        = "teams"
	CollectionUsers        = "users"
)
