package domain

// SyncDetail is one line of the synchronization report.
type SyncDetail struct {
	Identifier string
	Role       Role
}

// SyncReport summarizes a full claims synchronization run.
type SyncReport struct {
	Message    string
	ValidRoles []Role
	Details    []SyncDetail
}
