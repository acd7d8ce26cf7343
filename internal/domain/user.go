package domain

// User is the persisted account record. Only the administrative slice of the
// platform's user model lives in this service; application-level profiles,
// enrollments and instructor data belong to the API backend.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	IsSuperuser  bool
	IsActive     bool
}
