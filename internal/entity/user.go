package entity

const AnonymousUser = "anonymous"

type UserLoginData struct {
	ID       string
	Username string
	Email    string
}

// AuditName is the identity written to the audit trail for this caller.
func (u UserLoginData) AuditName() string {
	switch {
	case u.Username != "":
		return u.Username
	case u.ID != "":
		return u.ID
	default:
		return AnonymousUser
	}
}
