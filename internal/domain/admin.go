package domain

// AdminStatus is the outcome of an administrator lookup.
type AdminStatus int

const (
	// AdminUnknown means the lookup itself failed.
	AdminUnknown AdminStatus = iota
	AdminYes
	AdminNo
)

func (s AdminStatus) String() string {
	switch s {
	case AdminYes:
		return "admin"
	case AdminNo:
		return "not_admin"
	default:
		return "unknown"
	}
}

// Authorize applies the admin policy: private chats always pass, groups
// require a confirmed administrator.
func Authorize(status AdminStatus, private bool) bool {
	if private {
		return true
	}
	return status == AdminYes
}
