package domain

// Capabilities is what a caller may do inside one area.
type Capabilities struct {
	IsAdmin   bool
	IsManager bool
	IsMember  bool
}

// ResolveCapabilities derives a caller's capabilities in an area from the
// global admin flag and the caller's membership there (nil when none).
// A global admin is implicitly a manager and member of every area.
func ResolveCapabilities(caller Caller, membership *UserArea) Capabilities {
	if caller.IsAdmin {
		return Capabilities{IsAdmin: true, IsManager: true, IsMember: true}
	}
	if membership == nil {
		return Capabilities{}
	}
	caps := Capabilities{IsMember: true}
	switch membership.Role {
	case AreaRoleManager, AreaRoleAdmin:
		caps.IsManager = true
	case AreaRoleMember:
	default:
		// unknown roles grant nothing
		return Capabilities{}
	}
	return caps
}

// None is true when the caller cannot see the area at all.
func (c Capabilities) None() bool {
	return !c.IsAdmin && !c.IsManager && !c.IsMember
}
