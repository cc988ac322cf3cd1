package domain

// Capability is a typed permission checked before every privileged operation.
type Capability string

const (
	CapCreateOrder   Capability = "order:create"
	CapAcceptOrder   Capability = "order:accept"
	CapCompleteOrder Capability = "order:complete"
	CapReturnOrder   Capability = "order:return"
	CapReorderQueue  Capability = "order:reorder"
	CapViewOrders    Capability = "order:view"
	CapViewRankings  Capability = "ranking:view"
	CapManageUsers   Capability = "user:manage"
)

// rolePermissions maps each role to its capability set.
var rolePermissions = map[string]map[Capability]struct{}{
	RoleAdmin: capSet(
		CapCreateOrder, CapAcceptOrder, CapCompleteOrder, CapReturnOrder,
		CapReorderQueue, CapViewOrders, CapViewRankings, CapManageUsers,
	),
	RoleAttendant: capSet(
		CapCreateOrder, CapReorderQueue, CapViewOrders, CapViewRankings,
	),
	RoleTechnician: capSet(
		CapAcceptOrder, CapCompleteOrder, CapReturnOrder, CapViewOrders, CapViewRankings,
	),
	RoleHelper: capSet(
		CapViewOrders, CapViewRankings,
	),
}

func capSet(caps ...Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// RoleCan reports whether the given role holds the capability.
// Unknown roles hold nothing.
func RoleCan(role string, capability Capability) bool {
	_, ok := rolePermissions[role][capability]
	return ok
}
