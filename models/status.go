package models

// Order statuses. The lifecycle runs
// pending -> accepted -> priced -> paid -> assigned_to_vendor -> in_progress
// -> ready_for_fitting -> fitting_scheduled -> completed, with "negotiated"
// as a customer counter-offer detour after pricing and "cancelled" reachable
// from any non-terminal status.
const (
	StatusPending          = "pending"
	StatusAccepted         = "accepted"
	StatusPriced           = "priced"
	StatusNegotiated       = "negotiated"
	StatusPaid             = "paid"
	StatusAssignedToVendor = "assigned_to_vendor"
	StatusInProgress       = "in_progress"
	StatusReadyForFitting  = "ready_for_fitting"
	StatusFittingScheduled = "fitting_scheduled"
	StatusCompleted        = "completed"
	StatusCancelled        = "cancelled"
)

// User roles
const (
	RoleCustomer   = "customer"
	RoleStaff      = "staff"
	RoleSuperadmin = "superadmin"
)

// Staff types
const (
	StaffTypeCustomerService = "customer_service"
	StaffTypeVendor          = "vendor"
)

// Order types
const (
	OrderTypeAppointment = "appointment"
	OrderTypeDescription = "description"
	OrderTypeImageUpload = "image_upload"
)

// Priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var allStatuses = []string{
	StatusPending,
	StatusAccepted,
	StatusPriced,
	StatusNegotiated,
	StatusPaid,
	StatusAssignedToVendor,
	StatusInProgress,
	StatusReadyForFitting,
	StatusFittingScheduled,
	StatusCompleted,
	StatusCancelled,
}

// statusTransitions maps a target status to the statuses an order may move
// from and the roles allowed to move it. Cancellation is handled separately
// because its source set and role rules depend on the current status.
var statusTransitions = map[string]struct {
	from  []string
	roles []string
}{
	StatusAccepted:         {from: []string{StatusPending}, roles: []string{RoleStaff, RoleSuperadmin}},
	StatusPriced:           {from: []string{StatusPending, StatusAccepted, StatusNegotiated}, roles: []string{RoleStaff, RoleSuperadmin}},
	StatusNegotiated:       {from: []string{StatusPriced}, roles: []string{RoleCustomer}},
	StatusPaid:             {from: []string{StatusPriced}, roles: []string{RoleStaff, RoleSuperadmin}},
	StatusAssignedToVendor: {from: []string{StatusPriced, StatusAccepted, StatusNegotiated, StatusPaid}, roles: []string{RoleStaff, RoleSuperadmin}},
	StatusInProgress:       {from: []string{StatusAssignedToVendor}, roles: []string{RoleStaff, RoleSuperadmin}},
	StatusReadyForFitting:  {from: []string{StatusPriced, StatusNegotiated, StatusInProgress}, roles: []string{RoleStaff, RoleSuperadmin}},
	StatusFittingScheduled: {from: []string{StatusReadyForFitting}, roles: []string{RoleStaff, RoleSuperadmin}},
	StatusCompleted:        {from: []string{StatusFittingScheduled}, roles: []string{RoleStaff, RoleSuperadmin}},
}

// IsValidStatus reports whether s is part of the status vocabulary.
func IsValidStatus(s string) bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether an order in status s can never change again.
func IsTerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsValidPriority reports whether p is a known priority.
func IsValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// IsValidOrderType reports whether t is a known order type.
func IsValidOrderType(t string) bool {
	return t == OrderTypeAppointment || t == OrderTypeDescription || t == OrderTypeImageUpload
}

// IsStaffRole reports whether role is staff or superadmin.
func IsStaffRole(role string) bool {
	return role == RoleStaff || role == RoleSuperadmin
}

// CheckTransition validates a status change from -> to attempted by role.
// legal reports whether the edge exists in the lifecycle at all; permitted
// reports whether the role may take it. Both must hold for the transition
// to proceed.
func CheckTransition(from, to, role string) (legal bool, permitted bool) {
	if from == to {
		return false, false
	}

	// Cancellation: legal from any non-terminal status. A staff member may
	// reject a pending order; anything further along needs a superadmin.
	if to == StatusCancelled {
		if IsTerminalStatus(from) {
			return false, false
		}
		if role == RoleSuperadmin {
			return true, true
		}
		if role == RoleStaff && from == StatusPending {
			return true, true
		}
		return true, false
	}

	rule, ok := statusTransitions[to]
	if !ok {
		return false, false
	}

	legal = false
	for _, f := range rule.from {
		if f == from {
			legal = true
			break
		}
	}
	if !legal {
		return false, false
	}

	for _, r := range rule.roles {
		if r == role {
			return true, true
		}
	}
	return true, false
}
