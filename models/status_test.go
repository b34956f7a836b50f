package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, IsValidStatus(s), "expected %q to be valid", s)
	}
	assert.False(t, IsValidStatus("shipped"))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("PENDING"))
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(StatusCompleted))
	assert.True(t, IsTerminalStatus(StatusCancelled))
	assert.False(t, IsTerminalStatus(StatusPending))
	assert.False(t, IsTerminalStatus(StatusPaid))
	assert.False(t, IsTerminalStatus(StatusFittingScheduled))
}

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name      string
		from      string
		to        string
		role      string
		legal     bool
		permitted bool
	}{
		// Forward path
		{"staff accepts pending", StatusPending, StatusAccepted, RoleStaff, true, true},
		{"superadmin accepts pending", StatusPending, StatusAccepted, RoleSuperadmin, true, true},
		{"customer cannot accept", StatusPending, StatusAccepted, RoleCustomer, true, false},
		{"staff prices pending directly", StatusPending, StatusPriced, RoleStaff, true, true},
		{"staff prices accepted", StatusAccepted, StatusPriced, RoleStaff, true, true},
		{"staff re-prices after negotiation", StatusNegotiated, StatusPriced, RoleStaff, true, true},
		{"staff marks priced as paid", StatusPriced, StatusPaid, RoleStaff, true, true},
		{"staff assigns vendor from paid", StatusPaid, StatusAssignedToVendor, RoleStaff, true, true},
		{"staff assigns vendor from priced", StatusPriced, StatusAssignedToVendor, RoleStaff, true, true},
		{"vendor work starts", StatusAssignedToVendor, StatusInProgress, RoleStaff, true, true},
		{"work finishes", StatusInProgress, StatusReadyForFitting, RoleStaff, true, true},
		{"fitting scheduled", StatusReadyForFitting, StatusFittingScheduled, RoleStaff, true, true},
		{"order completes", StatusFittingScheduled, StatusCompleted, RoleSuperadmin, true, true},

		// Negotiation is a customer-only move
		{"customer negotiates a priced order", StatusPriced, StatusNegotiated, RoleCustomer, true, true},
		{"staff cannot negotiate", StatusPriced, StatusNegotiated, RoleStaff, true, false},
		{"cannot negotiate before pricing", StatusPending, StatusNegotiated, RoleCustomer, false, false},

		// Edges that do not exist
		{"cannot complete from pending", StatusPending, StatusCompleted, RoleSuperadmin, false, false},
		{"cannot skip to in_progress", StatusPriced, StatusInProgress, RoleStaff, false, false},
		{"cannot pay an unpriced order", StatusPending, StatusPaid, RoleStaff, false, false},
		{"cannot reopen a completed order", StatusCompleted, StatusInProgress, RoleSuperadmin, false, false},
		{"no self transition", StatusPriced, StatusPriced, RoleStaff, false, false},
		{"unknown target status", StatusPending, "shipped", RoleSuperadmin, false, false},

		// Cancellation rules
		{"staff rejects a pending order", StatusPending, StatusCancelled, RoleStaff, true, true},
		{"staff cannot cancel once accepted", StatusAccepted, StatusCancelled, RoleStaff, true, false},
		{"staff cannot cancel in progress", StatusInProgress, StatusCancelled, RoleStaff, true, false},
		{"superadmin cancels anywhere", StatusInProgress, StatusCancelled, RoleSuperadmin, true, true},
		{"superadmin cancels a paid order", StatusPaid, StatusCancelled, RoleSuperadmin, true, true},
		{"customer cannot cancel", StatusPending, StatusCancelled, RoleCustomer, true, false},
		{"cannot cancel a cancelled order", StatusCancelled, StatusCancelled, RoleSuperadmin, false, false},
		{"cannot cancel a completed order", StatusCompleted, StatusCancelled, RoleSuperadmin, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			legal, permitted := CheckTransition(tt.from, tt.to, tt.role)
			assert.Equal(t, tt.legal, legal, "legal mismatch")
			assert.Equal(t, tt.permitted, permitted, "permitted mismatch")
		})
	}
}

func TestIsValidPriority(t *testing.T) {
	assert.True(t, IsValidPriority(PriorityLow))
	assert.True(t, IsValidPriority(PriorityMedium))
	assert.True(t, IsValidPriority(PriorityHigh))
	assert.False(t, IsValidPriority("urgent"))
	assert.False(t, IsValidPriority(""))
}

func TestIsValidOrderType(t *testing.T) {
	assert.True(t, IsValidOrderType(OrderTypeAppointment))
	assert.True(t, IsValidOrderType(OrderTypeDescription))
	assert.True(t, IsValidOrderType(OrderTypeImageUpload))
	assert.False(t, IsValidOrderType("walk_in"))
}

func TestIsStaffRole(t *testing.T) {
	assert.True(t, IsStaffRole(RoleStaff))
	assert.True(t, IsStaffRole(RoleSuperadmin))
	assert.False(t, IsStaffRole(RoleCustomer))
	assert.False(t, IsStaffRole(""))
}
