package domain

import "testing"

func TestUserRole(t *testing.T) {
	t.Parallel()

	if !UserRoleManager.IsValid() || !UserRoleStaff.IsValid() {
		t.Fatal("manager and staff must be valid roles")
	}
	if UserRole("admin").IsValid() {
		t.Error("admin is not a role in this service")
	}
	if !UserRoleManager.IsManager() {
		t.Error("manager.IsManager() = false")
	}
	if UserRoleStaff.IsManager() {
		t.Error("staff.IsManager() = true")
	}
}
