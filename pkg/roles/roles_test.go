package roles

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       Role
		permission Permission
		expected   bool
	}{
		{Viewer, PermissionView, true},
		{Viewer, PermissionEdit, false},
		{Viewer, PermissionAdmin, false},
		{Editor, PermissionView, true},
		{Editor, PermissionEdit, true},
		{Editor, PermissionAdmin, false},
		{Admin, PermissionView, true},
		{Admin, PermissionEdit, true},
		{Admin, PermissionAdmin, true},
		{Role("unknown"), PermissionView, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.permission), func(t *testing.T) {
			if got := HasPermission(tt.role, tt.permission); got != tt.expected {
				t.Errorf("HasPermission(%s, %s) = %v, want %v", tt.role, tt.permission, got, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		role     Role
		expected bool
	}{
		{Viewer, true},
		{Editor, true},
		{Admin, true},
		{Role(""), false},
		{Role("superuser"), false},
		{Role("ADMIN"), false}, // roles are lowercase, no normalization here
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.IsValid(); got != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.role, got, tt.expected)
			}
		})
	}
}
