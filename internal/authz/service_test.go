package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestStaffRolePermissions(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.SetAdminRoles(1, []string{"staff"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}

	cases := []struct {
		object string
		action string
		want   bool
	}{
		{object: "/api/v1/admin/products/:id", action: "get", want: true},
		{object: "/api/v1/admin/products/:id", action: "PUT", want: true},
		{object: "/api/v1/admin/products/:id", action: "DELETE", want: false},
		{object: "/api/v1/admin/categories/:id", action: "DELETE", want: false},
		{object: "/api/v1/admin/dashboard/stats", action: "GET", want: true},
		{object: "/api/v1/admin/enquiries/export", action: "GET", want: true},
		{object: "/api/v1/admin/contacts/:id/status", action: "PATCH", want: true},
		{object: "/api/v1/admin/settings", action: "PUT", want: false},
		{object: "/api/v1/admin/admins", action: "GET", want: false},
		{object: "/api/v1/admin/admins", action: "POST", want: false},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceAdmin(1, tc.object, tc.action)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", tc.action, tc.object, err)
		}
		if allow != tc.want {
			t.Fatalf("%s %s want allow=%v got %v", tc.action, tc.object, tc.want, allow)
		}
	}
}

func TestSetAdminRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	if err := svc.SetAdminRoles(2, []string{"staff"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:staff" {
		t.Fatalf("roles want [role:staff], got=%v", roles)
	}

	if err := svc.SyncAdminRole(2, "owner"); err != nil {
		t.Fatalf("sync owner role failed: %v", err)
	}
	roles, err = svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:owner" {
		t.Fatalf("roles want [role:owner], got=%v", roles)
	}

	allow, err := svc.EnforceAdmin(2, "/admin/admins/:id", "DELETE")
	if err != nil {
		t.Fatalf("enforce owner role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected owner permission granted")
	}
}

func TestRemoveAdmin(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.SetAdminRoles(4, []string{"staff"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}
	if err := svc.RemoveAdmin(4); err != nil {
		t.Fatalf("remove admin failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(4)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 0 {
		t.Fatalf("roles should be cleared, got=%v", roles)
	}
	allow, err := svc.EnforceAdmin(4, "/admin/products", "GET")
	if err != nil {
		t.Fatalf("enforce removed admin failed: %v", err)
	}
	if allow {
		t.Fatalf("removed admin should have no permission")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "admin/orders", want: "/admin/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap should be idempotent: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if len(roles) != 2 || roles[0] != "role:owner" || roles[1] != "role:staff" {
		t.Fatalf("builtin roles unexpected: %v", roles)
	}

	if err := svc.SetAdminRoles(3, []string{"staff"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}
	policies, err := svc.GetAdminPolicies(3)
	if err != nil {
		t.Fatalf("get admin policies failed: %v", err)
	}
	if len(policies) != len(BuiltinRoleSeeds()[1].Policies) {
		t.Fatalf("staff policies want %d got %d", len(BuiltinRoleSeeds()[1].Policies), len(policies))
	}
}
