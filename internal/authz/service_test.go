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

func TestEnforceUserWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("ops", "/admin/products/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetUserRoles(1, []string{"ops"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	allow, err := svc.EnforceUser(1, "customer", "/api/v1/admin/products/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceUser(1, "customer", "/api/v1/admin/products/42", "POST")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetUserRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("ops", "/admin/orders", "GET"); err != nil {
		t.Fatalf("grant ops policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("finance", "/admin/analytics", "GET"); err != nil {
		t.Fatalf("grant finance policy failed: %v", err)
	}

	if err := svc.SetUserRoles(2, []string{"ops"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:ops" {
		t.Fatalf("roles want [role:ops], got=%v", roles)
	}

	if err := svc.SetUserRoles(2, []string{"finance"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err = svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:finance" {
		t.Fatalf("roles want [role:finance], got=%v", roles)
	}

	allow, err := svc.EnforceUser(2, "", "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected old role permission removed")
	}

	allow, err = svc.EnforceUser(2, "", "/admin/analytics", "GET")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected new role permission granted")
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

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:analyst":      true,
		"role:merchandiser": true,
		"role:admin":        true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	if err := svc.SetUserRoles(3, []string{"merchandiser"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	allow, err := svc.EnforceUser(3, "customer", "/admin/analytics", "GET")
	if err != nil {
		t.Fatalf("enforce inherited analyst failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected inherited analyst permission")
	}

	allow, err = svc.EnforceUser(3, "customer", "/admin/users/:id", "DELETE")
	if err != nil {
		t.Fatalf("enforce user delete failed: %v", err)
	}
	if allow {
		t.Fatalf("expected merchandiser to be denied user delete")
	}

	policies, err := svc.GetRolePolicies("merchandiser")
	if err != nil {
		t.Fatalf("get role policies failed: %v", err)
	}
	if len(policies) != 4 {
		t.Fatalf("merchandiser policies want 4, got=%d", len(policies))
	}
}

func TestEnforceUserFallsBackToAccountRole(t *testing.T) {
	svc, err := NewService(nil)
	if err != nil {
		t.Fatalf("new memory authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	allow, err := svc.EnforceUser(9, "admin", "/api/v1/admin/users/:id", "DELETE")
	if err != nil {
		t.Fatalf("enforce admin failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected admin role to pass")
	}

	allow, err = svc.EnforceUser(10, "customer", "/api/v1/admin/analytics", "GET")
	if err != nil {
		t.Fatalf("enforce customer failed: %v", err)
	}
	if allow {
		t.Fatalf("expected customer role to be denied")
	}
}

func TestBootstrapBuiltinRolesResetsDrift(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.GrantRolePolicy("analyst", "/admin/users/:id", "DELETE"); err != nil {
		t.Fatalf("grant extra policy failed: %v", err)
	}
	if err := svc.SetUserRoles(5, []string{"analyst"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}
	allow, err := svc.EnforceUser(5, "customer", "/admin/users/:id", "DELETE")
	if err != nil || !allow {
		t.Fatalf("extra policy should apply before reboot, allow=%v err=%v", allow, err)
	}

	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	policies, err := svc.GetRolePolicies("analyst")
	if err != nil {
		t.Fatalf("get role policies failed: %v", err)
	}
	if len(policies) != 3 {
		t.Fatalf("analyst policies want 3 after bootstrap, got=%d", len(policies))
	}
	allow, err = svc.EnforceUser(5, "customer", "/admin/users/:id", "DELETE")
	if err != nil {
		t.Fatalf("enforce after bootstrap failed: %v", err)
	}
	if allow {
		t.Fatalf("drifted policy should be removed from immutable role")
	}

	roles, err := svc.GetUserRoles(5)
	if err != nil || len(roles) != 1 || roles[0] != "role:analyst" {
		t.Fatalf("user role assignment should survive bootstrap, roles=%v err=%v", roles, err)
	}
}
