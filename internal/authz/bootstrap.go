package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 系统预置角色矩阵
// admin 对应用户表中的 admin 角色，其余角色通过 SetUserRoles 附加给账号
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "analyst",
			Policies: []Policy{
				{Object: "/admin/analytics", Action: "GET"},
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/users", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "merchandiser",
			Inherits: []string{"analyst"},
			Policies: []Policy{
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role:     "admin",
			Inherits: []string{"merchandiser"},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 写入预置角色，可重复执行
// Immutable 角色会被校正为种子定义：运行期追加的策略与继承在下次启动时移除
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		seedChanged, err := s.applyRoleSeed(seed)
		if err != nil {
			return fmt.Errorf("bootstrap role %s failed: %w", seed.Role, err)
		}
		changed = changed || seedChanged
	}
	if changed {
		return s.saveAndReload()
	}
	return nil
}

func (s *Service) applyRoleSeed(seed RoleSeed) (bool, error) {
	role, err := NormalizeRole(seed.Role)
	if err != nil {
		return false, err
	}

	wantParents := map[string]bool{roleAnchor: true}
	for _, parent := range seed.Inherits {
		parentRole, err := NormalizeRole(parent)
		if err != nil {
			return false, err
		}
		wantParents[parentRole] = true
	}
	wantPolicies := make(map[[2]string]bool, len(seed.Policies))
	for _, policy := range seed.Policies {
		action := NormalizeAction(policy.Action)
		if action == "" {
			return false, fmt.Errorf("builtin policy action is required")
		}
		wantPolicies[[2]string{NormalizeObject(policy.Object), action}] = true
	}

	changed := false
	grouping, err := s.enforcer.GetFilteredNamedGroupingPolicy("g", 0, role)
	if err != nil {
		return false, fmt.Errorf("read role inheritance failed: %w", err)
	}
	for _, rule := range grouping {
		if len(rule) < 2 {
			continue
		}
		if wantParents[rule[1]] {
			delete(wantParents, rule[1])
			continue
		}
		if seed.Immutable {
			if _, err := s.enforcer.RemoveNamedGroupingPolicy("g", role, rule[1]); err != nil {
				return false, fmt.Errorf("remove stale inheritance failed: %w", err)
			}
			changed = true
		}
	}
	for parent := range wantParents {
		added, err := s.enforcer.AddNamedGroupingPolicy("g", role, parent)
		if err != nil {
			return false, fmt.Errorf("link role inheritance failed: %w", err)
		}
		changed = changed || added
	}

	policies, err := s.enforcer.GetFilteredPolicy(0, role)
	if err != nil {
		return false, fmt.Errorf("read role policies failed: %w", err)
	}
	for _, rule := range policies {
		if len(rule) < 3 {
			continue
		}
		key := [2]string{rule[1], rule[2]}
		if wantPolicies[key] {
			delete(wantPolicies, key)
			continue
		}
		if seed.Immutable {
			if _, err := s.enforcer.RemovePolicy(role, rule[1], rule[2]); err != nil {
				return false, fmt.Errorf("remove stale policy failed: %w", err)
			}
			changed = true
		}
	}
	for key := range wantPolicies {
		added, err := s.enforcer.AddPolicy(role, key[0], key[1])
		if err != nil {
			return false, fmt.Errorf("add builtin policy failed: %w", err)
		}
		changed = changed || added
	}
	return changed, nil
}
