package authz

import (
	"fmt"

	"github.com/autoparts-enquiry/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 系统预置角色矩阵
// staff 可查看全部后台数据并维护商品、分类、文章与留言状态，不能删除数据、管理账号或修改设置。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.AdminRoleOwner,
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role: constants.AdminRoleStaff,
			Policies: []Policy{
				{Object: "/admin/me", Action: "GET"},
				{Object: "/admin/password", Action: "PUT"},
				{Object: "/admin/dashboard/*", Action: "GET"},
				{Object: "/admin/products", Action: "GET"},
				{Object: "/admin/products", Action: "POST"},
				{Object: "/admin/products/:id", Action: "GET"},
				{Object: "/admin/products/:id", Action: "PUT"},
				{Object: "/admin/products/low-stock", Action: "GET"},
				{Object: "/admin/products/export", Action: "GET"},
				{Object: "/admin/products/import", Action: "POST"},
				{Object: "/admin/categories", Action: "GET"},
				{Object: "/admin/categories", Action: "POST"},
				{Object: "/admin/categories/:id", Action: "GET"},
				{Object: "/admin/categories/:id", Action: "PUT"},
				{Object: "/admin/posts", Action: "GET"},
				{Object: "/admin/posts", Action: "POST"},
				{Object: "/admin/posts/:id", Action: "GET"},
				{Object: "/admin/posts/:id", Action: "PUT"},
				{Object: "/admin/enquiries", Action: "GET"},
				{Object: "/admin/enquiries/*", Action: "GET"},
				{Object: "/admin/contacts", Action: "GET"},
				{Object: "/admin/contacts/:id", Action: "GET"},
				{Object: "/admin/contacts/:id/status", Action: "PATCH"},
				{Object: "/admin/settings", Action: "GET"},
				{Object: "/admin/upload", Action: "POST"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor)
			if err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
			if err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if added {
				changed = true
			}
		}
	}

	if changed {
		return s.saveAndReload()
	}
	return nil
}
