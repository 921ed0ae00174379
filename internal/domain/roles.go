package domain

import (
	"strings"

	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

var roleAliases = map[string]models.Role{
	"proposer":      models.RoleProposer,
	"proposer_role": models.RoleProposer,
	"executor":      models.RoleExecutor,
	"executer":      models.RoleExecutor,
	"executor_role": models.RoleExecutor,
	"canceler":      models.RoleCanceler,
	"canceller":     models.RoleCanceler,
	"canceler_role": models.RoleCanceler,
	"admin":         models.RoleAdmin,
	"default_admin": models.RoleAdmin,
}

// ParseRole resolves a user supplied role name
func ParseRole(name string) (models.Role, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	if role, ok := roleAliases[key]; ok {
		return role, nil
	}

	candidates := lo.Map(models.AllRoles(), func(r models.Role, _ int) string { return string(r) })
	err := UnknownRoleError{Name: name}
	if key != "" {
		if matches := fuzzy.Find(key, candidates); len(matches) > 0 {
			err.Suggestion = matches[0].Str
		}
	}
	return "", err
}
