package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RoleListView is the structured form of a SafeGuard's role memberships
type RoleListView struct {
	SafeGuard common.Address                   `json:"safeguard"`
	Roles     map[models.Role][]common.Address `json:"roles"`
}

// NewRoleListView groups memberships per role, listing every member role even when empty
func NewRoleListView(result *usecase.RoleListResult) RoleListView {
	grouped := result.ByRole()
	roles := make(map[models.Role][]common.Address, len(models.MemberRoles()))
	for _, role := range models.MemberRoles() {
		members := grouped[role]
		if members == nil {
			members = []common.Address{}
		}
		roles[role] = members
	}
	return RoleListView{SafeGuard: result.SafeGuard, Roles: roles}
}

// RolesRenderer renders role memberships and role changes
type RolesRenderer struct {
	out   io.Writer
	title cases.Caser
}

// NewRolesRenderer creates a new roles renderer
func NewRolesRenderer(out io.Writer) *RolesRenderer {
	return &RolesRenderer{out: out, title: cases.Title(language.English)}
}

// RenderList renders members grouped by role
func (r *RolesRenderer) RenderList(view RoleListView) error {
	fmt.Fprintf(r.out, "Roles on SafeGuard %s\n\n", addressStyle.Sprint(view.SafeGuard.Hex()))
	for _, role := range models.MemberRoles() {
		members := view.Roles[role]
		fmt.Fprintf(r.out, "%s (%d)\n", headerStyle.Sprint(r.title.String(string(role))+"s"), len(members))
		if len(members) == 0 {
			fmt.Fprintln(r.out, timestampStyle.Sprint("  none"))
		}
		for _, member := range members {
			fmt.Fprintf(r.out, "  %s\n", member.Hex())
		}
		fmt.Fprintln(r.out)
	}
	return nil
}

// RenderCaller renders the roles held by the signer
func (r *RolesRenderer) RenderCaller(result *usecase.CallerRolesResult) error {
	fmt.Fprintf(r.out, "Signer %s on SafeGuard %s\n\n", addressStyle.Sprint(result.Address.Hex()), addressStyle.Sprint(result.SafeGuard.Hex()))
	for _, role := range models.AllRoles() {
		mark := canceledStyle.Sprint("✗")
		if result.Has(role) {
			mark = executedStyle.Sprint("✓")
		}
		fmt.Fprintf(r.out, "  %s %s\n", mark, r.title.String(string(role)))
	}
	if len(result.Roles) == 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning("The signer holds no roles on this SafeGuard"))
	}
	return nil
}

// RenderChange renders a confirmed grant or revoke
func (r *RolesRenderer) RenderChange(granted bool, result *usecase.RoleChangeResult) error {
	verb := lo.Ternary(granted, "Granted", "Revoked")
	prep := lo.Ternary(granted, "to", "from")
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s %s role %s %s", verb, result.Role, prep, result.Account.Hex())))
	renderReceipt(r.out, result.ActionResult)
	return nil
}
