// Package accounts implements the reconciliation of declared admin
// accounts against the cluster's actual state. Each account is converged
// with at most one mutating API call.
package accounts

import (
	"fmt"
	"strconv"

	"github.com/melih-ucgun/reef/internal/access"
	"github.com/melih-ucgun/reef/internal/core"
	"github.com/melih-ucgun/reef/internal/utils"
)

// Account states.
const (
	StatePresent = "present"
	StateAbsent  = "absent"
)

// Account user types.
const (
	TypeCluster = "cluster"
	TypeLdap    = "ldap"
)

// DesiredAccount is the declared state of one admin account. Built once
// per invocation and never mutated; the cluster is the sole source of
// truth for the current state.
type DesiredAccount struct {
	State    string // present or absent
	Name     string // used only at create time; the API cannot rename
	ID       *int64 // identity once the account exists; lookups match on this, never on name
	UserType string // cluster or ldap, required when creating
	Role     string // label resolved to a permission set by internal/access

	// Password applies to cluster-type accounts only. The API never returns
	// a comparable credential, so a supplied password always triggers an
	// update: applies with a password set are not idempotent.
	Password string

	Access []string // explicit permission set; wins over the role-derived one
	When   string   // optional condition evaluated against cluster facts
}

// Key identifies the account in messages and errors: the id when known,
// otherwise the name.
func (d *DesiredAccount) Key() string {
	if d.ID != nil {
		return strconv.FormatInt(*d.ID, 10)
	}
	return d.Name
}

// EffectiveAccess is the permission set the account should end up with:
// the explicit override when given, otherwise the role-derived set.
func (d *DesiredAccount) EffectiveAccess() []string {
	if len(d.Access) > 0 {
		return access.Normalize(d.Access)
	}
	return access.Resolve(d.Role)
}

// Validate rejects internally inconsistent desired state before any remote
// call is made. Creation fields for an id-addressed account that turns out
// to be missing are checked at decision time instead, once the lookup has
// established that a create is needed.
func (d *DesiredAccount) Validate() error {
	if !utils.IsOneOf(d.State, StatePresent, StateAbsent) {
		return core.Errorf(core.KindConfig, "validate account", d.Key(),
			"state must be %q or %q, got %q", StatePresent, StateAbsent, d.State)
	}
	if d.UserType != "" && !utils.IsOneOf(d.UserType, TypeCluster, TypeLdap) {
		return core.Errorf(core.KindConfig, "validate account", d.Key(),
			"user_type must be %q or %q, got %q", TypeCluster, TypeLdap, d.UserType)
	}
	if d.UserType == TypeLdap && d.Password != "" {
		return core.Errorf(core.KindConfig, "validate account", d.Key(),
			"ldap accounts authenticate against the directory and take no password")
	}
	if err := access.Validate(d.Access); err != nil {
		return core.Errorf(core.KindConfig, "validate account", d.Key(), "%v", err)
	}
	if d.State == StatePresent && d.ID == nil {
		// No id means this is definitely a create; creation fields must be
		// complete before we touch the cluster.
		return d.validateCreate()
	}
	return nil
}

func (d *DesiredAccount) validateCreate() error {
	if d.Name == "" {
		return core.Errorf(core.KindConfig, "validate account", d.Key(),
			"name is required to create an account")
	}
	if !utils.IsValidName(d.Name) {
		return core.Errorf(core.KindConfig, "validate account", d.Key(),
			"invalid account name %q", d.Name)
	}
	switch d.UserType {
	case TypeCluster:
		if d.Password == "" {
			return core.Errorf(core.KindConfig, "validate account", d.Key(),
				"cluster accounts require a password")
		}
	case TypeLdap:
		// no password by definition
	default:
		return core.Errorf(core.KindConfig, "validate account", d.Key(),
			"user_type is required to create an account")
	}
	return nil
}

// Decision is the single action the reconciler chose for one invocation.
type Decision int

const (
	NoOp Decision = iota
	CreateCluster
	CreateLdap
	Update
	Delete
)

func (d Decision) String() string {
	switch d {
	case NoOp:
		return "no-op"
	case CreateCluster:
		return "create cluster admin"
	case CreateLdap:
		return "create ldap admin"
	case Update:
		return "update admin"
	case Delete:
		return "delete admin"
	}
	return fmt.Sprintf("decision(%d)", int(d))
}
