// Package access maps caller-facing role labels to the permission sets the
// cluster API understands. The table is data, not branching logic, so new
// roles are a one-line change.
package access

import (
	"fmt"
	"sort"
	"strings"
)

// Permission tokens accepted by the cluster for admin accounts.
const (
	Read      = "read"
	Reporting = "reporting"
	Volumes   = "volumes"
	Nodes     = "nodes"
	Accounts  = "accounts"
	Drives    = "drives"
)

// Vocabulary is the full set of valid permission tokens.
var Vocabulary = []string{Read, Reporting, Volumes, Nodes, Accounts, Drives}

var roleTable = map[string][]string{
	"administrator":   {Reporting, Volumes, Nodes, Accounts, Drives},
	"system engineer": {Reporting, Volumes},
}

// defaultAccess is what unknown (and empty) roles resolve to. This is a
// deliberately conservative operations set, not a read-only one.
var defaultAccess = []string{Nodes, Accounts, Drives}

// Resolve returns the permission set for a role label. Total over all
// strings: unknown roles fall back to the default set.
func Resolve(role string) []string {
	if set, ok := roleTable[strings.ToLower(strings.TrimSpace(role))]; ok {
		return append([]string(nil), set...)
	}
	return append([]string(nil), defaultAccess...)
}

// Normalize lowercases and trims permission tokens and drops empties, so
// values coming from YAML compare cleanly against API responses.
func Normalize(perms []string) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks every token against the vocabulary.
func Validate(perms []string) error {
	for _, p := range Normalize(perms) {
		found := false
		for _, v := range Vocabulary {
			if p == v {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown permission %q (valid: %s)", p, strings.Join(Vocabulary, ", "))
		}
	}
	return nil
}

// Equal compares two permission sets by membership. Order and duplicates
// are irrelevant; the cluster returns sets, not sequences.
func Equal(a, b []string) bool {
	return key(a) == key(b)
}

func key(perms []string) string {
	set := make(map[string]struct{}, len(perms))
	for _, p := range Normalize(perms) {
		set[p] = struct{}{}
	}
	uniq := make([]string, 0, len(set))
	for p := range set {
		uniq = append(uniq, p)
	}
	sort.Strings(uniq)
	return strings.Join(uniq, ",")
}
