package auth

import (
	"slices"

	"github.com/peopledesk/peopledesk/internal/permission"
)

// Granted reports whether a caller holding granted may use required.
// A set containing "*" or "*:*" grants everything. No other pattern is a wildcard.
func Granted(granted []string, required string) bool {
	for _, p := range granted {
		if p == required || isWildcard(p) {
			return true
		}
	}

	return false
}

// GrantedAny reports whether at least one of required is granted.
// An empty required list is never satisfied.
func GrantedAny(granted, required []string) bool {
	return slices.ContainsFunc(required, func(r string) bool {
		return Granted(granted, r)
	})
}

// GrantedAll reports whether every key of required is granted.
func GrantedAll(granted, required []string) bool {
	for _, r := range required {
		if !Granted(granted, r) {
			return false
		}
	}

	return true
}

func isWildcard(key string) bool {
	return key == permission.Wildcard || key == permission.WildcardScoped
}
