// Package permission holds the static permission catalog of PeopleDesk.
//
// Every permission the system understands is declared once at process start
// and never changes afterwards. A permission key is written as
// <resource>:<action> or <resource>.<action>; both spellings are valid and
// appear side by side in the default catalog.
//
// # Catalog
//
// A Catalog is an immutable, ordered set of Permission entries:
//   - ListAll returns the entries in declaration order
//   - Categories returns the distinct categories sorted lexicographically
//   - Lookup performs an exact-match lookup by key
//
// Default returns the process-wide HR catalog. Components receive the catalog
// by injection so tests can build a smaller one with New.
//
// # Validation
//
// The Validator interface is the only thing role storage depends on. A
// *Catalog implements it, and FirstInvalid reports the first key of a list
// that is not recognized.
//
// Example usage:
//
//	catalog := permission.Default()
//
//	if key, ok := permission.FirstInvalid(catalog, []string{"staff:read", "nope"}); ok {
//	    log.Warn().Str("permission", key).Msg("unknown permission")
//	}
package permission
