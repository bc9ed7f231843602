package permission

// Validator decides whether a permission key may be stored on a role.
type Validator interface {
	IsValid(key string) bool
}

// FirstInvalid returns the first key in keys that v does not recognize.
// The second return value is false when all keys are valid.
func FirstInvalid(v Validator, keys []string) (string, bool) {
	for _, key := range keys {
		if !v.IsValid(key) {
			return key, true
		}
	}

	return "", false
}
