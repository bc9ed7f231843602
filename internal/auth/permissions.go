package auth

import "fmt"

// CheckRequired returns an error naming the first key that the catalog does not define.
func (s *Service) CheckRequired(keys ...string) error {
	for _, key := range keys {
		if !s.catalog.IsValid(key) {
			return fmt.Errorf("%w: %q", ErrUnknownPermission, key)
		}
	}

	return nil
}

// mustKnow panics when a route is registered with an unknown permission,
// so typos fail at startup instead of denying every request.
func (s *Service) mustKnow(keys ...string) {
	if err := s.CheckRequired(keys...); err != nil {
		panic(err)
	}
}
