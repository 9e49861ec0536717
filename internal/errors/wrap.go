package errors

import "fmt"

// Wrap adds context to errors at package boundaries.
// It returns nil if err is nil, so it can be used inline:
//
//	return errors.Wrap(err, "failed to load project")
//
// The result keeps the original chain, so errors.Is(err, errors.ErrDomain)
// still matches after wrapping.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message:
//
//	return errors.Wrapf(err, "track %s", id)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
