package tui

import "fmt"

// wrapErr prefixes an error with the operation that produced it.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
