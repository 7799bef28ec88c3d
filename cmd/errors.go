package cmd

import (
	"errors"
	"fmt"
	"strings"

	"getsupabase/restclient"
)

const (
	invalidTableHint = "check that the table exists in the public schema and is spelled correctly"
	permissionHint   = "the current credentials cannot read this table; use --key with a service key or --email/--password for an admin account"
)

// isInvalidTableError checks the error chain for a missing table.
func isInvalidTableError(err error) bool {
	if err == nil {
		return false
	}
	if restclient.IsNotFoundError(err) {
		return true
	}
	patterns := []string{
		"could not find the table",
		"does not exist",
		"invalid table name",
		"empty table name",
	}
	return matchChain(err, patterns)
}

// isPermissionError checks the error chain for a refused read.
func isPermissionError(err error) bool {
	if err == nil {
		return false
	}
	if restclient.IsPermissionError(err) {
		return true
	}
	patterns := []string{
		"permission denied",
		"row-level security",
		"jwt expired",
	}
	return matchChain(err, patterns)
}

func matchChain(err error, patterns []string) bool {
	for err != nil {
		msg := strings.ToLower(err.Error())
		for _, pat := range patterns {
			if strings.Contains(msg, pat) {
				return true
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}

// tableHint returns advice for a failed table, or "".
func tableHint(err error) string {
	switch {
	case isInvalidTableError(err):
		return invalidTableHint
	case isPermissionError(err):
		return permissionHint
	}
	return ""
}

// withTableHint appends the hint for err, if any.
func withTableHint(err error) error {
	if hint := tableHint(err); hint != "" {
		return fmt.Errorf("%w.\n\n%s", err, hint)
	}
	return err
}
