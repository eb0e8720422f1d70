package repository

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeCheckViolation  = "23514"
	codeInvalidTextRepr = "22P02"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func pqCode(err error) pq.ErrorCode {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isInvalidID reports a malformed uuid literal; such ids cannot exist.
func isInvalidID(err error) bool {
	return pqCode(err) == codeInvalidTextRepr
}
