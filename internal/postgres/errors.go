package postgres

import (
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopfront/shopfront-api/internal/apperr"
)

// SQLSTATE codes that map to client errors.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
	codeRaiseException      = "P0001"
)

// classify turns constraint violations into client-facing errors and wraps
// everything else with the function name.
func classify(fn string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", fn, err)
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return apperr.Wrap(apperr.KindConflict, "resource already exists", err)
	case codeForeignKeyViolation:
		return apperr.Wrap(apperr.KindInvalid, "referenced resource does not exist", err)
	case codeNotNullViolation, codeCheckViolation, codeInvalidText:
		return apperr.Wrap(apperr.KindInvalid, "invalid field value", err)
	case codeRaiseException:
		return apperr.Wrap(apperr.KindInvalid, pgErr.Message, err)
	}
	return fmt.Errorf("%s: %w", fn, err)
}
