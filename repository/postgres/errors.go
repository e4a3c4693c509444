package postgres

import (
	stderrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nijaru/video-api/errors"
)

// handlePostgreSQLError converts PostgreSQL-specific errors to AppErrors.
func handlePostgreSQLError(err error, op string, id int64) *errors.AppError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !stderrors.As(err, &pgErr) {
		return errors.Internal(op, err, "Database operation failed")
	}

	switch pgErr.Code {
	case "23505": // UNIQUE_VIOLATION
		return errors.Conflict(op, err, fmt.Sprintf("Video with ID %d already exists", id))

	case "23514": // CHECK_VIOLATION
		return errors.InvalidInput(op, err, "'views' and 'likes' must be non-negative integers")

	case "23502": // NOT_NULL_VIOLATION
		return errors.InvalidInput(op, err, "Required field is missing")

	case "08000", "08003", "08006": // CONNECTION_EXCEPTION variants
		return errors.Internal(op, err, "Database connection error")

	case "53300": // TOO_MANY_CONNECTIONS
		return errors.Internal(op, err, "Database connection limit reached")

	default:
		return errors.Internal(op, err, "Database error (PostgreSQL code: "+pgErr.Code+")")
	}
}
