package leave

import (
	"errors"

	employeeerrors "github.com/felicienmukamba/gestion-des-ressources-humaines/internal/employee/errors"
	leaveerrors "github.com/felicienmukamba/gestion-des-ressources-humaines/internal/leave/errors"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgExclusionViolation  = "23P01"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return leaveerrors.ErrLeaveOverlap.WithCause(err)
		case pgForeignKeyViolation:
			return employeeerrors.ErrEmployeeNotFound.WithCause(err)
		case pgCheckViolation:
			return apperror.ErrInvalidInput.WithCause(err)
		}
	}

	return err
}
