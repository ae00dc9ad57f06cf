package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateAgreement reports whether err is the unique violation on the
// (user_id, terms_id) agreement index, i.e. a concurrent request created
// the row between our lookup and insert.
func IsDuplicateAgreement(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName == "uidx_user_terms_agreements"
	}
	return false
}
