package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jhoicas/category-api/internal/domain"
	"github.com/jhoicas/category-api/internal/domain/entity"
)

// isInvalidTextRepresentation verifica si un error es un valor con formato inválido para su tipo (22P02).
func isInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02" // invalid_text_representation
	}
	return strings.Contains(err.Error(), "22P02")
}

// wrapErr agrega contexto a un error de pgx y traduce 22P02 a ErrMalformedReference.
func wrapErr(op string, err error) error {
	if isInvalidTextRepresentation(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrMalformedReference, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toPgUUID(id *entity.ID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func fromPgUUID(u pgtype.UUID) *entity.ID {
	if !u.Valid {
		return nil
	}
	id := uuid.UUID(u.Bytes)
	return &id
}
