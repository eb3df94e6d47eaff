package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "chaines_youtube_id_key"}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert chaine: %w", dup)),
		"wrapped constraint errors must still classify")

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}

func TestPlaceholderIDShape(t *testing.T) {
	a := placeholderID()
	b := placeholderID()

	assert.True(t, strings.HasPrefix(a, "temp_"))
	assert.NotEqual(t, a, b, "placeholder identifiers must not collide")
}
