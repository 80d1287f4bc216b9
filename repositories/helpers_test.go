package repositories

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubResult struct {
	rows int64
	err  error
}

func (r stubResult) LastInsertId() (int64, error) { return 0, errors.New("not supported") }
func (r stubResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckAffectedRows(t *testing.T) {
	assert.NoError(t, checkAffectedRows(stubResult{rows: 1}, ErrDocumentNotFound))
	assert.ErrorIs(t, checkAffectedRows(stubResult{rows: 0}, ErrDocumentNotFound), ErrDocumentNotFound)

	driverErr := errors.New("driver does not report rows")
	err := checkAffectedRows(stubResult{err: driverErr}, ErrDocumentNotFound)
	assert.ErrorIs(t, err, driverErr)
	assert.NotErrorIs(t, err, ErrDocumentNotFound)
}
