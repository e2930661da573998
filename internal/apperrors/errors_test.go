package apperrors_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tamarandofir/travelsync_backend/internal/apperrors"
)

func TestConstructorsCarryStatusAndSentinel(t *testing.T) {
	cases := []struct {
		name     string
		err      *apperrors.AppError
		code     int
		sentinel error
	}{
		{"bad request", apperrors.NewBadRequestError("bad"), http.StatusBadRequest, apperrors.ErrValidation},
		{"unauthorized", apperrors.NewUnauthorizedError("no"), http.StatusUnauthorized, apperrors.ErrUnauthorized},
		{"forbidden", apperrors.NewForbiddenError("own"), http.StatusForbidden, apperrors.ErrForbidden},
		{"not found", apperrors.NewNotFoundError("gone"), http.StatusNotFound, apperrors.ErrNotFound},
		{"conflict", apperrors.NewConflictError("dupe"), http.StatusConflict, apperrors.ErrDuplicate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.code, tc.err.Code)
			require.ErrorIs(t, tc.err, tc.sentinel)
		})
	}
}

// AppError serializes as the {error: message} payload handlers return, with
// the status code kept out of the body.
func TestAppErrorSerializesAsErrorPayload(t *testing.T) {
	body, err := json.Marshal(apperrors.NewNotFoundError("Not found"))
	require.NoError(t, err)
	require.JSONEq(t, `{"error":"Not found"}`, string(body))
}
