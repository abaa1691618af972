package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

func requireAppError(t *testing.T, err error, status int) *utils.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected *utils.AppError, got %T: %v", err, err)
	require.Equal(t, status, appErr.StatusCode, appErr.Message)
	return appErr
}
