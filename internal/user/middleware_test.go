package user

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIsValidUUID(t *testing.T) {
	id, err := uuid.NewV7()
	require.NoError(t, err)
	require.True(t, IsValidUUID(id.String()))

	require.False(t, IsValidUUID(""))
	require.False(t, IsValidUUID("not-a-uuid"))
	require.False(t, IsValidUUID("0190a1b2-0000-7000-8000-00000000000"))
}
