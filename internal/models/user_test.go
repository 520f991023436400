package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserValidate(t *testing.T) {
	t.Run("defaults role to student", func(t *testing.T) {
		u := User{Name: "Amina", Email: "amina@example.org"}
		require.NoError(t, u.Validate())
		assert.Equal(t, RoleStudent, u.Role)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		assert.Error(t, (&User{Name: "A", Email: "a@b.c"}).Validate())
		assert.Error(t, (&User{Name: "Amina", Email: "not-an-email"}).Validate())
		assert.Error(t, (&User{Name: "Amina", Email: "a@b.c", Role: "principal"}).Validate())
	})
}
