package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barstock/backend/internal/domain/shared"
)

func TestNewSupplier(t *testing.T) {
	t.Run("valid supplier", func(t *testing.T) {
		s, err := NewSupplier("Valley Distributors", "Sam Ortega", "orders@valleydist.com", "+1 555-201-3344")
		require.NoError(t, err)
		assert.Equal(t, "Valley Distributors", s.Name)
		assert.True(t, s.IsActive)
	})

	t.Run("contact fields optional", func(t *testing.T) {
		_, err := NewSupplier("Cash and Carry", "", "", "")
		assert.NoError(t, err)
	})

	t.Run("bad email rejected", func(t *testing.T) {
		_, err := NewSupplier("Valley Distributors", "", "not-an-email", "")
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "email", verr.Fields[0].Field)
	})

	t.Run("bad phone rejected", func(t *testing.T) {
		_, err := NewSupplier("Valley Distributors", "", "", "12")
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "phone", verr.Fields[0].Field)
	})
}

func TestSupplierUpdate(t *testing.T) {
	s, err := NewSupplier("Valley Distributors", "", "", "")
	require.NoError(t, err)

	require.NoError(t, s.Update("Valley Dist Co", "Sam Ortega", "sam@valleydist.com", "555-201-3344", "12 Dock Rd", "https://valleydist.com", "net 30"))
	assert.Equal(t, "Valley Dist Co", s.Name)
	assert.Equal(t, 2, s.Version)

	err = s.Update("", "", "", "", "", "", "")
	assert.Error(t, err)
}
