package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestTenantPatchApply(t *testing.T) {
	base := Tenant{
		ID:           7,
		FirstName:    "Juan",
		LastName:     "Dela Cruz",
		ContactNo:    "09170000001",
		EmailAddress: "juan@example.com",
		RentalStart:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		next, changed := TenantPatch{}.Apply(base)
		assert.Empty(t, changed)
		assert.Equal(t, base, next)
	})

	t.Run("changed fields are reported by column", func(t *testing.T) {
		patch := TenantPatch{
			FirstName:  strptr("Pedro"),
			RoomNumber: strptr("201"),
		}
		next, changed := patch.Apply(base)
		assert.ElementsMatch(t, []string{"first_name", "room_number"}, changed)
		assert.Equal(t, "Pedro", next.FirstName)
		assert.Equal(t, "201", *next.RoomNumber)
		// untouched fields carry over
		assert.Equal(t, base.EmailAddress, next.EmailAddress)
	})

	t.Run("same value does not count as a change", func(t *testing.T) {
		patch := TenantPatch{FirstName: strptr("Juan")}
		next, changed := patch.Apply(base)
		assert.Empty(t, changed)
		assert.Equal(t, base, next)
	})

	t.Run("rental_start compares by instant", func(t *testing.T) {
		same := base.RentalStart
		_, changed := TenantPatch{RentalStart: &same}.Apply(base)
		assert.Empty(t, changed)

		later := base.RentalStart.AddDate(0, 1, 0)
		next, changed := TenantPatch{RentalStart: &later}.Apply(base)
		assert.Equal(t, []string{"rental_start"}, changed)
		assert.True(t, next.RentalStart.Equal(later))
	})
}

func TestTenantHasAccount(t *testing.T) {
	var tenant Tenant
	assert.False(t, tenant.HasAccount())

	tenant.Username = strptr("jdoe")
	assert.False(t, tenant.HasAccount())

	tenant.PasswordHash = strptr("$argon2id$...")
	assert.True(t, tenant.HasAccount())
}
