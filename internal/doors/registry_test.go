package doors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexa_access/internal/models"
)

func TestFind(t *testing.T) {
	d, ok := Find(1)
	require.True(t, ok)
	assert.Equal(t, "Main Entrance", d.Name)
	assert.Equal(t, AuthPassword, d.AuthType)
	assert.True(t, d.IsRegistrationPoint)

	_, ok = Find(42)
	assert.False(t, ok)
}

func TestMainEntranceAdmitsAllRoles(t *testing.T) {
	d, _ := Find(1)
	for _, role := range models.Roles() {
		assert.True(t, d.Allows(role), "main entrance should admit %s", role)
	}
}

func TestRoleAllowlists(t *testing.T) {
	securityOffice, _ := Find(3)
	assert.False(t, securityOffice.Allows(models.RoleVisitor))
	assert.False(t, securityOffice.Allows(models.RoleStaff))
	assert.True(t, securityOffice.Allows(models.RoleSecurity))

	staffLounge, _ := Find(2)
	assert.True(t, staffLounge.Allows(models.RoleStaff))
	assert.False(t, staffLounge.Allows(models.RoleVisitor))
}

func TestOnlyEntranceIsRegistrationPoint(t *testing.T) {
	for _, d := range All() {
		if d.ID == 1 {
			continue
		}
		assert.False(t, d.IsRegistrationPoint, "door %d", d.ID)
	}
}

func TestHighSecurityDoorsRequirePin(t *testing.T) {
	for _, id := range []int64{3, 5, 6} {
		d, ok := Find(id)
		require.True(t, ok)
		assert.Equal(t, AuthPin, d.AuthType, "door %d", id)
	}
}
