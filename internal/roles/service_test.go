package roles

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tenuestore/tenue-backend/pkg/db/dbtest"
	"github.com/tenuestore/tenue-backend/pkg/db/models"
	"github.com/tenuestore/tenue-backend/pkg/enums"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
	"github.com/tenuestore/tenue-backend/pkg/logger"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t, &models.UserRole{})
	svc, err := NewService(NewRepository(conn), logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	require.NoError(t, err)
	return svc, conn
}

func TestRoleDefaultsToUser(t *testing.T) {
	svc, _ := newTestService(t)

	role, err := svc.RoleOf(context.Background(), "firebase-uid-1")
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleUser, role)
}

func TestSetKeepsOneRowPerUser(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, "uid-7", enums.UserRoleModerator)
	require.NoError(t, err)
	got, err := svc.Set(ctx, " uid-7 ", enums.UserRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, &RoleDTO{UserID: "uid-7", Role: enums.UserRoleAdmin}, got)

	var count int64
	require.NoError(t, conn.Model(&models.UserRole{}).Where("user_id = ?", "uid-7").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	dto, err := svc.Get(ctx, "uid-7")
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, dto.Role)
}

func TestSetValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, "uid-1", enums.UserRole("owner"))
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	_, err = svc.Set(ctx, "  ", enums.UserRoleAdmin)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	_, err = svc.RoleOf(ctx, "")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}
