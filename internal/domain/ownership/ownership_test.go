package ownership

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/khoahotran/devlink/pkg/apperror"
)

func Test_Permit(t *testing.T) {
	owner := uuid.New()

	assert.True(t, Permit(owner, owner))
	assert.False(t, Permit(owner, uuid.New()))
}

func Test_Check_DenyIsForbidden(t *testing.T) {
	err := Check(uuid.New(), uuid.New(), "post")

	assert.ErrorIs(t, err, apperror.ErrPermission)
}

func Test_Check_OwnerPasses(t *testing.T) {
	owner := uuid.New()

	assert.NoError(t, Check(owner, owner, "post"))
}
