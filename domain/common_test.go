package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestActorCanManage(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	ownerActor := Actor{ID: owner, Role: RoleUser}
	assert.True(t, ownerActor.CanManage(owner))
	assert.False(t, ownerActor.CanManage(other))

	admin := Actor{ID: uuid.New(), Role: RoleAdmin}
	assert.True(t, admin.CanManage(owner))
	assert.True(t, admin.IsAdmin())
}

func TestActorAnonymous(t *testing.T) {
	assert.True(t, Actor{}.IsAnonymous())
	assert.False(t, Actor{ID: uuid.New()}.IsAnonymous())

	anonymous := Actor{}
	assert.False(t, anonymous.CanManage(uuid.New()))
	assert.False(t, anonymous.IsAdmin())
}
