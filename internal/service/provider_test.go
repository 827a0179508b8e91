package service

import (
	"testing"

	"forum_server/internal/config"
	"forum_server/internal/dao/memory"
	"forum_server/internal/notify"

	"github.com/stretchr/testify/assert"
)

func TestNewServices(t *testing.T) {
	svc := NewServices(memory.NewRepositories(memory.NewStore()), memory.NewCache(), &notify.Recorder{}, config.ModerationConfig{})
	assert.NotNil(t, svc.Auth)
	assert.NotNil(t, svc.User)
	assert.NotNil(t, svc.Community)
	assert.NotNil(t, svc.Member)
	assert.NotNil(t, svc.Post)
	assert.NotNil(t, svc.Notification)
}
