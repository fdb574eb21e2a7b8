package publishing_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-publishing"
	"github.com/stretchr/testify/assert"
)

func TestActorContext(t *testing.T) {
	t.Run("round trips the actor", func(t *testing.T) {
		user := &publishing.User{Login: "maciek"}

		ctx := publishing.WithActor(context.Background(), user)

		actor, ok := publishing.ActorFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, user, actor)
	})

	t.Run("absent actor", func(t *testing.T) {
		actor, ok := publishing.ActorFromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, actor)
	})
}
