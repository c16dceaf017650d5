//go:build integration

package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zqp2013/blockly/internal/testutil"
	"github.com/zqp2013/blockly/pkg/slots"
)

func TestStoreAgainstRealRedis(t *testing.T) {
	ctx := context.Background()

	store, err := NewStore(testutil.RedisOptions(t), "integration")
	require.NoError(t, err)
	defer store.Close()

	ws, color, _, _ := intentWorkspace(t)
	require.NoError(t, store.SaveWorkspace(ctx, ws))

	loaded, err := store.LoadWorkspace(ctx)
	require.NoError(t, err)
	assert.Equal(t, ws.Records(), loaded.Records())

	sub, err := store.SubscribeRenames(ctx)
	require.NoError(t, err)
	defer sub.Close()

	res := slots.New().RenameDetailed(loaded, color, "Hue")
	require.NoError(t, store.PublishRename(ctx, NewRenameEvent(color.ID(), res)))

	select {
	case ev := <-sub.Events():
		assert.Equal(t, "Hue", ev.NewName)
		assert.Equal(t, 3, ev.Participants)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for rename event")
	}

	history, err := store.RenameHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Color", history[0].OldName)
}
