package clients

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valkey-io/valkey-go"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"
)

func TestIsConnectionError(t *testing.T) {
	t.Parallel()

	assert.False(t, isConnectionError(nil))
	assert.True(t, isConnectionError(errors.New("dial tcp: connection refused")))
	assert.True(t, isConnectionError(errors.New("unexpected EOF")))
	assert.False(t, isConnectionError(errors.New("WRONGTYPE Operation against a key")))
}

func TestGetOpenAIClient_RequiresKey(t *testing.T) {
	t.Parallel()

	_, err := GetOpenAIClient("")
	assert.Error(t, err)
}

func TestDoWithRetry(t *testing.T) {
	valkeyRetryDelay = time.Millisecond
	t.Cleanup(func() { valkeyRetryDelay = 250 * time.Millisecond })

	ctx := context.Background()

	t.Run("server error reply is not retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewClient(ctrl)
		client.EXPECT().
			Do(ctx, mock.Match("HGET", "terms", "1")).
			Return(mock.Result(mock.ValkeyError("WRONGTYPE Operation against a key"))).
			Times(1)

		vc := NewValkeyClient(client)
		err := vc.DoWithRetry(ctx, vc.B().Hget().Key("terms").Field("1").Build(), 3).Error()
		_, isReply := valkey.IsValkeyErr(err)
		assert.True(t, isReply)
	})

	t.Run("nil reply is not retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewClient(ctrl)
		client.EXPECT().
			Do(ctx, mock.Match("HGET", "terms", "2")).
			Return(mock.Result(mock.ValkeyNil())).
			Times(1)

		vc := NewValkeyClient(client)
		err := vc.DoWithRetry(ctx, vc.B().Hget().Key("terms").Field("2").Build(), 3).Error()
		assert.True(t, valkey.IsValkeyNil(err))
	})

	t.Run("transport errors are retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewClient(ctrl)
		gomock.InOrder(
			client.EXPECT().
				Do(ctx, mock.Match("HGET", "terms", "3")).
				Return(mock.ErrorResult(errors.New("i/o timeout"))),
			client.EXPECT().
				Do(ctx, mock.Match("HGET", "terms", "3")).
				Return(mock.Result(mock.ValkeyString("[]"))),
		)

		vc := NewValkeyClient(client)
		got, err := vc.DoWithRetry(ctx, vc.B().Hget().Key("terms").Field("3").Build(), 3).ToString()
		assert.NoError(t, err)
		assert.Equal(t, "[]", got)
	})
}
