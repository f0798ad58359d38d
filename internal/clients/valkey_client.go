package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

type ValkeyOptions struct {
	Address  string
	Password string
	TLS      bool
}

var (
	valkeyInstance *ValkeyClient
	valkeyErr      error
	valkeyOnce     sync.Once
)

var valkeyRetryDelay = 250 * time.Millisecond

type ValkeyClient struct {
	Client valkey.Client
	opts   ValkeyOptions
	mu     sync.RWMutex
}

// NewValkeyClient wraps an already connected client. Reconnects are not
// possible without options, so connection errors are only retried.
func NewValkeyClient(client valkey.Client) *ValkeyClient {
	return &ValkeyClient{Client: client}
}

func InitValkey(opts ValkeyOptions) (*ValkeyClient, error) {
	valkeyOnce.Do(func() {
		client, err := connectValkey(opts)
		if err != nil {
			valkeyErr = err
			return
		}
		slog.Info("[ValkeyClient] Successfully connected to valkey", slog.String("address", opts.Address))
		valkeyInstance = &ValkeyClient{Client: client, opts: opts}
	})
	return valkeyInstance, valkeyErr
}

func connectValkey(opts ValkeyOptions) (valkey.Client, error) {
	clientOpts := valkey.ClientOption{
		InitAddress:      []string{opts.Address},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if opts.TLS {
		clientOpts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}
	return client, nil
}

func (vc *ValkeyClient) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	if vc.opts.Address == "" {
		return
	}
	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := connectValkey(vc.opts)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed", slog.String("error", err.Error()))
		return
	}
	vc.Client.Close()
	vc.Client = client
	slog.Info("[ValkeyClient] Successfully reconnected to valkey")
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.current().Close()
	}
}

func (vc *ValkeyClient) current() valkey.Client {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.Client
}

// B returns a command builder of the current connection.
func (vc *ValkeyClient) B() valkey.Builder {
	return vc.current().B()
}

// DoWithRetry retries transport failures only. A reply from the server,
// nil included, is returned as is.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	completed = completed.Pin()
	for i := 0; i < retries; i++ {
		result = vc.current().Do(ctx, completed)
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}
		if _, isReply := valkey.IsValkeyErr(err); isReply {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		if isConnectionError(err) {
			vc.recreateClient()
		}

		time.Sleep(valkeyRetryDelay)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
