package clients

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/template-service/pkg/apperror"
	"github.com/raywall/template-service/pkg/config"
)

type fakeClient struct {
	id int64
}

func countingFactory(calls *int64) Factory[*fakeClient] {
	return func(ctx context.Context) (*fakeClient, error) {
		n := atomic.AddInt64(calls, 1)
		return &fakeClient{id: n}, nil
	}
}

func TestHolder_InitializeIsIdempotent(t *testing.T) {
	var calls int64
	h := NewHolder("Fake", countingFactory(&calls))

	assert.False(t, h.Initialized())
	require.NoError(t, h.Initialize(context.Background()))
	require.NoError(t, h.Initialize(context.Background()))

	assert.True(t, h.Initialized())
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
	assert.Equal(t, "Fake", h.Name())
}

func TestHolder_ClientLazyInitialization(t *testing.T) {
	var calls int64
	h := NewHolder("Fake", countingFactory(&calls))

	c, err := h.Client(context.Background())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, int64(1), c.id)

	again, err := h.Client(context.Background())
	require.NoError(t, err)
	assert.Same(t, c, again)
}

func TestHolder_ConcurrentFirstCall(t *testing.T) {
	var calls int64
	h := NewHolder("Fake", countingFactory(&calls))

	var wg sync.WaitGroup
	results := make([]*fakeClient, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := h.Client(context.Background())
			assert.NoError(t, err)
			results[i] = c
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "apenas um cliente deve ser construído")
	for _, c := range results {
		assert.Same(t, results[0], c)
	}
}

func TestHolder_CloseThenReinitialize(t *testing.T) {
	var calls int64
	h := NewHolder("Fake", countingFactory(&calls))

	first, err := h.Client(context.Background())
	require.NoError(t, err)

	h.Close()
	h.Close() // idempotente
	assert.False(t, h.Initialized())

	second, err := h.Client(context.Background())
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestHolder_Reset(t *testing.T) {
	var calls int64
	h := NewHolder("Fake", countingFactory(&calls))

	require.NoError(t, h.Initialize(context.Background()))
	require.NoError(t, h.Reset(context.Background()))

	assert.True(t, h.Initialized())
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestHolder_FactoryFailure(t *testing.T) {
	cause := errors.New("no credentials")
	h := NewHolder("DynamoDB", func(ctx context.Context) (*fakeClient, error) {
		return nil, cause
	})

	c, err := h.Client(context.Background())
	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, apperror.IsInternal(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to create DynamoDB client", apperror.From(err).Detail)
	assert.False(t, h.Initialized())
}

func TestNewAWSHolders(t *testing.T) {
	settings := &config.Settings{
		AWS: config.AWSConf{
			Region:          "us-east-1",
			AccessKeyID:     "AKIAEXAMPLE",
			SecretAccessKey: "secret",
		},
		Clients: config.ClientsConf{DynamoDBMaxAttempts: 3, DynamoDBTimeout: time.Second, S3Timeout: time.Second},
	}

	t.Run("DynamoDB", func(t *testing.T) {
		h := NewDynamoDB(settings)
		client, err := h.Client(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, client)
		h.Close()
	})

	t.Run("S3", func(t *testing.T) {
		h := NewS3(settings)
		s3Clients, err := h.Client(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, s3Clients.Objects)
		assert.NotNil(t, s3Clients.Presigner)
	})
}

func TestWithTimeout(t *testing.T) {
	t.Run("Define prazo por tentativa", func(t *testing.T) {
		var opts awsconfig.LoadOptions
		require.NoError(t, withTimeout(2*time.Second)(&opts))

		client, ok := opts.HTTPClient.(*awshttp.BuildableClient)
		require.True(t, ok)
		assert.Equal(t, 2*time.Second, client.GetTimeout())
	})

	t.Run("Zero mantém o cliente do SDK", func(t *testing.T) {
		var opts awsconfig.LoadOptions
		require.NoError(t, withTimeout(0)(&opts))
		assert.Nil(t, opts.HTTPClient)
	})
}
