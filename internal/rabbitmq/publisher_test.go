package rabbitmq

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/parking-permits/internal/models"
)

func TestPublishAndConsumePermitInfo(t *testing.T) {
	if os.Getenv("SKIP_RABBITMQ_TESTS") == SkipRabbitMQTestsEnv {
		t.Skip("Skipping RabbitMQ tests in CI")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var amqpURI string
	var cleanup func()

	if testRabbitMQURL := os.Getenv("TEST_RABBITMQ_URL"); testRabbitMQURL != "" {
		amqpURI = testRabbitMQURL
		cleanup = func() {}
	} else {
		rmqContainer, containerCleanup := SetupRabbitMQContainer(ctx, t)
		cleanup = containerCleanup

		var err error
		amqpURI, err = GetAmqpURI(ctx, rmqContainer)
		require.NoError(t, err)
	}
	defer cleanup()

	conn, err := Connect(amqpURI, 3, time.Second)
	require.NoError(t, err)
	defer func() {
		if err := conn.Close(); err != nil {
			t.Errorf("failed to close connection: %v", err)
		}
	}()

	ch, err := SetupChannel(conn, GetNotificationQueues())
	require.NoError(t, err)
	defer func() {
		if err := ch.Close(); err != nil {
			t.Errorf("failed to close channel: %v", err)
		}
	}()

	expiry := time.Now().AddDate(0, 0, 1).UTC().Truncate(time.Second)
	want := models.PermitInfo{
		Email:        "reminder@mcneese.edu",
		FullName:     "John Doe",
		PermitUID:    "PMT-A1B2C3D4",
		LicensePlate: "ABC123",
		ExpiryDate:   expiry,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	var mu sync.Mutex
	var got models.PermitInfo

	handler := func(body []byte) error {
		mu.Lock()
		defer mu.Unlock()
		if err := json.Unmarshal(body, &got); err != nil {
			return err
		}
		wg.Done()
		return nil
	}

	err = ConsumerMessage(ctx, ch, "notifications.expiring", handler)
	require.NoError(t, err)

	err = PublishMessage(ch, "notifications", "expiring", want)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Timeout waiting for message to be processed")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want.Email, got.Email)
	assert.Equal(t, want.PermitUID, got.PermitUID)
	assert.Equal(t, want.LicensePlate, got.LicensePlate)
	assert.True(t, want.ExpiryDate.Equal(got.ExpiryDate))
}
