package services

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/parking-permits/internal/lib/smtp"
	"github.com/magabrotheeeer/parking-permits/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func permitInfoBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.PermitInfo{
		Email:        "student@mcneese.edu",
		FullName:     "John Doe",
		PermitUID:    "PMT-A1B2C3D4",
		LicensePlate: "ABC123",
		ExpiryDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return body
}

func TestSenderService_SendInfoExpiringPermit(t *testing.T) {
	t.Run("success sends reminder with permit details", func(t *testing.T) {
		transport := new(MockTransport)
		client := new(MockSMTPClient)
		writer := new(MockSMTPWriter)
		svc := NewSenderService(newNoopLogger(), transport)

		var sent []byte
		transport.On("GetSMTPUser").Return("parking@mcneese.edu")
		transport.On("Connect").Return(client, nil).Once()
		client.On("Mail", "parking@mcneese.edu").Return(nil).Once()
		client.On("Rcpt", "student@mcneese.edu").Return(nil).Once()
		client.On("Data").Return(writer, nil).Once()
		writer.On("Write", mock.Anything).Run(func(args mock.Arguments) {
			sent = args.Get(0).([]byte)
		}).Return(100, nil).Once()
		writer.On("Close").Return(nil).Once()
		client.On("Quit").Return(nil).Once()
		client.On("Close").Return(nil).Once()

		err := svc.SendInfoExpiringPermit(permitInfoBody(t))
		require.NoError(t, err)

		msg := string(sent)
		assert.True(t, strings.Contains(msg, "PMT-A1B2C3D4"))
		assert.True(t, strings.Contains(msg, "ABC123"))
		assert.True(t, strings.Contains(msg, "September 1, 2026"))

		transport.AssertExpectations(t)
		client.AssertExpectations(t)
		writer.AssertExpectations(t)
	})

	t.Run("malformed message body", func(t *testing.T) {
		transport := new(MockTransport)
		svc := NewSenderService(newNoopLogger(), transport)

		err := svc.SendInfoExpiringPermit([]byte("{not json"))
		require.Error(t, err)
		transport.AssertNotCalled(t, "Connect")
	})

	t.Run("connect failure is returned for requeue", func(t *testing.T) {
		transport := new(MockTransport)
		svc := NewSenderService(newNoopLogger(), transport)

		transport.On("GetSMTPUser").Return("parking@mcneese.edu")
		transport.On("Connect").Return(nil, errors.New("dial failed")).Once()

		err := svc.SendInfoExpiringPermit(permitInfoBody(t))
		require.Error(t, err)
	})
}
