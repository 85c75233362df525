package probe

import (
	"context"
	"errors"
	"net"
	"syscall"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKafka_Nil(t *testing.T) {
	assert.NoError(t, classifyKafka(nil, true))
	assert.NoError(t, classifyKafka(nil, false))
}

func TestClassifyKafka_DialFailureIsTransient(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
	err := classifyKafka(opErr, true)

	require.Error(t, err)
	assert.True(t, IsTransient(err))

	var dialErr *DialError
	assert.ErrorAs(t, err, &dialErr)
}

func TestClassifyKafka_TemporaryBrokerErrorIsTransient(t *testing.T) {
	// The broker is reachable but the cluster is still electing leaders.
	err := classifyKafka(kafkago.LeaderNotAvailable, false)

	require.Error(t, err)
	assert.True(t, IsTransient(err))

	var opErr *OperationalError
	assert.ErrorAs(t, err, &opErr)
}

func TestClassifyKafka_NetErrorAfterDialIsOperational(t *testing.T) {
	opErr := &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}
	err := classifyKafka(opErr, false)

	require.Error(t, err)
	assert.True(t, IsTransient(err))

	var operational *OperationalError
	assert.ErrorAs(t, err, &operational)
}

func TestClassifyKafka_ContextErrorsAreFatal(t *testing.T) {
	assert.False(t, IsTransient(classifyKafka(context.Canceled, true)))
	assert.False(t, IsTransient(classifyKafka(context.DeadlineExceeded, false)))
}

func TestClassifyKafka_UnknownMetadataErrorIsFatal(t *testing.T) {
	boom := errors.New("boom")
	err := classifyKafka(boom, false)

	assert.False(t, IsTransient(err))
	assert.ErrorIs(t, err, boom)
}

func TestNewKafka_Name(t *testing.T) {
	k := NewKafka("kafka", []string{"localhost:9092"})
	assert.Equal(t, "kafka", k.Name())
}
