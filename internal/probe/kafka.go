package probe

import (
	"context"
	"errors"
	"net"
	"syscall"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Kafka probes a Kafka cluster by dialing the first configured broker and
// requesting cluster metadata.
type Kafka struct {
	name    string
	brokers []string
	dialer  *kafkago.Dialer
}

// NewKafka returns a probe for the broker set known to the gate as name.
func NewKafka(name string, brokers []string) *Kafka {
	return &Kafka{
		name:    name,
		brokers: brokers,
		dialer:  &kafkago.Dialer{Timeout: 5 * time.Second, DualStack: true},
	}
}

func (k *Kafka) Name() string { return k.name }

func (k *Kafka) Check(ctx context.Context) error {
	conn, err := k.dialer.DialContext(ctx, "tcp", k.brokers[0])
	if err != nil {
		return classifyKafka(err, true)
	}
	defer conn.Close()

	// Metadata answers only once the broker has joined the cluster, which
	// is the state migrations and consumers actually need.
	if _, err := conn.Brokers(); err != nil {
		return classifyKafka(err, false)
	}
	return nil
}

func classifyKafka(err error, dialing bool) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var kerr kafkago.Error
	if errors.As(err, &kerr) {
		if kerr.Temporary() {
			return &OperationalError{Cause: err}
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, syscall.ECONNREFUSED) {
		if dialing {
			return &DialError{Cause: err}
		}
		return &OperationalError{Cause: err}
	}
	if dialing {
		// The dialer reports refused connections as plain errors; a broker
		// that cannot be dialed at all is transient by definition here.
		return &DialError{Cause: err}
	}
	return err
}
