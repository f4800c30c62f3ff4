package services

import (
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

var (
	NatsConn *nats.Conn
	oneNats  sync.Once
)

func ConnectNats(url string) (*nats.Conn, error) {
	var err error
	oneNats.Do(func() {
		NatsConn, err = nats.Connect(url,
			nats.Name("fraudrisk"),
			nats.Timeout(2*time.Second),
			nats.MaxReconnects(-1),
		)
	})
	return NatsConn, err
}

// CloseNats drains pending alerts before closing the connection.
func CloseNats() {
	if NatsConn == nil {
		return
	}
	if err := NatsConn.Drain(); err != nil {
		NatsConn.Close()
	}
}
