// Package readiness gates startup on external dependencies. Each probe
// retries with capped exponential backoff until the dependency accepts a
// connection or the context deadline expires; expiry surfaces the last probe
// failure so a stuck dependency is diagnosable instead of a silent hang.
package readiness

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	initialBackoff = 250 * time.Millisecond
	maxBackoff     = 5 * time.Second
	dialTimeout    = 800 * time.Millisecond
)

// retry runs probe until it succeeds or ctx expires. Every attempt must
// release whatever it opened before the next one starts.
func retry(ctx context.Context, target string, probe func(context.Context) error) error {
	var last error
	backoff := initialBackoff

	for {
		if err := probe(ctx); err == nil {
			return nil
		} else {
			last = err
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait %s: %w (last=%v)", target, ctx.Err(), last)
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// WaitTCP blocks until a TCP connection to addr succeeds.
func WaitTCP(ctx context.Context, addr string) error {
	return retry(ctx, "tcp "+addr, func(ctx context.Context) error {
		d := net.Dialer{Timeout: dialTimeout}
		c, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return err
		}
		_ = c.Close()
		return nil
	})
}

// WaitPostgres blocks until the database answers a ping. Each attempt opens
// and closes its own handle so failed probes leave nothing behind.
func WaitPostgres(ctx context.Context, dsn string) error {
	return retry(ctx, "postgres", func(ctx context.Context) error {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return err
		}
		err = db.PingContext(ctx)
		_ = db.Close()
		return err
	})
}

// WaitRedis blocks until redis answers a ping.
func WaitRedis(ctx context.Context, addr string) error {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	defer func() { _ = rdb.Close() }()

	return retry(ctx, "redis "+addr, func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
}

// WaitRabbit blocks until the AMQP broker accepts a connection and channel.
func WaitRabbit(ctx context.Context, amqpURL string) error {
	return retry(ctx, "amqp", func(ctx context.Context) error {
		conn, err := amqp.Dial(amqpURL)
		if err != nil {
			return err
		}
		ch, err := conn.Channel()
		if err != nil {
			_ = conn.Close()
			return err
		}
		_ = ch.Close()
		_ = conn.Close()
		return nil
	})
}
