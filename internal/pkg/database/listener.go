package database

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// NotificationHandler receives one LISTEN/NOTIFY payload.
type NotificationHandler func(channel, payload string)

// ChangeListener holds one dedicated connection on a set of LISTEN channels
// and forwards every notification to a handler. It is the push half of the
// roster store: mutations made by other sessions arrive here.
type ChangeListener struct {
	db       *DB
	channels []string
	logger   *slog.Logger
}

func NewChangeListener(db *DB, channels []string, logger *slog.Logger) *ChangeListener {
	return &ChangeListener{
		db:       db,
		channels: channels,
		logger:   logger,
	}
}

// Run blocks on notifications until ctx is cancelled, reacquiring the
// connection with a short backoff whenever it drops. Intended to be run on
// its own goroutine.
func (l *ChangeListener) Run(ctx context.Context, handler NotificationHandler) {
	const retryDelay = 5 * time.Second

	for {
		if err := l.listen(ctx, handler); err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			l.logger.Warn("change listener dropped, retrying", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
}

func (l *ChangeListener) listen(ctx context.Context, handler NotificationHandler) error {
	conn, err := l.db.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	for _, channel := range l.channels {
		if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
			return err
		}
	}
	l.logger.Info("change listener started", "channels", l.channels)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		handler(notification.Channel, notification.Payload)
	}
}
