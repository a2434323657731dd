package notificator

import "context"

type Notificator interface {
	Notify(ctx context.Context, err error, details string) error
}
