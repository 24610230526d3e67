package command

import "context"

type Client interface {
	HandleUpdates(ctx context.Context) error
}
