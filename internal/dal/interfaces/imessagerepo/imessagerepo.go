package imessagerepo

import (
	"context"

	"github.com/chocobean/storefront/internal/service/models/message"
)

// Repository is the persistence boundary for inbox messages.
type Repository interface {
	Insert(ctx context.Context, m message.Message) (message.Message, error)
	QueryByUser(ctx context.Context, userId int64) ([]message.Message, error)
	QueryAdmin(ctx context.Context) ([]message.Message, error)
	MarkRead(ctx context.Context, id int64) (bool, error)
}
