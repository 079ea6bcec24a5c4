package messagesvc

import (
	"context"
	"time"

	"github.com/chocobean/storefront/internal/dal/interfaces/imessagerepo"
	"github.com/chocobean/storefront/internal/service/models/message"
)

// MessageService covers the user-to-admin inbox.
type MessageService struct {
	messages imessagerepo.Repository
}

// option is a function that configures the MessageService.
type option func(*MessageService)

// MustNewMessageService creates a new MessageService.
func MustNewMessageService(opts ...option) *MessageService {
	s := &MessageService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.messages == nil {
		panic("messagesvc: missing message repository")
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithMessageRepository(messages imessagerepo.Repository) option {
	return func(s *MessageService) {
		s.messages = messages
	}
}

// Send stores a new message. The sender id comes from the verified token,
// never from the request body. A nil recipient addresses the admin inbox.
func (s *MessageService) Send(ctx context.Context, fromUserID int64, toUserID *int64, subject, content string) (message.Message, error) {
	return s.messages.Insert(ctx, message.Message{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Subject:    subject,
		Content:    content,
		IsRead:     false,
		CreatedAt:  time.Now().UTC(),
	})
}

// ForUser retrieves the messages a user has sent or received.
func (s *MessageService) ForUser(ctx context.Context, userID int64) ([]message.Message, error) {
	return s.messages.QueryByUser(ctx, userID)
}

// AdminInbox retrieves messages addressed to the administrators.
func (s *MessageService) AdminInbox(ctx context.Context) ([]message.Message, error) {
	return s.messages.QueryAdmin(ctx)
}

// MarkRead flags a message as read.
func (s *MessageService) MarkRead(ctx context.Context, id int64) error {
	ok, err := s.messages.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return message.ErrMessageNotFound
	}

	return nil
}
