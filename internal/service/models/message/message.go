package message

import (
	"errors"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")

// Message is a note between a user and the store. A nil ToUserID means the
// message is addressed to the administrators' shared inbox. FromUserName and
// ToUserName are display projections filled in by joins.
type Message struct {
	ID           int64     `json:"messageId"`
	FromUserID   int64     `json:"fromUserId"`
	FromUserName string    `json:"fromUserName,omitempty"`
	ToUserID     *int64    `json:"toUserId"`
	ToUserName   string    `json:"toUserName,omitempty"`
	Subject      string    `json:"subject"`
	Content      string    `json:"content"`
	IsRead       bool      `json:"isRead"`
	CreatedAt    time.Time `json:"createdAt"`
}
