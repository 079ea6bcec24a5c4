package outbox

import "time"

// Message represents a message in the transactional outbox.
type Message struct {
	ID           int64     `json:"id"`
	QueueName    string    `json:"queueName"`
	ExchangeName string    `json:"exchangeName"`
	RoutingKey   string    `json:"routingKey"`
	Payload      []byte    `json:"payload"`
	ContentType  string    `json:"contentType"`
	RetryCount   int       `json:"retryCount"`
	MaxRetries   int       `json:"maxRetries"`
	LastError    string    `json:"lastError"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	NextRetryAt  time.Time `json:"nextRetryAt"`
}
