package services

// EventPublisher is the slice of the RabbitMQ client the services depend
// on, kept as an interface so tests can substitute a mock.
type EventPublisher interface {
	Publish(queue, routingKey string, body []byte) error
}
