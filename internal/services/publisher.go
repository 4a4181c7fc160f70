package services

// Publisher is the event-publishing side of the message broker client.
// Services treat a nil Publisher as "no broker configured".
type Publisher interface {
	Publish(exchange, routingKey string, body []byte) error
}
