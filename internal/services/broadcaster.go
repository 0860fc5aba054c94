package services

const (
	EventPostCreated    = "post_criado"
	EventCommentCreated = "comentario_criado"
)

// Broadcaster публикует события живой ленты. Реализуется ws.Hub.
type Broadcaster interface {
	Broadcast(eventType string, data interface{})
}

// NoopBroadcaster используется, когда лента отключена, и в тестах
type NoopBroadcaster struct{}

func (NoopBroadcaster) Broadcast(string, interface{}) {}
