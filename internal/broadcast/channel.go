package broadcast

// MessageBoxChannel is the channel chat messages are broadcast on.
const MessageBoxChannel = "message-box"

// Channel is a named topic subscribers attach to.
type Channel struct {
	Name string `json:"name"`
}

func NewChannel(name string) Channel {
	return Channel{Name: name}
}

func (c Channel) String() string {
	return c.Name
}
