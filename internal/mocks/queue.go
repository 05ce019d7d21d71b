package mocks

// MockPublisher is a mock implementation of the event Publisher
type MockPublisher struct {
	PublishedMessages map[string][][]byte
	PublishFunc       func(subject string, data []byte) error
	CloseFunc         func() error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		PublishedMessages: make(map[string][][]byte),
	}
}

func (m *MockPublisher) Publish(subject string, data []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(subject, data)
	}
	m.PublishedMessages[subject] = append(m.PublishedMessages[subject], data)
	return nil
}

func (m *MockPublisher) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// GetPublishedMessages returns all payloads published on a subject
func (m *MockPublisher) GetPublishedMessages(subject string) [][]byte {
	return m.PublishedMessages[subject]
}

// ClearMessages clears all published payloads
func (m *MockPublisher) ClearMessages() {
	m.PublishedMessages = make(map[string][][]byte)
}
