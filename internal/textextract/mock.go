package textextract

import "context"

// MockExtractor returns canned text for tests, recording invocations.
type MockExtractor struct {
	Text  string
	Err   error
	Calls int
}

// NewMockExtractor returns a mock that yields text from every call.
func NewMockExtractor(text string) *MockExtractor {
	return &MockExtractor{Text: text}
}

// ExtractText implements Extractor.
func (m *MockExtractor) ExtractText(_ context.Context, _ []byte) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}
