package server

import (
	"fmt"
	"testing"
	"time"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	// Create a channel to receive console messages
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan)

	// Test basic logging
	testMessage := "Test log message"
	logger.Printf("%s\n", testMessage)

	// Wait for message to be sent to channel
	select {
	case msg := <-messageChan:
		expectedMessage := testMessage + "\n"
		if msg.Message != expectedMessage {
			t.Errorf("Expected message '%s', got '%s'", expectedMessage, msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_MultipleMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-456", messageChan)

	// Send multiple messages
	messages := []string{"Message 1", "Message 2", "Message 3"}
	for _, msg := range messages {
		logger.Printf("%s\n", msg)
	}

	// Collect all messages
	var receivedMessages []string
	timeout := time.After(200 * time.Millisecond)
	for i := 0; i < len(messages); i++ {
		select {
		case msg := <-messageChan:
			receivedMessages = append(receivedMessages, msg.Message)
		case <-timeout:
			t.Fatalf("Timeout waiting for message %d", i+1)
		}
	}

	// Verify all messages were received
	if len(receivedMessages) != len(messages) {
		t.Errorf("Expected %d messages, got %d", len(messages), len(receivedMessages))
	}

	for i, expected := range messages {
		expectedWithNewline := expected + "\n"
		if i < len(receivedMessages) && receivedMessages[i] != expectedWithNewline {
			t.Errorf("Message %d: expected '%s', got '%s'", i, expectedWithNewline, receivedMessages[i])
		}
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	// Create a small channel that will fill up
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-789", messageChan)

	// Fill the channel
	logger.Printf("Message 1\n")

	// Wait for first message
	select {
	case <-messageChan:
		// Good, got the message
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for first message")
	}

	// Send more messages - these should not block even though channel is full
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	// Logger should not block or panic when channel is full
	// This test passes if it doesn't hang or crash
}

func TestWebLogger_NilChannel(t *testing.T) {
	// Test logger with nil channel (should not panic)
	logger := NewWebLogger("test-render-nil", nil)

	// This should not panic
	logger.Printf("Test message with nil channel\n")
}

func TestWebLogger_FormattedMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-format", messageChan)

	// Test formatted logging
	logger.Printf("Loading %s with %d spheres...\n", "marbles.json", 487)

	select {
	case msg := <-messageChan:
		expected := "Loading marbles.json with 487 spheres...\n"
		if msg.Message != expected {
			t.Errorf("Expected formatted message '%s', got '%s'", expected, msg.Message)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for formatted message")
	}
}

func TestWebLogger_TagsRenderID(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("render-abc", messageChan)
	logger.Printf("Worker %d finished\n", 3)

	msg := <-messageChan
	if msg.RenderID != "render-abc" {
		t.Errorf("Expected render ID 'render-abc', got '%s'", msg.RenderID)
	}
}

func TestServer_ConsoleHistory(t *testing.T) {
	s := NewServer(0, t.TempDir())
	first := s.newRenderLogger("first")
	second := s.newRenderLogger("second")

	first.Printf("one\n")
	second.Printf("two\n")
	first.Printf("three\n")

	all := s.consoleMessages("")
	if len(all) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(all))
	}

	filtered := s.consoleMessages("first")
	if len(filtered) != 2 {
		t.Fatalf("Expected 2 messages for 'first', got %d", len(filtered))
	}
	if filtered[0].Message != "one\n" || filtered[1].Message != "three\n" {
		t.Errorf("Unexpected messages: %+v", filtered)
	}
}

func TestServer_ConsoleHistoryBounded(t *testing.T) {
	s := NewServer(0, t.TempDir())
	logger := s.newRenderLogger("busy")

	// Nothing reads the history while logging
	for i := 0; i < consoleHistory+50; i++ {
		logger.Printf("line %d\n", i)
	}

	messages := s.consoleMessages("busy")
	if len(messages) != consoleHistory {
		t.Fatalf("Expected %d messages, got %d", consoleHistory, len(messages))
	}
	if messages[0].Message != "line 50\n" {
		t.Errorf("Oldest kept message = %q, want line 50", messages[0].Message)
	}
	if messages[len(messages)-1].Message != fmt.Sprintf("line %d\n", consoleHistory+49) {
		t.Errorf("Newest message = %q", messages[len(messages)-1].Message)
	}
}
