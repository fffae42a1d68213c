package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttemptSubmittedEvent(t *testing.T) {
	event := NewAttemptSubmittedEvent(AttemptSubmittedEvent{AttemptID: 3, QuizID: 9, StudentID: "s1", Passed: true})

	assert.Equal(t, EventAttemptSubmitted, event.Type)
	assert.Equal(t, eventSource, event.Source)
	_, err := uuid.Parse(event.ID)
	assert.NoError(t, err)

	raw, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"attempt.submitted"`)
	assert.Contains(t, string(raw), `"student_id":"s1"`)
}

func TestMockEventPublisher(t *testing.T) {
	pub := NewMockEventPublisher(nil)
	ctx := context.Background()

	require.NoError(t, pub.Publish(ctx, NewQuizCreatedEvent(QuizCreatedEvent{QuizID: 1})))
	require.NoError(t, pub.Publish(ctx, NewQuestionsGeneratedEvent(QuestionsGeneratedEvent{BankID: 2})))

	assert.Len(t, pub.GetPublishedEvents(), 2)
	assert.Len(t, pub.EventsOfType(EventQuizCreated), 1)

	pub.ClearEvents()
	assert.Empty(t, pub.GetPublishedEvents())
}

func TestNopEventPublisher(t *testing.T) {
	pub := NewNopEventPublisher(nil)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		require.NoError(t, pub.Publish(ctx, NewQuizCreatedEvent(QuizCreatedEvent{QuizID: uint(i)})))
	}
	assert.NoError(t, pub.Close())

	var _ EventPublisher = pub
}
