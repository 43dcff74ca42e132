package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/park-seva/helpcenter-service/internal/domain"
	"github.com/park-seva/helpcenter-service/internal/persistence"
)

// TranscriptKey is the stable snapshot key for the chat transcript.
const TranscriptKey = "helpcenter:chat_history"

// TranscriptRepository persists the ordered chat transcript as one snapshot.
type TranscriptRepository interface {
	Load(ctx context.Context) ([]domain.ChatMessage, error)
	Save(ctx context.Context, messages []domain.ChatMessage) error
	Clear(ctx context.Context) error
}

type snapshotTranscriptRepository struct {
	store persistence.SnapshotStore
}

// NewTranscriptRepository instantiates the repository over a snapshot store.
func NewTranscriptRepository(store persistence.SnapshotStore) TranscriptRepository {
	return &snapshotTranscriptRepository{store: store}
}

func (r *snapshotTranscriptRepository) Load(ctx context.Context) ([]domain.ChatMessage, error) {
	doc, err := r.store.Load(ctx, TranscriptKey)
	if err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return []domain.ChatMessage{}, nil
	}
	var messages []domain.ChatMessage
	if err := json.Unmarshal(doc, &messages); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return messages, nil
}

func (r *snapshotTranscriptRepository) Save(ctx context.Context, messages []domain.ChatMessage) error {
	doc, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	return r.store.Save(ctx, TranscriptKey, doc)
}

func (r *snapshotTranscriptRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, TranscriptKey)
}
