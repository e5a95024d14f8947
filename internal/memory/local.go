package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"
)

// LocalStore keeps memories in an embedded chromem-go vector database,
// one collection per account.
type LocalStore struct {
	db         *chromem.DB
	embed      chromem.EmbeddingFunc
	maxResults int
}

// NewLocalStore opens a persistent store at path, or an in-memory one when path is empty.
func NewLocalStore(path string, embed chromem.EmbeddingFunc) (*LocalStore, error) {
	db := chromem.NewDB()
	if path != "" {
		var err error
		db, err = chromem.NewPersistentDB(path, false)
		if err != nil {
			return nil, fmt.Errorf("open chromem db: %w", err)
		}
	}
	return &LocalStore{db: db, embed: embed, maxResults: defaultRecallLimit}, nil
}

// NewOpenAIEmbedder embeds through an OpenAI-compatible /embeddings endpoint.
func NewOpenAIEmbedder(baseURL, apiKey, model string) chromem.EmbeddingFunc {
	return chromem.NewEmbeddingFuncOpenAICompat(baseURL, apiKey, model, nil)
}

func (s *LocalStore) collection(userID string) (*chromem.Collection, error) {
	col, err := s.db.GetOrCreateCollection("user_"+userID, nil, s.embed)
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return col, nil
}

func (s *LocalStore) Add(ctx context.Context, userID, snippet string) (*Ack, error) {
	col, err := s.collection(userID)
	if err != nil {
		return nil, err
	}
	doc := chromem.Document{
		ID:      uuid.New().String(),
		Content: snippet,
		Metadata: map[string]string{
			"created_at": time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := col.AddDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("add document: %w", err)
	}
	return &Ack{ID: doc.ID, Status: "SUCCEEDED"}, nil
}

func (s *LocalStore) Search(ctx context.Context, userID, query string) ([]string, error) {
	col, err := s.collection(userID)
	if err != nil {
		return nil, err
	}
	// chromem 은 저장된 문서 수보다 큰 n 을 거부함
	n := min(s.maxResults, col.Count())
	if n == 0 {
		return []string{}, nil
	}
	results, err := col.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}
	memories := make([]string, 0, len(results))
	for _, r := range results {
		memories = append(memories, r.Content)
	}
	return memories, nil
}
