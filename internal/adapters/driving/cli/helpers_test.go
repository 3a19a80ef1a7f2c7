package cli

import (
	"context"
	"fmt"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driving"
	"github.com/clauseworks/verdict-cli/internal/fetch"

	configfile "github.com/clauseworks/verdict-cli/internal/adapters/driven/config/file"
)

// fakeIngestor returns a canned result, echoing the document id it was
// handed.
type fakeIngestor struct {
	result   driving.IngestResult
	lastID   string
	lastType string
	calls    int
}

func (f *fakeIngestor) Ingest(_ context.Context, documentID string, _ []byte, fileType string) driving.IngestResult {
	f.calls++
	f.lastID = documentID
	f.lastType = fileType
	r := f.result
	r.DocumentID = documentID
	return r
}

type fakeAnswerer struct {
	result       driving.AnswerResult
	err          error
	summary      string
	lastQuestion string
	lastDocID    string
	lastTopK     int
}

func (f *fakeAnswerer) Answer(_ context.Context, question, documentID string, topK int) (driving.AnswerResult, error) {
	f.lastQuestion = question
	f.lastDocID = documentID
	f.lastTopK = topK
	return f.result, f.err
}

func (f *fakeAnswerer) Summarise(_ context.Context, _ string, _ int) string {
	return f.summary
}

// statusUpdate captures one UpdateStatus call.
type statusUpdate struct {
	ID      string
	Status  domain.DocumentStatus
	Content string
}

type fakeDocStore struct {
	saved   []domain.Document
	updates []statusUpdate
	chunks  []domain.Chunk
	docs    map[string]domain.Document
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{docs: map[string]domain.Document{}}
}

func (f *fakeDocStore) Save(_ context.Context, doc domain.Document) error {
	f.saved = append(f.saved, doc)
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocStore) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, content string) error {
	f.updates = append(f.updates, statusUpdate{ID: id, Status: status, Content: content})
	doc, ok := f.docs[id]
	if !ok {
		return fmt.Errorf("document %s not found", id)
	}
	doc.Status = status
	doc.Content = content
	f.docs[id] = doc
	return nil
}

func (f *fakeDocStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	f.chunks = append(f.chunks, chunks...)
	return nil
}

func (f *fakeDocStore) Get(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (f *fakeDocStore) List(_ context.Context) ([]domain.Document, error) {
	out := make([]domain.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		out = append(out, doc)
	}
	return out, nil
}

type fakeQueryStore struct {
	saved   []driven.QueryRecord
	saveErr error
}

func (f *fakeQueryStore) Save(_ context.Context, rec driven.QueryRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeQueryStore) List(_ context.Context) ([]driven.QueryRecord, error) {
	return f.saved, nil
}

// testServices bundles the fakes wired in by setupTestServices.
type testServices struct {
	ingestor   *fakeIngestor
	answerer   *fakeAnswerer
	docStore   *fakeDocStore
	queryStore *fakeQueryStore
}

// setupTestServices swaps the package-level services for fakes so the
// commands run without touching the network or disk. The returned
// cleanup restores the previous wiring and resets the flag state.
func setupTestServices() (*testServices, func()) {
	prevCfg := cfg
	prevIngestor := ingestor
	prevAnswerer := answerer
	prevDocStore := docStore
	prevQueryStore := queryStore
	prevDownloader := downloader
	prevReady := servicesReady

	svcs := &testServices{
		ingestor:   &fakeIngestor{result: driving.IngestResult{Success: true}},
		answerer:   &fakeAnswerer{},
		docStore:   newFakeDocStore(),
		queryStore: &fakeQueryStore{},
	}

	cfg = configfile.DefaultConfig()
	ingestor = svcs.ingestor
	answerer = svcs.answerer
	docStore = svcs.docStore
	queryStore = svcs.queryStore
	downloader = fetch.New(nil)
	servicesReady = true

	return svcs, func() {
		cfg = prevCfg
		ingestor = prevIngestor
		answerer = prevAnswerer
		docStore = prevDocStore
		queryStore = prevQueryStore
		downloader = prevDownloader
		servicesReady = prevReady

		ingestURL = ""
		ingestSummary = false
		askDocument = ""
		askTopK = 0
		askJSON = false
	}
}
