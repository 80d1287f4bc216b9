package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/pskpp/festival/brackets"
	"github.com/pskpp/festival/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ------------------------
// Fake Uploader
// ------------------------

type FakeUploader struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string

	UploadFunc func(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error)
}

func NewFakeUploader() *FakeUploader {
	return &FakeUploader{objects: map[string]string{}}
}

func (f *FakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.UploadFunc != nil {
		return f.UploadFunc(ctx, key, contentType, reader)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = string(data)
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *FakeUploader) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *FakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func (f *FakeUploader) Objects() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.objects))
	for k, v := range f.objects {
		out[k] = v
	}
	return out
}

func (f *FakeUploader) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

// ------------------------
// Fake Notifier
// ------------------------

type bracketNotification struct {
	EventID string
	Layout  *brackets.Layout
}

type FakeNotifier struct {
	mu    sync.Mutex
	calls []bracketNotification
}

func (f *FakeNotifier) NotifyBracketUpdated(eventID string, layout *brackets.Layout) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, bracketNotification{EventID: eventID, Layout: layout})
}

func (f *FakeNotifier) Calls() []bracketNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bracketNotification(nil), f.calls...)
}
