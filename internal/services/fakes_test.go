package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/resumecraft/internal/auth"
	"github.com/yoockh/resumecraft/internal/mailer"
)

type fakeLLM struct {
	answer string
	err    error
	calls  int
}

func (f *fakeLLM) Generate(context.Context, string) (string, error) {
	f.calls++
	return f.answer, f.err
}

func (f *fakeLLM) Close() error { return nil }

type fakeExporter struct {
	html string
	err  error
}

func (f *fakeExporter) Export(_ context.Context, html string) ([]byte, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (f *fakeMailer) Send(_ context.Context, m mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeMailer) messages() []mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mailer.Message(nil), f.sent...)
}

type fakeIdentityProvider struct {
	tokens map[string]auth.ExternalIdentity
}

func (f *fakeIdentityProvider) Verify(_ context.Context, token string) (auth.ExternalIdentity, error) {
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	return auth.ExternalIdentity{}, errors.New("bad token")
}

type fakeUploader struct {
	name string
	body string
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(r)
	f.name, f.body = objectName, string(b)
	return "gs://bucket/" + objectName, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func tokenFromBody(body string) string {
	const marker = "token="
	i := strings.Index(body, marker)
	if i < 0 {
		return ""
	}
	return body[i+len(marker):]
}
