package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	fileStorePerm = 0o600
	fileStoreDir  = 0o700
)

// fileStore keeps the session in a JSON document so it survives process restarts.
type fileStore struct {
	path string
	mu   sync.Mutex
}

type fileStoreDocument struct {
	Token    Token     `json:"token,omitempty"`
	Identity *Identity `json:"identity,omitempty"`
}

func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) Token(context.Context) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", err
	}
	return doc.Token, nil
}

func (s *fileStore) SetToken(_ context.Context, token Token) error {
	return s.update(func(doc *fileStoreDocument) {
		doc.Token = token
	})
}

func (s *fileStore) DeleteToken(context.Context) error {
	return s.update(func(doc *fileStoreDocument) {
		doc.Token = ""
	})
}

func (s *fileStore) Identity(context.Context) (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Identity, nil
}

func (s *fileStore) SetIdentity(_ context.Context, identity Identity) error {
	return s.update(func(doc *fileStoreDocument) {
		doc.Identity = &identity
	})
}

func (s *fileStore) DeleteIdentity(context.Context) error {
	return s.update(func(doc *fileStoreDocument) {
		doc.Identity = nil
	})
}

func (s *fileStore) update(change func(*fileStoreDocument)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	change(&doc)
	return s.write(doc)
}

func (s *fileStore) read() (fileStoreDocument, error) {
	var doc fileStoreDocument

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read session file: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}

	err = json.Unmarshal(data, &doc)
	if err != nil {
		return doc, fmt.Errorf("decode session file %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *fileStore) write(doc fileStoreDocument) error {
	if doc.Token == "" && doc.Identity == nil {
		err := os.Remove(s.path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove session file: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	dir := filepath.Dir(s.path)
	err = os.MkdirAll(dir, fileStoreDir)
	if err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create session temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(fileStorePerm)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write session temp file: %w", err)
	}

	err = os.Rename(tmp.Name(), s.path)
	if err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
