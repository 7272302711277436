package state

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"taskdeck/internal/view"
)

// CredentialStore persists the bearer token across process restarts.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Snapshot is the locally persisted selection and view criteria.
type Snapshot struct {
	SelectedProjectID int           `json:"selected_project_id"`
	Criteria          view.Criteria `json:"criteria"`
}

// SnapshotStore persists the selection and criteria across invocations.
type SnapshotStore interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
	Clear() error
}

// FileCredentialStore keeps the token as an oauth2.Token JSON file with
// mode 0600.
type FileCredentialStore struct {
	Path string
}

// Load implements CredentialStore.
func (f *FileCredentialStore) Load() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", errors.New("empty access token")
	}
	return tok.AccessToken, nil
}

// Save implements CredentialStore.
func (f *FileCredentialStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0600)
}

// Clear implements CredentialStore.
func (f *FileCredentialStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// FileSnapshotStore keeps the snapshot as a JSON file.
type FileSnapshotStore struct {
	Path string
}

// Load implements SnapshotStore.
func (f *FileSnapshotStore) Load() (Snapshot, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return Snapshot{}, err
	}
	sn := Snapshot{Criteria: view.DefaultCriteria()}
	if err := json.Unmarshal(data, &sn); err != nil {
		return Snapshot{}, err
	}
	if sn.Criteria.Filter == "" {
		sn.Criteria.Filter = view.FilterAll
	}
	if sn.Criteria.Sort == "" {
		sn.Criteria.Sort = view.SortNewest
	}
	return sn, nil
}

// Save implements SnapshotStore.
func (f *FileSnapshotStore) Save(sn Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sn, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0600)
}

// Clear implements SnapshotStore.
func (f *FileSnapshotStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
