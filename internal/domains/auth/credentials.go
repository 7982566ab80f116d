package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// CredentialStore giữ bcrypt hash của danh sách user cấu hình sẵn.
// Plain passwords chỉ tồn tại lúc khởi tạo.
type CredentialStore struct {
	hashes map[string][]byte
	dummy  []byte
}

// NewCredentialStore hash từng password với cost cho trước
func NewCredentialStore(users map[string]string, cost int) (*CredentialStore, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	store := &CredentialStore{hashes: make(map[string][]byte, len(users))}
	for name, password := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", name, err)
		}
		store.hashes[name] = hash
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	store.dummy = dummy
	return store, nil
}

// Verify trả về ErrInvalidCredentials cho user không tồn tại hoặc sai password.
// User không tồn tại vẫn chạy một lần bcrypt compare.
func (s *CredentialStore) Verify(username, password string) error {
	hash, ok := s.hashes[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(s.dummy, []byte(password))
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Len - số user đã cấu hình
func (s *CredentialStore) Len() int {
	return len(s.hashes)
}
