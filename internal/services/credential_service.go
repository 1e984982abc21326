package services

import (
	"errors"
	"fmt"

	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/models"
	"gorm.io/gorm"
)

// CredentialService handles exchange API credential storage
type CredentialService struct {
	db *gorm.DB
}

// NewCredentialService creates a new credential service
func NewCredentialService(db *gorm.DB) *CredentialService {
	return &CredentialService{db: db}
}

// Get returns the credential for an owner and exchange. Exactly one row per
// (owner, exchange) is expected; a missing row maps to ErrCredentialsNotFound.
func (s *CredentialService) Get(ownerID uint, exchange string) (*models.Credential, error) {
	var credential models.Credential
	err := s.db.Where("owner_id = ? AND exchange = ?", ownerID, exchange).
		First(&credential).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCredentialsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query credential: %w", err)
	}
	return &credential, nil
}

// Upsert creates or replaces the credential for (owner, exchange)
func (s *CredentialService) Upsert(cred *models.Credential) error {
	var existing models.Credential
	err := s.db.Where("owner_id = ? AND exchange = ?", cred.OwnerID, cred.Exchange).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(cred).Error
	}
	if err != nil {
		return fmt.Errorf("failed to query credential: %w", err)
	}

	existing.APIKey = cred.APIKey
	existing.APISecret = cred.APISecret
	if err := s.db.Save(&existing).Error; err != nil {
		return err
	}
	*cred = existing
	return nil
}
