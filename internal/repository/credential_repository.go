package repository

import (
	"github.com/ankirsydii/Orderly/internal/models"

	"gorm.io/gorm"
)

type CredentialRepository interface {
	Create(credential *models.Credential) error
	GetByEmail(email string) (*models.Credential, error)
	GetByID(id string) (*models.Credential, error)
	UpdatePassword(id, passwordHash string) error
	Delete(id string) error
}

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Create(credential *models.Credential) error {
	return r.db.Create(credential).Error
}

func (r *credentialRepository) GetByEmail(email string) (*models.Credential, error) {
	var credential models.Credential
	err := r.db.First(&credential, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &credential, nil
}

func (r *credentialRepository) GetByID(id string) (*models.Credential, error) {
	var credential models.Credential
	err := r.db.First(&credential, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &credential, nil
}

func (r *credentialRepository) UpdatePassword(id, passwordHash string) error {
	return r.db.Model(&models.Credential{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// Delete is the compensating action for a failed registration: the
// credential goes away so no auth record survives without a profile.
func (r *credentialRepository) Delete(id string) error {
	return r.db.Delete(&models.Credential{}, "id = ?", id).Error
}
