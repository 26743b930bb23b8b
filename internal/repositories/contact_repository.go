package repositories

import (
	"errors"

	"gorm.io/gorm"

	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
)

var ErrContactNotFound = errors.New("contact not found")

// ContactSortFields is the closed sort-key set for contact listings.
var ContactSortFields = map[string]string{
	"newest": "created_at DESC",
	"oldest": "created_at ASC",
}

type ContactRepository interface {
	Create(contact *models.Contact) error
	FindByID(id string) (*models.Contact, error)
	Search(pred query.Predicate, order string, pg query.Page) ([]models.Contact, int64, error)
	UpdateStatus(id string, status models.ContactStatus) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

func (r *contactRepository) FindByID(id string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) Search(pred query.Predicate, order string, pg query.Page) ([]models.Contact, int64, error) {
	var total int64
	if err := pred.Apply(r.db.Model(&models.Contact{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contacts []models.Contact
	err := pred.Apply(r.db.Model(&models.Contact{})).
		Order(order).
		Scopes(pg.Scope).
		Find(&contacts).Error

	return contacts, total, err
}

func (r *contactRepository) UpdateStatus(id string, status models.ContactStatus) error {
	result := r.db.Model(&models.Contact{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}
