package repositories

import (
	"errors"

	"mural_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

const (
	CommentOrderRecent = "recentes"
	CommentOrderOldest = "antigos"
)

type CommentRepository interface {
	Create(db *gorm.DB, comment *models.Comment) error
	FindByID(db *gorm.DB, id string) (*models.Comment, error)
	// FindIncludingDeleted нужен, чтобы отличить "не найден" от "уже удален"
	FindIncludingDeleted(db *gorm.DB, id string) (*models.Comment, error)
	ListByPost(db *gorm.DB, postID, order string, page Page) ([]models.Comment, int64, error)
	ListByUser(db *gorm.DB, userID string, page Page) ([]models.Comment, int64, error)
	CountByPost(db *gorm.DB, postID string) (int64, error)
	UpdateText(db *gorm.DB, id, text string) error
	SetApproved(db *gorm.DB, id string, approved bool) error
	MarkReported(db *gorm.DB, id string) error
	SoftDelete(db *gorm.DB, id string) error
}

type CommentRepositoryImpl struct{}

func NewCommentRepository() CommentRepository {
	return &CommentRepositoryImpl{}
}

func (r *CommentRepositoryImpl) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *CommentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := db.Preload("Author").First(&comment, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) FindIncludingDeleted(db *gorm.DB, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := db.Unscoped().First(&comment, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) ListByPost(db *gorm.DB, postID, order string, page Page) ([]models.Comment, int64, error) {
	query := db.Model(&models.Comment{}).Where("postagem_id = ? AND aprovado = ?", postID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "criado_em DESC"
	if order == CommentOrderOldest {
		direction = "criado_em ASC"
	}

	var comments []models.Comment
	err := page.Apply(query).Preload("Author").Order(direction).Find(&comments).Error
	return comments, total, err
}

func (r *CommentRepositoryImpl) ListByUser(db *gorm.DB, userID string, page Page) ([]models.Comment, int64, error) {
	query := db.Model(&models.Comment{}).Where("usuario_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := page.Apply(query).Preload("Author").Order("criado_em DESC").Find(&comments).Error
	return comments, total, err
}

func (r *CommentRepositoryImpl) CountByPost(db *gorm.DB, postID string) (int64, error) {
	var count int64
	err := db.Model(&models.Comment{}).
		Where("postagem_id = ? AND aprovado = ?", postID, true).
		Count(&count).Error
	return count, err
}

func (r *CommentRepositoryImpl) UpdateText(db *gorm.DB, id, text string) error {
	return r.update(db, id, map[string]interface{}{"texto": text})
}

func (r *CommentRepositoryImpl) SetApproved(db *gorm.DB, id string, approved bool) error {
	return r.update(db, id, map[string]interface{}{"aprovado": approved})
}

func (r *CommentRepositoryImpl) MarkReported(db *gorm.DB, id string) error {
	return r.update(db, id, map[string]interface{}{"denunciado": true})
}

func (r *CommentRepositoryImpl) SoftDelete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepositoryImpl) update(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.Comment{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
