package repositories

import (
	"errors"

	"mural_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPostNotFound = errors.New("post not found")

const (
	PostOrderRecent   = "recentes"
	PostOrderViews    = "visualizacoes"
	PostOrderComments = "comentarios"
)

// commentCountSQL считает только видимые комментарии
const commentCountSQL = "(SELECT COUNT(*) FROM comentarios c WHERE c.postagem_id = postagens.id AND c.deletado_em IS NULL AND c.aprovado = ?)"

type PostFilter struct {
	MediaType string
	Order     string
	UserID    string
	Page      Page
}

type PostRepository interface {
	Create(db *gorm.DB, post *models.Post) error
	// FindVisible - одобренный и не удаленный пост с автором
	FindVisible(db *gorm.DB, id string) (*models.Post, error)
	// FindByID игнорирует aprovado (для автора и модерации)
	FindByID(db *gorm.DB, id string) (*models.Post, error)
	List(db *gorm.DB, filter PostFilter) ([]models.Post, int64, error)
	CommentCounts(db *gorm.DB, postIDs []string) (map[string]int64, error)
	IncrementViews(db *gorm.DB, id string) error
	UpdateDescription(db *gorm.DB, id, description string) error
	// UpdateMediaURLs переписывает адреса после зеркалирования в удаленное хранилище. nil поля не трогает.
	UpdateMediaURLs(db *gorm.DB, id string, mediaURL, thumbnailURL *string) error
	SetApproved(db *gorm.DB, id string, approved bool) error
	SoftDelete(db *gorm.DB, id string) error
	// RegisterReport увеличивает счетчик жалоб и скрывает пост при достижении порога
	RegisterReport(db *gorm.DB, id string, hideThreshold int) (*models.Post, error)
}

type PostRepositoryImpl struct{}

func NewPostRepository() PostRepository {
	return &PostRepositoryImpl{}
}

func (r *PostRepositoryImpl) Create(db *gorm.DB, post *models.Post) error {
	return db.Create(post).Error
}

func (r *PostRepositoryImpl) FindVisible(db *gorm.DB, id string) (*models.Post, error) {
	var post models.Post
	err := db.Preload("Author").
		Where("id = ? AND aprovado = ?", id, true).
		First(&post).Error
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	return &post, nil
}

func (r *PostRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Post, error) {
	var post models.Post
	if err := db.Preload("Author").First(&post, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	return &post, nil
}

func (r *PostRepositoryImpl) List(db *gorm.DB, filter PostFilter) ([]models.Post, int64, error) {
	query := db.Model(&models.Post{}).Where("aprovado = ?", true)
	if filter.MediaType != "" {
		query = query.Where("tipo_midia = ?", filter.MediaType)
	}
	if filter.UserID != "" {
		query = query.Where("usuario_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Order {
	case PostOrderViews:
		query = query.Order("visualizacoes DESC").Order("criado_em DESC")
	case PostOrderComments:
		query = query.Order(clause.OrderBy{Expression: clause.Expr{SQL: commentCountSQL + " DESC", Vars: []interface{}{true}}}).
			Order("criado_em DESC")
	default:
		query = query.Order("criado_em DESC")
	}

	var posts []models.Post
	if err := filter.Page.Apply(query).Preload("Author").Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

type commentCountRow struct {
	PostID string `gorm:"column:postagem_id"`
	Total  int64  `gorm:"column:total"`
}

func (r *PostRepositoryImpl) CommentCounts(db *gorm.DB, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []commentCountRow
	err := db.Model(&models.Comment{}).
		Select("postagem_id, COUNT(*) AS total").
		Where("postagem_id IN ? AND aprovado = ?", postIDs, true).
		Group("postagem_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

func (r *PostRepositoryImpl) IncrementViews(db *gorm.DB, id string) error {
	return db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("visualizacoes", gorm.Expr("visualizacoes + 1")).Error
}

func (r *PostRepositoryImpl) UpdateDescription(db *gorm.DB, id, description string) error {
	return r.update(db, id, map[string]interface{}{"descricao": description})
}

func (r *PostRepositoryImpl) UpdateMediaURLs(db *gorm.DB, id string, mediaURL, thumbnailURL *string) error {
	fields := map[string]interface{}{}
	if mediaURL != nil {
		fields["url_midia"] = *mediaURL
	}
	if thumbnailURL != nil {
		fields["url_miniatura"] = *thumbnailURL
	}
	if len(fields) == 0 {
		return nil
	}
	return r.update(db, id, fields)
}

func (r *PostRepositoryImpl) SetApproved(db *gorm.DB, id string, approved bool) error {
	return r.update(db, id, map[string]interface{}{"aprovado": approved})
}

func (r *PostRepositoryImpl) SoftDelete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Post{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) RegisterReport(db *gorm.DB, id string, hideThreshold int) (*models.Post, error) {
	var post models.Post
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Post{}).Where("id = ?", id).UpdateColumns(map[string]interface{}{
			"numero_denuncias": gorm.Expr("numero_denuncias + 1"),
			"denunciado":       true,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}

		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			return err
		}
		if hideThreshold > 0 && post.ReportCount >= hideThreshold && post.Approved {
			post.Approved = false
			return tx.Model(&models.Post{}).Where("id = ?", id).UpdateColumn("aprovado", false).Error
		}
		return nil
	})
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	return &post, nil
}

func (r *PostRepositoryImpl) update(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.Post{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}
