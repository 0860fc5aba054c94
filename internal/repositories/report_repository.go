package repositories

import (
	"errors"
	"time"

	"mural_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReportNotFound      = errors.New("report not found")
	ErrReportAlreadyExists = errors.New("report already exists")
)

type ReportFilter struct {
	Resolved   *bool
	TargetType models.ReportTarget
	Page       Page
}

type ReportRepository interface {
	// Create возвращает ErrReportAlreadyExists, если этот пользователь уже жаловался на этот контент
	Create(db *gorm.DB, report *models.Report) error
	Exists(db *gorm.DB, reporterID string, target models.ReportTarget, targetID string) (bool, error)
	FindByID(db *gorm.DB, id string) (*models.Report, error)
	List(db *gorm.DB, filter ReportFilter) ([]models.Report, int64, error)
	Resolve(db *gorm.DB, id, adminID string, action models.ReportAction, at time.Time) error
}

type ReportRepositoryImpl struct{}

func NewReportRepository() ReportRepository {
	return &ReportRepositoryImpl{}
}

func (r *ReportRepositoryImpl) Create(db *gorm.DB, report *models.Report) error {
	exists, err := r.Exists(db, report.ReporterID, report.TargetType, report.TargetID)
	if err != nil {
		return err
	}
	if exists {
		return ErrReportAlreadyExists
	}

	if err := db.Create(report).Error; err != nil {
		// гонка двух одинаковых жалоб ловится уникальным индексом
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReportAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReportRepositoryImpl) Exists(db *gorm.DB, reporterID string, target models.ReportTarget, targetID string) (bool, error) {
	var count int64
	err := db.Model(&models.Report{}).
		Where("denunciante_id = ? AND tipo_conteudo = ? AND conteudo_id = ?", reporterID, target, targetID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReportRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Report, error) {
	var report models.Report
	if err := db.Preload("Reporter").First(&report, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrReportNotFound)
	}
	return &report, nil
}

func (r *ReportRepositoryImpl) List(db *gorm.DB, filter ReportFilter) ([]models.Report, int64, error) {
	query := db.Model(&models.Report{})
	if filter.Resolved != nil {
		query = query.Where("resolvido = ?", *filter.Resolved)
	}
	if filter.TargetType != "" {
		query = query.Where("tipo_conteudo = ?", filter.TargetType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	err := filter.Page.Apply(query).Preload("Reporter").Order("criado_em DESC").Find(&reports).Error
	return reports, total, err
}

func (r *ReportRepositoryImpl) Resolve(db *gorm.DB, id, adminID string, action models.ReportAction, at time.Time) error {
	result := db.Model(&models.Report{}).
		Where("id = ? AND resolvido = ?", id, false).
		Updates(map[string]interface{}{
			"resolvido":     true,
			"resolvido_por": adminID,
			"resolvido_em":  at,
			"acao_tomada":   action,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}
