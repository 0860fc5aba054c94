package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"mural_backend/internal/auth"
	"mural_backend/internal/logger"
	"mural_backend/internal/models"
	"mural_backend/internal/repositories"
	"mural_backend/internal/services/dto"
	"mural_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const defaultReportPageSize = 20

type AdminService interface {
	// AdminLevel возвращает уровень администратора или ErrAdminOnly
	AdminLevel(db *gorm.DB, userID string) (models.AdminLevel, error)
	ListReports(db *gorm.DB, query *dto.ReportListQuery) (*dto.PaginatedResponse[*dto.ReportResponse], error)
	ResolveReport(ctx context.Context, db *gorm.DB, adminID, reportID string, action models.ReportAction) (*dto.ReportResponse, error)
	BanUser(ctx context.Context, db *gorm.DB, adminID, userID, reason string) error
	UnbanUser(ctx context.Context, db *gorm.DB, adminID, userID string) error
}

type AdminServiceImpl struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	reportRepo  repositories.ReportRepository
	emails      *EmailService
	now         func() time.Time
}

func NewAdminService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	reportRepo repositories.ReportRepository,
	emails *EmailService,
) AdminService {
	return &AdminServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		reportRepo:  reportRepo,
		emails:      emails,
		now:         time.Now,
	}
}

func (s *AdminServiceImpl) AdminLevel(db *gorm.DB, userID string) (models.AdminLevel, error) {
	admin, err := s.userRepo.FindAdmin(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			return "", apperrors.ErrAdminOnly
		}
		return "", apperrors.InternalError(err)
	}
	return admin.PermissionLevel, nil
}

func (s *AdminServiceImpl) ListReports(db *gorm.DB, query *dto.ReportListQuery) (*dto.PaginatedResponse[*dto.ReportResponse], error) {
	page := repositories.NewPage(query.Page, query.PerPage, defaultReportPageSize)
	reports, total, err := s.reportRepo.List(db, repositories.ReportFilter{
		Resolved:   query.Resolved,
		TargetType: models.ReportTarget(query.Type),
		Page:       page,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.ReportResponse, len(reports))
	for i := range reports {
		items[i] = dto.NewReportResponse(&reports[i])
	}
	return dto.NewPaginatedResponse(items, page.Number, page.Size, total), nil
}

// ResolveReport применяет действие к контенту и закрывает жалобу одной транзакцией
func (s *AdminServiceImpl) ResolveReport(ctx context.Context, db *gorm.DB, adminID, reportID string, action models.ReportAction) (*dto.ReportResponse, error) {
	if !action.Valid() {
		return nil, apperrors.ValidationError(map[string]string{"acao": "Ação inválida. Use ignorar, ocultar ou remover"})
	}

	report, err := s.reportRepo.FindByID(db, reportID)
	if err != nil {
		return nil, translateReportErr(err)
	}
	if report.Resolved {
		return nil, apperrors.ErrReportResolved
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.applyAction(tx, report, action); err != nil {
			return err
		}
		return s.reportRepo.Resolve(tx, report.ID, adminID, action, s.now())
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrReportNotFound):
			return nil, apperrors.ErrReportResolved
		case errors.Is(err, repositories.ErrPostNotFound), errors.Is(err, repositories.ErrCommentNotFound):
			// контент уже удален автором: жалоба все равно закрывается
			if rErr := s.reportRepo.Resolve(db, report.ID, adminID, action, s.now()); rErr != nil {
				return nil, apperrors.InternalError(rErr)
			}
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	logger.CtxInfo(ctx, "report resolved", "report_id", report.ID, "action", string(action), "admin_id", adminID)

	if report.Reporter != nil && s.emails != nil {
		to, username, target := report.Reporter.Email, report.Reporter.Username, report.TargetType
		s.emails.Go(ctx, "report_resolved", func(ctx context.Context) error {
			return s.emails.SendReportResolved(ctx, to, username, target, action)
		})
	}

	resolved, err := s.reportRepo.FindByID(db, report.ID)
	if err != nil {
		return nil, translateReportErr(err)
	}
	return dto.NewReportResponse(resolved), nil
}

func (s *AdminServiceImpl) applyAction(tx *gorm.DB, report *models.Report, action models.ReportAction) error {
	switch action {
	case models.ReportActionIgnore:
		return nil
	case models.ReportActionHide:
		if report.TargetType == models.ReportTargetPost {
			return s.postRepo.SetApproved(tx, report.TargetID, false)
		}
		return s.commentRepo.SetApproved(tx, report.TargetID, false)
	case models.ReportActionRemove:
		if report.TargetType == models.ReportTargetPost {
			return s.postRepo.SoftDelete(tx, report.TargetID)
		}
		return s.commentRepo.SoftDelete(tx, report.TargetID)
	default:
		panic("unknown report action: " + string(action))
	}
}

// BanUser требует уровень admin (проверяется в middleware). Админа забанить нельзя.
func (s *AdminServiceImpl) BanUser(ctx context.Context, db *gorm.DB, adminID, userID, reason string) error {
	if adminID == userID {
		return apperrors.ErrCannotBanSelf
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return translateUserErr(err)
	}
	isAdmin, err := s.userRepo.IsAdmin(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if isAdmin {
		return apperrors.ErrCannotBanAdmin
	}

	reason = strings.TrimSpace(reason)
	if err := s.userRepo.SetBanned(db, userID, true, &reason); err != nil {
		return translateUserErr(err)
	}
	n, err := s.sessionRepo.DeleteByUserID(db, userID)
	if err != nil {
		logger.CtxWithError(ctx, "failed to drop sessions of banned user", err, "user_id", userID)
	}

	logger.CtxInfo(ctx, "user banned", "user_id", userID, "admin_id", adminID, "sessions_dropped", n)

	if s.emails != nil {
		to, username := user.Email, user.Username
		s.emails.Go(ctx, "ban_notice", func(ctx context.Context) error {
			return s.emails.SendBanNotice(ctx, to, username, reason)
		})
	}
	return nil
}

func (s *AdminServiceImpl) UnbanUser(ctx context.Context, db *gorm.DB, adminID, userID string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return translateUserErr(err)
	}
	if !user.Banned {
		return apperrors.ErrInvalidOperation("moderation", "Usuário não está banido")
	}
	if err := s.userRepo.SetBanned(db, userID, false, nil); err != nil {
		return translateUserErr(err)
	}
	logger.CtxInfo(ctx, "user unbanned", "user_id", userID, "admin_id", adminID)
	return nil
}

// RequireLevel проверяет уровень без обращения к БД
func RequireLevel(have, need models.AdminLevel) error {
	if !auth.LevelAtLeast(have, need) {
		return apperrors.ErrInsufficientPermissions
	}
	return nil
}

func translateReportErr(err error) error {
	if errors.Is(err, repositories.ErrReportNotFound) {
		return apperrors.ErrReportNotFound
	}
	return apperrors.InternalError(err)
}
