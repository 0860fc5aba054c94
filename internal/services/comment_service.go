package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"mural_backend/internal/logger"
	"mural_backend/internal/models"
	"mural_backend/internal/repositories"
	"mural_backend/internal/services/dto"
	"mural_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	defaultCommentPageSize = 20
	maxCommentLen          = 1000
)

type CommentService interface {
	List(db *gorm.DB, postID string, query *dto.CommentListQuery) (*dto.PaginatedResponse[*dto.CommentResponse], error)
	Create(ctx context.Context, db *gorm.DB, postID, userID, text string) (*dto.CommentResponse, error)
	Get(db *gorm.DB, id string) (*dto.CommentResponse, error)
	Update(db *gorm.DB, userID, id, text string) (*dto.CommentResponse, error)
	Delete(db *gorm.DB, userID, id string, isAdmin bool) error
	Count(db *gorm.DB, postID string) (*dto.CommentCountResponse, error)
	Report(db *gorm.DB, userID, id string, req *dto.ReportRequest) error
	ListByUser(db *gorm.DB, userID string, query *dto.PageQuery) (*dto.PaginatedResponse[*dto.CommentResponse], error)
}

type CommentServiceImpl struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	userRepo    repositories.UserRepository
	reportRepo  repositories.ReportRepository
	broadcaster Broadcaster
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	reportRepo repositories.ReportRepository,
	broadcaster Broadcaster,
) CommentService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	return &CommentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		reportRepo:  reportRepo,
		broadcaster: broadcaster,
	}
}

func (s *CommentServiceImpl) List(db *gorm.DB, postID string, query *dto.CommentListQuery) (*dto.PaginatedResponse[*dto.CommentResponse], error) {
	if _, err := s.postRepo.FindVisible(db, postID); err != nil {
		return nil, translatePostErr(err)
	}

	page := repositories.NewPage(query.Page, query.PerPage, defaultCommentPageSize)
	comments, total, err := s.commentRepo.ListByPost(db, postID, query.Order, page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(toCommentResponses(comments), page.Number, page.Size, total), nil
}

func (s *CommentServiceImpl) Create(ctx context.Context, db *gorm.DB, postID, userID, text string) (*dto.CommentResponse, error) {
	text, err := validateCommentText(text)
	if err != nil {
		return nil, err
	}

	if _, err := s.postRepo.FindVisible(db, postID); err != nil {
		return nil, translatePostErr(err)
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, translateUserErr(err)
	}
	if user.Banned {
		return nil, apperrors.ErrBannedCannotComment
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Text: text, Approved: true}
	if err := s.commentRepo.Create(db, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	comment.Author = user

	resp := dto.NewCommentResponse(comment)
	logger.CtxInfo(ctx, "comment created", "comment_id", comment.ID, "post_id", postID)
	s.broadcaster.Broadcast(EventCommentCreated, resp)
	return resp, nil
}

func (s *CommentServiceImpl) Get(db *gorm.DB, id string) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(db, id)
	if err != nil {
		return nil, translateCommentErr(err)
	}
	return dto.NewCommentResponse(comment), nil
}

func (s *CommentServiceImpl) Update(db *gorm.DB, userID, id, text string) (*dto.CommentResponse, error) {
	text, err := validateCommentText(text)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.FindIncludingDeleted(db, id)
	if err != nil {
		return nil, translateCommentErr(err)
	}
	if comment.UserID != userID {
		return nil, apperrors.ErrNotCommentAuthor
	}
	if comment.DeletedAt.Valid {
		return nil, apperrors.ErrCommentDeleted
	}

	if err := s.commentRepo.UpdateText(db, id, text); err != nil {
		return nil, translateCommentErr(err)
	}
	return s.Get(db, id)
}

func (s *CommentServiceImpl) Delete(db *gorm.DB, userID, id string, isAdmin bool) error {
	comment, err := s.commentRepo.FindIncludingDeleted(db, id)
	if err != nil {
		return translateCommentErr(err)
	}
	if comment.UserID != userID && !isAdmin {
		return apperrors.ErrCannotDeleteComment
	}
	if comment.DeletedAt.Valid {
		return apperrors.ErrCommentAlreadyDeleted
	}
	if err := s.commentRepo.SoftDelete(db, id); err != nil {
		return translateCommentErr(err)
	}
	return nil
}

func (s *CommentServiceImpl) Count(db *gorm.DB, postID string) (*dto.CommentCountResponse, error) {
	total, err := s.commentRepo.CountByPost(db, postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.CommentCountResponse{PostID: postID, Total: total}, nil
}

func (s *CommentServiceImpl) Report(db *gorm.DB, userID, id string, req *dto.ReportRequest) error {
	if _, err := s.commentRepo.FindByID(db, id); err != nil {
		return translateCommentErr(err)
	}

	report := &models.Report{
		ReporterID:  userID,
		TargetType:  models.ReportTargetComment,
		TargetID:    id,
		Reason:      strings.TrimSpace(req.Reason),
		Description: req.Description,
	}
	if err := s.reportRepo.Create(db, report); err != nil {
		if errors.Is(err, repositories.ErrReportAlreadyExists) {
			return apperrors.ErrAlreadyReported
		}
		return apperrors.InternalError(err)
	}

	if err := s.commentRepo.MarkReported(db, id); err != nil {
		return translateCommentErr(err)
	}
	return nil
}

func (s *CommentServiceImpl) ListByUser(db *gorm.DB, userID string, query *dto.PageQuery) (*dto.PaginatedResponse[*dto.CommentResponse], error) {
	page := repositories.NewPage(query.Page, query.PerPage, defaultCommentPageSize)
	comments, total, err := s.commentRepo.ListByUser(db, userID, page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(toCommentResponses(comments), page.Number, page.Size, total), nil
}

func toCommentResponses(comments []models.Comment) []*dto.CommentResponse {
	out := make([]*dto.CommentResponse, len(comments))
	for i := range comments {
		out[i] = dto.NewCommentResponse(&comments[i])
	}
	return out
}

func validateCommentText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(text)
	if n < 1 || n > maxCommentLen {
		return "", apperrors.ValidationError(map[string]string{
			"texto": "O comentário deve ter entre 1 e 1000 caracteres",
		})
	}
	return text, nil
}

func translateCommentErr(err error) error {
	if errors.Is(err, repositories.ErrCommentNotFound) {
		return apperrors.ErrCommentNotFound
	}
	return apperrors.InternalError(err)
}
