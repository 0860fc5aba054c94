package services

import (
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"mural_backend/internal/logger"
	"mural_backend/internal/media"
	"mural_backend/internal/metrics"
	"mural_backend/internal/models"
	"mural_backend/internal/repositories"
	"mural_backend/internal/services/dto"
	"mural_backend/internal/storage"
	"mural_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	minDescriptionLen = 10
	maxDescriptionLen = 5000
)

type PostService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatePostRequest, file *multipart.FileHeader) (*dto.PostResponse, error)
	List(db *gorm.DB, query *dto.PostListQuery) (*dto.PaginatedResponse[*dto.PostResponse], error)
	Get(db *gorm.DB, id string) (*dto.PostResponse, error)
	UpdateDescription(db *gorm.DB, userID, id, description string) (*dto.PostResponse, error)
	Delete(db *gorm.DB, userID, id string, isAdmin bool) error
	ListByUser(db *gorm.DB, userID string, query *dto.PageQuery) (*dto.PaginatedResponse[*dto.PostResponse], error)
	Report(db *gorm.DB, reporterID, postID string, req *dto.ReportRequest) error
}

// MediaPipeline - этапы приема файла. Mirror nil, если хранилище локальное.
type MediaPipeline struct {
	Validator *media.FormatValidator
	Placer    *media.Placer
	Processor *media.Processor
	Mirror    storage.Storage
}

type PostServiceImpl struct {
	pipeline          MediaPipeline
	postRepo          repositories.PostRepository
	reportRepo        repositories.ReportRepository
	broadcaster       Broadcaster
	autoHideThreshold int
}

func NewPostService(
	pipeline MediaPipeline,
	postRepo repositories.PostRepository,
	reportRepo repositories.ReportRepository,
	broadcaster Broadcaster,
	autoHideThreshold int,
) PostService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	return &PostServiceImpl{
		pipeline:          pipeline,
		postRepo:          postRepo,
		reportRepo:        reportRepo,
		broadcaster:       broadcaster,
		autoHideThreshold: autoHideThreshold,
	}
}

// Create: валидация -> размещение -> обработка -> запись -> зеркало -> событие ленты.
// Сохраненный файл всегда дает пост: производные артефакты только best effort.
func (s *PostServiceImpl) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatePostRequest, file *multipart.FileHeader) (*dto.PostResponse, error) {
	description, err := validateDescription(req.Description)
	if err != nil {
		return nil, err
	}

	cat, err := media.ParseCategory(req.MediaType)
	if err != nil {
		return nil, apperrors.ErrInvalidMediaType
	}

	var (
		asset   *media.StoredAsset
		outcome media.Outcome
	)
	if cat.HasAsset() {
		if file == nil {
			metrics.UploadsTotal.WithLabelValues(string(cat), "rejected").Inc()
			return nil, apperrors.ErrFileRequired
		}

		asset, err = s.ingest(ctx, file, cat)
		if err != nil {
			return nil, err
		}
		outcome = s.pipeline.Processor.Process(ctx, asset, cat, media.ProcessOptions{
			Transcribe: req.Transcribe,
			Language:   strings.TrimSpace(req.Language),
		})
	}

	post := BuildPostRecord(userID, description, cat, asset, outcome)
	if err := s.postRepo.Create(db, post); err != nil {
		s.discard(ctx, asset, outcome)
		if asset != nil {
			metrics.UploadsTotal.WithLabelValues(string(cat), "failed").Inc()
		}
		return nil, apperrors.InternalError(err)
	}
	if asset != nil {
		metrics.UploadsTotal.WithLabelValues(string(cat), "stored").Inc()
		s.mirror(ctx, db, post, asset, outcome)
	}

	created, err := s.postRepo.FindByID(db, post.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewPostResponse(created, 0)

	logger.CtxInfo(ctx, "post created", "post_id", post.ID, "media_type", post.MediaType)
	s.broadcaster.Broadcast(EventPostCreated, resp)
	return resp, nil
}

// ingest проверяет и сохраняет основной файл
func (s *PostServiceImpl) ingest(ctx context.Context, file *multipart.FileHeader, cat media.Category) (*media.StoredAsset, error) {
	if err := s.pipeline.Validator.Validate(file.Filename, file.Size, cat); err != nil {
		metrics.UploadsTotal.WithLabelValues(string(cat), "rejected").Inc()
		logger.CtxWarn(ctx, "upload rejected", "category", string(cat), "reason", err.Error())
		return nil, mediaValidationErr(err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.ErrStorage(err)
	}
	defer src.Close()

	asset, err := s.pipeline.Placer.Place(ctx, src, file.Filename, cat)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(string(cat), "failed").Inc()
		logger.CtxWithError(ctx, "failed to place upload", err, "category", string(cat))
		return nil, apperrors.ErrStorage(err)
	}
	// multipart может соврать о размере, проверяем записанное
	if err := s.pipeline.Validator.ValidateSize(asset.Size); err != nil {
		s.discard(ctx, asset, media.Outcome{})
		metrics.UploadsTotal.WithLabelValues(string(cat), "rejected").Inc()
		return nil, mediaValidationErr(err)
	}
	return asset, nil
}

func (s *PostServiceImpl) discard(ctx context.Context, asset *media.StoredAsset, outcome media.Outcome) {
	if asset == nil {
		return
	}
	if err := s.pipeline.Placer.Remove(asset); err != nil {
		logger.CtxWithError(ctx, "failed to remove placed asset", err, "path", asset.FullPath)
	}
	if err := s.pipeline.Placer.RemoveThumbnail(outcome.ThumbnailFile); err != nil {
		logger.CtxWithError(ctx, "failed to remove thumbnail", err, "file", outcome.ThumbnailFile)
	}
}

// mirror копирует файл и миниатюру в бакет. Ошибка не фатальна: остаются локальные URL.
func (s *PostServiceImpl) mirror(ctx context.Context, db *gorm.DB, post *models.Post, asset *media.StoredAsset, outcome media.Outcome) {
	remote := s.pipeline.Mirror
	if remote == nil {
		return
	}

	mediaURL, err := s.upload(ctx, asset.Key(), asset.FullPath, asset.MimeType)
	if err != nil {
		metrics.RemoteMirrorTotal.WithLabelValues("failed").Inc()
		logger.CtxWithError(ctx, "remote mirror failed, keeping local urls", err, "key", asset.Key())
		return
	}

	var thumbURL *string
	thumbKey := ""
	switch {
	case outcome.ThumbnailFile != "":
		key := path.Join(media.FolderThumbnails, outcome.ThumbnailFile)
		local := filepath.Join(s.pipeline.Placer.ThumbnailDir(), outcome.ThumbnailFile)
		if u, err := s.upload(ctx, key, local, ""); err != nil {
			logger.CtxWithError(ctx, "thumbnail mirror failed", err, "key", key)
		} else {
			thumbURL, thumbKey = &u, key
		}
	case outcome.ThumbnailURL != nil && *outcome.ThumbnailURL == asset.URL:
		// миниатюрой служит сам файл, она переезжает вместе с ним
		thumbURL = &mediaURL
	}

	if err := s.postRepo.UpdateMediaURLs(db, post.ID, &mediaURL, thumbURL); err != nil {
		metrics.RemoteMirrorTotal.WithLabelValues("failed").Inc()
		logger.CtxWithError(ctx, "failed to store mirrored urls", err, "post_id", post.ID)
		s.unmirror(ctx, asset.Key(), thumbKey)
		return
	}
	metrics.RemoteMirrorTotal.WithLabelValues("ok").Inc()
}

// unmirror удаляет из бакета объекты, на которые пост так и не сослался
func (s *PostServiceImpl) unmirror(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.pipeline.Mirror.Delete(ctx, key); err != nil {
			logger.CtxWithError(ctx, "failed to delete mirrored object", err, "key", key)
		}
	}
}

func (s *PostServiceImpl) upload(ctx context.Context, key, localPath, contentType string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := s.pipeline.Mirror.Save(ctx, key, f, contentType); err != nil {
		return "", err
	}
	return s.pipeline.Mirror.GetURL(ctx, key)
}

func (s *PostServiceImpl) List(db *gorm.DB, query *dto.PostListQuery) (*dto.PaginatedResponse[*dto.PostResponse], error) {
	page := repositories.NewPage(query.Page, query.PerPage, repositories.DefaultPageSize)
	filter := repositories.PostFilter{
		MediaType: strings.ToLower(strings.TrimSpace(query.MediaType)),
		Order:     query.Order,
		Page:      page,
	}
	return s.list(db, filter)
}

func (s *PostServiceImpl) ListByUser(db *gorm.DB, userID string, query *dto.PageQuery) (*dto.PaginatedResponse[*dto.PostResponse], error) {
	filter := repositories.PostFilter{
		UserID: userID,
		Page:   repositories.NewPage(query.Page, query.PerPage, repositories.DefaultPageSize),
	}
	return s.list(db, filter)
}

func (s *PostServiceImpl) list(db *gorm.DB, filter repositories.PostFilter) (*dto.PaginatedResponse[*dto.PostResponse], error) {
	posts, total, err := s.postRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	counts, err := s.postRepo.CommentCounts(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.PostResponse, len(posts))
	for i := range posts {
		items[i] = dto.NewPostResponse(&posts[i], counts[posts[i].ID])
	}
	return dto.NewPaginatedResponse(items, filter.Page.Number, filter.Page.Size, total), nil
}

// Get увеличивает счетчик просмотров. Ошибка счетчика не мешает ответу.
func (s *PostServiceImpl) Get(db *gorm.DB, id string) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindVisible(db, id)
	if err != nil {
		return nil, translatePostErr(err)
	}

	if err := s.postRepo.IncrementViews(db, id); err != nil {
		logger.WithError(err).Warn("failed to increment views", "post_id", id)
	} else {
		post.Views++
	}

	counts, err := s.postRepo.CommentCounts(db, []string{id})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPostResponse(post, counts[id]), nil
}

func (s *PostServiceImpl) UpdateDescription(db *gorm.DB, userID, id, description string) (*dto.PostResponse, error) {
	description, err := validateDescription(description)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.FindByID(db, id)
	if err != nil {
		return nil, translatePostErr(err)
	}
	if post.UserID != userID {
		return nil, apperrors.ErrNotPostAuthor
	}

	if err := s.postRepo.UpdateDescription(db, id, description); err != nil {
		return nil, translatePostErr(err)
	}

	updated, err := s.postRepo.FindByID(db, id)
	if err != nil {
		return nil, translatePostErr(err)
	}
	counts, err := s.postRepo.CommentCounts(db, []string{id})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPostResponse(updated, counts[id]), nil
}

func (s *PostServiceImpl) Delete(db *gorm.DB, userID, id string, isAdmin bool) error {
	post, err := s.postRepo.FindByID(db, id)
	if err != nil {
		return translatePostErr(err)
	}
	if post.UserID != userID && !isAdmin {
		return apperrors.ErrCannotDeletePost
	}
	if err := s.postRepo.SoftDelete(db, id); err != nil {
		return translatePostErr(err)
	}
	return nil
}

// Report: одна жалоба на пост от пользователя; по достижении порога пост скрывается
func (s *PostServiceImpl) Report(db *gorm.DB, reporterID, postID string, req *dto.ReportRequest) error {
	if _, err := s.postRepo.FindVisible(db, postID); err != nil {
		return translatePostErr(err)
	}

	report := &models.Report{
		ReporterID:  reporterID,
		TargetType:  models.ReportTargetPost,
		TargetID:    postID,
		Reason:      strings.TrimSpace(req.Reason),
		Description: req.Description,
	}
	if err := s.reportRepo.Create(db, report); err != nil {
		if errors.Is(err, repositories.ErrReportAlreadyExists) {
			return apperrors.ErrAlreadyReported
		}
		return apperrors.InternalError(err)
	}

	post, err := s.postRepo.RegisterReport(db, postID, s.autoHideThreshold)
	if err != nil {
		return translatePostErr(err)
	}
	if !post.Approved {
		logger.Info("post auto-hidden by reports", "post_id", postID, "reports", post.ReportCount)
	}
	return nil
}

func validateDescription(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(description)
	if n < minDescriptionLen || n > maxDescriptionLen {
		return "", apperrors.ValidationError(map[string]string{
			"descricao": "A descrição deve ter entre 10 e 5000 caracteres",
		})
	}
	return description, nil
}

func translatePostErr(err error) error {
	if errors.Is(err, repositories.ErrPostNotFound) {
		return apperrors.ErrPostNotFound
	}
	return apperrors.InternalError(err)
}
