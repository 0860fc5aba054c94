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

type AuthService interface {
	RegisterStudent(ctx context.Context, db *gorm.DB, req *dto.RegisterStudentRequest) (*dto.RegisterResponse, error)
	RegisterVisitor(ctx context.Context, db *gorm.DB, req *dto.RegisterVisitorRequest) (*dto.RegisterResponse, error)
	VerifyCode(db *gorm.DB, req *dto.VerifyCodeRequest) error
	ResendCode(ctx context.Context, db *gorm.DB, email string) error
	Login(db *gorm.DB, req *dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error)
	Logout(db *gorm.DB, sessionToken string) error
	Me(db *gorm.DB, userID string) (*dto.MeResponse, error)
	ValidateToken(token string) *dto.TokenValidationResponse
}

type AuthConfig struct {
	JWTSecret       string
	JWTTTL          time.Duration
	SessionTTL      time.Duration
	IFSPEmailDomain string
}

type AuthServiceImpl struct {
	cfg         AuthConfig
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	emails      *EmailService
	now         func() time.Time
}

func NewAuthService(
	cfg AuthConfig,
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	emails *EmailService,
) *AuthServiceImpl {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = auth.SessionTTL
	}
	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = auth.SessionTTL
	}
	return &AuthServiceImpl{
		cfg:         cfg,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		emails:      emails,
		now:         time.Now,
	}
}

// WithClock подменяет часы (для тестов истечения кода)
func (s *AuthServiceImpl) WithClock(now func() time.Time) *AuthServiceImpl {
	s.now = now
	return s
}

// RegisterStudent - студент подтверждается сразу: институциональный email и BP уже проверены
func (s *AuthServiceImpl) RegisterStudent(ctx context.Context, db *gorm.DB, req *dto.RegisterStudentRequest) (*dto.RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	if !auth.IsIFSPEmail(email, s.cfg.IFSPEmailDomain) {
		return nil, apperrors.ErrNotInstitutionalEmail
	}
	bp := strings.ToUpper(strings.TrimSpace(req.BP))
	username := strings.TrimSpace(req.Username)

	exists, err := s.userRepo.ExistsAny(db, username, email, bp)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrStudentAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	realName := strings.TrimSpace(req.RealName)
	user := &models.User{
		UserType:      models.UserTypeStudent,
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		RealName:      &realName,
		BP:            &bp,
		EmailVerified: true,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrStudentAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "student registered", "user_id", user.ID)
	return &dto.RegisterResponse{ID: user.ID, Username: user.Username, UserType: user.UserType}, nil
}

// RegisterVisitor создает непроверенного посетителя и отправляет код в фоне
func (s *AuthServiceImpl) RegisterVisitor(ctx context.Context, db *gorm.DB, req *dto.RegisterVisitorRequest) (*dto.RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	exists, err := s.userRepo.ExistsAny(db, username, email, "")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrVisitorAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	code, err := auth.GenerateVerificationCode()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	expires := auth.CodeExpiry(s.now(), auth.VerificationCodeTTL)

	user := &models.User{
		UserType:         models.UserTypeVisitor,
		Username:         username,
		Email:            email,
		PasswordHash:     hash,
		EmailVerified:    false,
		VerificationCode: &code,
		CodeExpiresAt:    &expires,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrVisitorAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendCode(ctx, user, code)

	logger.CtxInfo(ctx, "visitor registered", "user_id", user.ID)
	return &dto.RegisterResponse{
		ID:                user.ID,
		Username:          user.Username,
		UserType:          user.UserType,
		NeedsVerification: true,
	}, nil
}

func (s *AuthServiceImpl) VerifyCode(db *gorm.DB, req *dto.VerifyCodeRequest) error {
	user, err := s.userRepo.FindByID(db, req.UserID)
	if err != nil {
		return translateUserErr(err)
	}
	if user.EmailVerified {
		return apperrors.ErrAlreadyVerified
	}
	if user.VerificationCode == nil || *user.VerificationCode != strings.TrimSpace(req.Code) {
		return apperrors.ErrCodeIncorrect
	}
	if user.CodeExpiresAt == nil || s.now().After(*user.CodeExpiresAt) {
		return apperrors.ErrCodeExpired
	}

	if err := s.userRepo.SetVerified(db, user.ID); err != nil {
		return translateUserErr(err)
	}
	return nil
}

func (s *AuthServiceImpl) ResendCode(ctx context.Context, db *gorm.DB, email string) error {
	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		return translateUserErr(err)
	}
	if !user.NeedsVerification() {
		return apperrors.ErrAlreadyVerified
	}

	code, err := auth.GenerateVerificationCode()
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.SetVerificationCode(db, user.ID, code, auth.CodeExpiry(s.now(), auth.VerificationCodeTTL)); err != nil {
		return translateUserErr(err)
	}

	s.sendCode(ctx, user, code)
	return nil
}

// Login проверяет в порядке: существование, бан, пароль, подтверждение email
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByLogin(db, req.Identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrLoginUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Banned {
		return nil, apperrors.ErrUserBanned(deref(user.BanReason))
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.NeedsVerification() {
		return nil, apperrors.ErrEmailNotVerified
	}

	token, err := auth.GenerateToken(user.ID, user.UserType, s.cfg.JWTSecret, s.cfg.JWTTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := s.now()
	session := &models.Session{
		UserID:    user.ID,
		Token:     auth.GenerateSessionToken(),
		IPAddress: ip,
		UserAgent: userAgent,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessionRepo.Create(db, session); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.userRepo.TouchLastAccess(db, user.ID, now); err != nil {
		logger.WithError(err).Warn("failed to update last access", "user_id", user.ID)
	}

	return &dto.LoginResponse{
		Token:        token,
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt.UTC().Format(time.RFC3339),
		User:         dto.NewUserDTO(user),
	}, nil
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	if err := s.sessionRepo.DeleteByToken(db, sessionToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) Me(db *gorm.DB, userID string) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, translateUserErr(err)
	}

	resp := &dto.MeResponse{
		UserDTO:       dto.NewUserDTO(user),
		Email:         user.Email,
		BP:            user.BP,
		Bio:           user.Bio,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		LastAccess:    user.LastAccess,
	}

	admin, err := s.userRepo.FindAdmin(db, userID)
	switch {
	case err == nil:
		resp.IsAdmin = true
		resp.PermissionLevel = &admin.PermissionLevel
	case !errors.Is(err, repositories.ErrAdminNotFound):
		return nil, apperrors.InternalError(err)
	}
	return resp, nil
}

func (s *AuthServiceImpl) ValidateToken(token string) *dto.TokenValidationResponse {
	claims, err := auth.ParseToken(token, s.cfg.JWTSecret)
	if err != nil {
		return &dto.TokenValidationResponse{Valid: false}
	}
	return &dto.TokenValidationResponse{Valid: true, UserID: claims.UserID, UserType: claims.UserType}
}

func (s *AuthServiceImpl) sendCode(ctx context.Context, user *models.User, code string) {
	if s.emails == nil {
		return
	}
	to, username := user.Email, user.Username
	s.emails.Go(ctx, "verification_code", func(ctx context.Context) error {
		return s.emails.SendVerificationCode(ctx, to, username, code)
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func translateUserErr(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.InternalError(err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
