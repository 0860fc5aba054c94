package services_test

import (
	"context"
	"testing"
	"time"

	"mural_backend/internal/auth"
	"mural_backend/internal/email"
	"mural_backend/internal/models"
	"mural_backend/internal/repositories"
	"mural_backend/internal/services"
	"mural_backend/internal/services/dto"
	"mural_backend/pkg/apperrors"
	"mural_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key"

func newAuthService(t *testing.T) (*services.AuthServiceImpl, *gorm.DB, *recordingProvider, *services.EmailService) {
	t.Helper()
	db := helpers.NewTestDB(t)
	emails, provider := newEmailService()
	svc := services.NewAuthService(services.AuthConfig{
		JWTSecret:       testSecret,
		JWTTTL:          time.Hour,
		SessionTTL:      24 * time.Hour,
		IFSPEmailDomain: "ifsp.edu.br",
	}, repositories.NewUserRepository(), repositories.NewSessionRepository(), emails)
	return svc, db, provider, emails
}

func studentReq() *dto.RegisterStudentRequest {
	return &dto.RegisterStudentRequest{
		RealName: "Maria Souza",
		BP:       "sp3012345x",
		Email:    "Maria.Souza@aluno.IFSP.edu.br",
		Password: "Senha123",
		Username: "maria_s",
	}
}

func TestAuthService_RegisterStudent(t *testing.T) {
	svc, db, _, _ := newAuthService(t)

	resp, err := svc.RegisterStudent(context.Background(), db, studentReq())
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeStudent, resp.UserType)
	assert.False(t, resp.NeedsVerification)

	user, err := repositories.NewUserRepository().FindByID(db, resp.ID)
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)
	assert.Equal(t, "maria.souza@aluno.ifsp.edu.br", user.Email)
	assert.Equal(t, "SP3012345X", *user.BP)
	assert.NotEqual(t, "Senha123", user.PasswordHash)
}

func TestAuthService_RegisterStudentRejectsExternalEmail(t *testing.T) {
	svc, db, _, _ := newAuthService(t)
	req := studentReq()
	req.Email = "maria@gmail.com"

	_, err := svc.RegisterStudent(context.Background(), db, req)
	assert.ErrorIs(t, err, apperrors.ErrNotInstitutionalEmail)
}

func TestAuthService_RegisterStudentConflicts(t *testing.T) {
	svc, db, _, _ := newAuthService(t)
	_, err := svc.RegisterStudent(context.Background(), db, studentReq())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(r *dto.RegisterStudentRequest)
	}{
		{"same username", func(r *dto.RegisterStudentRequest) {
			r.Email = "outra@aluno.ifsp.edu.br"
			r.BP = "SP9999999X"
		}},
		{"same email", func(r *dto.RegisterStudentRequest) {
			r.Username = "outra"
			r.BP = "SP9999999X"
		}},
		{"same bp", func(r *dto.RegisterStudentRequest) {
			r.Username = "outra"
			r.Email = "outra@aluno.ifsp.edu.br"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := studentReq()
			tt.mutate(req)
			_, err := svc.RegisterStudent(context.Background(), db, req)
			requireAppError(t, err, 409)
		})
	}
}

func TestAuthService_RegisterVisitorSendsCode(t *testing.T) {
	svc, db, provider, emails := newAuthService(t)

	resp, err := svc.RegisterVisitor(context.Background(), db, &dto.RegisterVisitorRequest{
		Username: "joao_visitante",
		Email:    "joao@example.com",
		Password: "Senha123",
	})
	require.NoError(t, err)
	assert.True(t, resp.NeedsVerification)
	emails.Wait()

	sent := provider.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "joao@example.com", sent[0].To)
	assert.Equal(t, email.TemplateVerificationCode, sent[0].Template)

	user, err := repositories.NewUserRepository().FindByID(db, resp.ID)
	require.NoError(t, err)
	assert.False(t, user.EmailVerified)
	require.NotNil(t, user.VerificationCode)
	assert.Equal(t, *user.VerificationCode, sent[0].Data["Code"])
	assert.Len(t, *user.VerificationCode, 4)
}

func TestAuthService_VerifyCode(t *testing.T) {
	svc, db, _, _ := newAuthService(t)
	visitor := helpers.CreateVisitor(t, db, false)

	err := svc.VerifyCode(db, &dto.VerifyCodeRequest{UserID: visitor.ID, Code: "9999"})
	assert.ErrorIs(t, err, apperrors.ErrCodeIncorrect)

	require.NoError(t, svc.VerifyCode(db, &dto.VerifyCodeRequest{UserID: visitor.ID, Code: "1234"}))

	err = svc.VerifyCode(db, &dto.VerifyCodeRequest{UserID: visitor.ID, Code: "1234"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyVerified)
}

func TestAuthService_VerifyCodeExpired(t *testing.T) {
	svc, db, _, _ := newAuthService(t)
	visitor := helpers.CreateVisitor(t, db, false)
	svc.WithClock(func() time.Time { return time.Now().Add(auth.VerificationCodeTTL + time.Minute) })

	err := svc.VerifyCode(db, &dto.VerifyCodeRequest{UserID: visitor.ID, Code: "1234"})
	assert.ErrorIs(t, err, apperrors.ErrCodeExpired)
}

func TestAuthService_ResendCode(t *testing.T) {
	svc, db, provider, emails := newAuthService(t)
	visitor := helpers.CreateVisitor(t, db, false)

	require.NoError(t, svc.ResendCode(context.Background(), db, visitor.Email))
	emails.Wait()

	require.Len(t, provider.Sent(), 1)
	user, err := repositories.NewUserRepository().FindByID(db, visitor.ID)
	require.NoError(t, err)
	assert.Equal(t, provider.Sent()[0].Data["Code"], *user.VerificationCode)

	verified := helpers.CreateVisitor(t, db, true)
	err = svc.ResendCode(context.Background(), db, verified.Email)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyVerified)
}

func TestAuthService_LoginOrderOfChecks(t *testing.T) {
	svc, db, _, _ := newAuthService(t)
	users := repositories.NewUserRepository()

	banned := helpers.CreateStudent(t, db)
	reason := "spam"
	require.NoError(t, users.SetBanned(db, banned.ID, true, &reason))
	unverified := helpers.CreateVisitor(t, db, false)
	student := helpers.CreateStudent(t, db)

	tests := []struct {
		name     string
		login    string
		password string
		status   int
		code     apperrors.ErrorCode
	}{
		{"unknown user", "ninguem", "Senha123", 401, apperrors.CodeInvalidCredentials},
		{"banned wins over bad password", banned.Username, "errada", 403, apperrors.CodeUserBanned},
		{"wrong password", student.Username, "errada", 401, apperrors.CodeInvalidCredentials},
		{"bad password before verification", unverified.Email, "errada", 401, apperrors.CodeInvalidCredentials},
		{"unverified visitor", unverified.Email, helpers.DefaultPassword, 403, apperrors.CodeNotVerified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(db, &dto.LoginRequest{Identifier: tt.login, Password: tt.password}, "127.0.0.1", "test")
			appErr := requireAppError(t, err, tt.status)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestAuthService_LoginIssuesTokenAndSession(t *testing.T) {
	svc, db, _, _ := newAuthService(t)
	student := helpers.CreateStudent(t, db)

	resp, err := svc.Login(db, &dto.LoginRequest{Identifier: student.Email, Password: helpers.DefaultPassword}, "10.0.0.1", "agent")
	require.NoError(t, err)

	validation := svc.ValidateToken(resp.Token)
	assert.True(t, validation.Valid)
	assert.Equal(t, student.ID, validation.UserID)
	assert.Equal(t, models.UserTypeStudent, validation.UserType)

	sessions := repositories.NewSessionRepository()
	session, err := sessions.FindActive(db, resp.SessionToken, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", session.IPAddress)

	me, err := svc.Me(db, student.ID)
	require.NoError(t, err)
	assert.NotNil(t, me.LastAccess)
	assert.False(t, me.IsAdmin)

	require.NoError(t, svc.Logout(db, resp.SessionToken))
	_, err = sessions.FindActive(db, resp.SessionToken, time.Now())
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
}

func TestAuthService_MeReportsAdminLevel(t *testing.T) {
	svc, db, _, _ := newAuthService(t)
	student := helpers.CreateStudent(t, db)
	helpers.MakeAdmin(t, db, student, models.AdminLevelModerator)

	me, err := svc.Me(db, student.ID)
	require.NoError(t, err)
	assert.True(t, me.IsAdmin)
	require.NotNil(t, me.PermissionLevel)
	assert.Equal(t, models.AdminLevelModerator, *me.PermissionLevel)
}

func TestAuthService_ValidateTokenRejectsGarbage(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	assert.False(t, svc.ValidateToken("not-a-jwt").Valid)

	foreign, err := auth.GenerateToken("u1", models.UserTypeStudent, "other-secret", time.Hour)
	require.NoError(t, err)
	assert.False(t, svc.ValidateToken(foreign).Valid)
}
