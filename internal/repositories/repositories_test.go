package repositories_test

import (
	"testing"
	"time"

	"mural_backend/internal/models"
	"mural_backend/internal/repositories"
	"mural_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_FindByLogin(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()
	student := helpers.CreateStudent(t, db)

	byEmail, err := repo.FindByLogin(db, student.Email)
	require.NoError(t, err)
	assert.Equal(t, student.ID, byEmail.ID)

	byName, err := repo.FindByLogin(db, student.Username)
	require.NoError(t, err)
	assert.Equal(t, student.ID, byName.ID)

	_, err = repo.FindByLogin(db, "ninguem")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestUserRepository_ExistsAny(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()
	student := helpers.CreateStudent(t, db)

	exists, err := repo.ExistsAny(db, "outro", "outro@aluno.ifsp.edu.br", *student.BP)
	require.NoError(t, err)
	assert.True(t, exists, "BP duplicado")

	exists, err = repo.ExistsAny(db, student.Username, "novo@x.com", "")
	require.NoError(t, err)
	assert.True(t, exists, "username duplicado")

	exists, err = repo.ExistsAny(db, "livre", "livre@x.com", "")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_ClearExpiredCodes(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()
	fresh := helpers.CreateVisitor(t, db, false)
	stale := helpers.CreateVisitor(t, db, false)
	require.NoError(t, repo.SetVerificationCode(db, stale.ID, "9999", time.Now().Add(-time.Minute)))

	n, err := repo.ClearExpiredCodes(db, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.FindByID(db, stale.ID)
	require.NoError(t, err)
	assert.Nil(t, got.VerificationCode)

	got, err = repo.FindByID(db, fresh.ID)
	require.NoError(t, err)
	require.NotNil(t, got.VerificationCode)
	assert.Equal(t, "1234", *got.VerificationCode)
}

func TestUserRepository_Admin(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()
	user := helpers.CreateStudent(t, db)

	_, err := repo.FindAdmin(db, user.ID)
	assert.ErrorIs(t, err, repositories.ErrAdminNotFound)

	helpers.MakeAdmin(t, db, user, models.AdminLevelModerator)
	isAdmin, err := repo.IsAdmin(db, user.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewSessionRepository()
	user := helpers.CreateStudent(t, db)
	now := time.Now()

	active := &models.Session{UserID: user.ID, Token: "active", ExpiresAt: now.Add(time.Hour)}
	expired := &models.Session{UserID: user.ID, Token: "expired", ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, repo.Create(db, active))
	require.NoError(t, repo.Create(db, expired))

	_, err := repo.FindActive(db, "expired", now)
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)

	n, err := repo.DeleteExpired(db, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, repo.DeleteByToken(db, "active"))
	require.NoError(t, repo.DeleteByToken(db, "active"), "повторный logout не ошибка")
}

func TestPostRepository_ListOrdersAndCounts(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewPostRepository()
	author := helpers.CreateStudent(t, db)

	quiet := helpers.CreatePost(t, db, author, "Post sem comentarios")
	busy := helpers.CreatePost(t, db, author, "Post com comentarios")
	hidden := helpers.CreatePost(t, db, author, "Post oculto pela moderacao")
	require.NoError(t, repo.SetApproved(db, hidden.ID, false))

	helpers.CreateComment(t, db, busy, author, "um")
	helpers.CreateComment(t, db, busy, author, "dois")

	posts, total, err := repo.List(db, repositories.PostFilter{
		Order: repositories.PostOrderComments,
		Page:  repositories.NewPage(1, 10, repositories.DefaultPageSize),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, posts, 2)
	assert.Equal(t, busy.ID, posts[0].ID)
	require.NotNil(t, posts[0].Author)

	counts, err := repo.CommentCounts(db, []string{busy.ID, quiet.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[busy.ID])
	assert.EqualValues(t, 0, counts[quiet.ID])
}

func TestPostRepository_RegisterReportAutoHides(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewPostRepository()
	post := helpers.CreatePost(t, db, helpers.CreateStudent(t, db), "Post que sera denunciado")

	for i := 1; i <= 2; i++ {
		got, err := repo.RegisterReport(db, post.ID, 3)
		require.NoError(t, err)
		assert.True(t, got.Approved)
		assert.True(t, got.Reported)
		assert.Equal(t, i, got.ReportCount)
	}

	got, err := repo.RegisterReport(db, post.ID, 3)
	require.NoError(t, err)
	assert.False(t, got.Approved)

	_, err = repo.FindVisible(db, post.ID)
	assert.ErrorIs(t, err, repositories.ErrPostNotFound)

	_, err = repo.RegisterReport(db, "missing", 3)
	assert.ErrorIs(t, err, repositories.ErrPostNotFound)
}

func TestPostRepository_SoftDelete(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewPostRepository()
	post := helpers.CreatePost(t, db, helpers.CreateStudent(t, db), "Post para deletar")

	require.NoError(t, repo.SoftDelete(db, post.ID))
	_, err := repo.FindByID(db, post.ID)
	assert.ErrorIs(t, err, repositories.ErrPostNotFound)
	assert.ErrorIs(t, repo.SoftDelete(db, post.ID), repositories.ErrPostNotFound)
}

func TestCommentRepository_ListOrderAndDeleted(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewCommentRepository()
	author := helpers.CreateStudent(t, db)
	post := helpers.CreatePost(t, db, author, "Post com conversa")

	first := helpers.CreateComment(t, db, post, author, "primeiro")
	require.NoError(t, db.Model(first).Update("criado_em", time.Now().Add(-time.Hour)).Error)
	second := helpers.CreateComment(t, db, post, author, "segundo")

	recent, total, err := repo.ListByPost(db, post.ID, repositories.CommentOrderRecent, repositories.NewPage(1, 0, 20))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, second.ID, recent[0].ID)

	oldest, _, err := repo.ListByPost(db, post.ID, repositories.CommentOrderOldest, repositories.NewPage(1, 0, 20))
	require.NoError(t, err)
	assert.Equal(t, first.ID, oldest[0].ID)

	require.NoError(t, repo.SoftDelete(db, first.ID))
	_, err = repo.FindByID(db, first.ID)
	assert.ErrorIs(t, err, repositories.ErrCommentNotFound)

	deleted, err := repo.FindIncludingDeleted(db, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted.DeletedAt.Valid)

	n, err := repo.CountByPost(db, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestReportRepository_DuplicateAndResolve(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewReportRepository()
	reporter := helpers.CreateVisitor(t, db, true)
	post := helpers.CreatePost(t, db, helpers.CreateStudent(t, db), "Post denunciado")

	report := &models.Report{ReporterID: reporter.ID, TargetType: models.ReportTargetPost, TargetID: post.ID, Reason: "spam"}
	require.NoError(t, repo.Create(db, report))

	dup := &models.Report{ReporterID: reporter.ID, TargetType: models.ReportTargetPost, TargetID: post.ID, Reason: "spam"}
	assert.ErrorIs(t, repo.Create(db, dup), repositories.ErrReportAlreadyExists)

	open := false
	reports, total, err := repo.List(db, repositories.ReportFilter{Resolved: &open, Page: repositories.NewPage(1, 10, 20)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.NotNil(t, reports[0].Reporter)

	require.NoError(t, repo.Resolve(db, report.ID, "admin-id", models.ReportActionIgnore, time.Now()))
	assert.ErrorIs(t, repo.Resolve(db, report.ID, "admin-id", models.ReportActionIgnore, time.Now()), repositories.ErrReportNotFound)

	got, err := repo.FindByID(db, report.ID)
	require.NoError(t, err)
	assert.True(t, got.Resolved)
	require.NotNil(t, got.ActionTaken)
	assert.Equal(t, models.ReportActionIgnore, *got.ActionTaken)
}

func TestPage_Normalize(t *testing.T) {
	p := repositories.NewPage(0, 500, 12)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, repositories.MaxPageSize, p.Size)

	p = repositories.NewPage(3, 0, 12)
	assert.Equal(t, 12, p.Size)
	assert.Equal(t, 24, p.Offset())
}
