package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"tapify/config"
	"tapify/internal/domain/entity"
	"tapify/internal/domain/repository"
	"tapify/internal/domain/service"
	"tapify/internal/infra/persistence/kvstore"
	"tapify/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// Test doubles for the outbound service ports. The store is the real
// in-memory implementation so persistence semantics are exercised
// end to end.

type sentCode struct {
	email string
	code  string
}

type fakeMailer struct {
	sent []sentCode
	err  error
}

func (m *fakeMailer) SendVerificationCode(_ context.Context, email, code string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentCode{email: email, code: code})

	return nil
}

type fakeTokenService struct{}

func (fakeTokenService) GenerateAccessToken(userID string, _ []string) (string, error) {
	return "token-" + userID, nil
}

func (fakeTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	userID, ok := strings.CutPrefix(tokenString, "token-")
	if !ok {
		return nil, errors.New("unknown token")
	}

	return &service.Claims{UserID: userID}, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeOAuthVerifier struct {
	user *service.OAuthUser
	err  error
}

func (v *fakeOAuthVerifier) VerifyIDToken(_ context.Context, _ string) (*service.OAuthUser, error) {
	if v.err != nil {
		return nil, v.err
	}

	return v.user, nil
}

type fakePublisher struct {
	events []*service.ActivityEvent
	err    error
}

func (p *fakePublisher) PublishActivityEvent(_ context.Context, event *service.ActivityEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeQRCodeService struct{}

func (fakeQRCodeService) GeneratePNG(payload string) ([]byte, error) {
	return []byte("png:" + payload), nil
}

type fakeAssistant struct {
	fields *service.TranslatedFields
	image  string
	err    error
}

func (a *fakeAssistant) TranslateCard(_ context.Context, _ *entity.BusinessCard, _ entity.CardLanguage) (*service.TranslatedFields, error) {
	if a.err != nil {
		return nil, a.err
	}

	return a.fields, nil
}

func (a *fakeAssistant) EditImage(_ context.Context, _, _ string) (string, error) {
	if a.err != nil {
		return "", a.err
	}

	return a.image, nil
}

// The fixed code every test flow is issued with. A wrong submission in
// tests uses a code that can never match this one.
const testOTPCode = "483920"

type testEnv struct {
	store     repository.Store
	mailer    *fakeMailer
	oauth     *fakeOAuthVerifier
	publisher *fakePublisher
	assistant *fakeAssistant

	auth     usecase.AuthUsecase
	cards    usecase.CardUsecase
	activity usecase.ActivityUsecase
	share    usecase.ShareUsecase
	wallet   usecase.WalletUsecase
	admin    usecase.AdminUsecase
	assist   usecase.AssistUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kvstore.NewStore(kvstore.NewMemoryKV(), logger)

	env := &testEnv{
		store:     store,
		mailer:    &fakeMailer{},
		oauth:     &fakeOAuthVerifier{},
		publisher: &fakePublisher{},
		assistant: &fakeAssistant{},
	}

	env.activity = NewActivityService(ActivityServiceParams{
		Store:     store,
		Publisher: env.publisher,
		Logger:    logger,
	})
	env.cards = NewCardService(CardServiceParams{
		Store:    store,
		Activity: env.activity,
		Logger:   logger,
	})
	env.auth = NewAuthService(AuthServiceParams{
		Store:    store,
		Hasher:   fakeHasher{},
		Tokens:   fakeTokenService{},
		Mailer:   env.mailer,
		OAuth:    env.oauth,
		Activity: env.activity,
		Cards:    env.cards,
		Logger:   logger,
	})
	env.auth.(*authService).newCode = func() string { return testOTPCode }

	env.share = NewShareService(ShareServiceParams{
		Cards:    env.cards,
		Activity: env.activity,
		QR:       fakeQRCodeService{},
		Config: &config.Config{
			Share: &config.ShareConfig{
				BaseURL:             "https://cards.tapify.co",
				OrderWhatsAppNumber: "96879398307",
			},
		},
		Logger: logger,
	})
	env.wallet = NewWalletService(WalletServiceParams{
		Store:  store,
		Cards:  env.cards,
		Logger: logger,
	})
	env.admin = NewAdminService(AdminServiceParams{
		Store:    store,
		Activity: env.activity,
		Logger:   logger,
	})
	env.assist = NewAssistService(AssistServiceParams{
		Store:     store,
		Assistant: env.assistant,
		Activity:  env.activity,
		Logger:    logger,
	})

	return env
}

// seedUser persists an account directly, bypassing the signup flow.
func (env *testEnv) seedUser(t *testing.T, email, password string, isAdmin bool) entity.User {
	t.Helper()

	ctx := context.Background()
	users, err := env.store.Users(ctx)
	require.NoError(t, err)

	hash := ""
	if password != "" {
		hash = "hashed:" + password
	}
	user := entity.User{
		ID:         entity.NewUserID(),
		Email:      email,
		Password:   hash,
		IsAdmin:    isAdmin,
		IsVerified: true,
	}
	users = append(users, user)
	require.NoError(t, env.store.PutUsers(ctx, users))

	return user
}

// seedCard provisions the default card for a user and returns it.
func (env *testEnv) seedCard(t *testing.T, user entity.User) *entity.BusinessCard {
	t.Helper()

	card, err := env.cards.EnsureCard(context.Background(), user)
	require.NoError(t, err)

	return card
}

// lastLog returns the newest activity entry.
func (env *testEnv) lastLog(t *testing.T) entity.ActivityLog {
	t.Helper()

	logs, err := env.activity.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, logs)

	return logs[0]
}
