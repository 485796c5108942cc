package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aggroplatform/aggro-admin/models"
	"github.com/aggroplatform/aggro-admin/store"
)

type fakeMailer struct {
	sent []string
}

func (m *fakeMailer) Send(toName, toEmail, subject, textContent, htmlContent string) error {
	m.sent = append(m.sent, toEmail)
	return nil
}

func newTestManager() (*Manager, *store.MemoryGateway, *fakeMailer) {
	gw := store.NewMemoryGateway()
	mailer := &fakeMailer{}
	return NewManager(gw, mailer), gw, mailer
}

func TestSignUpCreatesIdentityAndProfile(t *testing.T) {
	mgr, gw, _ := newTestManager()
	ctx := context.Background()

	p, err := mgr.SignUp(ctx, "admin@example.com", "secret123", store.Document{
		"name": "Asha",
		"role": "Super Admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", p.Email)
	assert.Equal(t, "Asha", p.DisplayName)
	assert.True(t, models.IsSuperAdmin(p.Role))

	state, current := mgr.State()
	assert.Equal(t, Present, state)
	assert.Equal(t, p.UID, current.UID)

	// The profile document lives in users keyed by the identity id.
	profile, err := gw.ByID(ctx, store.Users, p.UID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Super Admin", profile["role"])
	assert.Equal(t, p.UID, profile["uid"])

	// The stored password is a hash, never the plaintext.
	cred, err := gw.ByID(ctx, store.Credentials, p.UID)
	require.NoError(t, err)
	require.NotNil(t, cred)
	hash := models.AsString(cred["password"])
	assert.NotEqual(t, "secret123", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret123")))
}

func TestSignUpDuplicateEmail(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()

	_, err := mgr.SignUp(ctx, "admin@example.com", "secret123", nil)
	require.NoError(t, err)

	_, err = mgr.SignUp(ctx, "admin@example.com", "other456", nil)
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestCreateAccountKeepsCurrentSession(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()

	me, err := mgr.SignUp(ctx, "me@example.com", "secret123", store.Document{"role": "Super Admin"})
	require.NoError(t, err)

	_, err = mgr.CreateAccount(ctx, "new@example.com", "secret456", store.Document{"role": "Admin"})
	require.NoError(t, err)

	state, current := mgr.State()
	assert.Equal(t, Present, state)
	assert.Equal(t, me.UID, current.UID, "adding an account does not switch the session")
}

func TestSignInWrongPassword(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()

	_, err := mgr.SignUp(ctx, "admin@example.com", "secret123", nil)
	require.NoError(t, err)
	mgr.SignOut()

	_, err = mgr.SignIn(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = mgr.SignIn(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	state, _ := mgr.State()
	assert.Equal(t, Absent, state, "failed sign-in leaves the session absent")
}

func TestSignInMissingProfile(t *testing.T) {
	mgr, gw, _ := newTestManager()
	ctx := context.Background()

	p, err := mgr.SignUp(ctx, "admin@example.com", "secret123", nil)
	require.NoError(t, err)
	mgr.SignOut()

	// An identity whose profile document was deleted cannot sign in.
	require.NoError(t, gw.Delete(ctx, store.Users, p.UID))
	_, err = mgr.SignIn(ctx, "admin@example.com", "secret123")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestWatchTriState(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()

	var states []SessionState
	cancel := mgr.Watch(func(s SessionState, _ Principal) { states = append(states, s) })
	defer cancel()

	require.Equal(t, []SessionState{Unresolved}, states, "watch fires immediately before any auth event")

	_, err := mgr.SignUp(ctx, "admin@example.com", "secret123", nil)
	require.NoError(t, err)
	mgr.SignOut()

	assert.Equal(t, []SessionState{Unresolved, Present, Absent}, states)
}

func TestPasswordResetFlow(t *testing.T) {
	mgr, gw, mailer := newTestManager()
	ctx := context.Background()

	p, err := mgr.SignUp(ctx, "admin@example.com", "secret123", nil)
	require.NoError(t, err)
	mgr.SignOut()

	require.NoError(t, mgr.RequestPasswordReset(ctx, "admin@example.com"))
	assert.Equal(t, []string{"admin@example.com"}, mailer.sent)

	cred, err := gw.ByID(ctx, store.Credentials, p.UID)
	require.NoError(t, err)
	token := models.AsString(cred["resetToken"])
	require.NotEmpty(t, token)

	assert.Error(t, mgr.ResetPassword(ctx, "admin@example.com", "bad-token", "newpass789"))
	require.NoError(t, mgr.ResetPassword(ctx, "admin@example.com", token, "newpass789"))

	_, err = mgr.SignIn(ctx, "admin@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = mgr.SignIn(ctx, "admin@example.com", "newpass789")
	assert.NoError(t, err)

	// The token is single-use.
	assert.Error(t, mgr.ResetPassword(ctx, "admin@example.com", token, "again123"))
}

func TestSignUpFailureLeavesNoSession(t *testing.T) {
	mgr, _, _ := newTestManager()

	_, err := mgr.SignUp(context.Background(), "", "secret123", nil)
	require.Error(t, err)

	state, _ := mgr.State()
	assert.Equal(t, Unresolved, state)
}
