package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aggroplatform/aggro-admin/models"
	"github.com/aggroplatform/aggro-admin/store"
)

var (
	// ErrProfileNotFound means authentication succeeded but no profile
	// document exists for the identity. It is a hard failure; profiles are
	// never auto-provisioned.
	ErrProfileNotFound = errors.New("user data not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("user with this email already exists")
)

// Principal is the authenticated identity.
type Principal struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

// SessionState is tri-state on purpose: before the first auth notification
// the session is Unresolved, which route guards must not treat as Absent.
type SessionState int

const (
	Unresolved SessionState = iota
	Absent
	Present
)

// Manager wraps sign-up, sign-in, password reset and sign-out, and exposes
// the current principal as process-wide reactive state.
type Manager struct {
	gw     store.Gateway
	mailer Mailer

	mu        sync.Mutex
	state     SessionState
	principal Principal
	watchers  map[int]func(SessionState, Principal)
	nextWatch int
}

func NewManager(gw store.Gateway, mailer Mailer) *Manager {
	return &Manager{
		gw:       gw,
		mailer:   mailer,
		state:    Unresolved,
		watchers: map[int]func(SessionState, Principal){},
	}
}

// SignUp registers a new account and establishes the session for it.
func (m *Manager) SignUp(ctx context.Context, email, password string, profile store.Document) (Principal, error) {
	p, err := m.CreateAccount(ctx, email, password, profile)
	if err != nil {
		return Principal{}, err
	}
	m.setSession(Present, p)
	return p, nil
}

// CreateAccount creates an auth identity, then independently writes the
// parallel profile document keyed by the identity id. The two steps are not
// transactional: a failed profile write leaves an orphaned identity behind.
// The current session is left untouched, so an admin adding an account stays
// signed in as themselves.
func (m *Manager) CreateAccount(ctx context.Context, email, password string, profile store.Document) (Principal, error) {
	if email == "" || password == "" {
		return Principal{}, fmt.Errorf("email and password are required")
	}

	existing, err := m.gw.Find(ctx, store.Credentials, "email", email)
	if err != nil {
		return Principal{}, err
	}
	if len(existing) > 0 {
		return Principal{}, ErrEmailInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Principal{}, fmt.Errorf("failed to hash password: %w", err)
	}

	uid := uuid.New().String()
	createdAt := time.Now().Format(time.RFC3339)

	err = m.gw.Put(ctx, store.Credentials, uid, store.Document{
		"email":     email,
		"password":  string(hashed),
		"createdAt": createdAt,
	})
	if err != nil {
		return Principal{}, err
	}

	userDoc := store.Document{
		"uid":       uid,
		"email":     email,
		"password":  string(hashed),
		"createdAt": createdAt,
	}
	for k, v := range profile {
		userDoc[k] = v
	}
	if err := m.gw.Put(ctx, store.Users, uid, userDoc); err != nil {
		// Orphaned identity: no compensating rollback exists.
		return Principal{}, err
	}

	return principalFromDoc(uid, email, userDoc), nil
}

// SignIn authenticates against the credential record and then requires a
// matching profile document to exist.
func (m *Manager) SignIn(ctx context.Context, email, password string) (Principal, error) {
	if email == "" || password == "" {
		return Principal{}, fmt.Errorf("email and password are required")
	}

	creds, err := m.gw.Find(ctx, store.Credentials, "email", email)
	if err != nil {
		return Principal{}, err
	}
	if len(creds) == 0 {
		return Principal{}, ErrInvalidCredentials
	}
	cred := creds[0]

	hash := models.AsString(cred["password"])
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return Principal{}, ErrInvalidCredentials
	}

	uid := models.AsString(cred["id"])
	profile, err := m.gw.ByID(ctx, store.Users, uid)
	if err != nil {
		return Principal{}, err
	}
	if profile == nil {
		return Principal{}, ErrProfileNotFound
	}

	p := principalFromDoc(uid, email, profile)
	m.setSession(Present, p)
	return p, nil
}

// RequestPasswordReset stores a reset token on the credential record and
// mails it. The happy path always reports success; provider errors surface
// as-is.
func (m *Manager) RequestPasswordReset(ctx context.Context, email string) error {
	creds, err := m.gw.Find(ctx, store.Credentials, "email", email)
	if err != nil {
		return err
	}
	if len(creds) == 0 {
		return fmt.Errorf("user not found")
	}
	cred := creds[0]

	token := uuid.New().String()
	err = m.gw.Update(ctx, store.Credentials, models.AsString(cred["id"]), store.Document{
		"resetToken":       token,
		"resetRequestedAt": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	name := models.AsString(cred["email"])
	return m.mailer.Send(name, email, "Reset your password",
		fmt.Sprintf("Your password reset token is: %s", token),
		fmt.Sprintf("<h1>Your password reset token is: <strong>%s</strong></h1>", token))
}

// ResetPassword completes the reset flow with the emailed token.
func (m *Manager) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	if email == "" || token == "" || newPassword == "" {
		return fmt.Errorf("email, token and new password are required")
	}

	creds, err := m.gw.Find(ctx, store.Credentials, "email", email)
	if err != nil {
		return err
	}
	if len(creds) == 0 {
		return fmt.Errorf("user not found")
	}
	cred := creds[0]

	if models.AsString(cred["resetToken"]) == "" || models.AsString(cred["resetToken"]) != token {
		return fmt.Errorf("invalid reset token")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return m.gw.Update(ctx, store.Credentials, models.AsString(cred["id"]), store.Document{
		"password":   string(hashed),
		"resetToken": "",
	})
}

// SignOut clears the session.
func (m *Manager) SignOut() {
	m.setSession(Absent, Principal{})
}

// State returns the current session state and principal.
func (m *Manager) State() (SessionState, Principal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.principal
}

// Watch registers fn to be notified on every principal change. fn fires once
// immediately with the current state. The returned cancel releases the
// registration.
func (m *Manager) Watch(fn func(SessionState, Principal)) (cancel func()) {
	m.mu.Lock()
	id := m.nextWatch
	m.nextWatch++
	m.watchers[id] = fn
	state, principal := m.state, m.principal
	m.mu.Unlock()

	fn(state, principal)

	return func() {
		m.mu.Lock()
		delete(m.watchers, id)
		m.mu.Unlock()
	}
}

func (m *Manager) setSession(state SessionState, p Principal) {
	m.mu.Lock()
	m.state = state
	m.principal = p
	var fns []func(SessionState, Principal)
	for _, fn := range m.watchers {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(state, p)
	}
}

func principalFromDoc(uid, email string, doc store.Document) Principal {
	name := models.AsString(doc["username"])
	if name == "" {
		name = models.AsString(doc["name"])
	}
	return Principal{
		UID:         uid,
		Email:       email,
		DisplayName: name,
		Role:        models.AsString(doc["role"]),
	}
}
