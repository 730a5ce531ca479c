// Package flow models the multi-step verification flow as an explicit
// state machine. Each in-flight flow keeps its one-time code in process
// memory only; codes are never persisted.
package flow

import (
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	domainerrors "tapify/internal/domain/errors"

	"github.com/google/uuid"
)

// View is a screen the client should present next.
type View string

const (
	ViewLanding        View = "landing"
	ViewLogin          View = "login"
	ViewVerifyEmail    View = "verify_email"
	ViewEnterOTP       View = "enter_otp"
	ViewRegister       View = "register"
	ViewForgotPassword View = "forgot_password"
	ViewResetPassword  View = "reset_password"
	ViewEditor         View = "editor"
	ViewAdmin          View = "admin"
)

// Context distinguishes why a verification flow was started, which
// decides where a correct code submission leads.
type Context string

const (
	ContextSignup Context = "signup"
	ContextSocial Context = "social"
	ContextReset  Context = "reset"
)

// Flow is one in-flight email verification. It is created on
// verify_email submission and discarded once the flow completes.
type Flow struct {
	ID       string
	Email    string
	Context  Context
	View     View
	IssuedAt time.Time

	code string
}

// NewCode returns a 6-digit numeric code, uniformly random in
// [100000, 999999]. The code is a delivery-verification affordance,
// not a security boundary.
func NewCode() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}

// New starts a verification flow for the given email and context.
// The flow begins on the enter_otp view with the supplied code active.
func New(email string, fc Context, code string) *Flow {
	return &Flow{
		ID:       uuid.NewString(),
		Email:    email,
		Context:  fc,
		View:     ViewEnterOTP,
		IssuedAt: time.Now(),
		code:     code,
	}
}

// Code exposes the active code so a simulated delivery channel can show
// it to the user.
func (f *Flow) Code() string {
	return f.code
}

// Resend replaces the active code. The previous code stops matching
// immediately; the flow stays on enter_otp.
func (f *Flow) Resend(code string) {
	f.code = code
	f.IssuedAt = time.Now()
}

// Submit checks a candidate code. A mismatch keeps the flow on
// enter_otp and returns ErrInvalidCode. A match advances the view by
// context: signup goes to register, reset goes to reset_password and
// social flows complete directly into the editor.
func (f *Flow) Submit(code string) (View, error) {
	if code != f.code {
		return ViewEnterOTP, domainerrors.ErrInvalidCode
	}

	switch f.Context {
	case ContextSignup:
		f.View = ViewRegister
	case ContextReset:
		f.View = ViewResetPassword
	case ContextSocial:
		f.View = ViewEditor
	}

	return f.View, nil
}

// Registry tracks in-flight flows by id. It is safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	flows map[string]*Flow
}

// NewRegistry creates an empty flow registry.
func NewRegistry() *Registry {
	return &Registry{flows: make(map[string]*Flow)}
}

// Put stores a flow, replacing any flow with the same id.
func (r *Registry) Put(f *Flow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flows[f.ID] = f
}

// Get looks up a flow by id.
func (r *Registry) Get(id string) (*Flow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flows[id]

	return f, ok
}

// Delete discards a flow. Deleting an unknown id is a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flows, id)
}
