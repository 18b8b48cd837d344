package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/anirudh/expense-tracker/backend/internal/models"
	"github.com/anirudh/expense-tracker/backend/internal/store"
	"github.com/anirudh/expense-tracker/backend/internal/web"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, fullName, email, username, hashedPassword string) (*models.User, error)
	GetUserByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users      UserStore
	sessions   *SessionStore
	bcryptCost int
}

func NewHandler(users UserStore, sessions *SessionStore, bcryptCost int) *Handler {
	return &Handler{users: users, sessions: sessions, bcryptCost: bcryptCost}
}

var (
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// validateRegister checks field shape only; uniqueness is a separate
// pre-check so validation stays synchronous.
func validateRegister(req models.RegisterRequest) []web.FieldError {
	var fields []web.FieldError
	if req.FullName == "" {
		fields = append(fields, web.FieldError{Field: "full_name", Message: "Full Name is required"})
	}
	if !emailPattern.MatchString(req.Email) {
		fields = append(fields, web.FieldError{Field: "email", Message: "Invalid email address"})
	}
	if !usernamePattern.MatchString(req.Username) {
		fields = append(fields, web.FieldError{Field: "username", Message: "Username must be alphanumeric"})
	}
	if len(req.Password) < 6 {
		fields = append(fields, web.FieldError{Field: "password", Message: "Password must be at least 6 characters long"})
	}
	return fields
}

// Register creates a new user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, web.KindValidation, "invalid request body")
		return
	}

	fields := validateRegister(req)
	if len(fields) == 0 {
		// Uniqueness pre-checks run only once the fields are well-formed.
		taken, err := h.users.EmailTaken(r.Context(), req.Email)
		if err != nil {
			log.Printf("email pre-check: %v", err)
			web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error registering user")
			return
		}
		if taken {
			fields = append(fields, web.FieldError{Field: "email", Message: "Email already in use"})
		}

		taken, err = h.users.UsernameTaken(r.Context(), req.Username)
		if err != nil {
			log.Printf("username pre-check: %v", err)
			web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error registering user")
			return
		}
		if taken {
			fields = append(fields, web.FieldError{Field: "username", Message: "Username already in use"})
		}
	}
	if len(fields) > 0 {
		web.ValidationFailed(w, fields)
		return
	}

	hashed, err := HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		log.Printf("hash password: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error registering user")
		return
	}

	if _, err := h.users.CreateUser(r.Context(), req.FullName, req.Email, req.Username, hashed); err != nil {
		log.Printf("create user: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error registering user")
		return
	}

	web.Message(w, http.StatusCreated, "User registered successfully")
}

// Login authenticates a user and creates a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, web.KindValidation, "invalid request body")
		return
	}

	var fields []web.FieldError
	if req.EmailOrUsername == "" {
		fields = append(fields, web.FieldError{Field: "email-or-username", Message: "Email or Username is required"})
	}
	if req.Password == "" {
		fields = append(fields, web.FieldError{Field: "password", Message: "Password is required"})
	}
	if len(fields) > 0 {
		web.ValidationFailed(w, fields)
		return
	}

	user, err := h.users.GetUserByEmailOrUsername(r.Context(), req.EmailOrUsername)
	if errors.Is(err, store.ErrNotFound) {
		web.Error(w, http.StatusBadRequest, web.KindAuthentication, "Invalid email or username")
		return
	}
	if err != nil {
		log.Printf("lookup user: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error logging in")
		return
	}

	if !CheckPassword(req.Password, user.Password) {
		web.Error(w, http.StatusBadRequest, web.KindAuthentication, "Invalid password")
		return
	}

	token, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		log.Printf("create session: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error logging in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL / time.Second),
	})

	web.Message(w, http.StatusOK, "Login successful")
}

// Logout destroys the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			log.Printf("destroy session: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	web.Message(w, http.StatusOK, "Logged out")
}

// UserInfo returns the authenticated user's username.
func (h *Handler) UserInfo(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())

	user, err := h.users.GetUserByID(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		web.Error(w, http.StatusNotFound, web.KindNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("get user: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error fetching user info")
		return
	}

	web.JSON(w, http.StatusOK, map[string]string{"username": user.Username})
}

// Profile returns the authenticated user's full record, minus the
// password hash.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())

	user, err := h.users.GetUserByID(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		web.Error(w, http.StatusNotFound, web.KindNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("get user: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error fetching user profile")
		return
	}

	web.JSON(w, http.StatusOK, user)
}
