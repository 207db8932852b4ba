package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/promanage/promanage-api/internal/api/shared"
	"github.com/promanage/promanage-api/internal/domain"
	"github.com/promanage/promanage-api/internal/service/auth"
	"github.com/promanage/promanage-api/internal/store"
)

// UserHandler handles registration, login, and profile API requests.
type UserHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
) *UserHandler {
	return &UserHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
	}
}

// Register handles POST /api/user/register.
// Duplicate detection rides on the unique email index rather than a prior
// existence check, so two concurrent registrations cannot both succeed.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	hashedPassword, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "User registration failed")
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, hashedPassword)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			RespondWithError(w, r, http.StatusBadRequest, "User already exists")
			return
		}
		slog.Error("failed to create user", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "User registration failed")
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, MessageResponse{Message: "User registered successfully"})
}

// Login handles POST /api/user/login.
// An unknown email and a wrong password produce the identical response, so
// the endpoint cannot be used to probe which addresses are registered.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid credentials")
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusBadRequest, "Invalid credentials")
			return
		}
		slog.Error("failed to get user by email", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Login failed")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, LoginResponse{Token: token})
}

// Verify handles GET /api/user/verify. Reaching this handler means the auth
// middleware accepted the token, so it only acknowledges.
func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: ""})
}

// Dashboard handles GET /api/user/dashboard.
func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Dashboard"})
}

// GetSetting handles GET /api/user/setting. It re-reads the record so a user
// deleted between authentication and this lookup gets a 404 rather than
// stale data.
func (h *UserHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	caller, ok := shared.UserFromContext(r.Context())
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "User not found")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), caller.ID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to fetch user", "error", err, "user_id", caller.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to fetch user data")
		return
	}

	// The HashedPassword field carries a json:"-" tag, so the hash never
	// appears in the response.
	RespondWithJSON(w, r, http.StatusOK, user)
}

// UpdateProfile handles POST /api/user/update.
// The old-password check is unconditional: even a pure name change requires
// re-authentication with the current password.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := shared.UserFromContext(r.Context())
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "User not found")
		return
	}

	var req UpdateProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Name == nil {
		RespondWithError(w, r, http.StatusBadRequest, "Name is required")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), caller.ID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to fetch user for update", "error", err, "user_id", caller.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "User update failed")
		return
	}

	if req.UpdateEmail != "" && req.UpdateEmail != user.Email {
		if _, err := h.userStore.GetByEmail(r.Context(), req.UpdateEmail); err == nil {
			RespondWithError(w, r, http.StatusBadRequest, "Email already in use")
			return
		} else if !errors.Is(err, store.ErrUserNotFound) {
			slog.Error("failed to check email availability", "error", err)
			RespondWithError(w, r, http.StatusInternalServerError, "User update failed")
			return
		}
		user.Email = req.UpdateEmail
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.OldPassword); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Old password is incorrect")
		return
	}

	if req.NewPassword != "" && len(req.NewPassword) < domain.MinPasswordLength {
		RespondWithError(w, r, http.StatusBadRequest, "New password must be at least 6 characters long")
		return
	}

	if *req.Name != "" {
		user.Name = *req.Name
	}

	if req.NewPassword != "" {
		hashed, err := h.passwordHasher.Hash(req.NewPassword)
		if err != nil {
			slog.Error("failed to hash new password", "error", err, "user_id", user.ID)
			RespondWithError(w, r, http.StatusInternalServerError, "User update failed")
			return
		}
		user.HashedPassword = hashed
	}

	if err := h.userStore.Update(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			// The availability check above raced with another update.
			RespondWithError(w, r, http.StatusBadRequest, "Email already in use")
			return
		}
		slog.Error("failed to update user", "error", err, "user_id", user.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "User update failed")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "User information updated successfully"})
}

// SearchByEmail handles GET /api/user/search?email=<prefix>. The caller's own
// email is excluded and only the email field of each match is returned.
func (h *UserHandler) SearchByEmail(w http.ResponseWriter, r *http.Request) {
	caller, ok := shared.UserFromContext(r.Context())
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "User not found")
		return
	}

	prefix := r.URL.Query().Get("email")

	emails, err := h.userStore.SearchEmailsByPrefix(r.Context(), prefix, caller.ID)
	if err != nil {
		slog.Error("failed to search users", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	results := make([]EmailResult, 0, len(emails))
	for _, email := range emails {
		results = append(results, EmailResult{Email: email})
	}

	RespondWithJSON(w, r, http.StatusOK, results)
}

// GetName handles GET /api/user/name?id=<uuid>.
func (h *UserHandler) GetName(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to fetch user by id", "error", err, "user_id", id)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NameResponse{Name: user.Name})
}
