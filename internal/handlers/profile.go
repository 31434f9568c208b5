package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/snapfeed/apiserver/internal/services"
	"github.com/snapfeed/apiserver/internal/storage"
	"github.com/snapfeed/apiserver/internal/store"
	"github.com/snapfeed/apiserver/internal/uploads"
	"github.com/snapfeed/apiserver/types"
)

const avatarFormField = "image"

// ProfileHandler serves the authenticated user's profile and avatar upload.
type ProfileHandler struct {
	users          *services.UserService
	posts          *services.PostService
	avatars        *storage.Storage
	maxAvatarBytes int64
}

// NewProfileHandler constructs a handler with the provided dependencies.
func NewProfileHandler(users *services.UserService, posts *services.PostService, avatars *storage.Storage, maxAvatarBytes int64) *ProfileHandler {
	return &ProfileHandler{
		users:          users,
		posts:          posts,
		avatars:        avatars,
		maxAvatarBytes: maxAvatarBytes,
	}
}

// ProfileRouter registers profile routes on the given router. All routes
// require authentication.
func ProfileRouter(r chi.Router, users *services.UserService, posts *services.PostService, avatars *storage.Storage, maxAvatarBytes int64, authMiddleware func(http.Handler) http.Handler) {
	handler := NewProfileHandler(users, posts, avatars, maxAvatarBytes)

	r.With(authMiddleware).Get("/me", handler.Me)
	r.With(authMiddleware).Post("/me/avatar", handler.UploadAvatar)
}

// Me returns the current user with their posts populated.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	posts, err := h.posts.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load posts")
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{User: user, Posts: posts})
}

// UploadAvatar stores an uploaded picture under a generated name and
// associates it with the account.
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(h.maxAvatarBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, fileHeader, err := r.FormFile(avatarFormField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	data, err := readFileLimited(file, h.maxAvatarBytes)
	_ = file.Close()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	name, err := uploads.GenerateName(path.Ext(fileHeader.Filename))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to name upload")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if err := h.avatars.PutAvatar(r.Context(), name, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	user, err := h.users.SetProfilePic(r.Context(), claims.Email, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ProfileResponse is the profile payload: the user plus their posts.
type ProfileResponse struct {
	User  types.User   `json:"user"`
	Posts []types.Post `json:"posts"`
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	return data, nil
}
