package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"mgaBack/internal/models"
	"mgaBack/internal/services"
)

type UserHandler struct {
	Service *services.UserService
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrUserPending) {
			http.Error(w, "Tài khoản của bạn đang chờ duyệt bởi quản trị viên.", http.StatusForbidden)
			return
		}
		if errors.Is(err, models.ErrInvalidCredentials) {
			http.Error(w, "Email hoặc mật khẩu không đúng.", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(resp)
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Name, email and password are required", http.StatusBadRequest)
		return
	}
	user, err := h.Service.SignUp(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			http.Error(w, "Email này đã tồn tại.", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to sign up", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user":    user,
		"message": "Đăng ký thành công! Vui lòng chờ quản trị viên duyệt tài khoản của bạn.",
	})
}

func (h *UserHandler) LogOut(w http.ResponseWriter, r *http.Request) {
	h.Service.LogOut(r.Context(), currentUserID(r))
	w.WriteHeader(http.StatusOK)
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.Service.GetAllUsers(r.Context()))
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	user, err := h.Service.GetUserByID(r.Context(), id)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(user)
}

// ApproveUser activates a pending registration. Admin only.
func (h *UserHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	user, err := h.Service.ApproveUser(r.Context(), id)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(user)
}

// CreateUser is the admin path: the account is active immediately and may
// carry any role.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		models.SignUpRequest
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Role == "" {
		req.Role = models.RoleCollaborator
	}
	user, err := h.Service.AddUserByAdmin(r.Context(), req.SignUpRequest, req.Role)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			http.Error(w, "Email này đã tồn tại.", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// AddCollaborator adds a member to the leader's own group.
func (h *UserHandler) AddCollaborator(w http.ResponseWriter, r *http.Request) {
	leader, err := h.Service.GetUserByID(r.Context(), currentUserID(r))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	user, err := h.Service.AddCollaboratorToGroup(r.Context(), leader.Group, req)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			http.Error(w, "Email này đã tồn tại.", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to add collaborator", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// GetUsersByGroup lists a group's collaborators (leaders excluded).
func (h *UserHandler) GetUsersByGroup(w http.ResponseWriter, r *http.Request) {
	group := getParam(r, "group")
	if group == "" {
		http.Error(w, "Group is required", http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(h.Service.GetUsersByGroup(r.Context(), group))
}
