package repositories

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mgaBack/internal/models"
)

const (
	usersKey    = "mga365:users"
	sessionsKey = "mga365:sessions"
)

// UserRepository keeps accounts in memory with a key-value shadow, same as the
// property collection. Sessions (refresh tokens) live in the store as well.
type UserRepository struct {
	mu       sync.RWMutex
	users    []models.User
	sessions map[string]models.Session // keyed by refresh token
	store    KeyValueStore
}

func NewUserRepository(store KeyValueStore) *UserRepository {
	r := &UserRepository{
		sessions: make(map[string]models.Session),
		store:    store,
	}
	var saved []models.User
	if loadJSON(context.Background(), store, usersKey, &saved) && len(saved) > 0 {
		r.users = saved
	} else {
		r.users = seedUsers()
	}
	var sessions []models.Session
	if loadJSON(context.Background(), store, sessionsKey, &sessions) {
		for _, s := range sessions {
			if time.Now().Before(s.ExpiresAt) {
				r.sessions[s.RefreshToken] = s
			}
		}
	}
	return r
}

func (r *UserRepository) persist(ctx context.Context) {
	saveJSON(ctx, r.store, usersKey, r.users)
}

func (r *UserRepository) persistSessions(ctx context.Context) {
	sessions := make([]models.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	saveJSON(ctx, r.store, sessionsKey, sessions)
}

func (r *UserRepository) GetAll(ctx context.Context) []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

// GetByName resolves a collaborator display name to an account. Listings
// reference collaborators by name only, so a miss is not an error.
func (r *UserRepository) GetByName(ctx context.Context, name string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Name == name {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

// GetByGroup returns the members of a group, excluding its leader.
func (r *UserRepository) GetByGroup(ctx context.Context, group string) []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.User
	for _, u := range r.users {
		if u.Group == group && u.Role != models.RoleGroupLeader {
			out = append(out, u)
		}
	}
	return out
}

// Create adds a user, assigning id = max existing + 1.
func (r *UserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return models.User{}, models.ErrDuplicateEmail
		}
	}
	newID := 1
	for _, u := range r.users {
		if u.ID >= newID {
			newID = u.ID + 1
		}
	}
	user.ID = newID
	user.CreatedAt = time.Now()
	r.users = append(r.users, user)
	r.persist(ctx)
	return user, nil
}

// Approve activates a pending account. Users who registered without an
// invitation are placed into the default group.
func (r *UserRepository) Approve(ctx context.Context, id int) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Status = models.StatusActive
			if r.users[i].Group == models.NoGroup {
				r.users[i].Group = "Nhóm A"
			}
			r.persist(ctx)
			return r.users[i], nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

func (r *UserRepository) SaveSession(ctx context.Context, session models.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.RefreshToken] = session
	r.persistSessions(ctx)
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[refreshToken]
	if !ok {
		return models.Session{}, models.ErrSessionNotFound
	}
	return session, nil
}

func (r *UserRepository) DeleteSessionsForUser(ctx context.Context, userID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	r.persistSessions(ctx)
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}
	return string(hash)
}

func seedUsers() []models.User {
	demoHash := mustHash("password")
	return []models.User{
		{ID: 1, Name: "Chu Bình An", Email: "admin@binhanapp.com", PasswordHash: demoHash, Role: models.RoleAdmin, Status: models.StatusActive, Group: "Phòng Điều Hành"},
		{ID: 2, Name: "Trưởng Nhóm A", Email: "lead.a@binhanapp.com", PasswordHash: demoHash, Role: models.RoleGroupLeader, Status: models.StatusActive, Group: "Nhóm A"},
		{ID: 3, Name: "Nguyễn Văn Hùng", Email: "ctv.hung@binhanapp.com", PasswordHash: demoHash, Role: models.RoleCollaborator, Status: models.StatusActive, Group: "Nhóm A"},
		{ID: 4, Name: "Phạm Thị Dung", Email: "ctv.dung@binhanapp.com", PasswordHash: demoHash, Role: models.RoleCollaborator, Status: models.StatusActive, Group: "Nhóm B"},
		{ID: 5, Name: "Trưởng Nhóm B", Email: "lead.b@binhanapp.com", PasswordHash: demoHash, Role: models.RoleGroupLeader, Status: models.StatusActive, Group: "Nhóm B"},
		{ID: 6, Name: "Lê Minh Tuấn", Email: "ctv.tuan@binhanapp.com", PasswordHash: demoHash, Role: models.RoleCollaborator, Status: models.StatusPending, Group: "Nhóm A"},
	}
}
