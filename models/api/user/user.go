package userapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"pmfin-backend/models"
	apimodels "pmfin-backend/models/api"
	dbmodels "pmfin-backend/models/db"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

type LoginResponse struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}

type Session struct {
	UserID string          `json:"id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	Banned bool            `json:"banned"`
}

type UserCreateData struct {
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

func (u UserCreateData) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("email is required")
	}
	if len(u.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if !u.Role.IsValid() {
		return errors.Errorf("unknown role: %v", u.Role)
	}
	return nil
}

type SetRoleData struct {
	Role models.UserRole `json:"role"`
}

func (s SetRoleData) Validate() error {
	if !s.Role.IsValid() {
		return errors.Errorf("unknown role: %v", s.Role)
	}
	return nil
}

type BanData struct {
	Reason string `json:"reason"`
}

func (b BanData) Validate() error {
	if strings.TrimSpace(b.Reason) == "" {
		return errors.New("ban reason is required")
	}
	return nil
}

type UserView struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      models.UserRole `json:"role"`
	RoleName  string          `json:"role_name"`
	Banned    bool            `json:"banned"`
	BanReason string          `json:"ban_reason,omitempty"`
	LastLogin *time.Time      `json:"last_login,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func UserConvert(rec dbmodels.User) UserView {
	return UserView{
		ID:        rec.ID,
		Email:     rec.Email,
		Name:      rec.Name,
		Role:      rec.Role,
		RoleName:  rec.Role.ToHuman(),
		Banned:    rec.Banned,
		BanReason: rec.BanReason,
		LastLogin: rec.LastLogin,
		CreatedAt: rec.CreatedAt,
	}
}

func SessionConvert(rec dbmodels.User) Session {
	return Session{
		UserID: rec.ID,
		Name:   rec.Name,
		Email:  rec.Email,
		Role:   rec.Role,
		Banned: rec.Banned,
	}
}

type UserFilter struct {
	apimodels.Pagination
	Search string          `json:"search"`
	Role   models.UserRole `json:"role"`
}
