package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techsanasilver/SanaSilver/internal/domain"
	"github.com/techsanasilver/SanaSilver/internal/service"
)

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 200 {object} domain.Admin
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	a, access, refresh, err := s.admins.Login(c, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	s.setAuthCookies(c, access, refresh)
	c.JSON(http.StatusOK, a)
}

// @Summary Logout: invalidates all refresh tokens
// @Tags auth
// @Success 204
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (s *Server) logout(c *gin.Context) {
	a := currentAdmin(c)
	if err := s.admins.Logout(c, a.ID); err != nil {
		fail(c, err)
		return
	}
	s.clearAuthCookies(c)
	c.Status(http.StatusNoContent)
}

// @Summary Issue a fresh access token from the refresh cookie
// @Tags auth
// @Success 204
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (s *Server) refresh(c *gin.Context) {
	token, err := c.Cookie(refreshCookie)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}
	access, err := s.admins.RefreshAccess(c, token)
	if err != nil {
		fail(c, err)
		return
	}
	c.SetCookie(accessCookie, access, int(s.accessTTL.Seconds()), "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// @Summary Current admin
// @Tags auth
// @Produce json
// @Success 200 {object} domain.Admin
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentAdmin(c))
}

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// @Summary Change own password; forces re-login everywhere
// @Tags auth
// @Accept json
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /auth/change-password [post]
func (s *Server) changePassword(c *gin.Context) {
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	a := currentAdmin(c)
	if err := s.admins.ChangePassword(c, a.ID, req.OldPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	s.clearAuthCookies(c)
	c.Status(http.StatusNoContent)
}

type updateProfileReq struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// @Summary Update own name/phone
// @Tags auth
// @Accept json
// @Produce json
// @Param input body updateProfileReq true "Partial profile"
// @Success 200 {object} domain.Admin
// @Failure 400 {object} map[string]string
// @Router /auth/profile [patch]
func (s *Server) updateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	a := currentAdmin(c)
	out, err := s.admins.UpdateProfile(c, a.ID, service.UpdateProfileInput{Name: req.Name, Phone: req.Phone})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type registerAdminReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// @Summary Register a new admin account
// @Tags admins
// @Accept json
// @Produce json
// @Param input body registerAdminReq true "Account"
// @Success 201 {object} domain.Admin
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admins [post]
func (s *Server) registerAdmin(c *gin.Context) {
	var req registerAdminReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	a, err := s.admins.Register(c, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// @Summary List admin accounts
// @Tags admins
// @Produce json
// @Success 200 {array} domain.Admin
// @Failure 403 {object} map[string]string
// @Router /admins [get]
func (s *Server) listAdmins(c *gin.Context) {
	list, err := s.admins.ListAdmins(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get admin by id
// @Tags admins
// @Produce json
// @Param id path string true "Admin ID"
// @Success 200 {object} domain.Admin
// @Failure 404 {object} map[string]string
// @Router /admins/{id} [get]
func (s *Server) getAdmin(c *gin.Context) {
	a, err := s.admins.GetAdmin(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) setAuthCookies(c *gin.Context, access, refresh string) {
	c.SetCookie(accessCookie, access, int(s.accessTTL.Seconds()), "/", "", false, true)
	c.SetCookie(refreshCookie, refresh, int(s.refreshTTL.Seconds()), "/", "", false, true)
}

func (s *Server) clearAuthCookies(c *gin.Context) {
	c.SetCookie(accessCookie, "", -1, "/", "", false, true)
	c.SetCookie(refreshCookie, "", -1, "/", "", false, true)
}
