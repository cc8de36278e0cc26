package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"leadflow/internal/authz"
	"leadflow/internal/models"
	"leadflow/internal/repositories"
	"leadflow/internal/services"
	"leadflow/internal/validation"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" validate:"required,min=6,max=20"`
	Role      string `json:"role" validate:"required,oneof=ADMIN EMPLOYEE"`
}

// string fields are trimmed before validation on the user paths
func (r *createUserRequest) trim() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Password = strings.TrimSpace(r.Password)
	r.Role = strings.TrimSpace(r.Role)
}

type updateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=20"`
	Role      *string `json:"role" validate:"omitempty,oneof=ADMIN EMPLOYEE"`
}

func (r *updateUserRequest) trim() {
	for _, p := range []*string{r.FirstName, r.LastName, r.Email, r.Phone, r.Password, r.Role} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}

// @Summary      List users
// @Description  Paginated user listing with optional free-text search
// @Tags         Users
// @Produce      json
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size"
// @Param        search  query  string  false  "Matches first name, email, phone or exact role"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	callerID, role := getCaller(c)
	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	filter := repositories.UserFilter{Search: c.Query("search")}
	if !authz.IsAdmin(role) {
		// non-admins see their own record only
		filter.OnlyID = callerID
	}

	// total is the system-wide count, not the filtered one
	totalUsers, err := h.service.Count()
	if err != nil {
		handleError(c, err)
		return
	}

	users, err := h.service.List(filter, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No users found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Users fetched successfully",
		"users":       users,
		"totalUsers":  totalUsers,
		"totalPages":  totalPages(totalUsers, limit),
		"currentPage": page,
	})
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	user, err := h.service.GetByID(id)
	if err != nil {
		handleError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User details fetched successfully",
		"user":    user,
	})
}

// @Summary      Create user
// @Description  Admin-only user creation with an explicit role
// @Tags         Users
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	_, role := getCaller(c)
	if role != authz.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "only admin can create users"})
		return
	}

	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}
	req.trim()
	if err := validation.Struct(req); err != nil {
		handleError(c, err)
		return
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
	}
	if err := h.service.Create(user, req.Password); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"user":    user,
	})
}

// Register is the public sign-up endpoint; the role is always EMPLOYEE.
func (h *UserHandler) Register(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}
	req.trim()
	req.Role = authz.RoleEmployee
	if err := validation.Struct(req); err != nil {
		handleError(c, err)
		return
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
	}
	if err := h.service.Create(user, req.Password); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"user":    user,
	})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	callerID, role := getCaller(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	// existence is checked before the payload is even validated
	existing, err := h.service.GetByID(id)
	if err != nil {
		handleError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
		return
	}

	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	req.trim()
	if err := validation.Struct(req); err != nil {
		handleError(c, err)
		return
	}

	if !authz.IsAdmin(role) && callerID != id {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "forbidden"})
		return
	}

	updated := *existing
	if req.FirstName != nil {
		updated.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		updated.LastName = *req.LastName
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
	}
	if req.Role != nil && authz.IsAdmin(role) {
		updated.Role = *req.Role
	}
	// this endpoint can never change a password: the stored hash always wins
	updated.PasswordHash = existing.PasswordHash

	if err := h.service.Update(&updated); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"user":    updated,
	})
}

func (h *UserHandler) DeactivateUser(c *gin.Context) {
	_, role := getCaller(c)
	if role != authz.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "only admin can deactivate users"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	existing, err := h.service.GetByID(id)
	if err != nil {
		handleError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
		return
	}

	if err := h.service.Deactivate(id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User successfully deactivated",
	})
}
