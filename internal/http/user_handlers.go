package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobly/internal/auth"
	"jobly/internal/domain"
)

type createUserRequest struct {
	Username  string `json:"username" binding:"required,min=1,max=25"`
	Password  string `json:"password" binding:"omitempty,min=5,max=20"`
	FirstName string `json:"firstName" binding:"required,min=1,max=30"`
	LastName  string `json:"lastName" binding:"required,min=1,max=30"`
	Email     string `json:"email" binding:"required,email,min=6,max=60"`
	IsAdmin   bool   `json:"isAdmin"`
}

type updateUserRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=30"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=30"`
	Email     *string `json:"email" binding:"omitempty,email,min=6,max=60"`
	Password  *string `json:"password" binding:"omitempty,min=5,max=20"`
	IsAdmin   *bool   `json:"isAdmin"`
}

type CreatedUserResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), domain.NewUser{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedUserResponse{User: userToResponse(*user), Token: token})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]UserDetailResponse, len(users))
	for i := range users {
		resp[i] = userToDetailResponse(users[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToDetailResponse(*user)})
}

func (h *Handler) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	// only admins may grant or revoke admin rights
	if req.IsAdmin != nil {
		if err := auth.RequireElevated(identityFrom(c)); err != nil {
			writeError(c, err)
			return
		}
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("username"), domain.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(*user)})
}

func (h *Handler) deleteUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.users.Delete(c.Request.Context(), username); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": username})
}
