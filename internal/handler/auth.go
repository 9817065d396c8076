package handler

import (
	"github.com/arjunmehta12/mockmate/pkg"
	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/arjunmehta12/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SignUp creates a new user and, for interviewers, the unverified profile row.
func (h *Handler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	pwHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to hash password", "err", err)
		response.InternalError(c, "")
		return
	}

	user := &model.User{
		UserID:       uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: pwHash,
		Role:         req.Role,
	}
	if err := h.Repo.CreateUser(ctx, user); err != nil {
		h.Logger.Sugar().Warnw("user create failed", "email", req.Email, "err", err)
		response.Error(c, err)
		return
	}
	if user.Role == model.UserRoleInterviewer {
		if err := h.Repo.EnsureInterviewerProfile(ctx, user.UserID); err != nil {
			h.Logger.Sugar().Errorw("interviewer profile create failed", "user_id", user.UserID, "err", err)
			response.Error(c, err)
			return
		}
	}

	response.Created(c, model.UserResponse{
		UserID: user.UserID, Email: user.Email, Name: user.Name, Role: user.Role,
	})
}

// Login verifies credentials and returns an access token.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		response.Error(c, apperror.Unauthorized("invalid credentials"))
		return
	}
	if err := pkg.ComparePassword(user.PasswordHash, req.Password); err != nil {
		response.Error(c, apperror.Unauthorized("invalid credentials"))
		return
	}

	token, claims, err := h.TokenMaker.CreateToken(user)
	if err != nil {
		h.Logger.Sugar().Errorw("error creating token", "err", err)
		response.InternalError(c, "could not generate token")
		return
	}

	response.OK(c, model.TokenResponse{
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Unix(),
		User:        model.UserResponse{UserID: user.UserID, Email: user.Email, Name: user.Name, Role: user.Role},
	})
}

// Me returns the current user profile.
func (h *Handler) Me(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.Repo.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Unauthorized(c, "")
		return
	}
	response.OK(c, model.UserResponse{
		UserID: user.UserID, Email: user.Email, Name: user.Name, Role: user.Role,
	})
}
