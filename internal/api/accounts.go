package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/internal/social"
)

type registerRequest struct {
	Username  string `json:"username" binding:"required,notblank,min=3,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	Password2 string `json:"password2" binding:"required"`
	Bio       string `json:"bio" binding:"max=1000"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
}

type profileRequest struct {
	Email          *string `json:"email" binding:"omitempty,email,max=254"`
	Bio            *string `json:"bio" binding:"omitempty,max=1000"`
	ProfilePicture *string `json:"profile_picture" binding:"omitempty,url,max=1024"`
}

// userResponse is a user with its follow counts
type userResponse struct {
	*models.User
	models.FollowCounts
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func (r *Router) userResponse(ctx context.Context, user *models.User) (userResponse, error) {
	counts, err := r.social.FollowCounts(ctx, user.ID)
	if err != nil {
		return userResponse{}, err
	}
	return userResponse{User: user, FollowCounts: counts}, nil
}

func (r *Router) authResponse(ctx context.Context, user *models.User) (*authResponse, error) {
	token, err := r.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	resp, err := r.userResponse(ctx, user)
	if err != nil {
		return nil, err
	}
	return &authResponse{User: resp, Token: token}, nil
}

func (r *Router) register(c *gin.Context) (interface{}, error) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}

	user, err := r.social.Register(c.Request.Context(), social.Registration{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
		Bio:       req.Bio,
	})
	if err != nil {
		return nil, err
	}
	return r.authResponse(c.Request.Context(), user)
}

func (r *Router) login(c *gin.Context) (interface{}, error) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}

	user, err := r.social.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return r.authResponse(c.Request.Context(), user)
}

func (r *Router) profile(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	user, err := r.social.GetUser(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	return r.userResponse(c.Request.Context(), user)
}

func (r *Router) updateProfile(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	var req profileRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}

	user, err := r.social.UpdateProfile(c.Request.Context(), userID, social.ProfileUpdate{
		Email:          req.Email,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return nil, err
	}
	return r.userResponse(c.Request.Context(), user)
}
