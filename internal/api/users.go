package api

import (
	"github.com/gin-gonic/gin"
)

func (r *Router) getUser(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	user, err := r.social.GetUser(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return r.userResponse(c.Request.Context(), user)
}

func (r *Router) listFollowers(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	users, err := r.social.Followers(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return gin.H{"count": len(users), "results": users}, nil
}

func (r *Router) listFollowing(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	users, err := r.social.Following(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return gin.H{"count": len(users), "results": users}, nil
}

func (r *Router) follow(c *gin.Context) (interface{}, error) {
	actorID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	if err := r.social.Follow(c.Request.Context(), actorID, targetID); err != nil {
		return nil, err
	}
	return gin.H{"following": true, "user_id": targetID}, nil
}

func (r *Router) unfollow(c *gin.Context) (interface{}, error) {
	actorID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	if err := r.social.Unfollow(c.Request.Context(), actorID, targetID); err != nil {
		return nil, err
	}
	return gin.H{"following": false, "user_id": targetID}, nil
}

type roleRequest struct {
	Role string `json:"role" binding:"required,oneof=member librarian admin"`
}

func (r *Router) setRole(c *gin.Context) (interface{}, error) {
	actorID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	var req roleRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	user, err := r.social.SetRole(c.Request.Context(), actorID, id, req.Role)
	if err != nil {
		return nil, err
	}
	return r.userResponse(c.Request.Context(), user)
}
