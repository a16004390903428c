package api

import (
	"github.com/gin-gonic/gin"
)

func (r *Router) listNotifications(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	page := parsePage(c)
	notifications, total, err := r.social.ListNotifications(c.Request.Context(), userID, page)
	if err != nil {
		return nil, err
	}
	return paginated(notifications, total, page), nil
}

// unreadNotifications returns the unread count with the newest unread page
func (r *Router) unreadNotifications(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	count, notifications, err := r.social.UnreadNotifications(c.Request.Context(), userID, parsePage(c))
	if err != nil {
		return nil, err
	}
	return gin.H{"count": count, "results": notifications}, nil
}

func (r *Router) markRead(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	return r.social.MarkRead(c.Request.Context(), userID, id)
}

func (r *Router) markAllRead(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	marked, err := r.social.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	return gin.H{"marked": marked}, nil
}
