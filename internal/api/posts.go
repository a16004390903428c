package api

import (
	"github.com/gin-gonic/gin"

	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/internal/social"
)

type postRequest struct {
	Title   *string   `json:"title" binding:"omitempty,notblank,max=200"`
	Content *string   `json:"content" binding:"omitempty,notblank"`
	Tags    *[]string `json:"tags" binding:"omitempty,dive,max=50"`
}

func (p postRequest) input() social.PostInput {
	return social.PostInput{Title: p.Title, Content: p.Content, Tags: p.Tags}
}

type commentRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

// postResponse renders tags by name
type postResponse struct {
	*models.Post
	Tags []string `json:"tags"`
}

func newPostResponse(p *models.Post) postResponse {
	return postResponse{Post: p, Tags: p.TagNames()}
}

func newPostResponses(posts []models.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for i := range posts {
		out = append(out, newPostResponse(&posts[i]))
	}
	return out
}

func (r *Router) listPosts(c *gin.Context) (interface{}, error) {
	authorID, err := queryInt(c, "author")
	if err != nil {
		return nil, err
	}
	page := parsePage(c)
	filter := models.PostFilter{
		Search:   c.Query("search"),
		Tag:      c.Query("tag"),
		AuthorID: int64(authorID),
	}

	posts, total, err := r.social.ListPosts(c.Request.Context(), filter, page)
	if err != nil {
		return nil, err
	}
	return paginated(newPostResponses(posts), total, page), nil
}

func (r *Router) createPost(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	var req postRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	if req.Title == nil {
		return nil, models.NewValidationError("title", "This field is required.")
	}
	if req.Content == nil {
		return nil, models.NewValidationError("content", "This field is required.")
	}

	post, err := r.social.CreatePost(c.Request.Context(), userID, req.input())
	if err != nil {
		return nil, err
	}
	// Reload so the response carries the author
	post, err = r.social.GetPost(c.Request.Context(), post.ID)
	if err != nil {
		return nil, err
	}
	return newPostResponse(post), nil
}

func (r *Router) getPost(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	post, err := r.social.GetPost(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return newPostResponse(post), nil
}

// replacePost is PUT: title and content are required
func (r *Router) replacePost(c *gin.Context) (interface{}, error) {
	return r.savePost(c, true)
}

func (r *Router) updatePost(c *gin.Context) (interface{}, error) {
	return r.savePost(c, false)
}

func (r *Router) savePost(c *gin.Context, replace bool) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	var req postRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	if replace {
		if req.Title == nil {
			return nil, models.NewValidationError("title", "This field is required.")
		}
		if req.Content == nil {
			return nil, models.NewValidationError("content", "This field is required.")
		}
	}

	post, err := r.social.UpdatePost(c.Request.Context(), userID, id, req.input())
	if err != nil {
		return nil, err
	}
	return newPostResponse(post), nil
}

func (r *Router) deletePost(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	return nil, r.social.DeletePost(c.Request.Context(), userID, id)
}

func (r *Router) feed(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	page := parsePage(c)
	posts, total, err := r.social.Feed(c.Request.Context(), userID, page)
	if err != nil {
		return nil, err
	}
	return paginated(newPostResponses(posts), total, page), nil
}

// Comments

func (r *Router) listComments(c *gin.Context) (interface{}, error) {
	postID, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	page := parsePage(c)
	comments, total, err := r.social.ListComments(c.Request.Context(), postID, page)
	if err != nil {
		return nil, err
	}
	return paginated(comments, total, page), nil
}

func (r *Router) createComment(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	var req commentRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	return r.social.CreateComment(c.Request.Context(), userID, postID, req.Content)
}

func (r *Router) getComment(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	return r.social.GetComment(c.Request.Context(), id)
}

func (r *Router) updateComment(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	var req commentRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	return r.social.UpdateComment(c.Request.Context(), userID, id, req.Content)
}

func (r *Router) deleteComment(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	return nil, r.social.DeleteComment(c.Request.Context(), userID, id)
}

// Likes

func (r *Router) like(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	if err := r.social.Like(c.Request.Context(), userID, postID); err != nil {
		return nil, err
	}
	return r.likeSummary(c, postID, userID)
}

func (r *Router) unlike(c *gin.Context) (interface{}, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return nil, err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	if err := r.social.Unlike(c.Request.Context(), userID, postID); err != nil {
		return nil, err
	}
	return r.likeSummary(c, postID, userID)
}

func (r *Router) likes(c *gin.Context) (interface{}, error) {
	postID, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	// Anonymous callers get liked=false
	return r.likeSummary(c, postID, c.GetInt64(userIDKey))
}

func (r *Router) likeSummary(c *gin.Context, postID, userID int64) (gin.H, error) {
	ctx := c.Request.Context()
	count, err := r.social.LikeCount(ctx, postID)
	if err != nil {
		return nil, err
	}
	liked := false
	if userID != 0 {
		if liked, err = r.social.HasLiked(ctx, userID, postID); err != nil {
			return nil, err
		}
	}
	return gin.H{"post_id": postID, "likes_count": count, "liked": liked}, nil
}
