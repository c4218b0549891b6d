package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/minaret-app/minaret/internal/db"
	"github.com/minaret-app/minaret/internal/http/api"
	"github.com/minaret-app/minaret/internal/http/api/community/packets"
	"github.com/minaret-app/minaret/internal/model"
)

const feedLimit = 50

type CommunityController struct {
	store db.Store
}

func NewCommunityController(store db.Store) *CommunityController {
	return &CommunityController{store: store}
}

func CommunityModule(store db.Store) api.Module {
	ctl := NewCommunityController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/community/posts", ctl.listFeed)
		c.POST("/community/posts", ctl.createPost)
		c.DELETE("/community/posts/:id", ctl.deletePost)

		c.POST("/community/posts/:id/like", ctl.likePost)
		c.DELETE("/community/posts/:id/like", ctl.unlikePost)

		c.GET("/community/posts/:id/comments", ctl.listComments)
		c.POST("/community/posts/:id/comments", ctl.createComment)

		c.POST("/community/users/:id/follow", ctl.follow)
		c.DELETE("/community/users/:id/follow", ctl.unfollow)
	})
}

func (cc *CommunityController) listFeed(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	posts, err := cc.store.ListFeed(user.ID, feedLimit)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load feed"}
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

func (cc *CommunityController) createPost(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreatePostRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	post, err := cc.store.CreatePost(user.ID, uuid.NewString(), request.Body)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create post"}
	}
	return post, nil
}

func (cc *CommunityController) deletePost(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	post, err := cc.store.GetPost(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "post not found"}
	}
	if post.UserID != user.ID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	if err := cc.store.DeletePost(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete post"}
	}
	return gin.H{"message": "deleted"}, nil
}

func (cc *CommunityController) likePost(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := cc.postID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := cc.store.LikePost(id, user.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not like post"}
	}
	return gin.H{"message": "liked"}, nil
}

func (cc *CommunityController) unlikePost(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := cc.postID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := cc.store.UnlikePost(id, user.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not unlike post"}
	}
	return gin.H{"message": "unliked"}, nil
}

func (cc *CommunityController) listComments(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := cc.postID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	comments, err := cc.store.ListComments(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load comments"}
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}

func (cc *CommunityController) createComment(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := cc.postID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := cc.store.GetPost(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "post not found"}
	}

	comment, err := cc.store.CreateComment(id, user.ID, request.Body)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create comment"}
	}
	return comment, nil
}

func (cc *CommunityController) follow(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	followeeID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if followeeID == user.ID {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "cannot follow yourself"}
	}

	if _, err := cc.store.GetUserByID(followeeID); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "user not found"}
	}

	if err := cc.store.Follow(user.ID, followeeID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not follow user"}
	}
	return gin.H{"message": "followed"}, nil
}

func (cc *CommunityController) unfollow(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	followeeID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if err := cc.store.Unfollow(user.ID, followeeID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not unfollow user"}
	}
	return gin.H{"message": "unfollowed"}, nil
}

func (cc *CommunityController) postID(ctx *gin.Context) (int, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, &api.APIError{Code: http.StatusBadRequest, Message: "invalid post id"}
	}
	return id, nil
}
