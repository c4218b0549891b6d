package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minaret-app/minaret/internal/db"
	"github.com/minaret-app/minaret/internal/http/api"
	"github.com/minaret-app/minaret/internal/http/api/quran/packets"
	"github.com/minaret-app/minaret/internal/model"
)

type QuranController struct {
	store db.Store
}

func NewQuranController(store db.Store) *QuranController {
	return &QuranController{store: store}
}

func QuranModule(store db.Store) api.Module {
	ctl := NewQuranController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/quran/bookmarks", ctl.listBookmarks)
		c.POST("/quran/bookmarks", ctl.createBookmark)
		c.DELETE("/quran/bookmarks/:id", ctl.deleteBookmark)

		c.GET("/quran/last_read", ctl.getLastRead)
		c.PUT("/quran/last_read", ctl.setLastRead)
	})
}

func (q *QuranController) listBookmarks(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := q.store.ListBookmarks(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list bookmarks"}
	}
	if list == nil {
		list = []model.QuranBookmark{}
	}
	return list, nil
}

func (q *QuranController) createBookmark(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateBookmarkRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	bookmark, err := q.store.CreateBookmark(user.ID, request.Surah, request.Ayah, request.Note)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create bookmark"}
	}
	return bookmark, nil
}

func (q *QuranController) deleteBookmark(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if err := q.store.DeleteBookmark(id, user.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "bookmark not found"}
	}
	return gin.H{"message": "deleted"}, nil
}

func (q *QuranController) getLastRead(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	lastRead, err := q.store.GetLastRead(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load reading position"}
	}
	if lastRead == nil {
		// fresh account, start at Al-Fatihah
		return model.QuranLastRead{UserID: user.ID, Surah: 1, Ayah: 1}, nil
	}
	return lastRead, nil
}

func (q *QuranController) setLastRead(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.SetLastReadRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	lastRead, err := q.store.SetLastRead(user.ID, request.Surah, request.Ayah)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save reading position"}
	}
	return lastRead, nil
}
