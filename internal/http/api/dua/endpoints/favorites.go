package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minaret-app/minaret/internal/db"
	"github.com/minaret-app/minaret/internal/http/api"
	"github.com/minaret-app/minaret/internal/model"
)

type DuaController struct {
	store db.Store
}

func NewDuaController(store db.Store) *DuaController {
	return &DuaController{store: store}
}

func DuaModule(store db.Store) api.Module {
	ctl := NewDuaController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/duas/favorites", ctl.listFavorites)
		c.POST("/duas/favorites/:dua_id", ctl.addFavorite)
		c.DELETE("/duas/favorites/:dua_id", ctl.removeFavorite)
	})
}

func (d *DuaController) listFavorites(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := d.store.ListDuaFavorites(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list favorites"}
	}
	if list == nil {
		list = []model.DuaFavorite{}
	}
	return list, nil
}

func (d *DuaController) addFavorite(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	duaID := ctx.Param("dua_id")
	if duaID == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing dua id"}
	}

	if err := d.store.AddDuaFavorite(user.ID, duaID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save favorite"}
	}
	return gin.H{"message": "favorited"}, nil
}

func (d *DuaController) removeFavorite(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	duaID := ctx.Param("dua_id")
	if duaID == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing dua id"}
	}

	if err := d.store.RemoveDuaFavorite(user.ID, duaID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not remove favorite"}
	}
	return gin.H{"message": "removed"}, nil
}
