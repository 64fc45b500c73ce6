package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/restaurant-stars/backend/internal/model/catalog"
	"github.com/zhouzirui/restaurant-stars/backend/pkg/utils"
)

// Handler 餐厅目录的HTTP处理器（只读）
type Handler struct {
	restaurants catalog.Store
}

// New 创建目录处理器
func New(restaurants catalog.Store) *Handler {
	return &Handler{restaurants: restaurants}
}

// RegisterRoutes 注册目录相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/restaurants", h.handleList)
	r.Get("/restaurants/{id}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items := h.restaurants.List()
	if items == nil {
		items = []catalog.Restaurant{}
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	restaurant, ok := h.restaurants.FindByID(chi.URLParam(r, "id"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "restaurant not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, restaurant)
}
