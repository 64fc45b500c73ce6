package starred

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	starredService "github.com/zhouzirui/restaurant-stars/backend/internal/service/starred"
	"github.com/zhouzirui/restaurant-stars/backend/pkg/utils"
)

// Handler 收藏餐厅的HTTP处理器
type Handler struct {
	svc *starredService.Service
}

// New 创建收藏处理器
func New(svc *starredService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册收藏相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/starred", h.handleList)
	r.Post("/starred", h.handleAdd)
	r.Get("/starred/{id}", h.handleGet)
	r.Delete("/starred/{id}", h.handleDelete)
	r.Put("/starred/{id}", h.handleUpdateComment)
}

// handleList 列出所有收藏，附带餐厅名称
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.svc.List(r.Context()))
}

// handleGet 获取单个收藏
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, view)
}

// handleAdd 收藏一家餐厅，请求体中的 id 是餐厅ID
func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID string `json:"id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.svc.Add(r.Context(), payload.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[starred] added entry=%s restaurant=%s", view.ID, view.RestaurantID)
	utils.RespondJSON(w, http.StatusOK, view)
}

// handleDelete 取消收藏
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondStatus(w, http.StatusOK)
}

// handleUpdateComment 更新收藏的评论，newComment 可以为 null
func (h *Handler) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		NewComment *string `json:"newComment"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.UpdateComment(r.Context(), chi.URLParam(r, "id"), payload.NewComment); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondStatus(w, http.StatusOK)
}

// respondServiceError 将服务层错误映射为HTTP状态码。
// 餐厅不存在与已收藏都按 404 返回。
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, starredService.ErrNotFound),
		errors.Is(err, starredService.ErrRestaurantNotFound),
		errors.Is(err, starredService.ErrAlreadyStarred):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("[starred] unexpected error: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
