package mockserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bp-review/bp-review-go/internal/review/domain"
)

func (h *Handler) getScores(c *gin.Context) {
	scores, ok := h.store.Scores(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "项目未找到")
		return
	}
	respondOK(c, scores)
}

func (h *Handler) updateScores(c *gin.Context) {
	var req domain.ProjectScores
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid score payload")
		return
	}
	if len(req.Dimensions) == 0 {
		respondError(c, http.StatusBadRequest, "评分必须包含全部维度")
		return
	}

	saved, ok := h.store.UpdateScores(c.Param("id"), c.GetString("username"), req)
	if !ok {
		respondError(c, http.StatusNotFound, "项目未找到")
		return
	}
	respondOK(c, saved)
}

func (h *Handler) getScoreSummary(c *gin.Context) {
	summary, ok := h.store.Summary(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "项目未找到")
		return
	}
	respondOK(c, summary)
}

func (h *Handler) getScoreHistory(c *gin.Context) {
	history, ok := h.store.History(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "项目未找到")
		return
	}
	respondOK(c, history)
}

func (h *Handler) listMissingInfo(c *gin.Context) {
	items, ok := h.store.MissingInfo(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "项目未找到")
		return
	}
	if items == nil {
		items = []domain.MissingInfo{}
	}
	respondOK(c, domain.MissingInfoList{Items: items})
}

func (h *Handler) addMissingInfo(c *gin.Context) {
	var req domain.MissingInfo
	if err := c.ShouldBindJSON(&req); err != nil || req.Dimension == "" || req.InformationType == "" {
		respondError(c, http.StatusBadRequest, "维度和信息类型不能为空")
		return
	}

	item, err := h.store.AddMissingInfo(c.Param("id"), req)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "项目未找到")
	case errors.Is(err, domain.ErrDuplicateMissingInfo):
		respondError(c, http.StatusConflict, "该维度已存在同类型的缺失信息")
	case err != nil:
		respondError(c, http.StatusInternalServerError, "添加缺失信息失败")
	default:
		respondOK(c, item)
	}
}

func (h *Handler) updateMissingInfo(c *gin.Context) {
	var req domain.MissingInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid body")
		return
	}

	item, err := h.store.UpdateMissingInfo(c.Param("id"), c.Param("infoId"), req)
	if errors.Is(err, domain.ErrNotFound) {
		respondError(c, http.StatusNotFound, "缺失信息记录未找到")
		return
	}
	respondOK(c, item)
}

func (h *Handler) deleteMissingInfo(c *gin.Context) {
	err := h.store.DeleteMissingInfo(c.Param("id"), c.Param("infoId"))
	if errors.Is(err, domain.ErrNotFound) {
		respondError(c, http.StatusNotFound, "缺失信息记录未找到")
		return
	}
	respondOK(c, gin.H{"message": "已删除"})
}
