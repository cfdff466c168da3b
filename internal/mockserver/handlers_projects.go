package mockserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bp-review/bp-review-go/internal/review/domain"
)

func (h *Handler) listProjects(c *gin.Context) {
	params := domain.ProjectListParams{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = page
	}
	if size, err := strconv.Atoi(c.Query("size")); err == nil {
		params.Size = size
	}

	respondOK(c, h.store.List(params))
}

func (h *Handler) createProject(c *gin.Context) {
	var req domain.ProjectCreate
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.EnterpriseName) == "" || strings.TrimSpace(req.ProjectName) == "" {
		respondError(c, http.StatusBadRequest, "企业名称和项目名称不能为空")
		return
	}

	req.EnterpriseName = strings.TrimSpace(req.EnterpriseName)
	req.ProjectName = strings.TrimSpace(req.ProjectName)
	respondOK(c, h.store.Create(req))
}

func (h *Handler) getStatistics(c *gin.Context) {
	respondOK(c, h.store.Statistics())
}

func (h *Handler) getProject(c *gin.Context) {
	p, ok := h.store.Get(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "项目未找到")
		return
	}
	respondOK(c, p)
}

func (h *Handler) updateProject(c *gin.Context) {
	var req domain.ProjectCreate
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.EnterpriseName) == "" || strings.TrimSpace(req.ProjectName) == "" {
		respondError(c, http.StatusBadRequest, "企业名称和项目名称不能为空")
		return
	}

	p, ok := h.store.Update(c.Param("id"), req)
	if !ok {
		respondError(c, http.StatusNotFound, "项目未找到")
		return
	}
	respondOK(c, p)
}

func (h *Handler) deleteProject(c *gin.Context) {
	if !h.store.Delete(c.Param("id")) {
		respondError(c, http.StatusNotFound, "项目未找到")
		return
	}
	respondOK(c, gin.H{"message": "项目已删除"})
}

type teamMembersReq struct {
	TeamMembers string `json:"team_members"`
}

func (h *Handler) updateTeamMembers(c *gin.Context) {
	var req teamMembersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid body")
		return
	}

	p, ok := h.store.UpdateTeamMembers(c.Param("id"), req.TeamMembers)
	if !ok {
		respondError(c, http.StatusNotFound, "项目未找到")
		return
	}
	respondOK(c, p)
}
