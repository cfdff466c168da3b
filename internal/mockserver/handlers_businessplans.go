package mockserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bp-review/bp-review-go/internal/review/client"
	"github.com/bp-review/bp-review-go/internal/review/domain"
)

func (h *Handler) uploadBusinessPlan(c *gin.Context) {
	if _, ok := h.store.Get(c.Param("id")); !ok {
		respondError(c, http.StatusNotFound, "项目未找到")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		respondError(c, http.StatusBadRequest, "只支持PDF文件")
		return
	}
	if header.Size > client.MaxUploadSize {
		respondError(c, http.StatusBadRequest, "文件大小不能超过20MB")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, client.MaxUploadSize+1))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "文件保存失败")
		return
	}
	if len(data) == 0 {
		respondError(c, http.StatusBadRequest, "文件不能为空")
		return
	}
	if len(data) > client.MaxUploadSize {
		respondError(c, http.StatusBadRequest, "文件大小不能超过20MB")
		return
	}

	if err := h.store.SaveUpload(c.Param("id"), header.Filename, data); err != nil {
		respondError(c, http.StatusNotFound, "项目未找到")
		return
	}
	respondOK(c, gin.H{"message": "上传成功", "file_name": header.Filename, "file_size": len(data)})
}

func (h *Handler) getBusinessPlanStatus(c *gin.Context) {
	st, err := h.store.PlanStatus(c.Param("id"))
	if err != nil {
		h.planError(c, err)
		return
	}
	respondOK(c, st)
}

func (h *Handler) getBusinessPlanInfo(c *gin.Context) {
	info, err := h.store.PlanInfo(c.Param("id"))
	if err != nil {
		h.planError(c, err)
		return
	}
	respondOK(c, info)
}

func (h *Handler) downloadBusinessPlan(c *gin.Context) {
	name, data, err := h.store.PlanData(c.Param("id"))
	if err != nil {
		h.planError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) downloadReport(c *gin.Context) {
	p, ok := h.store.Get(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "项目未找到")
		return
	}

	name := fmt.Sprintf("评审报告_%s.pdf", p.ProjectName)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", minimalPDF(p.ProjectName+" 评审报告"))
}

func (h *Handler) planError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoBusinessPlan):
		respondError(c, http.StatusNotFound, "未找到BP记录")
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "项目未找到")
	default:
		respondError(c, http.StatusInternalServerError, "获取BP信息失败")
	}
}
