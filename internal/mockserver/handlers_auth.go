package mockserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "用户名或密码不能为空")
		return
	}

	token, err := h.auth.IssueToken(strings.TrimSpace(req.Username))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "登录失败")
		return
	}

	respondOK(c, gin.H{"token": token})
}
