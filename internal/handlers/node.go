package handlers

import (
	"feedthread/internal/services"

	"github.com/gin-gonic/gin"
)

type NodeHandler struct {
	labels services.LabelCatalog
}

func NewNodeHandler(labels services.LabelCatalog) *NodeHandler {
	return &NodeHandler{labels: labels}
}

// ListLabels 分类标签列表
func (h *NodeHandler) ListLabels(c *gin.Context) {
	labels, err := h.labels.Labels(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, msgOK, labels)
}
