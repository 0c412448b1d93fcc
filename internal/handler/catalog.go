package handler

import (
	"net/http"

	"github.com/ucin-dev/workload-tracker/backend/internal/catalog"
)

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "procedure catalog fetched", catalog.AllLines())
}
