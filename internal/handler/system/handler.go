package system

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/person-records/backend/pkg/utils"
)

// Info is what the front-end needs before it can talk to the API.
type Info struct {
	APIBaseURL string `json:"apiBaseUrl"`
	InstanceID string `json:"instanceId"`
}

// Handler 提供前端配置与健康检查接口
type Handler struct {
	info Info
}

// New 创建系统处理器
func New(info Info) *Handler {
	return &Handler{info: info}
}

// RegisterRoutes 注册 /configuration 与 /healthz 路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/configuration", h.handleConfiguration)
	r.Get("/healthz", h.handleHealth)
}

func (h *Handler) handleConfiguration(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.info)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
