package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// CommentHandler handles comment requests.
type CommentHandler struct {
	commentService service.CommentService
	logger         *slog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService, logger *slog.Logger) *CommentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CommentHandler")
	}
	return &CommentHandler{
		commentService: commentService,
		logger:         logger.With(slog.String("component", "comment_handler")),
	}
}

// ListComments handles GET /api/comments?task_id=
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	p, ok := getPrincipal(w, r, log)
	if !ok {
		return
	}

	taskID, err := parseID("task_id", r.URL.Query().Get("task_id"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	comments, err := h.commentService.ListComments(r.Context(), p, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if comments == nil {
		comments = []domain.CommentWithAuthor{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, comments)
}

// CreateComment handles POST /api/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	p, ok := getPrincipal(w, r, log)
	if !ok {
		return
	}

	var req CommentRequest
	if err := shared.DecodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	comment, err := h.commentService.CreateComment(r.Context(), p, req.TaskID, req.Content)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, comment)
}
