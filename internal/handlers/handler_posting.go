package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dafatir/dafatir_backend/internal/apperrors"
	portssvc "github.com/dafatir/dafatir_backend/internal/core/ports/services"
	"github.com/dafatir/dafatir_backend/internal/dto"
	"github.com/dafatir/dafatir_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler handles HTTP requests related to posting groups.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newPostingHandler creates a new postingHandler.
func newPostingHandler(ps portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{
		postingService: ps,
	}
}

// registerPostingRoutes registers routes related to posting groups.
func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingService)

	groups := rg.Group("/posting-groups")
	{
		groups.POST("", h.createPostingGroup)
		groups.GET("", h.listPostingGroups)
		groups.GET("/:group_id", h.getPostingGroup)
		groups.POST("/:group_id/void", h.voidPostingGroup)
	}
}

// createPostingGroup godoc
// @Summary Post a balanced group of entry lines
// @Description Validates and persists a transaction: at least two lines whose base-currency debits and credits balance
// @Tags posting-groups
// @Accept json
// @Produce json
// @Param group body dto.CreatePostingGroupRequest true "Posting group details"
// @Success 201 {object} dto.PostingGroupResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced input"
// @Failure 500 {object} map[string]string "Failed to create posting group"
// @Router /posting-groups [post]
func (h *postingHandler) createPostingGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePostingGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePostingGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create posting group",
		slog.String("date", req.Date),
		slog.Int("line_count", len(req.Lines)))

	group, lines, err := h.postingService.CreatePostingGroup(c.Request.Context(), req)
	if err != nil {
		var unbalanced *apperrors.UnbalancedGroupError
		var configErr *apperrors.ConfigurationError
		var missingRef *apperrors.MissingReferenceError
		switch {
		case errors.As(err, &missingRef):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &unbalanced):
			logger.Warn("Rejected unbalanced posting group", slog.String("imbalance", unbalanced.Imbalance.String()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &configErr):
			logger.Error("Currency configuration defect during posting", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create posting group", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create posting group"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostingGroupResponse(group, lines))
}

// listPostingGroups godoc
// @Summary List posting groups
// @Description Pages through posting groups ordered by transaction date
// @Tags posting-groups
// @Produce json
// @Param limit query int false "Page size" default(25)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list posting groups"
// @Router /posting-groups [get]
func (h *postingHandler) listPostingGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "25"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	groups, newToken, err := h.postingService.ListPostingGroups(c.Request.Context(), limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list posting groups", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posting groups"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"groups":    dto.ToListPostingGroupResponse(groups),
		"nextToken": newToken,
	})
}

// getPostingGroup godoc
// @Summary Get a posting group with its lines
// @Tags posting-groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} dto.PostingGroupResponse
// @Failure 404 {object} map[string]string "Posting group not found"
// @Failure 500 {object} map[string]string "Failed to get posting group"
// @Router /posting-groups/{group_id} [get]
func (h *postingHandler) getPostingGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	group, lines, err := h.postingService.GetPostingGroup(c.Request.Context(), groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Posting group not found"})
		} else {
			logger.Error("Failed to get posting group", slog.String("group_id", groupID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get posting group"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingGroupResponse(group, lines))
}

// voidPostingGroup godoc
// @Summary Void a posted group
// @Description Transitions a POSTED group to VOID. The group stays in the log but no report counts it.
// @Tags posting-groups
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param void body dto.VoidPostingGroupRequest true "Acting user"
// @Success 204 "Group voided"
// @Failure 400 {object} map[string]string "Group is not in POSTED status"
// @Failure 404 {object} map[string]string "Posting group not found"
// @Failure 500 {object} map[string]string "Failed to void posting group"
// @Router /posting-groups/{group_id}/void [post]
func (h *postingHandler) voidPostingGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var req dto.VoidPostingGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.postingService.VoidPostingGroup(c.Request.Context(), groupID, req.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Posting group not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to void posting group", slog.String("group_id", groupID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void posting group"})
		}
		return
	}

	logger.Info("Posting group voided", slog.String("group_id", groupID), slog.String("user_id", req.UserID))
	c.Status(http.StatusNoContent)
}
