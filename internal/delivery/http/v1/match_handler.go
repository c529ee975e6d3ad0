package v1

import (
	"net/http"
	"strconv"
	"strings"

	"go-dogwalking-backend/config"
	"go-dogwalking-backend/internal/delivery/http/middleware"
	"go-dogwalking-backend/internal/delivery/http/response"
	"go-dogwalking-backend/internal/domain"
	"go-dogwalking-backend/pkg/apperror"
	"go-dogwalking-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Only the strongest reasons are surfaced to the client.
const maxDisplayReasons = 3

type MatchHandler struct {
	matchUC  domain.MatchUsecase
	validate *validator.Validate
}

func NewMatchHandler(r *gin.RouterGroup, matchUC domain.MatchUsecase, validate *validator.Validate, cfg *config.Config) {
	handler := &MatchHandler{matchUC: matchUC, validate: validate}

	matches := r.Group("/matches")
	{
		matches.POST("/search", middleware.RateLimitMiddleware(middleware.SearchRateLimitConfig(cfg)), handler.Search)
		matches.GET("/top", handler.Top)
		matches.GET("/:userId", handler.ByUserID)
	}
}

// Search godoc
// @Summary      Rank walkers against search criteria
// @Description  Runs the matching engine over the walker pool. All criteria fields are optional; a failed backend lookup yields an empty list, not an error.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        criteria  body      domain.SearchCriteria  true  "Search criteria"
// @Success      200       {object}  response.Response{data=[]domain.ScoredWalker}
// @Failure      400       {object}  response.Response
// @Router       /matches/search [post]
// @Security     BearerAuth
func (h *MatchHandler) Search(c *gin.Context) {
	var criteria domain.SearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if err := h.validate.Struct(&criteria); err != nil {
		c.Error(apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; ")))
		return
	}

	ranked := h.matchUC.FindMatches(c.Request.Context(), &criteria)
	response.Success(c, http.StatusOK, "Ranked matches", capReasons(ranked))
}

// Top godoc
// @Summary      Get the top matches from the last search
// @Tags         matches
// @Produce      json
// @Param        limit  query     int  false  "Number of matches"  default(5)
// @Success      200    {object}  response.Response{data=[]domain.ScoredWalker}
// @Router       /matches/top [get]
// @Security     BearerAuth
func (h *MatchHandler) Top(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 {
		limit = 5
	}

	top := h.matchUC.TopMatches(limit)
	response.Success(c, http.StatusOK, "Top matches", capReasons(top))
}

// ByUserID godoc
// @Summary      Look up a single walker in the last search
// @Tags         matches
// @Produce      json
// @Param        userId  path      string  true  "Walker user id"
// @Success      200     {object}  response.Response{data=domain.ScoredWalker}
// @Failure      404     {object}  response.Response
// @Router       /matches/{userId} [get]
// @Security     BearerAuth
func (h *MatchHandler) ByUserID(c *gin.Context) {
	match, err := h.matchUC.MatchByUserID(c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}

	capped := capReasons([]domain.ScoredWalker{*match})
	response.Success(c, http.StatusOK, "Match details", capped[0])
}

func capReasons(matches []domain.ScoredWalker) []domain.ScoredWalker {
	capped := make([]domain.ScoredWalker, len(matches))
	for i, m := range matches {
		if len(m.MatchReasons) > maxDisplayReasons {
			m.MatchReasons = m.MatchReasons[:maxDisplayReasons]
		}
		capped[i] = m
	}
	return capped
}
