package v1

import (
	"context"
	"net/http"
	"strconv"

	"go-dogwalking-backend/internal/delivery/http/response"
	"go-dogwalking-backend/internal/domain"
	"go-dogwalking-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// authContext copies the authenticated identity from gin's string-keyed
// store into a context the usecase layer can read with its typed keys.
// gin.Context.Value only consults the Keys map for plain string keys, so
// passing the gin context straight through would lose the identity.
func authContext(c *gin.Context) context.Context {
	ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, c.GetString(string(domain.KeyUserID)))
	return context.WithValue(ctx, domain.KeyUserRole, c.GetString(string(domain.KeyUserRole)))
}

type WalkerHandler struct {
	walkerUC domain.WalkerUsecase
}

func NewWalkerHandler(public *gin.RouterGroup, protected *gin.RouterGroup, walkerUC domain.WalkerUsecase) {
	handler := &WalkerHandler{walkerUC: walkerUC}

	// Public browse
	public.GET("/walkers", handler.List)
	public.GET("/walkers/:userId", handler.Detail)

	// Own listing management
	me := protected.Group("/walkers")
	{
		me.GET("/me", handler.MyListing)
		me.PUT("/me", handler.UpdateMyListing)
	}
}

// List godoc
// @Summary      Browse walkers
// @Tags         walkers
// @Produce      json
// @Param        page       query     int  false  "Page"       default(1)
// @Param        page_size  query     int  false  "Page size"  default(10)
// @Success      200        {object}  response.Response{data=[]domain.WalkerWithProfile}
// @Router       /walkers [get]
func (h *WalkerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	walkers, total, err := h.walkerUC.ListWalkers(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Walkers", walkers, page, pageSize, total)
}

// Detail godoc
// @Summary      Get a walker's public page
// @Tags         walkers
// @Produce      json
// @Param        userId  path      string  true  "Walker user id"
// @Success      200     {object}  response.Response{data=domain.WalkerWithProfile}
// @Failure      404     {object}  response.Response
// @Router       /walkers/{userId} [get]
func (h *WalkerHandler) Detail(c *gin.Context) {
	walker, err := h.walkerUC.GetWalkerDetail(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Walker details", walker)
}

// MyListing godoc
// @Summary      Get own walker listing
// @Tags         walkers
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Walker}
// @Failure      404  {object}  response.Response
// @Router       /walkers/me [get]
// @Security     BearerAuth
func (h *WalkerHandler) MyListing(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	listing, err := h.walkerUC.GetListing(authContext(c), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Walker listing", listing)
}

// UpdateMyListing godoc
// @Summary      Create or update own walker listing
// @Tags         walkers
// @Accept       json
// @Produce      json
// @Param        listing  body      domain.Walker  true  "Listing data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /walkers/me [put]
// @Security     BearerAuth
func (h *WalkerHandler) UpdateMyListing(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleWalker && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only walkers can manage a listing"))
		return
	}

	var walker domain.Walker
	if err := c.ShouldBindJSON(&walker); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.walkerUC.UpdateListing(authContext(c), &walker); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Listing updated", nil)
}
