package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ferrohq/ferro/internal/inertia"
	apperrors "github.com/ferrohq/ferro/pkg/errors"
)

// APIController serves routes where non-Inertia clients asking for JSON
// get the handler props verbatim instead of the HTML shell.
type APIController struct {
	store *UserStore
}

// NewAPIController creates a new APIController instance
func NewAPIController(store *UserStore) *APIController {
	return &APIController{store: store}
}

// RegisterRoutes registers the API routes
func (ac *APIController) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	{
		api.GET("/users", ac.Users)
		api.GET("/users/:id", ac.UserByID)
	}
}

// Users renders the user list, with the raw-JSON fallback enabled for
// curl-style consumers.
func (ac *APIController) Users(c *gin.Context) {
	inertia.RenderWith(c, inertia.RenderOptions{
		Component:    "Users/Index",
		Props:        gin.H{"users": ac.store.List()},
		JSONFallback: true,
	})
}

// UserByID renders a single user with the fallback enabled.
func (ac *APIController) UserByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(apperrors.GetStatus(errUserNotFound), errUserNotFound.Message)
		return
	}

	user, found := ac.store.Get(id)
	if !found {
		c.String(apperrors.GetStatus(errUserNotFound), errUserNotFound.Message)
		return
	}

	inertia.RenderWith(c, inertia.RenderOptions{
		Component:    "Users/Show",
		Props:        gin.H{"user": user},
		JSONFallback: true,
	})
}
