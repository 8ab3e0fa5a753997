package http

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/ferrohq/ferro/internal/inertia"
	apperrors "github.com/ferrohq/ferro/pkg/errors"
)

var errUserNotFound = apperrors.ErrNotFound.WithMessage("user not found")

// User is the view model the demo pages render.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserStore is a concurrency safe in-memory backing store for the demo
// pages. Real applications plug their own persistence behind handlers.
type UserStore struct {
	mu     sync.RWMutex
	nextID int
	users  []User
}

// NewUserStore seeds the store with a couple of users.
func NewUserStore() *UserStore {
	return &UserStore{
		nextID: 3,
		users: []User{
			{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com"},
			{ID: 2, Name: "Grace Hopper", Email: "grace@example.com"},
		},
	}
}

// List returns a snapshot of all users.
func (s *UserStore) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

// Get returns the user with the given id.
func (s *UserStore) Get(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// Add appends a user and returns it with its assigned id.
func (s *UserStore) Add(name, email string) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := User{ID: s.nextID, Name: name, Email: email}
	s.nextID++
	s.users = append(s.users, u)
	return u
}

// PageController serves the Inertia pages of the demo application.
type PageController struct {
	store *UserStore
}

// NewPageController creates a new PageController instance
func NewPageController(store *UserStore) *PageController {
	return &PageController{store: store}
}

// RegisterRoutes registers the page routes
func (pc *PageController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", pc.Home)
	router.GET("/users", pc.UsersIndex)
	router.GET("/users/:id", pc.UsersShow)
	router.POST("/users", pc.UsersCreate)
	router.GET("/login", pc.LoginForm)
	router.POST("/login", pc.Login)
	router.POST("/logout", pc.Logout)
	router.POST("/feedback", pc.Feedback)
}

// Home renders the landing page.
func (pc *PageController) Home(c *gin.Context) {
	inertia.Render(c, "Home", gin.H{
		"title": "Ferro",
	})
}

// UsersIndex renders the user list. The stats prop is cheap to filter
// away on partial reloads that only ask for users.
func (pc *PageController) UsersIndex(c *gin.Context) {
	users := pc.store.List()
	inertia.Render(c, "Users/Index", gin.H{
		"users": users,
		"stats": gin.H{"total": len(users)},
	})
}

// UsersShow renders a single user page.
func (pc *PageController) UsersShow(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(apperrors.GetStatus(errUserNotFound), errUserNotFound.Message)
		return
	}

	user, ok := pc.store.Get(id)
	if !ok {
		c.String(apperrors.GetStatus(errUserNotFound), errUserNotFound.Message)
		return
	}

	inertia.Render(c, "Users/Show", gin.H{
		"user": user,
	})
}

// UsersCreate adds a user and sends the client back to the index. The
// helper answers a mutating Inertia visit with 303 so the follow-up is
// a GET.
func (pc *PageController) UsersCreate(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	if name == "" || email == "" {
		inertia.Render(c, "Users/Index", gin.H{
			"users":  pc.store.List(),
			"errors": gin.H{"form": "name and email are required"},
		})
		return
	}

	pc.store.Add(name, email)
	inertia.Redirect(c, "/users")
}

// LoginForm renders the login page.
func (pc *PageController) LoginForm(c *gin.Context) {
	inertia.Render(c, "Auth/Login", nil)
}

// Login accepts any credentials in the demo and redirects home.
func (pc *PageController) Login(c *gin.Context) {
	username := c.PostForm("username")
	if username == "" {
		inertia.Render(c, "Auth/Login", gin.H{
			"errors": gin.H{"username": "username is required"},
		})
		return
	}

	inertia.Shared(c).Set("auth", gin.H{"username": username})
	inertia.Redirect(c, "/")
}

// Logout redirects back to the login page.
func (pc *PageController) Logout(c *gin.Context) {
	inertia.Redirect(c, "/login")
}

// Feedback drains the request body before rendering, so the render runs
// against a context saved up front.
func (pc *PageController) Feedback(c *gin.Context) {
	saved := inertia.Save(c)

	message := c.PostForm("message")

	rd, ok := inertia.RendererFrom(c)
	if !ok {
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	rd.RenderSaved(c.Writer, saved, "Feedback/Thanks", gin.H{
		"received": message != "",
	})
}
