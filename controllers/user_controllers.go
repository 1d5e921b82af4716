package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/user-admin/models"
	"github.com/yeremiapane/user-admin/services"
	"github.com/yeremiapane/user-admin/utils"
)

// User-facing messages.
const (
	MsgFieldsRequired = "All fields are required"
	MsgDuplicateEmail = "Email already exists"
	MsgNotFound       = "User not found"
	MsgUnexpected     = "Unexpected error, please try again"
	MsgCreated        = "User created successfully"
	MsgUpdated        = "User updated successfully"
	MsgDeleted        = "User deleted successfully"
)

// UserStore is the record store the controller drives.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, in services.UserInput) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, id uint, in services.UserInput) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

type UserController struct {
	Store UserStore
}

func NewUserController(store UserStore) *UserController {
	return &UserController{Store: store}
}

// Index -> GET /
func (uc *UserController) Index(c *gin.Context) {
	users, err := uc.Store.List(c.Request.Context())
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("list users")
		utils.RespondHTML(c, http.StatusInternalServerError, "index.html", gin.H{
			"Title": "Users",
			"Flash": utils.NewError(MsgUnexpected),
		})
		return
	}

	utils.RespondHTML(c, http.StatusOK, "index.html", gin.H{
		"Title": "Users",
		"Users": users,
	})
}

// CreateForm -> GET /create
func (uc *UserController) CreateForm(c *gin.Context) {
	utils.RespondHTML(c, http.StatusOK, "create.html", gin.H{
		"Title": "Create user",
		"User":  models.User{},
	})
}

// Create -> POST /create
func (uc *UserController) Create(c *gin.Context) {
	var in services.UserInput
	if err := c.ShouldBind(&in); err != nil {
		utils.RespondHTML(c, http.StatusBadRequest, "create.html", gin.H{
			"Title": "Create user",
			"User":  models.User{},
			"Flash": utils.NewError(MsgFieldsRequired),
		})
		return
	}

	user, err := uc.Store.Create(c.Request.Context(), in)
	if err != nil {
		// submitted values are not echoed back
		code, flash := failure(err, "create user")
		utils.RespondHTML(c, code, "create.html", gin.H{
			"Title": "Create user",
			"User":  models.User{},
			"Flash": flash,
		})
		return
	}

	utils.InfoLogger.Printf("User created: id=%d email=%s role=%s", user.ID, user.Email, user.Role)
	utils.RedirectWithFlash(c, "/", utils.NewSuccess(MsgCreated))
}

// EditForm -> GET /update/:id
func (uc *UserController) EditForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := uc.Store.Get(c.Request.Context(), id)
	if err != nil {
		_, flash := failure(err, "get user")
		utils.RedirectWithFlash(c, "/", flash)
		return
	}

	utils.RespondHTML(c, http.StatusOK, "update.html", gin.H{
		"Title": "Update user",
		"User":  user,
	})
}

// Update -> POST /update/:id
func (uc *UserController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in services.UserInput
	if err := c.ShouldBind(&in); err != nil {
		uc.renderUpdate(c, id, http.StatusBadRequest, utils.NewError(MsgFieldsRequired))
		return
	}

	user, err := uc.Store.Update(c.Request.Context(), id, in)
	if err != nil {
		code, flash := failure(err, "update user")
		if code == http.StatusNotFound {
			utils.RedirectWithFlash(c, "/", flash)
			return
		}
		uc.renderUpdate(c, id, code, flash)
		return
	}

	utils.InfoLogger.Printf("User updated: id=%d email=%s role=%s", user.ID, user.Email, user.Role)
	utils.RedirectWithFlash(c, "/", utils.NewSuccess(MsgUpdated))
}

// renderUpdate shows the form again with the stored record, as it was before the attempt.
func (uc *UserController) renderUpdate(c *gin.Context, id uint, code int, flash *utils.Flash) {
	current, err := uc.Store.Get(c.Request.Context(), id)
	if err != nil {
		if services.KindOf(err) == services.KindNotFound {
			flash = utils.NewError(MsgNotFound)
		}
		utils.RedirectWithFlash(c, "/", flash)
		return
	}
	utils.RespondHTML(c, code, "update.html", gin.H{
		"Title": "Update user",
		"User":  current,
		"Flash": flash,
	})
}

// Delete -> POST /delete/:id. Reports success whether or not the row existed.
func (uc *UserController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := uc.Store.Delete(c.Request.Context(), id); err != nil {
		_, flash := failure(err, "delete user")
		utils.RedirectWithFlash(c, "/", flash)
		return
	}

	utils.InfoLogger.Printf("User deleted: id=%d", id)
	utils.RedirectWithFlash(c, "/", utils.NewSuccess(MsgDeleted))
}

// failure maps a store error to a status code and a user-visible flash.
// Store failures are logged and replaced by a generic message.
func failure(err error, op string) (int, *utils.Flash) {
	switch services.KindOf(err) {
	case services.KindValidation:
		return http.StatusUnprocessableEntity, utils.NewError(MsgFieldsRequired)
	case services.KindDuplicateEmail:
		return http.StatusConflict, utils.NewError(MsgDuplicateEmail)
	case services.KindNotFound:
		return http.StatusNotFound, utils.NewError(MsgNotFound)
	default:
		utils.ErrorLogger.WithError(err).Error(op)
		return http.StatusInternalServerError, utils.NewError(MsgUnexpected)
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "404 page not found")
		return 0, false
	}
	return uint(id), true
}
