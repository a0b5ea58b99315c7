package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/devopslab/userboard/internal/dashboard/backend"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	statusOnline  = "🟢 Online"
	statusOffline = "🔴 Offline"
)

type DashboardHandler struct {
	client  *backend.Client
	version string
}

func NewDashboardHandler(client *backend.Client, version string) *DashboardHandler {
	return &DashboardHandler{client: client, version: version}
}

// Dashboard renders the main page. Every store call degrades independently:
// the page renders with empty users, no stats and an offline badge rather
// than failing when the store is unreachable.
func (h *DashboardHandler) Dashboard(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	users, _ := h.client.Users(reqCtx)

	stats, _ := h.client.Stats(reqCtx)

	backendStatus := statusOffline
	if h.client.Healthy(reqCtx) {
		backendStatus = statusOnline
	}

	messageType := ctx.DefaultQuery("type", "success")
	if messageType != "success" && messageType != "danger" {
		messageType = "success"
	}

	ctx.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Users":          users,
		"Stats":          stats,
		"BackendStatus":  backendStatus,
		"FrontendStatus": statusOnline,
		"BackendURL":     h.client.BaseURL(),
		"Version":        h.version,
		"Timestamp":      time.Now().UTC().Format("2006-01-02 15:04:05"),
		"Message":        ctx.Query("message"),
		"MessageType":    messageType,
	})
}

type addUserForm struct {
	Name  string `form:"name" binding:"required"`
	Email string `form:"email" binding:"required"`
	Role  string `form:"role"`
}

// AddUser relays the form to the store and bounces back to the dashboard
// with a flash message (post-redirect-get).
func (h *DashboardHandler) AddUser(ctx *gin.Context) {
	var form addUserForm

	if err := ctx.ShouldBind(&form); err != nil {
		redirectWithFlash(ctx, "Failed to add user: "+formErrorMessage(err), "danger")
		return
	}

	status, errMsg := h.client.CreateUser(ctx.Request.Context(), form.Name, form.Email, form.Role)

	if status == http.StatusCreated {
		redirectWithFlash(ctx, "User '"+form.Name+"' added successfully!", "success")
		return
	}

	redirectWithFlash(ctx, "Failed to add user: "+errMsg, "danger")
}

// DeleteUser relays a delete. Exposed via GET for parity with the original
// dashboard links.
func (h *DashboardHandler) DeleteUser(ctx *gin.Context) {
	id := ctx.Param("id")

	status, errMsg := h.client.DeleteUser(ctx.Request.Context(), id)

	if status == http.StatusOK {
		redirectWithFlash(ctx, "User deleted successfully!", "success")
		return
	}

	redirectWithFlash(ctx, "Failed to delete user: "+errMsg, "danger")
}

func redirectWithFlash(ctx *gin.Context, message, messageType string) {
	q := url.Values{}
	q.Set("message", message)
	q.Set("type", messageType)

	ctx.Redirect(http.StatusFound, "/?"+q.Encode())
}

func formErrorMessage(err error) string {
	var verrs validator.ValidationErrors

	if errors.As(err, &verrs) && len(verrs) > 0 {
		// report the first failed field the way the store words it
		return "Missing required field: " + strings.ToLower(verrs[0].Field())
	}

	return "invalid form submission"
}
