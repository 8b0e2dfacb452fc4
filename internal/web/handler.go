package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/changhyeonkim/sales-crm/internal/auth"
	"github.com/changhyeonkim/sales-crm/internal/config"
	"github.com/changhyeonkim/sales-crm/internal/customer"
	sharedContext "github.com/changhyeonkim/sales-crm/internal/shared/context"
	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"
	"github.com/changhyeonkim/sales-crm/internal/shared/logger"
	"github.com/changhyeonkim/sales-crm/internal/shared/middleware"
	"github.com/changhyeonkim/sales-crm/internal/shared/validator"
	"github.com/gin-gonic/gin"
)

const customersPath = "/customers"

// WebHandler serves the server-rendered customer pages
type WebHandler struct {
	authService     *auth.AuthService
	customerService *customer.CustomerService
	customerHandler *customer.CustomerHandler
	session         auth.SessionCookie
	importMaxBytes  int64
}

func NewWebHandler(
	authService *auth.AuthService,
	customerService *customer.CustomerService,
	customerHandler *customer.CustomerHandler,
	cfg *config.Config,
) *WebHandler {
	return &WebHandler{
		authService:     authService,
		customerService: customerService,
		customerHandler: customerHandler,
		session:         auth.NewSessionCookie(cfg.JWT),
		importMaxBytes:  cfg.Customer.ImportMaxBytes,
	}
}

func (h *WebHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, customersPath)
}

func (h *WebHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", authPage{
		layout: layout{Title: "로그인", Notice: notices[c.Query("notice")]},
	})
}

func (h *WebHandler) Login(c *gin.Context) {
	var request auth.LoginRequest
	if err := c.ShouldBind(&request); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", authPage{
			layout:       layout{Title: "로그인", Error: bindMessage(err)},
			LoginIDValue: request.LoginID,
		})
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		resp := sharedError.Resolve(err)
		if resp.Status == http.StatusBadRequest {
			resp.Status = http.StatusUnauthorized
		}
		_ = c.Error(err)
		c.HTML(resp.Status, "login.html", authPage{
			layout:       layout{Title: "로그인", Error: resp.Message},
			LoginIDValue: request.LoginID,
		})
		return
	}

	h.session.Set(c, response.AccessToken)
	c.Redirect(http.StatusSeeOther, customersPath)
}

func (h *WebHandler) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", authPage{layout: layout{Title: "회원가입"}})
}

func (h *WebHandler) Signup(c *gin.Context) {
	var request auth.SignupRequest
	page := func(msg string) authPage {
		return authPage{
			layout:       layout{Title: "회원가입", Error: msg},
			LoginIDValue: request.LoginID,
			Name:         request.Name,
		}
	}

	if err := c.ShouldBind(&request); err != nil {
		c.HTML(http.StatusBadRequest, "signup.html", page(bindMessage(err)))
		return
	}

	if err := h.authService.Signup(c.Request.Context(), &request); err != nil {
		resp := sharedError.Resolve(err)
		_ = c.Error(err)
		c.HTML(resp.Status, "signup.html", page(resp.Message))
		return
	}

	c.Redirect(http.StatusSeeOther, middleware.LoginPath+"?notice=signup")
}

func (h *WebHandler) Logout(c *gin.Context) {
	h.session.Clear(c)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// List renders the customer table together with the new-customer form
func (h *WebHandler) List(c *gin.Context) {
	h.renderList(c, http.StatusOK, &listPage{
		layout: layout{Notice: notices[c.Query("notice")]},
	})
}

func (h *WebHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var request customer.CustomerRequest
	if err := c.ShouldBind(&request); err != nil {
		h.renderList(c, http.StatusBadRequest, &listPage{
			layout: layout{Error: bindMessage(err)},
			Form:   request,
		})
		return
	}

	if _, err := h.customerService.Create(c.Request.Context(), userID, &request); err != nil {
		status, page := failedPage(c, err)
		page.Form = request
		h.renderList(c, status, page)
		return
	}

	redirectWithNotice(c, customersPath, "created")
}

func (h *WebHandler) Edit(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	found, err := h.customerService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.redirectOnLookupError(c, err)
		return
	}

	c.HTML(http.StatusOK, "edit.html", editPage{
		layout:     layout{Title: found.Name, LoginID: sharedContext.GetLoginID(c)},
		CustomerID: found.CustomerID,
		Age:        found.Age,
		Form:       formOf(found),
	})
}

func (h *WebHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	customerID := c.Param("id")

	var request customer.CustomerRequest
	render := func(status int, l layout) {
		l.Title = "고객 수정"
		l.LoginID = sharedContext.GetLoginID(c)
		c.HTML(status, "edit.html", editPage{layout: l, CustomerID: customerID, Form: request})
	}

	if err := c.ShouldBind(&request); err != nil {
		render(http.StatusBadRequest, layout{Error: bindMessage(err)})
		return
	}

	if _, err := h.customerService.Update(c.Request.Context(), userID, customerID, &request); err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) {
			h.redirectOnLookupError(c, err)
			return
		}
		status, page := failedPage(c, err)
		render(status, page.layout)
		return
	}

	redirectWithNotice(c, customersPath, "updated")
}

func (h *WebHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.redirectOnLookupError(c, err)
		return
	}

	redirectWithNotice(c, customersPath, "deleted")
}

// Import runs a CSV upload and shows the report above the table
func (h *WebHandler) Import(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	file, err := customer.OpenUpload(c, "file", h.importMaxBytes)
	if err != nil {
		status, page := failedPage(c, err)
		h.renderList(c, status, page)
		return
	}
	defer file.Close()

	result, err := h.customerService.Import(c.Request.Context(), userID, file)
	if err != nil {
		// rows before a syntax error are already stored
		status, page := failedPage(c, err)
		page.Import = result
		h.renderList(c, status, page)
		return
	}

	h.renderList(c, http.StatusOK, &listPage{Import: result})
}

func (h *WebHandler) Export(c *gin.Context) {
	h.customerHandler.Export(c)
}

func (h *WebHandler) renderList(c *gin.Context, status int, page *listPage) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var query customer.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		query = customer.ListQuery{}
	}

	list, err := h.customerService.List(c.Request.Context(), userID, &query)
	if err != nil {
		_ = c.Error(err)
		logger.FromContext(c.Request.Context()).Error("고객 목록 조회 실패", "error", err)
		c.String(http.StatusInternalServerError, sharedError.InternalServerError.Message)
		return
	}

	page.Title = "고객 목록"
	page.LoginID = sharedContext.GetLoginID(c)
	page.Query = query.Q
	page.List = list
	if list.Page > 1 {
		page.PrevPage = list.Page - 1
	}
	if list.HasNext() {
		page.NextPage = list.Page + 1
	}

	c.HTML(status, "customers.html", page)
}

// userID is guaranteed by WebSession; a miss means the route was wired without it
func (h *WebHandler) userID(c *gin.Context) (uint32, bool) {
	userID, ok := sharedContext.GetUserID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, middleware.LoginPath)
		c.Abort()
	}
	return userID, ok
}

func (h *WebHandler) redirectOnLookupError(c *gin.Context, err error) {
	if errors.Is(err, customer.ErrCustomerNotFound) {
		redirectWithNotice(c, customersPath, "notfound")
		return
	}
	_ = c.Error(err)
	logger.FromContext(c.Request.Context()).Error("고객 조회 실패", "error", err)
	c.String(http.StatusInternalServerError, sharedError.InternalServerError.Message)
}

// failedPage turns a customer error into the message shown on the page.
// A duplicate is a warning, everything else an error.
func failedPage(c *gin.Context, err error) (int, *listPage) {
	_ = c.Error(err)
	resp := customer.ErrorResponse(err)
	page := &listPage{}
	if errors.Is(err, customer.ErrCustomerAlreadyExists) {
		page.Warning = resp.Message
	} else {
		page.Error = resp.Message
	}
	return resp.Status, page
}

func redirectWithNotice(c *gin.Context, path, notice string) {
	c.Redirect(http.StatusSeeOther, path+"?"+url.Values{"notice": {notice}}.Encode())
}

func bindMessage(err error) string {
	if resp, ok := validator.ToErrorResponse(err); ok {
		return resp.Message
	}
	return sharedError.InvalidRequest.Message
}
