package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/PriyanshiDabral/Employee-Management/api/http/presenter"
	"github.com/PriyanshiDabral/Employee-Management/pkg/employee"
	"github.com/PriyanshiDabral/Employee-Management/pkg/security/jwt"
	"github.com/PriyanshiDabral/Employee-Management/pkg/validation"
)

// EmployeeHandler serves the employee directory. Every route expects the auth
// middleware to have run.
type EmployeeHandler struct {
	useCase employee.UseCase
}

func NewEmployeeHandler(useCase employee.UseCase) *EmployeeHandler {
	return &EmployeeHandler{useCase: useCase}
}

type employeeResponse struct {
	ID         string    `json:"id"`
	UserID     *string   `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	Status     string    `json:"status"`
	Phone      *string   `json:"phone"`
	Address    *string   `json:"address"`
	Salary     *float64  `json:"salary"`
	HireDate   *string   `json:"hire_date"`
	UserRole   *string   `json:"user_role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toEmployeeResponse(e employee.Employee) employeeResponse {
	resp := employeeResponse{
		ID:         e.ID.String(),
		Name:       e.Name,
		Email:      e.Email,
		Role:       e.Role,
		Department: e.Department,
		Status:     string(e.Status),
		Phone:      e.Phone,
		Address:    e.Address,
		Salary:     e.Salary,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if e.UserID != nil {
		s := e.UserID.String()
		resp.UserID = &s
	}
	if e.HireDate != nil {
		s := e.HireDate.Format(validation.DateLayout)
		resp.HireDate = &s
	}
	if e.UserRole != "" {
		r := e.UserRole
		resp.UserRole = &r
	}
	return resp
}

func actorFrom(c *fiber.Ctx) (employee.Actor, bool) {
	id, ok := jwt.IdentityFrom(c)
	if !ok {
		return employee.Actor{}, false
	}
	return employee.Actor{UserID: id.UserID, Admin: id.IsAdmin()}, true
}

func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// parseDate returns nil for a nil input and records a field error for a malformed one.
func parseDate(errs *validation.Errors, field string, value *string) *time.Time {
	if value == nil {
		return nil
	}
	t := errs.Date(field, *value)
	if t.IsZero() {
		return nil
	}
	return &t
}

// List returns the employees visible to the caller.
// @Summary List employees
// @Tags    employees
// @Produce json
// @Security BearerAuth
// @Param   search     query string false "case-insensitive match on name or email"
// @Param   department query string false "exact department"
// @Param   role       query string false "exact job role"
// @Param   status     query string false "active, inactive or pending"
// @Param   sortBy     query string false "name, email, role, department, status, hire_date or salary"
// @Param   sortOrder  query string false "ASC or DESC"
// @Param   limit      query int    false "page size (1-200)"
// @Param   offset     query int    false "rows to skip"
// @Success 200 {array}  employeeResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	limit, offset, err := parseLimitOffset(c)
	if err != nil {
		return writeError(c, err)
	}
	q, err := employee.ParseListQuery(employee.ListParams{
		Search:     c.Query("search"),
		Department: c.Query("department"),
		Role:       c.Query("role"),
		Status:     c.Query("status"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return writeError(c, err)
	}

	list, err := h.useCase.List(c.Context(), actor, q)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]employeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEmployeeResponse(e))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Get returns a single employee.
// @Summary Get employee
// @Tags    employees
// @Produce json
// @Security BearerAuth
// @Param   id path string true "employee id"
// @Success 200 {object} employeeResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /employees/{id} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	id, ok := parseID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid employee id")
	}

	e, err := h.useCase.Get(c.Context(), actor, id)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toEmployeeResponse(e))
}

type createEmployeeRequest struct {
	UserID     *string  `json:"user_id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	Department string   `json:"department"`
	Status     string   `json:"status"`
	Phone      *string  `json:"phone"`
	Address    *string  `json:"address"`
	Salary     *float64 `json:"salary"`
	HireDate   *string  `json:"hire_date"`
}

type createEmployeeResponse struct {
	Message    string `json:"message"`
	EmployeeID string `json:"employeeId"`
}

// Create adds an employee profile.
// @Summary Create employee
// @Tags    employees
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body createEmployeeRequest true "employee"
// @Success 201 {object} createEmployeeResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	var req createEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	var errs validation.Errors
	in := employee.NewEmployee{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
		Status:     employee.Status(req.Status),
		Phone:      req.Phone,
		Address:    req.Address,
		Salary:     req.Salary,
		HireDate:   parseDate(&errs, "hire_date", req.HireDate),
	}
	if req.UserID != nil {
		uid, err := uuid.Parse(*req.UserID)
		if err != nil {
			errs.Add("user_id", "must be a valid UUID")
		}
		in.UserID = &uid
	}
	if err := errs.Err(); err != nil {
		return writeError(c, err)
	}

	created, err := h.useCase.Create(c.Context(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, createEmployeeResponse{
		Message:    "employee created successfully",
		EmployeeID: created.ID.String(),
	})
}

type updateEmployeeRequest struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Role       *string  `json:"role"`
	Department *string  `json:"department"`
	Status     *string  `json:"status"`
	Phone      *string  `json:"phone"`
	Address    *string  `json:"address"`
	Salary     *float64 `json:"salary"`
	HireDate   *string  `json:"hire_date"`
}

type updateEmployeeResponse struct {
	Message  string           `json:"message"`
	Employee employeeResponse `json:"employee"`
}

// Update changes an employee profile. Non-admins may only change name, phone
// and address on their own profile; other fields are ignored.
// @Summary Update employee
// @Tags    employees
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id    path string                true "employee id"
// @Param   input body updateEmployeeRequest true "fields to change"
// @Success 200 {object} updateEmployeeResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	id, ok := parseID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid employee id")
	}
	var req updateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	patch := employee.Patch{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
		Phone:      req.Phone,
		Address:    req.Address,
		Salary:     req.Salary,
	}
	if req.Status != nil {
		s := employee.Status(*req.Status)
		patch.Status = &s
	}
	// hire_date is dropped for non-admins anyway, so only admins can fail on it
	if actor.Admin {
		var errs validation.Errors
		patch.HireDate = parseDate(&errs, "hire_date", req.HireDate)
		if err := errs.Err(); err != nil {
			return writeError(c, err)
		}
	}

	updated, err := h.useCase.Update(c.Context(), actor, id, patch)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, updateEmployeeResponse{
		Message:  "employee updated successfully",
		Employee: toEmployeeResponse(updated),
	})
}

// Delete removes an employee profile.
// @Summary Delete employee
// @Tags    employees
// @Produce json
// @Security BearerAuth
// @Param   id path string true "employee id"
// @Success 200 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	id, ok := parseID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid employee id")
	}

	if err := h.useCase.Delete(c.Context(), actor, id); err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, presenter.MessageResponse{Message: "employee deleted successfully"})
}

type departmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

type roleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

type statsResponse struct {
	Total           int               `json:"total"`
	Active          int               `json:"active"`
	Inactive        int               `json:"inactive"`
	Pending         int               `json:"pending"`
	DepartmentStats []departmentCount `json:"departmentStats"`
	RoleStats       []roleCount       `json:"roleStats"`
}

// Stats returns the dashboard aggregates.
// @Summary Dashboard statistics
// @Tags    employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} statsResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /employees/stats/dashboard [get]
func (h *EmployeeHandler) Stats(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}

	stats, err := h.useCase.Stats(c.Context(), actor)
	if err != nil {
		return writeError(c, err)
	}

	resp := statsResponse{
		Total:           stats.Total,
		Active:          stats.Active,
		Inactive:        stats.Inactive,
		Pending:         stats.Pending,
		DepartmentStats: make([]departmentCount, 0, len(stats.Departments)),
		RoleStats:       make([]roleCount, 0, len(stats.Roles)),
	}
	for _, d := range stats.Departments {
		resp.DepartmentStats = append(resp.DepartmentStats, departmentCount{Department: d.Name, Count: d.Count})
	}
	for _, r := range stats.Roles {
		resp.RoleStats = append(resp.RoleStats, roleCount{Role: r.Name, Count: r.Count})
	}
	return presenter.JSON(c, http.StatusOK, resp)
}
