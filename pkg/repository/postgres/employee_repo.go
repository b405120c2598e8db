package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/PriyanshiDabral/Employee-Management/pkg/employee"
	pgdb "github.com/PriyanshiDabral/Employee-Management/pkg/storage/postgres"
)

const (
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	numericOverflowCode     = "22003"
)

const employeeColumns = `
	e.id, e.user_id, e.name, e.email, e.role, e.department, e.status,
	e.phone, e.address, e.salary::float8, e.hire_date, COALESCE(u.role, ''),
	e.created_at, e.updated_at`

// sortColumns maps every allowed sort key to its column. Nothing outside this
// map is ever interpolated into ORDER BY.
var sortColumns = map[employee.SortKey]string{
	employee.SortByName:       "e.name",
	employee.SortByEmail:      "e.email",
	employee.SortByRole:       "e.role",
	employee.SortByDepartment: "e.department",
	employee.SortByStatus:     "e.status",
	employee.SortByHireDate:   "e.hire_date",
	employee.SortBySalary:     "e.salary",
}

// EmployeeRepository implements employee.Repository backed by PostgreSQL (pgx).
type EmployeeRepository struct {
	db pgdb.Queryer
}

func NewEmployeeRepository(db pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e employee.Employee) error {
	exec := pgdb.QueryerFromContext(ctx, r.db)
	_, err := exec.Exec(ctx, `
		INSERT INTO employees (id, user_id, name, email, role, department, status,
		                       phone, address, salary, hire_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		e.ID,
		e.UserID,
		e.Name,
		strings.ToLower(e.Email),
		e.Role,
		e.Department,
		string(e.Status),
		e.Phone,
		e.Address,
		e.Salary,
		nullableDate(e.HireDate),
		e.CreatedAt,
		e.UpdatedAt,
	)
	return translateEmployeePgError(err)
}

// Update overwrites every mutable column. user_id and created_at are never touched.
func (r *EmployeeRepository) Update(ctx context.Context, e employee.Employee) error {
	exec := pgdb.QueryerFromContext(ctx, r.db)
	tag, err := exec.Exec(ctx, `
		UPDATE employees
		   SET name = $1,
		       email = $2,
		       role = $3,
		       department = $4,
		       status = $5,
		       phone = $6,
		       address = $7,
		       salary = $8,
		       hire_date = $9,
		       updated_at = $10
		 WHERE id = $11
	`,
		e.Name,
		strings.ToLower(e.Email),
		e.Role,
		e.Department,
		string(e.Status),
		e.Phone,
		e.Address,
		e.Salary,
		nullableDate(e.HireDate),
		e.UpdatedAt,
		e.ID,
	)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := pgdb.QueryerFromContext(ctx, r.db)
	tag, err := exec.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.db)
	row := exec.QueryRow(ctx, `SELECT`+employeeColumns+`
		  FROM employees e
		  LEFT JOIN users u ON u.id = e.user_id
		 WHERE e.id = $1`, id)

	found, err := scanEmployee(row)
	if err != nil {
		return employee.Employee{}, translateEmployeePgError(err)
	}
	return found, nil
}

func (r *EmployeeRepository) List(ctx context.Context, f employee.Filter) ([]employee.Employee, error) {
	query, args := buildListQuery(f)

	exec := pgdb.QueryerFromContext(ctx, r.db)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	return employees, nil
}

// buildListQuery assembles the list statement. Every filter value travels as a
// positional argument.
func buildListQuery(f employee.Filter) (string, []any) {
	args := make([]any, 0, 7)
	conditions := make([]string, 0, 5)
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.OwnerID != nil {
		conditions = append(conditions, "e.user_id = "+next(*f.OwnerID))
	}
	if f.Search != "" {
		p := next("%" + escapeLike(f.Search) + "%")
		conditions = append(conditions, "(e.name ILIKE "+p+" OR e.email ILIKE "+p+")")
	}
	if f.Department != "" {
		conditions = append(conditions, "e.department = "+next(f.Department))
	}
	if f.Role != "" {
		conditions = append(conditions, "e.role = "+next(f.Role))
	}
	if f.Status != "" {
		conditions = append(conditions, "e.status = "+next(string(f.Status)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = sortColumns[employee.SortByName]
	}
	order := "ASC"
	if f.Order == employee.Desc {
		order = "DESC"
	}

	query := `SELECT` + employeeColumns + `
		  FROM employees e
		  LEFT JOIN users u ON u.id = e.user_id` + whereClause + `
		 ORDER BY ` + column + ` ` + order + `, e.id ASC`

	if f.Limit > 0 {
		query += " LIMIT " + next(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + next(f.Offset)
	}
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Stats computes the dashboard counters and per-department and per-role groups.
// Callers wanting a consistent snapshot run it inside a read-only transaction.
func (r *EmployeeRepository) Stats(ctx context.Context) (employee.Stats, error) {
	exec := pgdb.QueryerFromContext(ctx, r.db)

	var stats employee.Stats
	err := exec.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'active'),
		       COUNT(*) FILTER (WHERE status = 'inactive'),
		       COUNT(*) FILTER (WHERE status = 'pending')
		  FROM employees
	`).Scan(&stats.Total, &stats.Active, &stats.Inactive, &stats.Pending)
	if err != nil {
		return employee.Stats{}, err
	}

	if stats.Departments, err = groupCounts(ctx, exec, "department"); err != nil {
		return employee.Stats{}, err
	}
	if stats.Roles, err = groupCounts(ctx, exec, "role"); err != nil {
		return employee.Stats{}, err
	}
	return stats, nil
}

// groupCounts counts employees per value of column, largest groups first.
// column is always a literal from this file.
func groupCounts(ctx context.Context, exec pgdb.Queryer, column string) ([]employee.GroupCount, error) {
	rows, err := exec.Query(ctx, `
		SELECT `+column+`, COUNT(*)
		  FROM employees
		 GROUP BY `+column+`
		 ORDER BY COUNT(*) DESC, `+column+` ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]employee.GroupCount, 0)
	for rows.Next() {
		var g employee.GroupCount
		if err := rows.Scan(&g.Name, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		e         employee.Employee
		userID    uuid.NullUUID
		status    string
		phone     sql.NullString
		address   sql.NullString
		salary    sql.NullFloat64
		hireDate  sql.NullTime
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(
		&e.ID,
		&userID,
		&e.Name,
		&e.Email,
		&e.Role,
		&e.Department,
		&status,
		&phone,
		&address,
		&salary,
		&hireDate,
		&e.UserRole,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrNotFound
		}
		return employee.Employee{}, err
	}

	e.Status = employee.Status(status)
	if userID.Valid {
		id := userID.UUID
		e.UserID = &id
	}
	if phone.Valid {
		e.Phone = &phone.String
	}
	if address.Valid {
		e.Address = &address.String
	}
	if salary.Valid {
		e.Salary = &salary.Float64
	}
	if hireDate.Valid {
		t := hireDate.Time.UTC()
		date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		e.HireDate = &date
	}
	e.CreatedAt = createdAt.UTC()
	e.UpdatedAt = updatedAt.UTC()
	return e, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			if pgErr.ConstraintName == "employees_email_key" {
				return employee.ErrEmailTaken
			}
		case foreignKeyViolationCode:
			if pgErr.ConstraintName == "employees_user_id_fkey" {
				return employee.ErrInvalidArgument
			}
		case checkViolationCode, numericOverflowCode:
			return employee.ErrInvalidArgument
		}
	}
	return err
}

func nullableDate(value *time.Time) any {
	if value == nil {
		return nil
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
