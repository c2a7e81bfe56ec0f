package employee

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/employeehub/payroll-backend-go/internal/domain/employee"
	"github.com/employeehub/payroll-backend-go/internal/pkg/database"
	"github.com/employeehub/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testEmployeeDB *database.DB
)

func employeeTestInit(t *testing.T) {
	t.Helper()
	if testEmployeeDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testEmployeeDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		panic("Failed to connect to test database: " + err.Error())
	}
}

func truncateEmployeeTables(t *testing.T, ctx context.Context) {
	t.Helper()
	tables := []string{"payroll_records", "deductions", "salary_histories", "variable_allowances", "employees"}

	for _, table := range tables {
		_, err := testEmployeeDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			continue
		}
	}
}

func newTestEmployeeService() employee.EmployeeService {
	repo := postgresql.NewEmployeeRepository(testEmployeeDB)
	return NewEmployeeService(testEmployeeDB, repo)
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d-%d@example.com", prefix, time.Now().Unix(), time.Now().Nanosecond())
}

// seedLegacyEmployee inserts a row the way the pre-breakdown data model
// stored it: a total, zero components, no employee code.
func seedLegacyEmployee(t *testing.T, ctx context.Context, total int64) string {
	t.Helper()
	var id string
	err := testEmployeeDB.QueryRow(ctx, `
		INSERT INTO employees (name, email, role, total_compensation, created_at, updated_at)
		VALUES ('Legacy Employee', $1, 'Engineer', $2, NOW(), NOW())
		RETURNING id
	`, uniqueEmail("legacy"), total).Scan(&id)
	require.NoError(t, err)
	return id
}

func countHistoryEntries(t *testing.T, ctx context.Context, employeeID string) int {
	t.Helper()
	var count int
	err := testEmployeeDB.QueryRow(ctx, `SELECT COUNT(*) FROM salary_histories WHERE employee_id = $1`, employeeID).Scan(&count)
	require.NoError(t, err)
	return count
}

// ===== EMPLOYEE SERVICE TESTS =====

func TestEmployeeService_Create_StandardBreakup(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	truncateEmployeeTables(t, ctx)

	svc := newTestEmployeeService()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:              "Asha Nair",
		Email:             uniqueEmail("asha"),
		Role:              "Engineer",
		TotalCompensation: decimal.NewFromInt(12000),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.EmployeeCode)
	assert.NotEmpty(t, *created.EmployeeCode)
	assert.Equal(t, "12000", created.TotalCompensation.String())
	assert.Equal(t, "4800", created.Basic.String())
	assert.Equal(t, "2400", created.HousingAllowance.String())
	assert.Equal(t, "1200", created.DearnessAllowance.String())
	assert.Equal(t, "600", created.TravelAllowance.String())
	assert.Equal(t, "3000", created.SpecialAllowance.String())

	// Creation records the 0 -> initial history entry.
	history, err := svc.GetSalaryHistory(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "0", history[0].PreviousTotal.String())
	assert.Equal(t, "12000", history[0].NewTotal.String())
}

func TestEmployeeService_Get_HealsLegacyBreakdown(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	truncateEmployeeTables(t, ctx)

	svc := newTestEmployeeService()
	legacyID := seedLegacyEmployee(t, ctx, 12000)

	healed, err := svc.GetEmployee(ctx, legacyID)
	require.NoError(t, err)
	assert.Equal(t, "4800", healed.Basic.String())
	assert.Equal(t, "2400", healed.HousingAllowance.String())
	assert.Equal(t, "1200", healed.DearnessAllowance.String())
	assert.Equal(t, "600", healed.TravelAllowance.String())
	assert.Equal(t, "3000", healed.SpecialAllowance.String())
	assert.Equal(t, "12000", healed.TotalCompensation.String())

	// Healing is not a salary change and writes no history.
	assert.Equal(t, 0, countHistoryEntries(t, ctx, legacyID))

	// A second read sees an already populated breakdown and changes nothing.
	again, err := svc.GetEmployee(ctx, legacyID)
	require.NoError(t, err)
	assert.Equal(t, healed.Basic.String(), again.Basic.String())
	assert.Equal(t, healed.SpecialAllowance.String(), again.SpecialAllowance.String())
}

func TestEmployeeService_UpdateComposition_TopDownRecordsHistory(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	truncateEmployeeTables(t, ctx)

	svc := newTestEmployeeService()
	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:              "Ravi Kumar",
		Email:             uniqueEmail("ravi"),
		Role:              "Analyst",
		TotalCompensation: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)

	newTotal := decimal.NewFromInt(15000)
	updated, err := svc.UpdateComposition(ctx, created.ID, employee.UpdateCompositionRequest{
		TotalCompensation: &newTotal,
	})
	require.NoError(t, err)
	assert.Equal(t, "15000", updated.TotalCompensation.String())
	assert.Equal(t, "6000", updated.Basic.String())

	history, err := svc.GetSalaryHistory(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Newest first.
	assert.Equal(t, "10000", history[0].PreviousTotal.String())
	assert.Equal(t, "15000", history[0].NewTotal.String())
}

func TestEmployeeService_UpdateComposition_SameTotalNoHistory(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	truncateEmployeeTables(t, ctx)

	svc := newTestEmployeeService()
	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:              "Meena Iyer",
		Email:             uniqueEmail("meena"),
		Role:              "Analyst",
		TotalCompensation: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)

	sameTotal := decimal.NewFromInt(10000)
	_, err = svc.UpdateComposition(ctx, created.ID, employee.UpdateCompositionRequest{
		TotalCompensation: &sameTotal,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, countHistoryEntries(t, ctx, created.ID))
}

func TestEmployeeService_UpdateComposition_BottomUpNoHistory(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	truncateEmployeeTables(t, ctx)

	svc := newTestEmployeeService()
	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:              "Divya Menon",
		Email:             uniqueEmail("divya"),
		Role:              "Designer",
		TotalCompensation: decimal.NewFromInt(12000),
	})
	require.NoError(t, err)

	newBasic := decimal.NewFromInt(5000)
	updated, err := svc.UpdateComposition(ctx, created.ID, employee.UpdateCompositionRequest{
		Components: &employee.ComponentOverrides{Basic: &newBasic},
	})
	require.NoError(t, err)

	// Total is derived: 5000 + 2400 + 1200 + 600 + 3000.
	assert.Equal(t, "5000", updated.Basic.String())
	assert.Equal(t, "12200", updated.TotalCompensation.String())

	// The bottom-up protocol leaves no history entry even though the total
	// changed; only the creation entry exists.
	assert.Equal(t, 1, countHistoryEntries(t, ctx, created.ID))
}

func TestEmployeeService_Allowances_RecomputeTotal(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	truncateEmployeeTables(t, ctx)

	svc := newTestEmployeeService()
	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:              "Sanjay Rao",
		Email:             uniqueEmail("sanjay"),
		Role:              "Manager",
		TotalCompensation: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)

	withAllowance, err := svc.AddAllowance(ctx, created.ID, employee.AddAllowanceRequest{
		Label:  "Internet",
		Amount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.Equal(t, "10500", withAllowance.TotalCompensation.String())
	require.Len(t, withAllowance.Allowances, 1)

	afterDelete, err := svc.DeleteAllowance(ctx, created.ID, withAllowance.Allowances[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "10000", afterDelete.TotalCompensation.String())
	assert.Len(t, afterDelete.Allowances, 0)
}

func TestEmployeeService_Resolve_ByCodeAndLegacyID(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	truncateEmployeeTables(t, ctx)

	svc := newTestEmployeeService()
	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:              "Priya Shah",
		Email:             uniqueEmail("priya"),
		Role:              "Engineer",
		TotalCompensation: decimal.NewFromInt(9000),
	})
	require.NoError(t, err)

	byCode, err := svc.Resolve(ctx, *created.EmployeeCode)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	// Rows without a code stay addressable by internal id.
	legacyID := seedLegacyEmployee(t, ctx, 8000)
	byID, err := svc.Resolve(ctx, legacyID)
	require.NoError(t, err)
	assert.Equal(t, legacyID, byID.ID)

	_, err = svc.Resolve(ctx, "not-a-valid-ref")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_SeedCodes_Resumable(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	truncateEmployeeTables(t, ctx)

	svc := newTestEmployeeService()
	first := seedLegacyEmployee(t, ctx, 7000)
	second := seedLegacyEmployee(t, ctx, 8000)

	result, err := svc.SeedEmployeeCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Assigned)

	for _, id := range []string{first, second} {
		var code *string
		err := testEmployeeDB.QueryRow(ctx, `SELECT employee_code FROM employees WHERE id = $1`, id).Scan(&code)
		require.NoError(t, err)
		require.NotNil(t, code)
		assert.NotEmpty(t, *code)
	}

	// A rerun finds nothing left to assign.
	again, err := svc.SeedEmployeeCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Assigned)
}

func TestEmployeeService_List_Defaults(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	truncateEmployeeTables(t, ctx)

	svc := newTestEmployeeService()
	for i := 0; i < 7; i++ {
		_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
			Name:              fmt.Sprintf("Employee %d", i),
			Email:             uniqueEmail(fmt.Sprintf("list-%d", i)),
			Role:              "Engineer",
			TotalCompensation: decimal.NewFromInt(int64(1000 * (i + 1))),
		})
		require.NoError(t, err)
	}

	listResp, err := svc.ListEmployees(ctx, employee.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, listResp.Page)
	assert.Equal(t, 5, listResp.Limit)
	assert.Len(t, listResp.Data, 5)
	assert.Equal(t, int64(7), listResp.TotalCount)
}

func TestEmployeeService_UpdateProfile_LeavesCompensationAlone(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	truncateEmployeeTables(t, ctx)

	svc := newTestEmployeeService()
	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:              "Old Name",
		Email:             uniqueEmail("profile"),
		Role:              "Engineer",
		TotalCompensation: decimal.NewFromInt(12000),
	})
	require.NoError(t, err)

	newName := "New Name"
	updated, err := svc.UpdateProfile(ctx, created.ID, employee.UpdateProfileRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "12000", updated.TotalCompensation.String())
	assert.Equal(t, "4800", updated.Basic.String())
	assert.Equal(t, 1, countHistoryEntries(t, ctx, created.ID))
}
