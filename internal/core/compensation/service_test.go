package compensation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeEmployeeReader struct {
	employees map[string]*employee.Employee
}

func (r *fakeEmployeeReader) GetEmployee(_ context.Context, in employee.GetEmployeeInput) (*employee.Employee, error) {
	emp, ok := r.employees[in.ID]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeCompensationRepo struct {
	records []*Compensation
	// skipPrecheck は事前確認をすり抜けた同時登録を再現します。
	skipPrecheck bool
}

func (r *fakeCompensationRepo) Create(_ context.Context, c *Compensation) (*Compensation, error) {
	for _, existing := range r.records {
		if existing.EmployeeID == c.EmployeeID && existing.EffectiveDate.Equal(c.EffectiveDate) {
			return nil, ErrCompensationAlreadyExists
		}
	}
	clone := *c
	clone.Employee = nil
	r.records = append(r.records, &clone)
	out := clone
	return &out, nil
}

func (r *fakeCompensationRepo) ListByEmployeeID(_ context.Context, employeeID string) ([]*Compensation, error) {
	var out []*Compensation
	for _, c := range r.records {
		if c.EmployeeID == employeeID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveDate.Before(out[j].EffectiveDate) })
	return out, nil
}

func (r *fakeCompensationRepo) FindByEmployeeAndEffectiveDate(_ context.Context, employeeID string, effectiveDate time.Time) (*Compensation, error) {
	if r.skipPrecheck {
		return nil, ErrCompensationNotFound
	}
	for _, c := range r.records {
		if c.EmployeeID == employeeID && c.EffectiveDate.Equal(effectiveDate) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, ErrCompensationNotFound
}

func (r *fakeCompensationRepo) FindLatestEffective(_ context.Context, employeeID string, asOf time.Time) (*Compensation, error) {
	var latest *Compensation
	for _, c := range r.records {
		if c.EmployeeID != employeeID || c.EffectiveDate.After(asOf) {
			continue
		}
		if latest == nil || c.EffectiveDate.After(latest.EffectiveDate) {
			latest = c
		}
	}
	if latest == nil {
		return nil, ErrCompensationNotFound
	}
	clone := *latest
	return &clone, nil
}

const johnID = "16a596ae-edd3-4847-99fe-c4518e82c86f"

func newTestService(t *testing.T) (*Service, *fakeCompensationRepo, *stubClock) {
	t.Helper()

	repo := &fakeCompensationRepo{}
	reader := &fakeEmployeeReader{employees: map[string]*employee.Employee{
		johnID: {ID: johnID, FirstName: "John", LastName: "Lennon"},
	}}
	clk := &stubClock{now: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)}
	svc := NewService(repo, reader, clk, nil, nil)

	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("comp-%d", seq)
	}
	return svc, repo, clk
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecordCompensation_Success(t *testing.T) {
	t.Parallel()

	svc, repo, clk := newTestService(t)

	got, err := svc.RecordCompensation(context.Background(), RecordCompensationInput{
		EmployeeID:    johnID,
		Salary:        decimal.RequireFromString("125000.50"),
		EffectiveDate: time.Date(2024, 1, 1, 15, 4, 5, 0, time.FixedZone("JST", 9*60*60)),
	})
	require.NoError(t, err)

	assert.Equal(t, "comp-1", got.ID)
	assert.Equal(t, johnID, got.EmployeeID)
	require.NotNil(t, got.Employee)
	assert.Equal(t, "Lennon", got.Employee.LastName)
	assert.True(t, got.Salary.Equal(decimal.RequireFromString("125000.5")))
	assert.Equal(t, date(2024, 1, 1), got.EffectiveDate)
	assert.Equal(t, clk.now, got.CreatedAt)
	assert.Len(t, repo.records, 1)
}

func TestRecordCompensation_SameDateConflicts(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.RecordCompensation(ctx, RecordCompensationInput{
		EmployeeID:    johnID,
		Salary:        decimal.NewFromInt(100000),
		EffectiveDate: date(2024, 6, 1),
	})
	require.NoError(t, err)

	_, err = svc.RecordCompensation(ctx, RecordCompensationInput{
		EmployeeID:    johnID,
		Salary:        decimal.NewFromInt(200000),
		EffectiveDate: date(2024, 6, 1),
	})
	assert.ErrorIs(t, err, ErrCompensationAlreadyExists)

	require.Len(t, repo.records, 1)
	assert.Equal(t, first.ID, repo.records[0].ID)
	assert.True(t, repo.records[0].Salary.Equal(decimal.NewFromInt(100000)))
}

func TestRecordCompensation_StoreConstraintIsAuthoritative(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecordCompensation(ctx, RecordCompensationInput{EmployeeID: johnID, Salary: decimal.NewFromInt(1), EffectiveDate: date(2024, 6, 1)})
	require.NoError(t, err)

	repo.skipPrecheck = true
	_, err = svc.RecordCompensation(ctx, RecordCompensationInput{EmployeeID: johnID, Salary: decimal.NewFromInt(2), EffectiveDate: date(2024, 6, 1)})
	assert.ErrorIs(t, err, ErrCompensationAlreadyExists)
	assert.Len(t, repo.records, 1)
}

func TestRecordCompensation_DifferentDatesAllowed(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	for _, d := range []time.Time{date(2023, 1, 1), date(2024, 1, 1)} {
		_, err := svc.RecordCompensation(ctx, RecordCompensationInput{EmployeeID: johnID, Salary: decimal.NewFromInt(90000), EffectiveDate: d})
		require.NoError(t, err)
	}
	assert.Len(t, repo.records, 2)
}

func TestRecordCompensation_UnknownEmployee(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)

	_, err := svc.RecordCompensation(context.Background(), RecordCompensationInput{
		EmployeeID:    "unknown",
		Salary:        decimal.NewFromInt(1000),
		EffectiveDate: date(2024, 1, 1),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Empty(t, repo.records)
}

func TestRecordCompensation_InvalidInput(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecordCompensation(ctx, RecordCompensationInput{EmployeeID: johnID, Salary: decimal.Zero, EffectiveDate: date(2024, 1, 1)})
	assert.ErrorIs(t, err, ErrInvalidSalary)

	_, err = svc.RecordCompensation(ctx, RecordCompensationInput{EmployeeID: johnID, Salary: decimal.NewFromInt(-5), EffectiveDate: date(2024, 1, 1)})
	assert.ErrorIs(t, err, ErrInvalidSalary)

	_, err = svc.RecordCompensation(ctx, RecordCompensationInput{EmployeeID: johnID, Salary: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, ErrInvalidEffectiveDate)

	assert.Empty(t, repo.records)
}

func TestRecordCompensation_SalaryMustFitStoredPrecision(t *testing.T) {
	t.Parallel()

	rejected := []string{"100.005", "0.001", "1000000000000", "999999999999.999"}
	for _, raw := range rejected {
		svc, repo, _ := newTestService(t)
		_, err := svc.RecordCompensation(context.Background(), RecordCompensationInput{
			EmployeeID:    johnID,
			Salary:        decimal.RequireFromString(raw),
			EffectiveDate: date(2024, 1, 1),
		})
		assert.ErrorIs(t, err, ErrInvalidSalary, raw)
		assert.Empty(t, repo.records, raw)
	}

	accepted := []string{"0.01", "100.50", "100.500", "999999999999.99"}
	for _, raw := range accepted {
		svc, _, _ := newTestService(t)
		_, err := svc.RecordCompensation(context.Background(), RecordCompensationInput{
			EmployeeID:    johnID,
			Salary:        decimal.RequireFromString(raw),
			EffectiveDate: date(2024, 1, 1),
		})
		assert.NoError(t, err, raw)
	}
}

func TestListCompensations_EmptyHistory(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	got, err := svc.ListCompensations(context.Background(), ListCompensationsInput{EmployeeID: johnID})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListCompensations_UnknownEmployee(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	_, err := svc.ListCompensations(context.Background(), ListCompensationsInput{EmployeeID: "unknown"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListCompensations_OrderedAndFiltered(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, d := range []time.Time{date(2024, 1, 1), date(2022, 1, 1), date(2023, 1, 1)} {
		_, err := svc.RecordCompensation(ctx, RecordCompensationInput{EmployeeID: johnID, Salary: decimal.NewFromInt(int64(d.Year())), EffectiveDate: d})
		require.NoError(t, err)
	}

	all, err := svc.ListCompensations(ctx, ListCompensationsInput{EmployeeID: johnID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, date(2022, 1, 1), all[0].EffectiveDate)
	assert.Equal(t, date(2024, 1, 1), all[2].EffectiveDate)
	for _, c := range all {
		require.NotNil(t, c.Employee)
		assert.Equal(t, johnID, c.Employee.ID)
	}

	filter := time.Date(2023, 1, 1, 23, 0, 0, 0, time.UTC)
	filtered, err := svc.ListCompensations(ctx, ListCompensationsInput{EmployeeID: johnID, EffectiveDate: &filter})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.True(t, filtered[0].Salary.Equal(decimal.NewFromInt(2023)))

	none := date(2023, 1, 2)
	filtered, err = svc.ListCompensations(ctx, ListCompensationsInput{EmployeeID: johnID, EffectiveDate: &none})
	require.NoError(t, err)
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestGetCurrentCompensation(t *testing.T) {
	t.Parallel()

	svc, _, clk := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetCurrentCompensation(ctx, GetCurrentCompensationInput{EmployeeID: johnID})
	assert.ErrorIs(t, err, ErrCompensationNotFound)

	for _, d := range []time.Time{date(2024, 1, 1), date(2025, 1, 1), date(2026, 1, 1)} {
		_, err := svc.RecordCompensation(ctx, RecordCompensationInput{EmployeeID: johnID, Salary: decimal.NewFromInt(int64(d.Year())), EffectiveDate: d})
		require.NoError(t, err)
	}

	current, err := svc.GetCurrentCompensation(ctx, GetCurrentCompensationInput{EmployeeID: johnID})
	require.NoError(t, err)
	assert.Equal(t, date(2025, 1, 1), current.EffectiveDate, "clock is %v", clk.now)
	assert.NotNil(t, current.Employee)

	onBoundary, err := svc.GetCurrentCompensation(ctx, GetCurrentCompensationInput{EmployeeID: johnID, AsOf: date(2024, 1, 1)})
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 1), onBoundary.EffectiveDate)

	_, err = svc.GetCurrentCompensation(ctx, GetCurrentCompensationInput{EmployeeID: johnID, AsOf: date(2023, 12, 31)})
	assert.ErrorIs(t, err, ErrCompensationNotFound)

	_, err = svc.GetCurrentCompensation(ctx, GetCurrentCompensationInput{EmployeeID: "unknown"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestRecordCompensation_PropagatesStoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection reset")
	reader := &fakeEmployeeReader{employees: map[string]*employee.Employee{johnID: {ID: johnID}}}
	svc := NewService(failingRepo{err: storeErr}, reader, nil, nil, nil)

	_, err := svc.RecordCompensation(context.Background(), RecordCompensationInput{EmployeeID: johnID, Salary: decimal.NewFromInt(1), EffectiveDate: date(2024, 1, 1)})
	assert.ErrorIs(t, err, storeErr)
}

type failingRepo struct {
	err error
}

func (f failingRepo) Create(context.Context, *Compensation) (*Compensation, error) { return nil, f.err }
func (f failingRepo) ListByEmployeeID(context.Context, string) ([]*Compensation, error) {
	return nil, f.err
}
func (f failingRepo) FindByEmployeeAndEffectiveDate(context.Context, string, time.Time) (*Compensation, error) {
	return nil, f.err
}
func (f failingRepo) FindLatestEffective(context.Context, string, time.Time) (*Compensation, error) {
	return nil, f.err
}
