package refstore

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/tableio"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// MockRefStore is a mock implementation of RefStore for testing.
type MockRefStore struct {
	mock.Mock
}

var _ RefStore = &MockRefStore{} // Compile-time check

// SaveEdition implements the RefStore interface.
func (m *MockRefStore) SaveEdition(ctx context.Context, ed schema.Edition,
	tax []tableio.TaxonomyRow, ind []tableio.IndicatorRow,
	w []tableio.WeightRow, b []tableio.BarrierRow) error {
	args := m.Called(ctx, ed, tax, ind, w, b)
	return args.Error(0)
}

// LoadEdition implements the RefStore interface.
func (m *MockRefStore) LoadEdition(ctx context.Context, ed schema.Edition) (
	[]tableio.TaxonomyRow, []tableio.IndicatorRow, []tableio.WeightRow, []tableio.BarrierRow, error) {
	args := m.Called(ctx, ed)
	tax, _ := args.Get(0).([]tableio.TaxonomyRow)
	ind, _ := args.Get(1).([]tableio.IndicatorRow)
	w, _ := args.Get(2).([]tableio.WeightRow)
	b, _ := args.Get(3).([]tableio.BarrierRow)
	return tax, ind, w, b, args.Error(4)
}

// Status implements the RefStore interface.
func (m *MockRefStore) Status(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Clear implements the RefStore interface.
func (m *MockRefStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close implements the RefStore interface.
func (m *MockRefStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ RunStore = &MockRunStore{} // Compile-time check

// SaveRun implements the RunStore interface.
func (m *MockRunStore) SaveRun(ctx context.Context, basinID, edition string, barrierCodes []string, scores []schema.PriorityScore) error {
	args := m.Called(ctx, basinID, edition, barrierCodes, scores)
	return args.Error(0)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
