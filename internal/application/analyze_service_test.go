package application_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodic-software/medley/internal/application"
	"github.com/melodic-software/medley/internal/domain"
)

// fakeModel is an in-memory domain.ProgramModel for service tests.
type fakeModel struct {
	units   []domain.CompilationUnitDescriptor
	types   map[string][]domain.TypeDescriptor // unit identity -> types
	known   map[string]domain.SymbolID
	byPlace map[string]domain.SymbolID
	refs    map[domain.SymbolID][]domain.Location

	mu           sync.Mutex
	resolveCalls map[string]int
	renamed      []string
	renameErr    error
}

func (m *fakeModel) CompilationUnits() ([]domain.CompilationUnitDescriptor, error) {
	return m.units, nil
}

func (m *fakeModel) DeclaredTypes(unit domain.CompilationUnitDescriptor) ([]domain.TypeDescriptor, error) {
	return m.types[unit.Identity], nil
}

func (m *fakeModel) ResolveWellKnown(fqn string) (domain.SymbolID, bool) {
	m.mu.Lock()
	if m.resolveCalls == nil {
		m.resolveCalls = make(map[string]int)
	}
	m.resolveCalls[fqn]++
	m.mu.Unlock()
	sym, ok := m.known[fqn]
	return sym, ok
}

func (m *fakeModel) ResolveDeclaring(loc domain.Location) (domain.SymbolID, bool) {
	sym, ok := m.byPlace[fmt.Sprintf("%s:%d", loc.File, loc.Line)]
	return sym, ok
}

func (m *fakeModel) References(symbol domain.SymbolID) ([]domain.Location, error) {
	return m.refs[symbol], nil
}

func (m *fakeModel) Rename(symbol domain.SymbolID, targetName string) (*domain.RenameResult, error) {
	if m.renameErr != nil {
		return nil, m.renameErr
	}
	m.renamed = append(m.renamed, string(symbol)+"->"+targetName)
	return &domain.RenameResult{Applied: true, Locations: m.refs[symbol]}, nil
}

func storeDescriptor() domain.TypeDescriptor {
	return domain.TypeDescriptor{
		Name:       "OrderStore",
		Namespace:  "Orders.Domain",
		Unit:       "Orders.Domain",
		Kind:       domain.KindClass,
		Interfaces: []domain.TypeRef{{Name: "OrderRepository", Namespace: "Orders.Domain"}},
		Location:   domain.Location{File: "internal/orders/domain/store.go", Line: 5},
		Symbol:     "Orders.Domain.OrderStore",
	}
}

func invoiceDescriptor() domain.TypeDescriptor {
	return domain.TypeDescriptor{
		Name:      "Invoice",
		Namespace: "Billing.Domain",
		Unit:      "Billing.Domain",
		Kind:      domain.KindClass,
		Members: []domain.MemberDescriptor{
			{Name: "Order", Kind: domain.MemberField, Type: domain.TypeRef{
				Name: "Order", Namespace: "Orders.Domain", Symbol: "Orders.Domain.Order",
			}},
		},
		Location: domain.Location{File: "internal/billing/domain/invoice.go", Line: 9},
		Symbol:   "Billing.Domain.Invoice",
	}
}

func twoUnitModel() *fakeModel {
	return &fakeModel{
		units: []domain.CompilationUnitDescriptor{
			{Identity: "Billing.Domain", Dir: "internal/billing/domain"},
			{Identity: "Orders.Domain", Dir: "internal/orders/domain"},
		},
		types: map[string][]domain.TypeDescriptor{
			"Orders.Domain":  {storeDescriptor()},
			"Billing.Domain": {invoiceDescriptor()},
		},
	}
}

func TestAnalyze_ReportsNamingAndBoundaries(t *testing.T) {
	svc := application.NewAnalyzeService(twoUnitModel(), domain.DefaultConfig())
	report, err := svc.Analyze()
	require.NoError(t, err)

	require.Len(t, report.Diagnostics, 2)
	// Sorted by file: billing before orders.
	assert.Equal(t, "MDY010", report.Diagnostics[0].ID)
	assert.Equal(t, "Invoice", report.Diagnostics[0].TypeName)
	assert.Equal(t, "MDY001", report.Diagnostics[1].ID)
	assert.Equal(t, "OrderStore", report.Diagnostics[1].TypeName)

	assert.Equal(t, 2, report.Summary.Warnings)
	assert.Zero(t, report.Summary.Errors)
	assert.False(t, report.Timestamp.IsZero())
}

func TestAnalyze_NonModularUnitSkipsBoundaries(t *testing.T) {
	model := &fakeModel{
		units: []domain.CompilationUnitDescriptor{{Identity: "Internal.SharedKernel"}},
		types: map[string][]domain.TypeDescriptor{
			"Internal.SharedKernel": {{
				Name: "Money",
				Kind: domain.KindStruct,
				Unit: "Internal.SharedKernel",
				Members: []domain.MemberDescriptor{
					{Type: domain.TypeRef{Name: "Order", Namespace: "Orders.Domain"}},
				},
			}},
		},
	}
	report, err := application.NewAnalyzeService(model, domain.DefaultConfig()).Analyze()
	require.NoError(t, err)
	assert.Empty(t, report.Diagnostics)
}

func TestAnalyze_SeverityOverrides(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Severities = map[string]string{"MDY001": domain.SeverityError}

	report, err := application.NewAnalyzeService(twoUnitModel(), cfg).Analyze()
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.Errors)
	assert.Equal(t, 1, report.Summary.Warnings)
}

func TestAnalyze_SuppressionByIDAndPath(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Suppressions = []domain.Suppression{
		{ID: "MDY001", Path: "internal/orders/**"},
	}

	report, err := application.NewAnalyzeService(twoUnitModel(), cfg).Analyze()
	require.NoError(t, err)

	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, "MDY010", report.Diagnostics[0].ID)
}

func TestAnalyze_SuppressionWithEmptyIDMatchesEverything(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Suppressions = []domain.Suppression{
		{Path: "internal/**"},
	}

	report, err := application.NewAnalyzeService(twoUnitModel(), cfg).Analyze()
	require.NoError(t, err)
	assert.Empty(t, report.Diagnostics)
}

func TestAnalyze_BadSuppressionPattern(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Suppressions = []domain.Suppression{{Path: "[unclosed"}}

	_, err := application.NewAnalyzeService(twoUnitModel(), cfg).Analyze()
	assert.Error(t, err)
}

func TestAnalyze_WellKnownResolutionIsMemoized(t *testing.T) {
	model := twoUnitModel()
	// Several types per unit so each well-known name would be resolved many
	// times without memoization.
	var many []domain.TypeDescriptor
	for i := 0; i < 20; i++ {
		td := storeDescriptor()
		td.Name = fmt.Sprintf("OrderStore%dRepository", i)
		many = append(many, td)
	}
	model.types["Orders.Domain"] = many

	_, err := application.NewAnalyzeService(model, domain.DefaultConfig()).Analyze()
	require.NoError(t, err)

	for fqn, calls := range model.resolveCalls {
		assert.LessOrEqual(t, calls, 1, "fqn %s resolved more than once in a single pass", fqn)
	}
}

func TestFingerprint(t *testing.T) {
	d := domain.Diagnostic{
		ID:       "MDY001",
		TypeName: "OrderStore",
		Location: domain.Location{File: "internal/orders/domain/store.go", Line: 5},
	}
	assert.Equal(t, "MDY001|internal/orders/domain/store.go|OrderStore", application.Fingerprint(d))
}

func TestNewFindings(t *testing.T) {
	diags := []domain.Diagnostic{
		{ID: "MDY001", TypeName: "OrderStore", Location: domain.Location{File: "a.go"}},
		{ID: "MDY010", TypeName: "Invoice", Location: domain.Location{File: "b.go"}},
	}
	baseline := map[string]bool{
		application.Fingerprint(diags[0]): true,
	}

	fresh := application.NewFindings(diags, baseline)
	require.Len(t, fresh, 1)
	assert.Equal(t, "MDY010", fresh[0].ID)

	assert.Equal(t, diags, application.NewFindings(diags, nil), "empty baseline keeps everything")
}
