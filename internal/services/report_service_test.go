package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/ankirsydii/Orderly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock ProductRepository
type mockProductRepo struct {
	products map[string]models.Product
	mu       sync.Mutex
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[string]models.Product)}
}

func (m *mockProductRepo) Create(product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = *product
	return nil
}

func (m *mockProductRepo) GetByID(id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &product, nil
}

func (m *mockProductRepo) GetAll() ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductRepo) GetByCategory(category string) ([]models.Product, error) {
	all, _ := m.GetAll()
	var out []models.Product
	for _, p := range all {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Update(product *models.Product) error {
	return m.Create(product)
}

func (m *mockProductRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

type mockSender struct {
	subjects []string
	bodies   []string
	failure  error
}

func (m *mockSender) SendReport(subject, body string) error {
	if m.failure != nil {
		return m.failure
	}
	m.subjects = append(m.subjects, subject)
	m.bodies = append(m.bodies, body)
	return nil
}

func orderOn(date string, number int, total float64, items ...models.OrderItem) models.Order {
	return models.Order{
		ID:          date,
		OrderNumber: number,
		Date:        date,
		TotalAmount: total,
		Items:       items,
		CashierName: "Kasir",
	}
}

func newReportService(orders ...models.Order) (ReportService, *mockSender) {
	repo := &mockOrderRepo{orders: orders}
	sender := &mockSender{}
	return NewReportService(repo, newMockProductRepo(), sender), sender
}

func TestDailySummariesGroupByDay(t *testing.T) {
	svc, _ := newReportService(
		orderOn("01 Jan 2025, 10:00", 1, 50000, models.OrderItem{ProductName: "Tea", Price: 10000, Quantity: 2}),
		orderOn("01 Jan 2025, 11:00", 2, 30000, models.OrderItem{ProductName: "Tea", Price: 10000, Quantity: 3}),
	)

	summaries, err := svc.DailySummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	assert.Equal(t, "01 Jan 2025", summaries[0].Date)
	assert.Equal(t, 2, summaries[0].Transactions)
	assert.Equal(t, 80000.0, summaries[0].TotalOmzet)
}

func TestDailySummariesTwoDaysNewestFirst(t *testing.T) {
	svc, _ := newReportService(
		orderOn("01 Jan 2025, 10:00", 1, 50000),
		orderOn("02 Jan 2025, 09:00", 2, 10000),
		orderOn("01 Jan 2025, 17:30", 3, 20000),
	)

	summaries, err := svc.DailySummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "02 Jan 2025", summaries[0].Date)
	assert.Equal(t, 1, summaries[0].Transactions)
	assert.Equal(t, 10000.0, summaries[0].TotalOmzet)

	assert.Equal(t, "01 Jan 2025", summaries[1].Date)
	assert.Equal(t, 2, summaries[1].Transactions)
	assert.Equal(t, 70000.0, summaries[1].TotalOmzet)
}

func TestDailySummariesSortByDateNotString(t *testing.T) {
	// Lexicographically "02 Jan 2025" > "01 Feb 2025", but as dates the
	// February day is newer and must come first.
	svc, _ := newReportService(
		orderOn("02 Jan 2025, 10:00", 1, 1000),
		orderOn("01 Feb 2025, 10:00", 2, 2000),
	)

	summaries, err := svc.DailySummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "01 Feb 2025", summaries[0].Date)
	assert.Equal(t, "02 Jan 2025", summaries[1].Date)
}

func TestDetailedSummariesUseFirstSeenPrice(t *testing.T) {
	svc, _ := newReportService(
		orderOn("01 Jan 2025, 10:00", 1, 50000, models.OrderItem{ProductName: "Tea", Price: 10000, Quantity: 2}),
		orderOn("01 Jan 2025, 11:00", 2, 30000, models.OrderItem{ProductName: "Tea", Price: 12000, Quantity: 3}),
	)

	details, err := svc.DetailedSummaries()
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Len(t, details[0].Items, 1)

	item := details[0].Items[0]
	assert.Equal(t, "Tea", item.ProductName)
	assert.Equal(t, 5, item.Quantity)
	// 5 * first-seen 10000, not 2*10000 + 3*12000.
	assert.Equal(t, 50000.0, item.TotalIncome)
}

func TestDetailedSummariesSortItemsByQuantity(t *testing.T) {
	svc, _ := newReportService(
		orderOn("01 Jan 2025, 10:00", 1, 0,
			models.OrderItem{ProductName: "Tea", Price: 10000, Quantity: 1},
			models.OrderItem{ProductName: "Coffee", Price: 15000, Quantity: 4},
		),
	)

	details, err := svc.DetailedSummaries()
	require.NoError(t, err)
	require.Len(t, details[0].Items, 2)
	assert.Equal(t, "Coffee", details[0].Items[0].ProductName)
	assert.Equal(t, "Tea", details[0].Items[1].ProductName)
}

func TestExportCSV(t *testing.T) {
	svc, _ := newReportService(
		orderOn("01 Jan 2025, 10:00", 1, 50000, models.OrderItem{ProductName: "Tea", Price: 10000, Quantity: 2}),
		orderOn("01 Jan 2025, 11:00", 2, 30000, models.OrderItem{ProductName: "Tea", Price: 10000, Quantity: 3}),
	)

	text, err := svc.ExportCSV()
	require.NoError(t, err)

	want := "Tanggal,Nama Menu,Jumlah Terjual,Total Pendapatan\n" +
		"01 Jan 2025,Tea,5,Rp 50000\n"
	assert.Equal(t, want, text)
}

func TestExportCSVEmptyHistory(t *testing.T) {
	svc, _ := newReportService()

	text, err := svc.ExportCSV()
	require.NoError(t, err)
	assert.Equal(t, "Tanggal,Nama Menu,Jumlah Terjual,Total Pendapatan\n", text)
}

func TestShareExportDeliversRenderedText(t *testing.T) {
	svc, sender := newReportService(
		orderOn("01 Jan 2025, 10:00", 1, 50000, models.OrderItem{ProductName: "Tea", Price: 10000, Quantity: 2}),
	)

	text, err := svc.ShareExport()
	require.NoError(t, err)
	require.Len(t, sender.bodies, 1)
	assert.Equal(t, text, sender.bodies[0])
	assert.Equal(t, "Laporan Detail Orderly", sender.subjects[0])
}

func TestShareExportReturnsTextOnSendFailure(t *testing.T) {
	repo := &mockOrderRepo{orders: []models.Order{
		orderOn("01 Jan 2025, 10:00", 1, 50000, models.OrderItem{ProductName: "Tea", Price: 10000, Quantity: 2}),
	}}
	sender := &mockSender{failure: errors.New("endpoint down")}
	svc := NewReportService(repo, newMockProductRepo(), sender)

	text, err := svc.ShareExport()
	require.Error(t, err)
	assert.Contains(t, text, "01 Jan 2025,Tea,2,Rp 20000")
}

func TestOverview(t *testing.T) {
	products := newMockProductRepo()
	require.NoError(t, products.Create(&models.Product{ID: "p1", Name: "Tea", Price: 10000, IsAvailable: true}))
	require.NoError(t, products.Create(&models.Product{ID: "p2", Name: "Coffee", Price: 15000, IsAvailable: true}))
	require.NoError(t, products.Create(&models.Product{ID: "p3", Name: "Sold Out", Price: 9000}))

	repo := &mockOrderRepo{orders: []models.Order{
		orderOn("02 Jan 2025, 10:00", 2, 30000, models.OrderItem{ProductName: "Coffee", Price: 15000, Quantity: 2}),
		orderOn("01 Jan 2025, 10:00", 1, 50000, models.OrderItem{ProductName: "Tea", Price: 10000, Quantity: 5}),
	}}
	svc := NewReportService(repo, products, &mockSender{})

	overview, err := svc.Overview()
	require.NoError(t, err)

	assert.Equal(t, 80000.0, overview.TotalSales)
	assert.Equal(t, 2, overview.TotalTransactions)
	assert.Equal(t, 2, overview.ActiveMenuCount)
	require.NotEmpty(t, overview.TopSelling)
	assert.Equal(t, "Tea", overview.TopSelling[0].ProductName)
	assert.Equal(t, 5, overview.TopSelling[0].Quantity)
	assert.Len(t, overview.RecentOrders, 2)
}

func TestUnparseableDateFallsBackToPrefix(t *testing.T) {
	svc, _ := newReportService(
		orderOn("garbage-date, extra", 1, 1000),
		orderOn("01 Jan 2025, 10:00", 2, 2000),
	)

	summaries, err := svc.DailySummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Parseable days sort first; the malformed one keeps its raw prefix.
	assert.Equal(t, "01 Jan 2025", summaries[0].Date)
	assert.Equal(t, "garbage-date", summaries[1].Date)
}
