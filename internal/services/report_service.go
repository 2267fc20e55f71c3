package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ankirsydii/Orderly/internal/models"
	"github.com/ankirsydii/Orderly/internal/repository"
)

// ExportHeader is the first line of the exported sales detail.
const ExportHeader = "Tanggal,Nama Menu,Jumlah Terjual,Total Pendapatan"

const exportSubject = "Laporan Detail Orderly"

// ReportSender hands a rendered export to the external share mechanism.
type ReportSender interface {
	SendReport(subject, body string) error
}

// DailySummary is one row of the on-screen daily recap.
type DailySummary struct {
	Date         string  `json:"date"`
	Transactions int     `json:"transactions"`
	TotalOmzet   float64 `json:"total_omzet"`
}

// ItemSummary aggregates one product within one day. TotalIncome is
// quantity times the first price seen for the product that day; when the
// price changed mid-day the figure is an approximation, and that is the
// documented behavior of the export.
type ItemSummary struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	TotalIncome float64 `json:"total_income"`
}

type DayDetail struct {
	Date  string        `json:"date"`
	Items []ItemSummary `json:"items"`
}

type TopItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// Overview is the admin dashboard header: lifetime totals, the five best
// sellers, and the five most recent orders.
type Overview struct {
	TotalSales        float64        `json:"total_sales"`
	TotalTransactions int            `json:"total_transactions"`
	ActiveMenuCount   int            `json:"active_menu_count"`
	TopSelling        []TopItem      `json:"top_selling"`
	RecentOrders      []models.Order `json:"recent_orders"`
}

type ReportService interface {
	DailySummaries() ([]DailySummary, error)
	DetailedSummaries() ([]DayDetail, error)
	ExportCSV() (string, error)
	ShareExport() (string, error)
	Overview() (*Overview, error)
}

type reportService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	sender      ReportSender
}

func NewReportService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	sender ReportSender,
) ReportService {
	return &reportService{orderRepo: orderRepo, productRepo: productRepo, sender: sender}
}

// dayBucket groups the orders of one calendar day, keeping the parsed date
// so days sort as dates, not as strings.
type dayBucket struct {
	label  string
	day    time.Time
	orders []models.Order
}

// bucketByDay partitions orders by the calendar day of their stored date
// string, newest day first. A date that fails to parse keeps its raw prefix
// as the label and sorts after all parseable days.
func bucketByDay(orders []models.Order) []dayBucket {
	index := make(map[string]int)
	var buckets []dayBucket

	for _, order := range orders {
		label, day := orderDay(order.Date)
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, dayBucket{label: label, day: day})
		}
		buckets[i].orders = append(buckets[i].orders, order)
	}

	sort.SliceStable(buckets, func(a, b int) bool {
		return buckets[a].day.After(buckets[b].day)
	})
	return buckets
}

func orderDay(date string) (string, time.Time) {
	if t, err := time.Parse(models.OrderDateLayout, date); err == nil {
		return t.Format("02 Jan 2006"), t.Truncate(24 * time.Hour)
	}
	label, _, _ := strings.Cut(date, ",")
	return label, time.Time{}
}

func (s *reportService) DailySummaries() ([]DailySummary, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}

	buckets := bucketByDay(orders)
	summaries := make([]DailySummary, 0, len(buckets))
	for _, bucket := range buckets {
		var omzet float64
		for _, order := range bucket.orders {
			omzet += order.TotalAmount
		}
		summaries = append(summaries, DailySummary{
			Date:         bucket.label,
			Transactions: len(bucket.orders),
			TotalOmzet:   omzet,
		})
	}
	return summaries, nil
}

func (s *reportService) DetailedSummaries() ([]DayDetail, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}

	buckets := bucketByDay(orders)
	details := make([]DayDetail, 0, len(buckets))
	for _, bucket := range buckets {
		details = append(details, DayDetail{
			Date:  bucket.label,
			Items: summarizeItems(bucket.orders),
		})
	}
	return details, nil
}

// summarizeItems flattens every item sold in the bucket, groups by product
// name, and prices each group at its first-seen unit price.
func summarizeItems(orders []models.Order) []ItemSummary {
	index := make(map[string]int)
	prices := make(map[string]float64)
	var summaries []ItemSummary

	for _, order := range orders {
		for _, item := range order.Items {
			i, ok := index[item.ProductName]
			if !ok {
				i = len(summaries)
				index[item.ProductName] = i
				prices[item.ProductName] = item.Price
				summaries = append(summaries, ItemSummary{ProductName: item.ProductName})
			}
			summaries[i].Quantity += item.Quantity
		}
	}
	for i := range summaries {
		summaries[i].TotalIncome = float64(summaries[i].Quantity) * prices[summaries[i].ProductName]
	}

	sort.SliceStable(summaries, func(a, b int) bool {
		return summaries[a].Quantity > summaries[b].Quantity
	})
	return summaries
}

// ExportCSV renders the detailed summary as delimited text, one row per
// (day, item) pair. Amounts are whole currency, "Rp" prefixed.
func (s *reportService) ExportCSV() (string, error) {
	details, err := s.DetailedSummaries()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(ExportHeader)
	b.WriteByte('\n')
	for _, day := range details {
		for _, item := range day.Items {
			fmt.Fprintf(&b, "%s,%s,%d,Rp %d\n", day.Date, item.ProductName, item.Quantity, int(item.TotalIncome))
		}
	}
	return b.String(), nil
}

// ShareExport renders the export and hands it to the share endpoint. The
// text is returned either way so the caller still has it when no endpoint
// is configured.
func (s *reportService) ShareExport() (string, error) {
	text, err := s.ExportCSV()
	if err != nil {
		return "", err
	}
	if err := s.sender.SendReport(exportSubject, text); err != nil {
		return text, fmt.Errorf("failed to share report: %w", err)
	}
	return text, nil
}

func (s *reportService) Overview() (*Overview, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, err
	}

	overview := &Overview{TotalTransactions: len(orders)}
	for _, product := range products {
		if product.IsAvailable {
			overview.ActiveMenuCount++
		}
	}
	for _, order := range orders {
		overview.TotalSales += order.TotalAmount
	}

	top := summarizeItems(orders)
	for i, item := range top {
		if i == 5 {
			break
		}
		overview.TopSelling = append(overview.TopSelling, TopItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}

	// GetAll is already newest-first by order number.
	recent := orders
	if len(recent) > 5 {
		recent = recent[:5]
	}
	overview.RecentOrders = recent

	return overview, nil
}
