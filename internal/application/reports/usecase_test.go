package reports_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/reports"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func quietLogger() *logger.Logger {
	return logger.Nop()
}

func newUseCase(snapshot *entity.Dataset) *reports.UseCase {
	return reports.NewUseCase(snapshot, time.September, nil, quietLogger())
}

// sale línea de venta dentro del FY 2021 (inicio de año fiscal: septiembre).
func sale(customer, product string, qty string) entity.SalesRecord {
	return entity.SalesRecord{
		Date:         time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
		CustomerCode: customer,
		ProductCode:  product,
		SoldQuantity: dec(qty),
	}
}

func price(product string, p string) entity.GrossPrice {
	return entity.GrossPrice{ProductCode: product, FiscalYear: 2021, Price: dec(p)}
}

func zeroDeductions(customers ...string) ([]entity.PreInvoiceDeduction, []entity.PostInvoiceDeduction) {
	var pre []entity.PreInvoiceDeduction
	var post []entity.PostInvoiceDeduction
	for _, c := range customers {
		pre = append(pre, entity.PreInvoiceDeduction{CustomerCode: c, FiscalYear: 2021, DiscountPct: decimal.Zero})
		post = append(post, entity.PostInvoiceDeduction{CustomerCode: c, FiscalYear: 2021, DiscountPct: decimal.Zero})
	}
	return pre, post
}

// ── Ventas brutas mensuales ───────────────────────────────────────────────────

func monthlySnapshot() *entity.Dataset {
	pre, post := zeroDeductions("90002002")
	return &entity.Dataset{
		Sales: []entity.SalesRecord{
			sale("90002002", "P1", "10"),
			sale("90002002", "P2", "4"),
			sale("90999999", "P1", "7"), // otro cliente, no debe aparecer
			{ // FY 2022 (sep/2021), no debe aparecer
				Date: time.Date(2021, 9, 1, 0, 0, 0, 0, time.UTC), CustomerCode: "90002002",
				ProductCode: "P1", SoldQuantity: dec("99"),
			},
		},
		GrossPrices:    []entity.GrossPrice{price("P1", "100"), price("P2", "15.50")},
		PreDeductions:  pre,
		PostDeductions: post,
		Products: []entity.Product{
			{Code: "P1", Division: "PC", Category: "Laptop", Name: "AQ Gamer", Variant: "Plus"},
			{Code: "P2", Division: "P&A", Category: "Mouse", Name: "AQ Master", Variant: "Standard"},
		},
		Customers: []entity.Customer{
			{Code: "90002002", Name: "Atliq e Store", Market: "India", Region: "APAC", Channel: "Retailer"},
		},
	}
}

func TestMonthlyGrossSales_FiltraYCalcula(t *testing.T) {
	uc := newUseCase(monthlySnapshot())

	report, err := uc.MonthlyGrossSales(context.Background(), dto.MonthlyGrossSalesRequest{
		CustomerCode: "90002002", FiscalYear: 2021,
	})
	require.NoError(t, err)

	assert.Equal(t, "Atliq e Store", report.Customer)
	require.Len(t, report.Rows, 2, "solo las líneas del cliente y FY pedidos")

	// Orden: fecha, luego producto
	assert.Equal(t, "AQ Gamer", report.Rows[0].Product)
	assert.True(t, dec("1000").Equal(report.Rows[0].GrossTotal), "10 × 100 = 1000.00")
	assert.Equal(t, "AQ Master", report.Rows[1].Product)
	assert.True(t, dec("62").Equal(report.Rows[1].GrossTotal), "4 × 15.50 = 62.00")
	assert.True(t, dec("1062").Equal(report.TotalGross), "total = suma de filas")

	// Marzo es el mes 7 de un año fiscal que inicia en septiembre
	assert.Equal(t, 7, report.Rows[0].FiscalMonth)
	assert.Equal(t, 7, report.Rows[1].FiscalMonth)
}

func TestMonthlyGrossSales_ReporteVacioNoEsError(t *testing.T) {
	uc := newUseCase(monthlySnapshot())

	report, err := uc.MonthlyGrossSales(context.Background(), dto.MonthlyGrossSalesRequest{
		CustomerCode: "00000000", FiscalYear: 2021,
	})
	require.NoError(t, err, "un reporte vacío es salida válida")
	assert.Empty(t, report.Rows)
	assert.True(t, report.TotalGross.IsZero())
}

func TestMonthlyGrossSales_ParametrosInvalidos(t *testing.T) {
	uc := newUseCase(monthlySnapshot())
	ctx := context.Background()

	_, err := uc.MonthlyGrossSales(ctx, dto.MonthlyGrossSalesRequest{CustomerCode: "", FiscalYear: 2021})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter, "customer_code vacío debe rechazarse")

	_, err = uc.MonthlyGrossSales(ctx, dto.MonthlyGrossSalesRequest{CustomerCode: "90002002", FiscalYear: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter, "fiscal_year 0 debe rechazarse")

	_, err = uc.MonthlyGrossSales(ctx, dto.MonthlyGrossSalesRequest{CustomerCode: "90002002", FiscalYear: -3})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

// ── Top mercados ──────────────────────────────────────────────────────────────

func marketsSnapshot() *entity.Dataset {
	pre, post := zeroDeductions("C-IN", "C-DE", "C-US")
	return &entity.Dataset{
		Sales: []entity.SalesRecord{
			sale("C-IN", "P1", "12500000"),
			sale("C-DE", "P1", "12500000"),
			sale("C-US", "P1", "4000000"),
		},
		GrossPrices:    []entity.GrossPrice{price("P1", "1")},
		PreDeductions:  pre,
		PostDeductions: post,
		Products: []entity.Product{
			{Code: "P1", Division: "PC", Category: "Laptop", Name: "AQ Gamer", Variant: "Plus"},
		},
		Customers: []entity.Customer{
			{Code: "C-IN", Name: "Atliq e Store", Market: "India", Region: "APAC", Channel: "Retailer"},
			{Code: "C-DE", Name: "Amazon", Market: "Germany", Region: "EU", Channel: "Retailer"},
			{Code: "C-US", Name: "Walmart", Market: "USA", Region: "NA", Channel: "Retailer"},
		},
	}
}

func TestTopMarkets_OrdenYTruncado(t *testing.T) {
	uc := newUseCase(marketsSnapshot())

	report, err := uc.TopMarkets(context.Background(), dto.TopMarketsRequest{FiscalYear: 2021, TopN: 2})
	require.NoError(t, err)
	require.Len(t, report.Markets, 2, "a lo sumo min(topN, mercados distintos)")

	// India y Germany empatan con 12.5M: el desempate es alfabético
	assert.Equal(t, "Germany", report.Markets[0].Market)
	assert.Equal(t, "India", report.Markets[1].Market)
	assert.True(t, dec("12.5").Equal(report.Markets[0].NetSalesMillions),
		"venta neta en millones con 2 decimales, obtenido %s", report.Markets[0].NetSalesMillions)
}

func TestTopMarkets_EmpateResueltoAlfabeticamente(t *testing.T) {
	uc := newUseCase(marketsSnapshot())

	// topN=1 con empate 12.5M entre India y Germany → gana Germany (asc alfabético)
	report, err := uc.TopMarkets(context.Background(), dto.TopMarketsRequest{FiscalYear: 2021, TopN: 1})
	require.NoError(t, err)
	require.Len(t, report.Markets, 1)
	assert.Equal(t, "Germany", report.Markets[0].Market)
}

func TestTopMarkets_TopNMayorQueMercados(t *testing.T) {
	uc := newUseCase(marketsSnapshot())

	report, err := uc.TopMarkets(context.Background(), dto.TopMarketsRequest{FiscalYear: 2021, TopN: 10})
	require.NoError(t, err)
	assert.Len(t, report.Markets, 3, "no puede devolver más mercados de los que existen")
	// Descendente por venta neta
	for i := 1; i < len(report.Markets); i++ {
		assert.True(t, report.Markets[i].NetSalesMillions.LessThanOrEqual(report.Markets[i-1].NetSalesMillions))
	}
}

func TestTopMarkets_ParametrosInvalidos(t *testing.T) {
	uc := newUseCase(marketsSnapshot())
	ctx := context.Background()

	_, err := uc.TopMarkets(ctx, dto.TopMarketsRequest{FiscalYear: 0, TopN: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = uc.TopMarkets(ctx, dto.TopMarketsRequest{FiscalYear: 2021, TopN: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = uc.TopMarkets(ctx, dto.TopMarketsRequest{FiscalYear: 2021, TopN: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

// ── Top productos por división ────────────────────────────────────────────────

func productsSnapshot() *entity.Dataset {
	pre, post := zeroDeductions("C1")
	return &entity.Dataset{
		Sales: []entity.SalesRecord{
			sale("C1", "PC-A", "100"),
			sale("C1", "PC-B", "100"), // empata con PC-A
			sale("C1", "PC-C", "50"),
			sale("C1", "PC-D", "40"),
			sale("C1", "PC-E", "30"), // rank 4: excluido
			sale("C1", "PA-A", "500"),
			sale("C1", "PA-B", "200"),
		},
		GrossPrices: []entity.GrossPrice{
			price("PC-A", "1"), price("PC-B", "1"), price("PC-C", "1"),
			price("PC-D", "1"), price("PC-E", "1"), price("PA-A", "1"), price("PA-B", "1"),
		},
		PreDeductions:  pre,
		PostDeductions: post,
		Products: []entity.Product{
			{Code: "PC-A", Division: "PC", Name: "AQ Elite", Variant: "Standard"},
			{Code: "PC-B", Division: "PC", Name: "AQ Gamer", Variant: "Standard"},
			{Code: "PC-C", Division: "PC", Name: "AQ Velocity", Variant: "Standard"},
			{Code: "PC-D", Division: "PC", Name: "AQ Zion", Variant: "Standard"},
			{Code: "PC-E", Division: "PC", Name: "AQ Aspiron", Variant: "Standard"},
			{Code: "PA-A", Division: "P&A", Name: "AQ Master Mouse", Variant: "Standard"},
			{Code: "PA-B", Division: "P&A", Name: "AQ Clx Keyboard", Variant: "Standard"},
		},
		Customers: []entity.Customer{
			{Code: "C1", Name: "Atliq e Store", Market: "India", Region: "APAC", Channel: "Retailer"},
		},
	}
}

func TestTopProductsByDivision_DenseRank(t *testing.T) {
	uc := newUseCase(productsSnapshot())

	report, err := uc.TopProductsByDivision(context.Background(), 2021)
	require.NoError(t, err)

	var pc []dto.DivisionProductDTO
	for _, r := range report.Rows {
		if r.Division == "PC" {
			pc = append(pc, r)
		}
	}
	// Empate en 100 comparte rank 1; 50 → rank 2; 40 → rank 3; 30 → rank 4 excluido
	require.Len(t, pc, 4, "dos rank-1 empatados + rank 2 + rank 3")
	assert.Equal(t, 1, pc[0].Rank)
	assert.Equal(t, 1, pc[1].Rank)
	assert.Equal(t, "AQ Elite", pc[0].Product, "empate ordenado por producto asc")
	assert.Equal(t, "AQ Gamer", pc[1].Product)
	assert.Equal(t, 2, pc[2].Rank)
	assert.Equal(t, 3, pc[3].Rank)
}

func TestTopProductsByDivision_MaximoTresValoresDistintos(t *testing.T) {
	uc := newUseCase(productsSnapshot())

	report, err := uc.TopProductsByDivision(context.Background(), 2021)
	require.NoError(t, err)

	distinct := make(map[string]map[string]bool) // división → cantidades distintas
	for _, r := range report.Rows {
		if distinct[r.Division] == nil {
			distinct[r.Division] = make(map[string]bool)
		}
		distinct[r.Division][r.TotalQuantity.String()] = true
		assert.LessOrEqual(t, r.Rank, 3, "nunca se incluye un rank mayor a 3")
	}
	for division, values := range distinct {
		assert.LessOrEqual(t, len(values), 3,
			"división %s: más de 3 valores distintos de cantidad", division)
	}
}

func TestTopProductsByDivision_DivisionesOrdenadas(t *testing.T) {
	uc := newUseCase(productsSnapshot())

	report, err := uc.TopProductsByDivision(context.Background(), 2021)
	require.NoError(t, err)
	require.NotEmpty(t, report.Rows)

	for i := 1; i < len(report.Rows); i++ {
		assert.LessOrEqual(t, report.Rows[i-1].Division, report.Rows[i].Division)
	}
	// "P&A" < "PC" en orden lexicográfico
	assert.Equal(t, "P&A", report.Rows[0].Division)
}

func TestTopProductsByDivision_ParametroInvalido(t *testing.T) {
	uc := newUseCase(productsSnapshot())
	_, err := uc.TopProductsByDivision(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

// ── Participación regional ────────────────────────────────────────────────────

func regionsSnapshot() *entity.Dataset {
	pre, post := zeroDeductions("C-IN", "C-KR", "C-DE")
	return &entity.Dataset{
		Sales: []entity.SalesRecord{
			sale("C-IN", "P1", "300"),
			sale("C-KR", "P1", "100"),
			sale("C-DE", "P1", "250"),
		},
		GrossPrices:    []entity.GrossPrice{price("P1", "1000000")}, // montos en millones
		PreDeductions:  pre,
		PostDeductions: post,
		Products: []entity.Product{
			{Code: "P1", Division: "PC", Name: "AQ Gamer", Variant: "Plus"},
		},
		Customers: []entity.Customer{
			{Code: "C-IN", Name: "Atliq e Store", Market: "India", Region: "APAC", Channel: "Retailer"},
			{Code: "C-KR", Name: "Leader", Market: "South Korea", Region: "APAC", Channel: "Retailer"},
			{Code: "C-DE", Name: "Amazon", Market: "Germany", Region: "EU", Channel: "Retailer"},
		},
	}
}

func TestRegionalNetSalesShare_PorcentajePorRegion(t *testing.T) {
	uc := newUseCase(regionsSnapshot())

	report, err := uc.RegionalNetSalesShare(context.Background(), 2021)
	require.NoError(t, err)
	require.Len(t, report.Rows, 3)

	// APAC: 300 de 400 → 75%, 100 de 400 → 25%. EU: 250 de 250 → 100%.
	assert.Equal(t, "APAC", report.Rows[0].Region)
	assert.Equal(t, "Atliq e Store", report.Rows[0].Customer, "dentro de la región, venta neta desc")
	assert.True(t, dec("75").Equal(report.Rows[0].PctShare), "obtenido %s", report.Rows[0].PctShare)
	assert.True(t, dec("25").Equal(report.Rows[1].PctShare))
	assert.Equal(t, "EU", report.Rows[2].Region)
	assert.True(t, dec("100").Equal(report.Rows[2].PctShare))
}

func TestRegionalNetSalesShare_SumaCienPorRegion(t *testing.T) {
	uc := newUseCase(regionsSnapshot())

	report, err := uc.RegionalNetSalesShare(context.Background(), 2021)
	require.NoError(t, err)

	sums := make(map[string]decimal.Decimal)
	for _, r := range report.Rows {
		sums[r.Region] = sums[r.Region].Add(r.PctShare)
	}
	tolerance := dec("0.05") // redondeo a 2 decimales por fila
	for region, sum := range sums {
		assert.True(t, sum.Sub(hundredDec).Abs().LessThanOrEqual(tolerance),
			"región %s: la participación debe sumar 100, obtenido %s", region, sum)
	}
}

var hundredDec = decimal.NewFromInt(100)

func TestRegionalNetSalesShare_AnioSinVentas(t *testing.T) {
	uc := newUseCase(regionsSnapshot())

	report, err := uc.RegionalNetSalesShare(context.Background(), 2019)
	require.NoError(t, err, "año fiscal sin ventas produce reporte vacío, no error")
	assert.Empty(t, report.Rows)
}

// ── Caché ─────────────────────────────────────────────────────────────────────

// fakeCache implementación en memoria del puerto Cache para los tests.
type fakeCache struct {
	entries map[string][]byte
	hits    int
	sets    int
}

func newFakeCache() *fakeCache { return &fakeCache{entries: make(map[string][]byte)} }

func (f *fakeCache) Get(_ context.Context, key string, dest any) bool {
	raw, ok := f.entries[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	f.hits++
	return true
}

func (f *fakeCache) Set(_ context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	f.sets++
	f.entries[key] = raw
}

func TestReportes_UsanCache(t *testing.T) {
	cache := newFakeCache()
	uc := reports.NewUseCase(marketsSnapshot(), time.September, cache, quietLogger())
	ctx := context.Background()
	req := dto.TopMarketsRequest{FiscalYear: 2021, TopN: 2}

	first, err := uc.TopMarkets(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "el primer cálculo debe guardarse en caché")
	assert.Equal(t, 0, cache.hits)

	second, err := uc.TopMarkets(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "la segunda llamada debe servirse del caché")
	assert.Equal(t, first.Markets, second.Markets)
}
